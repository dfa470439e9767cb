package displaylist

import (
	"image"

	"golang.org/x/image/math/f64"
)

// OpKind identifies the type of an Op.
type OpKind uint8

const (
	// Attribute ops
	OpSetAntiAlias OpKind = iota
	OpSetStyle
	OpSetColor
	OpSetStrokeWidth
	OpSetStrokeMiter
	OpSetStrokeCap
	OpSetStrokeJoin
	OpSetBlendMode
	OpSetBlender
	OpSetColorFilter
	OpSetInvertColors
	OpSetImageFilter
	OpSetMaskFilter
	OpSetMaskBlurFilter
	OpSetPathEffect

	// Scope ops
	OpSave
	OpSaveLayer
	OpRestore

	// Transform ops
	OpTranslate
	OpScale
	OpRotate
	OpSkew
	OpTransform2DAffine
	OpTransformFullPerspective
	OpTransformReset

	// Clip ops
	OpClipRect
	OpClipRRect
	OpClipPath

	// Draw ops
	OpDrawPaint
	OpDrawColor
	OpDrawLine
	OpDrawRect
	OpDrawOval
	OpDrawCircle
	OpDrawRRect
	OpDrawDRRect
	OpDrawPath
	OpDrawArc
	OpDrawPoints
	OpDrawVertices
	OpDrawImage
	OpDrawImageRect
	OpDrawImageNine
	OpDrawAtlas
	OpDrawPicture
	OpDrawDisplayList
	OpDrawTextBlob
	OpDrawShadow

	opKindCount
)

var opKindNames = [...]string{
	OpSetAntiAlias:             "SetAntiAlias",
	OpSetStyle:                 "SetStyle",
	OpSetColor:                 "SetColor",
	OpSetStrokeWidth:           "SetStrokeWidth",
	OpSetStrokeMiter:           "SetStrokeMiter",
	OpSetStrokeCap:             "SetStrokeCap",
	OpSetStrokeJoin:            "SetStrokeJoin",
	OpSetBlendMode:             "SetBlendMode",
	OpSetBlender:               "SetBlender",
	OpSetColorFilter:           "SetColorFilter",
	OpSetInvertColors:          "SetInvertColors",
	OpSetImageFilter:           "SetImageFilter",
	OpSetMaskFilter:            "SetMaskFilter",
	OpSetMaskBlurFilter:        "SetMaskBlurFilter",
	OpSetPathEffect:            "SetPathEffect",
	OpSave:                     "Save",
	OpSaveLayer:                "SaveLayer",
	OpRestore:                  "Restore",
	OpTranslate:                "Translate",
	OpScale:                    "Scale",
	OpRotate:                   "Rotate",
	OpSkew:                     "Skew",
	OpTransform2DAffine:        "Transform2DAffine",
	OpTransformFullPerspective: "TransformFullPerspective",
	OpTransformReset:           "TransformReset",
	OpClipRect:                 "ClipRect",
	OpClipRRect:                "ClipRRect",
	OpClipPath:                 "ClipPath",
	OpDrawPaint:                "DrawPaint",
	OpDrawColor:                "DrawColor",
	OpDrawLine:                 "DrawLine",
	OpDrawRect:                 "DrawRect",
	OpDrawOval:                 "DrawOval",
	OpDrawCircle:               "DrawCircle",
	OpDrawRRect:                "DrawRRect",
	OpDrawDRRect:               "DrawDRRect",
	OpDrawPath:                 "DrawPath",
	OpDrawArc:                  "DrawArc",
	OpDrawPoints:               "DrawPoints",
	OpDrawVertices:             "DrawVertices",
	OpDrawImage:                "DrawImage",
	OpDrawImageRect:            "DrawImageRect",
	OpDrawImageNine:            "DrawImageNine",
	OpDrawAtlas:                "DrawAtlas",
	OpDrawPicture:              "DrawPicture",
	OpDrawDisplayList:          "DrawDisplayList",
	OpDrawTextBlob:             "DrawTextBlob",
	OpDrawShadow:               "DrawShadow",
}

// String returns the kind name.
func (k OpKind) String() string {
	if int(k) < len(opKindNames) {
		return opKindNames[k]
	}
	return "Unknown"
}

// IsDraw reports whether ops of this kind render content.
func (k OpKind) IsDraw() bool {
	return k >= OpDrawPaint && k < opKindCount
}

// IsAttribute reports whether ops of this kind only change paint state.
func (k OpKind) IsAttribute() bool {
	return k <= OpSetPathEffect
}

// Op is one recorded operation. The set of implementations is closed; every
// Op is one of the structs in this file.
type Op interface {
	Kind() OpKind
	isOp()
}

// op is embedded by every Op to seal the interface.
type op struct{}

func (op) isOp() {}

// PointMode selects how DrawPoints interprets its points.
type PointMode uint8

const (
	// PointModePoints draws each point as a dot.
	PointModePoints PointMode = iota
	// PointModeLines draws each pair as a separate line.
	PointModeLines
	// PointModePolygon draws a connected polyline.
	PointModePolygon
)

// Sampling selects how images are sampled.
type Sampling uint8

const (
	SamplingNearest Sampling = iota
	SamplingLinear
	SamplingMipmapLinear
	SamplingCubic
)

// SrcRectConstraint controls whether sampling may read outside the source
// rectangle of DrawImageRect.
type SrcRectConstraint uint8

const (
	SrcRectFast SrcRectConstraint = iota
	SrcRectStrict
)

// Picture is an externally recorded drawing with a known cull rectangle.
type Picture interface {
	CullRect() Rect
}

// TextBlob is a run of positioned glyphs. Bounds is relative to the blob
// origin and covers the glyph outlines.
type TextBlob interface {
	Bounds() Rect
}

// -----------------------------------------------------------------------------
// Attribute ops
// -----------------------------------------------------------------------------

type SetAntiAlias struct {
	op
	AntiAlias bool
}

type SetStyle struct {
	op
	Style Style
}

type SetColor struct {
	op
	Color Color
}

type SetStrokeWidth struct {
	op
	Width float64
}

type SetStrokeMiter struct {
	op
	Limit float64
}

type SetStrokeCap struct {
	op
	Cap LineCap
}

type SetStrokeJoin struct {
	op
	Join LineJoin
}

type SetBlendMode struct {
	op
	Mode BlendMode
}

type SetBlender struct {
	op
	Blender Blender
}

type SetColorFilter struct {
	op
	Filter ColorFilter
}

type SetInvertColors struct {
	op
	Invert bool
}

type SetImageFilter struct {
	op
	Filter ImageFilter
}

type SetMaskFilter struct {
	op
	Filter MaskFilter
}

type SetMaskBlurFilter struct {
	op
	Style BlurStyle
	Sigma float64
}

type SetPathEffect struct {
	op
	Effect PathEffect
}

func (SetAntiAlias) Kind() OpKind      { return OpSetAntiAlias }
func (SetStyle) Kind() OpKind          { return OpSetStyle }
func (SetColor) Kind() OpKind          { return OpSetColor }
func (SetStrokeWidth) Kind() OpKind    { return OpSetStrokeWidth }
func (SetStrokeMiter) Kind() OpKind    { return OpSetStrokeMiter }
func (SetStrokeCap) Kind() OpKind      { return OpSetStrokeCap }
func (SetStrokeJoin) Kind() OpKind     { return OpSetStrokeJoin }
func (SetBlendMode) Kind() OpKind      { return OpSetBlendMode }
func (SetBlender) Kind() OpKind        { return OpSetBlender }
func (SetColorFilter) Kind() OpKind    { return OpSetColorFilter }
func (SetInvertColors) Kind() OpKind   { return OpSetInvertColors }
func (SetImageFilter) Kind() OpKind    { return OpSetImageFilter }
func (SetMaskFilter) Kind() OpKind     { return OpSetMaskFilter }
func (SetMaskBlurFilter) Kind() OpKind { return OpSetMaskBlurFilter }
func (SetPathEffect) Kind() OpKind     { return OpSetPathEffect }

// -----------------------------------------------------------------------------
// Scope, transform and clip ops
// -----------------------------------------------------------------------------

// Save opens a scope that restores transform and clip.
type Save struct{ op }

// SaveLayer opens a scope rendered into an offscreen layer. Bounds, when
// set, limits the layer in the local space of the call. WithAttributes
// composites the layer with the current paint. Backdrop filters what is
// already drawn behind the layer.
type SaveLayer struct {
	op
	Bounds         *Rect
	WithAttributes bool
	Backdrop       ImageFilter
}

// Restore closes the innermost Save or SaveLayer.
type Restore struct{ op }

type Translate struct {
	op
	TX, TY float64
}

type Scale struct {
	op
	SX, SY float64
}

// Rotate rotates by Radians.
type Rotate struct {
	op
	Radians float64
}

type Skew struct {
	op
	SX, SY float64
}

// Transform2DAffine concatenates a 2x3 row-major matrix.
type Transform2DAffine struct {
	op
	Matrix f64.Aff3
}

// TransformFullPerspective concatenates a 4x4 row-major matrix.
type TransformFullPerspective struct {
	op
	Matrix f64.Mat4
}

// TransformReset sets the transform to identity.
type TransformReset struct{ op }

type ClipRect struct {
	op
	Rect      Rect
	Op        ClipOp
	AntiAlias bool
}

type ClipRRect struct {
	op
	RRect     RRect
	Op        ClipOp
	AntiAlias bool
}

type ClipPath struct {
	op
	Path      *Path
	Op        ClipOp
	AntiAlias bool
}

func (Save) Kind() OpKind                     { return OpSave }
func (SaveLayer) Kind() OpKind                { return OpSaveLayer }
func (Restore) Kind() OpKind                  { return OpRestore }
func (Translate) Kind() OpKind                { return OpTranslate }
func (Scale) Kind() OpKind                    { return OpScale }
func (Rotate) Kind() OpKind                   { return OpRotate }
func (Skew) Kind() OpKind                     { return OpSkew }
func (Transform2DAffine) Kind() OpKind        { return OpTransform2DAffine }
func (TransformFullPerspective) Kind() OpKind { return OpTransformFullPerspective }
func (TransformReset) Kind() OpKind           { return OpTransformReset }
func (ClipRect) Kind() OpKind                 { return OpClipRect }
func (ClipRRect) Kind() OpKind                { return OpClipRRect }
func (ClipPath) Kind() OpKind                 { return OpClipPath }

// -----------------------------------------------------------------------------
// Draw ops
// -----------------------------------------------------------------------------

// DrawPaint fills the whole clip with the current paint.
type DrawPaint struct{ op }

// DrawColor fills the whole clip with Color, ignoring the current paint.
type DrawColor struct {
	op
	Color Color
	Mode  BlendMode
}

type DrawLine struct {
	op
	P0, P1 Point
}

type DrawRect struct {
	op
	Rect Rect
}

type DrawOval struct {
	op
	Bounds Rect
}

type DrawCircle struct {
	op
	Center Point
	Radius float64
}

type DrawRRect struct {
	op
	RRect RRect
}

// DrawDRRect draws the area between Outer and Inner.
type DrawDRRect struct {
	op
	Outer, Inner RRect
}

type DrawPath struct {
	op
	Path *Path
}

// DrawArc draws part of the oval inscribed in Oval. Angles are radians.
type DrawArc struct {
	op
	Oval       Rect
	StartAngle float64
	SweepAngle float64
	UseCenter  bool
}

type DrawPoints struct {
	op
	Mode   PointMode
	Points []Point
}

type DrawVertices struct {
	op
	Vertices *Vertices
	Mode     BlendMode
}

// DrawImage draws Image with its top-left corner at Point.
type DrawImage struct {
	op
	Image          image.Image
	Point          Point
	Sampling       Sampling
	WithAttributes bool
}

// DrawImageRect draws the Src portion of Image into Dst.
type DrawImageRect struct {
	op
	Image          image.Image
	Src, Dst       Rect
	Sampling       Sampling
	WithAttributes bool
	Constraint     SrcRectConstraint
}

// DrawImageNine draws Image into Dst, stretching only the Center region.
type DrawImageNine struct {
	op
	Image          image.Image
	Center         image.Rectangle
	Dst            Rect
	Sampling       Sampling
	WithAttributes bool
}

// DrawAtlas draws sprites from Atlas. Tex[i] selects the sprite and
// Transforms[i] places it; Colors, when present, are blended with Mode.
type DrawAtlas struct {
	op
	Atlas          image.Image
	Transforms     []RSTransform
	Tex            []Rect
	Colors         []Color
	Mode           BlendMode
	Sampling       Sampling
	WithAttributes bool
}

// DrawPicture draws an external picture, optionally transformed by Matrix.
type DrawPicture struct {
	op
	Picture        Picture
	Matrix         *Matrix
	WithAttributes bool
}

// DrawDisplayList draws a nested display list with group Opacity.
type DrawDisplayList struct {
	op
	List    *DisplayList
	Opacity float64
}

// DrawTextBlob draws Blob with its origin at (X, Y).
type DrawTextBlob struct {
	op
	Blob TextBlob
	X, Y float64
}

// DrawShadow draws the shadow Path casts at Elevation.
type DrawShadow struct {
	op
	Path                *Path
	Color               Color
	Elevation           float64
	TransparentOccluder bool
	DPR                 float64
}

func (DrawPaint) Kind() OpKind       { return OpDrawPaint }
func (DrawColor) Kind() OpKind       { return OpDrawColor }
func (DrawLine) Kind() OpKind        { return OpDrawLine }
func (DrawRect) Kind() OpKind        { return OpDrawRect }
func (DrawOval) Kind() OpKind        { return OpDrawOval }
func (DrawCircle) Kind() OpKind      { return OpDrawCircle }
func (DrawRRect) Kind() OpKind       { return OpDrawRRect }
func (DrawDRRect) Kind() OpKind      { return OpDrawDRRect }
func (DrawPath) Kind() OpKind        { return OpDrawPath }
func (DrawArc) Kind() OpKind         { return OpDrawArc }
func (DrawPoints) Kind() OpKind      { return OpDrawPoints }
func (DrawVertices) Kind() OpKind    { return OpDrawVertices }
func (DrawImage) Kind() OpKind       { return OpDrawImage }
func (DrawImageRect) Kind() OpKind   { return OpDrawImageRect }
func (DrawImageNine) Kind() OpKind   { return OpDrawImageNine }
func (DrawAtlas) Kind() OpKind       { return OpDrawAtlas }
func (DrawPicture) Kind() OpKind     { return OpDrawPicture }
func (DrawDisplayList) Kind() OpKind { return OpDrawDisplayList }
func (DrawTextBlob) Kind() OpKind    { return OpDrawTextBlob }
func (DrawShadow) Kind() OpKind      { return OpDrawShadow }
