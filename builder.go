package displaylist

import (
	"image"
	"slices"

	"golang.org/x/image/math/f64"
)

// Builder records canvas calls into a DisplayList. Paint arguments are
// diffed against the attributes already recorded and only changes are
// emitted; a nil paint means DefaultPaint.
//
// Filters and path effects are compared with ==, so values used as paint
// attributes must be comparable. Slices passed to draw calls are copied;
// paths, images and nested lists are retained and must not be modified
// afterwards.
//
// A Builder is not safe for concurrent use.
type Builder struct {
	opts  builderOptions
	ops   []Op
	attrs Paint
	depth int
}

// NewBuilder creates an empty builder.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{attrs: DefaultPaint()}
	for _, opt := range opts {
		opt(&b.opts)
	}
	return b
}

// Len returns the number of ops recorded so far.
func (b *Builder) Len() int { return len(b.ops) }

// Depth returns the number of open save and saveLayer scopes.
func (b *Builder) Depth() int { return b.depth }

// Build closes any open scopes and returns the recorded list. The builder
// is reset and may be reused.
func (b *Builder) Build() *DisplayList {
	for b.depth > 0 {
		b.Restore()
	}
	dl := newDisplayList(b.ops, b.opts.cull)
	b.ops = nil
	b.attrs = DefaultPaint()
	return dl
}

func (b *Builder) push(o Op) {
	b.ops = append(b.ops, o)
}

// setAttributes records the attribute ops needed to turn the recorded
// paint into p.
func (b *Builder) setAttributes(p *Paint) {
	if p == nil {
		d := DefaultPaint()
		p = &d
	}
	cur := &b.attrs

	if p.AntiAlias != cur.AntiAlias {
		b.push(SetAntiAlias{AntiAlias: p.AntiAlias})
	}
	if p.Style != cur.Style {
		b.push(SetStyle{Style: p.Style})
	}
	if p.Color != cur.Color {
		b.push(SetColor{Color: p.Color})
	}
	if p.StrokeWidth != cur.StrokeWidth {
		b.push(SetStrokeWidth{Width: p.StrokeWidth})
	}
	if p.StrokeMiter != cur.StrokeMiter {
		b.push(SetStrokeMiter{Limit: p.StrokeMiter})
	}
	if p.StrokeCap != cur.StrokeCap {
		b.push(SetStrokeCap{Cap: p.StrokeCap})
	}
	if p.StrokeJoin != cur.StrokeJoin {
		b.push(SetStrokeJoin{Join: p.StrokeJoin})
	}
	switch {
	case p.Blender != nil:
		if p.Blender != cur.Blender {
			b.push(SetBlender{Blender: p.Blender})
		}
	case cur.Blender != nil || p.BlendMode != cur.BlendMode:
		b.push(SetBlendMode{Mode: p.BlendMode})
	}
	if p.ColorFilter != cur.ColorFilter {
		b.push(SetColorFilter{Filter: p.ColorFilter})
	}
	if p.InvertColors != cur.InvertColors {
		b.push(SetInvertColors{Invert: p.InvertColors})
	}
	if p.ImageFilter != cur.ImageFilter {
		b.push(SetImageFilter{Filter: p.ImageFilter})
	}
	if p.MaskFilter != cur.MaskFilter {
		if blur, ok := p.MaskFilter.(BlurMaskFilter); ok {
			b.push(SetMaskBlurFilter{Style: blur.Style, Sigma: blur.Sigma})
		} else {
			b.push(SetMaskFilter{Filter: p.MaskFilter})
		}
	}
	if p.PathEffect != cur.PathEffect {
		b.push(SetPathEffect{Effect: p.PathEffect})
	}

	b.attrs = *p
}

// -----------------------------------------------------------------------------
// Scopes and transforms
// -----------------------------------------------------------------------------

// Save records a save.
func (b *Builder) Save() {
	b.push(Save{})
	b.depth++
}

// SaveLayer records a save-layer limited to bounds, if given. A non-nil
// paint composites the layer with its attributes; a non-nil backdrop
// filters the content behind the layer.
func (b *Builder) SaveLayer(bounds *Rect, paint *Paint, backdrop ImageFilter) {
	if paint != nil {
		b.setAttributes(paint)
	}
	var bp *Rect
	if bounds != nil {
		r := *bounds
		bp = &r
	}
	b.push(SaveLayer{Bounds: bp, WithAttributes: paint != nil, Backdrop: backdrop})
	b.depth++
}

// Restore closes the innermost scope. Unbalanced restores are dropped.
func (b *Builder) Restore() {
	if b.depth == 0 {
		Logger().Warn("displaylist: builder restore without matching save ignored")
		return
	}
	b.push(Restore{})
	b.depth--
}

// Translate records a translation.
func (b *Builder) Translate(tx, ty float64) {
	if tx != 0 || ty != 0 {
		b.push(Translate{TX: tx, TY: ty})
	}
}

// Scale records a scale.
func (b *Builder) Scale(sx, sy float64) {
	if sx != 1 || sy != 1 {
		b.push(Scale{SX: sx, SY: sy})
	}
}

// Rotate records a rotation in radians.
func (b *Builder) Rotate(radians float64) {
	if radians != 0 {
		b.push(Rotate{Radians: radians})
	}
}

// Skew records a skew.
func (b *Builder) Skew(sx, sy float64) {
	if sx != 0 || sy != 0 {
		b.push(Skew{SX: sx, SY: sy})
	}
}

// Transform2DAffine records an affine transform.
func (b *Builder) Transform2DAffine(m f64.Aff3) {
	b.push(Transform2DAffine{Matrix: m})
}

// TransformFullPerspective records a 4x4 transform.
func (b *Builder) TransformFullPerspective(m f64.Mat4) {
	b.push(TransformFullPerspective{Matrix: m})
}

// TransformReset records a reset to the identity transform.
func (b *Builder) TransformReset() {
	b.push(TransformReset{})
}

// -----------------------------------------------------------------------------
// Clips
// -----------------------------------------------------------------------------

func (b *Builder) ClipRect(r Rect, op ClipOp, antiAlias bool) {
	b.push(ClipRect{Rect: r, Op: op, AntiAlias: antiAlias})
}

func (b *Builder) ClipRRect(rr RRect, op ClipOp, antiAlias bool) {
	b.push(ClipRRect{RRect: rr, Op: op, AntiAlias: antiAlias})
}

func (b *Builder) ClipPath(p *Path, op ClipOp, antiAlias bool) {
	if p == nil {
		return
	}
	b.push(ClipPath{Path: p, Op: op, AntiAlias: antiAlias})
}

// -----------------------------------------------------------------------------
// Draws
// -----------------------------------------------------------------------------

// DrawPaint fills the clip with paint.
func (b *Builder) DrawPaint(paint *Paint) {
	b.setAttributes(paint)
	b.push(DrawPaint{})
}

// DrawColor fills the clip with c blended by mode.
func (b *Builder) DrawColor(c Color, mode BlendMode) {
	b.push(DrawColor{Color: c, Mode: mode})
}

func (b *Builder) DrawLine(p0, p1 Point, paint *Paint) {
	b.setAttributes(paint)
	b.push(DrawLine{P0: p0, P1: p1})
}

func (b *Builder) DrawRect(r Rect, paint *Paint) {
	b.setAttributes(paint)
	b.push(DrawRect{Rect: r})
}

func (b *Builder) DrawOval(bounds Rect, paint *Paint) {
	b.setAttributes(paint)
	b.push(DrawOval{Bounds: bounds})
}

func (b *Builder) DrawCircle(center Point, radius float64, paint *Paint) {
	b.setAttributes(paint)
	b.push(DrawCircle{Center: center, Radius: radius})
}

func (b *Builder) DrawRRect(rr RRect, paint *Paint) {
	b.setAttributes(paint)
	b.push(DrawRRect{RRect: rr})
}

func (b *Builder) DrawDRRect(outer, inner RRect, paint *Paint) {
	b.setAttributes(paint)
	b.push(DrawDRRect{Outer: outer, Inner: inner})
}

func (b *Builder) DrawPath(p *Path, paint *Paint) {
	if p == nil {
		return
	}
	b.setAttributes(paint)
	b.push(DrawPath{Path: p})
}

// DrawArc draws the arc of oval from start sweeping by sweep radians.
func (b *Builder) DrawArc(oval Rect, start, sweep float64, useCenter bool, paint *Paint) {
	b.setAttributes(paint)
	b.push(DrawArc{Oval: oval, StartAngle: start, SweepAngle: sweep, UseCenter: useCenter})
}

func (b *Builder) DrawPoints(mode PointMode, pts []Point, paint *Paint) {
	if len(pts) == 0 {
		return
	}
	b.setAttributes(paint)
	b.push(DrawPoints{Mode: mode, Points: slices.Clone(pts)})
}

func (b *Builder) DrawVertices(v *Vertices, mode BlendMode, paint *Paint) {
	if v == nil {
		return
	}
	b.setAttributes(paint)
	b.push(DrawVertices{Vertices: v, Mode: mode})
}

// DrawImage draws img at p. A nil paint draws it without attributes.
func (b *Builder) DrawImage(img image.Image, p Point, sampling Sampling, paint *Paint) {
	if img == nil {
		return
	}
	if paint != nil {
		b.setAttributes(paint)
	}
	b.push(DrawImage{Image: img, Point: p, Sampling: sampling, WithAttributes: paint != nil})
}

func (b *Builder) DrawImageRect(img image.Image, src, dst Rect, sampling Sampling, paint *Paint, constraint SrcRectConstraint) {
	if img == nil {
		return
	}
	if paint != nil {
		b.setAttributes(paint)
	}
	b.push(DrawImageRect{
		Image: img, Src: src, Dst: dst, Sampling: sampling,
		WithAttributes: paint != nil, Constraint: constraint,
	})
}

func (b *Builder) DrawImageNine(img image.Image, center image.Rectangle, dst Rect, sampling Sampling, paint *Paint) {
	if img == nil {
		return
	}
	if paint != nil {
		b.setAttributes(paint)
	}
	b.push(DrawImageNine{Image: img, Center: center, Dst: dst, Sampling: sampling, WithAttributes: paint != nil})
}

// DrawAtlas draws one sprite per transform. xforms and tex must have the
// same length; colors is either empty or of that length too.
func (b *Builder) DrawAtlas(atlas image.Image, xforms []RSTransform, tex []Rect, colors []Color,
	mode BlendMode, sampling Sampling, paint *Paint) {
	if atlas == nil || len(xforms) == 0 {
		return
	}
	if paint != nil {
		b.setAttributes(paint)
	}
	b.push(DrawAtlas{
		Atlas:          atlas,
		Transforms:     slices.Clone(xforms),
		Tex:            slices.Clone(tex),
		Colors:         slices.Clone(colors),
		Mode:           mode,
		Sampling:       sampling,
		WithAttributes: paint != nil,
	})
}

func (b *Builder) DrawPicture(pic Picture, m *Matrix, paint *Paint) {
	if pic == nil {
		return
	}
	if paint != nil {
		b.setAttributes(paint)
	}
	var mp *Matrix
	if m != nil {
		mc := *m
		mp = &mc
	}
	b.push(DrawPicture{Picture: pic, Matrix: mp, WithAttributes: paint != nil})
}

// DrawDisplayList draws dl with group opacity.
func (b *Builder) DrawDisplayList(dl *DisplayList, opacity float64) {
	if dl == nil {
		return
	}
	b.push(DrawDisplayList{List: dl, Opacity: opacity})
}

func (b *Builder) DrawTextBlob(blob TextBlob, x, y float64, paint *Paint) {
	if blob == nil {
		return
	}
	b.setAttributes(paint)
	b.push(DrawTextBlob{Blob: blob, X: x, Y: y})
}

// DrawShadow draws the shadow p casts at elevation for a device pixel
// ratio dpr.
func (b *Builder) DrawShadow(p *Path, c Color, elevation float64, transparentOccluder bool, dpr float64) {
	if p == nil {
		return
	}
	b.push(DrawShadow{Path: p, Color: c, Elevation: elevation, TransparentOccluder: transparentOccluder, DPR: dpr})
}
