package displaylist

import (
	"fmt"
	"math"

	"github.com/gogpu/displaylist/internal/filter"
)

// minStrokeHalfWidth keeps hairlines and zero-width strokes from collapsing
// to empty bounds.
const minStrokeHalfWidth = 0.01

// layerKind identifies what opened a layer record.
type layerKind uint8

const (
	layerRoot layerKind = iota
	layerSave
	layerSaveLayer
)

// layerRecord is one nesting level. bounds is expressed in the device space
// of the layer: the surface for root and plain saves, the offscreen layer
// for save-layers.
type layerRecord struct {
	kind      layerKind
	bounds    Rect
	unbounded bool

	// save-layer only
	filter             ImageFilter
	nopsOnTransparency bool
}

// OpBounds reports the contribution of one draw op. Bounds is clipped and
// in the device space of the enclosing layer; it is empty when the op was
// clipped out. Unbounded is set when the op could not be bounded and no
// clip was active.
type OpBounds struct {
	Index     int
	Op        Op
	Bounds    Rect
	Unbounded bool
	Depth     int
}

// BoundsCalculator interprets an op stream and accumulates conservative
// device-space bounds for it, one accumulator per save/saveLayer nesting
// level.
//
// A calculator processes a single stream; call Reset before reusing it.
// It is not safe for concurrent use.
type BoundsCalculator struct {
	opts   calculatorOptions
	matrix *MatrixState
	clip   *ClipState
	paint  *PaintState
	layers []layerRecord

	opIndex     int
	opBounds    Rect
	opUnbounded bool
}

// NewBoundsCalculator creates a calculator with a single root layer.
func NewBoundsCalculator(opts ...CalculatorOption) *BoundsCalculator {
	c := &BoundsCalculator{opts: defaultCalculatorOptions()}
	for _, opt := range opts {
		opt(&c.opts)
	}
	c.Reset()
	return c
}

// Reset discards all state and returns the calculator to its freshly
// constructed form, keeping the options.
func (c *BoundsCalculator) Reset() {
	c.matrix = NewMatrixState()
	c.clip = NewClipState(c.matrix, c.opts.cull)
	c.paint = NewPaintState(c.opts.opacity)
	c.layers = append(c.layers[:0], layerRecord{kind: layerRoot})
	c.opIndex = 0
}

// Matrix returns the current transform.
func (c *BoundsCalculator) Matrix() Matrix { return c.matrix.Matrix() }

// ClipBounds returns the current device-space clip; ok is false without a
// clip.
func (c *BoundsCalculator) ClipBounds() (Rect, bool) { return c.clip.Bounds() }

// Paint returns the live paint state.
func (c *BoundsCalculator) Paint() *PaintState { return c.paint }

// Depth returns the number of open save and saveLayer scopes.
func (c *BoundsCalculator) Depth() int { return len(c.layers) - 1 }

// LayerBounds returns the bounds accumulated so far by the innermost layer.
func (c *BoundsCalculator) LayerBounds() Rect { return c.top().bounds }

// LayerIsUnbounded reports whether the innermost layer is unbounded.
func (c *BoundsCalculator) LayerIsUnbounded() bool { return c.top().unbounded }

// Bounds returns the root bounds. It panics while scopes remain open. When
// the stream is unbounded the result only covers the bounded ops.
func (c *BoundsCalculator) Bounds() Rect {
	root := c.root()
	if root.unbounded {
		Logger().Debug("displaylist: returning partial bounds for unbounded op stream",
			"bounds", root.bounds)
	}
	return root.bounds
}

// IsUnbounded reports whether some op could not be bounded and no clip
// limited it. It panics while scopes remain open.
func (c *BoundsCalculator) IsUnbounded() bool {
	return c.root().unbounded
}

// PaintNopsOnTransparency reports whether the current paint leaves the
// destination untouched where the source is transparent black.
func (c *BoundsCalculator) PaintNopsOnTransparency() bool {
	return c.paint.NopsOnTransparency()
}

func (c *BoundsCalculator) top() *layerRecord {
	return &c.layers[len(c.layers)-1]
}

func (c *BoundsCalculator) root() *layerRecord {
	if n := len(c.layers); n != 1 {
		panic(fmt.Sprintf("displaylist: bounds queried with %d unrestored layers", n-1))
	}
	return &c.layers[0]
}

// -----------------------------------------------------------------------------
// Accumulation
// -----------------------------------------------------------------------------

// AccumulateOpBounds grows local for the current paint as described by
// flags, then maps, clips and accumulates it. Ops whose paint makes them
// unboundable accumulate as unbounded instead.
func (c *BoundsCalculator) AccumulateOpBounds(local Rect, flags AttributeFlags) {
	if b, ok := c.adjustBoundsForPaint(local, flags); ok {
		c.AccumulateBounds(b)
	} else {
		c.AccumulateUnbounded()
	}
}

// adjustBoundsForPaint applies path effect, stroke, mask filter and image
// filter growth in that order. ok is false when one of them cannot report
// fast bounds.
func (c *BoundsCalculator) adjustBoundsForPaint(b Rect, flags AttributeFlags) (Rect, bool) {
	if flags.IgnoresPaint() {
		return b, true
	}
	p := c.paint

	if flags.IsGeometric() {
		if pe := p.PathEffect(); pe != nil {
			if !pe.CanComputeFastBounds() {
				return b, false
			}
			b = pe.ComputeFastBounds(b)
		}
		if flags.IsStroked(p.Style()) {
			pad := 1.0
			if p.StrokeJoin() == LineJoinMiter && flags.MayHaveAcuteJoins() {
				pad = max(pad, p.StrokeMiter())
			}
			if p.StrokeCap() == LineCapSquare && flags.MayHaveDiagonalCaps() {
				pad = max(pad, math.Sqrt2)
			}
			pad *= max(p.StrokeWidth()*0.5, minStrokeHalfWidth)
			b = b.Outset(pad, pad)
		}
	}

	if flags.AppliesMaskFilter() {
		if mf := p.MaskFilter(); mf != nil {
			if !mf.CanComputeFastBounds() {
				return b, false
			}
			b = mf.ComputeFastBounds(b)
		} else if blur, ok := p.MaskBlur(); ok {
			d := filter.BlurOutset(blur.Sigma)
			b = b.Outset(d, d)
		}
	}

	if flags.AppliesImageFilter() {
		if f := p.ImageFilter(); f != nil {
			if !f.CanComputeFastBounds() {
				return b, false
			}
			b = f.ComputeFastBounds(b)
		}
	}
	return b, true
}

// AccumulateBounds maps local through the current transform, clips it and
// adds it to the current layer without any paint adjustment.
func (c *BoundsCalculator) AccumulateBounds(local Rect) {
	device, ok := c.matrix.Matrix().MapRect(local)
	if !ok {
		c.AccumulateUnbounded()
		return
	}
	c.accumulateDevice(device)
}

// AccumulateUnbounded records content of unknown extent. With a clip the
// clip itself is accumulated; without one the current layer is flagged.
func (c *BoundsCalculator) AccumulateUnbounded() {
	if clip, ok := c.clip.Bounds(); ok {
		if !c.clip.IsEmpty() {
			c.accumulateDevice(clip)
		}
		return
	}
	c.top().unbounded = true
	c.opUnbounded = true
}

func (c *BoundsCalculator) accumulateDevice(r Rect) {
	if clip, ok := c.clip.Bounds(); ok {
		if c.clip.IsEmpty() {
			return
		}
		var hit bool
		if r, hit = r.Intersect(clip); !hit {
			return
		}
	}
	if r.IsEmpty() {
		return
	}
	l := c.top()
	l.bounds = l.bounds.Union(r)
	c.opBounds = c.opBounds.Union(r)
}

// -----------------------------------------------------------------------------
// Scopes
// -----------------------------------------------------------------------------

// Save opens a plain scope with its own accumulator.
func (c *BoundsCalculator) Save() {
	c.matrix.Save()
	c.clip.Save()
	c.paint.SaveOpacity(false)
	c.layers = append(c.layers, layerRecord{kind: layerSave})
}

// SaveLayer opens an offscreen scope. Content inside is accumulated in the
// layer's own space: the transform starts at identity and the clip at
// bounds, if given. withAttributes composites the layer with the current
// paint, whose image filter and transparency behaviour are captured now.
func (c *BoundsCalculator) SaveLayer(bounds *Rect, withAttributes bool, backdrop ImageFilter) {
	c.matrix.Save()
	c.clip.Save()
	c.paint.SaveOpacity(withAttributes)

	rec := layerRecord{kind: layerSaveLayer, nopsOnTransparency: true}
	if withAttributes {
		rec.filter = c.paint.ImageFilter()
		rec.nopsOnTransparency = c.paint.NopsOnTransparency()
	}
	c.layers = append(c.layers, rec)

	c.matrix.Reset()
	c.clip.ResetClip()
	if bounds != nil {
		c.clip.ClipRect(*bounds, ClipIntersect, false)
	}
	if backdrop != nil {
		c.AccumulateUnbounded()
	}
}

// Restore closes the innermost scope and merges its bounds into the parent.
// It panics at the root.
func (c *BoundsCalculator) Restore() {
	n := len(c.layers)
	if n <= 1 {
		panic("displaylist: restore without matching save")
	}
	layer := c.layers[n-1]
	c.layers = c.layers[:n-1]
	c.matrix.Restore()
	c.clip.Restore()
	c.paint.RestoreOpacity()

	switch layer.kind {
	case layerSave:
		if !layer.bounds.IsEmpty() {
			c.accumulateDevice(layer.bounds)
		}
	case layerSaveLayer:
		if !layer.bounds.IsEmpty() {
			b := layer.bounds
			if f := layer.filter; f != nil {
				if f.CanComputeFastBounds() {
					c.AccumulateBounds(f.ComputeFastBounds(b))
				} else {
					layer.unbounded = true
				}
			} else {
				c.AccumulateBounds(b)
			}
		}
		if !layer.nopsOnTransparency {
			Logger().Debug("displaylist: save layer paint affects transparent pixels, flooding parent clip")
			c.AccumulateUnbounded()
		}
	}
	if layer.unbounded {
		c.AccumulateUnbounded()
	}
}

// -----------------------------------------------------------------------------
// Dispatch
// -----------------------------------------------------------------------------

// Process applies every op in order.
func (c *BoundsCalculator) Process(ops []Op) {
	for _, o := range ops {
		c.Apply(o)
	}
}

// Apply interprets one op. It panics on op types outside this package.
func (c *BoundsCalculator) Apply(o Op) {
	c.opBounds, c.opUnbounded = Rect{}, false

	switch o := o.(type) {
	case SetAntiAlias:
		c.paint.SetAntiAlias(o.AntiAlias)
	case SetStyle:
		c.paint.SetStyle(o.Style)
	case SetColor:
		c.paint.SetColor(o.Color)
	case SetStrokeWidth:
		c.paint.SetStrokeWidth(o.Width)
	case SetStrokeMiter:
		c.paint.SetStrokeMiter(o.Limit)
	case SetStrokeCap:
		c.paint.SetStrokeCap(o.Cap)
	case SetStrokeJoin:
		c.paint.SetStrokeJoin(o.Join)
	case SetBlendMode:
		c.paint.SetBlendMode(o.Mode)
	case SetBlender:
		c.paint.SetBlender(o.Blender)
	case SetColorFilter:
		c.paint.SetColorFilter(o.Filter)
	case SetInvertColors:
		c.paint.SetInvertColors(o.Invert)
	case SetImageFilter:
		c.paint.SetImageFilter(o.Filter)
	case SetMaskFilter:
		c.paint.SetMaskFilter(o.Filter)
	case SetMaskBlurFilter:
		c.paint.SetMaskBlurFilter(o.Style, o.Sigma)
	case SetPathEffect:
		c.paint.SetPathEffect(o.Effect)

	case Save:
		c.Save()
	case SaveLayer:
		c.SaveLayer(o.Bounds, o.WithAttributes, o.Backdrop)
	case Restore:
		c.Restore()

	case Translate:
		c.matrix.Translate(o.TX, o.TY)
	case Scale:
		c.matrix.Scale(o.SX, o.SY)
	case Rotate:
		c.matrix.Rotate(o.Radians)
	case Skew:
		c.matrix.Skew(o.SX, o.SY)
	case Transform2DAffine:
		c.matrix.Transform2DAffine(o.Matrix)
	case TransformFullPerspective:
		c.matrix.TransformFullPerspective(o.Matrix)
	case TransformReset:
		c.matrix.Reset()

	case ClipRect:
		c.clip.ClipRect(o.Rect, o.Op, o.AntiAlias)
	case ClipRRect:
		c.clip.ClipRRect(o.RRect, o.Op, o.AntiAlias)
	case ClipPath:
		if o.Path != nil {
			c.clip.ClipPath(o.Path, o.Op, o.AntiAlias)
		}

	case DrawPaint, DrawColor:
		c.AccumulateUnbounded()
	case DrawLine:
		c.drawLine(o.P0, o.P1)
	case DrawRect:
		c.AccumulateOpBounds(o.Rect.Sorted(), DrawRectFlags)
	case DrawOval:
		c.AccumulateOpBounds(o.Bounds.Sorted(), DrawOvalFlags)
	case DrawCircle:
		r := math.Abs(o.Radius)
		c.AccumulateOpBounds(Rect{
			MinX: o.Center.X - r, MinY: o.Center.Y - r,
			MaxX: o.Center.X + r, MaxY: o.Center.Y + r,
		}, DrawCircleFlags)
	case DrawRRect:
		c.AccumulateOpBounds(o.RRect.Bounds().Sorted(), DrawRRectFlags)
	case DrawDRRect:
		c.AccumulateOpBounds(o.Outer.Bounds().Sorted(), DrawDRRectFlags)
	case DrawPath:
		c.drawPath(o.Path)
	case DrawArc:
		// The whole oval, whatever the sweep.
		flags := DrawArcNoCenterFlags
		if o.UseCenter {
			flags = DrawArcWithCenterFlags
		}
		c.AccumulateOpBounds(o.Oval.Sorted(), flags)
	case DrawPoints:
		c.drawPoints(o.Mode, o.Points)
	case DrawVertices:
		if o.Vertices != nil {
			c.AccumulateOpBounds(o.Vertices.Bounds(), DrawVerticesFlags)
		}
	case DrawImage:
		if o.Image != nil {
			size := o.Image.Bounds().Size()
			c.AccumulateOpBounds(RectXYWH(o.Point.X, o.Point.Y, float64(size.X), float64(size.Y)),
				imageFlags(o.WithAttributes))
		}
	case DrawImageRect:
		c.AccumulateOpBounds(o.Dst.Sorted(), imageFlags(o.WithAttributes))
	case DrawImageNine:
		c.AccumulateOpBounds(o.Dst.Sorted(), imageFlags(o.WithAttributes))
	case DrawAtlas:
		c.drawAtlas(o)
	case DrawPicture:
		c.drawPicture(o)
	case DrawDisplayList:
		c.drawDisplayList(o.List)
	case DrawTextBlob:
		if o.Blob != nil {
			c.AccumulateOpBounds(o.Blob.Bounds().Offset(o.X, o.Y), DrawTextBlobFlags)
		}
	case DrawShadow:
		c.drawShadow(o)

	default:
		panic(fmt.Sprintf("displaylist: unhandled op %T", o))
	}

	if c.opts.observer != nil && o.Kind().IsDraw() {
		c.opts.observer(OpBounds{
			Index:     c.opIndex,
			Op:        o,
			Bounds:    c.opBounds,
			Unbounded: c.opUnbounded,
			Depth:     c.Depth(),
		})
	}
	c.opIndex++
}

func imageFlags(withAttributes bool) AttributeFlags {
	if withAttributes {
		return DrawImageWithPaintFlags
	}
	return DrawImageFlags
}

// drawLine uses the horizontal/vertical flag set for axis-aligned lines,
// whose square caps cannot reach diagonally.
func (c *BoundsCalculator) drawLine(p0, p1 Point) {
	b := RectFromPoints(p0, p1)
	flags := DrawLineFlags
	if b.MinX == b.MaxX || b.MinY == b.MaxY {
		flags = DrawHVLineFlags
	}
	c.AccumulateOpBounds(b, flags)
}

func (c *BoundsCalculator) drawPath(p *Path) {
	if p == nil {
		return
	}
	if p.IsInverseFillType() {
		c.AccumulateUnbounded()
		return
	}
	c.AccumulateOpBounds(p.Bounds(), DrawPathFlags)
}

func (c *BoundsCalculator) drawPoints(mode PointMode, pts []Point) {
	if len(pts) == 0 {
		return
	}
	flags := DrawPointsAsPointsFlags
	switch mode {
	case PointModeLines:
		flags = DrawPointsAsLinesFlags
	case PointModePolygon:
		flags = DrawPointsAsPolygonFlags
	}
	c.AccumulateOpBounds(boundsOfPoints(pts), flags)
}

func (c *BoundsCalculator) drawAtlas(o DrawAtlas) {
	var b Rect
	for i, xf := range o.Transforms {
		if i >= len(o.Tex) {
			break
		}
		tex := o.Tex[i]
		b = b.Union(xf.SpriteBounds(tex.Width(), tex.Height()))
	}
	if b.IsEmpty() {
		return
	}
	flags := DrawAtlasFlags
	if o.WithAttributes {
		flags = DrawAtlasWithPaintFlags
	}
	c.AccumulateOpBounds(b, flags)
}

func (c *BoundsCalculator) drawPicture(o DrawPicture) {
	if o.Picture == nil {
		return
	}
	b := o.Picture.CullRect()
	if o.Matrix != nil {
		var ok bool
		if b, ok = o.Matrix.MapRect(b); !ok {
			c.AccumulateUnbounded()
			return
		}
	}
	flags := DrawPictureFlags
	if o.WithAttributes {
		flags = DrawPictureWithPaintFlags
	}
	c.AccumulateOpBounds(b, flags)
}

func (c *BoundsCalculator) drawDisplayList(dl *DisplayList) {
	if dl == nil {
		return
	}
	if b := dl.Bounds(); !b.IsEmpty() {
		c.AccumulateOpBounds(b, DrawDisplayListFlags)
	}
	if dl.IsUnbounded() {
		c.AccumulateUnbounded()
	}
}

func (c *BoundsCalculator) drawShadow(o DrawShadow) {
	if o.Path == nil {
		return
	}
	dpr := o.DPR
	if dpr <= 0 {
		dpr = 1
	}
	c.AccumulateOpBounds(ComputeShadowBounds(o.Path.Bounds(), o.Elevation, dpr), DrawShadowFlags)
}
