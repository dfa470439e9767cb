package layer

import (
	"math"

	"github.com/gogpu/displaylist"
)

// everywhere stands in for the bounds of content that cannot be bounded.
var everywhere = displaylist.Rect{
	MinX: math.Inf(-1), MinY: math.Inf(-1),
	MaxX: math.Inf(1), MaxY: math.Inf(1),
}

// Layer is a node of the layer tree. Preroll runs once per frame before
// Paint and computes the layer's paint bounds.
type Layer interface {
	// Preroll computes paint bounds and culling for the frame and reports
	// in ctx.CanInheritOpacity whether Paint can fold an inherited opacity
	// into its own drawing.
	Preroll(ctx *PrerollContext)

	// Paint records the layer into ctx.Builder.
	Paint(ctx *PaintContext)

	// PaintBounds returns the bounds computed by the last Preroll, in the
	// parent's coordinates.
	PaintBounds() displaylist.Rect

	// NeedsPainting reports whether the last Preroll found the layer
	// visible.
	NeedsPainting() bool
}

// PrerollContext carries the state inherited from ancestors during
// Preroll.
type PrerollContext struct {
	// Cull is the visible device-space area.
	Cull displaylist.Rect
	// Matrix maps the current layer's coordinates to device space.
	Matrix displaylist.Matrix
	// Opacity is the accumulated ancestor opacity.
	Opacity float64

	// RasterCache and Damage are optional.
	RasterCache *RasterCache
	Damage      *DamageTracker

	// CanInheritOpacity is the result slot written by each Preroll.
	CanInheritOpacity bool
}

// NewPrerollContext returns a context for a tree drawn into cull with an
// identity transform.
func NewPrerollContext(cull displaylist.Rect) *PrerollContext {
	return &PrerollContext{
		Cull:    cull,
		Matrix:  displaylist.Identity(),
		Opacity: 1,
	}
}

// PaintContext carries the recording state during Paint.
type PaintContext struct {
	Builder *displaylist.Builder
	Matrix  displaylist.Matrix
	// Clip is the device-space clip in effect, a conservative rectangle.
	Clip        displaylist.Rect
	Opacity     float64
	RasterCache *RasterCache

	// Composites collects the raster cache images drawn in place of
	// display lists.
	Composites []CompositeStep
}

// NewPaintContext returns a context recording into b. rc may be nil.
func NewPaintContext(b *displaylist.Builder, rc *RasterCache) *PaintContext {
	return &PaintContext{
		Builder:     b,
		Matrix:      displaylist.Identity(),
		Clip:        everywhere,
		Opacity:     1,
		RasterCache: rc,
	}
}

// Frame is the output of painting a tree: the recorded display list and
// the raster cache images composited into it.
type Frame struct {
	List       *displaylist.DisplayList
	Composites []CompositeStep
}

// PaintFrame prerolls and paints root into a new display list culled to
// cull. rc and dt may be nil; when set, the raster cache frame and the
// damage frame are left open for the caller to end.
func PaintFrame(root Layer, cull displaylist.Rect, rc *RasterCache, dt *DamageTracker) Frame {
	pre := NewPrerollContext(cull)
	pre.RasterCache = rc
	pre.Damage = dt
	root.Preroll(pre)

	b := displaylist.NewBuilder(displaylist.WithBuilderCullRect(cull))
	ctx := NewPaintContext(b, rc)
	ctx.Clip = cull
	if root.NeedsPainting() {
		root.Paint(ctx)
	}
	return Frame{List: b.Build(), Composites: ctx.Composites}
}

// layerState holds the Preroll results shared by all layers.
type layerState struct {
	paintBounds   displaylist.Rect
	needsPainting bool
}

func (s *layerState) PaintBounds() displaylist.Rect { return s.paintBounds }

func (s *layerState) NeedsPainting() bool { return s.needsPainting }

// setPaintBounds stores local and culls it against ctx. Bounds that do not
// map to device space are kept visible.
func (s *layerState) setPaintBounds(ctx *PrerollContext, local displaylist.Rect) {
	s.paintBounds = local
	if local.IsEmpty() {
		s.needsPainting = false
		return
	}
	dev, ok := ctx.Matrix.MapRect(local)
	s.needsPainting = !ok || dev.Intersects(ctx.Cull)
}

// deviceBounds maps local through ctx, clipped to the cull rect.
func deviceBounds(ctx *PrerollContext, local displaylist.Rect) displaylist.Rect {
	dev, ok := ctx.Matrix.MapRect(local)
	if !ok {
		return ctx.Cull
	}
	r, _ := dev.Intersect(ctx.Cull)
	return r
}

// ContainerLayer groups child layers.
type ContainerLayer struct {
	layerState
	children []Layer
}

// NewContainerLayer returns a container holding children.
func NewContainerLayer(children ...Layer) *ContainerLayer {
	return &ContainerLayer{children: children}
}

// Add appends a child.
func (c *ContainerLayer) Add(l Layer) { c.children = append(c.children, l) }

// Children returns the child layers.
func (c *ContainerLayer) Children() []Layer { return c.children }

// Preroll prerolls the children and unions their bounds.
func (c *ContainerLayer) Preroll(ctx *PrerollContext) {
	c.setPaintBounds(ctx, c.prerollChildren(ctx))
}

// prerollChildren returns the union of the children's paint bounds. The
// group can inherit opacity only when every child can and no two children
// overlap.
func (c *ContainerLayer) prerollChildren(ctx *PrerollContext) displaylist.Rect {
	var bounds displaylist.Rect
	inherit := true
	for _, child := range c.children {
		ctx.CanInheritOpacity = false
		child.Preroll(ctx)
		cb := child.PaintBounds()
		if !ctx.CanInheritOpacity || cb.Intersects(bounds) {
			inherit = false
		}
		bounds = bounds.Union(cb)
	}
	ctx.CanInheritOpacity = inherit
	return bounds
}

// Paint paints the visible children in order.
func (c *ContainerLayer) Paint(ctx *PaintContext) {
	c.paintChildren(ctx)
}

func (c *ContainerLayer) paintChildren(ctx *PaintContext) {
	for _, child := range c.children {
		if child.NeedsPainting() {
			child.Paint(ctx)
		}
	}
}
