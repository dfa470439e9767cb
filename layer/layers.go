package layer

import (
	"golang.org/x/image/math/f64"

	"github.com/gogpu/displaylist"
)

// DisplayListLayer draws a recorded display list at an offset.
type DisplayListLayer struct {
	layerState
	Offset displaylist.Point
	List   *displaylist.DisplayList
}

// NewDisplayListLayer returns a layer drawing dl at offset.
func NewDisplayListLayer(offset displaylist.Point, dl *displaylist.DisplayList) *DisplayListLayer {
	return &DisplayListLayer{Offset: offset, List: dl}
}

func (l *DisplayListLayer) matrix(m displaylist.Matrix) displaylist.Matrix {
	return m.Concat(displaylist.TranslateMatrix(l.Offset.X, l.Offset.Y))
}

// Preroll computes the list's bounds at the offset and registers it with
// the raster cache and damage tracker.
func (l *DisplayListLayer) Preroll(ctx *PrerollContext) {
	if l.List == nil {
		l.setPaintBounds(ctx, displaylist.Rect{})
		ctx.CanInheritOpacity = true
		return
	}
	local := everywhere
	if !l.List.IsUnbounded() {
		local = l.List.Bounds().Offset(l.Offset.X, l.Offset.Y)
	}
	l.setPaintBounds(ctx, local)
	ctx.CanInheritOpacity = l.List.CanApplyGroupOpacity()
	if !l.needsPainting {
		return
	}
	if ctx.RasterCache != nil {
		ctx.RasterCache.Touch(l.List, l.matrix(ctx.Matrix))
	}
	if ctx.Damage != nil {
		ctx.Damage.Add(l.List.ID(), deviceBounds(ctx, local), ctx.Opacity)
	}
}

// Paint draws the cached image when the raster cache holds one, and the
// display list otherwise.
func (l *DisplayListLayer) Paint(ctx *PaintContext) {
	m := l.matrix(ctx.Matrix)
	if ctx.RasterCache != nil {
		if img, ok := ctx.RasterCache.Lookup(l.List, m); ok {
			blend, _ := CompositeBlendState(displaylist.BlendSrcOver)
			ctx.Composites = append(ctx.Composites, CompositeStep{
				OpIndex: ctx.Builder.Len(),
				Image:   img,
				Dst:     img.Bounds.Offset(m[3], m[7]),
				Clip:    ctx.Clip,
				Opacity: ctx.Opacity,
				Blend:   blend,
			})
			return
		}
	}
	b := ctx.Builder
	if l.Offset == (displaylist.Point{}) {
		b.DrawDisplayList(l.List, ctx.Opacity)
		return
	}
	b.Save()
	b.Translate(l.Offset.X, l.Offset.Y)
	b.DrawDisplayList(l.List, ctx.Opacity)
	b.Restore()
}

// ClipRectLayer clips its children to a rectangle.
type ClipRectLayer struct {
	ContainerLayer
	Clip displaylist.Rect
}

// NewClipRectLayer returns a layer clipping children to clip.
func NewClipRectLayer(clip displaylist.Rect, children ...Layer) *ClipRectLayer {
	return &ClipRectLayer{ContainerLayer: ContainerLayer{children: children}, Clip: clip}
}

// Preroll narrows the cull rect to the clip before prerolling children.
// Children entirely outside the cull rect are skipped.
func (l *ClipRectLayer) Preroll(ctx *PrerollContext) {
	saved := ctx.Cull
	if dev, ok := ctx.Matrix.MapRect(l.Clip); ok {
		cull, hit := saved.Intersect(dev)
		if !hit {
			l.setPaintBounds(ctx, displaylist.Rect{})
			ctx.CanInheritOpacity = true
			return
		}
		ctx.Cull = cull
	}
	child := l.prerollChildren(ctx)
	ctx.Cull = saved

	local, _ := child.Intersect(l.Clip)
	l.setPaintBounds(ctx, local)
}

// Paint records the clip around the children.
func (l *ClipRectLayer) Paint(ctx *PaintContext) {
	b := ctx.Builder
	b.Save()
	b.ClipRect(l.Clip, displaylist.ClipIntersect, true)
	saved := ctx.Clip
	if dev, ok := ctx.Matrix.MapRect(l.Clip); ok {
		ctx.Clip, _ = saved.Intersect(dev)
	}
	l.paintChildren(ctx)
	ctx.Clip = saved
	b.Restore()
}

// TransformLayer applies a transform to its children.
type TransformLayer struct {
	ContainerLayer
	Transform displaylist.Matrix
}

// NewTransformLayer returns a layer drawing children through m.
func NewTransformLayer(m displaylist.Matrix, children ...Layer) *TransformLayer {
	return &TransformLayer{ContainerLayer: ContainerLayer{children: children}, Transform: m}
}

// Preroll prerolls children under the concatenated transform. Children
// whose bounds cannot be mapped back through a perspective transform make
// the layer unbounded.
func (l *TransformLayer) Preroll(ctx *PrerollContext) {
	saved := ctx.Matrix
	ctx.Matrix = saved.Concat(l.Transform)
	child := l.prerollChildren(ctx)
	ctx.Matrix = saved

	local, ok := l.Transform.MapRect(child)
	if !ok && !child.IsEmpty() {
		local = everywhere
	}
	l.setPaintBounds(ctx, local)
}

// Paint records the transform around the children.
func (l *TransformLayer) Paint(ctx *PaintContext) {
	b := ctx.Builder
	b.Save()
	if a, ok := l.Transform.Affine(); ok {
		b.Transform2DAffine(a)
	} else {
		b.TransformFullPerspective(f64.Mat4(l.Transform))
	}
	saved := ctx.Matrix
	ctx.Matrix = saved.Concat(l.Transform)
	l.paintChildren(ctx)
	ctx.Matrix = saved
	b.Restore()
}

// OpacityLayer draws its children at an opacity. When the children can
// inherit opacity it is folded into their drawing; otherwise they are
// composited through a save-layer.
type OpacityLayer struct {
	ContainerLayer
	Alpha  float64
	Offset displaylist.Point

	inherit bool
	content displaylist.Rect
}

// NewOpacityLayer returns a layer drawing children at alpha, offset by
// offset.
func NewOpacityLayer(alpha float64, offset displaylist.Point, children ...Layer) *OpacityLayer {
	return &OpacityLayer{ContainerLayer: ContainerLayer{children: children}, Alpha: alpha, Offset: offset}
}

// ChildrenInheritOpacity reports whether the last Preroll found that the
// children can apply the opacity themselves.
func (l *OpacityLayer) ChildrenInheritOpacity() bool { return l.inherit }

// Preroll prerolls the children; a fully transparent layer is culled. An
// opacity layer can always inherit opacity by folding it into its alpha.
func (l *OpacityLayer) Preroll(ctx *PrerollContext) {
	if l.Alpha <= 0 {
		l.setPaintBounds(ctx, displaylist.Rect{})
		ctx.CanInheritOpacity = true
		return
	}
	savedM, savedO := ctx.Matrix, ctx.Opacity
	ctx.Matrix = savedM.Concat(displaylist.TranslateMatrix(l.Offset.X, l.Offset.Y))
	ctx.Opacity = savedO * l.Alpha
	l.content = l.prerollChildren(ctx)
	l.inherit = ctx.CanInheritOpacity
	ctx.Matrix, ctx.Opacity = savedM, savedO

	l.setPaintBounds(ctx, l.content.Offset(l.Offset.X, l.Offset.Y))
	ctx.CanInheritOpacity = true
}

// Paint draws the children with the combined opacity.
func (l *OpacityLayer) Paint(ctx *PaintContext) {
	b := ctx.Builder
	b.Save()
	b.Translate(l.Offset.X, l.Offset.Y)
	savedM, savedO := ctx.Matrix, ctx.Opacity
	ctx.Matrix = savedM.Concat(displaylist.TranslateMatrix(l.Offset.X, l.Offset.Y))

	if l.inherit {
		ctx.Opacity = savedO * l.Alpha
		l.paintChildren(ctx)
	} else {
		p := displaylist.DefaultPaint().WithColor(displaylist.Black.WithAlpha(savedO * l.Alpha))
		bounds := l.content
		if !bounds.IsFinite() {
			b.SaveLayer(nil, &p, nil)
		} else {
			b.SaveLayer(&bounds, &p, nil)
		}
		ctx.Opacity = 1
		l.paintChildren(ctx)
		b.Restore()
	}

	ctx.Matrix, ctx.Opacity = savedM, savedO
	b.Restore()
}
