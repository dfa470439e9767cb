package displaylist

import (
	"sync"
	"sync/atomic"
)

var lastDisplayListID atomic.Uint64

// DisplayList is an immutable recorded op stream. Bounds and group-opacity
// compatibility are computed on first use and cached.
//
// A DisplayList is safe for concurrent use.
type DisplayList struct {
	id   uint64
	ops  []Op
	cull *Rect

	once         sync.Once
	bounds       Rect
	unbounded    bool
	groupOpacity bool
}

func newDisplayList(ops []Op, cull *Rect) *DisplayList {
	return &DisplayList{
		id:   lastDisplayListID.Add(1),
		ops:  ops,
		cull: cull,
	}
}

// ID returns a process-unique identifier, suitable as a cache key.
func (dl *DisplayList) ID() uint64 { return dl.id }

// Ops returns the recorded ops. The slice is shared and must not be
// modified.
func (dl *DisplayList) Ops() []Op { return dl.ops }

// Len returns the number of recorded ops.
func (dl *DisplayList) Len() int { return len(dl.ops) }

// CullRect returns the cull rect the list was built with, if any.
func (dl *DisplayList) CullRect() (Rect, bool) {
	if dl.cull == nil {
		return Rect{}, false
	}
	return *dl.cull, true
}

// Bounds returns the conservative device-space bounds of the list, drawn
// with an identity transform and no clip other than its cull rect.
func (dl *DisplayList) Bounds() Rect {
	dl.once.Do(dl.compute)
	return dl.bounds
}

// IsUnbounded reports whether the list contains content that could not be
// bounded. Bounds then only covers the bounded part.
func (dl *DisplayList) IsUnbounded() bool {
	dl.once.Do(dl.compute)
	return dl.unbounded
}

// CanApplyGroupOpacity reports whether drawing the list with opacity can be
// done by modulating each op's alpha instead of rendering into a layer:
// every op is a plain source-over draw and no two ops overlap.
func (dl *DisplayList) CanApplyGroupOpacity() bool {
	dl.once.Do(dl.compute)
	return dl.groupOpacity
}

// Dispatch replays the ops into c.
func (dl *DisplayList) Dispatch(c *BoundsCalculator) {
	c.Process(dl.ops)
}

func (dl *DisplayList) compute() {
	var opts []CalculatorOption
	if dl.cull != nil {
		opts = append(opts, WithCullRect(*dl.cull))
	}

	compatible := true
	var seen Rect
	var c *BoundsCalculator
	opts = append(opts, WithOpObserver(func(ob OpBounds) {
		if !compatible {
			return
		}
		if ob.Unbounded || !opCompatibleWithGroupOpacity(ob.Op, c.Paint()) {
			compatible = false
			return
		}
		if seen.Intersects(ob.Bounds) {
			compatible = false
			return
		}
		seen = seen.Union(ob.Bounds)
	}))

	c = NewBoundsCalculator(opts...)
	for _, o := range dl.ops {
		if o.Kind() == OpSaveLayer {
			compatible = false
		}
		c.Apply(o)
	}
	dl.bounds = c.Bounds()
	dl.unbounded = c.IsUnbounded()
	dl.groupOpacity = compatible
}

// opCompatibleWithGroupOpacity reports whether o, drawn with paint, blends
// in a way that distributes over a uniform alpha.
func opCompatibleWithGroupOpacity(o Op, paint *PaintState) bool {
	switch o := o.(type) {
	case DrawPaint, DrawColor, DrawVertices, DrawAtlas, DrawPicture, DrawShadow:
		return false
	case DrawDisplayList:
		return o.List == nil || o.List.CanApplyGroupOpacity()
	case DrawImage:
		if !o.WithAttributes {
			return true
		}
	case DrawImageRect:
		if !o.WithAttributes {
			return true
		}
	case DrawImageNine:
		if !o.WithAttributes {
			return true
		}
	}
	mode, ok := paint.BlendMode()
	return ok && mode == BlendSrcOver
}
