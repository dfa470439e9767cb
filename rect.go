package displaylist

import (
	"fmt"
	"math"
)

// Rect is an axis-aligned rectangle given by its minimum and maximum
// corners. A Rect is empty unless MinX < MaxX and MinY < MaxY; the zero
// value is empty.
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// RectXYWH returns the rectangle with origin (x, y) and size w by h.
func RectXYWH(x, y, w, h float64) Rect {
	return Rect{MinX: x, MinY: y, MaxX: x + w, MaxY: y + h}
}

// RectFromPoints returns the smallest rectangle containing a and b.
func RectFromPoints(a, b Point) Rect {
	return Rect{
		MinX: min(a.X, b.X),
		MinY: min(a.Y, b.Y),
		MaxX: max(a.X, b.X),
		MaxY: max(a.Y, b.Y),
	}
}

// boundsOfPoints returns the bounding box of pts. The result may have zero
// width or height; it is the zero Rect when pts is empty.
func boundsOfPoints(pts []Point) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	r := Rect{MinX: pts[0].X, MinY: pts[0].Y, MaxX: pts[0].X, MaxY: pts[0].Y}
	for _, p := range pts[1:] {
		r.MinX = min(r.MinX, p.X)
		r.MinY = min(r.MinY, p.Y)
		r.MaxX = max(r.MaxX, p.X)
		r.MaxY = max(r.MaxY, p.Y)
	}
	return r
}

// IsEmpty reports whether the rectangle encloses no area. Rectangles with
// NaN coordinates are empty.
func (r Rect) IsEmpty() bool {
	return !(r.MinX < r.MaxX && r.MinY < r.MaxY)
}

// IsFinite reports whether all four coordinates are finite.
func (r Rect) IsFinite() bool {
	return Pt(r.MinX, r.MinY).IsFinite() && Pt(r.MaxX, r.MaxY).IsFinite()
}

// Width returns the width of the rectangle, or 0 when empty.
func (r Rect) Width() float64 {
	if r.IsEmpty() {
		return 0
	}
	return r.MaxX - r.MinX
}

// Height returns the height of the rectangle, or 0 when empty.
func (r Rect) Height() float64 {
	if r.IsEmpty() {
		return 0
	}
	return r.MaxY - r.MinY
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Point {
	return Pt((r.MinX+r.MaxX)/2, (r.MinY+r.MaxY)/2)
}

// Sorted returns r with min and max swapped where they are inverted.
func (r Rect) Sorted() Rect {
	return RectFromPoints(Pt(r.MinX, r.MinY), Pt(r.MaxX, r.MaxY))
}

// Union returns the smallest rectangle containing both r and other.
// Empty operands are ignored.
func (r Rect) Union(other Rect) Rect {
	if other.IsEmpty() {
		return r
	}
	if r.IsEmpty() {
		return other
	}
	return Rect{
		MinX: min(r.MinX, other.MinX),
		MinY: min(r.MinY, other.MinY),
		MaxX: max(r.MaxX, other.MaxX),
		MaxY: max(r.MaxY, other.MaxY),
	}
}

// Intersect returns the overlap of r and other. The boolean is false, and
// the rectangle zero, when the overlap is empty.
func (r Rect) Intersect(other Rect) (Rect, bool) {
	out := Rect{
		MinX: max(r.MinX, other.MinX),
		MinY: max(r.MinY, other.MinY),
		MaxX: min(r.MaxX, other.MaxX),
		MaxY: min(r.MaxY, other.MaxY),
	}
	if out.IsEmpty() {
		return Rect{}, false
	}
	return out, true
}

// Intersects reports whether r and other overlap with a non-empty area.
func (r Rect) Intersects(other Rect) bool {
	_, ok := r.Intersect(other)
	return ok
}

// Contains reports whether other lies entirely inside r. An empty other is
// contained in any non-empty r.
func (r Rect) Contains(other Rect) bool {
	if r.IsEmpty() {
		return false
	}
	if other.IsEmpty() {
		return true
	}
	return r.MinX <= other.MinX && r.MinY <= other.MinY &&
		r.MaxX >= other.MaxX && r.MaxY >= other.MaxY
}

// ContainsPoint reports whether p lies inside r (min inclusive, max exclusive).
func (r Rect) ContainsPoint(p Point) bool {
	return p.X >= r.MinX && p.X < r.MaxX && p.Y >= r.MinY && p.Y < r.MaxY
}

// Outset grows the rectangle by dx horizontally and dy vertically on each
// side. Negative values shrink it.
func (r Rect) Outset(dx, dy float64) Rect {
	return Rect{MinX: r.MinX - dx, MinY: r.MinY - dy, MaxX: r.MaxX + dx, MaxY: r.MaxY + dy}
}

// Offset translates the rectangle by (dx, dy).
func (r Rect) Offset(dx, dy float64) Rect {
	return Rect{MinX: r.MinX + dx, MinY: r.MinY + dy, MaxX: r.MaxX + dx, MaxY: r.MaxY + dy}
}

// RoundOut returns the smallest integer-aligned rectangle containing r.
func (r Rect) RoundOut() Rect {
	return Rect{
		MinX: math.Floor(r.MinX),
		MinY: math.Floor(r.MinY),
		MaxX: math.Ceil(r.MaxX),
		MaxY: math.Ceil(r.MaxY),
	}
}

// Corners returns the four corners in clockwise order starting at the
// minimum corner.
func (r Rect) Corners() [4]Point {
	return [4]Point{
		{X: r.MinX, Y: r.MinY},
		{X: r.MaxX, Y: r.MinY},
		{X: r.MaxX, Y: r.MaxY},
		{X: r.MinX, Y: r.MaxY},
	}
}

// String formats the rectangle as (minX,minY)-(maxX,maxY).
func (r Rect) String() string {
	return fmt.Sprintf("(%g,%g)-(%g,%g)", r.MinX, r.MinY, r.MaxX, r.MaxY)
}

// RRect is a rectangle with elliptical corners. Radii are ordered upper-left,
// upper-right, lower-right, lower-left; each holds the x and y radius.
type RRect struct {
	Rect  Rect
	Radii [4]Point
}

// RRectXY returns a rounded rectangle with the same radii at every corner.
func RRectXY(r Rect, rx, ry float64) RRect {
	c := Pt(rx, ry)
	return RRect{Rect: r, Radii: [4]Point{c, c, c, c}}
}

// Bounds returns the bounding rectangle.
func (rr RRect) Bounds() Rect {
	return rr.Rect
}

// IsRect reports whether all corner radii are zero.
func (rr RRect) IsRect() bool {
	for _, c := range rr.Radii {
		if c.X > 0 && c.Y > 0 {
			return false
		}
	}
	return true
}
