package displaylist

// PathElement represents a single element in a path.
type PathElement interface {
	isPathElement()
}

// MoveTo starts a new subpath.
type MoveTo struct {
	Point Point
}

func (MoveTo) isPathElement() {}

// LineTo adds a line to Point.
type LineTo struct {
	Point Point
}

func (LineTo) isPathElement() {}

// QuadTo adds a quadratic Bezier curve.
type QuadTo struct {
	Control Point
	Point   Point
}

func (QuadTo) isPathElement() {}

// CubicTo adds a cubic Bezier curve.
type CubicTo struct {
	Control1 Point
	Control2 Point
	Point    Point
}

func (CubicTo) isPathElement() {}

// Close closes the current subpath.
type Close struct{}

func (Close) isPathElement() {}

// FillType selects which points a path covers.
type FillType uint8

const (
	// FillNonZero covers points with a non-zero winding number.
	FillNonZero FillType = iota
	// FillEvenOdd covers points with an odd winding number.
	FillEvenOdd
	// FillInverseNonZero covers everything FillNonZero does not.
	FillInverseNonZero
	// FillInverseEvenOdd covers everything FillEvenOdd does not.
	FillInverseEvenOdd
)

// IsInverse reports whether the fill type covers the outside of the path.
func (f FillType) IsInverse() bool {
	return f == FillInverseNonZero || f == FillInverseEvenOdd
}

// String returns the fill type name.
func (f FillType) String() string {
	switch f {
	case FillNonZero:
		return "NonZero"
	case FillEvenOdd:
		return "EvenOdd"
	case FillInverseNonZero:
		return "InverseNonZero"
	case FillInverseEvenOdd:
		return "InverseEvenOdd"
	default:
		return "Unknown"
	}
}

// kappa is the cubic Bezier control distance for a quarter circle of
// radius 1: 4/3 * (sqrt(2) - 1).
const kappa = 0.5522847498307936

// Path is a sequence of subpaths with a fill type. Paths referenced by a
// recorded display list must not be mutated afterwards.
type Path struct {
	elements []PathElement
	fillType FillType
	start    Point
	current  Point
}

// NewPath creates a new empty path.
func NewPath() *Path {
	return &Path{elements: make([]PathElement, 0, 16)}
}

// MoveTo starts a new subpath at (x, y).
func (p *Path) MoveTo(x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, MoveTo{Point: pt})
	p.start = pt
	p.current = pt
}

// LineTo adds a line to (x, y).
func (p *Path) LineTo(x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, LineTo{Point: pt})
	p.current = pt
}

// QuadraticTo adds a quadratic Bezier curve.
func (p *Path) QuadraticTo(cx, cy, x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, QuadTo{Control: Pt(cx, cy), Point: pt})
	p.current = pt
}

// CubicTo adds a cubic Bezier curve.
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, CubicTo{
		Control1: Pt(c1x, c1y),
		Control2: Pt(c2x, c2y),
		Point:    pt,
	})
	p.current = pt
}

// Close closes the current subpath.
func (p *Path) Close() {
	p.elements = append(p.elements, Close{})
	p.current = p.start
}

// Elements returns the path elements.
func (p *Path) Elements() []PathElement {
	return p.elements
}

// Len returns the number of elements.
func (p *Path) Len() int {
	return len(p.elements)
}

// FillType returns the fill type.
func (p *Path) FillType() FillType {
	return p.fillType
}

// SetFillType sets the fill type.
func (p *Path) SetFillType(f FillType) {
	p.fillType = f
}

// IsInverseFillType reports whether the path fills its outside.
func (p *Path) IsInverseFillType() bool {
	return p.fillType.IsInverse()
}

// Bounds returns the bounding box of every point and control point. The
// result is conservative: curves never leave their control polygon.
func (p *Path) Bounds() Rect {
	pts := make([]Point, 0, len(p.elements)*3)
	for _, e := range p.elements {
		switch el := e.(type) {
		case MoveTo:
			pts = append(pts, el.Point)
		case LineTo:
			pts = append(pts, el.Point)
		case QuadTo:
			pts = append(pts, el.Control, el.Point)
		case CubicTo:
			pts = append(pts, el.Control1, el.Control2, el.Point)
		}
	}
	return boundsOfPoints(pts)
}

// Transform returns a copy of the path with every point mapped through m.
func (p *Path) Transform(m Matrix) *Path {
	out := &Path{elements: make([]PathElement, len(p.elements)), fillType: p.fillType}
	for i, e := range p.elements {
		switch el := e.(type) {
		case MoveTo:
			out.elements[i] = MoveTo{Point: m.MapPoint(el.Point)}
		case LineTo:
			out.elements[i] = LineTo{Point: m.MapPoint(el.Point)}
		case QuadTo:
			out.elements[i] = QuadTo{Control: m.MapPoint(el.Control), Point: m.MapPoint(el.Point)}
		case CubicTo:
			out.elements[i] = CubicTo{
				Control1: m.MapPoint(el.Control1),
				Control2: m.MapPoint(el.Control2),
				Point:    m.MapPoint(el.Point),
			}
		default:
			out.elements[i] = e
		}
	}
	out.start = m.MapPoint(p.start)
	out.current = m.MapPoint(p.current)
	return out
}

// Rectangle adds a closed rectangle subpath.
func (p *Path) Rectangle(x, y, w, h float64) {
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.Close()
}

// Circle adds a closed circle subpath.
func (p *Path) Circle(cx, cy, r float64) {
	p.Ellipse(cx, cy, r, r)
}

// Ellipse adds a closed ellipse subpath built from four cubic quarters.
func (p *Path) Ellipse(cx, cy, rx, ry float64) {
	ox, oy := rx*kappa, ry*kappa
	p.MoveTo(cx+rx, cy)
	p.CubicTo(cx+rx, cy+oy, cx+ox, cy+ry, cx, cy+ry)
	p.CubicTo(cx-ox, cy+ry, cx-rx, cy+oy, cx-rx, cy)
	p.CubicTo(cx-rx, cy-oy, cx-ox, cy-ry, cx, cy-ry)
	p.CubicTo(cx+ox, cy-ry, cx+rx, cy-oy, cx+rx, cy)
	p.Close()
}

// RoundedRectangle adds a closed rounded rectangle subpath. The radius is
// clamped to half the smaller side.
func (p *Path) RoundedRectangle(x, y, w, h, r float64) {
	r = min(r, min(w, h)/2)
	if r <= 0 {
		p.Rectangle(x, y, w, h)
		return
	}
	o := r * kappa
	p.MoveTo(x+r, y)
	p.LineTo(x+w-r, y)
	p.CubicTo(x+w-r+o, y, x+w, y+r-o, x+w, y+r)
	p.LineTo(x+w, y+h-r)
	p.CubicTo(x+w, y+h-r+o, x+w-r+o, y+h, x+w-r, y+h)
	p.LineTo(x+r, y+h)
	p.CubicTo(x+r-o, y+h, x, y+h-r+o, x, y+h-r)
	p.LineTo(x, y+r)
	p.CubicTo(x, y+r-o, x+r-o, y, x+r, y)
	p.Close()
}

// Clone returns a deep copy of the path.
func (p *Path) Clone() *Path {
	out := *p
	out.elements = append([]PathElement(nil), p.elements...)
	return &out
}
