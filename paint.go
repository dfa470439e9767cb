package displaylist

// Style selects whether geometry is filled, stroked or both.
type Style uint8

const (
	// StyleFill fills the interior of the geometry.
	StyleFill Style = iota
	// StyleStroke strokes the outline of the geometry.
	StyleStroke
	// StyleStrokeAndFill fills and then strokes.
	StyleStrokeAndFill
)

// String returns the style name.
func (s Style) String() string {
	switch s {
	case StyleFill:
		return "Fill"
	case StyleStroke:
		return "Stroke"
	case StyleStrokeAndFill:
		return "StrokeAndFill"
	default:
		return "Unknown"
	}
}

// LineCap specifies the shape of line endpoints.
type LineCap uint8

const (
	// LineCapButt specifies a flat line cap.
	LineCapButt LineCap = iota
	// LineCapRound specifies a rounded line cap.
	LineCapRound
	// LineCapSquare specifies a square line cap.
	LineCapSquare
)

// LineJoin specifies the shape of line joins.
type LineJoin uint8

const (
	// LineJoinMiter specifies a sharp (mitered) join.
	LineJoinMiter LineJoin = iota
	// LineJoinRound specifies a rounded join.
	LineJoinRound
	// LineJoinBevel specifies a beveled join.
	LineJoinBevel
)

// DefaultMiterLimit is the miter limit of a new Paint.
const DefaultMiterLimit = 4.0

// Paint holds the attributes a draw call renders with. Filter fields hold
// interface values; concrete filters with slice fields use pointer receivers
// so Paint values stay comparable.
type Paint struct {
	Color       Color
	AntiAlias   bool
	Style       Style
	StrokeWidth float64
	StrokeCap   LineCap
	StrokeJoin  LineJoin
	StrokeMiter float64

	// BlendMode is ignored when Blender is set.
	BlendMode BlendMode
	Blender   Blender

	ColorFilter  ColorFilter
	InvertColors bool
	ImageFilter  ImageFilter
	MaskFilter   MaskFilter
	PathEffect   PathEffect
}

// NewPaint returns a paint with default values: opaque black fill,
// hairline stroke width, miter joins with limit 4, source-over blending.
func NewPaint() *Paint {
	p := DefaultPaint()
	return &p
}

// DefaultPaint returns the default paint by value.
func DefaultPaint() Paint {
	return Paint{
		Color:       Black,
		StrokeMiter: DefaultMiterLimit,
	}
}

// WithColor returns a copy of p using c.
func (p Paint) WithColor(c Color) Paint {
	p.Color = c
	return p
}

// WithStroke returns a copy of p stroking with width w.
func (p Paint) WithStroke(w float64) Paint {
	p.Style = StyleStroke
	p.StrokeWidth = w
	return p
}
