package displaylist

import (
	"math"

	"github.com/gogpu/displaylist/internal/filter"
)

// ImageFilter is the bounds capability of an image filter. When
// CanComputeFastBounds is false the filter's output extent is unknown and
// ComputeFastBounds must not be relied on.
type ImageFilter interface {
	CanComputeFastBounds() bool
	ComputeFastBounds(input Rect) Rect
}

// MaskFilter is the bounds capability of a coverage mask filter.
type MaskFilter interface {
	CanComputeFastBounds() bool
	ComputeFastBounds(input Rect) Rect
}

// PathEffect is the bounds capability of a geometry-modifying path effect.
type PathEffect interface {
	CanComputeFastBounds() bool
	ComputeFastBounds(input Rect) Rect
}

// ColorFilter transforms colors. ModifiesTransparentBlack reports whether
// transparent black can map to anything else, in which case the filter
// paints outside the geometry it is applied to.
type ColorFilter interface {
	FilterColor(c Color) Color
	ModifiesTransparentBlack() bool
}

// -----------------------------------------------------------------------------
// Image filters
// -----------------------------------------------------------------------------

// BlurImageFilter is a Gaussian blur with independent sigmas per axis.
type BlurImageFilter struct {
	SigmaX, SigmaY float64
}

func (f BlurImageFilter) CanComputeFastBounds() bool { return true }

func (f BlurImageFilter) ComputeFastBounds(input Rect) Rect {
	return input.Outset(filter.BlurOutset(f.SigmaX), filter.BlurOutset(f.SigmaY))
}

// DilateImageFilter grows content by the given radii.
type DilateImageFilter struct {
	RadiusX, RadiusY float64
}

func (f DilateImageFilter) CanComputeFastBounds() bool { return true }

func (f DilateImageFilter) ComputeFastBounds(input Rect) Rect {
	return input.Outset(max(f.RadiusX, 0), max(f.RadiusY, 0))
}

// ErodeImageFilter shrinks content by the given radii.
type ErodeImageFilter struct {
	RadiusX, RadiusY float64
}

func (f ErodeImageFilter) CanComputeFastBounds() bool { return true }

func (f ErodeImageFilter) ComputeFastBounds(input Rect) Rect {
	out := input.Outset(-max(f.RadiusX, 0), -max(f.RadiusY, 0))
	if out.IsEmpty() {
		return Rect{}
	}
	return out
}

// MatrixImageFilter transforms its input by Matrix.
type MatrixImageFilter struct {
	Matrix Matrix
}

func (f MatrixImageFilter) CanComputeFastBounds() bool { return !f.Matrix.HasPerspective() }

func (f MatrixImageFilter) ComputeFastBounds(input Rect) Rect {
	out, _ := f.Matrix.MapRect(input)
	return out
}

// ComposeImageFilter applies Inner and then Outer. A nil stage passes its
// input through.
type ComposeImageFilter struct {
	Outer, Inner ImageFilter
}

func (f ComposeImageFilter) CanComputeFastBounds() bool {
	return (f.Outer == nil || f.Outer.CanComputeFastBounds()) &&
		(f.Inner == nil || f.Inner.CanComputeFastBounds())
}

func (f ComposeImageFilter) ComputeFastBounds(input Rect) Rect {
	if f.Inner != nil {
		input = f.Inner.ComputeFastBounds(input)
	}
	if f.Outer != nil {
		input = f.Outer.ComputeFastBounds(input)
	}
	return input
}

// ColorFilterImageFilter runs a color filter over its input. Its bounds are
// unknown when the color filter turns transparent black into color.
type ColorFilterImageFilter struct {
	Filter ColorFilter
}

func (f ColorFilterImageFilter) CanComputeFastBounds() bool {
	return f.Filter == nil || !f.Filter.ModifiesTransparentBlack()
}

func (f ColorFilterImageFilter) ComputeFastBounds(input Rect) Rect { return input }

// UnboundedImageFilter stands for shader-driven effects whose output extent
// cannot be derived from their input.
type UnboundedImageFilter struct {
	Name string
}

func (f UnboundedImageFilter) CanComputeFastBounds() bool { return false }

func (f UnboundedImageFilter) ComputeFastBounds(input Rect) Rect { return input }

// -----------------------------------------------------------------------------
// Color filters
// -----------------------------------------------------------------------------

// MatrixColorFilter applies a 4x5 row-major color matrix with the bias
// column in normalized units.
type MatrixColorFilter struct {
	Matrix [20]float64
}

// InvertColorFilter returns the filter used by the invert-colors attribute.
func InvertColorFilter() MatrixColorFilter {
	return MatrixColorFilter{Matrix: filter.Invert}
}

// SaturationColorFilter scales saturation by s; 0 yields grayscale.
func SaturationColorFilter(s float64) MatrixColorFilter {
	return MatrixColorFilter{Matrix: filter.Saturation(s)}
}

func (f MatrixColorFilter) FilterColor(c Color) Color {
	m := filter.ColorMatrix(f.Matrix)
	out := m.Apply([4]float64{c.R, c.G, c.B, c.A})
	return Color{R: out[0], G: out[1], B: out[2], A: out[3]}
}

func (f MatrixColorFilter) ModifiesTransparentBlack() bool {
	m := filter.ColorMatrix(f.Matrix)
	return m.ModifiesTransparentBlack()
}

// BlendColorFilter blends a constant Color over its input with Mode.
type BlendColorFilter struct {
	Color Color
	Mode  BlendMode
}

func (f BlendColorFilter) FilterColor(c Color) Color {
	return BlendColors(f.Color, c, f.Mode)
}

func (f BlendColorFilter) ModifiesTransparentBlack() bool {
	return !f.FilterColor(Transparent).IsTransparent()
}

// ComposeColorFilter applies Inner and then Outer. A nil stage passes its
// input through.
type ComposeColorFilter struct {
	Outer, Inner ColorFilter
}

func (f ComposeColorFilter) FilterColor(c Color) Color {
	if f.Inner != nil {
		c = f.Inner.FilterColor(c)
	}
	if f.Outer != nil {
		c = f.Outer.FilterColor(c)
	}
	return c
}

// ModifiesTransparentBlack is conservative: either stage modifying
// transparent black is enough.
func (f ComposeColorFilter) ModifiesTransparentBlack() bool {
	return (f.Outer != nil && f.Outer.ModifiesTransparentBlack()) ||
		(f.Inner != nil && f.Inner.ModifiesTransparentBlack())
}

// SRGBToLinearGammaFilter converts sRGB-encoded channels to linear light.
type SRGBToLinearGammaFilter struct{}

func (SRGBToLinearGammaFilter) FilterColor(c Color) Color {
	return Color{R: srgbToLinear(c.R), G: srgbToLinear(c.G), B: srgbToLinear(c.B), A: c.A}
}

func (SRGBToLinearGammaFilter) ModifiesTransparentBlack() bool { return false }

// LinearToSRGBGammaFilter converts linear-light channels to sRGB encoding.
type LinearToSRGBGammaFilter struct{}

func (LinearToSRGBGammaFilter) FilterColor(c Color) Color {
	return Color{R: linearToSRGB(c.R), G: linearToSRGB(c.G), B: linearToSRGB(c.B), A: c.A}
}

func (LinearToSRGBGammaFilter) ModifiesTransparentBlack() bool { return false }

func srgbToLinear(v float64) float64 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

func linearToSRGB(v float64) float64 {
	if v <= 0.0031308 {
		return v * 12.92
	}
	return 1.055*math.Pow(v, 1/2.4) - 0.055
}

// -----------------------------------------------------------------------------
// Mask filters
// -----------------------------------------------------------------------------

// BlurStyle selects which side of the shape edge a mask blur covers.
type BlurStyle uint8

const (
	BlurNormal BlurStyle = iota // blur inside and outside
	BlurSolid                   // solid inside, blur outside
	BlurOuter                   // nothing inside, blur outside
	BlurInner                   // blur inside only
)

// String returns the style name.
func (s BlurStyle) String() string {
	switch s {
	case BlurNormal:
		return "Normal"
	case BlurSolid:
		return "Solid"
	case BlurOuter:
		return "Outer"
	case BlurInner:
		return "Inner"
	default:
		return "Unknown"
	}
}

// BlurMaskFilter blurs the coverage mask of a shape.
type BlurMaskFilter struct {
	Style BlurStyle
	Sigma float64
}

func (f BlurMaskFilter) CanComputeFastBounds() bool { return true }

// ComputeFastBounds outsets by three sigmas for every style; inner blurs
// are not tightened.
func (f BlurMaskFilter) ComputeFastBounds(input Rect) Rect {
	d := filter.BlurOutset(f.Sigma)
	return input.Outset(d, d)
}

// -----------------------------------------------------------------------------
// Path effects
// -----------------------------------------------------------------------------

// DashPathEffect splits strokes into dashes. Dashing only removes geometry.
type DashPathEffect struct {
	Intervals []float64
	Phase     float64
}

func (e *DashPathEffect) CanComputeFastBounds() bool { return true }

func (e *DashPathEffect) ComputeFastBounds(input Rect) Rect { return input }

// CornerPathEffect rounds sharp corners with the given radius.
type CornerPathEffect struct {
	Radius float64
}

func (e CornerPathEffect) CanComputeFastBounds() bool { return true }

func (e CornerPathEffect) ComputeFastBounds(input Rect) Rect { return input }

// DiscretePathEffect chops paths into segments and displaces them by up to
// Deviation.
type DiscretePathEffect struct {
	SegmentLength float64
	Deviation     float64
}

func (e DiscretePathEffect) CanComputeFastBounds() bool { return true }

func (e DiscretePathEffect) ComputeFastBounds(input Rect) Rect {
	d := math.Abs(e.Deviation)
	return input.Outset(d, d)
}

// StampPathEffect repeats Stamp along the path every Advance units. The
// stamp orientation follows the path tangent, so no fast bounds exist.
type StampPathEffect struct {
	Stamp   *Path
	Advance float64
	Phase   float64
}

func (e *StampPathEffect) CanComputeFastBounds() bool { return false }

func (e *StampPathEffect) ComputeFastBounds(input Rect) Rect { return input }
