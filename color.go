package displaylist

import (
	"image/color"
	"strconv"
)

// Color is a non-premultiplied color with components in [0, 1].
type Color struct {
	R, G, B, A float64
}

// RGB creates an opaque color.
func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// ARGB creates a color from a packed 0xAARRGGBB value.
func ARGB(v uint32) Color {
	return Color{
		R: float64(v>>16&0xff) / 255,
		G: float64(v>>8&0xff) / 255,
		B: float64(v&0xff) / 255,
		A: float64(v>>24) / 255,
	}
}

// Hex parses "RGB", "RGBA", "RRGGBB" or "RRGGBBAA", with an optional
// leading '#'. Malformed input yields opaque black and false.
func Hex(s string) (Color, bool) {
	if s != "" && s[0] == '#' {
		s = s[1:]
	}
	var digits []uint64
	switch len(s) {
	case 3, 4:
		for i := range len(s) {
			v, err := strconv.ParseUint(s[i:i+1], 16, 8)
			if err != nil {
				return Black, false
			}
			digits = append(digits, v*17)
		}
	case 6, 8:
		for i := 0; i < len(s); i += 2 {
			v, err := strconv.ParseUint(s[i:i+2], 16, 8)
			if err != nil {
				return Black, false
			}
			digits = append(digits, v)
		}
	default:
		return Black, false
	}
	if len(digits) == 3 {
		digits = append(digits, 255)
	}
	return Color{
		R: float64(digits[0]) / 255,
		G: float64(digits[1]) / 255,
		B: float64(digits[2]) / 255,
		A: float64(digits[3]) / 255,
	}, true
}

// FromColor converts a standard color.Color.
func FromColor(c color.Color) Color {
	return FromNRGBA(color.NRGBAModel.Convert(c).(color.NRGBA))
}

// FromNRGBA converts an 8-bit non-premultiplied color.
func FromNRGBA(c color.NRGBA) Color {
	return Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
		A: float64(c.A) / 255,
	}
}

// NRGBA converts to an 8-bit non-premultiplied color.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R)*255 + 0.5),
		G: uint8(clamp01(c.G)*255 + 0.5),
		B: uint8(clamp01(c.B)*255 + 0.5),
		A: uint8(clamp01(c.A)*255 + 0.5),
	}
}

// WithAlpha returns c with alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// ModulateOpacity returns c with alpha multiplied by opacity.
func (c Color) ModulateOpacity(opacity float64) Color {
	c.A *= opacity
	return c
}

// IsTransparent reports whether alpha is zero.
func (c Color) IsTransparent() bool {
	return c.A <= 0
}

// IsOpaque reports whether alpha is one.
func (c Color) IsOpaque() bool {
	return c.A >= 1
}

// Premultiply returns the premultiplied components.
func (c Color) Premultiply() [4]float64 {
	return [4]float64{c.R * c.A, c.G * c.A, c.B * c.A, c.A}
}

// FromPremultiplied converts premultiplied components back to a Color.
func FromPremultiplied(p [4]float64) Color {
	if p[3] <= 0 {
		return Transparent
	}
	return Color{R: p[0] / p[3], G: p[1] / p[3], B: p[2] / p[3], A: p[3]}
}

func clamp01(x float64) float64 {
	return min(max(x, 0), 1)
}

// Common colors
var (
	Black       = RGB(0, 0, 0)
	White       = RGB(1, 1, 1)
	Red         = RGB(1, 0, 0)
	Green       = RGB(0, 1, 0)
	Blue        = RGB(0, 0, 1)
	Transparent = Color{}
)
