package displaylist

import "github.com/gogpu/displaylist/internal/blend"

// BlendMode selects how a source color combines with the destination. The
// zero value is BlendSrcOver.
type BlendMode uint8

// Blend modes, in the same order as the internal blend equations.
const (
	BlendSrcOver BlendMode = iota
	BlendClear
	BlendSrc
	BlendDst
	BlendDstOver
	BlendSrcIn
	BlendDstIn
	BlendSrcOut
	BlendDstOut
	BlendSrcATop
	BlendDstATop
	BlendXor
	BlendPlus
	BlendModulate
	BlendScreen
	BlendOverlay
	BlendDarken
	BlendLighten
	BlendColorDodge
	BlendColorBurn
	BlendHardLight
	BlendSoftLight
	BlendDifference
	BlendExclusion
	BlendMultiply
	BlendHue
	BlendSaturation
	BlendColor
	BlendLuminosity
)

var blendModeNames = [...]string{
	BlendSrcOver:    "SrcOver",
	BlendClear:      "Clear",
	BlendSrc:        "Src",
	BlendDst:        "Dst",
	BlendDstOver:    "DstOver",
	BlendSrcIn:      "SrcIn",
	BlendDstIn:      "DstIn",
	BlendSrcOut:     "SrcOut",
	BlendDstOut:     "DstOut",
	BlendSrcATop:    "SrcATop",
	BlendDstATop:    "DstATop",
	BlendXor:        "Xor",
	BlendPlus:       "Plus",
	BlendModulate:   "Modulate",
	BlendScreen:     "Screen",
	BlendOverlay:    "Overlay",
	BlendDarken:     "Darken",
	BlendLighten:    "Lighten",
	BlendColorDodge: "ColorDodge",
	BlendColorBurn:  "ColorBurn",
	BlendHardLight:  "HardLight",
	BlendSoftLight:  "SoftLight",
	BlendDifference: "Difference",
	BlendExclusion:  "Exclusion",
	BlendMultiply:   "Multiply",
	BlendHue:        "Hue",
	BlendSaturation: "Saturation",
	BlendColor:      "Color",
	BlendLuminosity: "Luminosity",
}

// transparentSourceNops lists the modes whose result equals the destination
// wherever the source alpha is zero.
var transparentSourceNops = [...]bool{
	BlendDst:        true,
	BlendSrcOver:    true,
	BlendDstOver:    true,
	BlendDstOut:     true,
	BlendSrcATop:    true,
	BlendXor:        true,
	BlendPlus:       true,
	BlendScreen:     true,
	BlendOverlay:    true,
	BlendDarken:     true,
	BlendLighten:    true,
	BlendColorDodge: true,
	BlendColorBurn:  true,
	BlendHardLight:  true,
	BlendSoftLight:  true,
	BlendDifference: true,
	BlendExclusion:  true,
	BlendMultiply:   true,
	BlendHue:        true,
	BlendSaturation: true,
	BlendColor:      true,
	BlendLuminosity: true,
}

// String returns the mode name.
func (m BlendMode) String() string {
	if int(m) < len(blendModeNames) {
		return blendModeNames[m]
	}
	return "Unknown"
}

// IsValid reports whether m is a defined mode.
func (m BlendMode) IsValid() bool {
	return m <= BlendLuminosity
}

// NopsOnTransparentSource reports whether drawing a fully transparent
// source with this mode leaves the destination unchanged.
func (m BlendMode) NopsOnTransparentSource() bool {
	return int(m) < len(transparentSourceNops) && transparentSourceNops[m]
}

// IsPorterDuff reports whether m is a coefficient-based compositing operator.
func (m BlendMode) IsPorterDuff() bool {
	return blend.IsPorterDuff(blend.Mode(m))
}

// ParseBlendMode looks a mode up by its String name.
func ParseBlendMode(name string) (BlendMode, bool) {
	for i, n := range blendModeNames {
		if n == name {
			return BlendMode(i), true
		}
	}
	return BlendSrcOver, false
}

// BlendColors composites src over dst with mode and returns the
// non-premultiplied result.
func BlendColors(src, dst Color, mode BlendMode) Color {
	return FromPremultiplied(blend.Blend(src.Premultiply(), dst.Premultiply(), blend.Mode(mode)))
}

// Blender is a custom blend function. Blenders that are equivalent to a
// plain mode report it through AsBlendMode; all others are treated as
// opaque effects that may alter the destination under transparent sources.
type Blender interface {
	AsBlendMode() (BlendMode, bool)
}

// ModeBlender wraps a plain BlendMode as a Blender.
type ModeBlender BlendMode

// AsBlendMode returns the wrapped mode.
func (b ModeBlender) AsBlendMode() (BlendMode, bool) {
	return BlendMode(b), true
}
