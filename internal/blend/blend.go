// Package blend implements Porter-Duff compositing operators and the W3C
// advanced blend modes on float premultiplied colors.
//
// Colors are [4]float64 holding premultiplied red, green, blue and alpha in
// [0, 1]. Modes are numbered in the same order as displaylist.BlendMode so
// callers convert with a plain type conversion.
//
// References:
//   - Porter-Duff: "Compositing Digital Images" (1984)
//   - W3C Compositing and Blending Level 1: https://www.w3.org/TR/compositing-1/
package blend

// Mode selects a blend equation.
type Mode uint8

const (
	SrcOver  Mode = iota // S + D*(1-Sa)
	Clear                // 0
	Src                  // S
	Dst                  // D
	DstOver              // S*(1-Da) + D
	SrcIn                // S*Da
	DstIn                // D*Sa
	SrcOut               // S*(1-Da)
	DstOut               // D*(1-Sa)
	SrcATop              // S*Da + D*(1-Sa)
	DstATop              // S*(1-Da) + D*Sa
	Xor                  // S*(1-Da) + D*(1-Sa)
	Plus                 // min(S + D, 1)
	Modulate             // S*D
	Screen               // S + D - S*D

	// Separable advanced modes.
	Overlay
	Darken
	Lighten
	ColorDodge
	ColorBurn
	HardLight
	SoftLight
	Difference
	Exclusion
	Multiply

	// Non-separable advanced modes.
	Hue
	Saturation
	Color
	Luminosity

	modeCount
)

// Count is the number of defined modes.
const Count = int(modeCount)

// Premul is a premultiplied RGBA color.
type Premul = [4]float64

// Blend composites src over dst with the given mode. Unknown modes fall back
// to SrcOver.
func Blend(src, dst Premul, mode Mode) Premul {
	switch {
	case mode <= Screen:
		return porterDuff(src, dst, mode)
	case mode <= Multiply:
		return separable(src, dst, separableFuncs[mode-Overlay])
	case mode <= Luminosity:
		return nonSeparable(src, dst, mode)
	default:
		return porterDuff(src, dst, SrcOver)
	}
}

// IsPorterDuff reports whether mode is a coefficient-based compositing
// operator rather than an advanced blend.
func IsPorterDuff(mode Mode) bool {
	return mode <= Screen
}
