package blend

import "math"

// separableFuncs holds B(cs, cb) for the separable modes, indexed from
// Overlay. Inputs and outputs are unpremultiplied channel values.
var separableFuncs = [...]func(cs, cb float64) float64{
	Overlay - Overlay:    func(cs, cb float64) float64 { return hardLight(cb, cs) },
	Darken - Overlay:     math.Min,
	Lighten - Overlay:    math.Max,
	ColorDodge - Overlay: colorDodge,
	ColorBurn - Overlay:  colorBurn,
	HardLight - Overlay:  hardLight,
	SoftLight - Overlay:  softLight,
	Difference - Overlay: func(cs, cb float64) float64 { return math.Abs(cs - cb) },
	Exclusion - Overlay:  func(cs, cb float64) float64 { return cs + cb - 2*cs*cb },
	Multiply - Overlay:   func(cs, cb float64) float64 { return cs * cb },
}

// separable applies the general formula
// Cr = (1 - Da)*S + (1 - Sa)*D + Sa*Da*B(Cs, Cb) per color channel.
func separable(s, d Premul, fn func(cs, cb float64) float64) Premul {
	sa, da := s[3], d[3]
	var out Premul
	for i := 0; i < 3; i++ {
		out[i] = (1-da)*s[i] + (1-sa)*d[i]
		if sa > 0 && da > 0 {
			out[i] += sa * da * fn(s[i]/sa, d[i]/da)
		}
	}
	out[3] = sa + da - sa*da
	return out
}

func hardLight(cs, cb float64) float64 {
	if cs <= 0.5 {
		return cb * 2 * cs
	}
	s := 2*cs - 1
	return cb + s - cb*s
}

func colorDodge(cs, cb float64) float64 {
	switch {
	case cb == 0:
		return 0
	case cs >= 1:
		return 1
	default:
		return min(1, cb/(1-cs))
	}
}

func colorBurn(cs, cb float64) float64 {
	switch {
	case cb >= 1:
		return 1
	case cs <= 0:
		return 0
	default:
		return 1 - min(1, (1-cb)/cs)
	}
}

func softLight(cs, cb float64) float64 {
	if cs <= 0.5 {
		return cb - (1-2*cs)*cb*(1-cb)
	}
	var dcb float64
	if cb <= 0.25 {
		dcb = ((16*cb-12)*cb + 4) * cb
	} else {
		dcb = math.Sqrt(cb)
	}
	return cb + (2*cs-1)*(dcb-cb)
}
