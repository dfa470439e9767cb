package blend

// rgb is an unpremultiplied color triple.
type rgb [3]float64

// lum returns the BT.601 luminance used by the W3C non-separable modes.
func lum(c rgb) float64 {
	return 0.30*c[0] + 0.59*c[1] + 0.11*c[2]
}

func sat(c rgb) float64 {
	return max(c[0], c[1], c[2]) - min(c[0], c[1], c[2])
}

// clipColor pulls out-of-range components back towards the luminance.
func clipColor(c rgb) rgb {
	l := lum(c)
	n := min(c[0], c[1], c[2])
	x := max(c[0], c[1], c[2])
	if n < 0 {
		for i := range c {
			c[i] = l + (c[i]-l)*l/(l-n)
		}
	}
	if x > 1 {
		for i := range c {
			c[i] = l + (c[i]-l)*(1-l)/(x-l)
		}
	}
	return c
}

func setLum(c rgb, l float64) rgb {
	d := l - lum(c)
	return clipColor(rgb{c[0] + d, c[1] + d, c[2] + d})
}

func setSat(c rgb, s float64) rgb {
	mx := max(c[0], c[1], c[2])
	mn := min(c[0], c[1], c[2])
	var out rgb
	if mx > mn {
		for i := range c {
			switch c[i] {
			case mx:
				out[i] = s
			case mn:
				out[i] = 0
			default:
				out[i] = (c[i] - mn) * s / (mx - mn)
			}
		}
	}
	return out
}

func nonSeparable(s, d Premul, mode Mode) Premul {
	sa, da := s[3], d[3]
	var out Premul
	out[3] = sa + da - sa*da
	for i := 0; i < 3; i++ {
		out[i] = (1-da)*s[i] + (1-sa)*d[i]
	}
	if sa <= 0 || da <= 0 {
		return out
	}
	cs := rgb{s[0] / sa, s[1] / sa, s[2] / sa}
	cb := rgb{d[0] / da, d[1] / da, d[2] / da}
	var b rgb
	switch mode {
	case Hue:
		b = setLum(setSat(cs, sat(cb)), lum(cb))
	case Saturation:
		b = setLum(setSat(cb, sat(cs)), lum(cb))
	case Color:
		b = setLum(cs, lum(cb))
	default: // Luminosity
		b = setLum(cb, lum(cs))
	}
	for i := 0; i < 3; i++ {
		out[i] += sa * da * b[i]
	}
	return out
}
