package blend

// coefficients returns the source and destination factors for the
// coefficient-based operators. ok is false for Plus, Modulate and Screen,
// which are not a weighted sum.
func coefficients(mode Mode, sa, da float64) (fs, fd float64, ok bool) {
	switch mode {
	case Clear:
		return 0, 0, true
	case Src:
		return 1, 0, true
	case Dst:
		return 0, 1, true
	case SrcOver:
		return 1, 1 - sa, true
	case DstOver:
		return 1 - da, 1, true
	case SrcIn:
		return da, 0, true
	case DstIn:
		return 0, sa, true
	case SrcOut:
		return 1 - da, 0, true
	case DstOut:
		return 0, 1 - sa, true
	case SrcATop:
		return da, 1 - sa, true
	case DstATop:
		return 1 - da, sa, true
	case Xor:
		return 1 - da, 1 - sa, true
	}
	return 0, 0, false
}

func porterDuff(s, d Premul, mode Mode) Premul {
	if fs, fd, ok := coefficients(mode, s[3], d[3]); ok {
		var out Premul
		for i := range out {
			out[i] = s[i]*fs + d[i]*fd
		}
		return out
	}
	var out Premul
	for i := range out {
		switch mode {
		case Plus:
			out[i] = min(s[i]+d[i], 1)
		case Modulate:
			out[i] = s[i] * d[i]
		default: // Screen
			out[i] = s[i] + d[i] - s[i]*d[i]
		}
	}
	return out
}
