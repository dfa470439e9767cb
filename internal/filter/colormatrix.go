package filter

// ColorMatrix is a 4x5 color transformation in row-major order applied to
// non-premultiplied RGBA in [0, 1]:
//
//	[R']   [m0  m1  m2  m3  m4 ]   [R]
//	[G'] = [m5  m6  m7  m8  m9 ] * [G]
//	[B']   [m10 m11 m12 m13 m14]   [B]
//	[A']   [m15 m16 m17 m18 m19]   [A]
//	                               [1]
//
// The fifth column is a bias in normalized units.
type ColorMatrix [20]float64

// Identity passes colors through unchanged.
var Identity = ColorMatrix{
	1, 0, 0, 0, 0,
	0, 1, 0, 0, 0,
	0, 0, 1, 0, 0,
	0, 0, 0, 1, 0,
}

// Invert is the fixed inversion matrix applied by the invert-colors paint
// attribute. Color channels become A - C, alpha sums all channels, and
// transparent black maps to transparent black.
var Invert = ColorMatrix{
	-1, 0, 0, 1, 0,
	0, -1, 0, 1, 0,
	0, 0, -1, 1, 0,
	1, 1, 1, 1, 0,
}

// Saturation returns a matrix that scales saturation by s using Rec. 709
// luminance weights. s = 0 yields grayscale.
func Saturation(s float64) ColorMatrix {
	const (
		lumR = 0.2126
		lumG = 0.7152
		lumB = 0.0722
	)
	sr, sg, sb := (1-s)*lumR, (1-s)*lumG, (1-s)*lumB
	return ColorMatrix{
		sr + s, sg, sb, 0, 0,
		sr, sg + s, sb, 0, 0,
		sr, sg, sb + s, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// Apply transforms c and clamps every channel to [0, 1].
func (m *ColorMatrix) Apply(c [4]float64) [4]float64 {
	var out [4]float64
	for row := 0; row < 4; row++ {
		r := m[row*5:]
		v := r[0]*c[0] + r[1]*c[1] + r[2]*c[2] + r[3]*c[3] + r[4]
		out[row] = min(max(v, 0), 1)
	}
	return out
}

// Concat returns the matrix equivalent to applying inner first, then m.
func (m *ColorMatrix) Concat(inner *ColorMatrix) ColorMatrix {
	var out ColorMatrix
	for row := 0; row < 4; row++ {
		for col := 0; col < 5; col++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m[row*5+k] * inner[k*5+col]
			}
			if col == 4 {
				sum += m[row*5+4]
			}
			out[row*5+col] = sum
		}
	}
	return out
}

// ModifiesTransparentBlack reports whether transparent black maps to
// anything other than transparent black. Only the bias column can move it.
func (m *ColorMatrix) ModifiesTransparentBlack() bool {
	return m[4] != 0 || m[9] != 0 || m[14] != 0 || m[19] != 0
}

// IsIdentity reports whether m equals Identity.
func (m *ColorMatrix) IsIdentity() bool {
	return *m == Identity
}
