package displaylist

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Matrix is a 4x4 transform in row-major order, stored with the same layout
// as [f64.Mat4]. Points are column vectors with z = 0:
//
//	x' = m[0]*x + m[1]*y + m[3]
//	y' = m[4]*x + m[5]*y + m[7]
//	w  = m[12]*x + m[13]*y + m[15]
//
// The zero value is not the identity; use [Identity].
type Matrix f64.Mat4

// perspectiveEpsilon is the smallest homogeneous w accepted when mapping
// through a perspective matrix. Points closer to the w = 0 plane cannot be
// projected.
const perspectiveEpsilon = 1.0 / (1 << 14)

// Identity returns the identity matrix.
func Identity() Matrix {
	return Matrix{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// TranslateMatrix returns a translation matrix.
func TranslateMatrix(tx, ty float64) Matrix {
	m := Identity()
	m[3], m[7] = tx, ty
	return m
}

// ScaleMatrix returns a scaling matrix.
func ScaleMatrix(sx, sy float64) Matrix {
	m := Identity()
	m[0], m[5] = sx, sy
	return m
}

// RotateMatrix returns a rotation matrix (angle in radians, positive angles
// rotate from the x axis towards the y axis).
func RotateMatrix(angle float64) Matrix {
	sin, cos := math.Sincos(angle)
	m := Identity()
	m[0], m[1] = cos, -sin
	m[4], m[5] = sin, cos
	return m
}

// SkewMatrix returns a skew matrix: x' = x + sx*y, y' = sy*x + y.
func SkewMatrix(sx, sy float64) Matrix {
	m := Identity()
	m[1], m[4] = sx, sy
	return m
}

// MatrixFromAffine expands a 2x3 row-major affine matrix.
func MatrixFromAffine(a f64.Aff3) Matrix {
	return Matrix{
		a[0], a[1], 0, a[2],
		a[3], a[4], 0, a[5],
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// MatrixFromMat4 converts a row-major 4x4 matrix.
func MatrixFromMat4(m f64.Mat4) Matrix {
	return Matrix(m)
}

// Mat4 returns the matrix as an x/image 4x4 matrix.
func (m Matrix) Mat4() f64.Mat4 {
	return f64.Mat4(m)
}

// Affine returns the 2D affine part of the matrix. The boolean is false
// when the matrix has perspective or z terms that a 2x3 matrix cannot hold.
func (m Matrix) Affine() (f64.Aff3, bool) {
	a := f64.Aff3{m[0], m[1], m[3], m[4], m[5], m[7]}
	return a, !m.HasPerspective() && m[2] == 0 && m[6] == 0
}

// Concat returns m * n: n is applied first, then m.
func (m Matrix) Concat(n Matrix) Matrix {
	var out Matrix
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m[row*4+k] * n[k*4+col]
			}
			out[row*4+col] = sum
		}
	}
	return out
}

// IsIdentity reports whether m is exactly the identity.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

// IsTranslate reports whether m only translates in x and y.
func (m Matrix) IsTranslate() bool {
	t := Identity()
	t[3], t[7] = m[3], m[7]
	return m == t
}

// HasPerspective reports whether the bottom row differs from (0, 0, 0, 1).
func (m Matrix) HasPerspective() bool {
	return m[12] != 0 || m[13] != 0 || m[14] != 0 || m[15] != 1
}

// mapHomogeneous maps p and returns the projected point and its w.
func (m Matrix) mapHomogeneous(p Point) (Point, float64) {
	x := m[0]*p.X + m[1]*p.Y + m[3]
	y := m[4]*p.X + m[5]*p.Y + m[7]
	w := m[12]*p.X + m[13]*p.Y + m[15]
	if w == 1 {
		return Pt(x, y), w
	}
	return Pt(x/w, y/w), w
}

// MapPoint transforms p, dividing by w for perspective matrices.
func (m Matrix) MapPoint(p Point) Point {
	q, _ := m.mapHomogeneous(p)
	return q
}

// MapRect returns the bounding box of the four transformed corners of r.
// The boolean is false when a corner lands behind the perspective plane,
// in which case no finite bounds exist.
func (m Matrix) MapRect(r Rect) (Rect, bool) {
	if m.IsTranslate() {
		return r.Offset(m[3], m[7]), true
	}
	var pts [4]Point
	for i, c := range r.Corners() {
		q, w := m.mapHomogeneous(c)
		if w < perspectiveEpsilon || !q.IsFinite() {
			return Rect{}, false
		}
		pts[i] = q
	}
	return boundsOfPoints(pts[:]), true
}
