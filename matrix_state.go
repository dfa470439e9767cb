package displaylist

import (
	"math"

	"golang.org/x/image/math/f64"
)

// MatrixState tracks the current transform and its save/restore stack.
// Every transform operation pre-concatenates, so later calls apply in the
// child coordinate space established by earlier ones.
type MatrixState struct {
	current Matrix
	stack   []Matrix
}

// NewMatrixState returns a state holding the identity transform.
func NewMatrixState() *MatrixState {
	return &MatrixState{current: Identity()}
}

// Matrix returns the current transform.
func (s *MatrixState) Matrix() Matrix {
	return s.current
}

// Depth returns the number of saved transforms.
func (s *MatrixState) Depth() int {
	return len(s.stack)
}

// Save pushes a copy of the current transform.
func (s *MatrixState) Save() {
	s.stack = append(s.stack, s.current)
}

// Restore pops the most recently saved transform. It panics when nothing
// was saved.
func (s *MatrixState) Restore() {
	n := len(s.stack)
	if n == 0 {
		panic("displaylist: matrix restore without matching save")
	}
	s.current = s.stack[n-1]
	s.stack = s.stack[:n-1]
}

// Reset sets the current transform to identity. The stack is untouched.
func (s *MatrixState) Reset() {
	s.current = Identity()
}

// Translate pre-concatenates a translation.
func (s *MatrixState) Translate(tx, ty float64) {
	if tx == 0 && ty == 0 {
		return
	}
	s.current = s.current.Concat(TranslateMatrix(tx, ty))
}

// Scale pre-concatenates a scale.
func (s *MatrixState) Scale(sx, sy float64) {
	if sx == 1 && sy == 1 {
		return
	}
	s.current = s.current.Concat(ScaleMatrix(sx, sy))
}

// Rotate pre-concatenates a rotation in radians.
func (s *MatrixState) Rotate(angle float64) {
	if math.Mod(angle, 2*math.Pi) == 0 {
		return
	}
	s.current = s.current.Concat(RotateMatrix(angle))
}

// Skew pre-concatenates a skew.
func (s *MatrixState) Skew(sx, sy float64) {
	if sx == 0 && sy == 0 {
		return
	}
	s.current = s.current.Concat(SkewMatrix(sx, sy))
}

// Transform2DAffine pre-concatenates a 2x3 row-major affine matrix.
func (s *MatrixState) Transform2DAffine(a f64.Aff3) {
	s.current = s.current.Concat(MatrixFromAffine(a))
}

// TransformFullPerspective pre-concatenates a 4x4 row-major matrix.
func (s *MatrixState) TransformFullPerspective(m f64.Mat4) {
	s.current = s.current.Concat(MatrixFromMat4(m))
}

// SetMatrix replaces the current transform.
func (s *MatrixState) SetMatrix(m Matrix) {
	s.current = m
}
