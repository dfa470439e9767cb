package displaylist

// ClipOp selects how a clip shape combines with the current clip.
type ClipOp uint8

const (
	// ClipIntersect keeps the area inside both the clip and the shape.
	ClipIntersect ClipOp = iota
	// ClipDifference removes the shape from the clip.
	ClipDifference
)

// String returns the op name.
func (op ClipOp) String() string {
	if op == ClipDifference {
		return "Difference"
	}
	return "Intersect"
}

// clipRecord is the saved form of a clip. hasClip == false is the "no clip
// yet" sentinel: nothing constrains drawing. empty means a clip exists and
// excludes everything; bounds is then zero.
type clipRecord struct {
	hasClip bool
	empty   bool
	bounds  Rect
}

// ClipState tracks a conservative device-space clip rectangle and its
// save/restore stack. Only intersections shrink it; clip shapes contribute
// their bounds, so the tracked rectangle always contains the true clip.
type ClipState struct {
	matrix  *MatrixState
	current clipRecord
	stack   []clipRecord
}

// NewClipState returns a clip state that maps shapes through matrix. A
// non-nil cull rect becomes the initial clip.
func NewClipState(matrix *MatrixState, cull *Rect) *ClipState {
	s := &ClipState{matrix: matrix}
	if cull != nil {
		s.current.hasClip = true
		if cull.IsEmpty() {
			s.current.empty = true
		} else {
			s.current.bounds = *cull
		}
	}
	return s
}

// HasClip reports whether any clip is active, including an empty one.
func (s *ClipState) HasClip() bool { return s.current.hasClip }

// IsEmpty reports whether the active clip excludes everything.
func (s *ClipState) IsEmpty() bool { return s.current.hasClip && s.current.empty }

// Bounds returns the device-space clip rectangle. ok is false when no clip
// is active; an empty clip returns the zero Rect with ok true.
func (s *ClipState) Bounds() (bounds Rect, ok bool) {
	return s.current.bounds, s.current.hasClip
}

// Depth returns the number of saved clips.
func (s *ClipState) Depth() int { return len(s.stack) }

// Save pushes the current clip.
func (s *ClipState) Save() {
	s.stack = append(s.stack, s.current)
}

// Restore pops the most recently saved clip. It panics when nothing was
// saved.
func (s *ClipState) Restore() {
	n := len(s.stack)
	if n == 0 {
		panic("displaylist: clip restore without matching save")
	}
	s.current = s.stack[n-1]
	s.stack = s.stack[:n-1]
}

// ResetClip drops the current clip back to the "no clip" state.
func (s *ClipState) ResetClip() {
	s.current = clipRecord{}
}

// ClipRect clips to r.
func (s *ClipState) ClipRect(r Rect, op ClipOp, antiAlias bool) {
	if op == ClipIntersect {
		s.intersect(r, antiAlias)
	}
}

// ClipRRect clips to rr by its bounds.
func (s *ClipState) ClipRRect(rr RRect, op ClipOp, antiAlias bool) {
	if op == ClipIntersect {
		s.intersect(rr.Bounds(), antiAlias)
	}
}

// ClipPath clips to p by its bounds. An inverse-filled path swaps the
// meaning of the op: intersecting with the outside of a path cannot be
// bounded, while removing the outside equals intersecting with the inside.
func (s *ClipState) ClipPath(p *Path, op ClipOp, antiAlias bool) {
	if p.IsInverseFillType() == (op == ClipDifference) {
		s.intersect(p.Bounds(), antiAlias)
	}
}

// intersect maps local bounds to device space and intersects them with the
// current clip. Shapes crossing the perspective plane leave the clip as is.
func (s *ClipState) intersect(local Rect, antiAlias bool) {
	if s.IsEmpty() {
		return
	}
	device, ok := s.matrix.Matrix().MapRect(local.Sorted())
	if !ok {
		return
	}
	if antiAlias {
		device = device.RoundOut()
	}
	if !s.current.hasClip {
		s.current.hasClip = true
		if device.IsEmpty() {
			s.current.empty = true
		} else {
			s.current.bounds = device
		}
		return
	}
	if clipped, ok := s.current.bounds.Intersect(device); ok {
		s.current.bounds = clipped
	} else {
		s.current.empty = true
		s.current.bounds = Rect{}
	}
}
