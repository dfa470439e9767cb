package displaylist

import "math"

// VertexMode selects how vertex positions are grouped into triangles.
type VertexMode uint8

const (
	// VertexTriangles uses each consecutive triple.
	VertexTriangles VertexMode = iota
	// VertexTriangleStrip shares two vertices between neighbours.
	VertexTriangleStrip
	// VertexTriangleFan shares the first vertex.
	VertexTriangleFan
)

// Vertices is a triangle mesh. TexCoords and Colors, when present, have
// one entry per position. Indices, when present, select positions.
type Vertices struct {
	Mode      VertexMode
	Positions []Point
	TexCoords []Point
	Colors    []Color
	Indices   []uint16
}

// Bounds returns the bounding box of the referenced positions.
func (v *Vertices) Bounds() Rect {
	if len(v.Indices) == 0 {
		return boundsOfPoints(v.Positions)
	}
	r := Rect{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
	for _, i := range v.Indices {
		if int(i) >= len(v.Positions) {
			continue
		}
		p := v.Positions[i]
		r.MinX = min(r.MinX, p.X)
		r.MinY = min(r.MinY, p.Y)
		r.MaxX = max(r.MaxX, p.X)
		r.MaxY = max(r.MaxY, p.Y)
	}
	if r.MinX > r.MaxX {
		return Rect{}
	}
	return r
}

// TriangleCount returns how many triangles the mesh draws.
func (v *Vertices) TriangleCount() int {
	n := len(v.Positions)
	if len(v.Indices) > 0 {
		n = len(v.Indices)
	}
	switch v.Mode {
	case VertexTriangles:
		return n / 3
	default:
		return max(n-2, 0)
	}
}
