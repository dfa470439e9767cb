package displaylist

import "math"

// RSTransform is a compressed rotate-scale-translate matrix used by atlas
// sprites:
//
//	x' = SCos*x - SSin*y + TX
//	y' = SSin*x + SCos*y + TY
type RSTransform struct {
	SCos, SSin float64
	TX, TY     float64
}

// NewRSTransform builds a transform from a scale, a rotation in radians,
// a translation and an anchor point within the sprite.
func NewRSTransform(scale, radians, tx, ty, anchorX, anchorY float64) RSTransform {
	sin, cos := math.Sincos(radians)
	scos, ssin := scale*cos, scale*sin
	return RSTransform{
		SCos: scos,
		SSin: ssin,
		TX:   tx - scos*anchorX + ssin*anchorY,
		TY:   ty - ssin*anchorX - scos*anchorY,
	}
}

// MapPoint transforms p.
func (t RSTransform) MapPoint(p Point) Point {
	return Pt(t.SCos*p.X-t.SSin*p.Y+t.TX, t.SSin*p.X+t.SCos*p.Y+t.TY)
}

// SpriteBounds returns the bounding box of a sprite of size w by h placed
// with t.
func (t RSTransform) SpriteBounds(w, h float64) Rect {
	quad := [4]Point{
		t.MapPoint(Pt(0, 0)),
		t.MapPoint(Pt(w, 0)),
		t.MapPoint(Pt(w, h)),
		t.MapPoint(Pt(0, h)),
	}
	return boundsOfPoints(quad[:])
}

// Matrix expands t to a full transform.
func (t RSTransform) Matrix() Matrix {
	m := Identity()
	m[0], m[1], m[3] = t.SCos, -t.SSin, t.TX
	m[4], m[5], m[7] = t.SSin, t.SCos, t.TY
	return m
}
