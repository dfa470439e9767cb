package text

import "github.com/gogpu/displaylist"

// Glyph is one positioned glyph. X and Y are the pen position relative to
// the blob origin on the baseline, with offsets already applied.
type Glyph struct {
	ID      uint32
	Cluster int
	X, Y    float64
	Advance float64
}

// Blob is an immutable shaped run of glyphs.
type Blob struct {
	glyphs  []Glyph
	bounds  displaylist.Rect
	advance float64
	ascent  float64
	descent float64
}

var _ displaylist.TextBlob = (*Blob)(nil)

// NewBlob creates a blob from already positioned glyphs and their ink
// bounds. The glyph slice is retained.
func NewBlob(glyphs []Glyph, bounds displaylist.Rect, advance float64) *Blob {
	return &Blob{glyphs: glyphs, bounds: bounds, advance: advance}
}

// Glyphs returns the positioned glyphs. The slice must not be modified.
func (b *Blob) Glyphs() []Glyph { return b.glyphs }

// Len returns the number of glyphs.
func (b *Blob) Len() int { return len(b.glyphs) }

// Bounds returns the ink bounds relative to the origin, y pointing down.
func (b *Blob) Bounds() displaylist.Rect { return b.bounds }

// Advance returns the total horizontal advance.
func (b *Blob) Advance() float64 { return b.advance }

// LineBounds returns the box from ascent to descent over the advance. It
// is empty for blobs built without font metrics.
func (b *Blob) LineBounds() displaylist.Rect {
	return displaylist.Rect{MinX: 0, MinY: -b.ascent, MaxX: b.advance, MaxY: b.descent}
}
