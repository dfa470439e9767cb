package text

import (
	xfont "golang.org/x/image/font"

	"github.com/gogpu/displaylist"
)

// FromFace builds a blob for s drawn with an x/image font face. Kerning
// comes from the face; no complex shaping is applied.
func FromFace(face xfont.Face, s string) *Blob {
	b, adv := xfont.BoundString(face, s)
	m := face.Metrics()

	blob := &Blob{
		advance: fixedToFloat(adv),
		ascent:  fixedToFloat(m.Ascent),
		descent: fixedToFloat(m.Descent),
	}
	if b.Min.X < b.Max.X && b.Min.Y < b.Max.Y {
		blob.bounds = displaylist.Rect{
			MinX: fixedToFloat(b.Min.X),
			MinY: fixedToFloat(b.Min.Y),
			MaxX: fixedToFloat(b.Max.X),
			MaxY: fixedToFloat(b.Max.Y),
		}
	}

	var pen float64
	prev := rune(-1)
	for i, r := range s {
		if prev >= 0 {
			pen += fixedToFloat(face.Kern(prev, r))
		}
		adv, _ := face.GlyphAdvance(r)
		blob.glyphs = append(blob.glyphs, Glyph{
			ID:      uint32(r),
			Cluster: i,
			X:       pen,
			Advance: fixedToFloat(adv),
		})
		pen += fixedToFloat(adv)
		prev = r
	}
	return blob
}
