package text

import (
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/displaylist"
)

// ShapeOption configures a single Shape call.
type ShapeOption func(*shapeOptions)

type shapeOptions struct {
	direction Direction
	language  language.Language
}

// WithDirection sets the paragraph direction. The default is LTR.
func WithDirection(d Direction) ShapeOption {
	return func(o *shapeOptions) { o.direction = d }
}

// WithLanguage sets the BCP 47 language used to pick shaping rules.
func WithLanguage(tag string) ShapeOption {
	return func(o *shapeOptions) { o.language = language.NewLanguage(tag) }
}

// Shaper turns strings into blobs with HarfBuzz shaping.
//
// Shaper is safe for concurrent use. HarfbuzzShaper keeps internal buffers,
// so instances are pooled rather than shared.
type Shaper struct {
	pool sync.Pool
}

// NewShaper creates a shaper.
func NewShaper() *Shaper {
	return &Shaper{
		pool: sync.Pool{
			New: func() any { return &shaping.HarfbuzzShaper{} },
		},
	}
}

// Shape shapes s with face. Bidirectional text is split into runs that are
// shaped separately and laid out left to right in visual order.
func (s *Shaper) Shape(str string, face *Face, opts ...ShapeOption) (*Blob, error) {
	if face == nil || face.source == nil {
		return nil, ErrNilFace
	}
	o := shapeOptions{language: language.NewLanguage("en")}
	for _, opt := range opts {
		opt(&o)
	}

	runes := []rune(str)
	// font.Face is not safe for concurrent use; each call gets its own.
	gtFace := font.NewFace(face.source.font)
	hb := s.pool.Get().(*shaping.HarfbuzzShaper)
	defer s.pool.Put(hb)

	blob := &Blob{}
	var pen float64
	for _, run := range Segment(str, o.direction) {
		out := hb.Shape(shaping.Input{
			Text:      runes,
			RunStart:  run.Start,
			RunEnd:    run.End,
			Direction: toDI(run.Direction),
			Face:      gtFace,
			Size:      fixed.Int26_6(face.size * 64),
			Script:    run.Script,
			Language:  o.language,
		})
		blob.ascent = max(blob.ascent, fixedToFloat(out.LineBounds.Ascent))
		blob.descent = max(blob.descent, -fixedToFloat(out.LineBounds.Descent))
		for _, g := range out.Glyphs {
			blob.glyphs = append(blob.glyphs, Glyph{
				ID:      uint32(g.GlyphID),
				Cluster: g.TextIndex(),
				X:       pen + fixedToFloat(g.XOffset),
				Y:       -fixedToFloat(g.YOffset),
				Advance: fixedToFloat(g.Advance),
			})
			blob.bounds = blob.bounds.Union(inkBounds(g, pen))
			pen += fixedToFloat(g.Advance)
		}
	}
	blob.advance = pen
	displaylist.Logger().Debug("text: shaped string",
		"runes", len(runes), "glyphs", len(blob.glyphs), "bounds", blob.bounds)
	return blob, nil
}

// inkBounds converts a glyph's y-up extents to a y-down rectangle at pen.
func inkBounds(g shaping.Glyph, pen float64) displaylist.Rect {
	x := pen + fixedToFloat(g.XOffset+g.XBearing)
	top := -fixedToFloat(g.YOffset + g.YBearing)
	return displaylist.Rect{
		MinX: x,
		MinY: top,
		MaxX: x + fixedToFloat(g.Width),
		MaxY: top - fixedToFloat(g.Height),
	}
}

func toDI(d Direction) di.Direction {
	if d == DirectionRTL {
		return di.DirectionRTL
	}
	return di.DirectionLTR
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
