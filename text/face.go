package text

import (
	"bytes"

	"github.com/go-text/typesetting/font"
)

// FontSource is a parsed font shared by any number of faces. It is safe for
// concurrent use.
type FontSource struct {
	font *font.Font
}

// NewFontSource parses TrueType or OpenType data.
func NewFontSource(data []byte) (*FontSource, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return &FontSource{font: face.Font}, nil
}

// Face returns a face of the given size in pixels.
func (s *FontSource) Face(size float64) *Face {
	return &Face{source: s, size: size}
}

// Face is a font source at a specific size. Faces are cheap values.
type Face struct {
	source *FontSource
	size   float64
}

// Size returns the size in pixels.
func (f *Face) Size() float64 { return f.size }

// Source returns the font the face draws from.
func (f *Face) Source() *FontSource { return f.source }
