package text

import "errors"

// Sentinel errors for the text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrNilFace is returned when shaping without a face.
	ErrNilFace = errors.New("text: nil face")
)
