// Package text shapes strings into text blobs that can be recorded into a
// display list.
//
// A [Blob] carries positioned glyphs and the ink bounds of the shaped run;
// it implements [displaylist.TextBlob], so the bounds calculator can bound
// DrawTextBlob ops without knowing anything about fonts.
//
// Shaping goes through go-text/typesetting's HarfBuzz port. Bidirectional
// strings are first split into directional runs with the Unicode bidi
// algorithm from golang.org/x/text:
//
//	src, err := text.NewFontSource(goregular.TTF)
//	if err != nil {
//	    return err
//	}
//	blob, err := text.NewShaper().Shape("Hello", src.Face(16))
//	if err != nil {
//	    return err
//	}
//	b := displaylist.NewBuilder()
//	b.DrawTextBlob(blob, 10, 30, nil)
//
// Fonts available only as golang.org/x/image/font faces, such as the fixed
// bitmap faces in basicfont, can be turned into blobs with [FromFace].
package text
