package text

import (
	"unicode/utf8"

	"github.com/go-text/typesetting/language"
	"golang.org/x/text/unicode/bidi"
)

// Direction is the writing direction of a run.
type Direction uint8

const (
	DirectionLTR Direction = iota
	DirectionRTL
)

// String returns "LTR" or "RTL".
func (d Direction) String() string {
	if d == DirectionRTL {
		return "RTL"
	}
	return "LTR"
}

// Run is a maximal substring with one direction. Start and End are rune
// offsets into the source string, End exclusive.
type Run struct {
	Text       string
	Start, End int
	Direction  Direction
	Script     language.Script
}

// Segment splits s into directional runs in visual order using the Unicode
// bidi algorithm, with base as the paragraph direction.
func Segment(s string, base Direction) []Run {
	if s == "" {
		return nil
	}
	fallback := []Run{{
		Text:      s,
		End:       utf8.RuneCountInString(s),
		Direction: base,
		Script:    detectScript(s),
	}}

	def := bidi.LeftToRight
	if base == DirectionRTL {
		def = bidi.RightToLeft
	}
	var p bidi.Paragraph
	if _, err := p.SetString(s, bidi.DefaultDirection(def)); err != nil {
		return fallback
	}
	ordering, err := p.Order()
	if err != nil || ordering.NumRuns() == 0 {
		return fallback
	}

	runs := make([]Run, 0, ordering.NumRuns())
	for i := range ordering.NumRuns() {
		r := ordering.Run(i)
		start, end := r.Pos()
		dir := DirectionLTR
		if r.Direction() == bidi.RightToLeft {
			dir = DirectionRTL
		}
		str := r.String()
		runs = append(runs, Run{
			Text:      str,
			Start:     start,
			End:       end + 1,
			Direction: dir,
			Script:    detectScript(str),
		})
	}
	return runs
}

// detectScript returns the script of the first rune with a specific one.
func detectScript(s string) language.Script {
	for _, r := range s {
		sc := language.LookupScript(r)
		if sc != language.Common && sc != language.Inherited && sc != language.Unknown {
			return sc
		}
	}
	return language.Latin
}
