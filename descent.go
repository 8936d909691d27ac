package descent

import "fmt"

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing an extent of input text. Token readers
// record which input positions the token they consumed covers.
// A span denotes a start position and the position just behind the end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

func (s Span) IsNull() bool {
	return s == Span{}
}

func (s Span) Extend(other Span) Span {
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}

// --- Locations --------------------------------------------------------

// Location is a human-readable input position: a 1-based line number, a
// 0-based column, and the complete text of the line the position lies on
// (bounded by the nearest line terminators on either side).
//
// Locations are produced by a parser's Where method and embedded in parse
// failures for error rendering.
type Location struct {
	Line   int    // 1-based line number
	Column int    // 0-based column within Text
	Text   string // complete text of the current line
}

func (loc Location) String() string {
	return fmt.Sprintf("%d:%d", loc.Line, loc.Column)
}
