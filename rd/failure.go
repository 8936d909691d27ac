package rd

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/descent"
)

// Failure is a recoverable parse failure. It is raised by the token readers
// on a mismatch and by Parser.Fail, and it is the only kind of error the
// backtracking combinators will catch. Any other error propagates through
// the combinators untouched.
//
// The location is captured at the moment the failure is raised, before any
// combinator restores the cursor, so the rendered position is where the
// failure was raised, not where the cursor ends up after backtracking.
type Failure struct {
	Msg string           // what the grammar expected
	Loc descent.Location // where the expectation was disappointed
}

// Error renders the failure as
//
//    <message> on line <N> at:
//    <line text>
//    <indent>^
//
// with the caret aligned under the failing column in a monospaced rendering.
func (f *Failure) Error() string {
	return fmt.Sprintf("%s on line %d at:\n%s\n%s^\n",
		f.Msg, f.Loc.Line, f.Loc.Text, caretIndent(f.Loc.Text, f.Loc.Column))
}

// caretIndent blanks the failing line's prefix up to col. Tabs survive so
// that the caret stays aligned however wide the terminal renders them.
func caretIndent(text string, col int) string {
	var b strings.Builder
	n := 0
	for _, r := range text {
		if n >= col {
			break
		}
		if r == '\t' {
			b.WriteRune('\t')
		} else {
			b.WriteByte(' ')
		}
		n++
	}
	return b.String()
}

// IsFailure reports whether err carries the recoverable-failure tag.
func IsFailure(err error) bool {
	var f *Failure
	return errors.As(err, &f)
}
