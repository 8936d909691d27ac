package rd

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/descent"
)

// inputBuffer owns the input text and the parse cursor. The cursor moves
// forward only, except through explicit restoration by a combinator which
// owns a snapshot of it.
//
// All regexes handed to match and peek must be anchored (see
// compileAnchored); the buffer matches them against the unconsumed tail.
type inputBuffer struct {
	text string
	pos  int          // byte offset of the cursor into text
	last descent.Span // extent of the most recently consumed match
}

func newInputBuffer(text string) *inputBuffer {
	return &inputBuffer{text: text}
}

// match attempts an anchored regex at the cursor. On success it advances the
// cursor past the match and returns the full match plus any parenthesised
// capture groups, in input order. A group which did not participate in the
// match is returned as the empty string.
func (b *inputBuffer) match(re *regexp.Regexp) (string, []string, bool) {
	loc := re.FindStringSubmatchIndex(b.text[b.pos:])
	if loc == nil {
		return "", nil, false
	}
	m := b.text[b.pos+loc[0] : b.pos+loc[1]]
	var groups []string
	for i := 1; i < len(loc)/2; i++ {
		if loc[2*i] < 0 {
			groups = append(groups, "")
			continue
		}
		groups = append(groups, b.text[b.pos+loc[2*i]:b.pos+loc[2*i+1]])
	}
	b.last = descent.Span{uint64(b.pos + loc[0]), uint64(b.pos + loc[1])}
	b.pos += loc[1]
	return m, groups, true
}

// peek is match without cursor movement.
func (b *inputBuffer) peek(re *regexp.Regexp) bool {
	return re.MatchString(b.text[b.pos:])
}

func (b *inputBuffer) position() int {
	return b.pos
}

// setPosition restores the cursor. Callers must only pass values previously
// returned by position during the same parse.
func (b *inputBuffer) setPosition(pos int) {
	b.pos = pos
}

func (b *inputBuffer) atEndOfText() bool {
	return b.pos >= len(b.text)
}

// append adds more text at the end of the buffer without altering the cursor.
// Only the whitespace skipper appends, so that an append can never split a
// token.
func (b *inputBuffer) append(more string) {
	b.text += more
}

// where computes the location of the cursor.
func (b *inputBuffer) where() descent.Location {
	return b.whereAt(b.pos)
}

// whereAt computes the 1-based line and 0-based column of an input position,
// together with the complete text of the line the position lies on.
func (b *inputBuffer) whereAt(pos int) descent.Location {
	if pos > len(b.text) {
		pos = len(b.text)
	}
	head := b.text[:pos]
	lineStart := strings.LastIndexByte(head, '\n') + 1
	lineEnd := len(b.text)
	if i := strings.IndexByte(b.text[pos:], '\n'); i >= 0 {
		lineEnd = pos + i
	}
	return descent.Location{
		Line:   strings.Count(head, "\n") + 1,
		Column: utf8.RuneCountInString(b.text[lineStart:pos]),
		Text:   b.text[lineStart:lineEnd],
	}
}
