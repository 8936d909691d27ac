/*
Package rd implements a kernel for recursive-descent parsing with
backtracking.

A grammar is an ordinary Go function (of type Rule), composed from the
kernel's token readers and combinators. The kernel supplies the input
cursor, the whitespace- and comment-skipping discipline, the
backtracking protocol, scopes with implicit end-of-input at their
closing delimiter, and a uniform failure model which pinpoints the
offending line and column.

Building a Grammar

Clients construct a parser from a toplevel rule and optional pattern
overrides, then drive it with one of the From… methods:

    point := func(p *rd.Parser) (interface{}, error) {
        return p.ScopeOf("(", func(p *rd.Parser) (interface{}, error) {
            return p.ListOf(",", func(p *rd.Parser) (interface{}, error) {
                return p.TokenInt()
            })
        }, ")")
    }
    parser, err := rd.NewParser(point)
    if err != nil { … }
    coords, err := parser.FromString("(3, 4)")

Token readers are atomic: they either consume a prefix of the input
and return a value, or they consume no token text and return a
recoverable failure (whitespace and comments skipped before the attempt
stay skipped). Combinators snapshot the cursor before invoking client rules
and restore it when a recoverable failure occurs, so alternatives may
be tried in order:

    value, err := p.AnyOf(
        func(p *rd.Parser) (interface{}, error) { return p.TokenNumber() },
        func(p *rd.Parser) (interface{}, error) { return p.TokenString() },
    )

Committing

Within Maybe, AnyOf and ListOf, a rule may call Commit to declare that
the alternative taken is the right one. After a commit, failures are
no longer recoverable by that frame and propagate outward, which keeps
error positions close to the real mistake instead of a generic "Found
nothing parseable" at the start of the alternation.

Scopes

ScopeOf parses a delimited region. While the region's body runs, the
closing delimiter acts as an implicit end of input: token readers fail
cleanly at the closer, so ListOf and SequenceOf terminate without the
body having to know about the delimiter.

Failures

Parse failures render as a message, the offending line, and a caret
under the offending column:

    Expected integer on line 1 at:
    hello
    ^

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package rd

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'descent.rd'.
func tracer() tracing.Trace {
	return tracing.Select("descent.rd")
}
