package rd

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import "regexp"

// The combinators compose rules into larger rules. Each backtrackable
// combinator snapshots the cursor and pushes a fresh commit frame before
// invoking client code; a recoverable failure with the frame uncommitted
// restores the snapshot, a committed frame re-raises. Non-failure errors
// always propagate.

// Maybe invokes body and returns its value. If body raises a recoverable
// failure and has not committed, the cursor is restored and Maybe returns
// nil ("absent") with no error.
func (p *Parser) Maybe(body Rule) (interface{}, error) {
	pos := p.in.position()
	fr := p.pushFrame()
	v, err := body(p)
	p.popFrame()
	if err == nil {
		return v, nil
	}
	if IsFailure(err) && !fr.committed {
		p.in.setPosition(pos)
		return nil, nil
	}
	return nil, err
}

// AnyOf tries each alternative in order and returns the value of the first
// one to succeed. An alternative failing recoverably without having
// committed restores the cursor and yields to the next one; once an
// alternative commits, its failure ends the whole AnyOf. If every
// alternative fails, AnyOf fails at the original cursor.
func (p *Parser) AnyOf(alts ...Rule) (interface{}, error) {
	pos := p.in.position()
	for _, alt := range alts {
		fr := p.pushFrame()
		v, err := alt(p)
		p.popFrame()
		if err == nil {
			return v, nil
		}
		if !IsFailure(err) || fr.committed {
			return nil, err
		}
		p.in.setPosition(pos)
	}
	return nil, p.FailFrom(uint64(pos), "Found nothing parseable")
}

// ScopeOf parses a delimited region: start (if non-nil), then body, then
// stop. start and stop are literal strings or compiled regexes. While body
// runs, stop is the current end-of-scope pattern — AtEOS becomes true at the
// closer, so token readers inside the region fail cleanly there and ListOf
// and SequenceOf terminate without knowing the delimiter. The scope entry is
// popped on every return path.
func (p *Parser) ScopeOf(start interface{}, body Rule, stop interface{}) (interface{}, error) {
	if start != nil {
		src, err := patternSource(start)
		if err != nil {
			return nil, err
		}
		if _, _, err := p.expectPattern(src); err != nil {
			return nil, err
		}
	}
	fr, err := newScopeFrame(stop)
	if err != nil {
		return nil, err
	}
	p.scopes.Push(fr)
	v, err := body(p)
	p.scopes.Pop()
	if err != nil {
		return nil, err
	}
	if _, _, err := p.expectPattern(fr.src); err != nil {
		return nil, err
	}
	return v, nil
}

// ListOf parses a possibly empty list of body, separated by sep (a literal
// string or a compiled regex; the empty literal always matches). The list
// ends at end-of-scope, at a missing separator, or at an uncommitted
// recoverable body failure — whose consumed input is then rolled back. A
// committed body failure ends the whole list.
func (p *Parser) ListOf(sep interface{}, body Rule) ([]interface{}, error) {
	sepRe, err := separatorPattern(sep)
	if err != nil {
		return nil, err
	}
	var ret []interface{}
	for {
		if p.AtEOS() {
			break
		}
		pos := p.in.position()
		fr := p.pushFrame()
		v, err := body(p)
		p.popFrame()
		if err != nil {
			if IsFailure(err) && !fr.committed {
				p.in.setPosition(pos)
				break
			}
			return nil, err
		}
		ret = append(ret, v)
		p.SkipWhitespace()
		if sepRe != nil {
			if _, _, ok := p.in.match(sepRe); !ok {
				break
			}
		}
	}
	return ret, nil
}

// SequenceOf parses a possibly empty run of body, with no separator between
// the elements. It is ListOf with the empty separator: termination happens
// solely through end-of-scope or body failure.
func (p *Parser) SequenceOf(body Rule) ([]interface{}, error) {
	return p.ListOf("", body)
}

// separatorPattern normalises a ListOf separator. The empty literal yields
// nil: a separator that always matches without consuming.
func separatorPattern(sep interface{}) (*regexp.Regexp, error) {
	src, err := patternSource(sep)
	if err != nil {
		return nil, err
	}
	if src == "" {
		return nil, nil
	}
	return compileAnchored(src)
}
