package rd

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/npillmayer/descent"
)

// Token readers are the primitives a grammar is built from. Every reader
// except SubstringBefore first skips whitespace and comments, then tries its
// pattern anchored at the cursor: on success the cursor has moved past the
// consumed prefix; on failure no token text has been consumed and a
// recoverable *Failure is returned. Whitespace and comments skipped before
// a failing attempt stay skipped (MaybeExpect alone restores them).

// Expect consumes the literal string lit and returns it.
func (p *Parser) Expect(lit string) (string, error) {
	m, _, err := p.expectPattern(regexp.QuoteMeta(lit))
	return m, err
}

// ExpectMatch consumes a match of re and returns the matched text together
// with any parenthesised capture groups, in input order.
func (p *Parser) ExpectMatch(re *regexp.Regexp) (string, []string, error) {
	return p.expectPattern(re.String())
}

func (p *Parser) expectPattern(src string) (string, []string, error) {
	re, err := p.anchoredPattern(src)
	if err != nil {
		return "", nil, err
	}
	p.SkipWhitespace()
	m, groups, ok := p.in.match(re)
	if !ok {
		return "", nil, p.Fail("Expected " + src)
	}
	return m, groups, nil
}

// MaybeExpect consumes the literal lit if it is present at the cursor. It
// never raises a failure, so callers need no surrounding backtrack frame.
func (p *Parser) MaybeExpect(lit string) (string, bool) {
	m, _, ok := p.maybeExpectPattern(regexp.QuoteMeta(lit))
	return m, ok
}

// MaybeExpectMatch consumes a match of re if one is present at the cursor,
// returning the matched text and capture groups.
func (p *Parser) MaybeExpectMatch(re *regexp.Regexp) (string, []string, bool) {
	return p.maybeExpectPattern(re.String())
}

func (p *Parser) maybeExpectPattern(src string) (string, []string, bool) {
	re, err := p.anchoredPattern(src)
	if err != nil {
		return "", nil, false
	}
	pos := p.in.position()
	p.SkipWhitespace()
	m, groups, ok := p.in.match(re)
	if !ok {
		p.in.setPosition(pos)
	}
	return m, groups, ok
}

// SubstringBefore consumes and returns the maximal prefix up to, but
// excluding, the next occurrence of pat (a literal string or a compiled
// regex). If pat does not occur before the end of the text, or before a
// matching current end-of-scope pattern, the text up to that boundary is
// taken instead. SubstringBefore does not skip whitespace, and an empty
// result is not a failure.
func (p *Parser) SubstringBefore(pat interface{}) string {
	src, err := patternSource(pat)
	if err != nil {
		return ""
	}
	re, err := regexp.Compile(src)
	if err != nil {
		return ""
	}
	tail := p.in.text[p.in.pos:]
	limit := len(tail)
	if top := p.currentScope(); top != nil {
		if loc := top.search.FindStringIndex(tail); loc != nil {
			limit = loc[0]
		}
	}
	end := limit
	if loc := re.FindStringIndex(tail[:limit]); loc != nil {
		end = loc[0]
	}
	taken := tail[:end]
	p.in.last = descent.Span{uint64(p.in.pos), uint64(p.in.pos + end)}
	p.in.setPosition(p.in.pos + end)
	return taken
}

// TokenInt reads a signed integer: 0x… hex, 0… octal, 0o… octal if enabled
// at construction, decimal otherwise.
func (p *Parser) TokenInt() (int64, error) {
	p.SkipWhitespace()
	if p.AtEOS() {
		return 0, p.Fail("Expected integer")
	}
	pos := p.in.position()
	m, _, ok := p.in.match(p.patterns.intTok)
	if !ok {
		return 0, p.Fail("Expected integer")
	}
	n, err := strconv.ParseInt(m, 0, 64)
	if err != nil {
		p.in.setPosition(pos)
		return 0, p.Fail("Expected integer")
	}
	return n, nil
}

// TokenFloat reads a floating point number.
func (p *Parser) TokenFloat() (float64, error) {
	p.SkipWhitespace()
	if p.AtEOS() {
		return 0, p.Fail("Expected float")
	}
	pos := p.in.position()
	m, _, ok := p.in.match(p.patterns.float)
	if !ok {
		return 0, p.Fail("Expected float")
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		p.in.setPosition(pos)
		return 0, p.Fail("Expected float")
	}
	return f, nil
}

// TokenNumber reads either kind of number. A float is tried first, so a
// decimal point or an exponent always wins float interpretation; otherwise
// the lexeme is an integer.
func (p *Parser) TokenNumber() (interface{}, error) {
	p.SkipWhitespace()
	if p.AtEOS() {
		return nil, p.Fail("Expected number")
	}
	pos := p.in.position()
	if m, _, ok := p.in.match(p.patterns.float); ok {
		f, err := strconv.ParseFloat(m, 64)
		if err == nil {
			return f, nil
		}
		p.in.setPosition(pos)
	}
	if m, _, ok := p.in.match(p.patterns.intTok); ok {
		n, err := strconv.ParseInt(m, 0, 64)
		if err == nil {
			return n, nil
		}
		p.in.setPosition(pos)
	}
	return nil, p.Fail("Expected number")
}

// TokenString reads a quoted string: an opening delimiter matching the
// string_delim pattern, a body tolerating backslash escapes, and the same
// delimiter again. The body is returned with its escapes decoded.
func (p *Parser) TokenString() (string, error) {
	p.SkipWhitespace()
	if p.AtEOS() {
		return "", p.Fail("Expected string delimiter")
	}
	pos := p.in.position()
	delim, _, ok := p.in.match(p.patterns.stringDelim)
	if !ok {
		return "", p.Fail("Expected string delimiter")
	}
	bodyRe, err := p.anchoredPattern(`(?s)((?:\\.|[^\\])*?)` + regexp.QuoteMeta(delim))
	if err != nil {
		return "", err
	}
	_, groups, ok := p.in.match(bodyRe)
	if !ok {
		p.in.setPosition(pos)
		return "", p.Fail("Expected string")
	}
	p.in.last[0] = uint64(pos) // span the whole token, opening delimiter included
	return UnescapeString(groups[0]), nil
}

// TokenIdent reads an identifier.
func (p *Parser) TokenIdent() (string, error) {
	p.SkipWhitespace()
	if p.AtEOS() {
		return "", p.Fail("Expected identifier")
	}
	m, _, ok := p.in.match(p.patterns.ident)
	if !ok {
		return "", p.Fail("Expected identifier")
	}
	return m, nil
}

// TokenKw reads an identifier and requires it to be one of the listed
// keywords. An identifier which is not a listed keyword fails with the
// cursor restored to before the identifier.
func (p *Parser) TokenKw(kws ...string) (string, error) {
	msg := "Expected any of " + strings.Join(kws, ", ")
	p.SkipWhitespace()
	if p.AtEOS() {
		return "", p.Fail(msg)
	}
	pos := p.in.position()
	m, _, ok := p.in.match(p.patterns.ident)
	if !ok {
		return "", p.Fail(msg)
	}
	set := treeset.NewWithStringComparator()
	for _, kw := range kws {
		set.Add(kw)
	}
	if !set.Contains(m) {
		p.in.setPosition(pos)
		return "", p.Fail(msg)
	}
	return m, nil
}

// GenericToken reads a custom token class: a match of re, passed through
// convert. The name is used for the failure message. A nil convert returns
// the matched text unchanged.
func (p *Parser) GenericToken(name string, re *regexp.Regexp, convert func(string) interface{}) (interface{}, error) {
	p.SkipWhitespace()
	if p.AtEOS() {
		return nil, p.Fail("Expected " + name)
	}
	anch, err := p.anchoredPattern(re.String())
	if err != nil {
		return nil, err
	}
	m, _, ok := p.in.match(anch)
	if !ok {
		return nil, p.Fail("Expected " + name)
	}
	if convert == nil {
		return m, nil
	}
	return convert(m), nil
}

// UnescapeString decodes the backslash escapes a string body may contain:
// \a \b \e \f \n \r \t, \0 and \NNN octal, \xNN and \x{N…} hex. Any other
// \X yields the literal X.
func UnescapeString(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(s) {
			b.WriteByte('\\')
			break
		}
		switch e := s[i]; {
		case e == 'a':
			b.WriteByte(0x07)
		case e == 'b':
			b.WriteByte(0x08)
		case e == 'e':
			b.WriteByte(0x1B)
		case e == 'f':
			b.WriteByte(0x0C)
		case e == 'n':
			b.WriteByte('\n')
		case e == 'r':
			b.WriteByte('\r')
		case e == 't':
			b.WriteByte('\t')
		case e == 'x':
			i = unescapeHex(s, i, &b)
		case e >= '0' && e <= '7':
			i = unescapeOctal(s, i, &b)
		default:
			b.WriteByte(e)
		}
	}
	return b.String()
}

// unescapeOctal decodes \NNN with 1 to 3 octal digits, the first of which is
// at s[i]. It returns the index of the last digit consumed.
func unescapeOctal(s string, i int, b *strings.Builder) int {
	v := 0
	n := 0
	for ; i < len(s) && n < 3 && s[i] >= '0' && s[i] <= '7'; i++ {
		v = v*8 + int(s[i]-'0')
		n++
	}
	b.WriteRune(rune(v))
	return i - 1
}

// unescapeHex decodes \xNN (up to 2 hex digits) or \x{N…}, with the 'x' at
// s[i]. It returns the index of the last byte consumed.
func unescapeHex(s string, i int, b *strings.Builder) int {
	i++ // step past 'x'
	if i < len(s) && s[i] == '{' {
		end := strings.IndexByte(s[i:], '}')
		if end < 0 {
			b.WriteByte('x')
			return i - 1
		}
		if v, err := strconv.ParseUint(s[i+1:i+end], 16, 32); err == nil {
			b.WriteRune(rune(v))
		}
		return i + end
	}
	v := 0
	n := 0
	for ; i < len(s) && n < 2 && isHexDigit(s[i]); i++ {
		v = v*16 + hexVal(s[i])
		n++
	}
	if n == 0 {
		b.WriteByte('x')
		return i - 1
	}
	b.WriteRune(rune(v))
	return i - 1
}

func isHexDigit(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

func hexVal(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	default:
		return int(c-'A') + 10
	}
}
