package rd

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/descent"
)

// Rule is a grammar rule: a function receiving the parser it runs on.
// Grammars are compositions of rules, built from the kernel's token readers
// and combinators. A rule returns a semantic value, or an error. Returning a
// *Failure makes the error recoverable by an enclosing backtracking
// combinator; any other error propagates to the driver untouched.
type Rule func(p *Parser) (interface{}, error)

// ReadFunc is a streaming reader: a pull callback supplying additional input
// text. It is consulted only while the parser skips whitespace, never in the
// middle of a token. Returning ok=false detaches the reader permanently.
type ReadFunc func(p *Parser) (more string, ok bool)

// Parser is a recursive-descent parser with backtracking over a single input
// string. A Parser is owned exclusively by the goroutine running one of its
// From… methods; no method is safe under concurrent invocation.
type Parser struct {
	in       *inputBuffer
	patterns *PatternSet
	toplevel Rule
	read     ReadFunc          // streaming reader, nil when absent or detached
	scopes   *arraystack.Stack // of *scopeFrame
	frames   *arraystack.Stack // of *commitFrame
	anchored map[string]*regexp.Regexp

	overrides map[string]string // collected by options, resolved at construction
	octPrefix bool
}

// scopeFrame is one entry of the scope stack: the end-of-scope pattern in
// anchored form (for the end-of-input test) and in searchable form (for
// SubstringBefore's boundary).
type scopeFrame struct {
	src    string
	stop   *regexp.Regexp
	search *regexp.Regexp
}

// commitFrame is the per-backtrack-frame commit flag.
type commitFrame struct {
	committed bool
}

// Option configures a parser at construction time.
type Option func(p *Parser)

// WithPattern overrides one of the named patterns {ws, comment, int, float,
// ident, string_delim}. Overriding comment with the empty source removes it.
func WithPattern(name string, src string) Option {
	return func(p *Parser) {
		p.overrides[name] = src
	}
}

// WithPatterns overrides several patterns at once.
func WithPatterns(overrides map[string]string) Option {
	return func(p *Parser) {
		for name, src := range overrides {
			p.overrides[name] = src
		}
	}
}

// AcceptOctPrefix makes the int pattern additionally accept 0o-prefixed
// octal integers.
func AcceptOctPrefix(b bool) Option {
	return func(p *Parser) {
		p.octPrefix = b
	}
}

// NewParser creates a parser for a grammar. The grammar is described by its
// toplevel rule plus any pattern overrides given as options.
//
// NewParser returns an error if a pattern override does not compile or names
// an unknown pattern.
func NewParser(toplevel Rule, opts ...Option) (*Parser, error) {
	if toplevel == nil {
		return nil, fmt.Errorf("no toplevel rule given")
	}
	p := &Parser{
		in:        newInputBuffer(""),
		toplevel:  toplevel,
		overrides: make(map[string]string),
		scopes:    arraystack.New(),
		frames:    arraystack.New(),
		anchored:  make(map[string]*regexp.Regexp),
	}
	for _, opt := range opts {
		opt(p)
	}
	ps, err := compilePatterns(patternSpec{Overrides: p.overrides, OctPrefix: p.octPrefix})
	if err != nil {
		return nil, err
	}
	p.patterns = ps
	return p, nil
}

// reset seats new input text and clears all parse state.
func (p *Parser) reset(text string) {
	p.in = newInputBuffer(text)
	p.read = nil
	p.scopes.Clear()
	p.frames.Clear()
}

// --- Drivers ---------------------------------------------------------------

// FromString parses text and returns the toplevel rule's value. After the
// rule returns, the parser must be at end of input, or FromString fails with
// "Expected end of input".
func (p *Parser) FromString(text string) (interface{}, error) {
	p.reset(text)
	return p.parse()
}

// FromFile reads the file at path in full and parses its contents.
func (p *Parser) FromFile(path string) (interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return p.FromString(string(data))
}

// FromHandle reads an already-opened handle in full and parses its contents.
// Hosts needing a non-UTF-8 text encoding wrap the handle with a decoding
// reader; read errors propagate.
func (p *Parser) FromHandle(r io.Reader) (interface{}, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return p.FromString(string(data))
}

// FromReader installs read as a streaming reader and parses. The parser
// starts with empty text and pulls more from read while skipping whitespace.
// Once read returns ok=false it is detached and never called again. The
// reader is installed for this invocation only.
func (p *Parser) FromReader(read ReadFunc) (interface{}, error) {
	p.reset("")
	p.read = read
	defer func() { p.read = nil }()
	return p.parse()
}

func (p *Parser) parse() (interface{}, error) {
	v, err := p.toplevel(p)
	if err != nil {
		tracer().Debugf("parse failed: %v", err)
		return nil, err
	}
	if !p.AtEOS() {
		return nil, p.Fail("Expected end of input")
	}
	return v, nil
}

// --- Public state operations ------------------------------------------------

// Pos returns the cursor position, in bytes from the start of the input.
func (p *Parser) Pos() uint64 {
	return uint64(p.in.position())
}

// Where returns the location of the cursor: 1-based line, 0-based column,
// and the complete text of the current line.
func (p *Parser) Where() descent.Location {
	return p.in.where()
}

// LastSpan returns the extent of the most recently consumed match: after a
// successful token reader, the input positions its token covers.
func (p *Parser) LastSpan() descent.Span {
	return p.in.last
}

// ScopeLevel returns the number of active nested scopes introduced by
// ScopeOf, excluding the root.
func (p *Parser) ScopeLevel() int {
	return p.scopes.Size()
}

// Fail raises a recoverable parse failure at the cursor.
func (p *Parser) Fail(msg string) error {
	return p.FailFrom(p.Pos(), msg)
}

// FailFrom raises a recoverable parse failure at an explicit position. The
// location is captured immediately, so it survives later cursor restoration.
func (p *Parser) FailFrom(pos uint64, msg string) error {
	return &Failure{Msg: msg, Loc: p.in.whereAt(int(pos))}
}

// SkipWhitespace consumes, at the cursor, any run of whitespace and (if a
// comment pattern is configured) comments, in any order, until neither
// matches. If that leaves the cursor at the end of the text and a streaming
// reader is installed, the reader is consulted; non-empty text restarts the
// skip, and an absent result (ok=false) detaches the reader for good.
//
// Skipping is the only moment at which input may grow: a whitespace boundary
// is the one place an append can never split a token.
func (p *Parser) SkipWhitespace() {
	for {
		for {
			if _, _, ok := p.in.match(p.patterns.ws); ok {
				continue
			}
			if p.patterns.comment != nil {
				if _, _, ok := p.in.match(p.patterns.comment); ok {
					continue
				}
			}
			break
		}
		if !p.in.atEndOfText() || p.read == nil {
			return
		}
		more, ok := p.read(p)
		if !ok {
			tracer().Debugf("streaming reader exhausted, detaching")
			p.read = nil
			return
		}
		if more == "" {
			return
		}
		p.in.append(more)
	}
}

// AtEOS reports whether the parser is at the end of its syntactic scope:
// either at the end of the input text, or — inside a ScopeOf — at a position
// where the current end-of-scope pattern matches. Whitespace and comments
// are skipped first.
func (p *Parser) AtEOS() bool {
	p.SkipWhitespace()
	if p.in.atEndOfText() {
		return true
	}
	if top := p.currentScope(); top != nil {
		return p.in.peek(top.stop)
	}
	return false
}

func (p *Parser) currentScope() *scopeFrame {
	if top, ok := p.scopes.Peek(); ok {
		return top.(*scopeFrame)
	}
	return nil
}

// --- Backtrack frames -------------------------------------------------------

func (p *Parser) pushFrame() *commitFrame {
	fr := &commitFrame{}
	p.frames.Push(fr)
	return fr
}

func (p *Parser) popFrame() {
	p.frames.Pop()
}

// Commit sets the commit flag of the innermost backtrackable frame: the
// enclosing Maybe, AnyOf or ListOf will no longer catch recoverable failures
// nor restore the cursor, so failures surface at the position really tried.
//
// Calling Commit with no backtrackable frame active is a grammar programming
// error and panics.
func (p *Parser) Commit() {
	top, ok := p.frames.Peek()
	if !ok {
		panic(fmt.Errorf("commit called outside of any backtrackable frame"))
	}
	top.(*commitFrame).committed = true
}

// --- Pattern plumbing -------------------------------------------------------

// anchoredPattern compiles a pattern source anchored at the cursor, caching
// compiled regexes per parser instance.
func (p *Parser) anchoredPattern(src string) (*regexp.Regexp, error) {
	if re, ok := p.anchored[src]; ok {
		return re, nil
	}
	re, err := compileAnchored(src)
	if err != nil {
		return nil, err
	}
	p.anchored[src] = re
	return re, nil
}

// patternSource normalises a literal-or-regex argument into a pattern
// source. Literal strings are regex-escaped; compiled regexes contribute
// their source unchanged.
func patternSource(pat interface{}) (string, error) {
	switch x := pat.(type) {
	case string:
		return regexp.QuoteMeta(x), nil
	case *regexp.Regexp:
		return x.String(), nil
	default:
		return "", fmt.Errorf("pattern must be a string or a *regexp.Regexp, is %T", pat)
	}
}

// newScopeFrame compiles an end-of-scope pattern into a scope stack entry.
func newScopeFrame(stop interface{}) (*scopeFrame, error) {
	src, err := patternSource(stop)
	if err != nil {
		return nil, err
	}
	fr := &scopeFrame{src: src}
	if fr.stop, err = compileAnchored(src); err != nil {
		return nil, err
	}
	if fr.search, err = regexp.Compile(src); err != nil {
		return nil, err
	}
	return fr, nil
}
