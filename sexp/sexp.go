package sexp

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"github.com/npillmayer/descent/rd"
)

// Symbol is the type identifiers read as.
type Symbol string

// Quote is the symbol a 'x form expands to: (quote x).
const Quote = Symbol("quote")

// Pattern overrides for the Lisp-ish surface: ';' line comments, operator
// characters as identifiers, and double quotes only for strings (the single
// quote is taken by the quote form).
var readerPatterns = map[string]string{
	"comment":      `;[^\n]*\n?`,
	"ident":        `[#a-zA-Z+*/=!?<>_-][#a-zA-Z0-9+*/=!?<>_-]*`,
	"string_delim": `"`,
}

// Reader reads s-expressions.
type Reader struct {
	parser *rd.Parser
}

// NewReader creates a reader. Additional options are passed through to the
// underlying parser and beat the reader's own pattern setup.
func NewReader(opts ...rd.Option) (*Reader, error) {
	all := append([]rd.Option{rd.WithPatterns(readerPatterns)}, opts...)
	parser, err := rd.NewParser(forms, all...)
	if err != nil {
		return nil, err
	}
	return &Reader{parser: parser}, nil
}

// Parse reads all s-expressions in input and returns them as a slice.
func (r *Reader) Parse(input string) ([]interface{}, error) {
	tracer().Debugf("reading from string of length %d", len(input))
	v, err := r.parser.FromString(input)
	if err != nil {
		return nil, err
	}
	return v.([]interface{}), nil
}

// ParseFile reads all s-expressions in the file at path.
func (r *Reader) ParseFile(path string) ([]interface{}, error) {
	tracer().Debugf("reading from file %s", path)
	v, err := r.parser.FromFile(path)
	if err != nil {
		return nil, err
	}
	return v.([]interface{}), nil
}

// Parse is a convenience for one-shot reading with default patterns.
func Parse(input string) ([]interface{}, error) {
	r, err := NewReader()
	if err != nil {
		return nil, err
	}
	return r.Parse(input)
}

// --- Grammar ---------------------------------------------------------------

// forms      ::=  datum*
// datum      ::=  quoted | list | number | string | symbol
// quoted     ::=  '\'' datum
// list       ::=  '(' datum* ')'
//
// Comments starting with ';' are skipped between tokens.

func forms(p *rd.Parser) (interface{}, error) {
	// Committing each toplevel element lets a failure from inside a form
	// surface as it is, instead of ending the sequence early.
	vs, err := p.SequenceOf(func(p *rd.Parser) (interface{}, error) {
		p.Commit()
		return datum(p)
	})
	if err != nil {
		return nil, err
	}
	return vs, nil
}

func datum(p *rd.Parser) (interface{}, error) {
	return p.AnyOf(quoted, list, number, str, symbol)
}

func quoted(p *rd.Parser) (interface{}, error) {
	if _, err := p.Expect("'"); err != nil {
		return nil, err
	}
	p.Commit()
	v, err := datum(p)
	if err != nil {
		return nil, err
	}
	return []interface{}{Quote, v}, nil
}

func list(p *rd.Parser) (interface{}, error) {
	return p.ScopeOf("(", func(p *rd.Parser) (interface{}, error) {
		p.Commit()
		vs, err := p.SequenceOf(datum)
		if err != nil {
			return nil, err
		}
		return vs, nil
	}, ")")
}

func number(p *rd.Parser) (interface{}, error) {
	return p.TokenNumber()
}

func str(p *rd.Parser) (interface{}, error) {
	return p.TokenString()
}

func symbol(p *rd.Parser) (interface{}, error) {
	name, err := p.TokenIdent()
	if err != nil {
		return nil, err
	}
	return Symbol(name), nil
}
