package rd

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"regexp"
	"sync"

	"github.com/cnf/structhash"
)

// Names of the configurable patterns.
const (
	PatternWS          = "ws"
	PatternComment     = "comment"
	PatternInt         = "int"
	PatternFloat       = "float"
	PatternIdent       = "ident"
	PatternStringDelim = "string_delim"
)

// Default pattern sources. Only the comment pattern may be absent.
var defaultPatterns = map[string]string{
	PatternWS:          `\s+`,
	PatternComment:     ``,
	PatternInt:         `0x[0-9A-Fa-f]+|0[0-7]*|[1-9][0-9]*`,
	PatternFloat:       `-?(?i:(?:\d*\.\d+|\d+\.)(?:e-?\d+)?|\d+e-?\d+)`,
	PatternIdent:       `[a-zA-Z_][a-zA-Z0-9_]*`,
	PatternStringDelim: `["']`,
}

// octPrefixPattern is prepended to the int pattern when 0o-octals are enabled.
const octPrefixPattern = `0o[0-7]+`

// PatternSet is the set of compiled token patterns a parser works with,
// resolved once at parser construction. All regexes are anchored at the
// cursor. A PatternSet is immutable after compilation and may be shared
// between parser instances.
type PatternSet struct {
	ws          *regexp.Regexp
	comment     *regexp.Regexp // nil if absent
	intTok      *regexp.Regexp // int pattern with optional leading '-'
	float       *regexp.Regexp
	ident       *regexp.Regexp
	stringDelim *regexp.Regexp
}

// patternSpec identifies a pattern configuration. It keys the compile cache.
type patternSpec struct {
	Overrides map[string]string
	OctPrefix bool
}

var (
	patternCacheMu sync.Mutex
	patternCache   = make(map[string]*PatternSet)
)

// compilePatterns resolves a pattern configuration into a compiled set.
// User-supplied overrides beat the defaults. Identical configurations share
// one compiled set, keyed by a structural hash of the spec.
func compilePatterns(spec patternSpec) (*PatternSet, error) {
	key, err := structhash.Hash(spec, 1)
	if err == nil {
		patternCacheMu.Lock()
		ps, ok := patternCache[key]
		patternCacheMu.Unlock()
		if ok {
			return ps, nil
		}
	}
	sources := make(map[string]string, len(defaultPatterns))
	for name, src := range defaultPatterns {
		sources[name] = src
	}
	for name, src := range spec.Overrides {
		if _, ok := sources[name]; !ok {
			return nil, fmt.Errorf("unknown pattern name: %q", name)
		}
		if src == "" && name != PatternComment {
			return nil, fmt.Errorf("pattern %q must not be empty", name)
		}
		sources[name] = src
	}
	intSrc := sources[PatternInt]
	if spec.OctPrefix {
		intSrc = octPrefixPattern + "|" + intSrc
	}
	ps := &PatternSet{}
	if ps.ws, err = compileAnchored(sources[PatternWS]); err != nil {
		return nil, fmt.Errorf("ws pattern: %v", err)
	}
	if src := sources[PatternComment]; src != "" {
		if ps.comment, err = compileAnchored(src); err != nil {
			return nil, fmt.Errorf("comment pattern: %v", err)
		}
	}
	if ps.intTok, err = compileAnchored(`-?(?:` + intSrc + `)`); err != nil {
		return nil, fmt.Errorf("int pattern: %v", err)
	}
	if ps.float, err = compileAnchored(sources[PatternFloat]); err != nil {
		return nil, fmt.Errorf("float pattern: %v", err)
	}
	if ps.ident, err = compileAnchored(sources[PatternIdent]); err != nil {
		return nil, fmt.Errorf("ident pattern: %v", err)
	}
	if ps.stringDelim, err = compileAnchored(sources[PatternStringDelim]); err != nil {
		return nil, fmt.Errorf("string_delim pattern: %v", err)
	}
	if key != "" {
		patternCacheMu.Lock()
		patternCache[key] = ps
		patternCacheMu.Unlock()
	}
	return ps, nil
}

// compileAnchored compiles a pattern source anchored at the cursor. Matching
// happens against the unconsumed tail of the input, so a leading '^' pins the
// pattern to the cursor position.
func compileAnchored(src string) (*regexp.Regexp, error) {
	return regexp.Compile(`^(?:` + src + `)`)
}
