package rd

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestPatternDefaults(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "descent.rd")
	defer teardown()
	//
	ps, err := compilePatterns(patternSpec{})
	if err != nil {
		t.Fatalf("default patterns do not compile: %v", err)
	}
	if ps.comment != nil {
		t.Errorf("Expected comment pattern to be absent by default")
	}
	for _, n := range []string{"0", "123", "0x20", "010", "-4"} {
		if !ps.intTok.MatchString(n) {
			t.Errorf("int pattern does not match %q", n)
		}
	}
	for _, n := range []string{"1.5", "-0.5", ".5", "5.", "1e6", "1E-6", "-2.5e-3"} {
		if !ps.float.MatchString(n) {
			t.Errorf("float pattern does not match %q", n)
		}
	}
	if ps.float.MatchString("abc") {
		t.Errorf("float pattern matches %q", "abc")
	}
}

func TestPatternOverride(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "descent.rd")
	defer teardown()
	//
	ps, err := compilePatterns(patternSpec{Overrides: map[string]string{
		PatternComment:     `#[^\n]*`,
		PatternStringDelim: `"`,
	}})
	if err != nil {
		t.Fatalf("overridden patterns do not compile: %v", err)
	}
	if ps.comment == nil {
		t.Fatalf("Expected comment pattern to be set")
	}
	if !ps.comment.MatchString("# note") {
		t.Errorf("comment override does not match")
	}
	if ps.stringDelim.MatchString("'") {
		t.Errorf("string_delim override still matches a single quote")
	}
}

func TestPatternUnknownName(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "descent.rd")
	defer teardown()
	//
	_, err := compilePatterns(patternSpec{Overrides: map[string]string{"strign": `"`}})
	if err == nil {
		t.Errorf("Expected an error for an unknown pattern name")
	}
}

func TestPatternOctPrefix(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "descent.rd")
	defer teardown()
	//
	plain, err := compilePatterns(patternSpec{})
	if err != nil {
		t.Fatal(err)
	}
	oct, err := compilePatterns(patternSpec{OctPrefix: true})
	if err != nil {
		t.Fatal(err)
	}
	if m := plain.intTok.FindString("0o17"); m != "0" {
		t.Errorf("Expected plain int pattern to take only %q of '0o17', takes %q", "0", m)
	}
	if m := oct.intTok.FindString("0o17"); m != "0o17" {
		t.Errorf("Expected 0o-enabled int pattern to take all of '0o17', takes %q", m)
	}
}

func TestPatternSetIsCached(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "descent.rd")
	defer teardown()
	//
	spec := patternSpec{Overrides: map[string]string{PatternStringDelim: `"`}}
	ps1, err := compilePatterns(spec)
	if err != nil {
		t.Fatal(err)
	}
	ps2, err := compilePatterns(patternSpec{Overrides: map[string]string{PatternStringDelim: `"`}})
	if err != nil {
		t.Fatal(err)
	}
	if ps1 != ps2 {
		t.Errorf("Expected equal configurations to share one compiled set")
	}
}
