package sexp

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

var readerInputs = []string{
	"x",
	"(a b c)",
	"(add 1 2.5 \"three\")",
	"'(quoted list)",
	"(outer (inner 1) 2) ; trailing comment",
	"",
}

var formCounts = []int{1, 1, 1, 1, 1, 0}

func TestReader(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "descent.sexp")
	defer teardown()
	//
	for i, input := range readerInputs {
		forms, err := Parse(input)
		if err != nil {
			t.Errorf("#%d %q: %v", i, input, err)
			continue
		}
		if len(forms) != formCounts[i] {
			t.Errorf("Expected form count for #%d to be %d, is %d", i, formCounts[i], len(forms))
		}
	}
}

func TestReaderAtoms(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "descent.sexp")
	defer teardown()
	//
	forms, err := Parse(`(add 1 2.5 "three" -4)`)
	if err != nil {
		t.Fatal(err)
	}
	list := forms[0].([]interface{})
	if len(list) != 5 {
		t.Fatalf("Expected 5 list elements, are %d", len(list))
	}
	if list[0] != Symbol("add") {
		t.Errorf("Expected symbol add, is %v", list[0])
	}
	if list[1] != int64(1) {
		t.Errorf("Expected integer 1, is %v (%T)", list[1], list[1])
	}
	if list[2] != 2.5 {
		t.Errorf("Expected float 2.5, is %v (%T)", list[2], list[2])
	}
	if list[3] != "three" {
		t.Errorf("Expected string three, is %v", list[3])
	}
	if list[4] != int64(-4) {
		t.Errorf("Expected integer -4, is %v (%T)", list[4], list[4])
	}
}

func TestReaderQuote(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "descent.sexp")
	defer teardown()
	//
	forms, err := Parse("'x")
	if err != nil {
		t.Fatal(err)
	}
	q := forms[0].([]interface{})
	if len(q) != 2 || q[0] != Quote || q[1] != Symbol("x") {
		t.Errorf("Expected (quote x), is %v", q)
	}
}

func TestReaderNesting(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "descent.sexp")
	defer teardown()
	//
	forms, err := Parse("(a (b (c)) d)")
	if err != nil {
		t.Fatal(err)
	}
	outer := forms[0].([]interface{})
	if len(outer) != 3 {
		t.Fatalf("Expected 3 outer elements, are %d", len(outer))
	}
	mid := outer[1].([]interface{})
	if mid[0] != Symbol("b") {
		t.Errorf("Expected (b (c)), is %v", mid)
	}
	inner := mid[1].([]interface{})
	if len(inner) != 1 || inner[0] != Symbol("c") {
		t.Errorf("Expected (c), is %v", inner)
	}
}

func TestReaderOperatorSymbols(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "descent.sexp")
	defer teardown()
	//
	forms, err := Parse("(+ 1 2)")
	if err != nil {
		t.Fatal(err)
	}
	list := forms[0].([]interface{})
	if list[0] != Symbol("+") {
		t.Errorf("Expected symbol +, is %v", list[0])
	}
}

func TestReaderComments(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "descent.sexp")
	defer teardown()
	//
	forms, err := Parse("; nothing here\n(a ; inline\n b)\n")
	if err != nil {
		t.Fatal(err)
	}
	list := forms[0].([]interface{})
	if len(list) != 2 || list[0] != Symbol("a") || list[1] != Symbol("b") {
		t.Errorf("Expected (a b), is %v", list)
	}
}

func TestReaderUnclosedList(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "descent.sexp")
	defer teardown()
	//
	_, err := Parse("(a b")
	if err == nil {
		t.Fatalf("Expected an unclosed list to fail")
	}
	if !strings.Contains(err.Error(), "on line 1 at:") {
		t.Errorf("unexpected failure rendering: %q", err.Error())
	}
}

func TestReaderFailurePointsIntoList(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "descent.sexp")
	defer teardown()
	//
	// the list alternative commits after '(', so a bad element reports from
	// inside the list instead of "nothing parseable"
	_, err := Parse(`(a "unterminated)`)
	if err == nil {
		t.Fatalf("Expected the unterminated string to fail")
	}
	if strings.Contains(err.Error(), "Found nothing parseable") {
		t.Errorf("committed list fell back to other alternatives: %q", err.Error())
	}
}
