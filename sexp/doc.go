/*
Package sexp implements a small reader for s-expressions, built on the
recursive-descent kernel of package rd. It serves as the worked example
for writing a grammar with the kernel.

The accepted language is a Lisp-ish surface:

    ; comments run to the end of the line
    (add 1 2.5 "three")
    '(quoted list)

Numbers become int64 or float64, strings are decoded Go strings,
identifiers become sexp.Symbol, lists become []interface{}, and a
quoted form 'x reads as (quote x).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package sexp

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'descent.sexp'.
func tracer() tracing.Trace {
	return tracing.Select("descent.sexp")
}
