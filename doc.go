/*
Package descent is a toolbox for writing recursive-descent parsers
with backtracking.

descent strives to be a smart and lightweight tool for hand-written
parsers of DSLs and small languages. Package structure is as follows:

■ rd: Package rd implements the parser kernel: an input cursor, token
readers, backtracking combinators, scopes and a uniform failure model.

■ sexp: Package sexp implements a small s-expression reader as a
demonstration of building a grammar on top of the kernel.

The base package contains data types which are used throughout all the
other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package descent
