/*
Command parsetab is a small workbench for predictive and shift-reduce parsing.
It analyses grammars, prints LL(1) tables including their conflicts, and
parses token sequences with either the LL(1) parser or the LR parser driven by
ACTION/GOTO tables read from JSON. Every parse prints the parse tree and the
step trace.

	parsetab analyze expr.grammar
	parsetab ll expr.grammar id + id '*' id
	parsetab lr --source "a + b * c" expr_slr.json
	parsetab repl

Without arguments, the REPL works on a built-in expression language.

Output is rendered with pterm, unless flag --plain is given.
*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'parsetab.cli'.
func tracer() tracing.Trace {
	return tracing.Select("parsetab.cli")
}
