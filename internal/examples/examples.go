// Package examples holds an expression language, both as a grammar suitable
// for predictive parsing and as SLR(1) tables for its left-recursive
// formulation. Both recognize the same language.
package examples

import (
	"bytes"
	_ "embed"

	"github.com/npillmayer/parsetab/grammar"
	"github.com/npillmayer/parsetab/lr"
)

// ExprGrammarSource is the textual description of the factored expression
// grammar.
//
//go:embed expr.grammar
var ExprGrammarSource string

// ExprTablesSource is the JSON description of the SLR(1) tables for
//
//	E ➞ E + T | T
//	T ➞ T * F | F
//	F ➞ ( E ) | id
//
//go:embed expr_slr.json
var ExprTablesSource []byte

// ExprGrammar returns the factored expression grammar.
func ExprGrammar() (*grammar.Grammar, error) {
	return grammar.Parse("expr.grammar", ExprGrammarSource)
}

// ExprTables returns the SLR(1) tables for the left-recursive expression
// grammar.
func ExprTables() (*lr.Tables, error) {
	return lr.ReadTables(bytes.NewReader(ExprTablesSource))
}
