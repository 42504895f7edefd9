package examples

import (
	"testing"

	"github.com/npillmayer/parsetab"
	"github.com/npillmayer/parsetab/ll"
	"github.com/npillmayer/parsetab/lr"
	"github.com/npillmayer/parsetab/scanner"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestExamplesLoad(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsetab.grammar")
	defer teardown()
	//
	g, err := ExprGrammar()
	if assert.NoError(t, err) {
		assert.Equal(t, 8, g.RuleCount())
		assert.Equal(t, "E", g.Start().Name)
	}
	tables, err := ExprTables()
	if assert.NoError(t, err) {
		assert.Equal(t, 12, tables.States())
		assert.Len(t, tables.Productions(), 7)
	}
}

// Parsing the same sentence top-down with the factored grammar and bottom-up
// with the left-recursive tables results in trees with the same yield.
func TestTopDownAndBottomUpAgree(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsetab.lr")
	defer teardown()
	//
	g, err := ExprGrammar()
	if err != nil {
		t.Fatal(err)
	}
	tables, err := ExprTables()
	if err != nil {
		t.Fatal(err)
	}
	llp, err := ll.NewParserForGrammar(g)
	if err != nil {
		t.Fatal(err)
	}
	lrp := lr.NewParser(tables)
	lx, err := scanner.ForSymbols(g.Terminals(), scanner.Class("id", scanner.Identifier))
	if err != nil {
		t.Fatal(err)
	}
	inputs := []string{
		"a",
		"a + b",
		"a + b * c",
		"(a + b) * c",
		"a * (b + c * (d)) + e",
	}
	for _, input := range inputs {
		tokens, err := lx.Tokens(input)
		if !assert.NoError(t, err) {
			continue
		}
		lltree, lltrace, err := llp.Parse(tokens)
		assert.NoError(t, err, input)
		lrtree, lrtrace, err := lrp.Parse(tokens)
		assert.NoError(t, err, input)
		assert.True(t, lltrace.Accepted())
		assert.True(t, lrtrace.Accepted())
		assert.Equal(t, lltree.StripEpsilon().Yield(), lrtree.StripEpsilon().Yield(), input)
		assert.Equal(t, parsetab.TerminalNames(tokens[:len(tokens)-1]), lrtree.Yield())
	}
}

func TestBothRejectAtSamePosition(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsetab.lr")
	defer teardown()
	//
	g, _ := ExprGrammar()
	tables, _ := ExprTables()
	llp, err := ll.NewParserForGrammar(g)
	if err != nil {
		t.Fatal(err)
	}
	tokens := parsetab.Tokens("id", "*", "+", "id")
	_, _, err = llp.Parse(tokens)
	var llerr *ll.SyntaxError
	if assert.ErrorAs(t, err, &llerr) {
		assert.Equal(t, 2, llerr.Position)
	}
	_, _, err = lr.NewParser(tables).Parse(tokens)
	var lrerr *lr.SyntaxError
	if assert.ErrorAs(t, err, &lrerr) {
		assert.Equal(t, 2, lrerr.Position)
		assert.Equal(t, 7, lrerr.State)
	}
}
