package ll

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/npillmayer/parsetab"
	"github.com/npillmayer/parsetab/grammar"
	"github.com/npillmayer/parsetab/trace"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

// exprGrammar creates the factored expression grammar
//
//	E  ➞ T E'
//	E' ➞ + T E' | ε
//	T  ➞ F T'
//	T' ➞ * F T' | ε
//	F  ➞ ( E ) | id
func exprGrammar(t *testing.T) *grammar.Grammar {
	b := grammar.NewBuilder("Expr")
	b.LHS("E").N("T").N("E'").End()
	b.LHS("E'").T("+").N("T").N("E'").End()
	b.LHS("E'").Epsilon()
	b.LHS("T").N("F").N("T'").End()
	b.LHS("T'").T("*").N("F").N("T'").End()
	b.LHS("T'").Epsilon()
	b.LHS("F").T("(").N("E").T(")").End()
	b.LHS("F").T("id").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func leftRecursiveGrammar(t *testing.T) *grammar.Grammar {
	g, err := grammar.Parse("LeftRec", `
        E -> E + T | T ;
        T -> T * F | F ;
        F -> ( E ) | id ;
    `)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func exprParser(t *testing.T, opts ...Option) *Parser {
	p, err := NewParserForGrammar(exprGrammar(t), opts...)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestTableCells(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsetab.ll")
	defer teardown()
	//
	table := exprParser(t).Table()
	tests := []struct {
		A, a string
		rule string // empty for error cells
	}{
		{"E", "id", "E ➞ T E'"},
		{"E", "(", "E ➞ T E'"},
		{"E", "+", ""},
		{"E'", "+", "E' ➞ + T E'"},
		{"E'", ")", "E' ➞ ε"},
		{"E'", "$", "E' ➞ ε"},
		{"T'", "+", "T' ➞ ε"},
		{"T'", "*", "T' ➞ * F T'"},
		{"F", "id", "F ➞ id"},
		{"F", "+", ""},
	}
	g := table.Grammar()
	for _, tt := range tests {
		A, _ := g.SymbolByName(tt.A)
		a, _ := g.SymbolByName(tt.a)
		e, ok := table.Lookup(A, a)
		if tt.rule == "" {
			assert.False(t, ok, "expected M[%s, %s] to be empty", tt.A, tt.a)
			continue
		}
		if assert.True(t, ok, "expected M[%s, %s] to be set", tt.A, tt.a) {
			r, single := e.Rule()
			assert.True(t, single)
			assert.Equal(t, tt.rule, r.String())
		}
	}
	assert.False(t, table.HasConflicts())
	assert.NoError(t, table.Strict())
	var b strings.Builder
	assert.NoError(t, table.Dump(&b))
	assert.Contains(t, b.String(), "M[E, id] = E ➞ T E'\n")
	m := table.Matrix()
	assert.Equal(t, []string{"", "+", "*", "(", ")", "id", "$"}, m[0])
	assert.Equal(t, []string{"E", "", "", "T E'", "", "T E'", ""}, m[1])
}

func TestConflicts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsetab.ll")
	defer teardown()
	//
	g := leftRecursiveGrammar(t)
	ga := grammar.Analyse(g)
	table := BuildTable(g, ga.First(), ga.Follow())
	assert.True(t, table.HasConflicts())
	conflicts := table.Conflicts()
	if assert.Len(t, conflicts, 4) {
		c := conflicts[0]
		assert.Equal(t, "E", c.NonTerminal.Name)
		assert.Equal(t, "(", c.Lookahead.Name)
		if assert.Len(t, c.Rules, 2) {
			assert.Equal(t, "E ➞ E + T", c.Rules[0].String())
			assert.Equal(t, "E ➞ T", c.Rules[1].String())
		}
		assert.Equal(t, "id", conflicts[1].Lookahead.Name)
		assert.Equal(t, "T", conflicts[2].NonTerminal.Name)
	}
	err := table.Strict()
	assert.True(t, errors.Is(err, ErrNotLL1))
	var nerr *NotLL1Error
	if assert.True(t, errors.As(err, &nerr)) {
		assert.Equal(t, conflicts, nerr.Conflicts)
	}
	_, err = NewParserForGrammar(g)
	assert.True(t, errors.Is(err, ErrNotLL1))
	e, ok := table.Lookup(grammar.N("F"), grammar.T("id"))
	assert.True(t, ok)
	assert.False(t, e.IsConflict())
}

func TestParseOnConflictCell(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsetab.ll")
	defer teardown()
	//
	g := leftRecursiveGrammar(t)
	p := NewParser(BuildTable(g, nil, nil))
	_, tr, err := p.Parse(parsetab.Tokens("id"))
	var serr *SyntaxError
	if assert.True(t, errors.As(err, &serr)) {
		assert.NotNil(t, serr.Conflict)
		assert.Equal(t, 0, serr.Position)
	}
	assert.Equal(t, []trace.Kind{trace.Error}, tr.Actions())
}

func TestTableDeterminism(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsetab.ll")
	defer teardown()
	//
	for _, g := range []*grammar.Grammar{exprGrammar(t), leftRecursiveGrammar(t)} {
		t1 := BuildTable(g, nil, nil)
		t2 := BuildTable(g, nil, nil)
		f1, err := t1.Fingerprint()
		assert.NoError(t, err)
		f2, err := t2.Fingerprint()
		assert.NoError(t, err)
		assert.Equal(t, f1, f2)
		assert.Equal(t, t1.Conflicts(), t2.Conflicts())
	}
	f1, _ := BuildTable(exprGrammar(t), nil, nil).Fingerprint()
	f2, _ := BuildTable(leftRecursiveGrammar(t), nil, nil).Fingerprint()
	assert.NotEqual(t, f1, f2)
}

func TestParseAccept(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsetab.ll")
	defer teardown()
	//
	p := exprParser(t)
	tree, tr, err := p.Parse(parsetab.Tokens("id", "+", "id", "*", "id"))
	assert.NoError(t, err)
	assert.Equal(t, []string{"id", "+", "id", "*", "id"}, tree.Yield())
	assert.Equal(t, "E", tree.Symbol.Name)
	assert.True(t, tr.Accepted())
	first := tr.At(0)
	assert.Equal(t, []string{"$", "E"}, first.Stack)
	assert.Equal(t, []string{"id", "+", "id", "*", "id", "$"}, first.Input)
	assert.Equal(t, trace.Expand, first.Action)
	assert.Equal(t, "E ➞ T E'", first.Detail)
	assert.Equal(t, []string{"$", "E'", "T"}, tr.At(1).Stack)
	beforeLast := tr.At(tr.Len() - 2)
	assert.Equal(t, trace.Match, beforeLast.Action)
	assert.Equal(t, []string{"$"}, beforeLast.Stack)
	// tokens are attached to leafs
	leaf := tree.Children[0].Children[0].Children[0]
	assert.Equal(t, "id", leaf.Symbol.Name)
	if assert.NotNil(t, leaf.Token) {
		assert.Equal(t, parsetab.Span{0, 1}, leaf.Token.Span())
	}
}

func TestParseReject(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsetab.ll")
	defer teardown()
	//
	p := exprParser(t)
	tree, tr, err := p.Parse(parsetab.Tokens("id", "*", "+", "id"))
	assert.True(t, errors.Is(err, parsetab.ErrSyntax))
	var serr *SyntaxError
	if assert.True(t, errors.As(err, &serr)) {
		assert.Equal(t, 2, serr.Position)
		assert.Equal(t, "+", serr.Found.Terminal())
		assert.Equal(t, "F", serr.Top.Name)
		assert.Equal(t, []grammar.Symbol{grammar.T("("), grammar.T("id")}, serr.Expected)
		assert.Nil(t, serr.Conflict)
	}
	assert.NotNil(t, tree, "partial tree expected")
	assert.Equal(t, []string{"id", "*"}, tree.Yield())
	last, _ := tr.Last()
	assert.Equal(t, trace.Error, last.Action)
	assert.Equal(t, []string{"+", "id", "$"}, last.Input)
}

func TestParseMismatchedTerminal(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsetab.ll")
	defer teardown()
	//
	p := exprParser(t)
	_, _, err := p.Parse(parsetab.Tokens("(", "id", "id"))
	var serr *SyntaxError
	if assert.True(t, errors.As(err, &serr)) {
		assert.Equal(t, 2, serr.Position)
	}
	_, _, err = p.Parse(parsetab.Tokens("(", "id"))
	if assert.True(t, errors.As(err, &serr)) {
		assert.Equal(t, grammar.T(")"), serr.Top)
		assert.Equal(t, parsetab.EOFName, serr.Found.Terminal())
	}
	_, _, err = p.Parse(parsetab.Tokens("id", "x"))
	assert.True(t, errors.Is(err, parsetab.ErrSyntax))
}

func TestEpsilonOnlyStart(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsetab.ll")
	defer teardown()
	//
	b := grammar.NewBuilder("Empty")
	b.LHS("S").Epsilon()
	g, _ := b.Grammar()
	p, err := NewParserForGrammar(g)
	if !assert.NoError(t, err) {
		return
	}
	tree, tr, err := p.Parse(parsetab.Tokens())
	assert.NoError(t, err)
	if assert.Len(t, tree.Children, 1) {
		assert.True(t, tree.Children[0].Symbol.IsEpsilon())
	}
	assert.Equal(t, []trace.Kind{trace.Expand, trace.Match, trace.Accept}, tr.Actions())
}

func TestInputContract(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsetab.ll")
	defer teardown()
	//
	p := exprParser(t)
	inputs := [][]parsetab.Token{
		nil,
		{parsetab.MakeToken("id", "x", parsetab.Span{})},
		{parsetab.EOF(0), parsetab.MakeToken("id", "x", parsetab.Span{}), parsetab.EOF(1)},
	}
	for _, input := range inputs {
		tree, tr, err := p.Parse(input)
		assert.True(t, errors.Is(err, parsetab.ErrInput))
		assert.Nil(t, tree)
		assert.Equal(t, 0, tr.Len())
	}
}

func TestStepLimit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsetab.ll")
	defer teardown()
	//
	p := exprParser(t, StepLimit(3))
	_, tr, err := p.Parse(parsetab.Tokens("id", "+", "id"))
	assert.Error(t, err)
	assert.False(t, errors.Is(err, parsetab.ErrSyntax))
	var limit *parsetab.StepLimitError
	if assert.ErrorAs(t, err, &limit) {
		assert.Equal(t, 3, limit.Limit)
	}
	assert.Equal(t, 4, tr.Len())
	last, _ := tr.Last()
	assert.Equal(t, trace.Error, last.Action)
}

func TestIdempotence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsetab.ll")
	defer teardown()
	//
	p := exprParser(t)
	input := parsetab.Tokens("(", "id", "+", "id", ")", "*", "id")
	tree1, tr1, err1 := p.Parse(input)
	tree2, tr2, err2 := p.Parse(input)
	assert.NoError(t, err1)
	assert.NoError(t, err2)
	assert.True(t, tr1.Equal(tr2))
	assert.True(t, tree1.Equal(tree2))
}

func TestConcurrentParses(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsetab.ll")
	defer teardown()
	//
	p := exprParser(t)
	inputs := [][]string{
		{"id"},
		{"id", "+", "id"},
		{"(", "id", ")", "*", "id"},
		{"id", "*", "+"},
	}
	reference := make([]int, len(inputs))
	for i, in := range inputs {
		_, tr, _ := p.Parse(parsetab.Tokens(in...))
		reference[i] = tr.Len()
	}
	var wg sync.WaitGroup
	lengths := make([]int, 4*len(inputs))
	for n := range lengths {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, tr, _ := p.Parse(parsetab.Tokens(inputs[n%len(inputs)]...))
			lengths[n] = tr.Len()
		}(n)
	}
	wg.Wait()
	for n, l := range lengths {
		assert.Equal(t, reference[n%len(inputs)], l)
	}
}
