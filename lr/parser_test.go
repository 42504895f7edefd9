package lr

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/npillmayer/parsetab"
	"github.com/npillmayer/parsetab/grammar"
	"github.com/npillmayer/parsetab/parsetree"
	"github.com/npillmayer/parsetab/trace"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func names(syms []grammar.Symbol) []string {
	s := make([]string, len(syms))
	for i, A := range syms {
		s[i] = A.Name
	}
	return s
}

func childSymbols(n *parsetree.Node) []string {
	s := make([]string, len(n.Children))
	for i, c := range n.Children {
		s[i] = c.Symbol.Name
	}
	return s
}

func TestParseAccept(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsetab.lr")
	defer teardown()
	//
	p := NewParser(exprTables(t))
	root, tr, err := p.Parse(parsetab.Tokens("id", "+", "id"))
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, "E", root.Symbol.Name)
	assert.Equal(t, []string{"E", "+", "T"}, childSymbols(root))
	inner := root.Children[0]
	assert.Equal(t, []string{"T"}, childSymbols(inner))
	assert.Equal(t, []string{"F"}, childSymbols(inner.Children[0]))
	assert.Equal(t, []string{"id"}, childSymbols(inner.Children[0].Children[0]))
	assert.Equal(t, []string{"id", "+", "id"}, root.Yield())
	assert.Equal(t, []trace.Kind{
		trace.Shift, trace.Reduce, trace.Reduce, trace.Reduce,
		trace.Shift, trace.Shift, trace.Reduce, trace.Reduce, trace.Reduce,
		trace.Accept,
	}, tr.Actions())
	assert.Equal(t, []string{"0"}, tr.At(0).Stack)
	assert.Equal(t, "id, goto 5", tr.At(0).Detail)
	assert.Equal(t, "F ➞ id", tr.At(1).Detail)
	assert.Equal(t, "0 E 1 + 6", strings.Join(tr.At(5).Stack, " "))
	assert.Equal(t, []string{"id", "$"}, tr.At(5).Input)
	assert.Equal(t, "E ➞ E + T", tr.At(8).Detail)
	last, _ := tr.Last()
	assert.Equal(t, "0 E 1", strings.Join(last.Stack, " "))
	assert.Equal(t, []string{"$"}, last.Input)
}

func TestParseReject(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsetab.lr")
	defer teardown()
	//
	p := NewParser(exprTables(t))
	root, tr, err := p.Parse(parsetab.Tokens("id", "*", "+", "id"))
	assert.Nil(t, root)
	assert.True(t, errors.Is(err, parsetab.ErrSyntax))
	var serr *SyntaxError
	if assert.True(t, errors.As(err, &serr)) {
		assert.Equal(t, 7, serr.State)
		assert.Equal(t, 2, serr.Position)
		assert.Equal(t, "+", serr.Found.Terminal())
		assert.Equal(t, []string{"(", "id"}, names(serr.Expected))
		if assert.Len(t, serr.Fragments, 2) {
			assert.Equal(t, "T", serr.Fragments[0].Symbol.Name)
			assert.Equal(t, "*", serr.Fragments[1].Symbol.Name)
		}
		assert.Contains(t, serr.Error(), "no action in state 7")
	}
	assert.Equal(t, []trace.Kind{
		trace.Shift, trace.Reduce, trace.Reduce, trace.Shift, trace.Error,
	}, tr.Actions())
	last, _ := tr.Last()
	assert.Equal(t, "0 T 2 * 7", strings.Join(last.Stack, " "))
}

func TestZeroLengthReduction(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsetab.lr")
	defer teardown()
	//
	b := NewBuilder()
	b.Production("S'", "S")
	b.Production("S", "A", "b")
	b.Production("A")
	b.Reduce(0, "b", 2).Goto(0, "S", 1).Goto(0, "A", 2)
	b.Accept(1)
	b.Shift(2, "b", 3)
	b.Reduce(3, "$", 1)
	tables, err := b.Tables()
	if !assert.NoError(t, err) {
		return
	}
	root, tr, err := NewParser(tables).Parse(parsetab.Tokens("b"))
	if assert.NoError(t, err) {
		assert.Equal(t, []string{"A", "b"}, childSymbols(root))
		assert.Empty(t, root.Children[0].Children)
		assert.False(t, root.Children[0].IsLeaf())
	}
	assert.Equal(t, []trace.Kind{trace.Reduce, trace.Shift, trace.Reduce, trace.Accept}, tr.Actions())
	assert.Equal(t, "A ➞ ε", tr.At(0).Detail)
}

func TestEpsilonOnlyStart(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsetab.lr")
	defer teardown()
	//
	b := NewBuilder()
	b.Production("S'", "S")
	b.Production("S", "ε")
	b.Reduce(0, "$", 1).Goto(0, "S", 1).Accept(1)
	tables, err := b.Tables()
	if !assert.NoError(t, err) {
		return
	}
	root, tr, err := NewParser(tables).Parse(parsetab.Tokens())
	assert.NoError(t, err)
	assert.Equal(t, "S", root.Symbol.Name)
	assert.Empty(t, root.Children)
	assert.Equal(t, []trace.Kind{trace.Reduce, trace.Accept}, tr.Actions())
}

func TestParseTimeTableErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsetab.lr")
	defer teardown()
	//
	tests := []struct {
		caption string
		build   func(b *Builder)
		input   []string
		problem string
	}{
		{
			caption: "missing GOTO",
			build: func(b *Builder) {
				b.Production("S", "a")
				b.Shift(0, "a", 1).Reduce(1, "$", 0)
			},
			input:   []string{"a"},
			problem: "missing GOTO",
		},
		{
			caption: "accept with two sub-trees",
			build: func(b *Builder) {
				b.Production("S", "a", "b")
				b.Shift(0, "a", 1).Shift(1, "b", 2).Accept(2)
			},
			input:   []string{"a", "b"},
			problem: "2 sub-trees",
		},
		{
			caption: "handle mismatch",
			build: func(b *Builder) {
				b.Production("S", "b")
				b.Production("T", "a")
				b.Shift(0, "a", 1).Reduce(1, "$", 0)
			},
			input:   []string{"a"},
			problem: "found a on the stack",
		},
		{
			caption: "accept before end of input",
			build: func(b *Builder) {
				b.Production("S", "a")
				b.Action(0, "a", Accept())
			},
			input:   []string{"a"},
			problem: "before end of input",
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			b := NewBuilder()
			tt.build(b)
			tables, err := b.Tables()
			if !assert.NoError(t, err) {
				return
			}
			_, tr, err := NewParser(tables).Parse(parsetab.Tokens(tt.input...))
			assert.True(t, errors.Is(err, ErrMalformedTable), "expected ErrMalformedTable, got %v", err)
			assert.Contains(t, err.Error(), tt.problem)
			last, _ := tr.Last()
			assert.Equal(t, trace.Error, last.Action)
			assert.Equal(t, err.Error(), last.Detail)
		})
	}
}

func TestStepLimit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsetab.lr")
	defer teardown()
	//
	b := NewBuilder() // A ➞ ε reduced forever
	b.Production("A")
	b.Reduce(0, "$", 0).Goto(0, "A", 0)
	tables, err := b.Tables()
	if !assert.NoError(t, err) {
		return
	}
	_, tr, err := NewParser(tables, StepLimit(10)).Parse(parsetab.Tokens())
	var limit *parsetab.StepLimitError
	if assert.ErrorAs(t, err, &limit) {
		assert.Equal(t, "lr", limit.Parser)
		assert.Equal(t, 10, limit.Limit)
	}
	assert.Equal(t, 11, tr.Len())
	last, _ := tr.Last()
	assert.Equal(t, trace.Error, last.Action)
}

func TestMissingGotoLeavesStacks(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsetab.lr")
	defer teardown()
	//
	b := NewBuilder()
	b.Production("S", "a")
	b.Shift(0, "a", 1).Reduce(1, "$", 0)
	tables, err := b.Tables()
	if !assert.NoError(t, err) {
		return
	}
	_, tr, err := NewParser(tables).Parse(parsetab.Tokens("a"))
	assert.True(t, errors.Is(err, ErrMalformedTable))
	assert.Equal(t, []trace.Kind{trace.Shift, trace.Error}, tr.Actions())
	assert.Equal(t, "0 a 1", strings.Join(tr.At(1).Stack, " "))
}

func TestInputContract(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsetab.lr")
	defer teardown()
	//
	p := NewParser(exprTables(t))
	_, tr, err := p.Parse([]parsetab.Token{parsetab.MakeToken("id", "x", parsetab.Span{})})
	assert.True(t, errors.Is(err, parsetab.ErrInput))
	assert.Equal(t, 0, tr.Len())
}

func TestIdempotenceAndConcurrency(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsetab.lr")
	defer teardown()
	//
	p := NewParser(exprTables(t))
	input := parsetab.Tokens("(", "id", "+", "id", ")", "*", "id")
	root, reference, err := p.Parse(input)
	assert.NoError(t, err)
	var wg sync.WaitGroup
	results := make([]bool, 16)
	for n := range results {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			r, tr, err := p.Parse(input)
			results[n] = err == nil && tr.Equal(reference) && r.Equal(root)
		}(n)
	}
	wg.Wait()
	for n, ok := range results {
		assert.True(t, ok, "parse #%d differs", n)
	}
}
