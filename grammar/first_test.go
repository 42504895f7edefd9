package grammar

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestFirstSets(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsetab.grammar")
	defer teardown()
	//
	g := exprGrammar(t)
	first := ComputeFirst(g)
	tests := []struct {
		caption  string
		symbol   string
		first    []string
		nullable bool
	}{
		{caption: "E", symbol: "E", first: []string{"(", "id"}},
		{caption: "E'", symbol: "E'", first: []string{"+"}, nullable: true},
		{caption: "T", symbol: "T", first: []string{"(", "id"}},
		{caption: "T'", symbol: "T'", first: []string{"*"}, nullable: true},
		{caption: "F", symbol: "F", first: []string{"(", "id"}},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			assert.Equal(t, tt.first, names(first.Of(N(tt.symbol))))
			assert.Equal(t, tt.nullable, first.CanDeriveEmpty(N(tt.symbol)))
		})
	}
}

func TestFirstOfTerminals(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsetab.grammar")
	defer teardown()
	//
	g := exprGrammar(t)
	first := ComputeFirst(g)
	for _, a := range g.Terminals() {
		assert.Equal(t, []Symbol{a}, first.Of(a))
		assert.False(t, first.CanDeriveEmpty(a))
	}
	assert.Equal(t, []Symbol{EOF}, first.Of(EOF))
	assert.Empty(t, first.Of(Epsilon))
	assert.True(t, first.CanDeriveEmpty(Epsilon))
}

func TestFirstContainsOnlyTerminals(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsetab.grammar")
	defer teardown()
	//
	for _, g := range []*Grammar{exprGrammar(t), leftRecursiveGrammar(t), nullableChainGrammar(t)} {
		first := ComputeFirst(g)
		for _, A := range g.NonTerminals() {
			for _, a := range first.Of(A) {
				assert.True(t, a.IsTerminal(), "FIRST(%s) of %s contains %#v", A, g.Name, a)
			}
		}
	}
}

func TestFirstOfSequence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsetab.grammar")
	defer teardown()
	//
	g := nullableChainGrammar(t)
	first := ComputeFirst(g)
	tests := []struct {
		caption  string
		seq      []Symbol
		first    []string
		nullable bool
	}{
		{caption: "empty sequence", seq: nil, first: []string{}, nullable: true},
		{caption: "epsilon", seq: []Symbol{Epsilon}, first: []string{}, nullable: true},
		{caption: "nullable prefix", seq: []Symbol{N("A"), N("B"), T("c")}, first: []string{"c", "a", "b"}},
		{caption: "all nullable", seq: []Symbol{N("A"), N("B")}, first: []string{"a", "b"}, nullable: true},
		{caption: "terminal first", seq: []Symbol{T("c"), N("A")}, first: []string{"c"}},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			f, nullable := first.OfSequence(tt.seq)
			assert.Equal(t, tt.first, names(f))
			assert.Equal(t, tt.nullable, nullable)
		})
	}
}

func TestFirstNullableChain(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsetab.grammar")
	defer teardown()
	//
	g := nullableChainGrammar(t)
	first := ComputeFirst(g)
	assert.True(t, first.CanDeriveEmpty(N("A")))
	assert.True(t, first.CanDeriveEmpty(N("B")))
	assert.False(t, first.CanDeriveEmpty(N("S")))
	// terminals are ordered by first appearance, c being mentioned in the first rule
	assert.Equal(t, []string{"c", "a", "b"}, names(first.Of(N("S"))))
}

// nullableChainGrammar creates
//
//	S ➞ A B c
//	A ➞ a | ε
//	B ➞ b | ε
func nullableChainGrammar(t *testing.T) *Grammar {
	b := NewBuilder("Chain")
	b.LHS("S").N("A").N("B").T("c").End()
	b.LHS("A").T("a").End()
	b.LHS("A").Epsilon()
	b.LHS("B").T("b").End()
	b.LHS("B").Epsilon()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	return g
}

// leftRecursiveGrammar creates
//
//	E ➞ E + T | T
//	T ➞ T * F | F
//	F ➞ ( E ) | id
func leftRecursiveGrammar(t *testing.T) *Grammar {
	b := NewBuilder("LeftRec")
	b.LHS("E").N("E").T("+").N("T").End()
	b.LHS("E").N("T").End()
	b.LHS("T").N("T").T("*").N("F").End()
	b.LHS("T").N("F").End()
	b.LHS("F").T("(").N("E").T(")").End()
	b.LHS("F").T("id").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	return g
}
