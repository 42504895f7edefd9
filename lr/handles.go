package lr

import (
	"fmt"

	"github.com/npillmayer/parsetab"
	"github.com/npillmayer/parsetab/grammar"
	"github.com/npillmayer/parsetab/parsetree"
	"github.com/npillmayer/parsetab/trace"
	"golang.org/x/exp/slices"
)

// HandleParser is a shift-reduce parser which does without a state automaton.
// After every shift it reduces as long as a suffix of the symbol stack matches
// the RHS of a production. If more than one production matches, the longest
// RHS wins; between RHSs of equal length, the first production wins.
//
// Decisions never consider the lookahead, therefore a HandleParser recognizes
// only a subset of what a Parser recognizes with proper tables. For example,
// with productions E ➞ E + T | T and T ➞ T * F | F, the input "id * id" is
// rejected, as T is reduced to E before * is seen.
type HandleParser struct {
	productions []Production
	start       grammar.Symbol
	options
}

// NewHandleParser creates a handle matching parser for a list of productions.
// Zero-length productions cannot be matched and are rejected. Cycles of unit
// productions (A ➞ B, B ➞ A) are rejected as well, as the parser would reduce
// them forever.
func NewHandleParser(productions []Production, start grammar.Symbol, opts ...Option) (*HandleParser, error) {
	if !start.IsNonTerminal() {
		return nil, &TableError{State: -1, Symbol: start.Name, Problem: "start symbol is not a non-terminal"}
	}
	for _, p := range productions {
		if p.Len() == 0 {
			return nil, &TableError{State: -1, Symbol: p.LHS.Name,
				Problem: fmt.Sprintf("zero-length production %v cannot be matched", p)}
		}
	}
	if cycle := unitCycle(productions); len(cycle) > 0 {
		return nil, &TableError{State: -1, Symbol: cycle[0].Name,
			Problem: fmt.Sprintf("cycle of unit productions %v", cycle)}
	}
	hp := &HandleParser{
		productions: slices.Clone(productions),
		start:       start,
	}
	for _, opt := range opts {
		opt(&hp.options)
	}
	return hp, nil
}

// unitCycle finds a cycle of unit productions. Reducing by X ➞ Y replaces Y by X
// on the stack, so there is an edge from Y to X. The cycle is returned as the
// list of non-terminals on it, or nil.
func unitCycle(productions []Production) []grammar.Symbol {
	edges := make(map[grammar.Symbol][]grammar.Symbol)
	for _, p := range productions {
		if p.Len() == 1 && p.RHS[0].IsNonTerminal() {
			edges[p.RHS[0]] = append(edges[p.RHS[0]], p.LHS)
		}
	}
	const (
		unvisited = iota
		onPath
		done
	)
	mark := make(map[grammar.Symbol]int)
	var path []grammar.Symbol
	var visit func(A grammar.Symbol) []grammar.Symbol
	visit = func(A grammar.Symbol) []grammar.Symbol {
		mark[A] = onPath
		path = append(path, A)
		for _, B := range edges[A] {
			switch mark[B] {
			case onPath:
				i := slices.Index(path, B)
				return append(slices.Clone(path[i:]), B)
			case unvisited:
				if cycle := visit(B); cycle != nil {
					return cycle
				}
			}
		}
		path = path[:len(path)-1]
		mark[A] = done
		return nil
	}
	for _, p := range productions { // declaration order keeps the result stable
		if p.Len() == 1 && mark[p.RHS[0]] == unvisited && p.RHS[0].IsNonTerminal() {
			if cycle := visit(p.RHS[0]); cycle != nil {
				return cycle
			}
		}
	}
	return nil
}

// NewHandleParserForTables creates a handle matching parser for the productions
// of a set of tables. If production 0 is an augmented start production S' ➞ S,
// it is left out and S is the start symbol.
func NewHandleParserForTables(tables *Tables, opts ...Option) (*HandleParser, error) {
	prods := tables.Productions()
	if len(prods) == 0 {
		return nil, &TableError{State: -1, Problem: "no productions"}
	}
	start := prods[0].LHS
	if isAugmented(prods) {
		start = prods[0].RHS[0]
		prods = prods[1:]
	}
	return NewHandleParser(prods, start, opts...)
}

// isAugmented checks if the first production is of the form S' ➞ S, with S' not
// appearing anywhere else.
func isAugmented(prods []Production) bool {
	first := prods[0]
	if first.Len() != 1 || !first.RHS[0].IsNonTerminal() {
		return false
	}
	for _, p := range prods[1:] {
		if p.LHS == first.LHS || slices.Contains(p.RHS, first.LHS) {
			return false
		}
	}
	return true
}

// Start returns the start symbol.
func (hp *HandleParser) Start() grammar.Symbol {
	return hp.start
}

// Parse parses a token sequence, which has to be terminated by an EOF token.
// It accepts if, at the end of input, the stack consists of just the start
// symbol.
func (hp *HandleParser) Parse(tokens []parsetab.Token) (*parsetree.Node, *trace.Trace, error) {
	rec := trace.NewRecorder()
	if err := parsetab.CheckInput(tokens); err != nil {
		return nil, rec.Trace(), err
	}
	input := lookaheads(tokens)
	var nodes []*parsetree.Node
	pos := 0
	record := func(action trace.Kind, detail string) {
		stack := make([]string, len(nodes))
		for i, n := range nodes {
			stack[i] = n.Symbol.Name
		}
		names := make([]string, len(input)-pos)
		for i, a := range input[pos:] {
			names[i] = a.Name
		}
		step := rec.Record(stack, names, action, detail)
		tracer().Debugf("%v", step)
	}
	for {
		if hp.stepLimit > 0 && rec.Len() >= hp.stepLimit {
			err := &parsetab.StepLimitError{Parser: "handle", Limit: hp.stepLimit}
			record(trace.Error, err.Error())
			return nil, rec.Trace(), err
		}
		if prod, ok := hp.handle(nodes); ok {
			record(trace.Reduce, prod.String())
			n := len(nodes) - prod.Len()
			head := parsetree.NewNode(prod.LHS).Append(nodes[n:]...)
			nodes = append(nodes[:n], head)
			continue
		}
		if la := input[pos]; !la.IsEOF() {
			record(trace.Shift, la.Name)
			nodes = append(nodes, parsetree.Leaf(la, tokens[pos]))
			pos++
			continue
		}
		if len(nodes) == 1 && nodes[0].Symbol == hp.start {
			record(trace.Accept, "")
			return nodes[0], rec.Trace(), nil
		}
		err := &SyntaxError{
			State:     -1,
			Position:  pos,
			Found:     tokens[pos],
			Fragments: slices.Clone(nodes),
		}
		record(trace.Error, err.Error())
		return nil, rec.Trace(), err
	}
}

// handle finds the production with the longest RHS matching a suffix of the
// stack.
func (hp *HandleParser) handle(nodes []*parsetree.Node) (Production, bool) {
	var best Production
	found := false
	for _, p := range hp.productions {
		n := p.Len()
		if n > len(nodes) || found && n <= best.Len() {
			continue
		}
		suffix := nodes[len(nodes)-n:]
		if slices.EqualFunc(suffix, p.RHS, func(node *parsetree.Node, X grammar.Symbol) bool {
			return node.Symbol == X
		}) {
			best, found = p, true
		}
	}
	return best, found
}
