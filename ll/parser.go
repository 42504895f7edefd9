package ll

import (
	"fmt"
	"strings"

	"github.com/npillmayer/parsetab"
	"github.com/npillmayer/parsetab/grammar"
	"github.com/npillmayer/parsetab/parsetree"
	"github.com/npillmayer/parsetab/trace"
)

// SyntaxError is returned if the input does not conform to the grammar. It
// wraps parsetab.ErrSyntax.
type SyntaxError struct {
	Position int              // index of the offending token
	Found    parsetab.Token   // the offending token
	Top      grammar.Symbol   // symbol on top of the stack
	Expected []grammar.Symbol // lookaheads which would have been accepted
	Conflict *Conflict        // set if the table cell for Top was ambiguous
}

func (e *SyntaxError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "syntax error at token #%d %q: ", e.Position, e.Found.Terminal())
	if e.Conflict != nil {
		fmt.Fprintf(&b, "no unique rule for %s, table cell is ambiguous %v", e.Top, e.Conflict)
		return b.String()
	}
	names := make([]string, len(e.Expected))
	for i, a := range e.Expected {
		names[i] = a.Name
	}
	if e.Top.IsNonTerminal() {
		fmt.Fprintf(&b, "no rule for %s, ", e.Top)
	}
	switch len(names) {
	case 0:
		b.WriteString("nothing expected")
	case 1:
		fmt.Fprintf(&b, "expected %s", names[0])
	default:
		fmt.Fprintf(&b, "expected one of %s", strings.Join(names, " "))
	}
	return b.String()
}

// Unwrap returns parsetab.ErrSyntax.
func (e *SyntaxError) Unwrap() error {
	return parsetab.ErrSyntax
}

// Parser is a table-driven LL(1) parser.
type Parser struct {
	table     *Table
	stepLimit int
}

// Option configures a parser.
type Option func(*Parser)

// StepLimit makes the parser give up after n steps. 0 means no limit.
func StepLimit(n int) Option {
	return func(p *Parser) {
		p.stepLimit = n
	}
}

// NewParser creates a parser for a table. Tables with conflicts are accepted;
// if the parser hits a conflict cell, it reports a syntax error.
func NewParser(table *Table, opts ...Option) *Parser {
	p := &Parser{table: table}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewParserForGrammar analyses g, builds its table and creates a parser for it.
// If g is not LL(1), a *NotLL1Error is returned.
func NewParserForGrammar(g *grammar.Grammar, opts ...Option) (*Parser, error) {
	ga := grammar.Analyse(g)
	table := BuildTable(g, ga.First(), ga.Follow())
	if err := table.Strict(); err != nil {
		return nil, err
	}
	return NewParser(table, opts...), nil
}

// Table returns the parsing table of p.
func (p *Parser) Table() *Table {
	return p.table
}

// frame is an entry of the parse stack: a grammar symbol together with the tree
// node it will produce.
type frame struct {
	sym  grammar.Symbol
	node *parsetree.Node
}

// run holds the state of a single call to Parse.
type run struct {
	p      *Parser
	tokens []parsetab.Token
	input  []grammar.Symbol
	pos    int
	stack  []frame
	rec    *trace.Recorder
}

// Parse parses a token sequence, which has to be terminated by an EOF token.
// It returns the parse tree and the trace of steps. On a syntax error, the
// partial tree and the trace up to the failing step are returned together with
// a *SyntaxError.
func (p *Parser) Parse(tokens []parsetab.Token) (*parsetree.Node, *trace.Trace, error) {
	rec := trace.NewRecorder()
	if err := parsetab.CheckInput(tokens); err != nil {
		return nil, rec.Trace(), err
	}
	g := p.table.g
	root := parsetree.NewNode(g.Start())
	r := &run{
		p:      p,
		tokens: tokens,
		input:  lookaheads(tokens),
		rec:    rec,
		stack: []frame{
			{sym: grammar.EOF, node: parsetree.NewNode(grammar.EOF)},
			{sym: g.Start(), node: root},
		},
	}
	err := r.loop()
	return root, rec.Trace(), err
}

func (r *run) loop() error {
	table := r.p.table
	for len(r.stack) > 0 {
		if r.p.stepLimit > 0 && r.rec.Len() >= r.p.stepLimit {
			err := &parsetab.StepLimitError{Parser: "ll", Limit: r.p.stepLimit}
			r.record(trace.Error, err.Error())
			return err
		}
		top := r.stack[len(r.stack)-1]
		la := r.input[r.pos]
		switch {
		case top.sym.IsEpsilon():
			r.pop()
		case top.sym.IsLookahead():
			if top.sym != la {
				return r.fail(top.sym, []grammar.Symbol{top.sym}, nil)
			}
			r.record(trace.Match, la.Name)
			top.node.Token = r.tokens[r.pos]
			r.pop()
			r.pos++
		default:
			e, ok := table.Lookup(top.sym, la)
			if !ok {
				return r.fail(top.sym, table.Expected(top.sym), nil)
			}
			rule, ok := e.Rule()
			if !ok {
				c := Conflict{NonTerminal: top.sym, Lookahead: la, Rules: e.Rules()}
				return r.fail(top.sym, table.Expected(top.sym), &c)
			}
			r.record(trace.Expand, rule.String())
			r.expand(top, rule)
		}
	}
	r.record(trace.Accept, "")
	tracer().Debugf("accept after %d tokens", r.pos)
	return nil
}

// expand replaces the top of the stack by the RHS of a rule, pushed in reverse
// order, and attaches one child node per RHS symbol to the node on top.
func (r *run) expand(top frame, rule *grammar.Rule) {
	r.pop()
	rhs := rule.RHS()
	children := make([]*parsetree.Node, len(rhs))
	for i, X := range rhs {
		children[i] = parsetree.NewNode(X)
	}
	top.node.Append(children...)
	for i := len(rhs) - 1; i >= 0; i-- {
		r.stack = append(r.stack, frame{sym: rhs[i], node: children[i]})
	}
}

func (r *run) pop() {
	r.stack = r.stack[:len(r.stack)-1]
}

func (r *run) record(action trace.Kind, detail string) {
	stack := make([]string, len(r.stack))
	for i, f := range r.stack {
		stack[i] = f.sym.Name
	}
	input := make([]string, len(r.input)-r.pos)
	for i, a := range r.input[r.pos:] {
		input[i] = a.Name
	}
	step := r.rec.Record(stack, input, action, detail)
	tracer().Debugf("%v", step)
}

func (r *run) fail(top grammar.Symbol, expected []grammar.Symbol, c *Conflict) error {
	err := &SyntaxError{
		Position: r.pos,
		Found:    r.tokens[r.pos],
		Top:      top,
		Expected: expected,
		Conflict: c,
	}
	r.record(trace.Error, err.Error())
	tracer().Errorf("%v", err)
	return err
}

// lookaheads maps tokens to terminal symbols.
func lookaheads(tokens []parsetab.Token) []grammar.Symbol {
	syms := make([]grammar.Symbol, len(tokens))
	for i, tok := range tokens {
		if tok.Terminal() == parsetab.EOFName {
			syms[i] = grammar.EOF
		} else {
			syms[i] = grammar.T(tok.Terminal())
		}
	}
	return syms
}
