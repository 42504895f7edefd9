package lr

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/parsetab"
	"github.com/npillmayer/parsetab/grammar"
	"github.com/npillmayer/parsetab/parsetree"
	"github.com/npillmayer/parsetab/trace"
	"golang.org/x/exp/slices"
)

// SyntaxError is returned if there is no action for the current state and
// lookahead. It wraps parsetab.ErrSyntax.
type SyntaxError struct {
	State     int               // state on top of the stack
	Position  int               // index of the offending token
	Found     parsetab.Token    // the offending token
	Expected  []grammar.Symbol  // terminals with an action in State
	Fragments []*parsetree.Node // sub-trees on the stack, bottom first
}

func (e *SyntaxError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "syntax error at token #%d %q: ", e.Position, e.Found.Terminal())
	if e.State < 0 {
		b.WriteString("no handle to reduce")
	} else {
		fmt.Fprintf(&b, "no action in state %d", e.State)
	}
	if len(e.Expected) > 0 {
		names := make([]string, len(e.Expected))
		for i, a := range e.Expected {
			names[i] = a.Name
		}
		fmt.Fprintf(&b, ", expected one of %s", strings.Join(names, " "))
	}
	return b.String()
}

// Unwrap returns parsetab.ErrSyntax.
func (e *SyntaxError) Unwrap() error {
	return parsetab.ErrSyntax
}

// Parser is a shift-reduce parser driven by ACTION and GOTO tables.
type Parser struct {
	tables *Tables
	options
}

type options struct {
	stepLimit int
}

// Option configures a parser.
type Option func(*options)

// StepLimit makes a parser give up after n steps. 0 means no limit. Tables
// with cycles of zero-length reductions would otherwise let the parser run
// forever.
func StepLimit(n int) Option {
	return func(o *options) {
		o.stepLimit = n
	}
}

// NewParser creates a parser for a set of tables.
func NewParser(tables *Tables, opts ...Option) *Parser {
	p := &Parser{tables: tables}
	for _, opt := range opts {
		opt(&p.options)
	}
	return p
}

// Tables returns the parse tables of p.
func (p *Parser) Tables() *Tables {
	return p.tables
}

// run holds the state of a single call to Parse.
type run struct {
	p      *Parser
	tokens []parsetab.Token
	input  []grammar.Symbol
	pos    int
	states []int             // state stack
	nodes  []*parsetree.Node // tree stack, len(nodes) == len(states)-1
	rec    *trace.Recorder
}

// Parse parses a token sequence, which has to be terminated by an EOF token.
// It returns the parse tree and the trace of steps. On a syntax error, the trace
// up to the failing step is returned together with a *SyntaxError, which holds
// the sub-trees built so far.
func (p *Parser) Parse(tokens []parsetab.Token) (*parsetree.Node, *trace.Trace, error) {
	rec := trace.NewRecorder()
	if err := parsetab.CheckInput(tokens); err != nil {
		return nil, rec.Trace(), err
	}
	r := &run{
		p:      p,
		tokens: tokens,
		input:  lookaheads(tokens),
		states: []int{p.tables.initial},
		rec:    rec,
	}
	root, err := r.loop()
	return root, rec.Trace(), err
}

func (r *run) loop() (*parsetree.Node, error) {
	tables := r.p.tables
	for {
		if r.p.stepLimit > 0 && r.rec.Len() >= r.p.stepLimit {
			err := &parsetab.StepLimitError{Parser: "lr", Limit: r.p.stepLimit}
			r.record(trace.Error, err.Error())
			return nil, err
		}
		state := r.states[len(r.states)-1]
		la := r.input[r.pos]
		action := tables.Action(state, la)
		switch action.Kind {
		case ShiftAction:
			if la.IsEOF() {
				return nil, r.tableError(state, la.Name, "cannot shift end of input")
			}
			r.record(trace.Shift, fmt.Sprintf("%s, goto %d", la, action.Target))
			r.nodes = append(r.nodes, parsetree.Leaf(la, r.tokens[r.pos]))
			r.states = append(r.states, action.Target)
			r.pos++
		case ReduceAction:
			if err := r.reduce(state, la, action.Target); err != nil {
				return nil, err
			}
		case AcceptAction:
			if !la.IsEOF() {
				return nil, r.tableError(state, la.Name, "accept before end of input")
			}
			if len(r.nodes) != 1 {
				return nil, r.tableError(state, la.Name,
					fmt.Sprintf("accept with %d sub-trees on the stack", len(r.nodes)))
			}
			r.record(trace.Accept, "")
			tracer().Debugf("accept after %d tokens", r.pos)
			return r.nodes[0], nil
		default:
			err := &SyntaxError{
				State:     state,
				Position:  r.pos,
				Found:     r.tokens[r.pos],
				Expected:  tables.Expected(state),
				Fragments: slices.Clone(r.nodes),
			}
			r.record(trace.Error, err.Error())
			tracer().Errorf("%v", err)
			return nil, err
		}
	}
}

// reduce performs a reduce action for a production
//
//	A ➞ X1 … Xn   (with X being terminals or non-terminals)
//
// Symbols X1 to Xn are represented on the stacks as states and sub-trees.
// They are popped and replaced by a node for A, whose state is taken from the
// GOTO table.
func (r *run) reduce(state int, la grammar.Symbol, id int) error {
	prod, ok := r.p.tables.Production(id)
	if !ok {
		return r.tableError(state, la.Name, fmt.Sprintf("reduce by unknown production %d", id))
	}
	n := prod.Len()
	if n > len(r.nodes) {
		return r.tableError(state, la.Name, fmt.Sprintf("cannot reduce %v, stack too short", prod))
	}
	handle := r.nodes[len(r.nodes)-n:]
	for i, X := range prod.RHS {
		if handle[i].Symbol != X {
			return r.tableError(state, la.Name,
				fmt.Sprintf("cannot reduce %v, found %v on the stack", prod, handle[i].Symbol))
		}
	}
	top := r.states[len(r.states)-1-n]
	next, ok := r.p.tables.Goto(top, prod.LHS)
	if !ok {
		return r.tableError(top, prod.LHS.Name, fmt.Sprintf("missing GOTO entry after reducing %v", prod))
	}
	r.record(trace.Reduce, prod.String())
	head := parsetree.NewNode(prod.LHS).Append(handle...)
	r.nodes = append(r.nodes[:len(r.nodes)-n], head)
	r.states = append(r.states[:len(r.states)-n], next)
	return nil
}

// tableError reports a defect of the tables found during a parse. The stacks
// are left untouched, so the Error step shows the configuration in which the
// defect surfaced.
func (r *run) tableError(state int, symbol string, problem string) error {
	err := &TableError{State: state, Symbol: symbol, Problem: problem}
	r.record(trace.Error, err.Error())
	tracer().Errorf("%v", err)
	return err
}

// record writes a step to the trace. The stack snapshot interleaves states and
// symbols, starting with the initial state.
func (r *run) record(action trace.Kind, detail string) {
	stack := make([]string, 0, len(r.states)+len(r.nodes))
	stack = append(stack, strconv.Itoa(r.states[0]))
	for i, node := range r.nodes {
		stack = append(stack, node.Symbol.Name, strconv.Itoa(r.states[i+1]))
	}
	input := make([]string, len(r.input)-r.pos)
	for i, a := range r.input[r.pos:] {
		input[i] = a.Name
	}
	step := r.rec.Record(stack, input, action, detail)
	tracer().Debugf("%v", step)
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
