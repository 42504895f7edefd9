package lr

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cnf/structhash"
	"github.com/npillmayer/parsetab/grammar"
	"github.com/npillmayer/parsetab/lr/sparse"
)

// ErrMalformedTable is wrapped by *TableError.
var ErrMalformedTable = errors.New("malformed parse table")

// TableError reports a defect of a parse table, found either while building
// the table or while using it during a parse.
type TableError struct {
	State   int
	Symbol  string
	Problem string
}

func (e *TableError) Error() string {
	if e.Symbol == "" {
		return fmt.Sprintf("parse table, state %d: %s", e.State, e.Problem)
	}
	return fmt.Sprintf("parse table, state %d on %s: %s", e.State, e.Symbol, e.Problem)
}

// Unwrap returns ErrMalformedTable.
func (e *TableError) Unwrap() error {
	return ErrMalformedTable
}

// --- Actions ---------------------------------------------------------------

// ActionKind is the kind of an ACTION table entry.
type ActionKind int8

// Kinds of parser actions.
const (
	NoAction ActionKind = iota
	ShiftAction
	ReduceAction
	AcceptAction
)

// Action is an entry of an ACTION table. For shift actions, Target is the
// state to push; for reduce actions it is the production id.
type Action struct {
	Kind   ActionKind
	Target int
}

// Shift creates a shift action.
func Shift(state int) Action {
	return Action{Kind: ShiftAction, Target: state}
}

// Reduce creates a reduce action.
func Reduce(production int) Action {
	return Action{Kind: ReduceAction, Target: production}
}

// Accept creates an accept action.
func Accept() Action {
	return Action{Kind: AcceptAction}
}

// ParseAction reads the usual short notation of actions: "s5" for shift to
// state 5, "r2" for reduce by production 2, and "acc" for accept.
func ParseAction(s string) (Action, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "acc" || s == "accept":
		return Accept(), nil
	case len(s) > 1 && (s[0] == 's' || s[0] == 'r'):
		n, err := strconv.Atoi(s[1:])
		if err != nil || n < 0 {
			break
		}
		if s[0] == 's' {
			return Shift(n), nil
		}
		return Reduce(n), nil
	}
	return Action{}, fmt.Errorf("%w: cannot read action %q", ErrMalformedTable, s)
}

func (a Action) String() string {
	switch a.Kind {
	case ShiftAction:
		return fmt.Sprintf("s%d", a.Target)
	case ReduceAction:
		return fmt.Sprintf("r%d", a.Target)
	case AcceptAction:
		return "acc"
	}
	return ""
}

// Actions are stored in a sparse matrix of int32, with the kind in the upper
// byte.
const targetMask = 1<<24 - 1

func (a Action) encode() int32 {
	return int32(a.Kind)<<24 | int32(a.Target&targetMask)
}

func decodeAction(v int32) Action {
	if v == sparse.DefaultNullValue {
		return Action{}
	}
	return Action{Kind: ActionKind(v >> 24), Target: int(v & targetMask)}
}

// --- Productions -----------------------------------------------------------

// Production is a rule of the grammar underlying a parse table. Productions are
// identified by their position within the table's production list.
type Production struct {
	ID  int
	LHS grammar.Symbol
	RHS []grammar.Symbol // empty for zero-length productions
}

// Len returns the number of symbols of the RHS.
func (p Production) Len() int {
	return len(p.RHS)
}

func (p Production) String() string {
	if len(p.RHS) == 0 {
		return fmt.Sprintf("%s ➞ %s", p.LHS, grammar.Epsilon)
	}
	body := make([]string, len(p.RHS))
	for i, A := range p.RHS {
		body[i] = A.Name
	}
	return fmt.Sprintf("%s ➞ %s", p.LHS, strings.Join(body, " "))
}

// --- Tables ----------------------------------------------------------------

// Tables holds the ACTION and GOTO tables for an LR parser, together with the
// productions referenced by reduce actions. Tables are immutable and safe for
// concurrent use.
type Tables struct {
	initial      int
	states       int
	productions  []Production
	terminals    []grammar.Symbol // columns of ACTION, EOF last
	nonterminals []grammar.Symbol // columns of GOTO
	tcol         map[grammar.Symbol]int
	ntcol        map[grammar.Symbol]int
	action       *sparse.IntMatrix
	gotoT        *sparse.IntMatrix
}

// Initial returns the initial state.
func (t *Tables) Initial() int {
	return t.initial
}

// States returns the number of states, i.e. one more than the highest state
// mentioned in the tables.
func (t *Tables) States() int {
	return t.states
}

// Productions returns the production list.
func (t *Tables) Productions() []Production {
	return append([]Production(nil), t.productions...)
}

// Production returns the production with a given id.
func (t *Tables) Production(id int) (Production, bool) {
	if id < 0 || id >= len(t.productions) {
		return Production{}, false
	}
	return t.productions[id], true
}

// Terminals returns the terminals, followed by EOF.
func (t *Tables) Terminals() []grammar.Symbol {
	return append([]grammar.Symbol(nil), t.terminals...)
}

// NonTerminals returns the non-terminals in order of appearance as a LHS.
func (t *Tables) NonTerminals() []grammar.Symbol {
	return append([]grammar.Symbol(nil), t.nonterminals...)
}

// Action returns ACTION[state, a]. Empty cells return an action of kind
// NoAction.
func (t *Tables) Action(state int, a grammar.Symbol) Action {
	col, ok := t.tcol[a]
	if !ok {
		return Action{}
	}
	return decodeAction(t.action.Value(state, col))
}

// Goto returns GOTO[state, A].
func (t *Tables) Goto(state int, A grammar.Symbol) (int, bool) {
	col, ok := t.ntcol[A]
	if !ok {
		return 0, false
	}
	v := t.gotoT.Value(state, col)
	if v == sparse.DefaultNullValue {
		return 0, false
	}
	return int(v), true
}

// Expected returns the terminals with an action in a state.
func (t *Tables) Expected(state int) []grammar.Symbol {
	var la []grammar.Symbol
	for _, col := range t.action.Row(state) {
		la = append(la, t.terminals[col])
	}
	return la
}

// Fingerprint returns a hash over the contents of the tables.
func (t *Tables) Fingerprint() (string, error) {
	type cell struct {
		State  int
		Symbol string
		Value  string
	}
	snapshot := struct {
		Initial     int
		Productions []string
		Action      []cell
		Goto        []cell
	}{Initial: t.initial}
	for _, p := range t.productions {
		snapshot.Productions = append(snapshot.Productions, p.String())
	}
	t.action.Each(func(i, j int, v int32) {
		snapshot.Action = append(snapshot.Action, cell{i, t.terminals[j].Name, decodeAction(v).String()})
	})
	t.gotoT.Each(func(i, j int, v int32) {
		snapshot.Goto = append(snapshot.Goto, cell{i, t.nonterminals[j].Name, strconv.Itoa(int(v))})
	})
	return structhash.Hash(snapshot, 1)
}

// Matrix returns the tables as rows of strings, suitable for rendering. The
// first row is a header: "State", the terminals (ACTION) and the non-terminals
// (GOTO).
func (t *Tables) Matrix() [][]string {
	header := []string{"State"}
	for _, a := range t.terminals {
		header = append(header, a.Name)
	}
	for _, A := range t.nonterminals {
		header = append(header, A.Name)
	}
	rows := [][]string{header}
	for s := 0; s < t.states; s++ {
		row := []string{strconv.Itoa(s)}
		for _, a := range t.terminals {
			row = append(row, t.Action(s, a).String())
		}
		for _, A := range t.nonterminals {
			if to, ok := t.Goto(s, A); ok {
				row = append(row, strconv.Itoa(to))
			} else {
				row = append(row, "")
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// Dump writes the productions and the non-empty cells of the tables.
func (t *Tables) Dump(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, p := range t.productions {
		fmt.Fprintf(bw, "%d: %v\n", p.ID, p)
	}
	t.action.Each(func(i, j int, v int32) {
		fmt.Fprintf(bw, "ACTION[%d, %s] = %v\n", i, t.terminals[j], decodeAction(v))
	})
	t.gotoT.Each(func(i, j int, v int32) {
		fmt.Fprintf(bw, "GOTO[%d, %s] = %d\n", i, t.nonterminals[j], v)
	})
	return bw.Flush()
}

// --- Builder ---------------------------------------------------------------

// Builder collects productions and table entries. Symbols are given by name:
// every name appearing as the LHS of a production is a non-terminal, all others
// are terminals. "$" denotes end of input.
type Builder struct {
	initial int
	prods   []prodSpec
	actions []cellSpec
	gotos   []cellSpec
}

type prodSpec struct {
	lhs string
	rhs []string
}

type cellSpec struct {
	state  int
	symbol string
	action Action // for ACTION cells
	target int    // for GOTO cells
}

// NewBuilder creates a table builder. The initial state is 0, unless set with
// Initial.
func NewBuilder() *Builder {
	return &Builder{}
}

// Initial sets the initial state.
func (b *Builder) Initial(state int) *Builder {
	b.initial = state
	return b
}

// Production appends a production and returns its id. An empty RHS, or a RHS
// consisting of just "ε", denotes a zero-length production.
func (b *Builder) Production(lhs string, rhs ...string) int {
	b.prods = append(b.prods, prodSpec{lhs: lhs, rhs: rhs})
	return len(b.prods) - 1
}

// Action sets ACTION[state, terminal].
func (b *Builder) Action(state int, terminal string, a Action) *Builder {
	b.actions = append(b.actions, cellSpec{state: state, symbol: terminal, action: a})
	return b
}

// Shift sets ACTION[state, terminal] to shift to state to.
func (b *Builder) Shift(state int, terminal string, to int) *Builder {
	return b.Action(state, terminal, Shift(to))
}

// Reduce sets ACTION[state, terminal] to reduce by production id.
func (b *Builder) Reduce(state int, terminal string, production int) *Builder {
	return b.Action(state, terminal, Reduce(production))
}

// Accept sets ACTION[state, $] to accept.
func (b *Builder) Accept(state int) *Builder {
	return b.Action(state, grammar.EOFName, Accept())
}

// Goto sets GOTO[state, nonterminal].
func (b *Builder) Goto(state int, nonterminal string, to int) *Builder {
	b.gotos = append(b.gotos, cellSpec{state: state, symbol: nonterminal, target: to})
	return b
}

// Tables checks the entries and creates the tables. Every defect is reported as
// a *TableError; if there is more than one, they are joined.
func (b *Builder) Tables() (*Tables, error) {
	t := &Tables{
		initial: b.initial,
		tcol:    make(map[grammar.Symbol]int),
		ntcol:   make(map[grammar.Symbol]int),
		action:  sparse.NewIntMatrix(sparse.DefaultNullValue),
		gotoT:   sparse.NewIntMatrix(sparse.DefaultNullValue),
	}
	var errs []error
	problem := func(state int, symbol string, format string, args ...interface{}) {
		errs = append(errs, &TableError{State: state, Symbol: symbol, Problem: fmt.Sprintf(format, args...)})
	}
	if len(b.prods) == 0 {
		problem(b.initial, "", "no productions")
	}
	for _, p := range b.prods {
		A := grammar.N(p.lhs)
		if _, ok := t.ntcol[A]; !ok {
			t.ntcol[A] = len(t.nonterminals)
			t.nonterminals = append(t.nonterminals, A)
		}
	}
	addTerminal := func(name string) grammar.Symbol {
		a := grammar.T(name)
		if _, ok := t.tcol[a]; !ok {
			t.tcol[a] = len(t.terminals)
			t.terminals = append(t.terminals, a)
		}
		return a
	}
	for id, p := range b.prods {
		prod := Production{ID: id, LHS: grammar.N(p.lhs), RHS: []grammar.Symbol{}}
		if p.lhs == "" || isReserved(p.lhs) {
			problem(b.initial, p.lhs, "production %d has an invalid LHS", id)
		}
		for _, name := range p.rhs {
			switch {
			case isEpsilon(name):
				if len(p.rhs) > 1 {
					problem(b.initial, name, "production %d mixes ε with other symbols", id)
				}
			case name == grammar.EOFName:
				problem(b.initial, name, "production %d contains end of input", id)
			case t.isNonTerminal(name):
				prod.RHS = append(prod.RHS, grammar.N(name))
			default:
				prod.RHS = append(prod.RHS, addTerminal(name))
			}
		}
		t.productions = append(t.productions, prod)
	}
	for _, c := range b.actions {
		if c.symbol == "" || isEpsilon(c.symbol) || t.isNonTerminal(c.symbol) {
			problem(c.state, c.symbol, "ACTION entry for a symbol which is not a terminal")
			continue
		}
		if c.symbol != grammar.EOFName {
			addTerminal(c.symbol)
		}
	}
	eof := len(t.terminals)
	t.terminals = append(t.terminals, grammar.EOF)
	t.tcol[grammar.EOF] = eof
	t.states = b.initial + 1
	seeState := func(s int) {
		if s+1 > t.states {
			t.states = s + 1
		}
	}
	for _, c := range b.actions {
		col, ok := t.tcol[grammar.T(c.symbol)]
		if c.symbol == grammar.EOFName {
			col, ok = eof, true
		}
		if !ok {
			continue // reported above
		}
		if c.state < 0 {
			problem(c.state, c.symbol, "negative state")
			continue
		}
		seeState(c.state)
		switch c.action.Kind {
		case ShiftAction:
			if c.symbol == grammar.EOFName {
				problem(c.state, c.symbol, "cannot shift end of input")
				continue
			}
			seeState(c.action.Target)
		case ReduceAction:
			if c.action.Target >= len(b.prods) {
				problem(c.state, c.symbol, "reduce by unknown production %d", c.action.Target)
				continue
			}
		case AcceptAction:
		default:
			problem(c.state, c.symbol, "invalid action")
			continue
		}
		if c.action.Target < 0 || c.action.Target > targetMask {
			problem(c.state, c.symbol, "action target %d out of range", c.action.Target)
			continue
		}
		if old, ok := t.action.Put(c.state, col, c.action.encode()); !ok {
			problem(c.state, c.symbol, "conflicting actions %v and %v", decodeAction(old), c.action)
		}
	}
	for _, c := range b.gotos {
		col, ok := t.ntcol[grammar.N(c.symbol)]
		if !ok {
			problem(c.state, c.symbol, "GOTO entry for a symbol which is not a non-terminal")
			continue
		}
		if c.state < 0 || c.target < 0 {
			problem(c.state, c.symbol, "negative state")
			continue
		}
		seeState(c.state)
		seeState(c.target)
		if old, ok := t.gotoT.Put(c.state, col, int32(c.target)); !ok {
			problem(c.state, c.symbol, "conflicting GOTO entries %d and %d", old, c.target)
		}
	}
	if len(errs) > 0 {
		for _, err := range errs {
			tracer().Errorf("%v", err)
		}
		return nil, errors.Join(errs...)
	}
	tracer().Infof("LR tables: %d productions, %d states, %d actions, %d gotos",
		len(t.productions), t.states, t.action.ValueCount(), t.gotoT.ValueCount())
	return t, nil
}

func (t *Tables) isNonTerminal(name string) bool {
	_, ok := t.ntcol[grammar.N(name)]
	return ok
}

func isEpsilon(name string) bool {
	return name == grammar.EpsilonName || name == grammar.EpsilonAltName
}

func isReserved(name string) bool {
	return isEpsilon(name) || name == grammar.EOFName
}
