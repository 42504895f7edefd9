package ll

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cnf/structhash"
	"github.com/npillmayer/parsetab/grammar"
)

// ErrNotLL1 is wrapped by *NotLL1Error.
var ErrNotLL1 = errors.New("grammar is not LL(1)")

// Entry is the content of a table cell: either a single rule or a conflict
// between two or more rules.
type Entry struct {
	rules []*grammar.Rule // in order of rule serial
}

// Rule returns the rule of a cell. It returns false if the cell holds a
// conflict.
func (e Entry) Rule() (*grammar.Rule, bool) {
	if len(e.rules) != 1 {
		return nil, false
	}
	return e.rules[0], true
}

// IsConflict is true if more than one rule competes for the cell.
func (e Entry) IsConflict() bool {
	return len(e.rules) > 1
}

// Rules returns all rules placed into the cell.
func (e Entry) Rules() []*grammar.Rule {
	return append([]*grammar.Rule(nil), e.rules...)
}

func (e Entry) String() string {
	if len(e.rules) == 1 {
		return e.rules[0].String()
	}
	s := make([]string, len(e.rules))
	for i, r := range e.rules {
		s[i] = r.String()
	}
	return "conflict {" + strings.Join(s, " / ") + "}"
}

// Conflict describes a table cell with more than one rule.
type Conflict struct {
	NonTerminal grammar.Symbol
	Lookahead   grammar.Symbol
	Rules       []*grammar.Rule
}

func (c Conflict) String() string {
	s := make([]string, len(c.Rules))
	for i, r := range c.Rules {
		s[i] = r.String()
	}
	return fmt.Sprintf("M[%s, %s] = {%s}", c.NonTerminal, c.Lookahead, strings.Join(s, " / "))
}

// NotLL1Error reports the conflicts of a table.
type NotLL1Error struct {
	Grammar   string
	Conflicts []Conflict
}

func (e *NotLL1Error) Error() string {
	s := make([]string, len(e.Conflicts))
	for i, c := range e.Conflicts {
		s[i] = c.String()
	}
	return fmt.Sprintf("grammar %q is not LL(1), %d conflict(s): %s", e.Grammar, len(e.Conflicts),
		strings.Join(s, "; "))
}

// Unwrap returns ErrNotLL1.
func (e *NotLL1Error) Unwrap() error {
	return ErrNotLL1
}

// --- Table -----------------------------------------------------------------

type cell struct {
	A grammar.Symbol // non-terminal
	a grammar.Symbol // terminal or EOF
}

// Table is a predictive parsing table. Tables are immutable and safe for
// concurrent use.
type Table struct {
	g     *grammar.Grammar
	cells map[cell]Entry
}

// BuildTable creates the predictive parsing table for g. Cells receiving more
// than one rule are marked as conflicts. BuildTable never fails; use
// Strict to check for conflicts.
func BuildTable(g *grammar.Grammar, first *grammar.FirstSets, follow *grammar.FollowSets) *Table {
	if first == nil || first.Grammar() != g {
		first = grammar.ComputeFirst(g)
	}
	if follow == nil || follow.Grammar() != g {
		follow = grammar.ComputeFollow(g, first)
	}
	t := &Table{g: g, cells: make(map[cell]Entry)}
	for _, r := range g.Rules() {
		f, nullable := first.OfSequence(r.RHS())
		for _, a := range f {
			t.place(r.LHS, a, r)
		}
		if nullable {
			for _, b := range follow.Of(r.LHS) {
				t.place(r.LHS, b, r)
			}
		}
	}
	if t.HasConflicts() {
		tracer().Infof("table for grammar %s has %d conflict(s)", g.Name, len(t.Conflicts()))
	}
	return t
}

func (t *Table) place(A, a grammar.Symbol, r *grammar.Rule) {
	c := cell{A, a}
	e := t.cells[c]
	for _, existing := range e.rules {
		if existing == r {
			return
		}
	}
	if len(e.rules) > 0 {
		tracer().Debugf("conflict at M[%s, %s]: %v vs. %v", A, a, e.rules[0], r)
	}
	e.rules = append(e.rules, r) // rules are placed in serial order
	t.cells[c] = e
}

// Grammar returns the grammar of the table.
func (t *Table) Grammar() *grammar.Grammar {
	return t.g
}

// Lookup returns the entry for M[A, a]. It returns false for empty cells.
func (t *Table) Lookup(A, a grammar.Symbol) (Entry, bool) {
	e, ok := t.cells[cell{A, a}]
	return e, ok
}

// Expected returns the lookaheads with a non-empty cell in row A, in terminal
// order.
func (t *Table) Expected(A grammar.Symbol) []grammar.Symbol {
	var la []grammar.Symbol
	for _, a := range t.g.Lookaheads() {
		if _, ok := t.cells[cell{A, a}]; ok {
			la = append(la, a)
		}
	}
	return la
}

// Conflicts returns all conflicting cells, ordered by non-terminal and
// lookahead.
func (t *Table) Conflicts() []Conflict {
	var conflicts []Conflict
	t.each(func(A, a grammar.Symbol, e Entry) {
		if e.IsConflict() {
			conflicts = append(conflicts, Conflict{NonTerminal: A, Lookahead: a, Rules: e.Rules()})
		}
	})
	return conflicts
}

// HasConflicts is true if at least one cell holds a conflict.
func (t *Table) HasConflicts() bool {
	for _, e := range t.cells {
		if e.IsConflict() {
			return true
		}
	}
	return false
}

// Strict returns a *NotLL1Error if the table has conflicts.
func (t *Table) Strict() error {
	if conflicts := t.Conflicts(); len(conflicts) > 0 {
		return &NotLL1Error{Grammar: t.g.Name, Conflicts: conflicts}
	}
	return nil
}

// each iterates over the non-empty cells, row by row.
func (t *Table) each(f func(A, a grammar.Symbol, e Entry)) {
	lookaheads := t.g.Lookaheads()
	for _, A := range t.g.NonTerminals() {
		for _, a := range lookaheads {
			if e, ok := t.cells[cell{A, a}]; ok {
				f(A, a, e)
			}
		}
	}
}

// Fingerprint returns a hash over the table contents. Two tables built from the
// same grammar have equal fingerprints.
func (t *Table) Fingerprint() (string, error) {
	type snapshotCell struct {
		NonTerminal string
		Lookahead   string
		Rules       []int
	}
	snapshot := struct {
		Grammar string
		Cells   []snapshotCell
	}{Grammar: t.g.Name}
	t.each(func(A, a grammar.Symbol, e Entry) {
		c := snapshotCell{NonTerminal: A.Name, Lookahead: a.Name}
		for _, r := range e.rules {
			c.Rules = append(c.Rules, r.Serial)
		}
		snapshot.Cells = append(snapshot.Cells, c)
	})
	return structhash.Hash(snapshot, 1)
}

// Matrix returns the table as rows of strings, suitable for rendering. The
// first row is a header consisting of an empty corner cell and the lookaheads.
// Cells hold the RHS of the rule, or all competing rules for conflicts.
func (t *Table) Matrix() [][]string {
	lookaheads := t.g.Lookaheads()
	header := []string{""}
	for _, a := range lookaheads {
		header = append(header, a.Name)
	}
	rows := [][]string{header}
	for _, A := range t.g.NonTerminals() {
		row := []string{A.Name}
		for _, a := range lookaheads {
			e, ok := t.cells[cell{A, a}]
			switch {
			case !ok:
				row = append(row, "")
			case e.IsConflict():
				bodies := make([]string, len(e.rules))
				for i, r := range e.rules {
					bodies[i] = r.Body()
				}
				row = append(row, "⚡ "+strings.Join(bodies, " | "))
			default:
				row = append(row, e.rules[0].Body())
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// Dump writes the non-empty cells of the table, one per line.
func (t *Table) Dump(w io.Writer) error {
	bw := bufio.NewWriter(w)
	t.each(func(A, a grammar.Symbol, e Entry) {
		fmt.Fprintf(bw, "M[%s, %s] = %v\n", A, a, e)
	})
	return bw.Flush()
}
