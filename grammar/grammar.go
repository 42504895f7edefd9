package grammar

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedGrammar is wrapped by every *MalformedError.
var ErrMalformedGrammar = errors.New("malformed grammar")

// MalformedError reports all the problems found while checking a grammar.
type MalformedError struct {
	Grammar  string   // name of the grammar
	Problems []string // human readable description of each defect
}

func (e *MalformedError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "grammar %q is malformed: ", e.Grammar)
	b.WriteString(strings.Join(e.Problems, "; "))
	return b.String()
}

// Unwrap returns ErrMalformedGrammar.
func (e *MalformedError) Unwrap() error {
	return ErrMalformedGrammar
}

// --- Rules -----------------------------------------------------------------

// Rule is a production of a grammar. Rules are created by a Builder and are
// immutable afterwards. The RHS of an epsilon rule consists of the single symbol
// Epsilon.
type Rule struct {
	Serial int    // ordinal number of this rule within its grammar
	LHS    Symbol // left hand side, always a non-terminal
	rhs    []Symbol
}

// RHS returns a copy of the right hand side of a rule.
func (r *Rule) RHS() []Symbol {
	return append([]Symbol(nil), r.rhs...)
}

// Symbol returns the i-th symbol of the RHS.
func (r *Rule) Symbol(i int) Symbol {
	return r.rhs[i]
}

// IsEpsilon is true for rules A ➞ ε.
func (r *Rule) IsEpsilon() bool {
	return len(r.rhs) == 1 && r.rhs[0].IsEpsilon()
}

// Len returns the number of symbols a rule derives. It is 0 for epsilon rules.
func (r *Rule) Len() int {
	if r.IsEpsilon() {
		return 0
	}
	return len(r.rhs)
}

// Body returns the RHS as a string.
func (r *Rule) Body() string {
	return symbolsString(r.rhs)
}

func (r *Rule) String() string {
	return fmt.Sprintf("%s ➞ %s", r.LHS, symbolsString(r.rhs))
}

func symbolsString(syms []Symbol) string {
	var b strings.Builder
	for i, A := range syms {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(A.String())
	}
	return b.String()
}

// --- Grammar ---------------------------------------------------------------

// Grammar is a type for a context-free grammar. Create one using a Builder or
// from a Spec. Grammars are immutable and safe for concurrent use.
type Grammar struct {
	Name         string
	start        Symbol
	rules        []*Rule
	byLHS        map[Symbol][]*Rule
	terminals    []Symbol
	nonterminals []Symbol
	symbols      map[string]Symbol
	termIndex    map[Symbol]int
	ntIndex      map[Symbol]int
}

// Start returns the start symbol of the grammar.
func (g *Grammar) Start() Symbol {
	return g.start
}

// Rules returns all the rules in declaration order.
func (g *Grammar) Rules() []*Rule {
	return append([]*Rule(nil), g.rules...)
}

// Rule returns the rule with serial number n.
func (g *Grammar) Rule(n int) *Rule {
	if n < 0 || n >= len(g.rules) {
		return nil
	}
	return g.rules[n]
}

// RuleCount returns the number of rules of g.
func (g *Grammar) RuleCount() int {
	return len(g.rules)
}

// RulesFor returns the rules for non-terminal A in declaration order.
func (g *Grammar) RulesFor(A Symbol) []*Rule {
	return append([]*Rule(nil), g.byLHS[A]...)
}

// Terminals returns the terminals of g in order of their first appearance.
func (g *Grammar) Terminals() []Symbol {
	return append([]Symbol(nil), g.terminals...)
}

// NonTerminals returns the non-terminals of g in order of their first
// appearance as a LHS.
func (g *Grammar) NonTerminals() []Symbol {
	return append([]Symbol(nil), g.nonterminals...)
}

// Lookaheads returns the terminals of g followed by EOF.
func (g *Grammar) Lookaheads() []Symbol {
	return append(g.Terminals(), EOF)
}

// SymbolByName finds a symbol of g by its name. The reserved names for epsilon
// and end-of-input are recognized as well.
func (g *Grammar) SymbolByName(name string) (Symbol, bool) {
	if isEpsilonName(name) {
		return Epsilon, true
	}
	if name == EOFName {
		return EOF, true
	}
	A, ok := g.symbols[name]
	return A, ok
}

// TerminalIndex returns the position of a terminal within Terminals().
// EOF gets the position just behind the last terminal. Symbols which are not
// terminals of g return -1.
func (g *Grammar) TerminalIndex(A Symbol) int {
	if A.IsEOF() {
		return len(g.terminals)
	}
	if inx, ok := g.termIndex[A]; ok {
		return inx
	}
	return -1
}

// NonTerminalIndex returns the position of a non-terminal within
// NonTerminals(), or -1.
func (g *Grammar) NonTerminalIndex(A Symbol) int {
	if inx, ok := g.ntIndex[A]; ok {
		return inx
	}
	return -1
}

// Dump is a debugging helper, writing the rules to the trace.
func (g *Grammar) Dump() {
	tracer().Debugf("--- grammar %s ---------------------------", g.Name)
	for _, r := range g.rules {
		tracer().Debugf("%3d: %v", r.Serial, r)
	}
	tracer().Debugf("-----------------------------------------")
}

func (g *Grammar) String() string {
	var b bytes.Buffer
	for _, r := range g.rules {
		fmt.Fprintf(&b, "%d: %v\n", r.Serial, r)
	}
	return b.String()
}

// --- Builder ---------------------------------------------------------------

// Builder is a helper type to construct grammars. Create one with NewBuilder.
//
//	b := NewBuilder("G")
//	b.LHS("S").N("A").T("a").End()  // S  ➞ A a
//	b.LHS("A").T("b").End()         // A  ➞ b
//	b.LHS("A").Epsilon()            // A  ➞ ε
//	g, err := b.Grammar()
type Builder struct {
	name     string
	start    string
	rules    []*Rule
	problems []string
}

// NewBuilder creates a grammar builder for a grammar with a given name.
func NewBuilder(name string) *Builder {
	return &Builder{name: name}
}

// Start sets the start symbol. If not called, the LHS of the first rule is the
// start symbol.
func (b *Builder) Start(name string) *Builder {
	b.start = name
	return b
}

// LHS starts a new rule for non-terminal name.
func (b *Builder) LHS(name string) *RuleBuilder {
	if isReserved(name) || name == "" {
		b.problems = append(b.problems, fmt.Sprintf("%q cannot be used as a left hand side", name))
	}
	return &RuleBuilder{b: b, lhs: N(name)}
}

// RuleBuilder collects the RHS of a single rule. Symbols are appended in order.
type RuleBuilder struct {
	b   *Builder
	lhs Symbol
	rhs []Symbol
}

// N appends a non-terminal to the RHS.
func (rb *RuleBuilder) N(name string) *RuleBuilder {
	rb.check(name)
	rb.rhs = append(rb.rhs, N(name))
	return rb
}

// T appends a terminal to the RHS.
func (rb *RuleBuilder) T(name string) *RuleBuilder {
	rb.check(name)
	rb.rhs = append(rb.rhs, T(name))
	return rb
}

// End completes the rule. A rule without any symbols is an epsilon rule.
func (rb *RuleBuilder) End() {
	if len(rb.rhs) == 0 {
		rb.rhs = []Symbol{Epsilon}
	}
	rb.b.rules = append(rb.b.rules, &Rule{LHS: rb.lhs, rhs: rb.rhs})
}

// Epsilon completes an epsilon rule. It is an error to call Epsilon after
// symbols have been appended.
func (rb *RuleBuilder) Epsilon() {
	if len(rb.rhs) > 0 {
		rb.b.problems = append(rb.b.problems,
			fmt.Sprintf("rule %s ➞ %s mixes ε with other symbols", rb.lhs, symbolsString(rb.rhs)))
	}
	rb.rhs = []Symbol{Epsilon}
	rb.b.rules = append(rb.b.rules, &Rule{LHS: rb.lhs, rhs: rb.rhs})
}

func (rb *RuleBuilder) check(name string) {
	if isReserved(name) || name == "" {
		rb.b.problems = append(rb.b.problems,
			fmt.Sprintf("%q is reserved and cannot be used in rule for %s", name, rb.lhs))
	}
}

// Grammar checks the rules and returns the grammar, or a *MalformedError.
func (b *Builder) Grammar() (*Grammar, error) {
	g := &Grammar{
		Name:      b.name,
		byLHS:     make(map[Symbol][]*Rule),
		symbols:   make(map[string]Symbol),
		termIndex: make(map[Symbol]int),
		ntIndex:   make(map[Symbol]int),
	}
	problems := append([]string(nil), b.problems...)
	if len(b.rules) == 0 {
		problems = append(problems, "grammar has no rules")
		return nil, &MalformedError{Grammar: b.name, Problems: problems}
	}
	for _, r := range b.rules { // collect non-terminals
		if _, ok := g.ntIndex[r.LHS]; !ok {
			g.ntIndex[r.LHS] = len(g.nonterminals)
			g.nonterminals = append(g.nonterminals, r.LHS)
			g.symbols[r.LHS.Name] = r.LHS
		}
	}
	seen := make(map[string]bool)
	for _, r := range b.rules {
		key := r.String()
		if seen[key] {
			tracer().Infof("grammar %s: ignoring duplicate rule %v", b.name, r)
			continue
		}
		seen[key] = true
		for _, A := range r.rhs {
			switch {
			case A.IsEpsilon():
				if len(r.rhs) > 1 {
					problems = append(problems, fmt.Sprintf("rule %v mixes ε with other symbols", r))
				}
			case A.IsNonTerminal():
				if _, ok := g.ntIndex[A]; !ok {
					problems = append(problems, fmt.Sprintf("non-terminal %s in rule %v has no rule", A, r))
				}
			case A.IsTerminal():
				if _, ok := g.ntIndex[N(A.Name)]; ok {
					problems = append(problems, fmt.Sprintf("%s is used as terminal and as non-terminal", A))
				} else if _, ok := g.termIndex[A]; !ok {
					g.termIndex[A] = len(g.terminals)
					g.terminals = append(g.terminals, A)
					g.symbols[A.Name] = A
				}
			}
		}
		rule := &Rule{Serial: len(g.rules), LHS: r.LHS, rhs: append([]Symbol(nil), r.rhs...)}
		g.rules = append(g.rules, rule)
		g.byLHS[rule.LHS] = append(g.byLHS[rule.LHS], rule)
	}
	g.start = b.rules[0].LHS
	if b.start != "" {
		g.start = N(b.start)
	}
	if len(g.byLHS[g.start]) == 0 {
		problems = append(problems, fmt.Sprintf("start symbol %s has no rule", g.start))
	}
	if len(problems) > 0 {
		return nil, &MalformedError{Grammar: b.name, Problems: problems}
	}
	tracer().Infof("grammar %s: %d rules, %d terminals, %d non-terminals",
		g.Name, len(g.rules), len(g.terminals), len(g.nonterminals))
	g.Dump()
	return g, nil
}
