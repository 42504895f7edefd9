package grammar

import (
	"fmt"
	"strings"
	"sync"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// Spec is a grammar specification as an ordered mapping from non-terminal names
// to ordered lists of alternatives. Each alternative is a list of symbol names.
// An empty alternative, or an alternative consisting of the reserved name "ε"
// (or "epsilon"), is an epsilon rule.
//
// Names appearing as the LHS of a rule are non-terminals. If Terminals is empty,
// every other name is a terminal. If Terminals lists the terminals, names which
// are neither are reported as dangling non-terminal references.
type Spec struct {
	Name      string
	Start     string   // optional; default is the LHS of the first rule
	Terminals []string // optional
	Rules     []SpecRule
}

// SpecRule lists the alternatives for a non-terminal.
type SpecRule struct {
	LHS          string
	Alternatives [][]string
}

// Grammar creates a grammar from a specification.
func (spec Spec) Grammar() (*Grammar, error) {
	b := NewBuilder(spec.Name)
	if spec.Start != "" {
		b.Start(spec.Start)
	}
	lhs := make(map[string]bool, len(spec.Rules))
	for _, r := range spec.Rules {
		lhs[r.LHS] = true
	}
	declared := make(map[string]bool, len(spec.Terminals))
	for _, t := range spec.Terminals {
		declared[t] = true
	}
	for _, r := range spec.Rules {
		for _, alt := range r.Alternatives {
			rb := b.LHS(r.LHS)
			if len(alt) == 0 || len(alt) == 1 && isEpsilonName(alt[0]) {
				rb.Epsilon()
				continue
			}
			for _, name := range alt {
				switch {
				case lhs[name]:
					rb.N(name)
				case len(declared) > 0 && !declared[name] && !isReserved(name):
					rb.N(name) // dangling, will be reported by the builder
				default:
					rb.T(name)
				}
			}
			rb.End()
		}
	}
	return b.Grammar()
}

// SpecError is a syntax error within a textual grammar description.
type SpecError struct {
	Source string
	Line   int
	Col    int
	Cause  string
}

func (e *SpecError) Error() string {
	var b strings.Builder
	if e.Source != "" {
		fmt.Fprintf(&b, "%v: ", e.Source)
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, "%d:%d: ", e.Line, e.Col)
	}
	fmt.Fprintf(&b, "error: %v", e.Cause)
	return b.String()
}

// Unwrap returns ErrMalformedGrammar.
func (e *SpecError) Unwrap() error {
	return ErrMalformedGrammar
}

// --- Textual grammar descriptions -----------------------------------------

// Token types of the grammar description lexer.
const (
	tokSymbol int = iota + 1
	tokQuoted
	tokArrow
	tokBar
	tokSemi
	tokNewline
	tokDirective
)

var specLexer struct {
	once  sync.Once
	lexer *lexmachine.Lexer
	err   error
}

func token(id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}

func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

func grammarLexer() (*lexmachine.Lexer, error) {
	specLexer.once.Do(func() {
		lx := lexmachine.NewLexer()
		lx.Add([]byte(`#[^\n]*`), skip)
		lx.Add([]byte(`( |\t|\r)+`), skip)
		lx.Add([]byte(`\n`), token(tokNewline))
		lx.Add([]byte(`->|→|➞|::=`), token(tokArrow))
		lx.Add([]byte(`\|`), token(tokBar))
		lx.Add([]byte(`;`), token(tokSemi))
		lx.Add([]byte(`%[a-z]+`), token(tokDirective))
		lx.Add([]byte(`'[^'\n]+'`), token(tokQuoted))
		lx.Add([]byte(`[^ \t\r\n\|;#%'][^ \t\r\n\|;#]*`), token(tokSymbol))
		if err := lx.Compile(); err != nil {
			specLexer.err = err
			return
		}
		specLexer.lexer = lx
	})
	return specLexer.lexer, specLexer.err
}

// Parse reads a textual grammar description:
//
//	# expression grammar
//	%start E
//	%token id + * ( )
//	E  -> T E' ;
//	E' -> + T E' | ε ;
//	T  -> F T' ;
//	T' -> * F T' | ε ;
//	F  -> ( E ) | id ;
//
// Rules are terminated by semicolons; alternatives are separated by bars.
// Arrows may be written as "->", "→", "➞" or "::=". Symbols are separated by
// white space; symbols clashing with the notation may be single-quoted ('|').
// Directives %start and %token are terminated by end of line and map to
// Spec.Start and Spec.Terminals.
func Parse(name string, src string) (*Grammar, error) {
	spec, err := ParseSpec(name, src)
	if err != nil {
		return nil, err
	}
	return spec.Grammar()
}

// ParseSpec reads a textual grammar description into a Spec, without creating
// the grammar. See Parse for the format.
func ParseSpec(name string, src string) (Spec, error) {
	lx, err := grammarLexer()
	if err != nil {
		return Spec{}, fmt.Errorf("cannot compile grammar lexer: %w", err)
	}
	scan, err := lx.Scanner([]byte(src))
	if err != nil {
		return Spec{}, err
	}
	var toks []*lexmachine.Token
	for tok, err, eof := scan.Next(); !eof; tok, err, eof = scan.Next() {
		if err != nil {
			if ui, ok := err.(*machines.UnconsumedInput); ok {
				return Spec{}, &SpecError{Source: name, Line: ui.FailLine, Col: ui.FailColumn,
					Cause: "unexpected character"}
			}
			return Spec{}, &SpecError{Source: name, Cause: err.Error()}
		}
		toks = append(toks, tok.(*lexmachine.Token))
	}
	tracer().Debugf("grammar description %s: %d tokens", name, len(toks))
	p := &specParser{source: name, toks: toks, spec: Spec{Name: name}}
	if err := p.parse(); err != nil {
		return Spec{}, err
	}
	return p.spec, nil
}

type specParser struct {
	source string
	toks   []*lexmachine.Token
	pos    int
	spec   Spec
	index  map[string]int // LHS name -> position within spec.Rules
}

func (p *specParser) peek() *lexmachine.Token {
	if p.pos < len(p.toks) {
		return p.toks[p.pos]
	}
	return nil
}

func (p *specParser) errorf(tok *lexmachine.Token, format string, args ...interface{}) error {
	e := &SpecError{Source: p.source, Cause: fmt.Sprintf(format, args...)}
	if tok != nil {
		e.Line, e.Col = tok.StartLine, tok.StartColumn
	}
	return e
}

func (p *specParser) parse() error {
	p.index = make(map[string]int)
	for tok := p.peek(); tok != nil; tok = p.peek() {
		switch tok.Type {
		case tokNewline, tokSemi:
			p.pos++
		case tokDirective:
			if err := p.directive(); err != nil {
				return err
			}
		case tokSymbol, tokQuoted:
			if err := p.rule(); err != nil {
				return err
			}
		default:
			return p.errorf(tok, "unexpected %q", tok.Value)
		}
	}
	if len(p.spec.Rules) == 0 {
		return p.errorf(nil, "no rules found")
	}
	return nil
}

func (p *specParser) directive() error {
	dir := p.peek()
	p.pos++
	var args []string
	for tok := p.peek(); tok != nil && tok.Type != tokNewline && tok.Type != tokSemi; tok = p.peek() {
		if tok.Type != tokSymbol && tok.Type != tokQuoted {
			return p.errorf(tok, "unexpected %q in directive %s", tok.Value, dir.Value)
		}
		args = append(args, symbolText(tok))
		p.pos++
	}
	switch dir.Value.(string) {
	case "%start":
		if len(args) != 1 {
			return p.errorf(dir, "%%start needs exactly one symbol")
		}
		p.spec.Start = args[0]
	case "%token":
		p.spec.Terminals = append(p.spec.Terminals, args...)
	default:
		return p.errorf(dir, "unknown directive %s", dir.Value)
	}
	return nil
}

func (p *specParser) rule() error {
	lhs := p.peek()
	p.pos++
	p.skipNewlines()
	if arrow := p.peek(); arrow == nil || arrow.Type != tokArrow {
		return p.errorf(lhs, "expected arrow after %s", symbolText(lhs))
	}
	p.pos++
	name := symbolText(lhs)
	inx, ok := p.index[name]
	if !ok {
		inx = len(p.spec.Rules)
		p.index[name] = inx
		p.spec.Rules = append(p.spec.Rules, SpecRule{LHS: name})
	}
	alt := []string{}
	for {
		tok := p.peek()
		if tok == nil {
			return p.errorf(lhs, "rule for %s is not terminated by ';'", name)
		}
		p.pos++
		switch tok.Type {
		case tokNewline:
		case tokSymbol, tokQuoted:
			alt = append(alt, symbolText(tok))
		case tokBar:
			p.spec.Rules[inx].Alternatives = append(p.spec.Rules[inx].Alternatives, alt)
			alt = []string{}
		case tokSemi:
			p.spec.Rules[inx].Alternatives = append(p.spec.Rules[inx].Alternatives, alt)
			return nil
		default:
			return p.errorf(tok, "unexpected %q in rule for %s", tok.Value, name)
		}
	}
}

func (p *specParser) skipNewlines() {
	for tok := p.peek(); tok != nil && tok.Type == tokNewline; tok = p.peek() {
		p.pos++
	}
}

func symbolText(tok *lexmachine.Token) string {
	s := tok.Value.(string)
	if tok.Type == tokQuoted {
		return s[1 : len(s)-1]
	}
	return s
}
