/*
Package scanner produces token sequences for the parsers of this module.

The parsers do not depend on this package; they consume slices of
parsetab.Token, wherever these come from. Package scanner is a convenience
for turning text into tokens, based on lexmachine. Every terminal of a
grammar is recognized literally, unless it is given a regular expression
with Class:

    lx, err := scanner.ForSymbols(g.Terminals(),
        scanner.Class("id", `[a-zA-Z_][a-zA-Z0-9_]*`))
    tokens, err := lx.Tokens("width + 2 * (x + y)")

White space is skipped. The token sequence is terminated by an EOF token.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/npillmayer/parsetab"
	"github.com/npillmayer/parsetab/grammar"
	"github.com/npillmayer/schuko/tracing"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// tracer traces with key 'parsetab.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("parsetab.scanner")
}

// Identifier is a regular expression for identifiers of the usual form.
const Identifier = `([a-zA-Z]|_)([a-zA-Z]|[0-9]|_)*`

// Number is a regular expression for unsigned decimal integers.
const Number = `[0-9]+`

// Error is returned for input which no pattern matches.
type Error struct {
	Line, Column int
	Offset       int
	Text         string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: unexpected input %q", e.Line, e.Column, e.Text)
}

// Unwrap returns parsetab.ErrInput.
func (e *Error) Unwrap() error {
	return parsetab.ErrInput
}

type config struct {
	classes map[string]string
	skip    string
}

// Option configures a lexer.
type Option func(*config)

// Class sets a regular expression (in lexmachine syntax) for a terminal.
// Classes for names which are not in the lexer's list of terminals are ignored.
func Class(terminal, regex string) Option {
	return func(c *config) {
		c.classes[terminal] = regex
	}
}

// Skip sets the regular expression for input to ignore. The default skips
// white space.
func Skip(regex string) Option {
	return func(c *config) {
		c.skip = regex
	}
}

// Lexer recognizes the terminals of a language. Lexers are safe for concurrent
// use.
type Lexer struct {
	lexer     *lexmachine.Lexer
	terminals []string
}

// NewLexer creates a lexer for a list of terminals. Terminals are recognized
// literally, unless a Class option has been given for them. Where more than
// one pattern matches the longest match, literals win over classes, and
// earlier terminals win over later ones.
func NewLexer(terminals []string, opts ...Option) (*Lexer, error) {
	c := &config{classes: make(map[string]string), skip: `( |\t|\n|\r)+`}
	for _, opt := range opts {
		opt(c)
	}
	lx := &Lexer{lexer: lexmachine.NewLexer()}
	for _, t := range terminals {
		if t != parsetab.EOFName && !contains(lx.terminals, t) {
			lx.terminals = append(lx.terminals, t)
		}
	}
	for id, t := range lx.terminals {
		if _, ok := c.classes[t]; !ok {
			lx.lexer.Add([]byte(literal(t)), token(id))
		}
	}
	for id, t := range lx.terminals {
		if regex, ok := c.classes[t]; ok {
			lx.lexer.Add([]byte(regex), token(id))
		}
	}
	if c.skip != "" {
		lx.lexer.Add([]byte(c.skip), skip)
	}
	if err := lx.lexer.Compile(); err != nil {
		tracer().Errorf("error compiling DFA: %v", err)
		return nil, err
	}
	tracer().Debugf("lexer for %d terminals compiled", len(lx.terminals))
	return lx, nil
}

// ForSymbols creates a lexer for a list of terminal symbols, e.g. the terminals
// of a grammar. Non-terminals and pseudo-symbols in the list are ignored.
func ForSymbols(terminals []grammar.Symbol, opts ...Option) (*Lexer, error) {
	names := make([]string, 0, len(terminals))
	for _, a := range terminals {
		if a.IsTerminal() {
			names = append(names, a.Name)
		}
	}
	return NewLexer(names, opts...)
}

// Terminals returns the terminals recognized by the lexer.
func (lx *Lexer) Terminals() []string {
	return append([]string(nil), lx.terminals...)
}

// Tokens splits an input string into tokens, terminated by an EOF token. Spans
// are byte offsets into the input.
func (lx *Lexer) Tokens(input string) ([]parsetab.Token, error) {
	s, err := lx.lexer.Scanner([]byte(input))
	if err != nil {
		return nil, err
	}
	var tokens []parsetab.Token
	for tok, err, eof := s.Next(); !eof; tok, err, eof = s.Next() {
		if err != nil {
			if ui, ok := err.(*machines.UnconsumedInput); ok {
				end := ui.FailTC
				if end <= ui.StartTC {
					end = ui.StartTC + 1
				}
				if end > len(input) {
					end = len(input)
				}
				return tokens, &Error{
					Line:   ui.StartLine,
					Column: ui.StartColumn,
					Offset: ui.StartTC,
					Text:   input[ui.StartTC:end],
				}
			}
			return tokens, err
		}
		t := tok.(*lexmachine.Token)
		from := uint64(t.TC)
		tokens = append(tokens, parsetab.MakeToken(lx.terminals[t.Type], string(t.Lexeme),
			parsetab.Span{from, from + uint64(len(t.Lexeme))}))
	}
	tokens = append(tokens, parsetab.EOF(uint64(len(input))))
	tracer().Debugf("scanned %d tokens", len(tokens))
	return tokens, nil
}

// literal escapes a terminal for use as a lexmachine pattern.
func literal(t string) string {
	var b strings.Builder
	for _, r := range t {
		if r < unicode.MaxASCII && !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != ' ' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func token(id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}

func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
