package parsetab

import (
	"errors"
	"fmt"
)

// EOFName is the terminal name of the end-of-input marker. Callers append
// exactly one EOF token to every token sequence handed to a parser.
const EOFName = "$"

// Errors shared by the parsers of this module. Parser specific error types
// wrap one of these, so clients may test with errors.Is.
var (
	// ErrSyntax is wrapped by syntax errors of all parsers.
	ErrSyntax = errors.New("syntax error")
	// ErrInput signals a token sequence violating the input contract.
	ErrInput = errors.New("invalid token sequence")
)

// StepLimitError is returned by a parser which gave up after a configured
// number of steps.
type StepLimitError struct {
	Parser string // "ll", "lr" or "handle"
	Limit  int
}

func (e *StepLimitError) Error() string {
	return fmt.Sprintf("%s parser gave up after %d steps", e.Parser, e.Limit)
}

// --- A general purpose interface for tokens --------------------------------

// Tokens represent input tokens. They are usually produced by a scanner and
// reflect terminals in a language.
//
// An example would be a token for an identifier:
//
//	Terminal = "id"        // name of the grammar terminal this token stands for
//	Lexeme   = "width"     // lexeme how it appeared in the input stream
//	Span     = 67…72       // occured from position 67 in the input stream
type Token interface {
	Terminal() string
	Lexeme() string
	Span() Span
}

// DefaultToken is a very unsophisticated token type, used by the scanner and
// by clients constructing token sequences by hand.
type DefaultToken struct {
	terminal string
	lexeme   string
	span     Span
}

var _ Token = DefaultToken{}

// MakeToken creates a token for a terminal.
func MakeToken(terminal, lexeme string, span Span) DefaultToken {
	return DefaultToken{
		terminal: terminal,
		lexeme:   lexeme,
		span:     span,
	}
}

// EOF creates the end-of-input token, located at input position pos.
func EOF(pos uint64) DefaultToken {
	return DefaultToken{terminal: EOFName, span: Span{pos, pos}}
}

// Terminal is part of interface Token.
func (t DefaultToken) Terminal() string {
	return t.terminal
}

// Lexeme is part of interface Token.
func (t DefaultToken) Lexeme() string {
	return t.lexeme
}

// Span is part of interface Token.
func (t DefaultToken) Span() Span {
	return t.span
}

func (t DefaultToken) String() string {
	if t.lexeme == "" || t.lexeme == t.terminal {
		return t.terminal
	}
	return fmt.Sprintf("%s(%q)", t.terminal, t.lexeme)
}

// Tokens is a helper to create a token sequence from a list of terminal names.
// Every token gets its own name as lexeme and a span of its index. An EOF token
// is appended, if the list is not already terminated by one.
//
//	tokens := parsetab.Tokens("id", "+", "id")   // id + id $
func Tokens(terminals ...string) []Token {
	toks := make([]Token, 0, len(terminals)+1)
	for i, name := range terminals {
		if name == EOFName {
			toks = append(toks, EOF(uint64(i)))
			continue
		}
		toks = append(toks, MakeToken(name, name, Span{uint64(i), uint64(i + 1)}))
	}
	if len(toks) == 0 || toks[len(toks)-1].Terminal() != EOFName {
		toks = append(toks, EOF(uint64(len(terminals))))
	}
	return toks
}

// CheckInput validates a token sequence against the input contract of the
// parsers: it has to be terminated by exactly one EOF token.
func CheckInput(tokens []Token) error {
	if len(tokens) == 0 {
		return fmt.Errorf("%w: empty, missing %s", ErrInput, EOFName)
	}
	for i, tok := range tokens {
		if tok == nil {
			return fmt.Errorf("%w: nil token at position %d", ErrInput, i)
		}
		if tok.Terminal() == EOFName && i != len(tokens)-1 {
			return fmt.Errorf("%w: %s at position %d is not the last token", ErrInput, EOFName, i)
		}
	}
	if tokens[len(tokens)-1].Terminal() != EOFName {
		return fmt.Errorf("%w: not terminated by %s", ErrInput, EOFName)
	}
	return nil
}

// TerminalNames returns the terminal names of a token sequence.
func TerminalNames(tokens []Token) []string {
	names := make([]string, len(tokens))
	for i, tok := range tokens {
		names[i] = tok.Terminal()
	}
	return names
}

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a length of input token run. For every
// terminal, a parse tree will track which input positions
// this symbol covers. A span denotes a start position and the position just
// behind the end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

func (s Span) IsNull() bool {
	return s == Span{}
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
