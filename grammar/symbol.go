package grammar

import "fmt"

// SymbolKind categorizes grammar symbols.
type SymbolKind int8

// Kinds of grammar symbols. Epsilon and EOF are pseudo-symbols with exactly one
// instance each.
const (
	NoSymbol SymbolKind = iota
	TerminalKind
	NonTerminalKind
	EpsilonKind
	EOFKind
)

func (k SymbolKind) String() string {
	switch k {
	case TerminalKind:
		return "terminal"
	case NonTerminalKind:
		return "non-terminal"
	case EpsilonKind:
		return "epsilon"
	case EOFKind:
		return "eof"
	}
	return "<no symbol>"
}

// Reserved symbol names.
const (
	EpsilonName    = "ε"
	EpsilonAltName = "epsilon"
	EOFName        = "$"
)

// Symbol is a grammar symbol. Symbols are small values and are comparable:
// two terminals (or two non-terminals) are equal iff their names are equal.
type Symbol struct {
	Name string
	kind SymbolKind
}

// Epsilon denotes the empty derivation. It appears only as the single symbol of
// an epsilon rule's right hand side.
var Epsilon = Symbol{Name: EpsilonName, kind: EpsilonKind}

// EOF is the end-of-input marker, which is treated as a terminal symbol for
// lookahead purposes.
var EOF = Symbol{Name: EOFName, kind: EOFKind}

// T creates a terminal symbol.
func T(name string) Symbol {
	return Symbol{Name: name, kind: TerminalKind}
}

// N creates a non-terminal symbol.
func N(name string) Symbol {
	return Symbol{Name: name, kind: NonTerminalKind}
}

// Kind returns the category of a symbol.
func (A Symbol) Kind() SymbolKind {
	return A.kind
}

// IsNil is true for the zero value of Symbol.
func (A Symbol) IsNil() bool {
	return A.kind == NoSymbol
}

// IsTerminal is true for terminals, but not for EOF.
func (A Symbol) IsTerminal() bool {
	return A.kind == TerminalKind
}

// IsNonTerminal is true for non-terminals.
func (A Symbol) IsNonTerminal() bool {
	return A.kind == NonTerminalKind
}

// IsEpsilon is true for Epsilon.
func (A Symbol) IsEpsilon() bool {
	return A.kind == EpsilonKind
}

// IsEOF is true for the end-of-input marker.
func (A Symbol) IsEOF() bool {
	return A.kind == EOFKind
}

// IsLookahead is true for symbols which may appear as input: terminals and EOF.
func (A Symbol) IsLookahead() bool {
	return A.kind == TerminalKind || A.kind == EOFKind
}

// IsLeaf is true for symbols which are always leafs of a parse tree.
func (A Symbol) IsLeaf() bool {
	return A.kind == TerminalKind || A.kind == EOFKind || A.kind == EpsilonKind
}

func (A Symbol) String() string {
	if A.kind == NoSymbol {
		return "<nil>"
	}
	return A.Name
}

// GoString is used for debugging output with %#v.
func (A Symbol) GoString() string {
	return fmt.Sprintf("%s(%s)", A.kind, A.Name)
}

// isReserved checks if a name is reserved for a pseudo-symbol.
func isReserved(name string) bool {
	return name == EpsilonName || name == EpsilonAltName || name == EOFName
}

// isEpsilonName checks if a name denotes epsilon.
func isEpsilonName(name string) bool {
	return name == EpsilonName || name == EpsilonAltName
}
