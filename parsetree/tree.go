package parsetree

import (
	"fmt"

	"github.com/npillmayer/parsetab"
	"github.com/npillmayer/parsetab/grammar"
)

// Node is a node of a parse tree.
type Node struct {
	Symbol   grammar.Symbol // grammar symbol this node stands for
	Token    parsetab.Token // input token for terminals, nil otherwise
	Children []*Node        // sub-trees in order of the RHS of the rule applied
}

// NewNode creates a node for a grammar symbol.
func NewNode(A grammar.Symbol) *Node {
	return &Node{Symbol: A}
}

// Leaf creates a leaf node for a terminal, carrying an input token.
func Leaf(A grammar.Symbol, tok parsetab.Token) *Node {
	return &Node{Symbol: A, Token: tok}
}

// IsLeaf is true for nodes of terminals, EOF and epsilon. A non-terminal without
// children is not a leaf, it is an incomplete (or zero-length) derivation.
func (n *Node) IsLeaf() bool {
	return n.Symbol.IsLeaf()
}

// Append adds children to n and returns n.
func (n *Node) Append(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// Span returns the input span covered by the sub-tree, derived from the tokens
// of its leafs. Sub-trees without tokens return a null span.
func (n *Node) Span() parsetab.Span {
	var span parsetab.Span
	first := true
	n.Walk(func(c *Node, _ int) bool {
		if c.Token == nil || c.Symbol.IsEOF() {
			return true
		}
		s := c.Token.Span()
		if first {
			span, first = s, false
		} else {
			span[1] = s.To()
		}
		return true
	})
	return span
}

// Yield returns the terminal names of the leafs, left to right. Epsilon and EOF
// leafs are skipped.
func (n *Node) Yield() []string {
	var y []string
	n.Walk(func(c *Node, _ int) bool {
		if c.Symbol.IsTerminal() {
			y = append(y, c.Symbol.Name)
		}
		return true
	})
	return y
}

// StripEpsilon returns a copy of the tree without epsilon leafs.
// Tokens are shared between the original and the copy.
func (n *Node) StripEpsilon() *Node {
	if n == nil {
		return nil
	}
	c := &Node{Symbol: n.Symbol, Token: n.Token}
	for _, ch := range n.Children {
		if ch == nil || ch.Symbol.IsEpsilon() {
			continue
		}
		c.Children = append(c.Children, ch.StripEpsilon())
	}
	return c
}

// Equal checks if two trees are structurally equal, i.e., have the same symbols
// in the same shape. Tokens are not compared.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.Symbol != other.Symbol || len(n.Children) != len(other.Children) {
		return false
	}
	for i, ch := range n.Children {
		if !ch.Equal(other.Children[i]) {
			return false
		}
	}
	return true
}

// Walk visits the tree in depth-first pre-order, calling f for every node with
// its depth (the root has depth 0). If f returns false, the children of a node
// are skipped.
func (n *Node) Walk(f func(node *Node, depth int) bool) {
	n.walk(f, 0)
}

func (n *Node) walk(f func(*Node, int) bool, depth int) {
	if n == nil {
		return
	}
	if !f(n, depth) {
		return
	}
	for _, ch := range n.Children {
		ch.walk(f, depth+1)
	}
}

// Label returns a one-line description of a node: the symbol name, followed by
// the lexeme if it differs from the name.
func (n *Node) Label() string {
	if n.Token != nil {
		if lx := n.Token.Lexeme(); lx != "" && lx != n.Symbol.Name {
			return fmt.Sprintf("%s %q", n.Symbol, lx)
		}
	}
	return n.Symbol.String()
}

func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	return n.Label()
}
