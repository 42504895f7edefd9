package parsetree

import (
	"bufio"
	"io"
	"strings"
)

// Print writes a tree as an indented outline, one line per node, indented by two
// spaces per level.
func Print(w io.Writer, root *Node) error {
	bw := bufio.NewWriter(w)
	root.Walk(func(n *Node, depth int) bool {
		bw.WriteString(strings.Repeat("  ", depth))
		bw.WriteString(n.Label())
		bw.WriteByte('\n')
		return true
	})
	return bw.Flush()
}

// Outline returns the indented outline of a tree as a string.
func Outline(root *Node) string {
	var b strings.Builder
	Print(&b, root)
	return b.String()
}

// LeveledItem is a node label together with its depth, as consumed by
// tree renderers.
type LeveledItem struct {
	Level int
	Text  string
}

// Leveled flattens a tree into a list of labels with depth information, in
// depth-first order.
func (n *Node) Leveled() []LeveledItem {
	var items []LeveledItem
	n.Walk(func(c *Node, depth int) bool {
		items = append(items, LeveledItem{Level: depth, Text: c.Label()})
		return true
	})
	return items
}
