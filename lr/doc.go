/*
Package lr implements a shift-reduce parser driven by LR parse tables.

Parse Tables

The parser does not construct its tables from a grammar. Tables are
supplied by clients, either built in code with a Builder or read from a JSON
description (see ReadTables). Tables consist of

- a list of productions, addressed by their position in the list,
- an ACTION table, mapping (state, terminal) to shift, reduce or accept,
- a GOTO table, mapping (state, non-terminal) to a state,
- the initial state.

Example, for the productions

    0: S' ➞ E
    1: E  ➞ E + id
    2: E  ➞ id

an SLR(1) table may be built like this:

    b := lr.NewBuilder()
    b.Production("S'", "E")
    b.Production("E", "E", "+", "id")
    b.Production("E", "id")
    b.Shift(0, "id", 2).Goto(0, "E", 1)
    b.Shift(1, "+", 3).Accept(1)
    b.Reduce(2, "+", 2).Reduce(2, "$", 2)
    b.Shift(3, "id", 4)
    b.Reduce(4, "+", 1).Reduce(4, "$", 1)
    tables, err := b.Tables()

Every cell holds at most one action. The builder rejects tables with
double entries, i.e. shift/reduce or reduce/reduce conflicts.

Parsing

A Parser keeps a stack of states and a parallel stack of parse tree nodes.
Shifting a token pushes a leaf; reducing by a production A ➞ X1…Xn pops n
nodes and pushes a node for A holding them as children. Reductions by
zero-length productions pop nothing and push a node without children.
On accept, the single node left is the root of the parse tree.

    p := lr.NewParser(tables)
    tree, tr, err := p.Parse(parsetab.Tokens("id", "+", "id"))

Every step is recorded to a trace. Stack snapshots interleave states and
symbols, e.g. "0 E 1 + 3".

For simple, unambiguous grammars clients may alternatively use a
HandleParser, which does without states altogether, reducing the longest
suffix of the symbol stack that matches a production.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'parsetab.lr'.
func tracer() tracing.Trace {
	return tracing.Select("parsetab.lr")
}
