/*
Package ll implements predictive parsing for LL(1) grammars.

Parsing Tables

A predictive parsing table M has one row per non-terminal and one column per
terminal (plus the end-of-input marker $). A cell M[A, a] names the rule to
apply when A is on top of the parse stack and a is the current input token.
Tables are built from the FIRST and FOLLOW sets of a grammar:

    for every rule A ➞ α
        for every terminal a in FIRST(α):   put A ➞ α into M[A, a]
        if α ⇒* ε:
            for every b in FOLLOW(A):       put A ➞ α into M[A, b]

If a cell receives two different rules, the grammar is not LL(1). BuildTable
never overwrites a cell in such a case. Instead the cell is marked as a
Conflict, listing all the competing rules. Clients may inspect the conflicts
or call Table.Strict to reject the grammar.

    ga := grammar.Analyse(g)
    table := ll.BuildTable(g, ga.First(), ga.Follow())
    if err := table.Strict(); err != nil {
        …                     // err wraps ErrNotLL1
    }

Parsing

A Parser simulates the pushdown automaton for a table. It keeps a stack of
symbols, each paired with the parse tree node it will produce, and records
every step to a trace.

    p := ll.NewParser(table)
    tree, tr, err := p.Parse(parsetab.Tokens("id", "+", "id"))

Parsers do not hold state between calls to Parse and may be used
concurrently.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ll

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'parsetab.ll'.
func tracer() tracing.Trace {
	return tracing.Select("parsetab.ll")
}
