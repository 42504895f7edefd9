/*
Package grammar implements context-free grammars and their static analysis.

Building a Grammar

Grammars are specified using a grammar builder object. Clients add
rules, consisting of non-terminal symbols and terminals. Grammars may
contain epsilon-productions.

Example:

    b := grammar.NewBuilder("G")
    b.LHS("E").N("T").N("E'").End()          // E  ➞ T E'
    b.LHS("E'").T("+").N("T").N("E'").End()  // E' ➞ + T E'
    b.LHS("E'").Epsilon()                    // E' ➞ ε
    b.LHS("T").T("id").End()                 // T  ➞ id
    g, err := b.Grammar()

The first LHS defines the start symbol, unless clients call b.Start(…).
Grammars may as well be read from a Spec or from a textual grammar
description, see Parse.

A grammar is checked upon creation. Every non-terminal used in a right hand
side has to have at least one rule, the start symbol has to have a rule,
and the reserved names for epsilon and end-of-input must not be used as
ordinary symbols. Violations are reported as a *MalformedError.

Static Grammar Analysis

After the grammar is complete, it may be analysed. ComputeFirst and
ComputeFollow compute FIRST and FOLLOW sets by fixed-point iteration;
Analyse bundles both.

    ga := grammar.Analyse(g)
    for _, A := range g.NonTerminals() {
        fmt.Printf("FIRST(%s) = %v\n", A, ga.First().Of(A))
    }

    // Output:
    FIRST(E) = [( id]
    FIRST(E') = [+]         // E' is nullable: ga.First().CanDeriveEmpty(E') == true
    …

FIRST and FOLLOW sets are immutable once computed and may be shared between
goroutines.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package grammar

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'parsetab.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("parsetab.grammar")
}
