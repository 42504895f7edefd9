/*
Package parsetab is a grammar-driven parsing toolbox for context-free grammars.

It derives FIRST and FOLLOW sets and a predictive parsing table from a grammar,
and drives two complementary parsing strategies over a token sequence:
table-driven top-down (LL(1)) and state-stack-driven bottom-up (shift-reduce over
an ACTION/GOTO table supplied by the client). Both strategies produce a parse tree
and a step-by-step trace of the derivation. Package structure is as follows:

■ grammar: Package grammar implements symbols, rules, grammars and their builders,
together with the FIRST/FOLLOW analysis.

■ ll: Package ll builds predictive parsing tables and implements the LL(1) parser.

■ lr: Package lr implements the shift-reduce parser driven by ACTION/GOTO tables.

■ parsetree and trace: Shared result types of both parsers.

■ scanner: Package scanner turns raw text into token sequences for a grammar.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package parsetab
