/*
Package parsetree implements the concrete syntax trees produced by the parsers
of this module.

Parsers create a Node for every symbol they recognize. Leafs are terminals,
the end-of-input marker and epsilon; interior nodes are non-terminals with one
child per symbol of the rule which was applied. Every node is owned by exactly
one parent, trees never contain cycles.

A tree may be printed as an indented outline, one line per node:

    E
      T
        F
          id "x"
        T'
          ε
      E'
        ε

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package parsetree
