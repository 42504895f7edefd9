/*
Package trace records the steps of a parse.

Every parser run creates a fresh Recorder and records one Step per
decision of the parser: matching a terminal, expanding a non-terminal by a
rule, shifting a token, reducing by a rule, accepting or failing. A step
captures the configuration the decision was made in, i.e. the stack (bottom
first) and the remaining input.

When the parse returns, the recording is frozen into an immutable Trace.
Traces of two runs over the same input and the same tables are equal.

    Step  Stack        Input          Action
    1     $ E          id + id $      Expand E ➞ T E'
    2     $ E' T       id + id $      Expand T ➞ F T'
    …

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package trace
