/*
Package evaluator executes scriptlang statements.

The interpreter takes a script as a list of lines and executes them one
after another. Each line is dispatched on its first word:

   #      comment, the rest of the line is ignored
   set    assignment of an integer expression to a variable
   print  output of string literals and variable values

Blank lines are ignored. Any other keyword aborts the run, as does the
first malformed statement or arithmetic fault. All errors are of type
*scriptlang.ScriptError and carry the line number and text of the failing
statement.

Variables live in a variables.Store owned by the interpreter. After a
script run the store is empty again, whether the run succeeded or not.
For interactive use, Exec executes single statements against the current
store without resetting it.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package evaluator

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'scriptlang.evaluator'.
func tracer() tracing.Trace {
	return tracing.Select("scriptlang.evaluator")
}
