/*
Package corelang implements the arithmetic core of scriptlang.

Language Features

Expressions are sequences of members: integer operands, the binary
operators + - * / and brackets. Evaluation reduces such a sequence
step by step. Brackets are collapsed innermost first, then operators are
reduced in passes, one pass per precedence level:

   * and /   (left to right, equal precedence)
   -
   +

Each pass repeatedly reduces the leftmost occurrence of one of its
operators, until none is left. Division truncates toward zero.

Arithmetic faults (division by zero, overflow of int64) are reported as
errors, never as wrong results.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package corelang

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'scriptlang.core'.
func tracer() tracing.Trace {
	return tracing.Select("scriptlang.core")
}
