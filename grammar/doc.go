/*
Package grammar implements the lexical analysis of scriptlang statements.

There are two lexers, one per kind of expression:

The expression tokenizer splits the right hand side of an assignment into
brackets and words. It is a DFA built with lexmachine. Words are not
classified by the tokenizer; deciding whether a word is a number, an
operator or a variable reference is up to the evaluator.

The print lexer scans the argument of a print statement rune by rune and
splits it into string literals and variable references, separated by
commas:

   "n is ", $n, "!"

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package grammar

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'scriptlang.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("scriptlang.grammar")
}
