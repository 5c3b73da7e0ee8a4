package evaluator

import (
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/scriptlang"
	"github.com/npillmayer/scriptlang/grammar"
	"github.com/npillmayer/scriptlang/variables"
)

// Operation is the behaviour of a statement keyword. expr is the text
// following the keyword.
type Operation interface {
	Perform(expr string, store *variables.Store) error
}

// OperationFunc adapts a function to the Operation interface.
type OperationFunc func(expr string, store *variables.Store) error

// Perform calls f(expr, store).
func (f OperationFunc) Perform(expr string, store *variables.Store) error {
	return f(expr, store)
}

// nop is the operation for comments.
var nop = OperationFunc(func(string, *variables.Store) error {
	return nil
})

// --- set -------------------------------------------------------------------

type setOperation struct{}

/*
Perform executes an assignment.

   set <name> = <expression>

The expression has to contain exactly one '=', with a valid variable name
on the left side and an arithmetic expression on the right side. The
value of the expression is stored, overwriting a previous value. If
anything fails, the store is left unchanged.
*/
func (setOperation) Perform(expr string, store *variables.Store) error {
	if strings.TrimSpace(expr) == "" {
		return scriptlang.Malformed(scriptlang.EmptyExpression, "",
			"set needs an expression")
	}
	if n := strings.Count(expr, "="); n != 1 {
		return scriptlang.Malformed(scriptlang.AssignOperator, "=",
			"expression must contain exactly one assignment operator, has %d", n)
	}
	parts := strings.SplitN(expr, "=", 2)
	name, rhs := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	if name == "" {
		return scriptlang.Malformed(scriptlang.MissingSide, "",
			"no variable to assign to")
	}
	if rhs == "" {
		return scriptlang.Malformed(scriptlang.MissingSide, name,
			"no value to assign to '%s'", name)
	}
	if !variables.IsValidName(name) {
		return scriptlang.Malformed(scriptlang.WrongVariableName, name,
			"'%s' is not a valid variable name, check variable naming", name)
	}
	v, err := NewEvaluator(store).Evaluate(rhs)
	if err != nil {
		return err
	}
	store.Set(name, v)
	return nil
}

// --- print -----------------------------------------------------------------

type printOperation struct {
	out io.Writer
}

/*
Perform outputs a line.

   print "literal", $var, ...

Segments are concatenated without separator. A variable without a value
is rendered as [null]. An empty expression prints an empty line.
*/
func (p printOperation) Perform(expr string, store *variables.Store) error {
	segments, err := grammar.ScanPrint(expr)
	if err != nil {
		return err
	}
	var b strings.Builder
	for _, seg := range segments {
		if seg.Literal {
			b.WriteString(seg.Text)
			continue
		}
		b.WriteString(variables.ValueString(variables.Resolve(store, seg.Text)))
	}
	if _, err := fmt.Fprintln(p.out, b.String()); err != nil {
		return fmt.Errorf("print: cannot write output: %w", err)
	}
	return nil
}
