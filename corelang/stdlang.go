package corelang

import (
	"math"

	"github.com/npillmayer/scriptlang"
)

// Operator is one of the binary arithmetic operators.
type Operator byte

// The standard operators
const (
	NoOp  Operator = 0
	Times Operator = '*'
	Div   Operator = '/'
	Minus Operator = '-'
	Plus  Operator = '+'
)

func (op Operator) String() string {
	if op == NoOp {
		return "<no-op>"
	}
	return string(rune(op))
}

// OperatorFromLexeme returns the operator a lexeme denotes, or NoOp.
func OperatorFromLexeme(lexeme string) Operator {
	if len(lexeme) != 1 {
		return NoOp
	}
	switch op := Operator(lexeme[0]); op {
	case Times, Div, Minus, Plus:
		return op
	}
	return NoOp
}

// Pass is a set of operators of equal precedence.
type Pass []Operator

// Contains is a predicate: is op part of this pass?
func (p Pass) Contains(op Operator) bool {
	for _, o := range p {
		if o == op {
			return true
		}
	}
	return false
}

// StandardPasses lists the reduction passes in order of execution.
// Subtraction is a pass of its own, reduced before addition.
var StandardPasses = []Pass{
	{Times, Div},
	{Minus},
	{Plus},
}

// Apply calculates x op y.
func (op Operator) Apply(x, y int64) (int64, error) {
	switch op {
	case Plus:
		r := x + y
		if (r > x) != (y > 0) {
			return 0, overflow(op, x, y)
		}
		return r, nil
	case Minus:
		r := x - y
		if (r < x) != (y > 0) {
			return 0, overflow(op, x, y)
		}
		return r, nil
	case Times:
		if x == 0 || y == 0 {
			return 0, nil
		}
		r := x * y
		if r/y != x || (x == -1 && y == math.MinInt64) || (y == -1 && x == math.MinInt64) {
			return 0, overflow(op, x, y)
		}
		return r, nil
	case Div:
		if y == 0 {
			return 0, scriptlang.Arithmetic(scriptlang.DivisionByZero, op.String(),
				"division by zero in '%d / %d'", x, y)
		}
		if x == math.MinInt64 && y == -1 {
			return 0, overflow(op, x, y)
		}
		return x / y, nil
	}
	tracer().Errorf("illegal operator %v", op)
	return 0, scriptlang.Malformed(scriptlang.InvalidValue, op.String(),
		"'%s' is not an arithmetic operator", op)
}

func overflow(op Operator, x, y int64) error {
	return scriptlang.Arithmetic(scriptlang.IntegerOverflow, op.String(),
		"integer overflow in '%d %s %d'", x, op, y)
}
