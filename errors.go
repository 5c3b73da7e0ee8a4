package scriptlang

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies script errors. Every kind aborts the current run.
type ErrorKind int8

// Kinds of script errors
const (
	NoError              ErrorKind = iota
	UnsupportedOperation           // statement keyword not recognized
	MalformedExpression            // syntax error in a statement
	ArithmeticFault                // runtime fault while computing a value
)

func (k ErrorKind) String() string {
	switch k {
	case NoError:
		return "no error"
	case UnsupportedOperation:
		return "unsupported operation"
	case MalformedExpression:
		return "malformed expression"
	case ArithmeticFault:
		return "arithmetic fault"
	}
	return fmt.Sprintf("<illegal error kind: %d>", k)
}

// Reason is a fine grained classification of a script error.
type Reason int8

// Reasons for script errors
const (
	Unspecified        Reason = iota
	UnknownKeyword            // keyword is neither '#', 'print' nor 'set'
	EmptyExpression           // set without an expression
	AssignOperator            // zero or more than one '='
	MissingSide               // no variable or no value around '='
	WrongVariableName         // name violates the naming rule
	UnassignedVariable        // variable has no value in the store
	InvalidValue              // token is neither number, operator nor variable
	MissingOperator           // two operands without an operator in between
	OperatorPosition          // operator follows an operator or ends a group
	BracketMismatch           // brackets do not balance
	NoResult                  // expression did not reduce to a single value
	PrintSyntax               // unexpected symbol or missing comma in print
	PrintQuotes               // unterminated string literal in print
	PrintVariableName         // variable segment of print violates the naming rule
	DivisionByZero            // integer division by 0
	IntegerOverflow           // result does not fit into an int64
)

var reasonNames = map[Reason]string{
	Unspecified:        "unspecified",
	UnknownKeyword:     "unknown keyword",
	EmptyExpression:    "empty expression",
	AssignOperator:     "assignment operator",
	MissingSide:        "missing side of assignment",
	WrongVariableName:  "wrong variable name",
	UnassignedVariable: "unassigned variable",
	InvalidValue:       "invalid value",
	MissingOperator:    "missing operator",
	OperatorPosition:   "operator in wrong position",
	BracketMismatch:    "bracket mismatch",
	NoResult:           "no result",
	PrintSyntax:        "print syntax",
	PrintQuotes:        "quote marks",
	PrintVariableName:  "print variable naming",
	DivisionByZero:     "division by zero",
	IntegerOverflow:    "integer overflow",
}

func (r Reason) String() string {
	if s, ok := reasonNames[r]; ok {
		return s
	}
	return fmt.Sprintf("<illegal reason: %d>", r)
}

// ScriptError is the error type returned for any failing statement.
// Clients may retrieve it with errors.As and test its kind with errors.Is
// against ErrUnsupportedOperation, ErrMalformedExpression or ErrArithmetic.
type ScriptError struct {
	Kind      ErrorKind
	Reason    Reason
	Token     string // offending token or segment, if any
	Statement string // statement text as written in the script
	Line      int    // 1-based script line, 0 if unknown
	msg       string
}

// Sentinel errors, one per error kind.
var (
	ErrUnsupportedOperation error = &ScriptError{Kind: UnsupportedOperation}
	ErrMalformedExpression  error = &ScriptError{Kind: MalformedExpression}
	ErrArithmetic           error = &ScriptError{Kind: ArithmeticFault}
)

// Unsupported creates an error for an unrecognized statement keyword.
func Unsupported(keyword string) *ScriptError {
	return &ScriptError{
		Kind:   UnsupportedOperation,
		Reason: UnknownKeyword,
		Token:  keyword,
		msg:    fmt.Sprintf("such operation as '%s' is not supported", keyword),
	}
}

// Malformed creates an error for a syntactically wrong statement.
// format and args describe the error in a human readable way.
func Malformed(reason Reason, token string, format string, args ...interface{}) *ScriptError {
	return &ScriptError{
		Kind:   MalformedExpression,
		Reason: reason,
		Token:  token,
		msg:    fmt.Sprintf(format, args...),
	}
}

// Arithmetic creates an error for a fault during computation.
func Arithmetic(reason Reason, token string, format string, args ...interface{}) *ScriptError {
	return &ScriptError{
		Kind:   ArithmeticFault,
		Reason: reason,
		Token:  token,
		msg:    fmt.Sprintf(format, args...),
	}
}

// InStatement records the statement text an error belongs to, if not
// already set. It returns the receiver.
func (e *ScriptError) InStatement(stmt string) *ScriptError {
	if e.Statement == "" {
		e.Statement = stmt
	}
	return e
}

// AtLine records the script line an error belongs to, if not already set.
// It returns the receiver.
func (e *ScriptError) AtLine(line int) *ScriptError {
	if e.Line == 0 {
		e.Line = line
	}
	return e
}

func (e *ScriptError) Error() string {
	var b strings.Builder
	if e.Line > 0 {
		fmt.Fprintf(&b, "line %d: ", e.Line)
	}
	if e.Statement != "" {
		fmt.Fprintf(&b, "statement '%s' is invalid: ", e.Statement)
	}
	if e.msg != "" {
		b.WriteString(e.msg)
	} else {
		b.WriteString(e.Kind.String())
	}
	return b.String()
}

// Is makes errors.Is match script errors of equal kind. A sentinel with
// a Reason set matches only errors with the same reason.
func (e *ScriptError) Is(target error) bool {
	t, ok := target.(*ScriptError)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Reason == Unspecified || t.Reason == e.Reason
}

// ReasonOf returns the reason of a script error, or Unspecified if err does
// not wrap a *ScriptError.
func ReasonOf(err error) Reason {
	var serr *ScriptError
	if errors.As(err, &serr) {
		return serr.Reason
	}
	return Unspecified
}

// KindOf returns the kind of a script error, or NoError if err does
// not wrap a *ScriptError.
func KindOf(err error) ErrorKind {
	var serr *ScriptError
	if errors.As(err, &serr) {
		return serr.Kind
	}
	return NoError
}
