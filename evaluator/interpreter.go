package evaluator

import (
	"errors"
	"io"
	"strings"

	"github.com/npillmayer/scriptlang"
	"github.com/npillmayer/scriptlang/variables"
)

// Interpreter interprets scriptlang programs.
type Interpreter struct {
	store *variables.Store     // variables of the current run
	ops   map[string]Operation // operations by keyword
}

// NewInterpreter creates a new interpreter. Output of print statements is
// written to out.
func NewInterpreter(out io.Writer) *Interpreter {
	intp := &Interpreter{
		store: variables.NewStore(),
		ops:   make(map[string]Operation),
	}
	intp.ops["#"] = nop
	intp.ops["set"] = setOperation{}
	intp.ops["print"] = printOperation{out: out}
	return intp
}

// Run executes a script, one statement per line. Execution stops at the
// first failing statement; the error returned carries its line number.
// When Run returns, the variable store is empty.
func (intp *Interpreter) Run(lines []string) error {
	defer intp.Reset()
	return intp.Include(lines)
}

// Include executes a script like Run, but keeps the variables for
// subsequent statements.
func (intp *Interpreter) Include(lines []string) error {
	tracer().Debugf("running script of %d lines", len(lines))
	for i, line := range lines {
		if err := intp.Exec(line); err != nil {
			var serr *scriptlang.ScriptError
			if errors.As(err, &serr) {
				serr.AtLine(i + 1)
			}
			return err
		}
	}
	return nil
}

// Exec executes a single statement against the current variable store.
// Blank lines are a no-op.
func (intp *Interpreter) Exec(line string) error {
	stmt := strings.TrimSpace(line)
	if stmt == "" {
		return nil
	}
	keyword, expr, _ := strings.Cut(stmt, " ")
	op, err := intp.fetch(keyword)
	if err != nil {
		return err.InStatement(stmt)
	}
	tracer().P("op", keyword).Debugf("%s", expr)
	if err := op.Perform(expr, intp.store); err != nil {
		var serr *scriptlang.ScriptError
		if errors.As(err, &serr) {
			serr.InStatement(stmt)
		}
		tracer().P("op", keyword).Errorf("%v", err)
		return err
	}
	return nil
}

// fetch the operation belonging to a keyword.
func (intp *Interpreter) fetch(keyword string) (Operation, *scriptlang.ScriptError) {
	op, ok := intp.ops[keyword]
	if !ok {
		tracer().Errorf("cannot find operation %s", keyword)
		return nil, scriptlang.Unsupported(keyword)
	}
	return op, nil
}

// Reset empties the variable store.
func (intp *Interpreter) Reset() {
	if intp.store.Len() > 0 {
		tracer().Debugf("dropping variables:\n%s", intp.store.Show(nil))
	}
	intp.store.Reset()
}

// Variables returns a copy of the current variable bindings.
func (intp *Interpreter) Variables() map[string]int64 {
	return intp.store.Snapshot()
}

// Store returns the variable store of the interpreter.
func (intp *Interpreter) Store() *variables.Store {
	return intp.store
}
