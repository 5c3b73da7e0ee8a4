package evaluator

import (
	"strconv"

	"github.com/npillmayer/scriptlang"
	"github.com/npillmayer/scriptlang/corelang"
	"github.com/npillmayer/scriptlang/grammar"
	"github.com/npillmayer/scriptlang/variables"
)

// Evaluator computes the value of arithmetic expressions. Variable
// references are resolved with a read-only lookup; an evaluator never
// changes any variable.
type Evaluator struct {
	vars variables.Lookup
}

// NewEvaluator creates an evaluator resolving variables in vars.
func NewEvaluator(vars variables.Lookup) *Evaluator {
	return &Evaluator{vars: vars}
}

// Evaluate computes the value of expression expr.
//
// The expression is tokenized and then validated in a single left to
// right scan, which resolves literals and variable references to integer
// operands. The first error found during the scan is returned. Brackets
// left open are detected at the end of the scan.
// Valid expressions are reduced by corelang.Evaluate.
func (ev *Evaluator) Evaluate(expr string) (int64, error) {
	tokens, err := grammar.Tokenize(expr)
	if err != nil {
		return 0, err
	}
	if len(tokens) == 0 {
		return 0, scriptlang.Malformed(scriptlang.EmptyExpression, "",
			"expression is empty")
	}
	seq, brackets, err := ev.validate(tokens)
	if err != nil {
		tracer().Errorf("expression '%s': %v", expr, err)
		return 0, err
	}
	tracer().Debugf("validated expression: %v", seq)
	v, err := corelang.Evaluate(seq, brackets)
	if err != nil {
		tracer().Errorf("expression '%s': %v", expr, err)
		return 0, err
	}
	tracer().Debugf("%s = %d", expr, v)
	return v, nil
}

// validate converts tokens into a sequence of expression members. The
// position of each opening bracket is recorded together with its depth.
func (ev *Evaluator) validate(tokens []grammar.Token) (corelang.Sequence, corelang.BracketIndex, error) {
	seq := make(corelang.Sequence, 0, len(tokens))
	brackets := make(corelang.BracketIndex)
	bs := corelang.NewBracketStack()
	var first *scriptlang.ScriptError // first error in scan order
	fail := func(err *scriptlang.ScriptError) {
		if first == nil {
			first = err
		}
	}
	prev := corelang.NoMember
	for i, tok := range tokens {
		switch tok.Type {
		case grammar.LeftBracket:
			if prev == corelang.Operand || prev == corelang.CloseBracket {
				fail(missingOperator(tok))
			}
			brackets[i] = bs.Open(i)
			seq = append(seq, corelang.Open())
		case grammar.RightBracket:
			if _, ok := bs.Close(); !ok {
				fail(bracketMismatch())
			}
			if prev == corelang.OperatorSymbol {
				fail(misplaced(tokens[i-1]))
			}
			seq = append(seq, corelang.Close())
		default:
			if op := corelang.OperatorFromLexeme(tok.Lexeme); op != corelang.NoOp {
				if prev == corelang.NoMember || prev == corelang.OperatorSymbol || prev == corelang.OpenBracket {
					fail(misplaced(tok))
				}
				seq = append(seq, corelang.Op(op))
				break
			}
			if prev == corelang.Operand || prev == corelang.CloseBracket {
				fail(missingOperator(tok))
			}
			v, err := ev.value(tok.Lexeme)
			if err != nil {
				fail(err)
			}
			seq = append(seq, corelang.Num(v))
		}
		prev = seq[len(seq)-1].Kind
	}
	if prev == corelang.OperatorSymbol {
		fail(misplaced(tokens[len(tokens)-1]))
	}
	if !bs.IsBalanced() {
		fail(bracketMismatch())
	}
	if first != nil {
		return nil, nil, first
	}
	return seq, brackets, nil
}

// value resolves a word, which is neither a bracket nor an operator, to an
// integer. It is either a decimal literal or a variable reference.
func (ev *Evaluator) value(word string) (int64, *scriptlang.ScriptError) {
	if variables.IsReference(word) {
		if !variables.IsValidName(word) {
			return 0, scriptlang.Malformed(scriptlang.WrongVariableName, word,
				"variable '%s' has an invalid name, check variable naming", word)
		}
		v, ok := variables.Resolve(ev.vars, word)
		if !ok {
			return 0, scriptlang.Malformed(scriptlang.UnassignedVariable, word,
				"variable '%s' has not been assigned a value", word)
		}
		return v, nil
	}
	if !isDecimal(word) {
		return 0, invalidValue(word)
	}
	v, err := strconv.ParseInt(word, 10, 64)
	if err != nil {
		return 0, invalidValue(word)
	}
	return v, nil
}

func isDecimal(word string) bool {
	for i := 0; i < len(word); i++ {
		if word[i] < '0' || word[i] > '9' {
			return false
		}
	}
	return word != ""
}

func invalidValue(word string) *scriptlang.ScriptError {
	return scriptlang.Malformed(scriptlang.InvalidValue, word,
		"'%s' is neither a number nor a variable", word)
}

func bracketMismatch() *scriptlang.ScriptError {
	return scriptlang.Malformed(scriptlang.BracketMismatch, "",
		"brackets are not balanced, check brackets")
}

func missingOperator(tok grammar.Token) *scriptlang.ScriptError {
	return scriptlang.Malformed(scriptlang.MissingOperator, tok.Lexeme,
		"missing operator before '%s' at position %d", tok.Lexeme, tok.Pos+1)
}

func misplaced(tok grammar.Token) *scriptlang.ScriptError {
	return scriptlang.Malformed(scriptlang.OperatorPosition, tok.Lexeme,
		"operator '%s' at position %d is in wrong position", tok.Lexeme, tok.Pos+1)
}
