package grammar

import (
	"io"
	"strings"

	"github.com/npillmayer/scriptlang"
	"github.com/npillmayer/scriptlang/variables"
)

// Segment is a piece of a print expression: either a string literal or a
// variable reference.
type Segment struct {
	Literal bool   // is this a string literal?
	Text    string // literal text without quotes, or reference including sigil
}

func (seg Segment) String() string {
	if seg.Literal {
		return `"` + seg.Text + `"`
	}
	return seg.Text
}

// PrintLexer splits print expressions into segments.
//
// The lexer is either outside of any segment, reading a string literal,
// or reading a variable reference. Outside of segments only blanks,
// commas, quotes and the sigil are allowed. A variable reference extends
// up to the next comma, quote or the end of input. Two consecutive segments must
// be separated by a comma; surplus commas are ignored.
type PrintLexer struct {
	stream   *runeStream
	state    pstate
	segments []Segment
	comma    bool // has a comma been seen since the last segment?
}

type pstate int

const (
	state_outside pstate = iota
	state_literal
	state_variable
)

// NewPrintLexer creates a lexer for the print expression read from reader.
func NewPrintLexer(reader io.RuneReader) *PrintLexer {
	return &PrintLexer{stream: newRuneStream(reader)}
}

// ScanPrint splits a print expression into segments.
func ScanPrint(expr string) ([]Segment, error) {
	return NewPrintLexer(strings.NewReader(expr)).Segments()
}

// Segments scans the complete input and returns all segments in
// order of appearance, or the first error encountered. Errors are of type
// *scriptlang.ScriptError.
func (l *PrintLexer) Segments() ([]Segment, error) {
	for {
		r, err := l.stream.lookahead()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		if err := l.step(r); err != nil {
			tracer().Errorf("print lexer: %v", err)
			return nil, err
		}
	}
	switch l.state {
	case state_literal:
		return nil, scriptlang.Malformed(scriptlang.PrintQuotes, l.stream.Lexeme(),
			"unterminated string literal, check quote marks")
	case state_variable:
		if err := l.emitVariable(); err != nil {
			return nil, err
		}
	}
	tracer().Debugf("print segments: %v", l.segments)
	return l.segments, nil
}

// step consumes rune r, which is the lookahead of the stream.
func (l *PrintLexer) step(r rune) error {
	switch l.state {
	case state_outside:
		switch r {
		case ' ', '\t', '\v', '\f', '\r', '\n':
			l.stream.skip()
		case ',':
			if len(l.segments) > 0 {
				l.comma = true
			}
			l.stream.skip()
		case '"':
			if err := l.checkSeparated(r); err != nil {
				return err
			}
			l.stream.skip()
			l.state = state_literal
		case variables.Sigil:
			if err := l.checkSeparated(r); err != nil {
				return err
			}
			l.stream.match(r)
			l.state = state_variable
		default:
			return l.syntaxError(r, "unexpected symbol '%c' at position %d, check syntax",
				r, l.stream.pos+1)
		}
	case state_literal:
		if r == '"' {
			l.stream.skip()
			l.emitLiteral()
			l.state = state_outside
			return nil
		}
		l.stream.match(r)
	case state_variable:
		switch r {
		case ',':
			l.stream.skip()
			if err := l.emitVariable(); err != nil {
				return err
			}
			l.comma = true
			l.state = state_outside
		case '"':
			return l.syntaxError(r, "quote mark within variable name '%s', check syntax",
				l.stream.Lexeme())
		default: // '$' is part of the name, validity is checked on emit
			l.stream.match(r)
		}
	}
	return nil
}

// checkSeparated makes sure a new segment, starting with rune r, is
// separated from a previous one by a comma.
func (l *PrintLexer) checkSeparated(r rune) error {
	if len(l.segments) > 0 && !l.comma {
		return l.syntaxError(r, "missing comma before '%c' at position %d, check syntax",
			r, l.stream.pos+1)
	}
	return nil
}

// emitLiteral appends the current lexeme as a literal. Empty literals are
// dropped.
func (l *PrintLexer) emitLiteral() {
	if text := l.stream.Lexeme(); text != "" {
		l.segments = append(l.segments, Segment{Literal: true, Text: text})
		l.comma = false
	}
	l.stream.ResetLexeme()
}

func (l *PrintLexer) emitVariable() error {
	ref := strings.TrimSpace(l.stream.Lexeme())
	l.stream.ResetLexeme()
	if !variables.IsValidName(ref) {
		return scriptlang.Malformed(scriptlang.PrintVariableName, ref,
			"variable '%s' is not a valid variable name, check variable naming", ref)
	}
	l.segments = append(l.segments, Segment{Text: ref})
	l.comma = false
	return nil
}

func (l *PrintLexer) syntaxError(r rune, format string, args ...interface{}) error {
	return scriptlang.Malformed(scriptlang.PrintSyntax, string(r), format, args...)
}
