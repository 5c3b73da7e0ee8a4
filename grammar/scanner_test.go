package grammar

import (
	"bufio"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/scriptlang"
)

func lexemes(tokens []Token) []string {
	var l []string
	for _, t := range tokens {
		l = append(l, t.Lexeme)
	}
	return l
}

func TestTokenize(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scriptlang.grammar")
	defer teardown()
	//
	for i, x := range []struct {
		expr   string
		tokens []string
	}{
		{"1", []string{"1"}},
		{"2 + 3 * 4", []string{"2", "+", "3", "*", "4"}},
		{"(2 + 3) * (4 - 1)", []string{"(", "2", "+", "3", ")", "*", "(", "4", "-", "1", ")"}},
		{"((1+2))", []string{"(", "(", "1+2", ")", ")"}},
		{"  $a   +\t$b  ", []string{"$a", "+", "$b"}},
		{"1(2)", []string{"1", "(", "2", ")"}},
		{"5$x ä", []string{"5$x", "ä"}},
		{"1 \v+\f2", []string{"1", "+", "2"}},
		{"1\f+ 2", []string{"1", "+", "2"}},
		{"", nil},
		{"   ", nil},
	} {
		tokens, err := Tokenize(x.expr)
		if err != nil {
			t.Fatalf("test %d: %v", i, err)
		}
		if diff := cmp.Diff(x.tokens, lexemes(tokens)); diff != "" {
			t.Errorf("test %d: tokens of %q differ (-want +got):\n%s", i, x.expr, diff)
		}
	}
}

func TestTokenTypes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scriptlang.grammar")
	defer teardown()
	//
	tokens, err := Tokenize("($a)*2")
	if err != nil {
		t.Fatal(err)
	}
	expect := []TokType{LeftBracket, Word, RightBracket, Word}
	if len(tokens) != len(expect) {
		t.Fatalf("expected %d tokens, have %d", len(expect), len(tokens))
	}
	for i, tt := range expect {
		if tokens[i].Type != tt {
			t.Errorf("expected token #%d to be of type %s, is %s", i, tt, tokens[i].Type)
		}
	}
	if tokens[3].Pos != 4 {
		t.Errorf("expected '*2' to start at byte 4, starts at %d", tokens[3].Pos)
	}
}

func TestStreamLookahead(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scriptlang.grammar")
	defer teardown()
	//
	input := "te$t!"
	stream := newRuneStream(bufio.NewReader(strings.NewReader(input)))
	for i := 0; i < 5; i++ {
		r, err := stream.lookahead()
		if err != nil {
			t.Fatal(err)
		}
		if r != []rune(input)[i] {
			t.Errorf("expected rune #%d to be %#U, is %#U", i, input[i], r)
		}
		if i%2 == 0 {
			stream.match(r)
		} else {
			stream.skip()
		}
	}
	if _, err := stream.lookahead(); err != io.EOF {
		t.Errorf("expected EOF, have %v", err)
	}
	if stream.Lexeme() != "t$!" {
		t.Errorf("expected lexeme to be 't$!', is %q", stream.Lexeme())
	}
	if stream.pos != 5 {
		t.Errorf("expected 5 runes consumed, have %d", stream.pos)
	}
}

func TestPrintSegments(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scriptlang.grammar")
	defer teardown()
	//
	for i, x := range []struct {
		expr     string
		segments []Segment
	}{
		{`"hello"`, []Segment{{Literal: true, Text: "hello"}}},
		{`$n`, []Segment{{Text: "$n"}}},
		{`"n is ", $n`, []Segment{{Literal: true, Text: "n is "}, {Text: "$n"}}},
		{`$a,$b , "x"`, []Segment{{Text: "$a"}, {Text: "$b"}, {Literal: true, Text: "x"}}},
		{`"a, $b"`, []Segment{{Literal: true, Text: "a, $b"}}},
		{`, "a",, "b",`, []Segment{{Literal: true, Text: "a"}, {Literal: true, Text: "b"}}},
		{`$a   `, []Segment{{Text: "$a"}}},
		{`"", "x"`, []Segment{{Literal: true, Text: "x"}}},
		{`$`, []Segment{{Text: "$"}}},
		{`"ünï"`, []Segment{{Literal: true, Text: "ünï"}}},
		{`$a$b`, []Segment{{Text: "$a$b"}}},
		{`$$$, $$m`, []Segment{{Text: "$$$"}, {Text: "$$m"}}},
		{"\v$a,\f\"x\"", []Segment{{Text: "$a"}, {Literal: true, Text: "x"}}},
		{"\"\xff-\xfe\"", []Segment{{Literal: true, Text: "\xff-\xfe"}}},
	} {
		segs, err := ScanPrint(x.expr)
		if err != nil {
			t.Errorf("test %d: unexpected error for %q: %v", i, x.expr, err)
			continue
		}
		if diff := cmp.Diff(x.segments, segs); diff != "" {
			t.Errorf("test %d: segments of %q differ (-want +got):\n%s", i, x.expr, diff)
		}
	}
}

func TestPrintErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scriptlang.grammar")
	defer teardown()
	//
	for i, x := range []struct {
		expr   string
		reason scriptlang.Reason
	}{
		{`"a" "b"`, scriptlang.PrintSyntax},
		{`"a" $b`, scriptlang.PrintSyntax},
		{`$a "b"`, scriptlang.PrintSyntax},
		{`$a"`, scriptlang.PrintSyntax},
		{`$a $b`, scriptlang.PrintVariableName},
		{`hello`, scriptlang.PrintSyntax},
		{`"a"; "b"`, scriptlang.PrintSyntax},
		{`"abc`, scriptlang.PrintQuotes},
		{`"a", "b`, scriptlang.PrintQuotes},
		{`$a-b`, scriptlang.PrintVariableName},
		{`$a b, "x"`, scriptlang.PrintVariableName},
	} {
		_, err := ScanPrint(x.expr)
		if err == nil {
			t.Errorf("test %d: expected %q to fail", i, x.expr)
			continue
		}
		if r := scriptlang.ReasonOf(err); r != x.reason {
			t.Errorf("test %d: expected %q to fail with %s, failed with %s (%v)", i, x.expr, x.reason, r, err)
		}
		if scriptlang.KindOf(err) != scriptlang.MalformedExpression {
			t.Errorf("test %d: expected malformed expression, is %s", i, scriptlang.KindOf(err))
		}
	}
}
