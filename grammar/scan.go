package grammar

/*
BSD License

Copyright (c) 2019–21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.  */

import (
	"fmt"
	"strings"
	"sync"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// TokType is the category of an expression token.
type TokType int

// Token categories of the expression tokenizer
const (
	Word         TokType = iota + 1 // anything between whitespace and brackets
	LeftBracket                     // (
	RightBracket                    // )
)

func (t TokType) String() string {
	switch t {
	case Word:
		return "word"
	case LeftBracket:
		return "("
	case RightBracket:
		return ")"
	}
	return fmt.Sprintf("<illegal token type: %d>", t)
}

// Token is a single member of a tokenized expression.
type Token struct {
	Type   TokType
	Lexeme string
	Pos    int // byte offset into the expression
}

func (t Token) String() string {
	return t.Lexeme
}

// Every byte of an expression matches one of these patterns, hence the
// tokenizer never fails on unconsumed input. Whitespace is literal bytes
// in the patterns, not lexmachine escapes.
const (
	wordPattern  = "[^() \t\n\v\f\r]+"
	spacePattern = "[ \t\n\v\f\r]+"
)

var exprLexer *lexmachine.Lexer // compiled once, in initLexer()
var lexerErr error              // result of compiling exprLexer
var initOnce sync.Once          // monitors one-time initialization

func initLexer() {
	initOnce.Do(func() {
		lexer := lexmachine.NewLexer()
		lexer.Add([]byte(`\(`), makeToken(LeftBracket))
		lexer.Add([]byte(`\)`), makeToken(RightBracket))
		lexer.Add([]byte(wordPattern), makeToken(Word))
		lexer.Add([]byte(spacePattern), skip)
		if lexerErr = lexer.Compile(); lexerErr != nil {
			tracer().Errorf("cannot compile expression lexer: %v", lexerErr)
			return
		}
		exprLexer = lexer
	})
}

func makeToken(t TokType) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(int(t), string(m.Bytes), m), nil
	}
}

func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// Tokenize splits an arithmetic expression into brackets and words.
// Brackets are tokens of their own, even without surrounding whitespace;
// all other tokens are delimited by whitespace.
//
//    (2+ $a)*3  ⟹  "(", "2+", "$a", ")", "*3"
//
// An empty or blank expression results in an empty token slice.
func Tokenize(expr string) ([]Token, error) {
	initLexer()
	if lexerErr != nil {
		return nil, lexerErr
	}
	var tokens []Token
	if strings.TrimSpace(expr) == "" {
		return tokens, nil
	}
	scanner, err := exprLexer.Scanner([]byte(expr))
	if err != nil {
		return nil, err
	}
	for tok, err, eof := scanner.Next(); !eof; tok, err, eof = scanner.Next() {
		if err != nil {
			tracer().Errorf("expression lexer: %v", err)
			return nil, err
		}
		lmtok := tok.(*lexmachine.Token)
		tokens = append(tokens, Token{
			Type:   TokType(lmtok.Type),
			Lexeme: string(lmtok.Lexeme),
			Pos:    lmtok.TC,
		})
	}
	tracer().Debugf("tokenized %q into %v", expr, tokens)
	return tokens, nil
}
