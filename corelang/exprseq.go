package corelang

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/emirpasic/gods/stacks/linkedliststack"
)

/*
----------------------------------------------------------------------

BSD License

Copyright (c) 2017–21, Norbert Pillmayer

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
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

----------------------------------------------------------------------

 * This module implements a sequence of expression members. It is used
 * for expression evaluation after an expression has been tokenized and
 * validated. Variables have already been resolved to their values at
 * that point, so operands are always known integers.
 *
 * Evaluation works by splicing: a sub-sequence (a bracketed group, or
 * operand-operator-operand) is replaced by a single operand holding its
 * value. Splicing always builds a new slice; positions recorded before
 * a splice have to be shifted by the caller.

*/

// === Expression Members ====================================================

// MemberKind is the category of an expression member.
type MemberKind int8

// Kinds of expression members
const (
	NoMember MemberKind = iota
	Operand
	OperatorSymbol
	OpenBracket
	CloseBracket
)

// Member is a member of an expression sequence.
type Member struct {
	Kind  MemberKind
	Value int64    // value of an Operand
	Op    Operator // operator of an OperatorSymbol
}

// Num creates an operand member.
func Num(v int64) Member {
	return Member{Kind: Operand, Value: v}
}

// Op creates an operator member.
func Op(op Operator) Member {
	return Member{Kind: OperatorSymbol, Op: op}
}

// Open creates an opening bracket member.
func Open() Member {
	return Member{Kind: OpenBracket}
}

// Close creates a closing bracket member.
func Close() Member {
	return Member{Kind: CloseBracket}
}

func (m Member) String() string {
	switch m.Kind {
	case Operand:
		return strconv.FormatInt(m.Value, 10)
	case OperatorSymbol:
		return m.Op.String()
	case OpenBracket:
		return "("
	case CloseBracket:
		return ")"
	}
	return "<none>"
}

// IsOperator is a predicate: is this member an operator of pass p?
func (m Member) IsOperator(p Pass) bool {
	return m.Kind == OperatorSymbol && p.Contains(m.Op)
}

// === Expression Sequence ===================================================

// Sequence is an ordered list of expression members.
type Sequence []Member

func (seq Sequence) String() string {
	var b strings.Builder
	for i, m := range seq {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(m.String())
	}
	return b.String()
}

// IndexOf returns the position of the first member of a given kind at or
// after position from, or -1.
func (seq Sequence) IndexOf(kind MemberKind, from int) int {
	for i := from; i < len(seq); i++ {
		if seq[i].Kind == kind {
			return i
		}
	}
	return -1
}

// IndexOfPass returns the position of the leftmost operator of pass p, or -1.
func (seq Sequence) IndexOfPass(p Pass) int {
	for i, m := range seq {
		if m.IsOperator(p) {
			return i
		}
	}
	return -1
}

// Splice replaces the members from..to (inclusive) by m and returns the
// resulting sequence. The receiver is left untouched.
func (seq Sequence) Splice(from, to int, m Member) Sequence {
	if from < 0 || to >= len(seq) || from > to {
		panic(fmt.Sprintf("illegal splice [%d…%d] of sequence of length %d", from, to, len(seq)))
	}
	s := make(Sequence, 0, len(seq)-(to-from))
	s = append(s, seq[:from]...)
	s = append(s, m)
	s = append(s, seq[to+1:]...)
	return s
}

// === Bracket Bookkeeping ===================================================

// BracketStack tracks open brackets while scanning a sequence from left
// to right. The size of the stack is the current bracket depth.
type BracketStack struct {
	stack *linkedliststack.Stack // positions of open brackets
}

// NewBracketStack creates an empty bracket stack.
func NewBracketStack() *BracketStack {
	return &BracketStack{stack: linkedliststack.New()}
}

// Open pushes the position of an opening bracket and returns the depth of
// this bracket, starting at 1 for outermost brackets.
func (bs *BracketStack) Open(pos int) int {
	bs.stack.Push(pos)
	return bs.stack.Size()
}

// Close pops the innermost open bracket and returns its position. If no
// bracket is open, Close returns -1 and false.
func (bs *BracketStack) Close() (int, bool) {
	pos, ok := bs.stack.Pop()
	if !ok {
		return -1, false
	}
	return pos.(int), true
}

// Depth returns the number of currently open brackets.
func (bs *BracketStack) Depth() int {
	return bs.stack.Size()
}

// IsBalanced is a predicate: are all brackets closed?
func (bs *BracketStack) IsBalanced() bool {
	return bs.stack.Empty()
}
