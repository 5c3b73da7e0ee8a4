package corelang

// Reduction of expression sequences to a single value.

import (
	"sort"

	"github.com/npillmayer/scriptlang"
)

// BracketIndex maps the position of each opening bracket in a sequence to
// its nesting depth, starting at 1 for outermost brackets.
type BracketIndex map[int]int

type opening struct {
	pos   int // position of the opening bracket
	depth int // nesting depth
}

// order returns the openings sorted for collapsing: deepest brackets
// first, brackets of equal depth from left to right.
func (bx BracketIndex) order() []opening {
	list := make([]opening, 0, len(bx))
	for pos, depth := range bx {
		list = append(list, opening{pos: pos, depth: depth})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].depth != list[j].depth {
			return list[i].depth > list[j].depth
		}
		return list[i].pos < list[j].pos
	})
	return list
}

// Evaluate reduces a validated sequence to its value. Brackets, listed in
// brackets, are collapsed first, innermost first.
func Evaluate(seq Sequence, brackets BracketIndex) (int64, error) {
	if len(brackets) > 0 {
		var err error
		if seq, err = CollapseBrackets(seq, brackets); err != nil {
			return 0, err
		}
	}
	return ReduceFlat(seq)
}

// CollapseBrackets replaces every bracketed group of seq by its value.
// Groups are processed in order of decreasing depth, groups of equal depth
// from left to right. The closing bracket of a group is the next ')' to
// the right of its opening bracket; as deeper groups are gone by then, this
// is the matching one.
func CollapseBrackets(seq Sequence, brackets BracketIndex) (Sequence, error) {
	openings := brackets.order()
	for k := range openings {
		start := openings[k].pos
		if start < 0 || start >= len(seq) || seq[start].Kind != OpenBracket {
			tracer().Errorf("bracket index out of sync at position %d of %v", start, seq)
			return nil, mismatch(seq)
		}
		end := seq.IndexOf(CloseBracket, start)
		if end < 0 {
			return nil, mismatch(seq)
		}
		v, err := ReduceFlat(seq[start+1 : end])
		if err != nil {
			return nil, err
		}
		tracer().Debugf("bracket group at %d (depth %d) = %d", start, openings[k].depth, v)
		seq = seq.Splice(start, end, Num(v))
		shift := end - start
		for j := range openings {
			if openings[j].pos > start {
				openings[j].pos -= shift
			}
		}
	}
	return seq, nil
}

// ReduceFlat reduces a sequence without brackets. Operators are reduced
// pass by pass, see StandardPasses. Within a pass the leftmost operator
// is reduced first, together with its left and right neighbour operands.
func ReduceFlat(seq Sequence) (int64, error) {
	for _, pass := range StandardPasses {
		for i := seq.IndexOfPass(pass); i >= 0; i = seq.IndexOfPass(pass) {
			if i == 0 || i == len(seq)-1 || seq[i-1].Kind != Operand || seq[i+1].Kind != Operand {
				return 0, scriptlang.Malformed(scriptlang.OperatorPosition, seq[i].String(),
					"operator '%s' is in wrong position", seq[i])
			}
			r, err := seq[i].Op.Apply(seq[i-1].Value, seq[i+1].Value)
			if err != nil {
				return 0, err
			}
			seq = seq.Splice(i-1, i+1, Num(r))
		}
	}
	if len(seq) != 1 || seq[0].Kind != Operand {
		return 0, scriptlang.Malformed(scriptlang.NoResult, seq.String(),
			"expression '%s' has no result", seq)
	}
	return seq[0].Value, nil
}

func mismatch(seq Sequence) error {
	return scriptlang.Malformed(scriptlang.BracketMismatch, "",
		"brackets do not match in '%s', check brackets", seq)
}
