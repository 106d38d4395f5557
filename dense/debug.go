package dense

import (
	"fmt"
	"strconv"
	"strings"
)

// String renders every state of the DFA, one line each, in the style
//
//	D 0000:
//	 *0001:
//	  0002: b => 1
//	> 0003: a => 2
//
// where the first status column marks the dead state (D) or the start
// state (>), the second marks match states (*), and transitions to the
// dead state are left out. For a byte-class DFA the ranges shown are class
// indices rather than literal bytes.
func (c *core[S]) String() string {
	var b strings.Builder
	it := c.Iter()
	for {
		id, st, ok := it.Next()
		if !ok {
			break
		}
		first, second := byte(' '), byte(' ')
		if id == deadID[S]() {
			first = 'D'
		} else if id == c.start {
			first = '>'
		}
		if st.IsMatch() {
			second = '*'
		}
		fmt.Fprintf(&b, "%c%c%04d: %s\n", first, second, uint64(id), formatTransitions(st))
	}
	return b.String()
}

func formatTransitions[S ID](st State[S]) string {
	dead := deadID[S]()
	var parts []string
	for _, sp := range st.SparseTransitions() {
		if sp.Next == dead {
			continue
		}
		if sp.Lo == sp.Hi {
			parts = append(parts, fmt.Sprintf("%s => %d", escapeByte(sp.Lo), uint64(sp.Next)))
		} else {
			parts = append(parts, fmt.Sprintf("%s-%s => %d", escapeByte(sp.Lo), escapeByte(sp.Hi), uint64(sp.Next)))
		}
	}
	return strings.Join(parts, ", ")
}

// escapeByte renders b for debug output: printable ASCII other than the
// backslash as itself, the backslash as \\, and every other byte as a
// two-digit \xXX hex escape.
func escapeByte(b byte) string {
	if b >= 0x20 && b < 0x7f && b != '\\' {
		return string(b)
	}
	if b == '\\' {
		return `\\`
	}
	s := strconv.FormatUint(uint64(b), 16)
	if len(s) == 1 {
		s = "0" + s
	}
	return `\x` + s
}
