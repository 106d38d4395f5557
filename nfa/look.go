package nfa

import "fmt"

// Look identifies a zero-width assertion checked at a particular input
// position rather than consumed from it. A StateLook state transitions to
// its next state only if the assertion holds at the current position; the
// determinizer resolves that by tracking which assertions are satisfied at
// each offset and filtering StateLook edges during epsilon closure.
type Look uint8

const (
	// LookStartText is \A: only the very start of the haystack.
	LookStartText Look = iota
	// LookEndText is \z: only the very end of the haystack.
	LookEndText
	// LookStartLine is ^ under multi-line mode: start of haystack or just
	// after a '\n'.
	LookStartLine
	// LookEndLine is $ under multi-line mode: end of haystack or just
	// before a '\n'.
	LookEndLine
	// LookWordBoundary is \b: a transition between a word byte and a
	// non-word byte (or an edge of the haystack adjacent to a word byte).
	LookWordBoundary
	// LookNoWordBoundary is \B: the complement of LookWordBoundary.
	LookNoWordBoundary
)

// String renders the assertion using its regex syntax spelling.
func (l Look) String() string {
	switch l {
	case LookStartText:
		return `\A`
	case LookEndText:
		return `\z`
	case LookStartLine:
		return "^"
	case LookEndLine:
		return "$"
	case LookWordBoundary:
		return `\b`
	case LookNoWordBoundary:
		return `\B`
	default:
		return fmt.Sprintf("Look(%d)", uint8(l))
	}
}
