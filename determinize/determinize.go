// Package determinize runs subset construction over a Thompson NFA to
// produce a table-based dense.DFA.
//
// Unlike a lazy, on-demand DFA cache, this determinizer is eager: it visits
// every reachable NFA subset up front and materializes the full transition
// table before returning. The algorithm mirrors the lazy cache's closure and
// word-boundary resolution rules, just run to completion instead of driven
// by search-time cache misses.
package determinize

import (
	"sort"
	"strconv"
	"strings"

	"github.com/densemat/densedfa/dense"
	"github.com/densemat/densedfa/nfa"
)

// lookSet is a bitmask of zero-width assertions known to hold at a given
// input position. Only the start-anchored assertions are threaded through
// per-byte epsilon closures; the end-anchored ones are only ever tested by
// the auxiliary end-of-input closure in computeMatch.
type lookSet uint8

const (
	lookStartText lookSet = 1 << iota
	lookStartLine
	lookEndText
	lookEndLine
)

func (s lookSet) has(look nfa.Look) bool {
	switch look {
	case nfa.LookStartText:
		return s&lookStartText != 0
	case nfa.LookStartLine:
		return s&lookStartLine != 0
	case nfa.LookEndText:
		return s&lookEndText != 0
	case nfa.LookEndLine:
		return s&lookEndLine != 0
	default:
		return false
	}
}

func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= '0' && b <= '9') ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z')
}

// epsilonClosure follows every Epsilon, Split and Capture transition reachable
// from seeds, plus Look transitions whose assertion is already satisfied per
// lookHave, and returns the reachable set sorted and deduplicated. The seeds
// themselves are included in the result.
func epsilonClosure(n *nfa.NFA, seeds []nfa.StateID, lookHave lookSet) []nfa.StateID {
	seen := make(map[nfa.StateID]bool, len(seeds)*2)
	out := make([]nfa.StateID, 0, len(seeds)*2)
	var stack []nfa.StateID

	push := func(id nfa.StateID) {
		if id == nfa.InvalidState || seen[id] {
			return
		}
		seen[id] = true
		out = append(out, id)
		stack = append(stack, id)
	}
	for _, s := range seeds {
		push(s)
	}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		st := n.State(cur)
		if st == nil {
			continue
		}
		switch st.Kind() {
		case nfa.StateEpsilon:
			push(st.Epsilon())
		case nfa.StateSplit:
			l, r := st.Split()
			push(l)
			push(r)
		case nfa.StateCapture:
			_, _, next := st.Capture()
			push(next)
		case nfa.StateLook:
			look, next := st.Look()
			if lookHave.has(look) {
				push(next)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// resolveWordBoundary expands any StateLook(LookWordBoundary/LookNoWordBoundary)
// state already present in states whose assertion matches satisfied, following
// the expansion through further Epsilon/Split/Capture/Look states. Word
// boundary context cannot be folded into lookSet the way line/text anchors
// can, because whether "\b holds here" depends on the previous input byte, not
// just on position, so it is resolved against each DFA state's own
// isFromWord flag instead of a closure-time constant.
func resolveWordBoundary(n *nfa.NFA, states []nfa.StateID, satisfied bool) []nfa.StateID {
	seen := make(map[nfa.StateID]bool, len(states))
	for _, s := range states {
		seen[s] = true
	}

	crosses := func(look nfa.Look) bool {
		switch look {
		case nfa.LookWordBoundary:
			return satisfied
		case nfa.LookNoWordBoundary:
			return !satisfied
		default:
			return false
		}
	}

	var stack []nfa.StateID
	push := func(id nfa.StateID) {
		if id == nfa.InvalidState || seen[id] {
			return
		}
		seen[id] = true
		stack = append(stack, id)
	}

	for _, s := range states {
		st := n.State(s)
		if st == nil || st.Kind() != nfa.StateLook {
			continue
		}
		if look, next := st.Look(); crosses(look) {
			push(next)
		}
	}
	if len(stack) == 0 {
		return states
	}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		st := n.State(cur)
		if st == nil {
			continue
		}
		switch st.Kind() {
		case nfa.StateLook:
			if look, next := st.Look(); crosses(look) {
				push(next)
			}
		case nfa.StateEpsilon:
			push(st.Epsilon())
		case nfa.StateSplit:
			l, r := st.Split()
			push(l)
			push(r)
		case nfa.StateCapture:
			_, _, next := st.Capture()
			push(next)
		}
	}

	out := make([]nfa.StateID, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// containsMatchState reports whether any state in states is an NFA match
// state.
func containsMatchState(n *nfa.NFA, states []nfa.StateID) bool {
	for _, id := range states {
		if n.IsMatch(id) {
			return true
		}
	}
	return false
}

// move computes the raw (pre-closure) set of states reached by consuming b
// from resolved, an already word-boundary-resolved closure.
func move(n *nfa.NFA, resolved []nfa.StateID, b byte) []nfa.StateID {
	seen := map[nfa.StateID]bool{}
	var targets []nfa.StateID
	add := func(id nfa.StateID) {
		if id == nfa.InvalidState || seen[id] {
			return
		}
		seen[id] = true
		targets = append(targets, id)
	}
	for _, sid := range resolved {
		st := n.State(sid)
		if st == nil {
			continue
		}
		switch st.Kind() {
		case nfa.StateByteRange:
			lo, hi, next := st.ByteRange()
			if b >= lo && b <= hi {
				add(next)
			}
		case nfa.StateSparse:
			for _, tr := range st.Transitions() {
				if b >= tr.Lo && b <= tr.Hi {
					add(tr.Next)
				}
			}
		}
	}
	return targets
}

// dstate is a subset-construction worklist entry: the closed NFA state set
// that a DFA state was built from, and whether it was reached by consuming a
// word byte (the context \b/\B resolution needs on its next step).
type dstate struct {
	states   []nfa.StateID
	fromWord bool
}

func key(states []nfa.StateID, fromWord bool) string {
	var b strings.Builder
	if fromWord {
		b.WriteByte('1')
	} else {
		b.WriteByte('0')
	}
	for _, id := range states {
		b.WriteByte(':')
		b.WriteString(strconv.FormatUint(uint64(id), 10))
	}
	return b.String()
}

// computeMatch decides whether the DFA state built from resolved (already
// word-boundary-resolved) NFA states must report a match, by additionally
// closing over end-of-text and end-of-line assertions. This mirrors checking
// "if input ended right here" once at construction time instead of carrying a
// runtime end-of-input column in the transition table.
func computeMatch(n *nfa.NFA, resolved []nfa.StateID, fromWord bool) bool {
	atEOI := resolveWordBoundary(n, resolved, fromWord)
	atEOI = epsilonClosure(n, atEOI, lookEndText|lookEndLine)
	return containsMatchState(n, atEOI)
}

// Options configures subset construction.
type Options struct {
	// Anchored selects the NFA's anchored start state. When false, the
	// unanchored (prefixed with an implicit (?s:.)*?) start state is used,
	// giving a DFA suitable for an unanchored search over a haystack.
	Anchored bool

	// ByteClasses enables alphabet compression using n's computed byte
	// equivalence classes. When false, the produced DFA uses the full
	// 256-byte alphabet and dense.Kind Basic/Premultiplied rather than
	// ByteClass/PremultipliedByteClass, matching spec.md's "byte-classes"
	// builder toggle.
	ByteClasses bool
}

// Determinize runs eager subset construction over n, producing a dense DFA
// whose state identifiers are encoded with the width S. When opts.ByteClasses
// is set, it reuses n's byte equivalence classes for alphabet compression;
// otherwise every byte is its own class. The result has not been minimized
// or premultiplied; call those separately if wanted.
func Determinize[S dense.ID](n *nfa.NFA, opts Options) (*dense.DFA[S], error) {
	bc := n.ByteClasses()
	if !opts.ByteClasses {
		singleton := nfa.SingletonByteClasses()
		bc = &singleton
	}
	reps := bc.Representatives()

	var d *dense.DFA[S]
	if opts.ByteClasses {
		classes := make([]byte, 256)
		for b := 0; b < 256; b++ {
			classes[b] = bc.Get(byte(b))
		}
		d = dense.NewEmptyByteClasses[S](classes)
	} else {
		d = dense.NewEmpty[S]()
	}

	startRaw := n.StartUnanchored()
	if opts.Anchored {
		startRaw = n.StartAnchored()
	}
	startClosed := epsilonClosure(n, []nfa.StateID{startRaw}, lookStartText|lookStartLine)

	ids := map[string]S{}
	var queue []dstate
	var idByIndex []S

	startID, err := d.AddEmptyState()
	if err != nil {
		return nil, err
	}
	d.SetStartState(startID)
	ids[key(startClosed, false)] = startID
	queue = append(queue, dstate{states: startClosed, fromWord: false})
	idByIndex = append(idByIndex, startID)

	var isMatch []bool
	grow := func(id S) {
		for len(isMatch) <= int(id) {
			isMatch = append(isMatch, false)
		}
	}
	grow(startID)

	for i := 0; i < len(queue); i++ {
		cur := queue[i]
		curID := idByIndex[i]

		resolved := resolveWordBoundary(n, cur.states, cur.fromWord)
		isMatch[curID] = computeMatch(n, cur.states, cur.fromWord)

		for _, rb := range reps {
			raw := move(n, resolved, rb)
			if len(raw) == 0 {
				continue
			}
			nextFromWord := isWordByte(rb)
			lookAfter := lookSet(0)
			if rb == '\n' {
				lookAfter = lookStartLine
			}
			closed := epsilonClosure(n, raw, lookAfter)
			k := key(closed, nextFromWord)

			nid, ok := ids[k]
			if !ok {
				nid, err = d.AddEmptyState()
				if err != nil {
					return nil, err
				}
				ids[k] = nid
				grow(nid)
				queue = append(queue, dstate{states: closed, fromWord: nextFromWord})
				idByIndex = append(idByIndex, nid)
			}
			d.SetTransition(curID, rb, nid)
		}
	}

	d.ShuffleMatchStates(isMatch)
	return d, nil
}
