package dense

// State is a read-only view of one DFA row: its identifier and its
// per-byte transitions.
type State[S ID] struct {
	ID   S
	core *core[S]
}

// Next returns the successor state reached from b.
func (s State[S]) Next(b byte) S {
	class := s.core.byteToClass(b)
	return s.core.trans[s.core.offset(s.ID)+int(class)]
}

// IsMatch reports whether this state is a match state.
func (s State[S]) IsMatch() bool {
	return s.core.IsMatchState(s.ID)
}

// SparseTransition is a coalesced run of consecutive byte values (in
// [Lo, Hi]) that all transition to the same Next state.
type SparseTransition[S ID] struct {
	Lo, Hi byte
	Next   S
}

// SparseTransitions coalesces this state's transition row into runs of
// adjacent input bytes sharing the same successor. It is intended for
// pretty-printing only: the search kernels always index the dense table
// directly.
//
// The byte values yielded are the state's own alphabet columns: for a
// byte-class DFA those are class indices, not literal byte values.
func (s State[S]) SparseTransitions() []SparseTransition[S] {
	n := s.core.alphabetLen
	if n == 0 {
		return nil
	}
	row := s.core.trans[s.core.offset(s.ID) : s.core.offset(s.ID)+n]

	var out []SparseTransition[S]
	lo := 0
	cur := row[0]
	for i := 1; i < n; i++ {
		if row[i] != cur {
			out = append(out, SparseTransition[S]{Lo: byte(lo), Hi: byte(i - 1), Next: cur})
			lo = i
			cur = row[i]
		}
	}
	out = append(out, SparseTransition[S]{Lo: byte(lo), Hi: byte(n - 1), Next: cur})
	return out
}

// StateIter yields every state of a DFA in identifier order. It holds no
// mutable state of its own beyond a cursor, so it may be restarted freely
// by calling Iter again; the underlying transition table never changes
// under it.
type StateIter[S ID] struct {
	core  *core[S]
	chunk int
}

// Iter returns a fresh iterator over this DFA's states, starting at state 0.
func (c *core[S]) Iter() *StateIter[S] {
	return &StateIter[S]{core: c, chunk: 0}
}

// Next returns the next (id, State) pair, or ok=false once every state has
// been visited. For a premultiplied DFA, the yielded id is
// chunk*alphabetLen (the row offset), matching how premultiplied
// identifiers are stored everywhere else; for a non-premultiplied DFA the
// yielded id is simply chunk.
func (it *StateIter[S]) Next() (id S, st State[S], ok bool) {
	if it.chunk >= it.core.stateCount {
		return 0, State[S]{}, false
	}
	n := it.chunk
	it.chunk++
	if it.core.kind.IsPremultiplied() {
		id = S(n * it.core.alphabetLen)
	} else {
		id = S(n)
	}
	return id, State[S]{ID: id, core: it.core}, true
}
