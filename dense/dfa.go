// Package dense implements a table-based deterministic finite automaton for
// byte-oriented regular expression matching.
//
// A DFA is built incrementally by an external determinizer via the
// construction API (AddEmptyState, SetTransition, SetStartState,
// ShuffleMatchStates), optionally minimized and premultiplied, and then
// frozen for searching. Once frozen a DFA performs only reads and may be
// shared by any number of concurrent readers without locking.
//
// The package is parameterized over the state identifier's integer width
// (uint8, uint16, uint32 or uint64) via Go generics, matching the "generic
// id width" design described for this engine: callers trade a smaller
// representation for less memory and a smaller serialized form, at the
// cost of a construction-time overflow error if the DFA grows too large to
// fit.
package dense

// core holds a DFA's data independent of whether it is accessed through an
// owning DFA or a read-only View. Copying a core value copies only slice
// headers, so a View built from a DFA aliases the same backing arrays: this
// is what gives Borrow its zero-copy, shared-invariant semantics.
type core[S ID] struct {
	kind        Kind
	start       S
	stateCount  int
	maxMatch    S
	alphabetLen int
	byteClasses []byte // empty, or exactly 256 entries
	trans       []S    // row-major, stateCount * alphabetLen entries
}

// DFA is an owned, mutable-during-construction table-based automaton.
//
// The zero value is not usable; construct one with NewEmpty or
// NewEmptyByteClasses.
type DFA[S ID] struct {
	core[S]
}

// NewEmpty returns a DFA with a single dead state (id 0) and the full
// 256-byte alphabet. It never matches any input until states are added.
func NewEmpty[S ID]() *DFA[S] {
	return newEmptyWithByteClasses[S](nil)
}

// NewEmptyByteClasses returns a DFA with a single dead state whose alphabet
// is reduced to the equivalence classes described by byteClasses, a
// 256-entry mapping from byte value to class index. Class k must eventually
// be assigned to at least one byte for every k in [0, alphabetLen) once the
// determinizer finishes wiring transitions; NewEmptyByteClasses does not
// itself validate that.
func NewEmptyByteClasses[S ID](byteClasses []byte) *DFA[S] {
	if len(byteClasses) != 256 {
		panic("dense: byteClasses must have exactly 256 entries")
	}
	cp := make([]byte, 256)
	copy(cp, byteClasses)
	return newEmptyWithByteClasses[S](cp)
}

func newEmptyWithByteClasses[S ID](byteClasses []byte) *DFA[S] {
	kind := Basic
	alphabetLen := 256
	if byteClasses != nil {
		kind = ByteClass
		alphabetLen = int(byteClasses[255]) + 1
	}
	d := &DFA[S]{core[S]{
		kind:        kind,
		start:       deadID[S](),
		stateCount:  0,
		maxMatch:    0,
		alphabetLen: alphabetLen,
		byteClasses: byteClasses,
		trans:       nil,
	}}
	// Every representation must be able to hold at least the dead state.
	if _, err := d.AddEmptyState(); err != nil {
		panic("dense: impossible overflow adding the dead state: " + err.Error())
	}
	return d
}

// Kind reports how this DFA's state identifiers are encoded.
func (c *core[S]) Kind() Kind { return c.kind }

// Start returns the identifier of the initial state.
func (c *core[S]) Start() S { return c.start }

// StateCount returns the total number of states, including the dead state.
func (c *core[S]) StateCount() int { return c.stateCount }

// MaxMatch returns the largest state identifier that is a match state.
func (c *core[S]) MaxMatch() S { return c.maxMatch }

// AlphabetLen returns the number of columns per state in the transition
// table: 256 for non-byte-class kinds, or the number of equivalence classes
// otherwise.
func (c *core[S]) AlphabetLen() int { return c.alphabetLen }

// ByteClasses returns the 256-entry byte-to-class map, or nil if this DFA
// does not use byte classes (alphabetLen is always 256 in that case).
func (c *core[S]) ByteClasses() []byte { return c.byteClasses }

// IsMatchState reports whether id is a match state: nonzero and at most
// MaxMatch, per the dead/match/ordinary partition invariant.
func (c *core[S]) IsMatchState(id S) bool {
	return id != deadID[S]() && id <= c.maxMatch
}

// Borrow returns a read-only View sharing this DFA's backing transition
// table and byte-class map. No data is copied; both the DFA and the View
// observe the same memory, which is safe because a frozen DFA is never
// mutated concurrently with reads.
func (d *DFA[S]) Borrow() *View[S] {
	return &View[S]{d.core}
}

// View is a read-only, possibly-borrowed facade over a DFA's data. It
// exposes the same query operations as DFA (IsMatch, Find, ...) but none of
// the construction or transformation API, and may alias memory it does not
// own (see BorrowBytes).
type View[S ID] struct {
	core[S]
}

// byteToClass maps an input byte to its equivalence class, or returns it
// unchanged when this DFA does not use byte classes.
func (c *core[S]) byteToClass(b byte) byte {
	if c.kind.IsByteClass() {
		return c.byteClasses[b]
	}
	return b
}

// offset returns the row-start index into trans for state id.
func (c *core[S]) offset(id S) int {
	if c.kind.IsPremultiplied() {
		return int(id)
	}
	return int(id) * c.alphabetLen
}

// MemoryUsage returns the heap memory, in bytes, used by this DFA's
// transition table and byte-class map. It does not include the size of the
// DFA struct itself.
func (c *core[S]) MemoryUsage() int {
	n := len(c.trans) * idWidth[S]()
	n += len(c.byteClasses)
	return n
}
