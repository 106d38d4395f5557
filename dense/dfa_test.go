package dense

import "testing"

// buildToyDFA constructs a tiny DFA by hand for pattern "ab": state 0 is
// dead, state 1 is start, state 2 follows 'a', state 3 follows "ab" and is
// the only match state. It exercises the construction API the way an
// external determinizer would, without going through nfa/determinize.
func buildToyDFA(t *testing.T) *DFA[uint16] {
	t.Helper()
	d := NewEmpty[uint16]()

	s1, err := d.AddEmptyState()
	if err != nil {
		t.Fatalf("AddEmptyState: %v", err)
	}
	s2, err := d.AddEmptyState()
	if err != nil {
		t.Fatalf("AddEmptyState: %v", err)
	}
	s3, err := d.AddEmptyState()
	if err != nil {
		t.Fatalf("AddEmptyState: %v", err)
	}

	d.SetStartState(s1)
	d.SetTransition(s1, 'a', s2)
	d.SetTransition(s2, 'b', s3)

	isMatch := make([]bool, d.StateCount())
	isMatch[s3] = true
	d.ShuffleMatchStates(isMatch)
	return d
}

func TestNewEmptyHasOnlyDeadState(t *testing.T) {
	d := NewEmpty[uint8]()
	if d.StateCount() != 1 {
		t.Fatalf("StateCount() = %d, want 1", d.StateCount())
	}
	if d.Start() != 0 {
		t.Fatalf("Start() = %d, want 0 (dead)", d.Start())
	}
	if d.IsMatchState(0) {
		t.Fatalf("dead state must never be a match state")
	}
	if d.IsMatch([]byte("anything")) {
		t.Fatalf("empty DFA must not match anything")
	}
}

func TestAddEmptyStateOverflow(t *testing.T) {
	d := NewEmpty[uint8]()
	// uint8 allows ids 0..255; state 0 is the dead state, so 255 more can
	// be added before AddEmptyState must fail.
	for i := 0; i < 255; i++ {
		if _, err := d.AddEmptyState(); err != nil {
			t.Fatalf("AddEmptyState #%d: unexpected error %v", i, err)
		}
	}
	if _, err := d.AddEmptyState(); err == nil {
		t.Fatalf("AddEmptyState: expected StateIDOverflow, got nil")
	} else if derr, ok := err.(*Error); !ok || derr.Kind != StateIDOverflow {
		t.Fatalf("AddEmptyState: got %v, want StateIDOverflow", err)
	}
}

func TestShuffleMatchStatesPartition(t *testing.T) {
	d := buildToyDFA(t)
	// After shuffling, match states must occupy [1, maxMatch] contiguously.
	for id := 0; id < d.StateCount(); id++ {
		want := id != 0 && id <= int(d.MaxMatch())
		if got := d.IsMatchState(uint16(id)); got != want {
			t.Errorf("IsMatchState(%d) = %v, want %v", id, got, want)
		}
	}
	if !d.IsMatch([]byte("ab")) {
		t.Fatalf(`IsMatch("ab") = false, want true`)
	}
	if d.IsMatch([]byte("ac")) {
		t.Fatalf(`IsMatch("ac") = true, want false`)
	}
}

// TestShuffleMatchStatesSmallCounts exercises the exact boundary the
// construction API's early-return used to special-case incorrectly: a DFA
// with only the dead state plus one other state.
func TestShuffleMatchStatesSmallCounts(t *testing.T) {
	for _, matchSecond := range []bool{true, false} {
		d := NewEmpty[uint8]()
		s1, err := d.AddEmptyState()
		if err != nil {
			t.Fatalf("AddEmptyState: %v", err)
		}
		isMatch := make([]bool, d.StateCount())
		isMatch[s1] = matchSecond
		d.ShuffleMatchStates(isMatch)

		if got := d.IsMatchState(s1); got != matchSecond {
			t.Errorf("matchSecond=%v: IsMatchState(s1) = %v, want %v", matchSecond, got, matchSecond)
		}
	}
}

func TestFindLeftmostFirst(t *testing.T) {
	d := buildToyDFA(t)
	// "ab" only ever matches at one place; Find should report the end
	// offset once the match state is reached. Every transition out of the
	// match state goes dead in this toy DFA, so nothing can extend the
	// match.
	if end, ok := d.Find([]byte("ab")); !ok || end != 2 {
		t.Fatalf("Find(ab) = (%d, %v), want (2, true)", end, ok)
	}
	if _, ok := d.Find([]byte("xy")); ok {
		t.Fatalf("Find(xy) unexpectedly matched")
	}
}

func TestShortestMatchVsFind(t *testing.T) {
	d := buildToyDFA(t)
	short, ok := d.ShortestMatch([]byte("ab"))
	if !ok || short != 2 {
		t.Fatalf("ShortestMatch(ab) = (%d, %v), want (2, true)", short, ok)
	}
}

// TestShortestMatchEmptyStartMatch exercises spec.md §4.3's "shortest_match
// is the same as is_match" rule at the one place it's observable: a DFA
// whose start state is itself a match state (a pattern admitting an empty
// match) must report (0, true) immediately, regardless of what the rest of
// the input looks like.
func TestShortestMatchEmptyStartMatch(t *testing.T) {
	d := NewEmpty[uint16]()
	s1, err := d.AddEmptyState()
	if err != nil {
		t.Fatalf("AddEmptyState: %v", err)
	}
	d.SetStartState(s1)
	d.SetTransition(s1, 'x', s1)
	isMatch := make([]bool, d.StateCount())
	isMatch[s1] = true
	d.ShuffleMatchStates(isMatch)

	if short, ok := d.ShortestMatch([]byte("xxxxx")); !ok || short != 0 {
		t.Fatalf(`ShortestMatch("xxxxx") = (%d, %v), want (0, true)`, short, ok)
	}
	if short, ok := d.ShortestMatch(nil); !ok || short != 0 {
		t.Fatalf(`ShortestMatch(nil) = (%d, %v), want (0, true)`, short, ok)
	}
}

func TestPremultiplyPreservesSemantics(t *testing.T) {
	d := buildToyDFA(t)
	inputs := [][]byte{[]byte("ab"), []byte("a"), []byte("ac"), []byte("")}

	before := make([]bool, len(inputs))
	for i, in := range inputs {
		before[i] = d.IsMatch(in)
	}

	if err := d.Premultiply(); err != nil {
		t.Fatalf("Premultiply: %v", err)
	}
	if d.Kind() != PremultipliedByteClass && d.Kind() != Premultiplied {
		t.Fatalf("Kind() = %v, want a premultiplied kind", d.Kind())
	}
	for i, in := range inputs {
		if got := d.IsMatch(in); got != before[i] {
			t.Errorf("IsMatch(%q) after Premultiply = %v, want %v", in, got, before[i])
		}
	}
}

func TestToSizedOverflow(t *testing.T) {
	d := buildToyDFA(t) // 4 states: fits easily in uint8
	small, err := ToSized[uint16, uint8](d)
	if err != nil {
		t.Fatalf("ToSized[uint8]: unexpected error %v", err)
	}
	if !small.IsMatch([]byte("ab")) {
		t.Fatalf("ToSized result lost match semantics")
	}

	// Build a DFA with more states than uint8 can represent (> 255).
	big := NewEmpty[uint16]()
	for i := 0; i < 300; i++ {
		if _, err := big.AddEmptyState(); err != nil {
			t.Fatalf("AddEmptyState: %v", err)
		}
	}
	if _, err := ToSized[uint16, uint8](big); err == nil {
		t.Fatalf("ToSized[uint8] on an oversized DFA: expected StateIDOverflow")
	}
}

func TestMinimizePreservesLanguage(t *testing.T) {
	d := buildToyDFA(t)
	before := d.StateCount()
	inputs := [][]byte{[]byte("ab"), []byte("a"), []byte("ac"), []byte("")}
	want := make([]bool, len(inputs))
	for i, in := range inputs {
		want[i] = d.IsMatch(in)
	}

	if err := d.Minimize(); err != nil {
		t.Fatalf("Minimize: %v", err)
	}
	if d.StateCount() > before {
		t.Fatalf("Minimize grew state count: %d > %d", d.StateCount(), before)
	}
	for i, in := range inputs {
		if got := d.IsMatch(in); got != want[i] {
			t.Errorf("IsMatch(%q) after Minimize = %v, want %v", in, got, want[i])
		}
	}
}

func TestBorrowSharesInvariants(t *testing.T) {
	d := buildToyDFA(t)
	v := d.Borrow()
	if v.IsMatch([]byte("ab")) != d.IsMatch([]byte("ab")) {
		t.Fatalf("View and DFA disagree on IsMatch")
	}
	if v.StateCount() != d.StateCount() || v.MaxMatch() != d.MaxMatch() {
		t.Fatalf("View does not share DFA's invariants")
	}
}

func TestIterVisitsEveryState(t *testing.T) {
	d := buildToyDFA(t)
	seen := map[uint16]bool{}
	it := d.Iter()
	for {
		id, st, ok := it.Next()
		if !ok {
			break
		}
		seen[id] = true
		_ = st.IsMatch()
	}
	if len(seen) != d.StateCount() {
		t.Fatalf("Iter visited %d states, want %d", len(seen), d.StateCount())
	}
}

func TestStringDoesNotPanic(t *testing.T) {
	d := buildToyDFA(t)
	if d.String() == "" {
		t.Fatalf("String() returned empty output")
	}
}
