package dense

// Construction API, exposed to external producers (a determinizer and a
// minimizer). None of these operations are safe to call concurrently with
// searches or with each other; a DFA under construction has a single
// exclusive owner until it is frozen.

// AddEmptyState appends a new state whose every transition points at the
// dead state, and returns its identifier.
//
// It fails with StateIDOverflow when the next identifier would exceed the
// maximum representable by S.
func (d *DFA[S]) AddEmptyState() (S, error) {
	var id S
	if d.stateCount == 0 {
		id = 0
	} else {
		next := uint64(d.stateCount - 1) + 1
		if next > idMax[S]() {
			return 0, errStateIDOverflow(idMax[S]())
		}
		id = S(next)
	}
	d.trans = append(d.trans, make([]S, d.alphabetLen)...)
	d.stateCount++
	return id, nil
}

// SetTransition stores to as the successor of from on input byte b.
func (d *DFA[S]) SetTransition(from S, b byte, to S) {
	class := d.byteToClass(b)
	i := d.offset(from) + int(class)
	d.trans[i] = to
}

// SetStartState sets the DFA's initial state. id must be a valid state,
// i.e. id < StateCount().
func (d *DFA[S]) SetStartState(id S) {
	if int(id) >= d.stateCount {
		panic("dense: start state id out of range")
	}
	d.start = id
}

// SetMaxMatchState directly sets the match/non-match boundary. Used by the
// minimizer after it has already re-partitioned match states.
func (d *DFA[S]) SetMaxMatchState(id S) {
	d.maxMatch = id
}

// row returns the mutable transition row for state id.
func (d *DFA[S]) row(id S) []S {
	i := d.offset(id)
	return d.trans[i : i+d.alphabetLen]
}

// SwapStates exchanges the transition rows of states a and b in place.
// Identifiers stored elsewhere in the table are not rewritten; callers that
// need that (e.g. ShuffleMatchStates, the minimizer) must do it themselves.
func (d *DFA[S]) SwapStates(a, b S) {
	oa, ob := d.offset(a), d.offset(b)
	for i := 0; i < d.alphabetLen; i++ {
		d.trans[oa+i], d.trans[ob+i] = d.trans[ob+i], d.trans[oa+i]
	}
}

// TruncateStates drops every state at index n and beyond. The caller must
// guarantee that no surviving transition points into the truncated range.
func (d *DFA[S]) TruncateStates(n int) {
	d.trans = d.trans[:n*d.alphabetLen]
	d.stateCount = n
}

// ShuffleMatchStates reorders states in place so that match states occupy a
// contiguous range immediately after the dead state, establishing the
// partition invariant "[dead] [match...] [non-match...]".
//
// isMatch must have one entry per current state (isMatch[id] says whether
// state id is a match state). This operation is illegal on a premultiplied
// DFA: it swaps whole rows and rewrites stored identifiers through a swap
// table, both of which assume unpremultiplied (dense, per-state) ids.
func (d *DFA[S]) ShuffleMatchStates(isMatch []bool) {
	if d.kind.IsPremultiplied() {
		panic("dense: cannot shuffle match states of a premultiplied DFA")
	}
	firstNonMatch := 1
	for firstNonMatch < d.stateCount && isMatch[firstNonMatch] {
		firstNonMatch++
	}

	dead := deadID[S]()
	swaps := make([]S, d.stateCount)
	for i := range swaps {
		swaps[i] = dead
	}

	cur := d.stateCount - 1
	for cur > firstNonMatch {
		if isMatch[cur] {
			d.SwapStates(S(cur), S(firstNonMatch))
			swaps[cur] = S(firstNonMatch)
			swaps[firstNonMatch] = S(cur)

			firstNonMatch++
			for firstNonMatch < cur && isMatch[firstNonMatch] {
				firstNonMatch++
			}
		}
		cur--
	}

	for id := 0; id < d.stateCount; id++ {
		row := d.row(S(id))
		for i, next := range row {
			if swaps[next] != dead {
				row[i] = swaps[next]
			}
		}
	}
	if swaps[d.start] != dead {
		d.start = swaps[d.start]
	}
	d.maxMatch = S(firstNonMatch - 1)
}
