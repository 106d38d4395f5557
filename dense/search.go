package dense

// Search kernels. All of them share the same per-byte inner step:
//
//	next = trans[offset(state) + byteToClass(b)]
//
// and the same three-way classification of next via a single comparison
// against maxMatch: dead (next == 0), match (0 < next <= maxMatch), or
// ordinary (next > maxMatch). None of these methods allocate or block; they
// are safe to call concurrently from any number of goroutines against the
// same frozen DFA.
//
// IsMatch, ShortestMatch and Find additionally consult startAccel: when the
// start state qualifies (see accel.go), the scan jumps straight to the
// first byte that would actually move the DFA off its start state using a
// SIMD memchr, instead of stepping the table one byte at a time through the
// run of self-loop bytes. RFind does not: there is no efficient backward
// memchr in this package's simd surface, so reverse search always steps
// byte by byte.

// IsMatch reports whether bytes matches this DFA, short-circuiting as soon
// as the outcome is known (a dead or match state is reached).
func (c *core[S]) IsMatch(bytes []byte) bool {
	dead := deadID[S]()
	state := c.start
	if c.IsMatchState(state) {
		return true
	}
	i := 0
	if a, ok := c.startAccel(); ok {
		i = a.skip(bytes)
	}
	for ; i < len(bytes); i++ {
		next := c.trans[c.offset(state)+int(c.byteToClass(bytes[i]))]
		if next == dead {
			return false
		}
		if next <= c.maxMatch {
			return true
		}
		state = next
	}
	return c.IsMatchState(state)
}

// ShortestMatch returns the byte offset just past the first matching byte
// (1-based position) and true, or (0, false) if no match is found before a
// dead state (or the end of input) is reached. Unlike Find, it does not continue scanning
// once any match state is reached, so it may return a shorter match than
// the leftmost-first match Find would report.
//
// Per spec.md §4.3, shortest_match behaves the same as is_match with
// respect to the start state: a DFA whose start state is itself a match
// state (any pattern admitting an empty match, e.g. `a*` or `x?`) matches
// the empty string, which is always the shortest possible match, so this
// is checked before stepping into the byte loop at all.
func (c *core[S]) ShortestMatch(bytes []byte) (int, bool) {
	dead := deadID[S]()
	state := c.start
	if c.IsMatchState(state) {
		return 0, true
	}
	i := 0
	if a, ok := c.startAccel(); ok {
		i = a.skip(bytes)
	}
	for ; i < len(bytes); i++ {
		next := c.trans[c.offset(state)+int(c.byteToClass(bytes[i]))]
		if next == dead {
			return 0, false
		}
		if next <= c.maxMatch {
			return i + 1, true
		}
		state = next
	}
	return 0, false
}

// Find returns the end offset of the leftmost-first match and true, or
// (0, false) if none exists. Reaching a match state does not return immediately: the kernel
// remembers the offset and keeps extending through additional match states
// until it hits a dead state or runs out of input, because leftmost-first
// semantics may prefer a longer match sharing the same leftmost start (the
// determinizer encodes that branch priority into the NFA state ordering
// before subset construction, and the DFA simply follows it).
func (c *core[S]) Find(bytes []byte) (int, bool) {
	dead := deadID[S]()
	state := c.start
	lastMatch := -1
	if c.IsMatchState(state) {
		lastMatch = 0
	}
	i := 0
	if a, ok := c.startAccel(); ok {
		i = a.skip(bytes)
	}
	for ; i < len(bytes); i++ {
		next := c.trans[c.offset(state)+int(c.byteToClass(bytes[i]))]
		if next == dead {
			if lastMatch >= 0 {
				return lastMatch, true
			}
			return 0, false
		}
		if next <= c.maxMatch {
			lastMatch = i + 1
		}
		state = next
	}
	if lastMatch >= 0 {
		return lastMatch, true
	}
	return 0, false
}

// RFind runs the same leftmost-first algorithm as Find but walks bytes from
// end to start. It requires a DFA built over reversed transitions (an
// external concern: the determinizer must have compiled the pattern's
// reverse NFA) and returns the start offset of the leftmost-first match,
// i.e. the minimum index before which the match lies.
//
// Mixing forward and reverse search on the same DFA is undefined: RFind
// does not itself verify that the DFA was built in reverse.
func (c *core[S]) RFind(bytes []byte) (int, bool) {
	dead := deadID[S]()
	state := c.start
	lastMatch := -1
	if c.IsMatchState(state) {
		lastMatch = len(bytes)
	}
	for i := len(bytes) - 1; i >= 0; i-- {
		b := bytes[i]
		next := c.trans[c.offset(state)+int(c.byteToClass(b))]
		if next == dead {
			if lastMatch >= 0 {
				return lastMatch, true
			}
			return 0, false
		}
		if next <= c.maxMatch {
			lastMatch = i
		}
		state = next
	}
	if lastMatch >= 0 {
		return lastMatch, true
	}
	return 0, false
}
