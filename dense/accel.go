package dense

import "github.com/densemat/densedfa/simd"

// accel describes a start state whose search can skip ahead using a SIMD
// memchr scan instead of single-byte table lookups. It exists when the
// start state has between one and three "exit" classes — columns whose
// transition leaves the start state — each holding a single byte value,
// and every other class self-loops
// back to the start state (never to dead). This mirrors
// dfa/lazy/builder.go's DetectAcceleration in the teacher: a distinctive
// leading byte (as in `foo[0-9]+`) lets the search kernels jump straight to
// the next occurrence of that byte while the DFA is sitting in its start
// state, since every byte that is not a leading byte is guaranteed to come
// right back to start.
//
// Acceleration additionally requires the start state itself not be a match
// state: if it were, every self-looped byte would also need to update the
// leftmost-first "last match seen" bookkeeping, which a pure memchr skip
// cannot do without re-deriving per-byte state anyway.
type accel struct {
	bytes [3]byte
	n     int
}

// startAccel computes c's acceleration descriptor, if any. It is cheap
// enough (one pass over a single row) to recompute per search call rather
// than caching on core, since cores are also shared via View and are never
// mutated once frozen.
func (c *core[S]) startAccel() (accel, bool) {
	if c.alphabetLen == 0 || c.IsMatchState(c.start) {
		return accel{}, false
	}

	row := c.trans[c.offset(c.start) : c.offset(c.start)+c.alphabetLen]
	var a accel
	for class, next := range row {
		if next == c.start {
			continue
		}
		if next == deadID[S]() {
			// A dead exit means bytes outside the skip set end the search
			// entirely rather than merely advancing past the start state;
			// that can't be expressed as a pure memchr skip.
			return accel{}, false
		}
		if a.n == len(a.bytes) {
			return accel{}, false
		}
		b := c.representativeByte(byte(class))
		if c.kind.IsByteClass() {
			// memchr looks for b alone, so any other byte of the same
			// class would be skipped over without leaving the start state.
			for x := int(b) + 1; x < 256; x++ {
				if c.byteClasses[x] == byte(class) {
					return accel{}, false
				}
			}
		}
		a.bytes[a.n] = b
		a.n++
	}
	if a.n == 0 {
		return accel{}, false
	}
	return a, true
}

// representativeByte returns one raw byte value that maps to class under
// this core's alphabet, used to turn a column index back into a concrete
// byte memchr can search for.
func (c *core[S]) representativeByte(class byte) byte {
	if !c.kind.IsByteClass() {
		return class
	}
	for b := 0; b < 256; b++ {
		if c.byteClasses[b] == class {
			return byte(b)
		}
	}
	// Unreachable given invariant 5 (every class in [0, alphabetLen) is
	// assigned to at least one byte).
	return class
}

// skip returns the offset of the first byte in bytes that is one of a's
// exit bytes, or len(bytes) if none occurs. Every byte before that offset
// is guaranteed to self-loop back to the start state, so callers may
// advance directly to the returned offset without stepping the table.
func (a accel) skip(bytes []byte) int {
	var idx int
	switch a.n {
	case 1:
		idx = simd.Memchr(bytes, a.bytes[0])
	case 2:
		idx = simd.Memchr2(bytes, a.bytes[0], a.bytes[1])
	case 3:
		idx = simd.Memchr3(bytes, a.bytes[0], a.bytes[1], a.bytes[2])
	default:
		return len(bytes)
	}
	if idx < 0 {
		return len(bytes)
	}
	return idx
}
