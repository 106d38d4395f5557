package dense

// ToSized retypes a DFA's state identifiers to a (usually narrower) integer
// representation T. It fails with StateIDOverflow if the largest identifier
// this DFA currently stores would not fit in T.
func ToSized[S ID, T ID](d *DFA[S]) (*DFA[T], error) {
	last := uint64(d.stateCount - 1)
	if d.kind.IsPremultiplied() {
		last *= uint64(d.alphabetLen)
	}
	if last > idMax[T]() {
		return nil, errStateIDOverflow(idMax[T]())
	}

	out := &DFA[T]{core[T]{
		kind:        d.kind,
		start:       T(d.start),
		stateCount:  d.stateCount,
		maxMatch:    T(d.maxMatch),
		alphabetLen: d.alphabetLen,
		trans:       make([]T, len(d.trans)),
	}}
	if len(d.byteClasses) > 0 {
		out.byteClasses = make([]byte, len(d.byteClasses))
		copy(out.byteClasses, d.byteClasses)
	}
	for i, id := range d.trans {
		out.trans[i] = T(id)
	}
	return out, nil
}

// Premultiply rewrites every stored state identifier (transitions, start,
// maxMatch) to already be multiplied by alphabetLen, so that table indexing
// during search reduces to trans[id + class] instead of
// trans[id*alphabetLen + class].
//
// Premultiply is terminal: on a DFA that is already premultiplied it does
// nothing and returns nil, and a premultiplied DFA can no longer be
// shuffled or minimized (only retyped via ToSized). It fails with PremultiplyOverflow if
// (stateCount-1)*alphabetLen would exceed S's maximum.
func (d *DFA[S]) Premultiply() error {
	if d.kind.IsPremultiplied() || d.stateCount == 0 {
		return nil
	}

	alphaLen := uint64(d.alphabetLen)
	largest := uint64(d.stateCount-1) * alphaLen
	if largest > idMax[S]() {
		return errPremultiplyOverflow(idMax[S]())
	}

	for id := 0; id < d.stateCount; id++ {
		row := d.row(S(id))
		for i, next := range row {
			row[i] = S(uint64(next) * alphaLen)
		}
	}
	d.kind = d.kind.premultiplied()
	d.start = S(uint64(d.start) * alphaLen)
	d.maxMatch = S(uint64(d.maxMatch) * alphaLen)
	return nil
}
