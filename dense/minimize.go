package dense

import "github.com/densemat/densedfa/internal/sparse"

// Minimize collapses Nerode-equivalent states using Hopcroft's partition
// refinement algorithm, then restores the dead/match/non-match contiguity
// invariant via ShuffleMatchStates.
//
// Minimize is illegal on a premultiplied DFA, for the same reason
// ShuffleMatchStates is: both assume unpremultiplied, per-state offsets.
// Call Minimize before Premultiply.
func (d *DFA[S]) Minimize() error {
	if d.kind.IsPremultiplied() {
		panic("dense: cannot minimize a premultiplied DFA")
	}
	if d.stateCount <= 2 {
		return nil
	}

	n := d.stateCount
	alphaLen := d.alphabetLen

	get := func(s, c int) int {
		return int(d.trans[s*alphaLen+c])
	}
	isMatch := make([]bool, n)
	for s := 0; s < n; s++ {
		isMatch[s] = d.IsMatchState(S(s))
	}

	blockOf, numBlocks := hopcroftPartition(n, alphaLen, get, isMatch)

	// Renumber blocks so the block holding the dead state becomes new state 0.
	perm := make([]int, numBlocks)
	for i := range perm {
		perm[i] = -1
	}
	deadBlock := blockOf[0]
	perm[deadBlock] = 0
	next := 1
	for b := 0; b < numBlocks; b++ {
		if b == deadBlock {
			continue
		}
		perm[b] = next
		next++
	}

	repFor := make([]int, numBlocks)
	for i := range repFor {
		repFor[i] = -1
	}
	for s := 0; s < n; s++ {
		nid := perm[blockOf[s]]
		if repFor[nid] == -1 {
			repFor[nid] = s
		}
	}

	newTrans := make([]S, numBlocks*alphaLen)
	newIsMatch := make([]bool, numBlocks)
	for nid := 0; nid < numBlocks; nid++ {
		old := repFor[nid]
		newIsMatch[nid] = isMatch[old]
		for c := 0; c < alphaLen; c++ {
			oldNext := get(old, c)
			newTrans[nid*alphaLen+c] = S(perm[blockOf[oldNext]])
		}
	}

	d.trans = newTrans
	d.stateCount = numBlocks
	d.start = S(perm[blockOf[int(d.start)]])
	d.maxMatch = 1

	d.ShuffleMatchStates(newIsMatch)
	return nil
}

// hopcroftPartition computes the coarsest partition of {0, ..., n-1} that is
// stable under trans and respects the initial match/non-match split. It
// returns, for each state, the index of the block it ended up in, and the
// total number of blocks.
func hopcroftPartition(n, alphaLen int, trans func(s, c int) int, isMatch []bool) ([]int, int) {
	// blocks[i] holds the member states of block i; blockOf[s] is the block
	// currently containing s. Splitting a block rewrites blocks[i] in place
	// and appends the split-off remainder as a new block.
	var blocks [][]int
	blockOf := make([]int, n)

	matchSet, nonMatchSet := []int{}, []int{}
	for s := 0; s < n; s++ {
		if isMatch[s] {
			matchSet = append(matchSet, s)
		} else {
			nonMatchSet = append(nonMatchSet, s)
		}
	}
	if len(matchSet) > 0 {
		blocks = append(blocks, matchSet)
		for _, s := range matchSet {
			blockOf[s] = len(blocks) - 1
		}
	}
	if len(nonMatchSet) > 0 {
		blocks = append(blocks, nonMatchSet)
		for _, s := range nonMatchSet {
			blockOf[s] = len(blocks) - 1
		}
	}

	inWorklist := make(map[int]bool)
	var worklist []int
	push := func(b int) {
		if !inWorklist[b] {
			inWorklist[b] = true
			worklist = append(worklist, b)
		}
	}
	// Seeding with the smaller of the two initial sets suffices for
	// correctness (Hopcroft's original refinement), but seeding both is
	// simpler to reason about and only costs a constant-factor slowdown.
	for b := range blocks {
		push(b)
	}

	// invTrans[c] maps a state to the set of states that reach it on symbol
	// c, used to compute the splitter set X = {x : trans(x, c) in A}.
	invTrans := make([][][]int, alphaLen)
	for c := 0; c < alphaLen; c++ {
		invTrans[c] = make([][]int, n)
		for s := 0; s < n; s++ {
			t := trans(s, c)
			invTrans[c][t] = append(invTrans[c][t], s)
		}
	}

	inX := sparse.NewSparseSet(uint32(n))
	for len(worklist) > 0 {
		a := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		inWorklist[a] = false

		for c := 0; c < alphaLen; c++ {
			inX.Clear()
			for _, s := range blocks[a] {
				for _, x := range invTrans[c][s] {
					inX.Insert(uint32(x))
				}
			}
			if inX.IsEmpty() {
				continue
			}

			// Snapshot the current block count: blocks created by this
			// symbol's splits must not themselves be re-split by it.
			splitUpto := len(blocks)
			for y := 0; y < splitUpto; y++ {
				members := blocks[y]
				var inter, diff []int
				for _, s := range members {
					if inX.Contains(uint32(s)) {
						inter = append(inter, s)
					} else {
						diff = append(diff, s)
					}
				}
				if len(inter) == 0 || len(diff) == 0 {
					continue
				}

				blocks[y] = inter
				blocks = append(blocks, diff)
				newIdx := len(blocks) - 1
				for _, s := range diff {
					blockOf[s] = newIdx
				}

				if inWorklist[y] {
					push(newIdx)
				} else if len(inter) <= len(diff) {
					push(y)
				} else {
					push(newIdx)
				}
			}
		}
	}

	return blockOf, len(blocks)
}
