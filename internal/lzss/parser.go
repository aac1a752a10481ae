package lzss

// Parse computes a minimum-bit-cost LZSS encoding of data under trait t and
// returns the edge list in source order.
//
// The input positions 0..len(data) form a DAG whose edges go strictly
// forward, so it is already topologically sorted by node index: a single
// left-to-right relaxation pass computes, for every node, the minimum cost
// to reach it and the edge used. Ties are broken by shorter length then
// shorter distance, so the reconstruction is deterministic and matches
// reference outputs bit-for-bit.
func Parse(t Trait, data []Symbol) []Edge {
	n := len(data)
	const inf = int64(1) << 62

	cost := make([]int64, n+1)
	descTotal := make([]int, n+1)
	parent := make([]int, n+1)
	via := make([]Edge, n+1)
	for i := range cost {
		cost[i] = inf
		parent[i] = -2
	}
	windows := t.Windows()
	searchBuf := maxSearchBuf(windows)
	first := t.FirstMatchPosition()

	// Nodes before first are the virtual window prefix (Rocket's 0x3C0-byte
	// pre-fill): they are legal sources for a dictionary match but are never
	// themselves encoded, so relaxation starts at first rather than at 0.
	cost[first] = 0
	parent[first] = -1

	var candidates []Edge
	for u := first; u < n; u++ {
		if cost[u] == inf {
			continue
		}
		candidates = candidates[:0]
		candidates = append(candidates, Edge{Pos: u, Kind: Symbolwise, Length: 1, Symbol: data[u]})
		for _, w := range windows {
			candidates = findMatches(data, u, w, candidates)
		}
		lower := u - searchBuf
		if lower < 0 {
			lower = 0
		}
		// upper is deliberately the full remaining input, not just the
		// widest window's MaxLen: ExtraMatches candidates (LZKN1 packed
		// literals up to length 71, Saxman zero-fills) can run longer than
		// any dictionary window and are responsible for clipping to their
		// own maximum themselves.
		candidates = t.ExtraMatches(data, u, n, lower, candidates)

		for _, e := range candidates {
			if e.Kind != Symbolwise && !t.MatchAllowed(e.Kind, e.Distance, e.Length) {
				continue
			}
			v := e.Dest()
			if v > n || v <= u {
				continue
			}
			descBits := t.DescBits(e.Kind)
			weight := t.EdgeWeight(e.Kind, e.Length)
			newCost := cost[u] + int64(descBits) + int64(weight)
			if betterPath(newCost, e, cost[v], via[v], parent[v] != -2) {
				cost[v] = newCost
				descTotal[v] = descTotal[u] + descBits
				parent[v] = u
				via[v] = e
			}
		}
	}

	if parent[n] == -2 {
		Invariantf("no path reaches the end of input")
	}
	_ = descTotal // tracked during relaxation but not returned; Parse yields only the edges

	var edges []Edge
	for v := n; v != first; v = parent[v] {
		edges = append(edges, via[v])
	}
	for i, j := 0, len(edges)-1; i < j; i, j = i+1, j-1 {
		edges[i], edges[j] = edges[j], edges[i]
	}
	return edges
}

// FinalDescriptorPadding reports, given the descriptor-bit total consumed
// by edges (the sum of t.DescBits over the returned edge list plus the
// terminator's DescBits(Terminator)), how many zero padding bits the
// encoder must append to round the last descriptor word up to a full word,
// and whether NeedEarlyDescriptor additionally requires one more full word
// of zeros.
func FinalDescriptorPadding(t Trait, descTotalBits int) (padBits, extraWordBits int) {
	dw := t.DescriptorWidth()
	if dw == 0 {
		return 0, 0
	}
	padBits = (dw - descTotalBits%dw) % dw
	if t.NeedEarlyDescriptor() && padBits == 0 && descTotalBits > 0 {
		extraWordBits = dw
	}
	return padBits, extraWordBits
}

// betterPath reports whether a candidate path of cost newCost using edge e
// should replace the current best (cost curCost, edge cur) into the same
// node. Ties are broken by shorter length then shorter distance.
func betterPath(newCost int64, e Edge, curCost int64, cur Edge, haveCur bool) bool {
	if !haveCur {
		return true
	}
	if newCost != curCost {
		return newCost < curCost
	}
	if e.Length != cur.Length {
		return e.Length < cur.Length
	}
	return e.Distance < cur.Distance
}

func maxSearchBuf(windows []Window) int {
	m := 0
	for _, w := range windows {
		if w.SearchBufSize > m {
			m = w.SearchBufSize
		}
	}
	return m
}

