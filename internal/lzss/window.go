package lzss

// findMatches implements a brute "scan each candidate start,
// extend" match finder for a single window: for the node at basePos, it
// scans every earlier start position still inside the window's search
// buffer, extends the common prefix against the look-ahead, and keeps the
// single longest match. It then emits one candidate edge per length from
// w.MinLen up to the best length found, all sharing the best match's
// distance, since every prefix of the best match is itself a legal shorter
// match at the same distance.
func findMatches(data []Symbol, basePos int, w Window, dst []Edge) []Edge {
	lower := basePos - w.SearchBufSize
	if lower < 0 {
		lower = 0
	}
	if basePos <= lower {
		return dst
	}
	maxLen := w.MaxLen
	if avail := len(data) - basePos; avail < maxLen {
		maxLen = avail
	}
	if maxLen <= 0 {
		return dst
	}

	bestPos, bestLen := 0, 0
	for i := basePos - 1; i >= lower; i-- {
		j := 0
		for j < maxLen && data[i+j] == data[basePos+j] {
			j++
		}
		if j > bestLen {
			bestPos, bestLen = i, j
		}
		if j == maxLen {
			break
		}
	}

	if bestLen < w.MinLen {
		return dst
	}
	distance := basePos - bestPos
	for length := w.MinLen; length <= bestLen; length++ {
		dst = append(dst, Edge{Pos: basePos, Kind: w.Kind, Length: length, Distance: distance})
	}
	return dst
}
