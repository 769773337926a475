// Package match provides bounded edit-distance computation over normalized keys.
package match

// DefaultMaxDistance bounds how many edits still count as a plausible typo.
// Thai compound place names run long (15+ characters), where unbounded
// distance is slow and a large distance is meaningless as a correction.
const DefaultMaxDistance = 2

// Distance returns the Levenshtein distance between a and b, computed over
// runes, as long as it does not exceed maxDistance. Values above the bound are
// reported as the sentinel maxDistance+1, meaning "too far to be a match".
//
// Early exits are part of the sentinel contract, not just a speedup: a length
// gap beyond maxDistance can never close within budget, and once every cell of
// a row exceeds maxDistance no path below budget remains.
func Distance(a, b string, maxDistance int) int {
	if maxDistance < 0 {
		maxDistance = 0
	}
	sentinel := maxDistance + 1

	if a == b {
		return 0
	}

	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 {
		return capped(len(rb), sentinel)
	}
	if len(rb) == 0 {
		return capped(len(ra), sentinel)
	}

	lenDiff := len(ra) - len(rb)
	if lenDiff < 0 {
		lenDiff = -lenDiff
	}
	if lenDiff > maxDistance {
		return sentinel
	}

	// Two rolling rows; the full matrix is never needed.
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		rowMin := curr[0]
		for j := 1; j <= len(rb); j++ {
			cost := 0
			if ra[i-1] != rb[j-1] {
				cost = 1
			}
			ins := curr[j-1] + 1
			del := prev[j] + 1
			sub := prev[j-1] + cost
			curr[j] = min3(ins, del, sub)
			if curr[j] < rowMin {
				rowMin = curr[j]
			}
		}
		if rowMin > maxDistance {
			return sentinel
		}
		prev, curr = curr, prev
	}

	return capped(prev[len(rb)], sentinel)
}

func capped(d, sentinel int) int {
	if d >= sentinel {
		return sentinel
	}
	return d
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
