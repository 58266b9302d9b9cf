package lookup

import "sort"

// Rank orders candidates for presentation. The primary key is the first
// address line compared naturally: the digit runs embedded in the line are
// compared as numbers, position by position, so "3b Malvern Court" sorts
// between "1 Malvern Court" and "10 Malvern Court". Lines whose digit runs
// tie fall back to plain lexicographic comparison of the whole line.
//
// The sort is stable and pure: the input slice is not modified, and ranking
// an already ranked sequence yields the same sequence.
func Rank(candidates []Candidate) []Candidate {
	ranked := make([]Candidate, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		return naturalLess(ranked[i].FirstLine(), ranked[j].FirstLine())
	})
	return ranked
}

// naturalLess compares two address lines by their embedded digit runs, then
// lexicographically.
func naturalLess(a, b string) bool {
	na, nb := digitRuns(a), digitRuns(b)
	for i := 0; i < len(na) && i < len(nb); i++ {
		if c := compareRuns(na[i], nb[i]); c != 0 {
			return c < 0
		}
	}
	if len(na) != len(nb) {
		return len(na) < len(nb)
	}
	return a < b
}

// digitRuns extracts the maximal digit substrings of s in order.
func digitRuns(s string) []string {
	var runs []string
	start := -1
	for i, r := range s {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			runs = append(runs, s[start:i])
			start = -1
		}
	}
	if start >= 0 {
		runs = append(runs, s[start:])
	}
	return runs
}

// compareRuns compares two digit runs numerically without converting, so
// arbitrarily long runs cannot overflow.
func compareRuns(a, b string) int {
	a = trimLeadingZeros(a)
	b = trimLeadingZeros(b)
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func trimLeadingZeros(s string) string {
	i := 0
	for i < len(s)-1 && s[i] == '0' {
		i++
	}
	return s[i:]
}
