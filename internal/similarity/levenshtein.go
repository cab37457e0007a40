package similarity

// EditSimilarity maps Levenshtein distance onto [0,1]:
// (maxLen - distance) / maxLen. It is an alternative scorer for checking
// whether two already-deduplicated candidate titles are literally the same
// string with typos; the catalog search path uses ScoreProfiles instead.
func EditSimilarity(a, b string) float64 {
	if a == "" && b == "" {
		return 1.0
	}
	longest := maxInt(len([]rune(a)), len([]rune(b)))
	if longest == 0 {
		return 1.0
	}
	return float64(longest-levenshtein(a, b)) / float64(longest)
}

// levenshtein computes the classic dynamic-programming edit distance over
// the full matrix, O(len(a)*len(b)), using a rolling row.
func levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			deletion := prev[j] + 1
			insertion := curr[j-1] + 1
			substitution := prev[j-1] + cost

			min := deletion
			if insertion < min {
				min = insertion
			}
			if substitution < min {
				min = substitution
			}
			curr[j] = min
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}
