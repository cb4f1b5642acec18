package textutil

// Levenshtein returns the edit distance between two strings, computed over
// runes with two rolling rows.
func Levenshtein(a, b string) int {
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
			curr[j] = minInt(prev[j]+1, minInt(curr[j-1]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

// Similarity converts edit distance into a 0-100 score. Two empty strings are
// defined as identical (100).
func Similarity(a, b string) int {
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 100
	}
	d := Levenshtein(a, b)
	score := float64(maxLen-d) / float64(maxLen) * 100
	return int(score + 0.5)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
