package scoring

import (
	"math"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Similarity returns a normalized Levenshtein ratio between two strings as
// an integer percentage: round(100 * (1 - distance/longest)), measured in
// runes. It is symmetric, and Similarity(a, a) == 100. The empty string is
// 0% similar to everything but itself.
func Similarity(a, b string) int {
	if a == b {
		return 100
	}
	if a == "" || b == "" {
		return 0
	}

	dist := levenshtein.ComputeDistance(a, b)
	longest := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > longest {
		longest = n
	}
	return int(math.Round(100 * (1 - float64(dist)/float64(longest))))
}
