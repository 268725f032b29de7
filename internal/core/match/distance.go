package match

import (
	"strings"

	"github.com/hbollon/go-edlib"
)

// Distance returns the case-insensitive Levenshtein distance between a and b,
// counted in runes.
func Distance(a, b string) int {
	return edlib.LevenshteinDistance(strings.ToLower(a), strings.ToLower(b))
}

// runeDistance is Distance for already folded rune slices.
func runeDistance(a, b []rune) int {
	return edlib.LevenshteinDistance(string(a), string(b))
}
