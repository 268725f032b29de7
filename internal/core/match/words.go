package match

import "unicode"

// token is a word run of a text with its rune offset.
type token struct {
	start int
	runes []rune // case folded
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// fold lowercases rune by rune so offsets into the result match the input.
func fold(runes []rune) []rune {
	out := make([]rune, len(runes))
	for i, r := range runes {
		out[i] = unicode.ToLower(r)
	}
	return out
}

// tokens splits folded text into word runs.
func tokens(folded []rune) []token {
	var out []token
	start := -1
	for i, r := range folded {
		if isWordRune(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			out = append(out, token{start: start, runes: folded[start:i]})
			start = -1
		}
	}
	if start >= 0 {
		out = append(out, token{start: start, runes: folded[start:]})
	}
	return out
}

// indexRunes returns the first index of needle in hay, or -1.
func indexRunes(hay, needle []rune) int {
	if len(needle) == 0 {
		return 0
	}
	for i := 0; i+len(needle) <= len(hay); i++ {
		match := true
		for j, r := range needle {
			if hay[i+j] != r {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

func equalRunes(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// bestWindow finds the substring of tok, between two and maxLen runes long,
// closest to term by edit distance. Longer windows win ties. ok is false
// when tok has fewer than two runes.
func bestWindow(tok, term []rune, maxLen int) (start, length, dist int, ok bool) {
	start, length = -1, -1
	for s := 0; s < len(tok); s++ {
		for l := 2; l <= min(maxLen, len(tok)-s); l++ {
			d := runeDistance(tok[s:s+l], term)
			if !ok || d < dist || (d == dist && l > length) {
				start, length, dist, ok = s, l, d, true
			}
		}
	}
	return start, length, dist, ok
}

// qualify tries each term against a folded token and returns the offset and
// length, within the token, of the first qualifying match.
func qualify(tok []rune, terms [][]rune, tolerance int) (offset, length int, ok bool) {
	for _, term := range terms {
		n := len(term)
		if n < LongWordLength && equalRunes(tok, term) {
			return 0, len(tok), true
		}
		if n > 3 {
			if i := indexRunes(tok, term); i >= 0 {
				return i, n, true
			}
		}
		if n >= LongWordLength {
			// A window longer than n+tolerance is more than tolerance edits away.
			if s, l, d, found := bestWindow(tok, term, n+tolerance); found && d <= tolerance {
				return s, l, true
			}
		}
	}
	return 0, 0, false
}

func foldTerms(terms []string) [][]rune {
	out := make([][]rune, 0, len(terms))
	for _, t := range terms {
		if t == "" {
			continue
		}
		out = append(out, fold([]rune(t)))
	}
	return out
}
