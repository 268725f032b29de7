package match

import "unicode/utf8"

// Excerpt sizing, in runes.
const (
	ExcerptRadius   = 40
	ExcerptFallback = 80
	ellipsis        = "..."
)

// MaxExcerptLength is the longest excerpt Excerpt can return, in runes.
const MaxExcerptLength = 2*ExcerptRadius + 2*len(ellipsis)

// Excerpt cuts a window of text around the first token matching one of the
// terms. Stop-word terms are only used when no other term matches. Without
// any match it returns the beginning of the text.
func Excerpt(text string, terms []string, tolerance int) string {
	runes := []rune(text)
	folded := fold(runes)
	toks := tokens(folded)

	var high, low []string
	for _, t := range terms {
		if IsStopWord(t) {
			low = append(low, t)
		} else {
			high = append(high, t)
		}
	}

	at, found := firstMatch(toks, foldTerms(high), tolerance)
	if !found && len(low) > 0 {
		at, found = firstMatch(toks, foldTerms(low), tolerance)
	}

	offsets := byteOffsets(text)
	if !found {
		if len(runes) <= ExcerptFallback {
			return text
		}
		return text[:offsets[ExcerptFallback]] + ellipsis
	}

	start := max(0, at-ExcerptRadius)
	end := min(len(runes), at+ExcerptRadius)
	out := text[offsets[start]:offsets[end]]
	if start > 0 {
		out = ellipsis + out
	}
	if end < len(runes) {
		out += ellipsis
	}
	return out
}

// byteOffsets returns the byte offset of every rune of s followed by len(s),
// counting an invalid byte as one rune the way []rune(s) does.
func byteOffsets(s string) []int {
	offsets := make([]int, 0, len(s)+1)
	for i := 0; i < len(s); {
		offsets = append(offsets, i)
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return append(offsets, len(s))
}

// firstMatch returns the start of the first token any term qualifies against.
func firstMatch(toks []token, terms [][]rune, tolerance int) (int, bool) {
	if len(terms) == 0 {
		return 0, false
	}
	for _, tok := range toks {
		if _, _, ok := qualify(tok.runes, terms, tolerance); ok {
			return tok.start, true
		}
	}
	return 0, false
}
