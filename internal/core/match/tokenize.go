package match

import (
	"strings"
	"unicode/utf8"
)

// LongWordLength is the rune length from which a word goes to the fuzzy index
// instead of the exact substring scan.
const LongWordLength = 5

// Query is a tokenised search query.
type Query struct {
	// Raw is the trimmed query, used for the full-phrase pass.
	Raw string

	// Terms are the lowercase tokens longer than one rune, stop words
	// included, in query order without duplicates. They drive highlighting
	// and excerpts.
	Terms []string

	// Words are Terms without stop words: the significant words.
	Words []string

	// Short are the Words shorter than LongWordLength runes.
	Short []string

	// Long are the Words of at least LongWordLength runes.
	Long []string
}

// Empty reports whether the query had no content at all.
func (q Query) Empty() bool {
	return q.Raw == ""
}

// Tokenize splits a query into significant words.
func Tokenize(query string) Query {
	q := Query{Raw: strings.TrimSpace(query)}
	if q.Raw == "" {
		return q
	}

	seen := make(map[string]struct{})
	for _, tok := range strings.Fields(strings.ToLower(q.Raw)) {
		if utf8.RuneCountInString(tok) <= 1 {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		q.Terms = append(q.Terms, tok)

		if IsStopWord(tok) {
			continue
		}
		q.Words = append(q.Words, tok)
		if utf8.RuneCountInString(tok) < LongWordLength {
			q.Short = append(q.Short, tok)
		} else {
			q.Long = append(q.Long, tok)
		}
	}
	return q
}
