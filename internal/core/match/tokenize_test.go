package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		query string
		terms []string
		words []string
		short []string
		long  []string
	}{
		{
			name:  "empty",
			query: "   ",
		},
		{
			name:  "partitions by length",
			query: "  Quick brown FOX ",
			terms: []string{"quick", "brown", "fox"},
			words: []string{"quick", "brown", "fox"},
			short: []string{"fox"},
			long:  []string{"quick", "brown"},
		},
		{
			name:  "drops stop words from words only",
			query: "how to cook the rice",
			terms: []string{"how", "to", "cook", "the", "rice"},
			words: []string{"cook", "rice"},
			short: []string{"cook", "rice"},
		},
		{
			name:  "drops single rune tokens",
			query: "x marks a spot",
			terms: []string{"marks", "spot"},
			words: []string{"marks", "spot"},
			short: []string{"spot"},
			long:  []string{"marks"},
		},
		{
			name:  "only stop words",
			query: "The",
			terms: []string{"the"},
		},
		{
			name:  "deduplicates",
			query: "fox Fox fox",
			terms: []string{"fox"},
			words: []string{"fox"},
			short: []string{"fox"},
		},
		{
			name:  "counts runes not bytes",
			query: "été",
			terms: []string{"été"},
			words: []string{"été"},
			short: []string{"été"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := Tokenize(tt.query)
			assert.Equal(t, tt.terms, q.Terms)
			assert.Equal(t, tt.words, q.Words)
			assert.Equal(t, tt.short, q.Short)
			assert.Equal(t, tt.long, q.Long)
		})
	}
}

func TestTokenize_Raw(t *testing.T) {
	q := Tokenize("  quick   fox ")
	assert.Equal(t, "quick   fox", q.Raw)
	assert.False(t, q.Empty())
	assert.True(t, Tokenize(" \t").Empty())
}

func TestTokenize_Deterministic(t *testing.T) {
	query := "what is the quickest brown fox in the world"
	first := Tokenize(query)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Tokenize(query))
	}
}

func TestIsStopWord(t *testing.T) {
	for _, w := range []string{"a", "the", "could", "your", "am"} {
		assert.True(t, IsStopWord(w), w)
	}
	for _, w := range []string{"fox", "The", ""} {
		assert.False(t, IsStopWord(w), w)
	}
}
