package driven

import "github.com/custodia-labs/sifter/internal/core/domain"

// FuzzyIndex matches a pattern approximately against the configured fields
// of every record. It is rebuilt wholesale whenever the collection changes.
type FuzzyIndex interface {
	// Rebuild replaces the indexed collection.
	// Missing weights default to 1.
	Rebuild(records []domain.Record, fields []string, weights domain.FieldWeights)

	// Search returns the records matching pattern, best first.
	Search(pattern string) []FuzzyHit

	// Len returns the number of indexed records.
	Len() int
}

// FuzzyHit is a record matched by the fuzzy index.
type FuzzyHit struct {
	// RecordID is the matched record.
	RecordID string

	// Score is the match quality: 0 is a perfect match, 1 is no match.
	Score float64
}
