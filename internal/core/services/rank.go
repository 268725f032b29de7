package services

import (
	"sort"
	"strings"

	"github.com/custodia-labs/sifter/internal/core/domain"
)

// rank orders strict results before loose ones and sorts stably by title
// match, matched word count, full-phrase match and average score.
func rank(strict, loose []*accumulator) []domain.RankedResult {
	results := make([]domain.RankedResult, 0, len(strict)+len(loose))
	for _, a := range strict {
		results = append(results, a.result(domain.TierStrict))
	}
	for _, a := range loose {
		results = append(results, a.result(domain.TierLoose))
	}

	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.MatchedInTitle != b.MatchedInTitle {
			return a.MatchedInTitle
		}
		if a.MatchedCount != b.MatchedCount {
			return a.MatchedCount > b.MatchedCount
		}
		if a.FullMatch != b.FullMatch {
			return a.FullMatch
		}
		return a.AverageScore < b.AverageScore
	})
	return results
}

// promoteFieldMatches moves records whose title contains a word to the
// front, followed by records whose secondary field contains one. Order
// within each group is kept.
func promoteFieldMatches(results []domain.RankedResult, words []string, titleField, secondaryField string) {
	containsAny := func(r domain.Record, field string) bool {
		if field == "" {
			return false
		}
		v := strings.ToLower(r.Field(field))
		for _, w := range words {
			if strings.Contains(v, w) {
				return true
			}
		}
		return false
	}
	group := func(r domain.Record) int {
		switch {
		case containsAny(r, titleField):
			return 0
		case containsAny(r, secondaryField):
			return 1
		default:
			return 2
		}
	}

	groups := make(map[string]int, len(results))
	for _, r := range results {
		groups[r.Record.ID] = group(r.Record)
	}
	sort.SliceStable(results, func(i, j int) bool {
		return groups[results[i].Record.ID] < groups[results[j].Record.ID]
	})
}
