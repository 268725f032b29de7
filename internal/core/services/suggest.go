package services

import (
	"fmt"
	"sort"

	"github.com/sahilm/fuzzy"

	"github.com/custodia-labs/sifter/internal/core/domain"
	"github.com/custodia-labs/sifter/internal/core/match"
)

// maxSuggestDistance is the largest edit distance offered as a suggestion.
const maxSuggestDistance = 2

// suggest returns the candidate closest to name, or "" when none is close.
// Abbreviations ("desc") are found by subsequence matching, typos by edit
// distance.
func suggest(name string, candidates []string) string {
	if matches := fuzzy.Find(name, candidates); len(matches) > 0 {
		return matches[0].Str
	}
	best, bestDist := "", maxSuggestDistance+1
	for _, c := range candidates {
		if d := match.Distance(name, c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// unknownWeightFields describes every weighted field that is not indexed.
func unknownWeightFields(weights domain.FieldWeights, fields []string) []string {
	if len(fields) == 0 {
		return nil
	}
	known := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		known[f] = struct{}{}
	}

	var out []string
	for name := range weights {
		if _, ok := known[name]; ok {
			continue
		}
		msg := fmt.Sprintf("weight for unknown field %q is ignored", name)
		if s := suggest(name, fields); s != "" {
			msg += fmt.Sprintf(" (did you mean %q?)", s)
		}
		out = append(out, msg)
	}
	sort.Strings(out)
	return out
}
