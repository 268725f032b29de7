package services

import (
	"strings"

	"github.com/custodia-labs/sifter/internal/core/domain"
	"github.com/custodia-labs/sifter/internal/core/match"
	"github.com/custodia-labs/sifter/internal/core/ports/driven"
	"github.com/custodia-labs/sifter/internal/logger"
)

// accumulator collects the evidence for one record during a search.
type accumulator struct {
	record         domain.Record
	matchedWords   map[string]struct{}
	scoreSum       float64
	count          int
	matchedInTitle bool
	fullMatch      bool
}

func (a *accumulator) averageScore() float64 {
	if a.count == 0 {
		return 1
	}
	return a.scoreSum / float64(a.count)
}

// matchesAll reports whether every word was matched.
func (a *accumulator) matchesAll(words []string) bool {
	for _, w := range words {
		if _, ok := a.matchedWords[w]; !ok {
			return false
		}
	}
	return true
}

// matchesAny reports whether at least one word was matched.
func (a *accumulator) matchesAny(words []string) bool {
	for _, w := range words {
		if _, ok := a.matchedWords[w]; ok {
			return true
		}
	}
	return false
}

func (a *accumulator) result(tier domain.Tier) domain.RankedResult {
	return domain.RankedResult{
		Record:         a.record,
		AverageScore:   a.averageScore(),
		FullMatch:      a.fullMatch,
		MatchedCount:   len(a.matchedWords),
		MatchedInTitle: a.matchedInTitle,
		Tier:           tier,
	}
}

// aggregation is the accumulator map of one search, in first-seen order.
type aggregation struct {
	byID    map[string]*accumulator
	order   []*accumulator
	inTitle func(domain.Record, string) bool
}

func newAggregation(snap *snapshot, titleField string) *aggregation {
	agg := &aggregation{byID: make(map[string]*accumulator)}
	agg.inTitle = func(domain.Record, string) bool { return false }
	if snap.hasField(titleField) {
		agg.inTitle = func(r domain.Record, word string) bool {
			return strings.Contains(strings.ToLower(r.Field(titleField)), word)
		}
	}
	return agg
}

func (g *aggregation) entry(rec domain.Record) *accumulator {
	if a, ok := g.byID[rec.ID]; ok {
		return a
	}
	a := &accumulator{record: rec, matchedWords: make(map[string]struct{})}
	g.byID[rec.ID] = a
	g.order = append(g.order, a)
	return a
}

// addWord records that rec matched word.
func (g *aggregation) addWord(rec domain.Record, word string) *accumulator {
	a := g.entry(rec)
	a.count++
	a.matchedWords[word] = struct{}{}
	if g.inTitle(rec, word) {
		a.matchedInTitle = true
	}
	return a
}

// aggregate runs the long-word, short-word and full-phrase passes and
// returns the strict and loose result sets, each in first-seen order.
func aggregate(snap *snapshot, index driven.FuzzyIndex, q match.Query, titleField string) (strict, loose []*accumulator) {
	g := newAggregation(snap, titleField)

	for _, word := range q.Long {
		hits := index.Search(word)
		logger.Debug("long word %q: %d fuzzy hits", word, len(hits))
		for _, h := range hits {
			rec, ok := snap.record(h.RecordID)
			if !ok {
				continue
			}
			g.addWord(rec, word).scoreSum += h.Score
		}
	}

	for _, word := range q.Short {
		n := 0
		for i, rec := range snap.records {
			if strings.Contains(snap.haystacks[i], word) {
				g.addWord(rec, word)
				n++
			}
		}
		logger.Debug("short word %q: %d substring hits", word, n)
	}

	phrase := index.Search(q.Raw)
	logger.Debug("full phrase %q: %d fuzzy hits", q.Raw, len(phrase))
	for _, h := range phrase {
		rec, ok := snap.record(h.RecordID)
		if !ok {
			continue
		}
		a := g.entry(rec)
		a.fullMatch = true
		a.scoreSum += h.Score
		a.count++
	}

	for _, a := range g.order {
		switch {
		case a.matchesAll(q.Words):
			strict = append(strict, a)
		case a.matchesAny(q.Words):
			loose = append(loose, a)
		}
	}
	logger.Debug("candidates: %d, strict: %d, loose: %d", len(g.order), len(strict), len(loose))
	return strict, loose
}
