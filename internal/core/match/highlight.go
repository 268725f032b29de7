package match

import (
	"sort"

	"github.com/custodia-labs/sifter/internal/core/domain"
)

// DefaultTolerance is the edit distance accepted for fuzzy highlights.
const DefaultTolerance = 2

// FindSpans returns the non-overlapping regions of text that match any of
// the terms, sorted by start.
func FindSpans(text string, terms []string, tolerance int) []domain.Span {
	folded := fold([]rune(text))
	candidates := foldTerms(terms)
	if len(candidates) == 0 {
		return nil
	}

	var spans []domain.Span
	for _, tok := range tokens(folded) {
		if off, n, ok := qualify(tok.runes, candidates, tolerance); ok {
			spans = append(spans, domain.Span{Start: tok.start + off, Length: n})
		}
	}

	sort.SliceStable(spans, func(i, j int) bool { return spans[i].Start < spans[j].Start })

	kept := spans[:0]
	end := 0
	for i, sp := range spans {
		if i > 0 && sp.Start < end {
			continue
		}
		kept = append(kept, sp)
		end = sp.End()
	}
	if len(kept) == 0 {
		return nil
	}
	return kept
}

// Mark wraps each span of text in the marker.
func Mark(text string, spans []domain.Span, marker domain.Marker) string {
	return domain.DecoratedText{Text: text, Spans: spans}.Render(marker)
}

// Decorate pairs text with its highlight spans.
func Decorate(text string, terms []string, tolerance int) domain.DecoratedText {
	return domain.DecoratedText{Text: text, Spans: FindSpans(text, terms, tolerance)}
}

// Highlight returns text with every matching region wrapped in the marker.
func Highlight(text string, terms []string, tolerance int, marker domain.Marker) string {
	return Mark(text, FindSpans(text, terms, tolerance), marker)
}
