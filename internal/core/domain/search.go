package domain

import (
	"strings"
	"unicode/utf8"
)

// Outcome classifies the result of one search invocation.
type Outcome string

const (
	// OutcomeInitial means the query was empty and no matching was done.
	OutcomeInitial Outcome = "initial"

	// OutcomeNoResults means a non-empty query produced no candidates.
	OutcomeNoResults Outcome = "no_results"

	// OutcomeResults means at least one record matched.
	OutcomeResults Outcome = "results"
)

// String returns the string representation.
func (o Outcome) String() string {
	return string(o)
}

// Tier records which result set a ranked record came from.
type Tier string

const (
	// TierStrict records matched every significant query word.
	TierStrict Tier = "strict"

	// TierLoose records matched at least one, but not all, significant words.
	TierLoose Tier = "loose"
)

// RankedResult is a record placed in the ranked order of a search.
type RankedResult struct {
	// Record is the matched record.
	Record Record `json:"record"`

	// AverageScore is the mean fuzzy score (0 best, 1 worst).
	// Records with no scored hits carry 1.
	AverageScore float64 `json:"average_score"`

	// FullMatch is true when the whole query phrase matched the record.
	FullMatch bool `json:"full_match"`

	// MatchedCount is the number of distinct query words the record matched.
	MatchedCount int `json:"matched_count"`

	// MatchedInTitle is true when a matched word occurs in the title field.
	MatchedInTitle bool `json:"matched_in_title"`

	// Tier is the result set the record belongs to.
	Tier Tier `json:"tier"`
}

// Span is a highlighted region of a text, in rune offsets.
type Span struct {
	Start  int `json:"start"`
	Length int `json:"length"`
}

// End returns the offset just past the span.
func (s Span) End() int {
	return s.Start + s.Length
}

// Marker holds the strings wrapped around each highlighted span.
type Marker struct {
	Open  string
	Close string
}

// DefaultMarker wraps spans in HTML mark tags.
var DefaultMarker = Marker{Open: "<mark>", Close: "</mark>"}

// DecoratedText is a text together with its highlighted spans.
type DecoratedText struct {
	Text  string `json:"text"`
	Spans []Span `json:"spans,omitempty"`
}

// Render returns the text with every span wrapped in the marker.
func (d DecoratedText) Render(m Marker) string {
	return d.RenderWith(
		func(s string) string { return s },
		func(s string) string { return m.Open + s + m.Close },
	)
}

// RenderWith returns the text with plain and highlighted runs passed
// through the given functions. Spans must be sorted and non-overlapping;
// spans outside the text are ignored. Span offsets count runes, an invalid
// byte counting as one rune, and the text is sliced byte for byte so it is
// reproduced exactly.
func (d DecoratedText) RenderWith(plain, marked func(string) string) string {
	at := runeOffsets(d.Text)
	n := len(at) - 1
	var b strings.Builder
	last := 0
	for _, sp := range d.Spans {
		if sp.Start < last || sp.Length <= 0 || sp.End() > n {
			continue
		}
		if sp.Start > last {
			b.WriteString(plain(d.Text[at[last]:at[sp.Start]]))
		}
		b.WriteString(marked(d.Text[at[sp.Start]:at[sp.End()]]))
		last = sp.End()
	}
	if last < n {
		b.WriteString(plain(d.Text[at[last]:]))
	}
	return b.String()
}

// runeOffsets returns the byte offset of every rune of s followed by len(s).
func runeOffsets(s string) []int {
	offsets := make([]int, 0, len(s)+1)
	for i := 0; i < len(s); {
		offsets = append(offsets, i)
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return append(offsets, len(s))
}

// Hit is a ranked record decorated for display.
type Hit struct {
	RankedResult

	// Fields holds each display field with its highlighted spans.
	Fields map[string]DecoratedText `json:"fields"`

	// Excerpt is the highlighted excerpt, when an excerpt field is configured.
	Excerpt *DecoratedText `json:"excerpt,omitempty"`
}

// SearchOptions selects the page of results to decorate.
type SearchOptions struct {
	// Page is the 1-based page number. Out-of-range values are clamped.
	Page int

	// PerPage overrides the configured items per page when positive.
	PerPage int
}

// SearchResponse is the complete output of one search invocation.
type SearchResponse struct {
	// Outcome distinguishes the initial state, no results and results.
	Outcome Outcome `json:"outcome"`

	// Query is the query as received, trimmed.
	Query string `json:"query"`

	// Words are the significant query words that drove matching.
	Words []string `json:"words"`

	// Total is the number of ranked records.
	Total int `json:"total"`

	// Strict and Loose are the sizes of the two result sets.
	Strict int `json:"strict"`
	Loose  int `json:"loose"`

	// Page and TotalPages describe the decorated window.
	Page       int `json:"page"`
	TotalPages int `json:"total_pages"`

	// Hits are the decorated records of the current page.
	Hits []Hit `json:"hits"`

	// Layout is the pager for the result set.
	Layout PageLayout `json:"layout"`
}

// Offset returns the number of results before the current page.
// Every page but the last is full.
func (r *SearchResponse) Offset() int {
	switch {
	case r.Page <= 1:
		return 0
	case r.Page == r.TotalPages:
		return r.Total - len(r.Hits)
	default:
		return (r.Page - 1) * len(r.Hits)
	}
}
