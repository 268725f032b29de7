package services

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/custodia-labs/sifter/internal/core/domain"
	"github.com/custodia-labs/sifter/internal/core/match"
	"github.com/custodia-labs/sifter/internal/core/pagination"
	"github.com/custodia-labs/sifter/internal/core/ports/driven"
	"github.com/custodia-labs/sifter/internal/core/ports/driving"
	"github.com/custodia-labs/sifter/internal/logger"
)

// Ensure Engine implements the interface.
var _ driving.SearchService = (*Engine)(nil)

// snapshot is an immutable view of the indexed collection.
type snapshot struct {
	records   []domain.Record
	haystacks []string
	byID      map[string]int
	fields    []string
}

func newSnapshot(records []domain.Record, fields []string) *snapshot {
	s := &snapshot{
		records:   records,
		haystacks: make([]string, len(records)),
		byID:      make(map[string]int, len(records)),
		fields:    fields,
	}
	for i, r := range records {
		s.haystacks[i] = r.Haystack()
		s.byID[r.ID] = i
	}
	return s
}

func (s *snapshot) record(id string) (domain.Record, bool) {
	i, ok := s.byID[id]
	if !ok {
		return domain.Record{}, false
	}
	return s.records[i], true
}

func (s *snapshot) hasField(name string) bool {
	return name != "" && slices.Contains(s.fields, name)
}

// Engine runs the search pipeline over the current record collection.
// Rebuild and Search may be called from different goroutines; a search
// always sees one complete collection.
type Engine struct {
	index    driven.FuzzyIndex
	settings domain.SearchSettings
	windower pagination.Windower
	marker   domain.Marker

	mu   sync.RWMutex
	snap *snapshot
}

// NewEngine creates an engine with an empty collection.
func NewEngine(index driven.FuzzyIndex, settings domain.Settings) (*Engine, error) {
	if index == nil {
		return nil, domain.ErrIndexRequired
	}
	search := settings.Search
	if search.ItemsPerPage <= 0 {
		search.ItemsPerPage = domain.DefaultItemsPerPage
	}
	if search.Tolerance < 0 {
		search.Tolerance = domain.DefaultTolerance
	}
	return &Engine{
		index:    index,
		settings: search,
		windower: pagination.New(settings.Pagination.Gap, settings.Pagination.MinPages),
		marker:   settings.Highlight,
		snap:     newSnapshot(nil, nil),
	}, nil
}

// Rebuild replaces the record collection and rebuilds the fuzzy index.
func (e *Engine) Rebuild(records []domain.Record) {
	defer logger.Elapsed("rebuild")()

	fields := e.settings.ResolveFields(records)
	for _, w := range unknownWeightFields(e.settings.Weights, fields) {
		logger.Warn("%s", w)
	}

	snap := newSnapshot(slices.Clone(records), fields)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.index.Rebuild(snap.records, fields, e.settings.Weights)
	e.snap = snap
	logger.Info("Rebuilt index: %d records, fields %v", len(records), fields)
}

// Records returns the current collection in order.
func (e *Engine) Records() []domain.Record {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return slices.Clone(e.snap.records)
}

// Record returns the record with the given ID.
func (e *Engine) Record(id string) (domain.Record, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snap.record(id)
}

// Fields returns the indexed field names.
func (e *Engine) Fields() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return slices.Clone(e.snap.fields)
}

// Marker returns the configured highlight marker.
func (e *Engine) Marker() domain.Marker {
	return e.marker
}

// Layout returns the pager for current out of total pages.
func (e *Engine) Layout(current, total int) domain.PageLayout {
	return e.windower.Window(current, total)
}

// Search ranks the collection against query and decorates the requested page.
func (e *Engine) Search(ctx context.Context, query string, opts domain.SearchOptions) (*domain.SearchResponse, error) {
	logger.Section("Search")
	defer logger.Elapsed("search")()

	q := match.Tokenize(query)
	resp := &domain.SearchResponse{
		Query:  q.Raw,
		Words:  q.Words,
		Hits:   []domain.Hit{},
		Layout: e.windower.Window(1, 0),
	}
	if q.Empty() {
		logger.Debug("Empty query, initial state")
		resp.Outcome = domain.OutcomeInitial
		return resp, nil
	}
	logger.Debug("Words: %v (short %v, long %v)", q.Words, q.Short, q.Long)

	if len(q.Words) == 0 {
		logger.Debug("No significant words in %q", q.Raw)
		resp.Outcome = domain.OutcomeNoResults
		return resp, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	e.mu.RLock()
	snap := e.snap
	strict, loose := aggregate(snap, e.index, q, e.settings.TitleField)
	e.mu.RUnlock()

	ranked := rank(strict, loose)
	if e.settings.PromoteFields {
		promoteFieldMatches(ranked, q.Words, e.settings.TitleField, e.settings.SecondaryField)
	}

	resp.Strict = len(strict)
	resp.Loose = len(loose)
	resp.Total = len(ranked)
	if len(ranked) == 0 {
		resp.Outcome = domain.OutcomeNoResults
		return resp, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	resp.Outcome = domain.OutcomeResults
	page, perPage := e.page(opts, len(ranked))
	start, end := pagination.Slice(len(ranked), page, perPage)
	for _, r := range ranked[start:end] {
		resp.Hits = append(resp.Hits, e.decorate(snap.fields, r, q.Terms))
	}
	resp.Page = page
	resp.TotalPages = pagination.TotalPages(len(ranked), perPage)
	resp.Layout = e.windower.Window(page, resp.TotalPages)

	logger.Debug("Page %d/%d: %d hits", resp.Page, resp.TotalPages, len(resp.Hits))
	return resp, nil
}

// Browse pages through the whole collection in order without highlights.
func (e *Engine) Browse(ctx context.Context, opts domain.SearchOptions) (*domain.SearchResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("browse: %w", err)
	}

	e.mu.RLock()
	snap := e.snap
	e.mu.RUnlock()

	resp := &domain.SearchResponse{
		Outcome: domain.OutcomeNoResults,
		Hits:    []domain.Hit{},
		Total:   len(snap.records),
		Layout:  e.windower.Window(1, 0),
	}
	if len(snap.records) == 0 {
		return resp, nil
	}

	resp.Outcome = domain.OutcomeResults
	page, perPage := e.page(opts, len(snap.records))
	start, end := pagination.Slice(len(snap.records), page, perPage)
	for _, rec := range snap.records[start:end] {
		resp.Hits = append(resp.Hits, e.decorate(snap.fields, domain.RankedResult{Record: rec, AverageScore: 1}, nil))
	}
	resp.Page = page
	resp.TotalPages = pagination.TotalPages(len(snap.records), perPage)
	resp.Layout = e.windower.Window(page, resp.TotalPages)
	return resp, nil
}

// page resolves the requested page and page size for n results.
func (e *Engine) page(opts domain.SearchOptions, n int) (page, perPage int) {
	perPage = e.settings.ItemsPerPage
	if opts.PerPage > 0 {
		perPage = opts.PerPage
	}
	return pagination.Clamp(opts.Page, pagination.TotalPages(n, perPage)), perPage
}

// decorate highlights the display fields of r and cuts its excerpt.
// With no terms the fields are returned plain and no excerpt is made.
func (e *Engine) decorate(fields []string, r domain.RankedResult, terms []string) domain.Hit {
	hit := domain.Hit{RankedResult: r, Fields: make(map[string]domain.DecoratedText, len(fields))}
	for _, f := range fields {
		hit.Fields[f] = match.Decorate(r.Record.Field(f), terms, e.settings.Tolerance)
	}
	if e.settings.ExcerptField != "" && len(terms) > 0 {
		text := match.Excerpt(r.Record.Field(e.settings.ExcerptField), terms, e.settings.Tolerance)
		excerpt := match.Decorate(text, terms, e.settings.Tolerance)
		hit.Excerpt = &excerpt
	}
	return hit
}
