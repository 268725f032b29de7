package tui

import (
	"context"
	"sync"

	"github.com/custodia-labs/sifter/internal/core/domain"
	"github.com/custodia-labs/sifter/internal/core/pagination"
)

// MockSearchService implements driving.SearchService for testing.
type MockSearchService struct {
	mu      sync.Mutex
	queries []string
	browses int
	lastOpt domain.SearchOptions
}

func (m *MockSearchService) Search(
	_ context.Context,
	query string,
	opts domain.SearchOptions,
) (*domain.SearchResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries = append(m.queries, query)
	m.lastOpt = opts
	return &domain.SearchResponse{Outcome: domain.OutcomeNoResults, Query: query}, nil
}

func (m *MockSearchService) Browse(_ context.Context, opts domain.SearchOptions) (*domain.SearchResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.browses++
	m.lastOpt = opts
	return &domain.SearchResponse{
		Outcome:    domain.OutcomeResults,
		Total:      1,
		Page:       1,
		TotalPages: 1,
		Hits: []domain.Hit{{
			RankedResult: domain.RankedResult{Record: domain.Record{ID: "r1"}},
			Fields:       map[string]domain.DecoratedText{"name": {Text: "Red Fox"}},
		}},
		Layout: pagination.Window(1, 1),
	}, nil
}

func (m *MockSearchService) Layout(current, total int) domain.PageLayout {
	return pagination.Window(current, total)
}

func (m *MockSearchService) browseCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.browses
}

// MockSettingsService implements driving.SettingsService for testing.
type MockSettingsService struct {
	settings *domain.Settings
	err      error
}

func (m *MockSettingsService) Get() (*domain.Settings, error) {
	return m.settings, m.err
}

func (m *MockSettingsService) Set(string, string) error {
	return nil
}

func (m *MockSettingsService) Values() ([]domain.SettingValue, error) {
	return nil, nil
}

func (m *MockSettingsService) Path() string {
	return ":memory:"
}

// MockRefresher implements driving.Refresher for testing.
type MockRefresher struct {
	listeners []func()
}

func (m *MockRefresher) Start(context.Context) error {
	return nil
}

func (m *MockRefresher) Stop() {}

func (m *MockRefresher) OnRefresh(fn func()) {
	m.listeners = append(m.listeners, fn)
}

func (m *MockRefresher) fire() {
	for _, fn := range m.listeners {
		fn()
	}
}
