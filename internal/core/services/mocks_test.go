package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/sifter/internal/core/domain"
	"github.com/custodia-labs/sifter/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockIndex implements driven.FuzzyIndex with canned hits per pattern.
type mockIndex struct {
	mu       sync.Mutex
	hits     map[string][]driven.FuzzyHit
	searches []string
	rebuilds int
	n        int
}

func newMockIndex() *mockIndex {
	return &mockIndex{hits: make(map[string][]driven.FuzzyHit)}
}

func (m *mockIndex) Rebuild(records []domain.Record, _ []string, _ domain.FieldWeights) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rebuilds++
	m.n = len(records)
}

func (m *mockIndex) Search(pattern string) []driven.FuzzyHit {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searches = append(m.searches, pattern)
	return m.hits[pattern]
}

func (m *mockIndex) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.n
}

func (m *mockIndex) searchCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.searches)
}

// mockSource implements driven.RecordSource.
type mockSource struct {
	mu      sync.Mutex
	records []domain.Record
	loaded  bool
	loadErr error
	loads   int
}

func (m *mockSource) Load(_ context.Context) ([]domain.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads++
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.records, nil
}

func (m *mockSource) Loaded() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loaded
}

func (m *mockSource) setLoaded(v bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loaded = v
}

func (m *mockSource) loadCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loads
}

// mockNotifier implements driven.ChangeNotifier.
type mockNotifier struct {
	ch chan struct{}
}

func newMockNotifier() *mockNotifier {
	return &mockNotifier{ch: make(chan struct{}, 1)}
}

func (m *mockNotifier) Changes() <-chan struct{} { return m.ch }

func (m *mockNotifier) Close() error {
	close(m.ch)
	return nil
}

// rec builds a record with title and description fields.
func rec(id, title, desc string) domain.Record {
	return domain.Record{ID: id, Fields: map[string]string{"title": title, "description": desc}}
}

func testSettings() domain.Settings {
	s := domain.DefaultSettings()
	s.Search.Fields = []string{"title", "description"}
	return s
}
