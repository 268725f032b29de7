package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/custodia-labs/sifter/internal/core/domain"
	"github.com/custodia-labs/sifter/internal/core/ports/driven"
)

// Ensure RecordStore implements the interface.
var _ driven.RecordStore = (*RecordStore)(nil)

// RecordStore is an in-memory implementation of driven.RecordStore.
type RecordStore struct {
	mu       sync.RWMutex
	records  []domain.Record
	position map[string]int
	loaded   bool
}

// NewRecordStore creates a store holding records. It reports itself loaded
// when records is non-nil, so a fixed collection is never polled.
func NewRecordStore(records []domain.Record) *RecordStore {
	s := &RecordStore{position: make(map[string]int), loaded: records != nil}
	s.append(records)
	return s
}

// Load returns a copy of the records in order.
func (s *RecordStore) Load(_ context.Context) ([]domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.records), nil
}

// Loaded reports whether the collection is complete.
func (s *RecordStore) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Save appends records; an existing ID is replaced in place.
func (s *RecordStore) Save(_ context.Context, records []domain.Record) error {
	for _, r := range records {
		if r.ID == "" {
			return fmt.Errorf("record without id: %w", domain.ErrInvalidInput)
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.append(records)
	return nil
}

// append adds records (caller must hold lock).
func (s *RecordStore) append(records []domain.Record) {
	for _, r := range records {
		if i, ok := s.position[r.ID]; ok {
			s.records[i] = r
			continue
		}
		s.position[r.ID] = len(s.records)
		s.records = append(s.records, r)
	}
}

// Get retrieves a record by ID.
func (s *RecordStore) Get(_ context.Context, id string) (*domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.position[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	rec := s.records[i]
	return &rec, nil
}

// Clear removes every record and resets the loaded flag.
func (s *RecordStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
	s.position = make(map[string]int)
	s.loaded = false
	return nil
}

// MarkLoaded sets whether the collection is complete.
func (s *RecordStore) MarkLoaded(_ context.Context, complete bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = complete
	return nil
}

// Close releases resources (no-op for memory store).
func (s *RecordStore) Close() error {
	return nil
}
