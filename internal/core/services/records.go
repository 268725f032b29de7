package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/sifter/internal/core/domain"
	"github.com/custodia-labs/sifter/internal/core/ports/driven"
	"github.com/custodia-labs/sifter/internal/core/ports/driving"
	"github.com/custodia-labs/sifter/internal/logger"
)

// Ensure RecordService implements the interface.
var _ driving.RecordService = (*RecordService)(nil)

// RecordService keeps the engine's collection in step with the record source.
type RecordService struct {
	source driven.RecordSource
	store  driven.RecordStore
	engine *Engine
}

// NewRecordService creates a record service. If source also implements
// driven.RecordStore, records can be imported through it.
func NewRecordService(source driven.RecordSource, engine *Engine) (*RecordService, error) {
	if source == nil {
		return nil, domain.ErrSourceRequired
	}
	if engine == nil {
		return nil, domain.ErrIndexRequired
	}
	s := &RecordService{source: source, engine: engine}
	if store, ok := source.(driven.RecordStore); ok {
		s.store = store
	}
	return s, nil
}

// List returns every record in collection order.
func (s *RecordService) List(_ context.Context) ([]domain.Record, error) {
	return s.engine.Records(), nil
}

// Get retrieves a record by ID.
func (s *RecordService) Get(_ context.Context, id string) (*domain.Record, error) {
	rec, ok := s.engine.Record(id)
	if !ok {
		return nil, fmt.Errorf("record %q: %w", id, domain.ErrNotFound)
	}
	return &rec, nil
}

// Reload reads the source again and rebuilds the search index.
func (s *RecordService) Reload(ctx context.Context) error {
	records, err := s.source.Load(ctx)
	if err != nil {
		return fmt.Errorf("load records: %w", err)
	}
	s.engine.Rebuild(records)
	return nil
}

// Loaded reports whether the source holds its complete collection.
func (s *RecordService) Loaded() bool {
	return s.source.Loaded()
}

// Import writes records to the backing store, marks the collection complete
// or not, and rebuilds the index.
func (s *RecordService) Import(ctx context.Context, records []domain.Record, complete bool) error {
	if s.store == nil {
		return domain.ErrReadOnly
	}
	if err := s.store.Save(ctx, records); err != nil {
		return fmt.Errorf("save records: %w", err)
	}
	if err := s.store.MarkLoaded(ctx, complete); err != nil {
		return fmt.Errorf("mark loaded: %w", err)
	}
	logger.Info("Imported %d records (complete=%t)", len(records), complete)
	return s.Reload(ctx)
}
