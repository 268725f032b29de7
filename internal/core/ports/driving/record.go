package driving

import (
	"context"

	"github.com/custodia-labs/sifter/internal/core/domain"
)

// RecordService exposes the searchable record collection.
type RecordService interface {
	// List returns every record in collection order.
	List(ctx context.Context) ([]domain.Record, error)

	// Get retrieves a record by ID.
	Get(ctx context.Context, id string) (*domain.Record, error)

	// Reload reads the source again and rebuilds the search index.
	Reload(ctx context.Context) error

	// Loaded reports whether the source holds its complete collection.
	Loaded() bool

	// Import writes records to the backing store and rebuilds the index.
	Import(ctx context.Context, records []domain.Record, complete bool) error
}
