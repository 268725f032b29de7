package driven

import (
	"context"

	"github.com/custodia-labs/sifter/internal/core/domain"
)

// RecordSource supplies the record collection in display order.
type RecordSource interface {
	// Load returns the current records.
	Load(ctx context.Context) ([]domain.Record, error)

	// Loaded reports whether the source holds its complete collection.
	// Periodic refreshes stop once it returns true.
	Loaded() bool
}

// RecordStore is a RecordSource that can be written to.
type RecordStore interface {
	RecordSource

	// Save appends records, keeping their order after existing ones.
	// Records with an existing ID replace it in place.
	Save(ctx context.Context, records []domain.Record) error

	// Get retrieves a record by ID.
	Get(ctx context.Context, id string) (*domain.Record, error)

	// Clear removes every record and resets the loaded flag.
	Clear(ctx context.Context) error

	// MarkLoaded sets whether the collection is complete.
	MarkLoaded(ctx context.Context, complete bool) error

	// Close releases resources.
	Close() error
}

// ChangeNotifier signals that the record source changed.
type ChangeNotifier interface {
	// Changes delivers a value after each change. Bursts are coalesced.
	Changes() <-chan struct{}

	// Close stops notifications and closes the channel.
	Close() error
}
