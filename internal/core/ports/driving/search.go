package driving

import (
	"context"

	"github.com/custodia-labs/sifter/internal/core/domain"
)

// SearchService provides search capabilities to external actors.
type SearchService interface {
	// Search ranks the records against query and decorates the requested page.
	// An empty query returns the initial outcome without matching.
	Search(ctx context.Context, query string, opts domain.SearchOptions) (*domain.SearchResponse, error)

	// Browse pages through every record in collection order.
	Browse(ctx context.Context, opts domain.SearchOptions) (*domain.SearchResponse, error)

	// Layout returns the pager for current out of total pages.
	Layout(current, total int) domain.PageLayout
}
