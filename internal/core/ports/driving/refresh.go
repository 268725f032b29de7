package driving

import "context"

// Refresher keeps the search index in step with a changing record source.
type Refresher interface {
	// Start runs the refresh loop until Stop, ctx cancellation, or the
	// source reports it is fully loaded with nothing left to watch.
	Start(ctx context.Context) error

	// Stop ends a running refresh loop.
	Stop()

	// OnRefresh registers fn to run after every successful rebuild.
	OnRefresh(fn func())
}
