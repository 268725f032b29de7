package cli

import (
	"context"
	"fmt"
	"os"
)

// startRefresher runs the refresher in the background for long-running
// commands. The returned function stops it.
func startRefresher(ctx context.Context) func() {
	if refresher == nil {
		return func() {}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := refresher.Start(ctx); err != nil && ctx.Err() == nil {
			// Log but don't fail - refresh errors shouldn't stop the session
			fmt.Fprintf(os.Stderr, "refresher stopped: %v\n", err)
		}
	}()

	return func() {
		refresher.Stop()
		cancel()
		<-done
	}
}
