// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/sifter/internal/core/domain"
)

// QueryChanged is sent when the search query input changes.
type QueryChanged struct {
	Query string
}

// DebounceElapsed fires once typing has paused. Seq identifies the
// keystroke that scheduled it; stale ticks are ignored.
type DebounceElapsed struct {
	Seq int
}

// SearchRequested is a command to perform a search.
type SearchRequested struct {
	Query   string
	Options domain.SearchOptions
}

// SearchCompleted carries a search response back to the model.
// Seq matches the request that produced it.
type SearchCompleted struct {
	Seq      int
	Response *domain.SearchResponse
	Err      error
}

// PageRequested asks the search view to show a page of the current query.
type PageRequested struct {
	Page int
}

// RefreshTick polls for index rebuilds.
type RefreshTick struct{}

// RecordsRefreshed signals the index was rebuilt and results may be stale.
type RecordsRefreshed struct{}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewSearch is the search input and results view.
	ViewSearch ViewType = iota
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewSearch:
		return "search"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
