package mcp

import (
	"github.com/custodia-labs/sifter/internal/core/domain"
	"github.com/custodia-labs/sifter/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search provides search capabilities.
	Search driving.SearchService

	// Records exposes the record collection as resources. Optional.
	Records driving.RecordService

	// Marker wraps highlighted spans in tool output. Zero means domain.DefaultMarker.
	Marker domain.Marker
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}

// marker returns the configured highlight marker.
func (p *Ports) marker() domain.Marker {
	if p.Marker == (domain.Marker{}) {
		return domain.DefaultMarker
	}
	return p.Marker
}
