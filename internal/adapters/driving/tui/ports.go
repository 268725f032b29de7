// Package tui provides an interactive terminal user interface for sifter.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"time"

	"github.com/custodia-labs/sifter/internal/adapters/driving/tui/views/search"
	"github.com/custodia-labs/sifter/internal/core/domain"
	"github.com/custodia-labs/sifter/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces used by the TUI.
// Only Search is required.
type Ports struct {
	// Search ranks and pages records.
	Search driving.SearchService

	// Settings supplies display fields, page size and timings.
	Settings driving.SettingsService

	// Refresher reports index rebuilds so results can be re-run.
	Refresher driving.Refresher
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}

// settings returns the configured settings, or the defaults when none
// are available.
func (p *Ports) settings() domain.Settings {
	if p.Settings != nil {
		if s, err := p.Settings.Get(); err == nil && s != nil {
			return *s
		}
	}
	return domain.DefaultSettings()
}

// viewConfig derives the search view configuration from settings.
func viewConfig(s domain.Settings) search.Config {
	cfg := search.DefaultConfig()
	if s.Search.TitleField != "" {
		cfg.TitleField = s.Search.TitleField
	}
	if s.Search.SecondaryField != "" {
		cfg.SecondaryField = s.Search.SecondaryField
	}
	if s.Refresh.Debounce > 0 {
		cfg.Debounce = s.Refresh.Debounce
	}
	return cfg
}

// refreshEvery returns the poll interval for index rebuilds.
func refreshEvery(s domain.Settings) time.Duration {
	if s.Refresh.Interval > 0 {
		return s.Refresh.Interval
	}
	return domain.DefaultRefreshEvery
}
