package tui

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/sifter/internal/core/domain"
)

func TestPorts_Validate(t *testing.T) {
	tests := []struct {
		name    string
		ports   *Ports
		wantErr error
	}{
		{"search only", &Ports{Search: &MockSearchService{}}, nil},
		{
			"all ports",
			&Ports{Search: &MockSearchService{}, Settings: &MockSettingsService{}, Refresher: &MockRefresher{}},
			nil,
		},
		{"missing search", &Ports{Refresher: &MockRefresher{}}, ErrMissingSearchService},
		{"nil ports", nil, ErrMissingSearchService},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ports.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestErrMissingSearchService_Message(t *testing.T) {
	assert.Contains(t, ErrMissingSearchService.Error(), "search service")
}

func TestPorts_Settings_FallsBackToDefaults(t *testing.T) {
	tests := []struct {
		name  string
		ports *Ports
	}{
		{"no settings service", &Ports{}},
		{"settings error", &Ports{Settings: &MockSettingsService{err: errors.New("unreadable")}}},
		{"nil settings", &Ports{Settings: &MockSettingsService{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, domain.DefaultSettings(), tt.ports.settings())
		})
	}
}

func TestViewConfig(t *testing.T) {
	s := domain.DefaultSettings()
	s.Search.TitleField = "name"
	s.Search.SecondaryField = ""
	s.Refresh.Debounce = 50 * time.Millisecond

	cfg := viewConfig(s)

	assert.Equal(t, "name", cfg.TitleField)
	assert.Equal(t, domain.DefaultSecondaryField, cfg.SecondaryField)
	assert.Equal(t, 50*time.Millisecond, cfg.Debounce)
	assert.Zero(t, cfg.PerPage)
}

func TestRefreshEvery(t *testing.T) {
	s := domain.DefaultSettings()
	assert.Equal(t, domain.DefaultRefreshEvery, refreshEvery(s))

	s.Refresh.Interval = 0
	assert.Equal(t, domain.DefaultRefreshEvery, refreshEvery(s))

	s.Refresh.Interval = 5 * time.Second
	assert.Equal(t, 5*time.Second, refreshEvery(s))
}
