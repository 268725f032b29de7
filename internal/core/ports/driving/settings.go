package driving

import "github.com/custodia-labs/sifter/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.Settings, error)

	// Set parses value for the settings key and persists it.
	Set(key, value string) error

	// Values returns every known key with its effective value, sorted by key.
	Values() ([]domain.SettingValue, error)

	// Path returns the configuration file path.
	Path() string
}
