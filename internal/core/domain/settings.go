package domain

import "time"

// Default values for search settings.
const (
	DefaultTitleField     = "title"
	DefaultSecondaryField = "description"
	DefaultItemsPerPage   = 10
	DefaultThreshold      = 0.4
	DefaultTolerance      = 2
	DefaultPageGap        = 3
	DefaultMinPages       = 4
	DefaultRefreshEvery   = time.Second
	DefaultDebounce       = 400 * time.Millisecond
)

// SearchSettings holds matching and ranking configuration.
type SearchSettings struct {
	// Fields are the record fields fed to the fuzzy index.
	// Empty means every field of the first record, sorted by name.
	Fields []string

	// TitleField is the field checked for title matches.
	TitleField string

	// SecondaryField is the second field used when promoting field matches.
	SecondaryField string

	// ExcerptField is the field excerpts are cut from. Empty disables excerpts.
	ExcerptField string

	// ItemsPerPage is the page size.
	ItemsPerPage int

	// Threshold is the fuzzy index match threshold (0 exact … 1 anything).
	Threshold float64

	// Tolerance is the maximum edit distance for fuzzy highlight and excerpt matches.
	Tolerance int

	// PromoteFields enables the coarse title/secondary field ordering pass.
	PromoteFields bool

	// Weights are per-field fuzzy index weights.
	Weights FieldWeights
}

// PaginationSettings controls the pagination window.
type PaginationSettings struct {
	// Gap is the number of pages shown at either end of the window.
	Gap int

	// MinPages is the page count above which ellipses may appear.
	MinPages int
}

// RefreshSettings controls periodic rebuilds and input debounce.
type RefreshSettings struct {
	// Interval is the time between rebuilds while the source is loading.
	Interval time.Duration

	// Debounce is the delay between the last keystroke and a search.
	Debounce time.Duration
}

// Settings holds all application settings.
type Settings struct {
	Search     SearchSettings
	Pagination PaginationSettings
	Highlight  Marker
	Refresh    RefreshSettings

	// RecordSource is a record file path or a sqlite:// URL.
	RecordSource string
}

// DefaultSettings returns settings with sensible defaults.
func DefaultSettings() Settings {
	return Settings{
		Search: SearchSettings{
			TitleField:     DefaultTitleField,
			SecondaryField: DefaultSecondaryField,
			ItemsPerPage:   DefaultItemsPerPage,
			Threshold:      DefaultThreshold,
			Tolerance:      DefaultTolerance,
			PromoteFields:  true,
			Weights:        FieldWeights{},
		},
		Pagination: PaginationSettings{
			Gap:      DefaultPageGap,
			MinPages: DefaultMinPages,
		},
		Highlight: DefaultMarker,
		Refresh: RefreshSettings{
			Interval: DefaultRefreshEvery,
			Debounce: DefaultDebounce,
		},
	}
}

// ResolveFields returns the configured index fields, falling back to the
// field names of the first record.
func (s SearchSettings) ResolveFields(records []Record) []string {
	if len(s.Fields) > 0 {
		return s.Fields
	}
	if len(records) == 0 {
		return nil
	}
	return records[0].FieldNames()
}

// SettingValue is one configuration key with its effective value.
type SettingValue struct {
	Key   string `json:"key"`
	Value string `json:"value"`

	// Default is true when the value was not set in the configuration.
	Default bool `json:"default"`
}
