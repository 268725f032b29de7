package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/sifter/internal/core/domain"
	"github.com/custodia-labs/sifter/internal/core/ports/driven"
	"github.com/custodia-labs/sifter/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyFields         = "search.fields"
	keyTitleField     = "search.title_field"
	keySecondaryField = "search.secondary_field"
	keyExcerptField   = "search.excerpt_field"
	keyItemsPerPage   = "search.items_per_page"
	keyThreshold      = "search.threshold"
	keyTolerance      = "search.tolerance"
	keyPromoteFields  = "search.promote_fields"
	keyPageGap        = "pagination.gap"
	keyMinPages       = "pagination.min_pages"
	keyHighlightOpen  = "highlight.open"
	keyHighlightClose = "highlight.close"
	keyRefreshMS      = "refresh.interval_ms"
	keyDebounceMS     = "refresh.debounce_ms"
	keyRecordSource   = "records.source"

	weightPrefix = "weights."
)

// settingKind is the value type of a config key.
type settingKind int

const (
	kindString settingKind = iota
	kindList
	kindInt
	kindFloat
	kindBool
)

var settingKinds = map[string]settingKind{
	keyFields:         kindList,
	keyTitleField:     kindString,
	keySecondaryField: kindString,
	keyExcerptField:   kindString,
	keyItemsPerPage:   kindInt,
	keyThreshold:      kindFloat,
	keyTolerance:      kindInt,
	keyPromoteFields:  kindBool,
	keyPageGap:        kindInt,
	keyMinPages:       kindInt,
	keyHighlightOpen:  kindString,
	keyHighlightClose: kindString,
	keyRefreshMS:      kindInt,
	keyDebounceMS:     kindInt,
	keyRecordSource:   kindString,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.Settings, error) {
	defaults := domain.DefaultSettings()

	settings := &domain.Settings{
		Search: domain.SearchSettings{
			Fields:         s.configStore.GetStringSlice(keyFields),
			TitleField:     s.getString(keyTitleField, defaults.Search.TitleField),
			SecondaryField: s.getString(keySecondaryField, defaults.Search.SecondaryField),
			ExcerptField:   s.getString(keyExcerptField, defaults.Search.ExcerptField),
			ItemsPerPage:   s.getPositiveInt(keyItemsPerPage, defaults.Search.ItemsPerPage),
			Threshold:      s.getFloat(keyThreshold, defaults.Search.Threshold),
			Tolerance:      s.getInt(keyTolerance, defaults.Search.Tolerance),
			PromoteFields:  s.getBool(keyPromoteFields, defaults.Search.PromoteFields),
			Weights:        s.getWeights(),
		},
		Pagination: domain.PaginationSettings{
			Gap:      s.getPositiveInt(keyPageGap, defaults.Pagination.Gap),
			MinPages: s.getPositiveInt(keyMinPages, defaults.Pagination.MinPages),
		},
		Highlight: domain.Marker{
			Open:  s.getString(keyHighlightOpen, defaults.Highlight.Open),
			Close: s.getString(keyHighlightClose, defaults.Highlight.Close),
		},
		Refresh: domain.RefreshSettings{
			Interval: s.getMillis(keyRefreshMS, defaults.Refresh.Interval),
			Debounce: s.getMillis(keyDebounceMS, defaults.Refresh.Debounce),
		},
		RecordSource: s.configStore.GetString(keyRecordSource),
	}

	if settings.Search.Threshold <= 0 || settings.Search.Threshold > 1 {
		return nil, fmt.Errorf("%s must be in (0, 1], got %v: %w",
			keyThreshold, settings.Search.Threshold, domain.ErrInvalidInput)
	}
	if settings.Search.Tolerance < 0 {
		return nil, fmt.Errorf("%s must not be negative: %w", keyTolerance, domain.ErrInvalidInput)
	}

	return settings, nil
}

// Set parses value according to the type of key and persists it.
// Keys under "weights." take a positive number.
func (s *SettingsService) Set(key, value string) error {
	kind, ok := settingKinds[key]
	if !ok {
		if !strings.HasPrefix(key, weightPrefix) || key == weightPrefix {
			return s.unknownKey(key)
		}
		kind = kindFloat
	}

	parsed, err := parseSetting(kind, value)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	if f, isFloat := parsed.(float64); isFloat && strings.HasPrefix(key, weightPrefix) && f <= 0 {
		return fmt.Errorf("%s: weight must be positive: %w", key, domain.ErrInvalidInput)
	}

	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Values returns every known key with its effective value, sorted by key.
func (s *SettingsService) Values() ([]domain.SettingValue, error) {
	settings, err := s.Get()
	if err != nil {
		return nil, err
	}

	effective := map[string]string{
		keyFields:         strings.Join(settings.Search.Fields, ","),
		keyTitleField:     settings.Search.TitleField,
		keySecondaryField: settings.Search.SecondaryField,
		keyExcerptField:   settings.Search.ExcerptField,
		keyItemsPerPage:   strconv.Itoa(settings.Search.ItemsPerPage),
		keyThreshold:      strconv.FormatFloat(settings.Search.Threshold, 'g', -1, 64),
		keyTolerance:      strconv.Itoa(settings.Search.Tolerance),
		keyPromoteFields:  strconv.FormatBool(settings.Search.PromoteFields),
		keyPageGap:        strconv.Itoa(settings.Pagination.Gap),
		keyMinPages:       strconv.Itoa(settings.Pagination.MinPages),
		keyHighlightOpen:  settings.Highlight.Open,
		keyHighlightClose: settings.Highlight.Close,
		keyRefreshMS:      strconv.FormatInt(settings.Refresh.Interval.Milliseconds(), 10),
		keyDebounceMS:     strconv.FormatInt(settings.Refresh.Debounce.Milliseconds(), 10),
		keyRecordSource:   settings.RecordSource,
	}
	for field, w := range settings.Search.Weights {
		effective[weightPrefix+field] = strconv.FormatFloat(w, 'g', -1, 64)
	}

	values := make([]domain.SettingValue, 0, len(effective))
	for key, val := range effective {
		_, set := s.configStore.Get(key)
		values = append(values, domain.SettingValue{Key: key, Value: val, Default: !set})
	}
	sort.Slice(values, func(i, j int) bool { return values[i].Key < values[j].Key })
	return values, nil
}

// Path returns the configuration file path.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

func (s *SettingsService) unknownKey(key string) error {
	keys := make([]string, 0, len(settingKinds))
	for k := range settingKinds {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if hint := suggest(key, keys); hint != "" {
		return fmt.Errorf("%q (did you mean %q?): %w", key, hint, domain.ErrUnknownSetting)
	}
	return fmt.Errorf("%q: %w", key, domain.ErrUnknownSetting)
}

func parseSetting(kind settingKind, value string) (any, error) {
	switch kind {
	case kindList:
		var items []string
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		return items, nil
	case kindInt:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("not an integer %q: %w", value, domain.ErrInvalidInput)
		}
		return n, nil
	case kindFloat:
		f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("not a number %q: %w", value, domain.ErrInvalidInput)
		}
		return f, nil
	case kindBool:
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("not a boolean %q: %w", value, domain.ErrInvalidInput)
		}
		return b, nil
	default:
		return value, nil
	}
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetString(key)
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getPositiveInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getMillis(key string, defaultVal time.Duration) time.Duration {
	ms := s.configStore.GetInt(key)
	if ms <= 0 {
		return defaultVal
	}
	return time.Duration(ms) * time.Millisecond
}

func (s *SettingsService) getWeights() domain.FieldWeights {
	weights := domain.FieldWeights{}
	for _, key := range s.configStore.Keys(weightPrefix) {
		field := strings.TrimPrefix(key, weightPrefix)
		if w := s.configStore.GetFloat(key); w > 0 && field != "" {
			weights[field] = w
		}
	}
	return weights
}
