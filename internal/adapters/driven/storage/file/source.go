// Package file loads record collections from JSON, YAML and TOML files.
package file

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/sifter/internal/core/domain"
	"github.com/custodia-labs/sifter/internal/core/ports/driven"
	"github.com/custodia-labs/sifter/internal/logger"
)

// Format is a record file encoding.
type Format string

// Supported record file formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// idKey is the object key holding a record's ID.
const idKey = "id"

// fieldsKey holds a nested field map, as written by domain.Record's JSON form.
const fieldsKey = "fields"

// recordNamespace seeds the name-based UUIDs of records without an ID.
var recordNamespace = uuid.MustParse("6f1f5d3a-0c1e-4a8e-9b55-2d7e4c9a1f30")

// Ensure Source implements the interface.
var _ driven.RecordSource = (*Source)(nil)

// Source reads a record file. A file is complete when read, so Loaded
// reports true after the first successful Load.
type Source struct {
	path   string
	format Format

	mu     sync.RWMutex
	loaded bool
}

// NewSource creates a source for path, choosing the format by extension.
func NewSource(path string) (*Source, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	return &Source{path: path, format: format}, nil
}

// Path returns the record file path.
func (s *Source) Path() string {
	return s.path
}

// Load reads and decodes the file.
func (s *Source) Load(ctx context.Context) ([]domain.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}
	records, err := Decode(data, s.format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}

	s.mu.Lock()
	s.loaded = true
	s.mu.Unlock()
	logger.Debug("Loaded %d records from %s", len(records), s.path)
	return records, nil
}

// Loaded reports whether the file has been read successfully.
func (s *Source) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// FormatFor returns the format matching the extension of path.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("record file %q: %w", path, domain.ErrUnsupportedFormat)
	}
}

// ReadFile decodes the record file at path.
func ReadFile(path string) ([]domain.Record, error) {
	src, err := NewSource(path)
	if err != nil {
		return nil, err
	}
	return src.Load(context.Background())
}

// Decode parses data as a list of records. The document is either a list
// of objects or an object with a "records" list. Each object's "id" becomes
// the record ID and every other key a field.
func Decode(data []byte, format Format) ([]domain.Record, error) {
	var doc any
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decoding json: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decoding yaml: %w", err)
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decoding toml: %w", err)
		}
	default:
		return nil, fmt.Errorf("format %q: %w", format, domain.ErrUnsupportedFormat)
	}

	items, err := recordList(doc)
	if err != nil {
		return nil, err
	}

	records := make([]domain.Record, 0, len(items))
	seen := make(map[string]int, len(items))
	generated := make(map[string]int)
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("record %d is not an object: %w", i+1, domain.ErrInvalidInput)
		}
		rec := toRecord(obj)
		if rec.ID == "" {
			rec.ID = contentID(rec.Fields, generated)
		}
		if first, dup := seen[rec.ID]; dup {
			return nil, fmt.Errorf("records %d and %d share id %q: %w", first+1, i+1, rec.ID, domain.ErrDuplicateID)
		}
		seen[rec.ID] = i
		records = append(records, rec)
	}
	return records, nil
}

// recordList finds the list of record objects in a decoded document.
func recordList(doc any) ([]any, error) {
	switch v := doc.(type) {
	case nil:
		return nil, nil
	case []any:
		return v, nil
	case map[string]any:
		list, ok := v["records"]
		if !ok {
			return nil, fmt.Errorf("no \"records\" list in document: %w", domain.ErrInvalidInput)
		}
		items, ok := list.([]any)
		if !ok {
			return nil, fmt.Errorf("\"records\" is not a list: %w", domain.ErrInvalidInput)
		}
		return items, nil
	default:
		return nil, fmt.Errorf("document is neither a list nor an object: %w", domain.ErrInvalidInput)
	}
}

func toRecord(obj map[string]any) domain.Record {
	rec := domain.Record{Fields: make(map[string]string, len(obj))}
	for key, val := range obj {
		switch key {
		case idKey:
			rec.ID = strings.TrimSpace(stringify(val))
		case fieldsKey:
			if nested, ok := val.(map[string]any); ok {
				for k, v := range nested {
					rec.Fields[k] = stringify(v)
				}
				continue
			}
			rec.Fields[key] = stringify(val)
		default:
			rec.Fields[key] = stringify(val)
		}
	}
	return rec
}

// contentID derives a stable ID from the record's fields. Identical records
// are told apart by their occurrence count.
func contentID(fields map[string]string, generated map[string]int) string {
	canonical, _ := json.Marshal(fields) // map keys are sorted
	key := string(canonical)
	n := generated[key]
	generated[key] = n + 1
	if n > 0 {
		key += "#" + strconv.Itoa(n)
	}
	return uuid.NewSHA1(recordNamespace, []byte(key)).String()
}

// stringify renders a decoded value as field text. Null becomes "".
func stringify(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case json.Number:
		return v.String()
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case time.Time:
		return v.Format(time.RFC3339)
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = stringify(item)
		}
		return strings.Join(parts, ", ")
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + ": " + stringify(v[k])
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(v)
	}
}
