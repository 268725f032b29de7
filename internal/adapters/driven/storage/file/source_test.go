package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sifter/internal/core/domain"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestFormatFor(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"records.json", FormatJSON, false},
		{"records.JSON", FormatJSON, false},
		{"records.yaml", FormatYAML, false},
		{"records.yml", FormatYAML, false},
		{"records.toml", FormatTOML, false},
		{"records.csv", "", true},
		{"records", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFor(tt.path)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecode_Formats(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		data   string
	}{
		{
			name:   "json list",
			format: FormatJSON,
			data:   `[{"id":"1","title":"Red Fox","year":1999},{"id":"2","title":"Blue Bear","year":2001}]`,
		},
		{
			name:   "json records object",
			format: FormatJSON,
			data:   `{"records":[{"id":"1","title":"Red Fox","year":1999},{"id":2,"title":"Blue Bear","year":2001}]}`,
		},
		{
			name:   "yaml",
			format: FormatYAML,
			data:   "- id: \"1\"\n  title: Red Fox\n  year: 1999\n- id: 2\n  title: Blue Bear\n  year: 2001\n",
		},
		{
			name:   "toml",
			format: FormatTOML,
			data:   "[[records]]\nid = \"1\"\ntitle = \"Red Fox\"\nyear = 1999\n\n[[records]]\nid = \"2\"\ntitle = \"Blue Bear\"\nyear = 2001\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := Decode([]byte(tt.data), tt.format)
			require.NoError(t, err)
			require.Len(t, records, 2)

			assert.Equal(t, "1", records[0].ID)
			assert.Equal(t, "Red Fox", records[0].Field("title"))
			assert.Equal(t, "1999", records[0].Field("year"))
			assert.Equal(t, "2", records[1].ID)
			assert.Equal(t, "Blue Bear", records[1].Field("title"))
			assert.NotContains(t, records[0].Fields, "id")
		})
	}
}

func TestDecode_Stringify(t *testing.T) {
	data := `[{"id":"1","price":9.5,"active":true,"note":null,"tags":["a","b"],"meta":{"z":1,"a":"x"}}]`

	records, err := Decode([]byte(data), FormatJSON)
	require.NoError(t, err)

	rec := records[0]
	assert.Equal(t, "9.5", rec.Field("price"))
	assert.Equal(t, "true", rec.Field("active"))
	assert.Equal(t, "", rec.Field("note"))
	assert.Equal(t, "a, b", rec.Field("tags"))
	assert.Equal(t, "a: x, z: 1", rec.Field("meta"))
}

func TestDecode_NestedFields(t *testing.T) {
	data := `[{"id":"1","fields":{"title":"Red Fox","description":"quick"}}]`

	records, err := Decode([]byte(data), FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"title": "Red Fox", "description": "quick"}, records[0].Fields)
}

func TestDecode_GeneratedIDs(t *testing.T) {
	data := `[{"title":"Red Fox"},{"title":"Red Fox"},{"title":"Blue Bear"}]`

	first, err := Decode([]byte(data), FormatJSON)
	require.NoError(t, err)
	second, err := Decode([]byte(data), FormatJSON)
	require.NoError(t, err)

	require.Len(t, first, 3)
	for i := range first {
		assert.NotEmpty(t, first[i].ID)
		assert.Equal(t, first[i].ID, second[i].ID, "ids are stable across loads")
	}
	assert.NotEqual(t, first[0].ID, first[1].ID)
	assert.NotEqual(t, first[0].ID, first[2].ID)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name    string
		format  Format
		data    string
		wantErr error
	}{
		{"duplicate id", FormatJSON, `[{"id":"1"},{"id":"1"}]`, domain.ErrDuplicateID},
		{"not an object", FormatJSON, `["x"]`, domain.ErrInvalidInput},
		{"object without records", FormatJSON, `{"items":[]}`, domain.ErrInvalidInput},
		{"records not a list", FormatJSON, `{"records":{}}`, domain.ErrInvalidInput},
		{"scalar document", FormatJSON, `42`, domain.ErrInvalidInput},
		{"unknown format", Format("csv"), `a,b`, domain.ErrUnsupportedFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data), tt.format)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDecode_Malformed(t *testing.T) {
	_, err := Decode([]byte(`[{"id":`), FormatJSON)
	assert.Error(t, err)

	_, err = Decode([]byte("records = [\n"), FormatTOML)
	assert.Error(t, err)
}

func TestDecode_Empty(t *testing.T) {
	records, err := Decode([]byte(`[]`), FormatJSON)
	require.NoError(t, err)
	assert.Empty(t, records)

	records, err = Decode([]byte(""), FormatYAML)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSource_Load(t *testing.T) {
	path := writeFile(t, "records.json", `[{"id":"1","title":"Red Fox"}]`)
	src, err := NewSource(path)
	require.NoError(t, err)

	assert.False(t, src.Loaded())
	assert.Equal(t, path, src.Path())

	records, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.True(t, src.Loaded())
}

func TestSource_LoadMissingFile(t *testing.T) {
	src, err := NewSource(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	_, err = src.Load(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.False(t, src.Loaded())
}

func TestSource_LoadCancelled(t *testing.T) {
	src, err := NewSource(writeFile(t, "records.json", `[]`))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = src.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewSource_UnsupportedExtension(t *testing.T) {
	_, err := NewSource("records.txt")
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestReadFile(t *testing.T) {
	path := writeFile(t, "records.toml", "[[records]]\nid = \"a\"\ntitle = \"x\"\n")

	records, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a", records[0].ID)
}
