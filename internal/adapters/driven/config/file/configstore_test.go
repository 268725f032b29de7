package file

import (
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *ConfigStore {
	t.Helper()
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_WithNestedDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Set("search.tolerance", 1))
	_, err = os.Stat(filepath.Join(dir, "config.toml"))
	assert.NoError(t, err)
}

func TestOpenConfigFile_CreatesOnSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sifter.toml")

	store, err := OpenConfigFile(path)
	require.NoError(t, err)
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, store.Set("records.source", "records.json"))
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Set("search.title_field", "name"))
	require.NoError(t, store.Set("search.items_per_page", 20))
	require.NoError(t, store.Set("search.threshold", 0.3))
	require.NoError(t, store.Set("search.promote_fields", false))
	require.NoError(t, store.Set("search.fields", []string{"title", "body"}))

	assert.Equal(t, "name", store.GetString("search.title_field"))
	assert.Equal(t, "", store.GetString("search.items_per_page"))
	assert.Equal(t, 20, store.GetInt("search.items_per_page"))
	assert.Equal(t, 0, store.GetInt("search.title_field"))
	assert.InDelta(t, 0.3, store.GetFloat("search.threshold"), 1e-9)
	assert.InDelta(t, 20.0, store.GetFloat("search.items_per_page"), 1e-9)
	assert.False(t, store.GetBool("search.promote_fields"))
	assert.Equal(t, []string{"title", "body"}, store.GetStringSlice("search.fields"))

	_, ok := store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_SaveReload_PreservesData(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Set("search.items_per_page", 5))
	require.NoError(t, store.Set("search.threshold", 0.25))
	require.NoError(t, store.Set("weights.title", 3.0))
	require.NoError(t, store.Set("weights.body", 1))
	require.NoError(t, store.Set("search.fields", []string{"title", "body"}))
	require.NoError(t, store.Set("highlight.open", "["))

	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, 5, reloaded.GetInt("search.items_per_page"))
	assert.InDelta(t, 0.25, reloaded.GetFloat("search.threshold"), 1e-9)
	assert.InDelta(t, 3.0, reloaded.GetFloat("weights.title"), 1e-9)
	assert.InDelta(t, 1.0, reloaded.GetFloat("weights.body"), 1e-9)
	assert.Equal(t, []string{"title", "body"}, reloaded.GetStringSlice("search.fields"))
	assert.Equal(t, "[", reloaded.GetString("highlight.open"))
	assert.Equal(t, []string{"weights.body", "weights.title"}, reloaded.Keys("weights."))
}

func TestConfigStore_WritesNestedTables(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Set("search.tolerance", 1))
	require.NoError(t, store.Set("weights.title", 2.0))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	assert.Contains(t, string(data), "[search]")
	assert.Contains(t, string(data), "[weights]")
}

func TestConfigStore_LoadsHandWrittenFile(t *testing.T) {
	dir := t.TempDir()
	content := `
[search]
fields = ["title", "description"]
excerpt_field = "description"
items_per_page = 5

[weights]
title = 2
description = 0.5
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"title", "description"}, store.GetStringSlice("search.fields"))
	assert.Equal(t, "description", store.GetString("search.excerpt_field"))
	assert.Equal(t, 5, store.GetInt("search.items_per_page"))
	assert.InDelta(t, 2.0, store.GetFloat("weights.title"), 1e-9)
	assert.InDelta(t, 0.5, store.GetFloat("weights.description"), 1e-9)
}

func TestConfigStore_FilePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not enforced on windows")
	}
	store := newStore(t)
	require.NoError(t, store.Set("records.source", "x.json"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), nil, 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Empty(t, store.Keys(""))
}

func TestConfigStore_Load_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("not [valid"), 0600))

	_, err := NewConfigStore(dir)
	assert.Error(t, err)
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := newStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Set("search.items_per_page", i+1)
			_ = store.GetInt("search.items_per_page")
			_ = store.Keys("search.")
		}()
	}
	wg.Wait()

	assert.Positive(t, store.GetInt("search.items_per_page"))
}

func TestNestMap(t *testing.T) {
	flat := map[string]any{
		"a":     1,
		"b.c":   2,
		"b.d.e": 3,
		"a.x":   4,
	}

	nested := nestMap(flat)

	assert.Equal(t, 1, nested["a"])
	b, ok := nested["b"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 2, b["c"])
	d, ok := b["d"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 3, d["e"])
}

func TestFlattenMap(t *testing.T) {
	nested := map[string]any{
		"search": map[string]any{"tolerance": int64(2)},
		"top":    "x",
	}

	assert.Equal(t, map[string]any{"search.tolerance": int64(2), "top": "x"}, flattenMap(nested, ""))
}
