package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sifter/internal/core/domain"
)

// setupTestStore creates a SQLite store in a temporary directory.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)
	t.Cleanup(func() { assert.NoError(t, store.Close()) })

	return store
}

func record(id, title string) domain.Record {
	return domain.Record{ID: id, Fields: map[string]string{"title": title}}
}

func ids(records []domain.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, DatabaseFile), store.Path())
	assert.FileExists(t, store.Path())
}

func TestStore_ReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, []domain.Record{record("1", "Red Fox")}))
	require.NoError(t, store.MarkLoaded(ctx, true))
	require.NoError(t, store.Close())

	// Migrations must not re-run on an existing database.
	store, err = NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	records, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, ids(records))
	assert.True(t, store.Loaded())
}

func TestStore_LoadEmpty(t *testing.T) {
	store := setupTestStore(t)

	records, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.False(t, store.Loaded())
}

func TestStore_SaveKeepsOrder(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, []domain.Record{record("b", "B"), record("a", "A")}))
	require.NoError(t, store.Save(ctx, []domain.Record{record("c", "C"), record("b", "B2")}))

	records, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "c"}, ids(records))
	assert.Equal(t, "B2", records[0].Field("title"))
}

func TestStore_SaveRejectsEmptyID(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	err := store.Save(ctx, []domain.Record{record("1", "ok"), record("", "bad")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	records, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestStore_SaveNilFields(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, []domain.Record{{ID: "1"}}))

	got, err := store.Get(ctx, "1")
	require.NoError(t, err)
	assert.Empty(t, got.Fields)
}

func TestStore_Get(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, []domain.Record{
		{ID: "1", Fields: map[string]string{"title": "Red Fox", "description": "Quick ünïcode"}},
	}))

	got, err := store.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Quick ünïcode", got.Field("description"))

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_MarkLoaded(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.MarkLoaded(ctx, true))
	assert.True(t, store.Loaded())

	require.NoError(t, store.MarkLoaded(ctx, false))
	assert.False(t, store.Loaded())
}

func TestStore_Clear(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, []domain.Record{record("1", "A")}))
	require.NoError(t, store.MarkLoaded(ctx, true))

	require.NoError(t, store.Clear(ctx))

	records, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.False(t, store.Loaded())

	// Positions restart after a clear.
	require.NoError(t, store.Save(ctx, []domain.Record{record("2", "B"), record("1", "A")}))
	records, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "1"}, ids(records))
}

func TestStore_CancelledContext(t *testing.T) {
	store := setupTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Load(ctx)
	assert.Error(t, err)
}
