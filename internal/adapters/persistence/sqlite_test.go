package persistence

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xcro3dile/mohur-go/internal/domain/entities"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "kb.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	store := newTestSQLite(t)
	ctx := context.Background()

	entries := []entities.KnowledgeEntry{
		{Question: "what is go", Answer: "A programming language"},
		{Question: "hello", Answer: "Hi!"},
	}
	require.NoError(t, store.Save(ctx, entries))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, entries, loaded)
}

func TestSQLiteStore_EmptyDatabase(t *testing.T) {
	store := newTestSQLite(t)

	loaded, err := store.Load(context.Background())

	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestSQLiteStore_SaveReplacesWholesale(t *testing.T) {
	store := newTestSQLite(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, []entities.KnowledgeEntry{
		{Question: "old", Answer: "gone"},
		{Question: "older", Answer: "also gone"},
	}))
	require.NoError(t, store.Save(ctx, []entities.KnowledgeEntry{
		{Question: "new", Answer: "kept"},
	}))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "new", loaded[0].Question)
}

func TestSQLiteStore_PreservesOrder(t *testing.T) {
	store := newTestSQLite(t)
	ctx := context.Background()

	entries := []entities.KnowledgeEntry{
		{Question: "zeta", Answer: "1"},
		{Question: "alpha", Answer: "2"},
		{Question: "mid", Answer: "3"},
	}
	require.NoError(t, store.Save(ctx, entries))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 3)
	assert.Equal(t, "zeta", loaded[0].Question)
	assert.Equal(t, "alpha", loaded[1].Question)
	assert.Equal(t, "mid", loaded[2].Question)
}

func TestSQLiteStore_UnicodeVerbatim(t *testing.T) {
	store := newTestSQLite(t)
	ctx := context.Background()

	entries := []entities.KnowledgeEntry{{Question: "如何问好", Answer: "你好 👋"}}
	require.NoError(t, store.Save(ctx, entries))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, entries, loaded)
}
