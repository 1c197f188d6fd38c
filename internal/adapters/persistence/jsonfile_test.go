package persistence

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xcro3dile/mohur-go/internal/domain/entities"
)

func TestJSONFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb.json")
	f := NewJSONFile(path)
	ctx := context.Background()

	entries := []entities.KnowledgeEntry{
		{Question: "what is go", Answer: "A programming language"},
		{Question: "hello", Answer: "Hi!"},
	}

	require.NoError(t, f.Save(ctx, entries))

	loaded, err := f.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, entries, loaded)
}

func TestJSONFile_PreservesOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb.json")
	f := NewJSONFile(path)
	ctx := context.Background()

	entries := []entities.KnowledgeEntry{
		{Question: "zeta", Answer: "1"},
		{Question: "alpha", Answer: "2"},
		{Question: "mid", Answer: "3"},
	}
	require.NoError(t, f.Save(ctx, entries))

	loaded, err := f.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 3)
	assert.Equal(t, "zeta", loaded[0].Question)
	assert.Equal(t, "alpha", loaded[1].Question)
	assert.Equal(t, "mid", loaded[2].Question)
}

func TestJSONFile_MissingFileIsEmpty(t *testing.T) {
	f := NewJSONFile(filepath.Join(t.TempDir(), "nope.json"))

	loaded, err := f.Load(context.Background())

	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestJSONFile_MalformedFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	loaded, err := NewJSONFile(path).Load(context.Background())

	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestJSONFile_NonObjectIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb.json")
	require.NoError(t, os.WriteFile(path, []byte(`["a","b"]`), 0o644))

	loaded, err := NewJSONFile(path).Load(context.Background())

	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestJSONFile_UnicodeVerbatim(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb.json")
	f := NewJSONFile(path)
	ctx := context.Background()

	entries := []entities.KnowledgeEntry{
		{Question: "如何问好", Answer: "你好 👋"},
		{Question: "qué tal", Answer: "¡Bien! <& sons>"},
	}
	require.NoError(t, f.Save(ctx, entries))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "你好 👋")
	assert.Contains(t, string(data), "<& sons>", "HTML escaping must be off")

	loaded, err := f.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, entries, loaded)
}

func TestJSONFile_SaveOverwritesWholesale(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb.json")
	f := NewJSONFile(path)
	ctx := context.Background()

	require.NoError(t, f.Save(ctx, []entities.KnowledgeEntry{{Question: "old", Answer: "gone"}}))
	require.NoError(t, f.Save(ctx, []entities.KnowledgeEntry{{Question: "new", Answer: "kept"}}))

	loaded, err := f.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "new", loaded[0].Question)
}

func TestJSONFile_SaveEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb.json")
	f := NewJSONFile(path)
	ctx := context.Background()

	require.NoError(t, f.Save(ctx, nil))

	loaded, err := f.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestJSONFile_SaveCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "kb.json")
	f := NewJSONFile(path)

	require.NoError(t, f.Save(context.Background(), []entities.KnowledgeEntry{{Question: "q", Answer: "a"}}))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestJSONFile_LeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	f := NewJSONFile(filepath.Join(dir, "kb.json"))

	require.NoError(t, f.Save(context.Background(), []entities.KnowledgeEntry{{Question: "q", Answer: "a"}}))

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "kb.json", files[0].Name())
}

func TestJSONFile_ReadsHandWrittenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb.json")
	raw := `{"what is your name": "I am Mohur AI", "hello": "Hi there!"}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	loaded, err := NewJSONFile(path).Load(context.Background())

	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "what is your name", loaded[0].Question)
	assert.Equal(t, "I am Mohur AI", loaded[0].Answer)
}
