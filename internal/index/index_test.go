package index

import (
	"path/filepath"
	"testing"

	"github.com/blevesearch/bleve/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_CreateIndexAndSearch(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "index")
	store, err := Create(dir, true, "english")
	require.NoError(t, err)
	defer store.Close()

	w := store.NewWriter(0)
	require.NoError(t, w.Add(Document{
		Path: "main.rs", Declaration: "fn main() {", Body: "}",
		Extension: "rs", Kind: "Function", Name: "main",
	}))
	require.NoError(t, w.Commit())

	q := bleve.NewMatchQuery("main")
	q.SetField(FieldName)
	req := bleve.NewSearchRequest(q)
	result, err := store.Search(req)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), result.Total)
}

func TestStore_OpenDetectsSchemaMismatch(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "index")
	store, err := Create(dir, true, "english")
	require.NoError(t, err)
	require.NoError(t, store.Close())

	_, err = Open(dir, false, "english")
	assert.ErrorIs(t, err, ErrSchemaMismatch)
}

func TestStore_OpenSucceedsWithMatchingSchema(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "index")
	store, err := Create(dir, true, "english")
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := Open(dir, true, "english")
	require.NoError(t, err)
	defer reopened.Close()
}

func TestSupportedStemmingLanguage(t *testing.T) {
	assert.True(t, SupportedStemmingLanguage("english"))
	assert.False(t, SupportedStemmingLanguage("klingon"))
}
