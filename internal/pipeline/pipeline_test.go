package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/blevesearch/bleve/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pommel-dev/probe/internal/fingerprint"
	"github.com/pommel-dev/probe/internal/index"
)

func writeFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func search(t *testing.T, store *index.Store, field, term string) uint64 {
	t.Helper()
	q := bleve.NewMatchQuery(term)
	q.SetField(field)
	result, err := store.Search(bleve.NewSearchRequest(q))
	require.NoError(t, err)
	return result.Total
}

func TestFull_IndexesMultipleLanguagesAndSkipsOversize(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.rs", "fn main() {}")
	writeFile(t, root, "config.json", `{"database_url": "x"}`)
	writeFile(t, root, "huge.txt", strings.Repeat("a", 600*1024))

	idxDir := filepath.Join(root, ".probe", "index")
	store, err := index.Create(idxDir, true, "english")
	require.NoError(t, err)
	defer store.Close()

	fp := fingerprint.Load(filepath.Join(root, ".probe", "metadata.bin"))

	res, err := Full(root, store, fp, Config{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.SkippedFiles)
	assert.GreaterOrEqual(t, res.IndexedFiles, 2)

	assert.Positive(t, search(t, store, index.FieldBody, "main"))
	assert.Equal(t, 3, fp.Len())
}

func TestIncremental_OnlyReindexesChangedFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.rs", "fn main() {}")

	idxDir := filepath.Join(root, ".probe", "index")
	store, err := index.Create(idxDir, true, "english")
	require.NoError(t, err)
	defer store.Close()

	fpPath := filepath.Join(root, ".probe", "metadata.bin")
	fp := fingerprint.Load(fpPath)
	_, err = Full(root, store, fp, Config{})
	require.NoError(t, err)

	writeFile(t, root, "new.rs", "fn new_function(){}")

	res, err := Incremental(root, store, fp, Config{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.IndexedFiles)
	assert.Equal(t, 2, fp.Len())
}
