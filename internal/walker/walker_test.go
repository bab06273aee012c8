package walker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestWalker_HonorsGitignore(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".gitignore", "*.log\n")
	writeFile(t, root, "main.go", "package main")
	writeFile(t, root, "ignored.log", "indexed")

	w, err := New(root, nil)
	require.NoError(t, err)

	var seen []string
	require.NoError(t, w.Walk(func(p string) error {
		seen = append(seen, filepath.Base(p))
		return nil
	}))

	assert.Contains(t, seen, "main.go")
	assert.NotContains(t, seen, "ignored.log")
}

func TestWalker_ExcludesIndexAndGitDirs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".probe/index.bin", "x")
	writeFile(t, root, ".git/HEAD", "x")
	writeFile(t, root, "src/main.go", "package main")

	w, err := New(root, nil)
	require.NoError(t, err)

	var seen []string
	require.NoError(t, w.Walk(func(p string) error {
		seen = append(seen, p)
		return nil
	}))

	for _, p := range seen {
		assert.NotContains(t, p, ".probe")
		assert.NotContains(t, p, ".git")
	}
}

func TestWalker_SkipsBinaryExtensions(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "logo.png", "x")
	writeFile(t, root, "main.go", "package main")

	w, err := New(root, nil)
	require.NoError(t, err)

	var seen []string
	require.NoError(t, w.Walk(func(p string) error {
		seen = append(seen, filepath.Base(p))
		return nil
	}))

	assert.Contains(t, seen, "main.go")
	assert.NotContains(t, seen, "logo.png")
}

func TestWalker_ExtraExcludePatterns(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "vendor/lib.go", "package vendor")
	writeFile(t, root, "main.go", "package main")

	w, err := New(root, []string{"vendor/**"})
	require.NoError(t, err)

	var seen []string
	require.NoError(t, w.Walk(func(p string) error {
		seen = append(seen, filepath.Base(p))
		return nil
	}))

	assert.Contains(t, seen, "main.go")
	assert.NotContains(t, seen, "lib.go")
}
