//go:build integration

// Package integration exercises the full Walker -> Chunker -> Fingerprint
// Store -> Index Store -> Indexing Pipeline -> Query Engine flow against a
// real project directory on disk, the way a CLI invocation would.
package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pommel-dev/probe/internal/chunk"
	"github.com/pommel-dev/probe/internal/fingerprint"
	"github.com/pommel-dev/probe/internal/index"
	"github.com/pommel-dev/probe/internal/pipeline"
	"github.com/pommel-dev/probe/internal/query"
)

// createTestProject writes a small multi-language project to dir: a Go
// file, a Java file, and a Go test file whose path contains "test" (to
// exercise the Query Engine's test-path score penalty).
func createTestProject(t *testing.T, dir string) {
	t.Helper()

	goSrc := `package calc

// Calculator accumulates arithmetic history.
type Calculator struct {
	history []string
}

// Add returns a + b.
func (c *Calculator) Add(a, b float64) float64 {
	result := a + b
	c.history = append(c.history, "add")
	return result
}

// Subtract returns a - b.
func (c *Calculator) Subtract(a, b float64) float64 {
	return a - b
}
`
	javaSrc := `package calc;

/** A simple calculator. */
public class Calculator {
    private java.util.List<String> history = new java.util.ArrayList<>();

    /** Adds two numbers together. */
    public double add(double a, double b) {
        double result = a + b;
        history.add("add");
        return result;
    }

    public double subtract(double a, double b) {
        return a - b;
    }
}
`
	testSrc := `package calc

import "testing"

func TestAdd(t *testing.T) {
	c := &Calculator{}
	if c.Add(1, 2) != 3 {
		t.Fatal("add failed")
	}
}
`
	writeFile(t, filepath.Join(dir, "calculator.go"), goSrc)
	writeFile(t, filepath.Join(dir, "Calculator.java"), javaSrc)
	writeFile(t, filepath.Join(dir, "calculator_test.go"), testSrc)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func buildIndex(t *testing.T, root string) (*index.Store, *fingerprint.Store) {
	t.Helper()

	store, err := index.Create(filepath.Join(root, ".probe", "index"), false, "")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	fp := fingerprint.Load(filepath.Join(root, ".probe", "fingerprints.gob"))
	_, err = pipeline.Full(root, store, fp, pipeline.Config{})
	require.NoError(t, err)

	return store, fp
}

func TestIntegration_FullFlow_IndexesAllLanguages(t *testing.T) {
	dir := t.TempDir()
	createTestProject(t, dir)

	store, _ := buildIndex(t, dir)
	engine := query.NewEngine(store, nil)

	results, err := engine.Search(context.Background(), "Calculator", 10, "", 2)
	require.NoError(t, err)
	require.NotEmpty(t, results)

	var sawGo, sawJava bool
	for _, r := range results {
		switch filepath.Ext(r.Path) {
		case ".go":
			sawGo = true
		case ".java":
			sawJava = true
		}
	}
	assert.True(t, sawGo, "expected at least one Go result")
	assert.True(t, sawJava, "expected at least one Java result")
}

func TestIntegration_SearchPenalizesTestPaths(t *testing.T) {
	dir := t.TempDir()
	createTestProject(t, dir)

	store, _ := buildIndex(t, dir)
	engine := query.NewEngine(store, nil)

	results, err := engine.Search(context.Background(), "Add", 10, "", 2)
	require.NoError(t, err)
	require.NotEmpty(t, results)

	var methodRank, testRank = -1, -1
	for i, r := range results {
		if r.Kind == chunk.KindMethod && r.Name == "Add" {
			methodRank = i
		}
		if filepath.Base(r.Path) == "calculator_test.go" {
			testRank = i
		}
	}
	if methodRank >= 0 && testRank >= 0 {
		assert.Less(t, methodRank, testRank, "the Add method should outrank the test file referencing it")
	}
}

func TestIntegration_IncrementalReindexOnlyTouchesChangedFiles(t *testing.T) {
	dir := t.TempDir()
	createTestProject(t, dir)

	store, fp := buildIndex(t, dir)

	// No changes: incremental pass indexes nothing.
	result, err := pipeline.Incremental(dir, store, fp, pipeline.Config{})
	require.NoError(t, err)
	assert.Equal(t, 0, result.IndexedFiles)

	// Modify one file; only it should be reindexed.
	writeFile(t, filepath.Join(dir, "calculator.go"), `package calc

// Calculator now also multiplies.
type Calculator struct{ history []string }

func (c *Calculator) Multiply(a, b float64) float64 { return a * b }
`)
	result, err = pipeline.Incremental(dir, store, fp, pipeline.Config{})
	require.NoError(t, err)
	assert.Equal(t, 1, result.IndexedFiles)

	engine := query.NewEngine(store, nil)
	results, err := engine.Search(context.Background(), "Multiply", 10, "", 2)
	require.NoError(t, err)
	assert.NotEmpty(t, results)
}
