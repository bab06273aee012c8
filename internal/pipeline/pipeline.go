// Package pipeline orchestrates the Walker, Chunker and Index Store into a
// single indexing pass: a fixed-size worker pool reads and chunks files in
// parallel, funneling documents through a bounded channel to the index's
// single writer.
package pipeline

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/pommel-dev/probe/internal/chunker"
	"github.com/pommel-dev/probe/internal/fingerprint"
	"github.com/pommel-dev/probe/internal/index"
	"github.com/pommel-dev/probe/internal/walker"
)

// Limits enforced on every file before it is chunked.
const (
	maxFileSize = 512 * 1024
	maxLineSize = 8 * 1024
)

// DefaultWorkers is the default worker-pool size for file reading and
// chunking.
const DefaultWorkers = 8

// Config controls one indexing pass.
type Config struct {
	Workers      int
	HeapBudget   int
	ExcludeGlobs []string
}

func (c Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return DefaultWorkers
}

// Result summarizes one completed pass.
type Result struct {
	IndexedFiles int
	SkippedFiles int
}

// Full performs a full rebuild: every file under root is walked, chunked
// and indexed into store; the fingerprint store is updated only after a
// successful commit.
func Full(root string, store *index.Store, fp *fingerprint.Store, cfg Config) (Result, error) {
	paths, err := collectPaths(root, cfg)
	if err != nil {
		return Result{}, err
	}
	return indexPaths(paths, nil, store, fp, cfg)
}

// Incremental walks root, diffs against fp, and reindexes only changed
// files; entries for files no longer present on disk are removed from both
// the index and the fingerprint store.
func Incremental(root string, store *index.Store, fp *fingerprint.Store, cfg Config) (Result, error) {
	paths, err := collectPaths(root, cfg)
	if err != nil {
		return Result{}, err
	}

	changed := fp.Diff(paths)
	present := make(map[string]bool, len(paths))
	for _, p := range paths {
		present[p] = true
	}

	var toIndex, toRemove []string
	for _, p := range changed {
		if present[p] {
			toIndex = append(toIndex, p)
		} else {
			toRemove = append(toRemove, p)
		}
	}

	return indexPaths(toIndex, toRemove, store, fp, cfg)
}

func collectPaths(root string, cfg Config) ([]string, error) {
	w, err := walker.New(root, cfg.ExcludeGlobs)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	var paths []string
	if err := w.Walk(func(p string) error {
		paths = append(paths, p)
		return nil
	}); err != nil {
		return nil, fmt.Errorf("pipeline: walk: %w", err)
	}
	return paths, nil
}

// readAndChunk reads path, validates it against the size/line/UTF-8 limits,
// and chunks it. Any failure here is a silent per-file skip.
func readAndChunk(reg *chunker.Registry, path string) ([]index.Document, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, false
	}
	if info.Size() > maxFileSize {
		return nil, false
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	if !utf8.Valid(content) {
		return nil, false
	}
	for _, line := range strings.Split(string(content), "\n") {
		if len(line) > maxLineSize {
			return nil, false
		}
	}

	chunks, err := reg.Chunk(path, content)
	if err != nil {
		return nil, false
	}

	docs := make([]index.Document, 0, len(chunks))
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	for _, c := range chunks {
		docs = append(docs, index.Document{
			Path:        path,
			Declaration: c.Declaration,
			Body:        c.Content,
			Extension:   ext,
			Kind:        string(c.Kind),
			Name:        c.Name,
			StartLine:   c.StartLine,
			EndLine:     c.EndLine,
		})
	}
	return docs, true
}

// indexPaths is the worker-pool core: toIndex files are read, chunked and
// enqueued to the index's single writer (on a fixed-size pool); toRemove
// files have their existing documents deleted. The Fingerprint Store is
// updated only after a successful Commit.
func indexPaths(toIndex, toRemove []string, store *index.Store, fp *fingerprint.Store, cfg Config) (Result, error) {
	reg := chunker.NewRegistry()
	writer := store.NewWriter(cfg.HeapBudget)

	type fileDocs struct {
		path string
		docs []index.Document
		ok   bool
	}

	jobs := make(chan string)
	results := make(chan fileDocs, cfg.workers())

	var wg sync.WaitGroup
	for i := 0; i < cfg.workers(); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				docs, ok := readAndChunk(reg, path)
				results <- fileDocs{path: path, docs: docs, ok: ok}
			}
		}()
	}

	go func() {
		for _, p := range toIndex {
			jobs <- p
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var res Result
	for fd := range results {
		if !fd.ok {
			res.SkippedFiles++
			log.Printf("pipeline: skipping %s: unreadable, non-UTF-8, oversize, or unparseable", fd.path)
			continue
		}
		if err := writer.DeletePath(fd.path); err != nil {
			return res, fmt.Errorf("pipeline: %w", err)
		}
		for _, d := range fd.docs {
			if err := writer.Add(d); err != nil {
				return res, fmt.Errorf("pipeline: %w", err)
			}
		}
		res.IndexedFiles++
	}

	for _, p := range toRemove {
		if err := writer.DeletePath(p); err != nil {
			return res, fmt.Errorf("pipeline: %w", err)
		}
	}

	if err := writer.Commit(); err != nil {
		return res, fmt.Errorf("pipeline: commit failed, fingerprint store not updated: %w", err)
	}

	for _, p := range toIndex {
		if err := fp.Update(p); err != nil {
			continue
		}
	}
	for _, p := range toRemove {
		fp.Remove(p)
	}
	if err := fp.Save(); err != nil {
		return res, fmt.Errorf("pipeline: %w", err)
	}

	return res, nil
}
