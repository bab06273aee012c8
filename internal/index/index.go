// Package index owns the persistent inverted index: a fixed schema, a
// custom identifier-splitting analyzer, and a commit/reader lifecycle,
// built on bleve.
package index

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/blevesearch/bleve/v2"
)

// schemaVersion bumps whenever the document schema or analyzer
// configuration changes incompatibly; a mismatch on Open triggers a full
// rebuild by the caller.
const schemaVersion = 1

const schemaMetaFile = "schema.json"

// schemaMeta records the fields of the schema that, if changed, invalidate
// an on-disk index.
type schemaMeta struct {
	Version         int    `json:"version"`
	StemmingEnabled bool   `json:"stemming_enabled"`
	StemmingLang    string `json:"stemming_language"`
}

// Document is the stored/indexed representation of one chunk.
type Document struct {
	Path        string `json:"path"`
	Declaration string `json:"declaration"`
	Body        string `json:"body"`
	Extension   string `json:"extension"`
	Kind        string `json:"kind"`
	Name        string `json:"name"`
	StartLine   int    `json:"start_line"`
	EndLine     int    `json:"end_line"`
}

// ErrSchemaMismatch is returned by Open when the on-disk schema is
// incompatible with the current code's schema.
var ErrSchemaMismatch = fmt.Errorf("index: on-disk schema incompatible, full rebuild required")

// Store owns a bleve index directory.
type Store struct {
	dir   string
	bleve bleve.Index
}

// Create creates a fresh index directory with the current schema and
// identifier-splitting analyzer. It fails if dir already exists.
func Create(dir string, stemmingEnabled bool, stemmingLanguage string) (*Store, error) {
	m, err := buildMapping(stemmingEnabled, stemmingLanguage)
	if err != nil {
		return nil, fmt.Errorf("index: %w", err)
	}

	idx, err := bleve.New(dir, m)
	if err != nil {
		return nil, fmt.Errorf("index: create %s: %w", dir, err)
	}

	if err := writeSchemaMeta(dir, stemmingEnabled, stemmingLanguage); err != nil {
		idx.Close()
		return nil, err
	}

	return &Store{dir: dir, bleve: idx}, nil
}

// Open opens an existing index directory, verifying the on-disk schema
// metadata matches the requested configuration. Returns ErrSchemaMismatch
// if not — the caller's recovery is to delete dir and Create again.
func Open(dir string, stemmingEnabled bool, stemmingLanguage string) (*Store, error) {
	meta, err := readSchemaMeta(dir)
	if err != nil {
		return nil, fmt.Errorf("index: %w", err)
	}
	if meta.Version != schemaVersion || meta.StemmingEnabled != stemmingEnabled || meta.StemmingLang != stemmingLanguage {
		return nil, ErrSchemaMismatch
	}

	idx, err := bleve.Open(dir)
	if err != nil {
		return nil, fmt.Errorf("index: open %s: %w", dir, ErrSchemaMismatch)
	}
	return &Store{dir: dir, bleve: idx}, nil
}

func writeSchemaMeta(dir string, stemmingEnabled bool, stemmingLanguage string) error {
	meta := schemaMeta{Version: schemaVersion, StemmingEnabled: stemmingEnabled, StemmingLang: stemmingLanguage}
	b, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("index: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, schemaMetaFile), b, 0o644); err != nil {
		return fmt.Errorf("index: %w", err)
	}
	return nil
}

func readSchemaMeta(dir string) (schemaMeta, error) {
	b, err := os.ReadFile(filepath.Join(dir, schemaMetaFile))
	if err != nil {
		return schemaMeta{}, ErrSchemaMismatch
	}
	var meta schemaMeta
	if err := json.Unmarshal(b, &meta); err != nil {
		return schemaMeta{}, ErrSchemaMismatch
	}
	return meta, nil
}

// Close releases the underlying index resources.
func (s *Store) Close() error {
	return s.bleve.Close()
}

// defaultHeapBudgetBytes is the approximate single-writer working budget;
// bleve has no direct heap-budget knob, so it is honored by capping batch
// size before a flush.
const defaultHeapBudgetBytes = 50 * 1024 * 1024

// approxBytes estimates a document's in-memory footprint for batching
// purposes (bleve has no API for exact accounting).
func approxBytes(d Document) int {
	return len(d.Path) + len(d.Declaration) + len(d.Body) + len(d.Name) + 64
}

// Writer is the single-writer handle used during an indexing pass. It
// accumulates documents into bleve batches, flushing automatically once the
// heap budget is approximately exhausted.
type Writer struct {
	store       *Store
	heapBudget  int
	batch       *bleve.Batch
	batchBytes  int
}

// NewWriter acquires the single-writer handle with the given working
// budget in bytes (≈50 MiB by convention).
func (s *Store) NewWriter(heapBudgetBytes int) *Writer {
	if heapBudgetBytes <= 0 {
		heapBudgetBytes = defaultHeapBudgetBytes
	}
	return &Writer{store: s, heapBudget: heapBudgetBytes, batch: s.bleve.NewBatch()}
}

// docID produces a stable identifier for a chunk's document: path, line
// range and chunk name.
func docID(d Document) string {
	return fmt.Sprintf("%s:%d:%d:%s", d.Path, d.StartLine, d.EndLine, d.Name)
}

// Add enqueues one document, flushing the current batch first if the
// writer's heap budget would be exceeded.
func (w *Writer) Add(d Document) error {
	size := approxBytes(d)
	if w.batchBytes+size > w.heapBudget && w.batch.Size() > 0 {
		if err := w.flush(); err != nil {
			return err
		}
	}
	if err := w.batch.Index(docID(d), d); err != nil {
		return fmt.Errorf("index: add document: %w", err)
	}
	w.batchBytes += size
	return nil
}

// DeletePath removes every document whose path field equals path, used
// when a file is reindexed or removed.
func (w *Writer) DeletePath(path string) error {
	q := bleve.NewTermQuery(path)
	q.SetField("path")
	req := bleve.NewSearchRequestOptions(q, 10000, 0, false)
	req.Fields = []string{"path"}
	result, err := w.store.bleve.Search(req)
	if err != nil {
		return fmt.Errorf("index: delete path %s: %w", path, err)
	}
	for _, hit := range result.Hits {
		w.batch.Delete(hit.ID)
	}
	return nil
}

func (w *Writer) flush() error {
	if w.batch.Size() == 0 {
		return nil
	}
	if err := w.store.bleve.Batch(w.batch); err != nil {
		return fmt.Errorf("index: batch: %w", err)
	}
	w.batch = w.store.bleve.NewBatch()
	w.batchBytes = 0
	return nil
}

// Commit flushes the pending batch, making it visible in one step to
// readers opened afterward. Batches that Add already flushed because the
// heap budget was exceeded became visible at that flush, before Commit, so
// a pass larger than the budget is not visible all at once.
func (w *Writer) Commit() error {
	return w.flush()
}

// Field name constants for the fixed schema (§3): declaration, body and
// name are indexed with term vectors via the identifier analyzer; path,
// extension and kind are each indexed as a single atomic term (keyword
// analyzer); start_line/end_line are stored only.
const (
	FieldPath        = "path"
	FieldDeclaration = "declaration"
	FieldBody        = "body"
	FieldExtension   = "extension"
	FieldKind        = "kind"
	FieldName        = "name"
	FieldStartLine   = "start_line"
	FieldEndLine     = "end_line"
)

// Search executes req against the index's current reader snapshot (as of
// the last Commit) and returns the raw bleve result.
func (s *Store) Search(req *bleve.SearchRequest) (*bleve.SearchResult, error) {
	result, err := s.bleve.Search(req)
	if err != nil {
		return nil, fmt.Errorf("index: search: %w", err)
	}
	return result, nil
}

