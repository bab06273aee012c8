// Package fingerprint persists per-file size+mtime records used to decide
// which files need reindexing, as a single gob-encoded blob written
// atomically via write-then-rename.
package fingerprint

import (
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Record is one file's fingerprint: size in bytes and last-modified time.
type Record struct {
	Size  int64
	MTime time.Time
}

// Store is a keyed map of absolute path to Record, loaded from and saved to
// a single file.
type Store struct {
	path    string
	entries map[string]Record
}

// Load opens the store at path, returning an empty store if the file is
// missing or unreadable/corrupt — the fingerprint is advisory, so a lost
// update at worst causes redundant reindexing on the next run.
func Load(path string) *Store {
	s := &Store{path: path, entries: make(map[string]Record)}

	f, err := os.Open(path)
	if err != nil {
		return s
	}
	defer f.Close()

	var entries map[string]Record
	if err := gob.NewDecoder(f).Decode(&entries); err != nil {
		return s
	}
	s.entries = entries
	return s
}

// Diff flags each input path as changed if it is absent from the store, or
// its current size or mtime differs from the stored values, or it is
// missing from the filesystem (the caller may then index or remove it).
func (s *Store) Diff(paths []string) []string {
	var changed []string
	for _, p := range paths {
		rec, ok := s.entries[p]
		if !ok {
			changed = append(changed, p)
			continue
		}
		info, err := os.Stat(p)
		if err != nil {
			changed = append(changed, p)
			continue
		}
		if info.Size() != rec.Size || !info.ModTime().Equal(rec.MTime) {
			changed = append(changed, p)
		}
	}
	return changed
}

// Update refreshes or inserts path's entry from current filesystem
// metadata. It does not persist; call Save afterward.
func (s *Store) Update(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("fingerprint: stat %s: %w", path, err)
	}
	s.entries[path] = Record{Size: info.Size(), MTime: info.ModTime()}
	return nil
}

// Remove deletes path's entry, for files that no longer exist on disk.
func (s *Store) Remove(path string) {
	delete(s.entries, path)
}

// Len reports the number of entries currently held.
func (s *Store) Len() int {
	return len(s.entries)
}

// Save persists the store atomically: encode to a temp file in the same
// directory, then rename over the target.
func (s *Store) Save() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("fingerprint: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".fingerprint-*.tmp")
	if err != nil {
		return fmt.Errorf("fingerprint: %w", err)
	}
	tmpPath := tmp.Name()

	if err := gob.NewEncoder(tmp).Encode(s.entries); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("fingerprint: encode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("fingerprint: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("fingerprint: rename: %w", err)
	}
	return nil
}

// ErrNotFound is returned by nothing today but kept for callers that want
// to distinguish "missing" explicitly via errors.Is against a future error.
var ErrNotFound = errors.New("fingerprint: entry not found")
