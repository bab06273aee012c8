// Package walker produces a lazy sequence of candidate source file paths
// under a root directory, honoring gitignore exclusions plus a fixed binary
// extension blacklist and the index directory's own name.
package walker

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// IndexDirName is the conventional name of the index directory, always
// excluded from the walk.
const IndexDirName = ".probe"

// binaryExtensions is the fixed blacklist of extensions the walker never
// yields: executables, images, audio/video, archives, and binary documents.
var binaryExtensions = map[string]bool{
	".exe": true, ".dll": true, ".so": true, ".dylib": true, ".bin": true,
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".bmp": true, ".ico": true, ".webp": true,
	".mp3": true, ".wav": true, ".flac": true, ".mp4": true, ".mov": true, ".avi": true, ".mkv": true,
	".zip": true, ".tar": true, ".gz": true, ".bz2": true, ".xz": true, ".7z": true, ".rar": true,
	".pdf": true, ".doc": true, ".docx": true, ".xls": true, ".xlsx": true, ".ppt": true, ".pptx": true,
}

// Walker enumerates candidate source files under a root, lazily, via Walk.
type Walker struct {
	root            string
	ignore          *gitignore
	excludePatterns []glob.Glob
}

// New constructs a Walker rooted at root. excludePatterns are extra flat
// glob patterns (beyond .gitignore/.probeignore) matched against the
// slash-separated path relative to root.
func New(root string, excludePatterns []string) (*Walker, error) {
	ig, err := newGitignore(root)
	if err != nil {
		return nil, fmt.Errorf("walker: %w", err)
	}

	w := &Walker{root: root, ignore: ig}
	for _, p := range excludePatterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("walker: invalid exclude pattern %q: %w", p, err)
		}
		w.excludePatterns = append(w.excludePatterns, g)
	}
	return w, nil
}

// Walk invokes fn for every candidate regular file path under root, in
// directory-tree order. fn receives the absolute path. Walk stops and
// returns fn's error if fn returns non-nil.
func (w *Walker) Walk(fn func(absPath string) error) error {
	return filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, relErr := filepath.Rel(w.root, path)
		if relErr != nil {
			return relErr
		}
		if rel == "." {
			return nil
		}
		relSlash := filepath.ToSlash(rel)

		if d.IsDir() {
			if w.ignore.shouldIgnore(relSlash) {
				return filepath.SkipDir
			}
			return nil
		}

		if w.ignore.shouldIgnore(relSlash) {
			return nil
		}
		if w.matchesExclude(relSlash) {
			return nil
		}
		if binaryExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		return fn(path)
	})
}

func (w *Walker) matchesExclude(relSlash string) bool {
	for _, g := range w.excludePatterns {
		if g.Match(relSlash) {
			return true
		}
	}
	return false
}
