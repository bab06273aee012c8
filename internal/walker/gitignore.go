package walker

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// gitignore evaluates gitignore-style patterns (the built-in .probe/ and
// .git/ entries, repo .gitignore, and a local .probeignore) against
// candidate paths, in the order patterns were added — later negations
// override earlier matches, matching git's own precedence rules. Exclude
// globs from config are not held here; the Walker matches them separately.
type gitignore struct {
	root     string
	patterns []ignorePattern
}

type ignorePattern struct {
	negation bool
	dirOnly  bool
	pattern  string
}

// newGitignore loads .gitignore then .probeignore from root, in that order.
// Parent-directory and global gitignore files are not read.
func newGitignore(root string) (*gitignore, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, os.ErrNotExist
	}

	g := &gitignore{root: root}
	g.addPattern(".probe/")
	g.addPattern(".git/")

	if err := g.loadFile(filepath.Join(root, ".gitignore")); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if err := g.loadFile(filepath.Join(root, ".probeignore")); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return g, nil
}

func (g *gitignore) loadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		g.addPattern(line)
	}
	return scanner.Err()
}

func (g *gitignore) addPattern(p string) {
	pat := ignorePattern{}
	if strings.HasPrefix(p, "!") {
		pat.negation = true
		p = p[1:]
	}
	if strings.HasSuffix(p, "/") {
		pat.dirOnly = true
		p = strings.TrimSuffix(p, "/")
	}
	pat.pattern = p
	g.patterns = append(g.patterns, pat)
}

// shouldIgnore reports whether relPath (slash-separated, relative to root)
// should be excluded from the walk.
func (g *gitignore) shouldIgnore(relPath string) bool {
	relPath = filepath.ToSlash(relPath)
	ignored := false
	for _, pat := range g.patterns {
		if matchesIgnorePattern(relPath, pat) {
			ignored = !pat.negation
		}
	}
	return ignored
}

func matchesIgnorePattern(path string, pat ignorePattern) bool {
	p := pat.pattern

	if strings.Contains(p, "**") {
		return matchDoubleStar(path, p)
	}
	if pat.dirOnly {
		return matchDirectory(path, p)
	}
	if strings.Contains(p, "*") && !strings.Contains(p, "/") {
		return matchGlobComponent(path, p)
	}
	if strings.Contains(p, "/") {
		return matchPathPrefix(path, p)
	}
	return matchBasename(path, p)
}

func matchDoubleStar(path, pattern string) bool {
	if !strings.HasPrefix(pattern, "**/") {
		return false
	}
	sub := pattern[3:]
	if matched, _ := filepath.Match(sub, filepath.Base(path)); matched {
		return true
	}
	parts := strings.Split(path, "/")
	for i := range parts {
		subPath := strings.Join(parts[i:], "/")
		if matched, _ := filepath.Match(sub, subPath); matched {
			return true
		}
	}
	return false
}

func matchDirectory(path, pattern string) bool {
	if strings.Contains(pattern, "/") {
		if strings.HasPrefix(path, pattern+"/") ||
			path == pattern ||
			strings.Contains(path, "/"+pattern+"/") ||
			strings.HasSuffix(path, "/"+pattern) {
			return true
		}
		return strings.HasPrefix(path, pattern)
	}
	for _, part := range strings.Split(path, "/") {
		if part == pattern {
			return true
		}
	}
	return false
}

func matchGlobComponent(path, pattern string) bool {
	if matched, _ := filepath.Match(pattern, filepath.Base(path)); matched {
		return true
	}
	for _, part := range strings.Split(path, "/") {
		if matched, _ := filepath.Match(pattern, part); matched {
			return true
		}
	}
	return false
}

func matchPathPrefix(path, pattern string) bool {
	if strings.HasPrefix(path, pattern) {
		return true
	}
	return strings.Contains(path, "/"+pattern)
}

func matchBasename(path, pattern string) bool {
	return filepath.Base(path) == pattern
}
