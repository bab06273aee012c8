// Package chunker dispatches source files to language-specific processors
// that split them into chunks, falling back to a whole-file chunk for
// unrecognized extensions.
package chunker

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pommel-dev/probe/internal/chunk"
)

// Registry maps file extensions to Processors. The mapping is fixed at
// construction time.
type Registry struct {
	byExt    map[string]Processor
	fallback Processor
}

// NewRegistry builds the registry with every built-in language processor
// registered plus the whole-file fallback.
func NewRegistry() *Registry {
	r := &Registry{
		byExt:    make(map[string]Processor),
		fallback: NewFallbackProcessor(),
	}
	for _, p := range []Processor{NewJavaProcessor(), NewGoProcessor()} {
		for _, ext := range p.Extensions() {
			r.byExt[ext] = p
		}
	}
	return r
}

// Chunk dispatches path's extension to the registered processor, falling
// back to the whole-file processor for unrecognized extensions. If the
// chosen processor fails to parse, the caller should treat that as a fatal
// per-file error (the pipeline skips the file without aborting the batch).
func (r *Registry) Chunk(path string, content []byte) ([]chunk.Chunk, error) {
	ext := strings.ToLower(filepath.Ext(path))
	proc, ok := r.byExt[ext]
	if !ok {
		proc = r.fallback
	}
	chunks, err := proc.Chunk(content)
	if err != nil {
		return nil, fmt.Errorf("chunker: %s: %w", path, err)
	}
	return dedupOrdered(chunks), nil
}

// dedupOrdered drops duplicate identical chunks, keeping the first
// occurrence. It does not sort: ascending start_line order comes from the
// processors' source-order walks and is preserved as is.
func dedupOrdered(chunks []chunk.Chunk) []chunk.Chunk {
	seen := make(map[chunk.Chunk]bool, len(chunks))
	out := make([]chunk.Chunk, 0, len(chunks))
	for _, c := range chunks {
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// Dump chunks a single file and returns its chunks without touching any
// index — a debug inspection entry point mirroring the original tool's
// show_chunks mode.
func (r *Registry) Dump(path string, content []byte) ([]chunk.Chunk, error) {
	return r.Chunk(path, content)
}
