package chunker

import (
	"strings"

	"github.com/pommel-dev/probe/internal/chunk"
)

// FallbackProcessor handles any extension without a dedicated language
// processor: it treats the whole file as a single Other chunk named "file",
// unless the content is empty once trimmed.
type FallbackProcessor struct{}

// NewFallbackProcessor constructs the extension-agnostic fallback.
func NewFallbackProcessor() *FallbackProcessor {
	return &FallbackProcessor{}
}

func (p *FallbackProcessor) Extensions() []string { return nil }

func (p *FallbackProcessor) Chunk(content []byte) ([]chunk.Chunk, error) {
	if strings.TrimSpace(string(content)) == "" {
		return nil, nil
	}
	lines := strings.Split(string(content), "\n")
	end := len(lines) - 1
	if end < 0 {
		end = 0
	}
	return []chunk.Chunk{{
		Kind:        chunk.KindOther,
		Name:        "file",
		StartLine:   0,
		EndLine:     end,
		Declaration: "",
		Content:     string(content),
	}}, nil
}
