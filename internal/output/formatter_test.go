package output

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pommel-dev/probe/internal/chunk"
	"github.com/pommel-dev/probe/internal/query"
)

func TestNewFormatter(t *testing.T) {
	f := NewFormatter(FormatNormal, "q")
	assert.Equal(t, FormatNormal, f.Mode)

	f = NewFormatter(FormatVerbose, "q")
	assert.Equal(t, FormatVerbose, f.Mode)
}

func sampleResult() query.Result {
	return query.Result{
		Path:      "internal/cli/search.go",
		StartLine: 42,
		EndLine:   58,
		Kind:      chunk.KindFunction,
		Name:      "executeSearch",
		Score:     0.8765,
		Snippet:   "func executeSearch() error",
	}
}

func TestFormatResult_Normal(t *testing.T) {
	f := NewFormatter(FormatNormal, "executeSearch")
	line := f.FormatResult(sampleResult(), 0)

	assert.Contains(t, line, "[1]")
	assert.Contains(t, line, "internal/cli/search.go")
	assert.Contains(t, line, ":42-58")
	assert.Contains(t, line, "(Function)")
	assert.Contains(t, line, "executeSearch")
	assert.Contains(t, line, "[0.876")
}

func TestFormatResult_Verbose(t *testing.T) {
	f := NewFormatter(FormatVerbose, "executeSearch")
	out := f.FormatResult(sampleResult(), 0)

	assert.Contains(t, out, "internal/cli/search.go:42-58")
	assert.Contains(t, out, "Kind: Function")
	assert.Contains(t, out, "Reasons:")
	assert.Contains(t, out, "Preview:")
}

func TestFormatSummary(t *testing.T) {
	f := NewFormatter(FormatNormal, "q")
	assert.Equal(t, "Found 3 results", f.FormatSummary(3))
}

func TestTruncateContent(t *testing.T) {
	assert.Equal(t, "short", truncateContent("short", 20))
	assert.Equal(t, "a b", truncateContent("a  b", 20))
	long := truncateContent("this line is definitely longer than the limit allows for sure", 20)
	assert.LessOrEqual(t, len(long), 20)
	assert.Contains(t, long, "...")
}
