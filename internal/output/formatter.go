// Package output formats query.Result sets for the CLI's human-readable
// modes (JSON output bypasses this package entirely, see internal/cli).
package output

import (
	"fmt"
	"strings"

	"github.com/pommel-dev/probe/internal/query"
)

// FormatMode specifies the output format.
type FormatMode int

const (
	// FormatNormal is the standard compact output.
	FormatNormal FormatMode = iota
	// FormatVerbose includes match reasons.
	FormatVerbose
)

// Formatter handles search result output formatting.
type Formatter struct {
	Mode  FormatMode
	Query string
}

// NewFormatter creates a formatter with the specified mode.
func NewFormatter(mode FormatMode, query string) *Formatter {
	return &Formatter{Mode: mode, Query: query}
}

// FormatResult formats a single search result.
func (f *Formatter) FormatResult(result query.Result, index int) string {
	if f.Mode == FormatVerbose {
		return f.formatVerbose(result, index)
	}
	return f.formatNormal(result, index)
}

// formatNormal produces compact single-line output: [index] path:lines (kind) name [score]
func (f *Formatter) formatNormal(result query.Result, index int) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[%d] ", index+1))
	sb.WriteString(result.Path)
	sb.WriteString(fmt.Sprintf(":%d-%d", result.StartLine, result.EndLine))
	sb.WriteString(fmt.Sprintf(" (%s)", result.Kind))
	if result.Name != "" {
		sb.WriteString(fmt.Sprintf(" %s", result.Name))
	}
	sb.WriteString(fmt.Sprintf(" [%.3f]", result.Score))
	return sb.String()
}

// formatVerbose produces detailed multi-line output with match reasons and
// a snippet preview.
func (f *Formatter) formatVerbose(result query.Result, index int) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("[%d] %s:%d-%d\n", index+1, result.Path, result.StartLine, result.EndLine))
	sb.WriteString(fmt.Sprintf("    Kind: %s", result.Kind))
	if result.Name != "" {
		sb.WriteString(fmt.Sprintf(" | Name: %s", result.Name))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("    Score: %.4f\n", result.Score))

	reasons := GenerateMatchReasons(result, f.Query)
	if len(reasons) > 0 {
		sb.WriteString(fmt.Sprintf("    Reasons: %s\n", strings.Join(reasons, ", ")))
	}

	if result.Snippet != "" {
		sb.WriteString(fmt.Sprintf("    Preview: %s\n", truncateContent(result.Snippet, 160)))
	}

	return sb.String()
}

// FormatSummary formats the search summary line.
func (f *Formatter) FormatSummary(count int) string {
	return fmt.Sprintf("Found %d results", count)
}

// truncateContent collapses newlines/whitespace and truncates to maxLen.
func truncateContent(content string, maxLen int) string {
	content = strings.ReplaceAll(content, "\n", " ")
	content = strings.ReplaceAll(content, "\t", " ")
	for strings.Contains(content, "  ") {
		content = strings.ReplaceAll(content, "  ", " ")
	}
	content = strings.TrimSpace(content)
	if len(content) <= maxLen {
		return content
	}
	return content[:maxLen-3] + "..."
}
