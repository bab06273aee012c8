package query

import (
	"regexp"
	"strings"

	"github.com/fatih/color"

	"github.com/pommel-dev/probe/internal/chunk"
)

const fragmentWindowChars = 160

// Highlighter renders a result's snippet text, varying by chunk kind and
// emitting ANSI highlights only when attached to a terminal.
type Highlighter struct {
	Color bool
}

// NewHighlighter builds a Highlighter. useColor should reflect whether
// stdout is a terminal (isatty), not a blanket preference.
func NewHighlighter(useColor bool) Highlighter {
	return Highlighter{Color: useColor}
}

// Snippet renders the display text for one result.
//
//   - Function/Method: the declaration followed by the body, both
//     highlighted; if the body is empty, only the declaration is shown.
//   - Other (whole-file fallback chunks): the best matching fragment within
//     a +/- contextLines window around the first hit.
//   - everything else (Class/Interface/Struct/Module/...): a library-default
//     best-fragment window over the body text.
func (h Highlighter) Snippet(kind chunk.Kind, query, declaration, body string, contextLines int) string {
	terms := queryTerms(query)

	switch kind {
	case chunk.KindFunction, chunk.KindMethod:
		decl := h.highlight(declaration, terms)
		if strings.TrimSpace(body) == "" {
			return decl
		}
		return decl + "\n" + h.highlight(body, terms)
	case chunk.KindOther:
		return h.highlight(bestFragmentByLines(body, terms, contextLines), terms)
	default:
		return h.highlight(bestFragmentByChars(body, terms, fragmentWindowChars), terms)
	}
}

func queryTerms(query string) []string {
	fields := strings.Fields(query)
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f != "" {
			terms = append(terms, f)
		}
	}
	return terms
}

// bestFragmentByLines finds the first line containing any query term and
// returns it with contextLines of surrounding context on either side.
func bestFragmentByLines(text string, terms []string, contextLines int) string {
	if strings.TrimSpace(text) == "" {
		return text
	}
	lines := strings.Split(text, "\n")
	hit := firstMatchingLine(lines, terms)
	if hit < 0 {
		hit = 0
	}
	start := hit - contextLines
	if start < 0 {
		start = 0
	}
	end := hit + contextLines + 1
	if end > len(lines) {
		end = len(lines)
	}
	return strings.Join(lines[start:end], "\n")
}

func firstMatchingLine(lines []string, terms []string) int {
	for i, line := range lines {
		lower := strings.ToLower(line)
		for _, t := range terms {
			if strings.Contains(lower, strings.ToLower(t)) {
				return i
			}
		}
	}
	return -1
}

// bestFragmentByChars centers a fixed-width window on the first matching
// term, mirroring a generic search-library fragmenter.
func bestFragmentByChars(text string, terms []string, window int) string {
	if strings.TrimSpace(text) == "" {
		return text
	}
	lower := strings.ToLower(text)
	idx := -1
	for _, t := range terms {
		if i := strings.Index(lower, strings.ToLower(t)); i >= 0 && (idx < 0 || i < idx) {
			idx = i
		}
	}
	if idx < 0 {
		idx = 0
	}
	half := window / 2
	start := idx - half
	if start < 0 {
		start = 0
	}
	end := start + window
	if end > len(text) {
		end = len(text)
		start = end - window
		if start < 0 {
			start = 0
		}
	}
	fragment := text[start:end]
	if start > 0 {
		fragment = "..." + fragment
	}
	if end < len(text) {
		fragment = fragment + "..."
	}
	return fragment
}

// highlightColor always emits escapes; whether to highlight at all is
// decided by Highlighter.Color, not by fatih/color's own terminal check.
var highlightColor = func() *color.Color {
	c := color.New(color.FgYellow, color.Bold)
	c.EnableColor()
	return c
}()

// highlight wraps every case-insensitive occurrence of each term in bold
// yellow ANSI codes, or leaves text untouched when Color is false.
func (h Highlighter) highlight(text string, terms []string) string {
	if !h.Color || text == "" || len(terms) == 0 {
		return text
	}
	pattern := termPattern(terms)
	if pattern == nil {
		return text
	}
	return pattern.ReplaceAllStringFunc(text, func(match string) string {
		return highlightColor.Sprint(match)
	})
}

func termPattern(terms []string) *regexp.Regexp {
	parts := make([]string, 0, len(terms))
	for _, t := range terms {
		if t == "" {
			continue
		}
		parts = append(parts, regexp.QuoteMeta(t))
	}
	if len(parts) == 0 {
		return nil
	}
	return regexp.MustCompile("(?i)(" + strings.Join(parts, "|") + ")")
}
