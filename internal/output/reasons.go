package output

import (
	"strings"

	"github.com/pommel-dev/probe/internal/chunk"
	"github.com/pommel-dev/probe/internal/query"
	"github.com/pommel-dev/probe/internal/rerank"
)

var containerKinds = map[chunk.Kind]bool{
	chunk.KindClass:     true,
	chunk.KindInterface: true,
	chunk.KindStruct:    true,
}

// MaxReasons is the maximum number of reasons returned for one result.
const MaxReasons = 5

// GenerateMatchReasons produces human-readable explanations of why a
// result matched and how its score was adjusted.
func GenerateMatchReasons(result query.Result, queryText string) []string {
	reasons := []string{}
	if queryText == "" {
		return reasons
	}

	terms := extractTerms(queryText)

	if result.Name != "" {
		for _, t := range terms {
			if strings.Contains(strings.ToLower(result.Name), t) {
				reasons = append(reasons, "name contains '"+t+"'")
				break
			}
		}
	}

	for _, t := range terms {
		if strings.Contains(strings.ToLower(result.Path), t) {
			reasons = append(reasons, "path contains '"+t+"'")
			break
		}
	}

	if strings.Contains(strings.ToLower(result.Snippet), strings.ToLower(queryText)) {
		reasons = append(reasons, "exact phrase match")
	}

	if rerank.ContainsTestPath(result.Path) {
		reasons = append(reasons, "test-path score penalty applied")
	}
	if containerKinds[result.Kind] {
		reasons = append(reasons, "container-kind score penalty applied")
	}

	reasons = deduplicateReasons(reasons)
	if len(reasons) > MaxReasons {
		reasons = reasons[:MaxReasons]
	}
	if len(reasons) == 0 {
		reasons = append(reasons, "keyword relevance")
	}
	return reasons
}

// extractTerms splits a query into lowercase terms.
func extractTerms(queryText string) []string {
	words := strings.Fields(queryText)
	terms := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.Trim(w, ".,;:!?\"'()[]{}|")
		if len(w) > 1 {
			terms = append(terms, strings.ToLower(w))
		}
	}
	return terms
}

// deduplicateReasons removes duplicate reasons, case-insensitively.
func deduplicateReasons(reasons []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(reasons))
	for _, r := range reasons {
		if r == "" {
			continue
		}
		lower := strings.ToLower(r)
		if !seen[lower] {
			seen[lower] = true
			result = append(result, r)
		}
	}
	return result
}
