package rerank

import "strings"

// ContainsTestPath reports whether filePath, case-insensitively, looks like
// it belongs to test code — grounds the Query Engine's 0.5 score multiplier
// for hits whose path contains the substring "test".
func ContainsTestPath(filePath string) bool {
	return strings.Contains(strings.ToLower(filePath), "test")
}
