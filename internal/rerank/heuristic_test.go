package rerank

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeuristicReranker_PreservesOrderAndTruncates(t *testing.T) {
	r := NewHeuristicReranker()
	docs := []Document{{Content: "a"}, {Content: "b"}, {Content: "c"}}

	result, err := r.Rerank(context.Background(), "q", docs, 2)
	require.NoError(t, err)
	require.Len(t, result.Documents, 2)
	assert.Equal(t, "a", result.Documents[0].Content)
	assert.Equal(t, "b", result.Documents[1].Content)
	assert.Greater(t, result.Scores[0], result.Scores[1])
}

func TestHeuristicReranker_AlwaysAvailable(t *testing.T) {
	r := NewHeuristicReranker()
	assert.True(t, r.Available(context.Background()))
}
