package rerank

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubReranker struct {
	name      string
	available bool
	result    Result
	err       error
}

func (s *stubReranker) Rerank(ctx context.Context, query string, docs []Document, limit int) (Result, error) {
	if s.err != nil {
		return Result{}, s.err
	}
	return s.result, nil
}
func (s *stubReranker) Name() string                        { return s.name }
func (s *stubReranker) Available(ctx context.Context) bool { return s.available }

func TestFallbackReranker_UsesSecondaryWhenPrimaryUnavailable(t *testing.T) {
	secondary := &stubReranker{name: "secondary", available: true, result: Result{Documents: []Document{{Content: "x"}}, Scores: []float64{1}}}
	primary := &stubReranker{name: "primary", available: false}

	f := NewFallbackReranker(primary, secondary, time.Second)
	result, err := f.Rerank(context.Background(), "q", nil, 1)
	require.NoError(t, err)
	assert.Equal(t, secondary.result, result)
}

func TestFallbackReranker_FallsBackOnPrimaryError(t *testing.T) {
	secondary := &stubReranker{name: "secondary", available: true, result: Result{Documents: []Document{{Content: "y"}}, Scores: []float64{1}}}
	primary := &stubReranker{name: "primary", available: true, err: errors.New("boom")}

	f := NewFallbackReranker(primary, secondary, time.Second)
	result, err := f.Rerank(context.Background(), "q", nil, 1)
	require.NoError(t, err)
	assert.Equal(t, secondary.result, result)
}

func TestFallbackReranker_NeverReturnsErrorOnce(t *testing.T) {
	secondary := NewHeuristicReranker()
	primary := &stubReranker{name: "primary", available: true, err: errors.New("boom")}

	f := NewFallbackReranker(primary, secondary, time.Second)
	docs := []Document{{Content: "a"}, {Content: "b"}}
	result, err := f.Rerank(context.Background(), "q", docs, 2)
	require.NoError(t, err)
	assert.Len(t, result.Documents, 2)
}
