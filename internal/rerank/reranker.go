// Package rerank implements the second retrieval stage: an external
// collaborator that scores (query, document) pairs, plus a heuristic
// fallback the Query Engine uses when no reranker is configured or the
// configured one fails.
package rerank

import (
	"context"
	"time"
)

// Document is one candidate passed to a Reranker: its snippet text and
// path/kind/name/line-range metadata.
type Document struct {
	Content  string
	Metadata map[string]string
}

// Result is a reranker's verdict: documents in descending relevance order,
// with a parallel slice of per-item scores in [0, ∞). The core does not
// interpret the score scale, only the ordering.
type Result struct {
	Documents []Document
	Scores    []float64
}

// Reranker scores an ordered list of candidate documents against a query
// and returns the top `limit` in descending relevance.
type Reranker interface {
	Rerank(ctx context.Context, query string, docs []Document, limit int) (Result, error)
	Name() string
	Available(ctx context.Context) bool
}

// FallbackReranker tries primary and falls back to secondary if primary is
// unavailable or fails within timeout — mirroring the core's contract that
// reranker failure falls back to the adjusted lexical ranking, never an
// error.
type FallbackReranker struct {
	primary   Reranker
	secondary Reranker
	timeout   time.Duration
}

// NewFallbackReranker builds a FallbackReranker.
func NewFallbackReranker(primary, secondary Reranker, timeout time.Duration) *FallbackReranker {
	return &FallbackReranker{primary: primary, secondary: secondary, timeout: timeout}
}

func (r *FallbackReranker) Rerank(ctx context.Context, query string, docs []Document, limit int) (Result, error) {
	if !r.primary.Available(ctx) {
		return r.secondary.Rerank(ctx, query, docs, limit)
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	result, err := r.primary.Rerank(timeoutCtx, query, docs, limit)
	if err != nil {
		return r.secondary.Rerank(ctx, query, docs, limit)
	}
	return result, nil
}

func (r *FallbackReranker) Name() string {
	return r.primary.Name() + "->" + r.secondary.Name()
}

func (r *FallbackReranker) Available(ctx context.Context) bool {
	return r.primary.Available(ctx) || r.secondary.Available(ctx)
}
