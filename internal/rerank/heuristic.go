package rerank

import "context"

// HeuristicReranker is the always-available fallback: it preserves the
// input order (the adjusted lexical ranking the Query Engine already
// computed) and assigns strictly descending scores, so a FallbackReranker
// degrading to it is indistinguishable from "no reranking" except for
// truncation to limit.
type HeuristicReranker struct{}

// NewHeuristicReranker constructs the fallback reranker.
func NewHeuristicReranker() *HeuristicReranker {
	return &HeuristicReranker{}
}

func (r *HeuristicReranker) Rerank(ctx context.Context, query string, docs []Document, limit int) (Result, error) {
	if limit > len(docs) || limit <= 0 {
		limit = len(docs)
	}
	kept := docs[:limit]

	scores := make([]float64, len(kept))
	for i := range kept {
		scores[i] = float64(len(kept) - i)
	}
	return Result{Documents: kept, Scores: scores}, nil
}

func (r *HeuristicReranker) Name() string { return "heuristic" }

func (r *HeuristicReranker) Available(ctx context.Context) bool { return true }
