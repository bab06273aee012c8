// Package query implements the Query Engine: multi-field boosted search
// against the Index Store, score adjustments, optional neural reranking,
// and kind-dependent snippet generation.
package query

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search"

	"github.com/pommel-dev/probe/internal/chunk"
	"github.com/pommel-dev/probe/internal/index"
	"github.com/pommel-dev/probe/internal/rerank"
)

// Field boosts per spec.md §4.5.
const (
	declarationBoost = 3.0
	nameBoost        = 2.5
	bodyBoost        = 1.0
)

// Score multipliers, compose multiplicatively.
const (
	testPathMultiplier      = 0.5
	containerKindMultiplier = 0.6
)

var containerKinds = map[chunk.Kind]bool{
	chunk.KindClass:     true,
	chunk.KindInterface: true,
	chunk.KindStruct:    true,
}

// Result is one ranked hit returned to the caller.
type Result struct {
	Path      string
	Kind      chunk.Kind
	Name      string
	StartLine int
	EndLine   int
	Score     float64
	Snippet   string
}

// candidate carries the raw stored text alongside Result so snippet
// generation and reranking don't need a second index lookup.
type candidate struct {
	Result
	declaration string
	body        string
}

// Engine answers search queries against an open index, with optional
// reranking.
type Engine struct {
	store    *index.Store
	reranker rerank.Reranker

	RerankEnabled       bool
	RerankMinCandidates int
	Highlighter         Highlighter
}

// NewEngine builds a Query Engine over store. reranker may be nil, in which
// case reranking is never attempted regardless of RerankEnabled.
func NewEngine(store *index.Store, reranker rerank.Reranker) *Engine {
	return &Engine{
		store:               store,
		reranker:            reranker,
		RerankMinCandidates: 20,
		Highlighter:         NewHighlighter(false),
	}
}

// Search parses queryText against the boosted schema, retrieves candidates,
// adjusts scores, optionally reranks, and generates snippets.
func (e *Engine) Search(ctx context.Context, queryText string, limit int, extFilter string, contextLines int) ([]Result, error) {
	if strings.TrimSpace(queryText) == "" {
		return nil, fmt.Errorf("query: empty query text")
	}
	if limit <= 0 {
		limit = 10
	}

	finalQuery := boostedQuery(queryText, extFilter)

	fetchLimit := limit
	rerankActive := e.RerankEnabled && e.reranker != nil
	if rerankActive {
		fetchLimit = maxInt(e.RerankMinCandidates, limit*2)
	}

	req := bleve.NewSearchRequestOptions(finalQuery, fetchLimit, 0, false)
	req.Fields = []string{
		index.FieldPath, index.FieldDeclaration, index.FieldBody,
		index.FieldExtension, index.FieldKind, index.FieldName,
		index.FieldStartLine, index.FieldEndLine,
	}

	searchResult, err := e.store.Search(req)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	candidates := make([]candidate, 0, len(searchResult.Hits))
	for _, hit := range searchResult.Hits {
		candidates = append(candidates, candidateFromHit(hit))
	}

	for i := range candidates {
		candidates[i].Score *= adjustmentMultiplier(candidates[i].Result)
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].Score > candidates[j].Score })

	if rerankActive && len(candidates) >= 2 {
		candidates, err = e.rerank(ctx, queryText, candidates, limit, contextLines)
		if err != nil {
			return nil, err
		}
	} else if limit < len(candidates) {
		candidates = candidates[:limit]
	}

	results := make([]Result, len(candidates))
	for i, c := range candidates {
		c.Snippet = e.Highlighter.Snippet(c.Kind, queryText, c.declaration, c.body, contextLines)
		results[i] = c.Result
	}
	return results, nil
}

// rerank replaces lexical scores with the reranker's relevance scores; it
// never combines the two, per the fallback contract in internal/rerank.
func (e *Engine) rerank(ctx context.Context, queryText string, candidates []candidate, limit, contextLines int) ([]candidate, error) {
	docs := make([]rerank.Document, len(candidates))
	for i, c := range candidates {
		docs[i] = rerank.Document{
			Content: e.Highlighter.Snippet(c.Kind, queryText, c.declaration, c.body, contextLines),
			Metadata: map[string]string{
				"path":       c.Path,
				"kind":       string(c.Kind),
				"name":       c.Name,
				"start_line": fmt.Sprint(c.StartLine),
				"end_line":   fmt.Sprint(c.EndLine),
			},
		}
	}

	result, err := e.reranker.Rerank(ctx, queryText, docs, limit)
	if err != nil {
		return nil, fmt.Errorf("query: rerank: %w", err)
	}

	byContent := make(map[string]candidate, len(candidates))
	for i, d := range docs {
		byContent[d.Content] = candidates[i]
	}

	reranked := make([]candidate, 0, len(result.Documents))
	for i, d := range result.Documents {
		c, ok := byContent[d.Content]
		if !ok {
			continue
		}
		c.Score = result.Scores[i]
		reranked = append(reranked, c)
	}
	return reranked, nil
}

func candidateFromHit(hit *search.DocumentMatch) candidate {
	c := candidate{Result: Result{
		Path:  fieldString(hit, index.FieldPath),
		Kind:  chunk.Kind(fieldString(hit, index.FieldKind)),
		Name:  fieldString(hit, index.FieldName),
		Score: hit.Score,
	}}
	c.StartLine = fieldInt(hit, index.FieldStartLine)
	c.EndLine = fieldInt(hit, index.FieldEndLine)
	c.declaration = fieldString(hit, index.FieldDeclaration)
	c.body = fieldString(hit, index.FieldBody)
	return c
}

func fieldString(hit *search.DocumentMatch, name string) string {
	v, ok := hit.Fields[name]
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

func fieldInt(hit *search.DocumentMatch, name string) int {
	v, ok := hit.Fields[name]
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	default:
		return 0
	}
}

func boostedQuery(queryText, extFilter string) bleve.Query {
	declQuery := bleve.NewMatchQuery(queryText)
	declQuery.SetField(index.FieldDeclaration)
	declQuery.SetBoost(declarationBoost)

	nameQuery := bleve.NewMatchQuery(queryText)
	nameQuery.SetField(index.FieldName)
	nameQuery.SetBoost(nameBoost)

	bodyQuery := bleve.NewMatchQuery(queryText)
	bodyQuery.SetField(index.FieldBody)
	bodyQuery.SetBoost(bodyBoost)

	textQuery := bleve.NewDisjunctionQuery(declQuery, nameQuery, bodyQuery)

	if extFilter == "" {
		return textQuery
	}

	extQuery := bleve.NewTermQuery(extFilter)
	extQuery.SetField(index.FieldExtension)
	return bleve.NewConjunctionQuery(textQuery, extQuery)
}

func adjustmentMultiplier(r Result) float64 {
	m := 1.0
	if rerank.ContainsTestPath(r.Path) {
		m *= testPathMultiplier
	}
	if containerKinds[r.Kind] {
		m *= containerKindMultiplier
	}
	return m
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
