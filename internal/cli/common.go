package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/pommel-dev/probe/internal/config"
	"github.com/pommel-dev/probe/internal/fingerprint"
	"github.com/pommel-dev/probe/internal/index"
	"github.com/pommel-dev/probe/internal/pipeline"
	"github.com/pommel-dev/probe/internal/query"
	"github.com/pommel-dev/probe/internal/rerank"
	"github.com/pommel-dev/probe/internal/rerank/onnxrerank"
	"github.com/pommel-dev/probe/internal/walker"
)

const fingerprintFileName = "fingerprints.gob"

func probeDir(root string) string {
	return filepath.Join(root, walker.IndexDirName)
}

func indexDir(root string) string {
	return filepath.Join(probeDir(root), "index")
}

func fingerprintPath(root string) string {
	return filepath.Join(probeDir(root), fingerprintFileName)
}

func loadConfig(root string) (*config.Config, error) {
	cfg, err := config.NewLoader(root).Load()
	if err != nil {
		return nil, err
	}
	if err := config.ValidateOrError(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func pipelineConfig(cfg *config.Config) pipeline.Config {
	return pipeline.Config{
		Workers:      cfg.Index.Workers,
		HeapBudget:   cfg.Index.HeapBudgetBytes,
		ExcludeGlobs: cfg.ExcludePatterns,
	}
}

func openStore(root string, cfg *config.Config) (*index.Store, error) {
	store, err := index.Open(indexDir(root), cfg.Stemming.Enabled, cfg.Stemming.Language)
	if err != nil {
		return nil, fmt.Errorf("index not found or out of date in %s; run `probe index` first: %w", probeDir(root), err)
	}
	return store, nil
}

func createStore(root string, cfg *config.Config) (*index.Store, error) {
	if err := os.MkdirAll(probeDir(root), 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", probeDir(root), err)
	}
	return index.Create(indexDir(root), cfg.Stemming.Enabled, cfg.Stemming.Language)
}

func loadFingerprints(root string) *fingerprint.Store {
	return fingerprint.Load(fingerprintPath(root))
}

// buildReranker constructs the reranker collaborator configured by cfg, or
// nil if reranking is disabled. A local ONNX model that fails to load
// degrades to heuristic-only rather than failing the command.
func buildReranker(cfg *config.Config) rerank.Reranker {
	if !cfg.Reranker.Enabled {
		return nil
	}
	heuristic := rerank.NewHeuristicReranker()
	if cfg.Reranker.Model == "" {
		return heuristic
	}

	onnx, err := onnxrerank.New(cfg.Reranker.Model)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[WARN] reranker model %q unavailable, falling back to heuristic: %v\n", cfg.Reranker.Model, err)
		return heuristic
	}

	timeout := time.Duration(cfg.Reranker.TimeoutMs) * time.Millisecond
	return rerank.NewFallbackReranker(onnx, heuristic, timeout)
}

func buildEngine(store *index.Store, cfg *config.Config) *query.Engine {
	engine := query.NewEngine(store, buildReranker(cfg))
	engine.RerankEnabled = cfg.Reranker.Enabled
	engine.RerankMinCandidates = cfg.Reranker.MinCandidates
	engine.Highlighter = query.NewHighlighter(isatty.IsTerminal(os.Stdout.Fd()))
	return engine
}

func searchContext() context.Context {
	return context.Background()
}
