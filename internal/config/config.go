// Package config loads, validates, and resolves probe's project configuration.
package config

// schemaVersion is the current Config.Version; Migrate upgrades configs
// written by older versions of probe.
const schemaVersion = 1

// Config is the complete probe configuration, loaded from .probe.yaml.
type Config struct {
	Version         int            `yaml:"version" json:"version" mapstructure:"version"`
	IncludePatterns []string       `yaml:"include_patterns" json:"include_patterns" mapstructure:"include_patterns"`
	ExcludePatterns []string       `yaml:"exclude_patterns" json:"exclude_patterns" mapstructure:"exclude_patterns"`
	Index           IndexConfig    `yaml:"index" json:"index" mapstructure:"index"`
	Stemming        StemmingConfig `yaml:"stemming" json:"stemming" mapstructure:"stemming"`
	Search          SearchConfig   `yaml:"search" json:"search" mapstructure:"search"`
	Reranker        RerankerConfig `yaml:"reranker" json:"reranker" mapstructure:"reranker"`
}

// IndexConfig contains Index Store and Indexing Pipeline settings.
type IndexConfig struct {
	HeapBudgetBytes int `yaml:"heap_budget_bytes" json:"heap_budget_bytes" mapstructure:"heap_budget_bytes"`
	Workers         int `yaml:"workers" json:"workers" mapstructure:"workers"`
}

// StemmingConfig controls the identifier analyzer's optional Snowball
// stemming step.
type StemmingConfig struct {
	Enabled  bool   `yaml:"enabled" json:"enabled" mapstructure:"enabled"`
	Language string `yaml:"language" json:"language" mapstructure:"language"`
}

// SearchConfig contains Query Engine defaults.
type SearchConfig struct {
	DefaultLimit int `yaml:"default_limit" json:"default_limit" mapstructure:"default_limit"`
	ContextLines int `yaml:"context_lines" json:"context_lines" mapstructure:"context_lines"`
}

// RerankerConfig controls the optional reranking stage.
type RerankerConfig struct {
	Enabled       bool   `yaml:"enabled" json:"enabled" mapstructure:"enabled"`
	Model         string `yaml:"model" json:"model,omitempty" mapstructure:"model"` // local ONNX model dir; empty = heuristic only
	TimeoutMs     int    `yaml:"timeout_ms" json:"timeout_ms" mapstructure:"timeout_ms"`
	MinCandidates int    `yaml:"min_candidates" json:"min_candidates" mapstructure:"min_candidates"`
}
