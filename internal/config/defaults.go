package config

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: schemaVersion,
		IncludePatterns: []string{
			"**/*.go",
			"**/*.java",
		},
		ExcludePatterns: []string{
			"**/node_modules/**",
			"**/vendor/**",
			"**/bin/**",
			"**/obj/**",
			"**/dist/**",
		},
		Index: IndexConfig{
			HeapBudgetBytes: 50 * 1024 * 1024,
			Workers:         8,
		},
		Stemming: StemmingConfig{
			Enabled:  false,
			Language: "english",
		},
		Search: SearchConfig{
			DefaultLimit: 10,
			ContextLines: 2,
		},
		Reranker: RerankerConfig{
			Enabled:       true,
			Model:         "", // empty = heuristic fallback only
			TimeoutMs:     2000,
			MinCandidates: 20,
		},
	}
}
