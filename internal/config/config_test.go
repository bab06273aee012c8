package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	assert.Empty(t, Validate(cfg))
}

func TestDefault_HasNoRerankerModelConfigured(t *testing.T) {
	cfg := Default()
	assert.Empty(t, cfg.Reranker.Model, "default config should fall back to the heuristic reranker")
	assert.True(t, cfg.Reranker.Enabled)
}

func TestDefault_StemmingDisabledByDefault(t *testing.T) {
	cfg := Default()
	assert.False(t, cfg.Stemming.Enabled)
	assert.Equal(t, "english", cfg.Stemming.Language)
}
