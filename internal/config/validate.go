package config

import (
	"fmt"
	"strings"

	"github.com/pommel-dev/probe/internal/index"
)

// ValidationError represents one configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("configuration validation failed:\n")
	for _, err := range e {
		sb.WriteString("  - ")
		sb.WriteString(err.Error())
		sb.WriteString("\n")
	}
	return sb.String()
}

// HasErrors returns true if there are any validation errors.
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

// Validate checks cfg for errors and returns all validation errors found.
func Validate(cfg *Config) ValidationErrors {
	var errors ValidationErrors

	if cfg.Version < 1 {
		errors = append(errors, ValidationError{Field: "version", Message: "must be at least 1"})
	}

	if len(cfg.IncludePatterns) == 0 {
		errors = append(errors, ValidationError{Field: "include_patterns", Message: "must specify at least one include pattern"})
	}

	if cfg.Index.Workers <= 0 {
		errors = append(errors, ValidationError{Field: "index.workers", Message: "must be positive"})
	}
	if cfg.Index.HeapBudgetBytes <= 0 {
		errors = append(errors, ValidationError{Field: "index.heap_budget_bytes", Message: "must be positive"})
	}

	if cfg.Stemming.Enabled && !index.SupportedStemmingLanguage(cfg.Stemming.Language) {
		errors = append(errors, ValidationError{
			Field:   "stemming.language",
			Message: fmt.Sprintf("unsupported stemming language %q", cfg.Stemming.Language),
		})
	}

	if cfg.Search.DefaultLimit < 1 {
		errors = append(errors, ValidationError{Field: "search.default_limit", Message: "must be at least 1"})
	}
	if cfg.Search.ContextLines < 0 {
		errors = append(errors, ValidationError{Field: "search.context_lines", Message: "must be non-negative"})
	}

	if cfg.Reranker.Enabled {
		if cfg.Reranker.TimeoutMs <= 0 {
			errors = append(errors, ValidationError{Field: "reranker.timeout_ms", Message: "must be positive"})
		}
		if cfg.Reranker.MinCandidates < 1 {
			errors = append(errors, ValidationError{Field: "reranker.min_candidates", Message: "must be at least 1"})
		}
	}

	return errors
}

// ValidateOrError returns an error if validation fails, nil otherwise.
func ValidateOrError(cfg *Config) error {
	errors := Validate(cfg)
	if errors.HasErrors() {
		return errors
	}
	return nil
}
