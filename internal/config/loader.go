package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// ConfigFileName is the config file's base name, without extension:
// probe looks for .probe.yaml.
const ConfigFileName = ".probe"

// ConfigFileExt is the config file extension.
const ConfigFileExt = "yaml"

// EnvPrefix is the prefix for environment variable overrides, e.g.
// PROBE_RERANKER_ENABLED=false.
const EnvPrefix = "PROBE"

// Loader resolves and loads configuration for one project root, searching
// the project directory first and falling back to $HOME.
type Loader struct {
	projectRoot string
	v           *viper.Viper
}

// NewLoader creates a new config loader for the given project root.
func NewLoader(projectRoot string) *Loader {
	return &Loader{projectRoot: projectRoot, v: newViper(projectRoot)}
}

// envBindableKeys lists every config key that can be overridden by an
// environment variable. AutomaticEnv alone does not reach Unmarshal for
// nested keys, so each must be bound explicitly.
var envBindableKeys = []string{
	"version", "include_patterns", "exclude_patterns",
	"index.heap_budget_bytes", "index.workers",
	"stemming.enabled", "stemming.language",
	"search.default_limit", "search.context_lines",
	"reranker.enabled", "reranker.model", "reranker.timeout_ms", "reranker.min_candidates",
}

func newViper(projectRoot string) *viper.Viper {
	v := viper.New()
	v.SetConfigName(ConfigFileName)
	v.SetConfigType(ConfigFileExt)
	v.AddConfigPath(projectRoot)
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		v.AddConfigPath(home)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range envBindableKeys {
		v.BindEnv(key)
	}
	return v
}

// ConfigPath returns the full path to the project-local config file.
func (l *Loader) ConfigPath() string {
	return filepath.Join(l.projectRoot, ConfigFileName+"."+ConfigFileExt)
}

// Exists returns true if a project-local config file exists.
func (l *Loader) Exists() bool {
	_, err := os.Stat(l.ConfigPath())
	return err == nil
}

// Load reads configuration via viper's search path (project root, then
// $HOME), applying environment overrides, and migrates legacy fields.
func (l *Loader) Load() (*Config, error) {
	l.v = newViper(l.projectRoot)
	setViperDefaults(l.v, Default())

	if err := l.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	cfg := &Config{}
	if err := l.v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	return Migrate(cfg), nil
}

func setViperDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("version", cfg.Version)
	v.SetDefault("include_patterns", cfg.IncludePatterns)
	v.SetDefault("exclude_patterns", cfg.ExcludePatterns)
	v.SetDefault("index.heap_budget_bytes", cfg.Index.HeapBudgetBytes)
	v.SetDefault("index.workers", cfg.Index.Workers)
	v.SetDefault("stemming.enabled", cfg.Stemming.Enabled)
	v.SetDefault("stemming.language", cfg.Stemming.Language)
	v.SetDefault("search.default_limit", cfg.Search.DefaultLimit)
	v.SetDefault("search.context_lines", cfg.Search.ContextLines)
	v.SetDefault("reranker.enabled", cfg.Reranker.Enabled)
	v.SetDefault("reranker.model", cfg.Reranker.Model)
	v.SetDefault("reranker.timeout_ms", cfg.Reranker.TimeoutMs)
	v.SetDefault("reranker.min_candidates", cfg.Reranker.MinCandidates)
}

// Save writes cfg to the project-local config file.
func (l *Loader) Save(cfg *Config) error {
	l.v.Set("version", cfg.Version)
	l.v.Set("include_patterns", cfg.IncludePatterns)
	l.v.Set("exclude_patterns", cfg.ExcludePatterns)
	l.v.Set("index", cfg.Index)
	l.v.Set("stemming", cfg.Stemming)
	l.v.Set("search", cfg.Search)
	l.v.Set("reranker", cfg.Reranker)

	if err := l.v.WriteConfigAs(l.ConfigPath()); err != nil {
		return fmt.Errorf("config: write: %w", err)
	}
	return nil
}

// Init writes a default configuration file if one does not already exist.
func (l *Loader) Init() (*Config, error) {
	if l.Exists() {
		return nil, fmt.Errorf("config: already exists at %s", l.ConfigPath())
	}
	cfg := Default()
	if err := l.Save(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
