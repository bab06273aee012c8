package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_LoadReturnsDefaultWhenNoConfigExists(t *testing.T) {
	dir := t.TempDir()
	l := NewLoader(dir)

	cfg, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, Default().Index.Workers, cfg.Index.Workers)
}

func TestLoader_InitThenLoadRoundTrips(t *testing.T) {
	dir := t.TempDir()
	l := NewLoader(dir)

	written, err := l.Init()
	require.NoError(t, err)
	written.Index.Workers = 4
	require.NoError(t, l.Save(written))

	loaded, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, 4, loaded.Index.Workers)
}

func TestLoader_InitFailsIfConfigAlreadyExists(t *testing.T) {
	dir := t.TempDir()
	l := NewLoader(dir)

	_, err := l.Init()
	require.NoError(t, err)

	_, err = l.Init()
	assert.Error(t, err)
}

func TestLoader_ConfigPath(t *testing.T) {
	dir := t.TempDir()
	l := NewLoader(dir)
	assert.Equal(t, filepath.Join(dir, ".probe.yaml"), l.ConfigPath())
}

func TestLoader_EnvironmentOverride(t *testing.T) {
	dir := t.TempDir()
	l := NewLoader(dir)
	_, err := l.Init()
	require.NoError(t, err)

	os.Setenv("PROBE_RERANKER_ENABLED", "false")
	defer os.Unsetenv("PROBE_RERANKER_ENABLED")

	cfg, err := l.Load()
	require.NoError(t, err)
	assert.False(t, cfg.Reranker.Enabled)
}
