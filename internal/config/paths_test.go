package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRerankerModelsDir_EnvVarOverride(t *testing.T) {
	original := os.Getenv(RerankerModelsDirEnvVar)
	defer os.Setenv(RerankerModelsDirEnvVar, original)

	os.Setenv(RerankerModelsDirEnvVar, "/tmp/custom-models")
	dir, err := RerankerModelsDir()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom-models", dir)
}

func TestRerankerModelsDir_UnixRespectsXDG(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix-specific")
	}
	originalEnv := os.Getenv(RerankerModelsDirEnvVar)
	originalXDG := os.Getenv("XDG_DATA_HOME")
	defer func() {
		os.Setenv(RerankerModelsDirEnvVar, originalEnv)
		os.Setenv("XDG_DATA_HOME", originalXDG)
	}()
	os.Unsetenv(RerankerModelsDirEnvVar)
	os.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")

	dir, err := RerankerModelsDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/xdg-data", "probe", "models"), dir)
}

func TestRerankerModelsDir_UnixFallsBackToHome(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix-specific")
	}
	originalEnv := os.Getenv(RerankerModelsDirEnvVar)
	originalXDG := os.Getenv("XDG_DATA_HOME")
	defer func() {
		os.Setenv(RerankerModelsDirEnvVar, originalEnv)
		os.Setenv("XDG_DATA_HOME", originalXDG)
	}()
	os.Unsetenv(RerankerModelsDirEnvVar)
	os.Unsetenv("XDG_DATA_HOME")

	home, err := os.UserHomeDir()
	require.NoError(t, err)

	dir, err := RerankerModelsDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".local", "share", "probe", "models"), dir)
}

func TestEnsureRerankerModelsDir_CreatesDirectory(t *testing.T) {
	tmp := t.TempDir()
	original := os.Getenv(RerankerModelsDirEnvVar)
	defer os.Setenv(RerankerModelsDirEnvVar, original)

	target := filepath.Join(tmp, "models")
	os.Setenv(RerankerModelsDirEnvVar, target)

	dir, err := EnsureRerankerModelsDir()
	require.NoError(t, err)
	assert.Equal(t, target, dir)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
