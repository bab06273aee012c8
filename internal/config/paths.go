package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// RerankerModelsDirEnvVar overrides the directory returned by
// RerankerModelsDir.
const RerankerModelsDirEnvVar = "PROBE_RERANKER_MODELS_DIR"

// RerankerModelsDir returns the default directory for local cross-encoder
// reranker models. Reranker.Model is used as given when the reranker is
// built; it is not resolved against this directory. Resolution order:
//
//  1. PROBE_RERANKER_MODELS_DIR environment variable, if set
//  2. platform default:
//     - macOS/Linux: $XDG_DATA_HOME/probe/models or ~/.local/share/probe/models
//     - Windows: %LOCALAPPDATA%\probe\models
//
// The directory may not exist; use EnsureRerankerModelsDir to create it.
func RerankerModelsDir() (string, error) {
	if envDir := os.Getenv(RerankerModelsDirEnvVar); envDir != "" {
		return envDir, nil
	}
	if runtime.GOOS == "windows" {
		return windowsRerankerModelsDir()
	}
	return unixRerankerModelsDir()
}

// EnsureRerankerModelsDir returns RerankerModelsDir, creating it if needed.
func EnsureRerankerModelsDir() (string, error) {
	dir, err := RerankerModelsDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

func unixRerankerModelsDir() (string, error) {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "probe", "models"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", "probe", "models"), nil
}

func windowsRerankerModelsDir() (string, error) {
	localAppData := os.Getenv("LOCALAPPDATA")
	if localAppData == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		localAppData = filepath.Join(home, "AppData", "Local")
	}
	return filepath.Join(localAppData, "probe", "models"), nil
}
