// ABOUTME: Standard filesystem paths for atelier configuration and data
// ABOUTME: Resolves ~/.atelier/ for global and .atelier/ for project-local paths

package config

import (
	"os"
	"path/filepath"
)

const (
	globalDirName  = ".atelier"
	projectDirName = ".atelier"
)

// GlobalDir returns the user-global config directory (~/.atelier/).
func GlobalDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", globalDirName)
	}
	return filepath.Join(home, globalDirName)
}

// ProjectDir returns the project-local config directory (.atelier/ in the
// project root).
func ProjectDir(projectRoot string) string {
	return filepath.Join(projectRoot, projectDirName)
}

// GlobalSettingsFile returns the path to the global settings file.
func GlobalSettingsFile() string {
	return filepath.Join(GlobalDir(), "settings.yaml")
}

// ProjectSettingsFile returns the path to the project-local settings file.
func ProjectSettingsFile(projectRoot string) string {
	return filepath.Join(ProjectDir(projectRoot), "settings.yaml")
}

// HistoryFile returns the path to the persisted prompt history.
func HistoryFile() string {
	return filepath.Join(GlobalDir(), "history.yaml")
}

// EnsureDir creates a directory and all parents if they don't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0o700)
}
