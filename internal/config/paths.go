// Package config provides configuration management for recall.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Paths holds all the path configurations for recall.
type Paths struct {
	// ConfigDir is the directory for configuration files (~/.config/recall)
	ConfigDir string

	// DataDir is the directory for data files (~/.local/share/recall)
	DataDir string

	// CacheDir is the directory for cache files (~/.cache/recall)
	CacheDir string
}

// DefaultPaths returns the default paths based on XDG Base Directory spec.
// On Windows, it uses %APPDATA% instead.
func DefaultPaths() *Paths {
	home := homeDir()

	if runtime.GOOS == "windows" {
		appData := os.Getenv("APPDATA")
		if appData == "" {
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			localAppData = filepath.Join(home, "AppData", "Local")
		}

		return &Paths{
			ConfigDir: filepath.Join(appData, "recall"),
			DataDir:   filepath.Join(localAppData, "recall"),
			CacheDir:  filepath.Join(localAppData, "recall", "cache"),
		}
	}

	// Unix-like systems follow XDG Base Directory spec
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = filepath.Join(home, ".config")
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = filepath.Join(home, ".local", "share")
	}

	cacheHome := os.Getenv("XDG_CACHE_HOME")
	if cacheHome == "" {
		cacheHome = filepath.Join(home, ".cache")
	}

	return &Paths{
		ConfigDir: filepath.Join(configHome, "recall"),
		DataDir:   filepath.Join(dataHome, "recall"),
		CacheDir:  filepath.Join(cacheHome, "recall"),
	}
}

// ConfigFile returns the path to the main configuration file.
func (p *Paths) ConfigFile() string {
	return filepath.Join(p.ConfigDir, "config.yaml")
}

// DatabaseFile returns the path to the history database.
func (p *Paths) DatabaseFile() string {
	return filepath.Join(p.DataDir, "history.db")
}

// LatestVersionFile returns the path of the cached update-check result.
func (p *Paths) LatestVersionFile() string {
	return filepath.Join(p.CacheDir, "latest-version")
}

// LockFile returns the path of the interactive-session lock file.
func (p *Paths) LockFile() string {
	return filepath.Join(p.CacheDir, "search.lock")
}

// EnsureDirectories creates all necessary directories.
func (p *Paths) EnsureDirectories() error {
	dirs := []string{
		p.ConfigDir,
		p.DataDir,
		p.CacheDir,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	return nil
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback
		if runtime.GOOS == "windows" {
			return os.Getenv("USERPROFILE")
		}
		return os.Getenv("HOME")
	}
	return home
}
