// Package xdg provides helpers to resolve XDG Base Directory paths for deskbridge.
// It implements the XDG Base Directory specification for determining appropriate
// locations for configuration files, log files and the window manager socket.
//
// The package handles fallback to traditional locations when XDG environment
// variables are not set and ensures private permissions on created directories.
package xdg

import (
	"os"
	"path/filepath"
)

// AppName is the directory name used under every XDG base directory.
const AppName = "deskbridge"

// ConfigDir returns the XDG config directory for deskbridge.
// The directory is created with private permissions (0700) if missing.
// It falls back to ~/.config/deskbridge when XDG_CONFIG_HOME is unset.
func ConfigDir() (string, error) {
	return appDir("XDG_CONFIG_HOME", ".config")
}

// StateDir returns the XDG state directory for deskbridge.
// The directory is created with private permissions (0700) if missing.
// It falls back to ~/.local/state/deskbridge when XDG_STATE_HOME is unset.
func StateDir() (string, error) {
	return appDir("XDG_STATE_HOME", filepath.Join(".local", "state"))
}

// RuntimeDir returns XDG_RUNTIME_DIR, or the system temp dir when unset.
// It is not created: the window manager owns the socket placed there.
func RuntimeDir() string {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return dir
	}
	return os.TempDir()
}

func appDir(env, fallback string) (string, error) {
	base := os.Getenv(env)
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, fallback)
	}
	dir := filepath.Join(base, AppName)
	if err := os.MkdirAll(dir, 0o700); err != nil { // private dir
		return "", err
	}
	return dir, nil
}
