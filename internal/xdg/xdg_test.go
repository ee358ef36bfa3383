package xdg

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigDir(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)

	got, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() error = %v", err)
	}
	want := filepath.Join(base, AppName)
	if got != want {
		t.Errorf("ConfigDir() = %v, want %v", got, want)
	}
	info, err := os.Stat(got)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o700 {
		t.Errorf("permissions = %o, want 700", perm)
	}
}

func TestStateDirFallback(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_STATE_HOME", "")
	t.Setenv("HOME", home)

	got, err := StateDir()
	if err != nil {
		t.Fatalf("StateDir() error = %v", err)
	}
	if want := filepath.Join(home, ".local", "state", AppName); got != want {
		t.Errorf("StateDir() = %v, want %v", got, want)
	}
}

func TestRuntimeDir(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", "/run/user/4242")
	if got := RuntimeDir(); got != "/run/user/4242" {
		t.Errorf("RuntimeDir() = %v, want /run/user/4242", got)
	}
	t.Setenv("XDG_RUNTIME_DIR", "")
	if got := RuntimeDir(); got != os.TempDir() {
		t.Errorf("RuntimeDir() = %v, want %v", got, os.TempDir())
	}
}
