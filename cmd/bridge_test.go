// Copyright (c) 2025 Deskbridge
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"deskbridge/cli/internal/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Cleanup(func() { cfgPath, addressFlag, logLevelFlag = "", "", "" })

	cfgPath = writeConfig(t, "remote:\n  address: unix:path=/tmp/from-file\n  call_timeout: 2s\nlog:\n  level: warn\n")
	addressFlag = "unix:path=/tmp/from-flag"
	logLevelFlag = "debug"

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.Remote.Address != "unix:path=/tmp/from-flag" {
		t.Errorf("address = %q, want flag value", cfg.Remote.Address)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q, want debug", cfg.Log.Level)
	}
	if cfg.Remote.CallTimeout != 2*time.Second {
		t.Errorf("call timeout = %v, want 2s", cfg.Remote.CallTimeout)
	}

	opts := remoteOptions(cfg)
	if opts.Address != cfg.Remote.Address || opts.CallTimeout != cfg.Remote.CallTimeout {
		t.Errorf("remoteOptions() = %+v, want values from config", opts)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	t.Cleanup(func() { cfgPath = "" })

	cfgPath = writeConfig(t, "remote:\n  object_path: relative\n")
	_, err := loadConfig()
	if got := errors.KindOf(err); got != errors.ConfigInvalid {
		t.Errorf("loadConfig() kind = %q, want %q (err %v)", got, errors.ConfigInvalid, err)
	}
}
