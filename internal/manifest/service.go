// Copyright (c) 2025 Deskbridge
// Licensed under the MIT License. See LICENSE file in the project root for details.

package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var reHostName = regexp.MustCompile(`^[a-z0-9_]+(\.[a-z0-9_]+)*$`)

// Build returns the manifest for browser allowing extensionID to launch
// the executable at execPath.
func Build(browser Browser, name, execPath, extensionID string) (HostManifest, error) {
	if !reHostName.MatchString(name) {
		return HostManifest{}, fmt.Errorf("invalid host name %q: use lowercase letters, digits, _ and dots", name)
	}
	if !filepath.IsAbs(execPath) {
		return HostManifest{}, fmt.Errorf("executable path %q must be absolute", execPath)
	}
	if extensionID == "" {
		return HostManifest{}, fmt.Errorf("extension id is required")
	}

	m := HostManifest{
		Name:        name,
		Description: "Bridge between the browser and the KWin window manager",
		Path:        execPath,
		Type:        "stdio",
	}
	switch browser {
	case Firefox:
		m.AllowedExtensions = []string{extensionID}
	case Chrome, Chromium:
		origin := extensionID
		if !strings.HasPrefix(origin, "chrome-extension://") {
			origin = "chrome-extension://" + origin
		}
		if !strings.HasSuffix(origin, "/") {
			origin += "/"
		}
		m.AllowedOrigins = []string{origin}
	default:
		return HostManifest{}, fmt.Errorf("unsupported browser %q", browser)
	}
	return m, nil
}

// Dir returns the per-user native messaging hosts directory of browser.
func Dir(browser Browser, home string) (string, error) {
	switch browser {
	case Firefox:
		return filepath.Join(home, ".mozilla", "native-messaging-hosts"), nil
	case Chrome:
		return filepath.Join(configHome(home), "google-chrome", "NativeMessagingHosts"), nil
	case Chromium:
		return filepath.Join(configHome(home), "chromium", "NativeMessagingHosts"), nil
	}
	return "", fmt.Errorf("unsupported browser %q", browser)
}

func configHome(home string) string {
	if base := os.Getenv("XDG_CONFIG_HOME"); base != "" {
		return base
	}
	return filepath.Join(home, ".config")
}

// Install writes m into dir as <name>.json and returns the file path.
func Install(dir string, m HostManifest) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, m.Name+".json")
	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return "", err
	}
	return path, nil
}
