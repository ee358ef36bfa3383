// Copyright (c) 2025 Deskbridge
// Licensed under the MIT License. See LICENSE file in the project root for details.

package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name        string
		browser     Browser
		extensionID string
		wantExt     []string
		wantOrigins []string
	}{
		{
			name:        "firefox",
			browser:     Firefox,
			extensionID: "deskbridge@example.org",
			wantExt:     []string{"deskbridge@example.org"},
		},
		{
			name:        "chrome bare id",
			browser:     Chrome,
			extensionID: "abcdefghijklmnopabcdefghijklmnop",
			wantOrigins: []string{"chrome-extension://abcdefghijklmnopabcdefghijklmnop/"},
		},
		{
			name:        "chromium origin",
			browser:     Chromium,
			extensionID: "chrome-extension://abc/",
			wantOrigins: []string{"chrome-extension://abc/"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Build(tt.browser, DefaultName, "/usr/bin/deskbridge", tt.extensionID)
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}
			if m.Type != "stdio" || m.Path != "/usr/bin/deskbridge" || m.Name != DefaultName {
				t.Errorf("Build() = %+v, unexpected common fields", m)
			}
			if !reflect.DeepEqual(m.AllowedExtensions, tt.wantExt) {
				t.Errorf("AllowedExtensions = %v, want %v", m.AllowedExtensions, tt.wantExt)
			}
			if !reflect.DeepEqual(m.AllowedOrigins, tt.wantOrigins) {
				t.Errorf("AllowedOrigins = %v, want %v", m.AllowedOrigins, tt.wantOrigins)
			}
		})
	}
}

func TestBuildRejects(t *testing.T) {
	tests := []struct {
		name    string
		browser Browser
		host    string
		path    string
		ext     string
	}{
		{name: "upper case name", browser: Firefox, host: "Deskbridge", path: "/bin/x", ext: "e"},
		{name: "relative path", browser: Firefox, host: DefaultName, path: "bin/x", ext: "e"},
		{name: "missing extension", browser: Chrome, host: DefaultName, path: "/bin/x"},
		{name: "unknown browser", browser: "safari", host: DefaultName, path: "/bin/x", ext: "e"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Build(tt.browser, tt.host, tt.path, tt.ext); err == nil {
				t.Error("Build() error = nil, want error")
			}
		})
	}
}

func TestDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	tests := []struct {
		browser Browser
		want    string
	}{
		{Firefox, "/home/u/.mozilla/native-messaging-hosts"},
		{Chrome, "/home/u/.config/google-chrome/NativeMessagingHosts"},
		{Chromium, "/home/u/.config/chromium/NativeMessagingHosts"},
	}
	for _, tt := range tests {
		t.Run(string(tt.browser), func(t *testing.T) {
			got, err := Dir(tt.browser, "/home/u")
			if err != nil {
				t.Fatalf("Dir() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Dir() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInstall(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "hosts")
	m, err := Build(Firefox, DefaultName, "/usr/bin/deskbridge", "deskbridge@example.org")
	if err != nil {
		t.Fatal(err)
	}

	path, err := Install(dir, m)
	if err != nil {
		t.Fatalf("Install() error = %v", err)
	}
	if want := filepath.Join(dir, DefaultName+".json"); path != want {
		t.Errorf("Install() path = %v, want %v", path, want)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got HostManifest
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("installed manifest is not JSON: %v", err)
	}
	if !reflect.DeepEqual(got, m) {
		t.Errorf("installed = %+v, want %+v", got, m)
	}
}
