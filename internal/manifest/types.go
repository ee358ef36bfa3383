// Copyright (c) 2025 Deskbridge
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package manifest builds and installs the native-messaging host manifest
// that tells a browser how to launch deskbridge and which extensions may
// talk to it.
package manifest

// Browser identifies a supported browser family.
type Browser string

const (
	Firefox  Browser = "firefox"
	Chrome   Browser = "chrome"
	Chromium Browser = "chromium"
)

// DefaultName is the native host name the extension connects to.
const DefaultName = "io.github.deskbridge.host"

// HostManifest is the JSON document browsers read to find the host.
// Firefox lists extension ids, Chromium-based browsers list origins.
type HostManifest struct {
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	Path              string   `json:"path"`
	Type              string   `json:"type"`
	AllowedExtensions []string `json:"allowed_extensions,omitempty"`
	AllowedOrigins    []string `json:"allowed_origins,omitempty"`
}
