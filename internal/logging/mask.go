// Copyright (c) 2025 Deskbridge
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package logging provides the process logger and utilities for safe
// logging and error presentation. It masks the secret parts of D-Bus
// server addresses before they are logged and formats remote errors for
// the interactive commands.
package logging

import (
	"regexp"
)

var (
	reGUID      = regexp.MustCompile(`(?i)(guid=)([0-9a-f]+)`)
	reNonceFile = regexp.MustCompile(`(?i)(noncefile=)([^,;\s]+)`)
	reCookie    = regexp.MustCompile(`(?i)(cookie=)([^,;\s]+)`)
)

// Mask replaces secret values in a D-Bus address or message with "***".
// Server GUIDs and nonce files identify and unlock a private server.
func Mask(s string) string {
	out := s
	out = reGUID.ReplaceAllString(out, "$1***")
	out = reNonceFile.ReplaceAllString(out, "$1***")
	out = reCookie.ReplaceAllString(out, "$1***")
	return out
}
