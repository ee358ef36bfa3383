// Copyright (c) 2025 Deskbridge
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"deskbridge/cli/internal/errors"

	"github.com/godbus/dbus/v5"
	"github.com/pterm/pterm"
)

// RemoteErrorType represents the category of a remote call failure.
type RemoteErrorType int

const (
	RemoteErrorUnknown RemoteErrorType = iota
	RemoteErrorUnavailable
	RemoteErrorAuth
	RemoteErrorTimeout
	RemoteErrorUnsupported
	RemoteErrorInvalidArgs
)

// dbusErrorName returns the D-Bus error name in err's chain, if any.
func dbusErrorName(err error) string {
	var v dbus.Error
	if stderrors.As(err, &v) {
		return v.Name
	}
	var p *dbus.Error
	if stderrors.As(err, &p) && p != nil {
		return p.Name
	}
	return ""
}

// ParseRemoteError categorizes an error returned by the remote service or
// its transport.
func ParseRemoteError(err error) RemoteErrorType {
	if err == nil {
		return RemoteErrorUnknown
	}
	switch dbusErrorName(err) {
	case "org.freedesktop.DBus.Error.NoReply", "org.freedesktop.DBus.Error.Timeout", "org.freedesktop.DBus.Error.TimedOut":
		return RemoteErrorTimeout
	case "org.freedesktop.DBus.Error.AccessDenied", "org.freedesktop.DBus.Error.AuthFailed":
		return RemoteErrorAuth
	case "org.freedesktop.DBus.Error.UnknownMethod", "org.freedesktop.DBus.Error.UnknownObject",
		"org.freedesktop.DBus.Error.UnknownInterface":
		return RemoteErrorUnsupported
	case "org.freedesktop.DBus.Error.InvalidArgs":
		return RemoteErrorInvalidArgs
	case "org.freedesktop.DBus.Error.Disconnected", "org.freedesktop.DBus.Error.NoServer":
		return RemoteErrorUnavailable
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return RemoteErrorTimeout
	}

	lower := strings.ToLower(err.Error())
	if strings.Contains(lower, "authenticate") || (strings.Contains(lower, "auth") && strings.Contains(lower, "reject")) {
		return RemoteErrorAuth
	}
	if errors.KindOf(err) == errors.TransportUnavailable ||
		strings.Contains(lower, "connection refused") || strings.Contains(lower, "no such file") {
		return RemoteErrorUnavailable
	}
	return RemoteErrorUnknown
}

// FormatRemoteError formats a remote call failure in a user-friendly way.
func FormatRemoteError(err error) string {
	errType := ParseRemoteError(err)

	var builder strings.Builder

	builder.WriteString(pterm.NewStyle(pterm.FgRed, pterm.Bold).Sprint("Window manager call failed"))
	builder.WriteString("\n\n")

	switch errType {
	case RemoteErrorUnavailable:
		builder.WriteString("The window manager service could not be reached.\n")
		builder.WriteString("This usually happens when:\n")
		builder.WriteString("  • The KWin plugin is not loaded\n")
		builder.WriteString("  • The configured D-Bus address does not match the plugin's\n")
		builder.WriteString("  • The desktop session was restarted\n")

	case RemoteErrorAuth:
		builder.WriteString("The window manager service rejected the connection.\n")
		builder.WriteString("To fix this:\n")
		builder.WriteString("  • Run deskbridge as the same user as the desktop session\n")
		builder.WriteString("  • Try remote.anonymous_auth: true in the config file\n")

	case RemoteErrorTimeout:
		builder.WriteString("The window manager did not answer in time.\n")
		builder.WriteString("This could be due to:\n")
		builder.WriteString("  • KWin being busy or frozen\n")
		builder.WriteString("  • A remote.call_timeout that is too short\n")

	case RemoteErrorUnsupported:
		builder.WriteString("The window manager does not know this method.\n")
		builder.WriteString("The KWin plugin and deskbridge are probably different versions.\n")

	case RemoteErrorInvalidArgs:
		builder.WriteString("The window manager rejected the arguments.\n")

	default:
		builder.WriteString("The window manager reported an error.\n")
	}

	builder.WriteString("\n")
	builder.WriteString(pterm.NewStyle(pterm.FgYellow).Sprint("→ Run 'deskbridge monitor' to check the connection"))
	builder.WriteString("\n")

	if msg := strings.TrimSpace(errors.Describe(err)); msg != "" {
		builder.WriteString("\n")
		builder.WriteString(pterm.NewStyle(pterm.FgGray).Sprint("Technical details: " + Mask(msg)))
	}

	return builder.String()
}

// PresentRemoteError displays a formatted remote error.
func PresentRemoteError(err error) {
	fmt.Println()
	fmt.Println(FormatRemoteError(err))
	fmt.Println()
}
