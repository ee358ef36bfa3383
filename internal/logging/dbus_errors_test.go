// Copyright (c) 2025 Deskbridge
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"

	"deskbridge/cli/internal/errors"

	"github.com/godbus/dbus/v5"
)

func TestParseRemoteError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want RemoteErrorType
	}{
		{name: "nil", err: nil, want: RemoteErrorUnknown},
		{name: "no reply", err: dbus.Error{Name: "org.freedesktop.DBus.Error.NoReply"}, want: RemoteErrorTimeout},
		{name: "unknown method", err: dbus.Error{Name: "org.freedesktop.DBus.Error.UnknownMethod", Body: []any{"No such method"}}, want: RemoteErrorUnsupported},
		{name: "pointer error", err: &dbus.Error{Name: "org.freedesktop.DBus.Error.InvalidArgs"}, want: RemoteErrorInvalidArgs},
		{name: "wrapped access denied", err: fmt.Errorf("call: %w", dbus.Error{Name: "org.freedesktop.DBus.Error.AccessDenied"}), want: RemoteErrorAuth},
		{name: "deadline", err: fmt.Errorf("call: %w", context.DeadlineExceeded), want: RemoteErrorTimeout},
		{name: "transport", err: errors.Wrap(errors.TransportUnavailable, "remote service unavailable", stderrors.New("boom")), want: RemoteErrorUnavailable},
		{name: "refused", err: stderrors.New("dial unix /run/x: connect: connection refused"), want: RemoteErrorUnavailable},
		{name: "auth", err: stderrors.New("authenticate: dbus: authentication failed"), want: RemoteErrorAuth},
		{name: "application error", err: dbus.Error{Name: "org.kde.kwin.Error", Body: []any{"window not claimed"}}, want: RemoteErrorUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseRemoteError(tt.err); got != tt.want {
				t.Errorf("ParseRemoteError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatRemoteErrorMasksDetails(t *testing.T) {
	err := errors.Wrap(errors.TransportUnavailable, "remote service unavailable",
		stderrors.New("dial unix:path=/tmp/x,guid=abcdef: connection refused"))
	out := FormatRemoteError(err)
	if strings.Contains(out, "abcdef") {
		t.Errorf("FormatRemoteError() leaked guid: %s", out)
	}
	if !strings.Contains(out, "could not be reached") {
		t.Errorf("FormatRemoteError() = %s, want unavailable explanation", out)
	}
}
