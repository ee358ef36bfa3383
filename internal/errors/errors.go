// Copyright (c) 2025 Deskbridge
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package errors defines typed errors with categories for reporting bridge
// failures. Each error carries a machine-readable kind for logs and a
// human-friendly message that is safe to send back to the browser.
//
// The package supports wrapping underlying errors while keeping the kind,
// so errors.Is and errors.As from the standard library keep working.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// TransportUnavailable indicates the remote service could not be reached.
	TransportUnavailable Kind = "transport_unavailable"
	// RemoteCallFailed indicates the remote method returned an error.
	RemoteCallFailed Kind = "remote_call_failed"
	// UnknownMethod indicates a request named a method outside the table.
	UnknownMethod Kind = "unknown_method"
	// InvalidParams indicates a parameter arity or type mismatch.
	InvalidParams Kind = "invalid_params"
	// MalformedRequest indicates a request payload that is not a valid request.
	MalformedRequest Kind = "malformed_request"
	// ConfigInvalid indicates a configuration value that cannot be used.
	ConfigInvalid Kind = "config_invalid"
)

// E wraps an error with kind and human-friendly message.
type E struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *E) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *E) Unwrap() error { return e.Err }

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }
func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }

// KindOf returns the kind of the first E in err's chain, or "".
func KindOf(err error) Kind {
	var e *E
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Describe renders err for the caller on the other end of the bridge:
// the message chain without kind prefixes.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	var e *E
	if !stderrors.As(err, &e) {
		return err.Error()
	}
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + Describe(e.Err)
}
