// Copyright (c) 2025 Deskbridge
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package bridge defines the interface the native-messaging host uses to
// reach the remote window-manager service. The concrete transport lives in
// bridge/dbusclient; callers only see a generic call primitive and a
// signal subscription primitive.
package bridge

import (
	"context"
	"time"

	"deskbridge/cli/internal/bridge/dbusclient"
	"deskbridge/cli/internal/errors"
)

// SignalHandler receives the positional arguments of one signal emission.
// It runs on the transport's delivery goroutine.
type SignalHandler = dbusclient.SignalHandler

// Remote represents a connection to the remote window-manager object.
type Remote interface {
	// Call invokes method with positional args and blocks until the remote
	// side replies. ret is a pointer to the typed result, or nil when the
	// method returns nothing.
	Call(ctx context.Context, method string, args []any, ret any) error
	// Subscribe registers handler for every emission of signal. Handlers
	// are never unregistered.
	Subscribe(signal string, handler SignalHandler) error
	Close() error
}

// Options configures the remote connection.
type Options struct {
	Address       string
	ObjectPath    string
	Interface     string
	Destination   string
	AnonymousAuth bool
	CallTimeout   time.Duration
	DialTimeout   time.Duration
}

// New connects to the remote service over a peer-to-peer D-Bus connection,
// or through a message bus when opts.Destination is set.
func New(ctx context.Context, opts Options) (Remote, error) {
	c, err := dbusclient.Connect(ctx, dbusclient.Options{
		Address:       opts.Address,
		ObjectPath:    opts.ObjectPath,
		Interface:     opts.Interface,
		Destination:   opts.Destination,
		AnonymousAuth: opts.AnonymousAuth,
		CallTimeout:   opts.CallTimeout,
		DialTimeout:   opts.DialTimeout,
	})
	if err != nil {
		return nil, errors.Wrap(errors.TransportUnavailable, "remote service unavailable", err)
	}
	return c, nil
}

// Unavailable returns a Remote standing in for a connection that could not
// be established: every Call fails with cause and Subscribe does nothing.
func Unavailable(cause error) Remote {
	return unavailable{cause: cause}
}

type unavailable struct{ cause error }

func (u unavailable) Call(ctx context.Context, method string, args []any, ret any) error {
	if errors.KindOf(u.cause) == errors.TransportUnavailable {
		return u.cause
	}
	return errors.Wrap(errors.TransportUnavailable, "remote service unavailable", u.cause)
}

func (unavailable) Subscribe(string, SignalHandler) error { return nil }
func (unavailable) Close() error                         { return nil }
