// Copyright (c) 2025 Deskbridge
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package dispatch maps a JSON request onto a call against the remote
// window manager. Each recognized method has a static descriptor with its
// parameter kinds, an invocation closure and a result encoder; requests
// are resolved by name lookup.
//
// Dispatch never panics on caller input: unknown methods, bad parameters
// and remote failures all become error responses carrying the request id.
package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"deskbridge/cli/internal/bridge"
	"deskbridge/cli/internal/bridge/model"
	"deskbridge/cli/internal/errors"
	"deskbridge/cli/internal/logging"

	"github.com/rs/zerolog"
)

// Table resolves requests against the closed method set.
type Table struct {
	remote  bridge.Remote
	methods map[string]Method
	log     zerolog.Logger
	trace   func(msg string)
}

// Option configures a Table.
type Option func(*Table)

// WithLogger sets the logger used for failed dispatches.
func WithLogger(l zerolog.Logger) Option {
	return func(t *Table) { t.log = l }
}

// WithTrace installs fn to receive "before <method>" and "after <method>"
// around every remote invocation.
func WithTrace(fn func(msg string)) Option {
	return func(t *Table) { t.trace = fn }
}

// New builds a Table calling remote.
func New(remote bridge.Remote, opts ...Option) *Table {
	t := &Table{
		remote:  remote,
		methods: make(map[string]Method, len(methods)),
		log:     zerolog.Nop(),
	}
	for _, m := range methods {
		t.methods[m.Name] = m
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Dispatch executes req and returns exactly one response for req.ID.
func (t *Table) Dispatch(ctx context.Context, req model.Request) model.Response {
	result, err := t.Invoke(ctx, req.ID, req.Method, req.Params)
	if err != nil {
		msg := errors.Describe(err)
		if errors.KindOf(err) == errors.TransportUnavailable {
			// Dial errors carry the server address.
			msg = logging.Mask(msg)
		}
		return model.Fail(req.ID, msg)
	}
	return model.Succeed(req.ID, result)
}

// Invoke resolves method, validates params and calls the remote service.
// Lookup and validation failures are *errors.E values; remote failures
// are returned as the transport reported them. id is only used in logs.
func (t *Table) Invoke(ctx context.Context, id int64, method string, params []json.RawMessage) (any, error) {
	m, ok := t.methods[method]
	if !ok {
		err := errors.New(errors.UnknownMethod, "Unknown method: "+method)
		t.log.Warn().Int64("id", id).Str("kind", string(err.Kind)).Msg(err.Message)
		return nil, err
	}

	args, err := m.decode(params)
	if err != nil {
		err := errors.Wrap(errors.InvalidParams, "Invalid params for "+m.Name, err)
		t.log.Warn().Int64("id", id).Str("kind", string(err.Kind)).Err(err.Err).Msg(err.Message)
		return nil, err
	}

	t.emitTrace("before " + m.Name)
	result, err := m.invoke(ctx, t.remote, args)
	t.emitTrace("after " + m.Name)
	if err != nil {
		kind := errors.KindOf(err)
		if kind == "" {
			kind = errors.RemoteCallFailed
		}
		t.log.Warn().Int64("id", id).Str("method", m.Name).Str("kind", string(kind)).Err(err).Msg("remote call failed")
		return nil, err
	}
	t.log.Debug().Int64("id", id).Str("method", m.Name).Msg("remote call succeeded")
	return result, nil
}

func (t *Table) emitTrace(msg string) {
	if t.trace != nil {
		t.trace(msg)
	}
}

// decode validates arity and JSON types and converts params to native
// call arguments. Nothing is executed when it fails.
func (m Method) decode(params []json.RawMessage) ([]any, error) {
	if len(params) != len(m.Params) {
		return nil, fmt.Errorf("want %d params (%s), got %d", len(m.Params), m.Signature(), len(params))
	}
	args := make([]any, len(params))
	for i, kind := range m.Params {
		v, err := kind.Decode(params[i])
		if err != nil {
			return nil, fmt.Errorf("param %d: %w", i, err)
		}
		args[i] = v
	}
	return args, nil
}

// Signature renders the parameter kinds, e.g. "string, array of string".
func (m Method) Signature() string {
	parts := make([]string, len(m.Params))
	for i, k := range m.Params {
		parts[i] = k.String()
	}
	return strings.Join(parts, ", ")
}
