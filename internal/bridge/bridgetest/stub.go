// Copyright (c) 2025 Deskbridge
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package bridgetest provides an in-memory bridge.Remote for tests.
package bridgetest

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"deskbridge/cli/internal/bridge"
)

// Call records one invocation received by a Stub.
type Call struct {
	Method string
	Args   []any
}

// Stub is a scripted Remote. Results and Errors are keyed by method name
// and must be set before the stub is shared between goroutines.
type Stub struct {
	Results map[string]any
	Errors  map[string]error

	mu       sync.Mutex
	calls    []Call
	handlers map[string][]bridge.SignalHandler
	closed   bool
}

// NewStub returns an empty Stub.
func NewStub() *Stub {
	return &Stub{
		Results:  make(map[string]any),
		Errors:   make(map[string]error),
		handlers: make(map[string][]bridge.SignalHandler),
	}
}

func (s *Stub) Call(ctx context.Context, method string, args []any, ret any) error {
	s.mu.Lock()
	s.calls = append(s.calls, Call{Method: method, Args: args})
	s.mu.Unlock()

	if err := s.Errors[method]; err != nil {
		return err
	}
	if ret == nil {
		return nil
	}
	v, ok := s.Results[method]
	if !ok || v == nil {
		return nil
	}
	dst := reflect.ValueOf(ret)
	if dst.Kind() != reflect.Pointer || dst.IsNil() {
		return fmt.Errorf("bridgetest: ret for %s is not a pointer", method)
	}
	src := reflect.ValueOf(v)
	if !src.Type().AssignableTo(dst.Elem().Type()) {
		return fmt.Errorf("bridgetest: %s result %T not assignable to %s", method, v, dst.Elem().Type())
	}
	dst.Elem().Set(src)
	return nil
}

func (s *Stub) Subscribe(signal string, handler bridge.SignalHandler) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[signal] = append(s.handlers[signal], handler)
	return nil
}

func (s *Stub) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Emit delivers a signal to every handler subscribed to it, on the
// calling goroutine. It reports how many handlers ran.
func (s *Stub) Emit(signal string, args ...any) int {
	s.mu.Lock()
	handlers := append([]bridge.SignalHandler(nil), s.handlers[signal]...)
	s.mu.Unlock()
	for _, h := range handlers {
		h(args)
	}
	return len(handlers)
}

// Calls returns a copy of the recorded invocations.
func (s *Stub) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// Subscribed lists the signal names with at least one handler.
func (s *Stub) Subscribed() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]int, len(s.handlers))
	for name, hs := range s.handlers {
		out[name] = len(hs)
	}
	return out
}

// Closed reports whether Close was called.
func (s *Stub) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
