// Copyright (c) 2025 Deskbridge
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package host runs the native-messaging side of the bridge: an input pump
// that reads framed requests from the browser, a signal forwarder that
// turns remote signals into unsolicited messages, and the writer both of
// them share.
//
// The input pump runs on its own goroutine and handles one request at a
// time. Signals arrive on the transport's goroutine and may interleave
// with responses at frame boundaries; the Writer lock keeps frames whole.
package host

import (
	"context"
	"io"

	"deskbridge/cli/internal/bridge"
	"deskbridge/cli/internal/dispatch"

	"github.com/rs/zerolog"
)

// Options configures a Host.
type Options struct {
	In     io.Reader
	Out    io.Writer
	Remote bridge.Remote
	Logger zerolog.Logger
	// MaxFrameSize bounds inbound frames. Zero means unbounded.
	MaxFrameSize uint32
	// Strict stops the pump on the first malformed request.
	Strict bool
	// DebugTraces emits {"debug": ...} messages around remote calls.
	DebugTraces bool
}

// Host wires the pump, the dispatch table and the signal forwarder to one
// output Writer.
type Host struct {
	in       io.Reader
	out      *Writer
	remote   bridge.Remote
	table    *dispatch.Table
	fwd      *forwarder
	log      zerolog.Logger
	maxFrame uint32
	strict   bool
}

// New builds a Host from opts.
func New(opts Options) *Host {
	out := NewWriter(opts.Out)
	h := &Host{
		in:       opts.In,
		out:      out,
		remote:   opts.Remote,
		log:      opts.Logger,
		maxFrame: opts.MaxFrameSize,
		strict:   opts.Strict,
		fwd:      &forwarder{out: out, log: opts.Logger},
	}
	tableOpts := []dispatch.Option{dispatch.WithLogger(opts.Logger)}
	if opts.DebugTraces {
		tableOpts = append(tableOpts, dispatch.WithTrace(func(msg string) { _ = out.Debug(msg) }))
	}
	h.table = dispatch.New(opts.Remote, tableOpts...)
	return h
}

// Writer returns the shared output writer.
func (h *Host) Writer() *Writer { return h.out }

// Run subscribes to every remote signal, then pumps input until it ends.
// It returns nil when the input stream closes, the fatal error when the
// pump stops on a malformed request, or ctx.Err() if ctx ends first. The
// pump goroutine cannot be interrupted while blocked on a read; it ends
// with the process.
func (h *Host) Run(ctx context.Context) error {
	if err := h.fwd.subscribe(h.remote); err != nil {
		return err
	}
	h.log.Debug().Int("signals", len(Signals)).Msg("subscribed to remote signals")

	done := make(chan error, 1)
	go func() { done <- h.pump(ctx) }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
