// Copyright (c) 2025 Deskbridge
// Licensed under the MIT License. See LICENSE file in the project root for details.

package host

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"sync"

	"deskbridge/cli/internal/bridge/model"
	"deskbridge/cli/internal/frame"
)

// Writer is the single serialization point for outbound messages. Every
// message is marshaled, framed, written and flushed under one lock.
type Writer struct {
	mu sync.Mutex
	w  *bufio.Writer
}

// NewWriter returns a Writer owning w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Write sends v as one frame of compact JSON.
func (w *Writer) Write(v any) error {
	payload, err := marshal(v)
	if err != nil {
		return err
	}
	msg := frame.Encode(payload)

	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := w.w.Write(msg); err != nil {
		return err
	}
	return w.w.Flush()
}

// WriteResponse sends a request reply.
func (w *Writer) WriteResponse(resp model.Response) error {
	return w.Write(resp)
}

// WriteSignal sends an unsolicited signal message.
func (w *Writer) WriteSignal(name string, params []any) error {
	if params == nil {
		params = []any{}
	}
	return w.Write(model.Signal{Signal: name, Params: params})
}

// Debug sends an advisory trace message.
func (w *Writer) Debug(msg string) error {
	return w.Write(model.Debug{Debug: msg})
}

// marshal encodes v without HTML escaping and without the encoder's
// trailing newline.
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
