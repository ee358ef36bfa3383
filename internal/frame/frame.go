// Copyright (c) 2025 Deskbridge
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package frame implements the length-prefixed framing used on both stdio
// streams of the native-messaging host. Every frame is a 4-byte unsigned
// length in host byte order followed by exactly that many payload bytes.
package frame

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// HeaderSize is the size of the length prefix in bytes.
const HeaderSize = 4

// ByteOrder is the byte order of the length prefix. Browsers write the
// prefix in the native order of the host.
var ByteOrder = binary.NativeEndian

var (
	// ErrEmptyFrame is returned when a frame declares a zero length.
	ErrEmptyFrame = errors.New("frame: zero-length frame")
	// ErrShortFrame is returned when the header or payload is truncated.
	ErrShortFrame = errors.New("frame: short read")
	// ErrFrameTooLarge is returned when a frame exceeds the reader's limit.
	ErrFrameTooLarge = errors.New("frame: frame too large")
)

// Encode returns payload with its length prefix prepended.
func Encode(payload []byte) []byte {
	out := make([]byte, HeaderSize+len(payload))
	ByteOrder.PutUint32(out, uint32(len(payload)))
	copy(out[HeaderSize:], payload)
	return out
}

// Decode reads a single frame from r with no size limit.
func Decode(r io.Reader) ([]byte, error) {
	return NewReader(r, 0).Next()
}

// Reader decodes consecutive frames from an underlying stream.
type Reader struct {
	r     io.Reader
	limit uint32
	hdr   [HeaderSize]byte
}

// NewReader returns a Reader over r. A limit of 0 disables the size limit.
func NewReader(r io.Reader, limit uint32) *Reader {
	return &Reader{r: r, limit: limit}
}

// Next reads the next frame payload. A clean end of stream before any
// header byte yields io.EOF; every other failure wraps one of the
// package's sentinel errors. Callers treat all errors as end of stream.
func (r *Reader) Next() ([]byte, error) {
	n, err := io.ReadFull(r.r, r.hdr[:])
	if err != nil {
		if errors.Is(err, io.EOF) && n == 0 {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("%w: header: %d of %d bytes", ErrShortFrame, n, HeaderSize)
	}
	length := ByteOrder.Uint32(r.hdr[:])
	if length == 0 {
		return nil, ErrEmptyFrame
	}
	if r.limit > 0 && length > r.limit {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrFrameTooLarge, length, r.limit)
	}
	payload := make([]byte, length)
	if n, err := io.ReadFull(r.r, payload); err != nil {
		return nil, fmt.Errorf("%w: payload: %d of %d bytes", ErrShortFrame, n, length)
	}
	return payload, nil
}
