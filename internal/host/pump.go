// Copyright (c) 2025 Deskbridge
// Licensed under the MIT License. See LICENSE file in the project root for details.

package host

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"

	"deskbridge/cli/internal/bridge/model"
	"deskbridge/cli/internal/errors"
	"deskbridge/cli/internal/frame"
)

// wireRequest mirrors the request object; pointers detect missing fields.
type wireRequest struct {
	ID     *int64             `json:"id"`
	Method *string            `json:"method"`
	Params *[]json.RawMessage `json:"params"`
}

// parseRequest decodes a request payload. On failure it still returns the
// id when one could be read, so a lenient pump can answer it.
func parseRequest(payload []byte) (model.Request, *int64, error) {
	var w wireRequest
	dec := json.NewDecoder(bytes.NewReader(payload))
	if err := dec.Decode(&w); err != nil {
		return model.Request{}, recoverID(payload), errors.Wrap(errors.MalformedRequest, "invalid request JSON", err)
	}
	if dec.More() {
		return model.Request{}, w.ID, errors.New(errors.MalformedRequest, "trailing data after request object")
	}
	var missing []string
	if w.ID == nil {
		missing = append(missing, "id")
	}
	if w.Method == nil {
		missing = append(missing, "method")
	}
	if w.Params == nil {
		missing = append(missing, "params")
	}
	if len(missing) > 0 {
		return model.Request{}, w.ID, errors.New(errors.MalformedRequest, fmt.Sprintf("request missing %v", missing))
	}
	return model.Request{ID: *w.ID, Method: *w.Method, Params: *w.Params}, w.ID, nil
}

// recoverID reads only the id of a payload whose other fields are broken.
func recoverID(payload []byte) *int64 {
	var probe struct {
		ID *int64 `json:"id"`
	}
	if err := json.Unmarshal(payload, &probe); err != nil {
		return nil
	}
	return probe.ID
}

// pump reads frames until the input ends, dispatching each request and
// writing its response before the next frame is read.
func (h *Host) pump(ctx context.Context) error {
	r := frame.NewReader(h.in, h.maxFrame)
	for {
		payload, err := r.Next()
		if err != nil {
			if stderrors.Is(err, io.EOF) {
				h.log.Debug().Msg("input closed")
			} else {
				h.log.Debug().Err(err).Msg("input ended on malformed frame")
			}
			return nil
		}

		req, id, err := parseRequest(payload)
		if err != nil {
			if h.strict {
				h.log.Error().Err(err).Msg("malformed request, stopping")
				return err
			}
			if werr := h.reject(id, err); werr != nil {
				return werr
			}
			continue
		}

		h.log.Debug().Int64("id", req.ID).Str("method", req.Method).Msg("request")
		if err := h.out.WriteResponse(h.table.Dispatch(ctx, req)); err != nil {
			return fmt.Errorf("write response: %w", err)
		}
	}
}

// reject answers a malformed request in lenient mode: an error response
// when the id is known, a debug message otherwise.
func (h *Host) reject(id *int64, err error) error {
	h.log.Warn().Err(err).Msg("malformed request")
	if id != nil {
		return h.out.WriteResponse(model.Fail(*id, errors.Describe(err)))
	}
	return h.out.Debug(errors.Describe(err))
}
