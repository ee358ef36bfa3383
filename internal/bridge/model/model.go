// Copyright (c) 2025 Deskbridge
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package model defines the JSON messages exchanged with the browser and
// the value kinds used to describe remote method parameters and signal
// payloads.
//
// The types in this package are transport-agnostic: they describe what
// travels over stdio, not how the remote service is reached.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Request is a decoded method call from the browser.
type Request struct {
	ID     int64
	Method string
	Params []json.RawMessage
}

// Response answers exactly one Request. When Err is non-empty the
// response carries "error", otherwise "result".
type Response struct {
	ID     int64
	Result any
	Err    string
	Failed bool
}

// Fail builds an error response for id.
func Fail(id int64, msg string) Response {
	return Response{ID: id, Err: msg, Failed: true}
}

// Succeed builds a result response for id.
func Succeed(id int64, result any) Response {
	return Response{ID: id, Result: result}
}

// MarshalJSON encodes {"id","result"} or {"id","error"}, never both.
// HTML characters are left unescaped.
func (r Response) MarshalJSON() ([]byte, error) {
	if r.Failed {
		return marshalRaw(struct {
			ID    int64  `json:"id"`
			Error string `json:"error"`
		}{r.ID, r.Err})
	}
	return marshalRaw(struct {
		ID     int64 `json:"id"`
		Result any   `json:"result"`
	}{r.ID, r.Result})
}

// marshalRaw is json.Marshal without HTML escaping. encoding/json does not
// re-escape the output of a Marshaler, so the setting must be applied here.
func marshalRaw(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Signal is an unsolicited notification forwarded from the remote service.
type Signal struct {
	Signal string `json:"signal"`
	Params []any  `json:"params"`
}

// Debug is an advisory trace message.
type Debug struct {
	Debug string `json:"debug"`
}

// Kind describes the JSON shape of a parameter or signal argument.
type Kind int

const (
	// KindString is a JSON string, a D-Bus "s".
	KindString Kind = iota
	// KindStringList is a JSON array of strings, a D-Bus "as".
	KindStringList
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindStringList:
		return "array of string"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Decode converts a raw JSON value of kind k to its native Go value
// (string or []string). JSON null is never accepted.
func (k Kind) Decode(raw json.RawMessage) (any, error) {
	raw = bytes.TrimSpace(raw)
	switch k {
	case KindString:
		if len(raw) == 0 || raw[0] != '"' {
			return nil, fmt.Errorf("want string, got %s", describe(raw))
		}
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		return s, nil
	case KindStringList:
		if len(raw) == 0 || raw[0] != '[' {
			return nil, fmt.Errorf("want array of string, got %s", describe(raw))
		}
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, err
		}
		out := make([]string, 0, len(items))
		for i, item := range items {
			s, err := KindString.Decode(item)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			out = append(out, s.(string))
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported kind %v", k)
}

// Accept checks that v, a value delivered by the transport, has kind k and
// returns it in the shape the JSON encoder expects.
func (k Kind) Accept(v any) (any, bool) {
	switch k {
	case KindString:
		s, ok := v.(string)
		return s, ok
	case KindStringList:
		l, ok := v.([]string)
		if ok && l == nil {
			l = []string{}
		}
		return l, ok
	}
	return nil, false
}

func describe(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "nothing"
	}
	switch raw[0] {
	case '{':
		return "object"
	case '[':
		return "array"
	case '"':
		return "string"
	case 't', 'f':
		return "boolean"
	case 'n':
		return "null"
	}
	return "number"
}
