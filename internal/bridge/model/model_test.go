// Copyright (c) 2025 Deskbridge
// Licensed under the MIT License. See LICENSE file in the project root for details.

package model

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestResponseJSON(t *testing.T) {
	tests := []struct {
		name string
		resp Response
		want string
	}{
		{name: "null result", resp: Succeed(2, nil), want: `{"id":2,"result":null}`},
		{name: "string result", resp: Succeed(1, "desk-1"), want: `{"id":1,"result":"desk-1"}`},
		{name: "list result", resp: Succeed(5, []string{"a", "b"}), want: `{"id":5,"result":["a","b"]}`},
		{name: "error", resp: Fail(3, "Unknown method: bogus"), want: `{"id":3,"error":"Unknown method: bogus"}`},
		{name: "empty error message", resp: Fail(4, ""), want: `{"id":4,"error":""}`},
		{name: "error with markup", resp: Fail(6, "Unknown method: <a&b>"), want: `{"id":6,"error":"Unknown method: <a&b>"}`},
		{name: "result with markup", resp: Succeed(8, []string{"d<1>", "a&b"}), want: `{"id":8,"result":["d<1>","a&b"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.resp.MarshalJSON()
			if err != nil {
				t.Fatalf("MarshalJSON() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("MarshalJSON() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestKindDecode(t *testing.T) {
	tests := []struct {
		name    string
		kind    Kind
		raw     string
		want    any
		wantErr bool
	}{
		{name: "string", kind: KindString, raw: `"w1"`, want: "w1"},
		{name: "string with spaces", kind: KindString, raw: ` "w1" `, want: "w1"},
		{name: "null is not a string", kind: KindString, raw: `null`, wantErr: true},
		{name: "number is not a string", kind: KindString, raw: `7`, wantErr: true},
		{name: "empty list", kind: KindStringList, raw: `[]`, want: []string{}},
		{name: "list", kind: KindStringList, raw: `["a","b"]`, want: []string{"a", "b"}},
		{name: "null element", kind: KindStringList, raw: `["a",null]`, wantErr: true},
		{name: "null is not a list", kind: KindStringList, raw: `null`, wantErr: true},
		{name: "string is not a list", kind: KindStringList, raw: `"a"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.kind.Decode(json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Decode() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Decode() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestKindAccept(t *testing.T) {
	if v, ok := KindStringList.Accept([]string(nil)); !ok || v == nil {
		t.Errorf("Accept(nil list) = %#v, %v; want empty list", v, ok)
	}
	if _, ok := KindString.Accept(42); ok {
		t.Errorf("Accept(int) as string = true, want false")
	}
	if _, ok := KindStringList.Accept("a"); ok {
		t.Errorf("Accept(string) as list = true, want false")
	}
}
