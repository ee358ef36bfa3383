// Copyright (c) 2025 Deskbridge
// Licensed under the MIT License. See LICENSE file in the project root for details.

package dispatch

import (
	"context"

	"deskbridge/cli/internal/bridge"
	"deskbridge/cli/internal/bridge/model"
)

type invokeFunc func(ctx context.Context, r bridge.Remote, args []any) (any, error)

// Method describes one remote method reachable from the browser.
type Method struct {
	Name   string
	Params []model.Kind
	// Result names the JSON shape of a successful result.
	Result string

	invoke invokeFunc
}

// methods is the closed set of remote methods. JSON method names and
// D-Bus member names are identical.
var methods = []Method{
	{
		Name:   "claimWindow",
		Params: []model.Kind{model.KindString},
		Result: "string",
		invoke: returning("claimWindow", asScalar[string]),
	},
	{
		Name:   "getCurrentDesktop",
		Result: "string",
		invoke: returning("getCurrentDesktop", asScalar[string]),
	},
	{
		Name:   "getCurrentActivity",
		Result: "string",
		invoke: returning("getCurrentActivity", asScalar[string]),
	},
	{
		Name:   "getWindowDesktops",
		Params: []model.Kind{model.KindString},
		Result: "array of string",
		invoke: returning("getWindowDesktops", asList),
	},
	{
		Name:   "getWindowActivities",
		Params: []model.Kind{model.KindString},
		Result: "array of string",
		invoke: returning("getWindowActivities", asList),
	},
	{
		Name:   "switchToActivityDesktop",
		Params: []model.Kind{model.KindString, model.KindString},
		Result: "null",
		invoke: void("switchToActivityDesktop"),
	},
	{
		Name:   "setWindowActivities",
		Params: []model.Kind{model.KindString, model.KindStringList},
		Result: "null",
		invoke: void("setWindowActivities"),
	},
	{
		Name:   "setWindowDesktops",
		Params: []model.Kind{model.KindString, model.KindStringList},
		Result: "null",
		invoke: void("setWindowDesktops"),
	},
}

// Methods returns the descriptors of every recognized method.
func Methods() []Method {
	return append([]Method(nil), methods...)
}

// returning builds an invocation whose reply is stored into a T and
// re-encoded by encode.
func returning[T any](member string, encode func(T) any) invokeFunc {
	return func(ctx context.Context, r bridge.Remote, args []any) (any, error) {
		var out T
		if err := r.Call(ctx, member, args, &out); err != nil {
			return nil, err
		}
		return encode(out), nil
	}
}

// void builds an invocation for a method with no return value; the JSON
// result is null.
func void(member string) invokeFunc {
	return func(ctx context.Context, r bridge.Remote, args []any) (any, error) {
		return nil, r.Call(ctx, member, args, nil)
	}
}

func asScalar[T any](v T) any { return v }

// asList keeps empty lists as [] instead of null.
func asList(v []string) any {
	if v == nil {
		return []string{}
	}
	return v
}
