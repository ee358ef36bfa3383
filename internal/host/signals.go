// Copyright (c) 2025 Deskbridge
// Licensed under the MIT License. See LICENSE file in the project root for details.

package host

import (
	"fmt"

	"deskbridge/cli/internal/bridge"
	"deskbridge/cli/internal/bridge/model"

	"github.com/rs/zerolog"
)

// SignalSpec describes a signal the remote service emits.
type SignalSpec struct {
	Name string
	Args []model.Kind
}

// Signals is every signal forwarded to the browser.
var Signals = []SignalSpec{
	{Name: "windowDesktopsChanged", Args: []model.Kind{model.KindString, model.KindStringList}},
	{Name: "windowActivitiesChanged", Args: []model.Kind{model.KindString, model.KindStringList}},
	{Name: "activityChanged", Args: []model.Kind{model.KindString}},
	{Name: "desktopChanged", Args: []model.Kind{model.KindString}},
}

// forwarder re-encodes remote signals as signal messages.
type forwarder struct {
	out *Writer
	log zerolog.Logger
}

// subscribe registers a handler for every entry of Signals.
func (f *forwarder) subscribe(remote bridge.Remote) error {
	for _, spec := range Signals {
		spec := spec
		if err := remote.Subscribe(spec.Name, func(args []any) { f.forward(spec, args) }); err != nil {
			return fmt.Errorf("subscribe %s: %w", spec.Name, err)
		}
	}
	return nil
}

func (f *forwarder) forward(spec SignalSpec, args []any) {
	params, err := Convert(spec, args)
	if err != nil {
		f.log.Warn().Str("signal", spec.Name).Err(err).Msg("dropping malformed signal")
		_ = f.out.Debug(fmt.Sprintf("malformed %s signal: %v", spec.Name, err))
		return
	}
	if err := f.out.WriteSignal(spec.Name, params); err != nil {
		f.log.Error().Str("signal", spec.Name).Err(err).Msg("write signal")
		return
	}
	f.log.Debug().Str("signal", spec.Name).Msg("signal forwarded")
}

// Convert checks a signal body against spec and returns the JSON params.
func Convert(spec SignalSpec, args []any) ([]any, error) {
	if len(args) != len(spec.Args) {
		return nil, fmt.Errorf("want %d args, got %d", len(spec.Args), len(args))
	}
	params := make([]any, len(args))
	for i, kind := range spec.Args {
		v, ok := kind.Accept(args[i])
		if !ok {
			return nil, fmt.Errorf("arg %d: want %s, got %T", i, kind, args[i])
		}
		params[i] = v
	}
	return params, nil
}
