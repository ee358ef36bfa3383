// Copyright (c) 2025 Deskbridge
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	stderrors "errors"
	"io"
	"os"

	"deskbridge/cli/internal/bridge"
	"deskbridge/cli/internal/config"
	"deskbridge/cli/internal/errors"
	"deskbridge/cli/internal/host"
	"deskbridge/cli/internal/logging"
	"deskbridge/cli/internal/terminal"

	"github.com/rs/zerolog"
)

// loadConfig reads the config file and applies flag overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return cfg, err
	}
	if addressFlag != "" {
		cfg.Remote.Address = addressFlag
	}
	if logLevelFlag != "" {
		cfg.Log.Level = logLevelFlag
	}
	return cfg, cfg.Validate()
}

func remoteOptions(cfg config.Config) bridge.Options {
	return bridge.Options{
		Address:       cfg.Remote.Address,
		ObjectPath:    cfg.Remote.ObjectPath,
		Interface:     cfg.Remote.Interface,
		Destination:   cfg.Remote.Destination,
		AnonymousAuth: cfg.Remote.AnonymousAuth,
		CallTimeout:   cfg.Remote.CallTimeout,
		DialTimeout:   cfg.Remote.DialTimeout,
	}
}

// newLogger builds the bridge logger. Logs go to the configured file or
// to stderr, never to stdout.
func newLogger(cfg config.Config) (zerolog.Logger, func(), error) {
	path, err := cfg.LogFile()
	if err != nil {
		return zerolog.Nop(), func() {}, err
	}
	if path == "" {
		return logging.New(cfg.Log.Level, os.Stderr), func() {}, nil
	}
	f, err := logging.OpenFile(path)
	if err != nil {
		return zerolog.Nop(), func() {}, err
	}
	return logging.New(cfg.Log.Level, f), func() { _ = f.Close() }, nil
}

// runBridge serves the native-messaging protocol on stdin/stdout until the
// browser closes stdin.
func runBridge(ctx context.Context, args []string) error {
	return serve(ctx, os.Stdin, os.Stdout, args)
}

func serve(ctx context.Context, in *os.File, out io.Writer, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	if terminal.IsTerminal(in) {
		log.Warn().Msg("stdin is a terminal; deskbridge expects framed JSON from a browser")
	}
	log.Info().
		Strs("args", args).
		Str("address", logging.Mask(cfg.Remote.Address)).
		Str("version", Version).
		Msg("starting bridge")

	remote, connErr := bridge.New(ctx, remoteOptions(cfg))
	if connErr != nil {
		log.Error().
			Str("kind", string(errors.KindOf(connErr))).
			Str("error", logging.Mask(errors.Describe(connErr))).
			Msg("every call will fail")
		remote = bridge.Unavailable(connErr)
	}
	defer remote.Close()

	h := host.New(host.Options{
		In:           in,
		Out:          out,
		Remote:       remote,
		Logger:       log,
		MaxFrameSize: cfg.Bridge.MaxFrameSize,
		Strict:       cfg.Bridge.StrictRequests,
		DebugTraces:  cfg.Bridge.DebugTraces,
	})
	if connErr != nil {
		_ = h.Writer().Debug(logging.Mask(errors.Describe(connErr)))
	}

	err = h.Run(ctx)
	if stderrors.Is(err, context.Canceled) {
		log.Info().Msg("interrupted")
		return nil
	}
	if err != nil {
		return err
	}
	log.Info().Msg("input closed, exiting")
	return nil
}
