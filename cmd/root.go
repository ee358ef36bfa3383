// Copyright (c) 2025 Deskbridge
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface for deskbridge.
// Run without a subcommand, deskbridge acts as a browser native-messaging
// host: it reads framed JSON requests on stdin, calls the KWin window
// manager over D-Bus and writes replies and signals to stdout. The
// subcommands are tools for people: one-shot calls, a live monitor,
// manifest installation and config management.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"deskbridge/cli/internal/logging"

	"github.com/spf13/cobra"
)

var (
	showVersion  bool
	cfgPath      string
	addressFlag  string
	logLevelFlag string
)

// rootCmd represents the base command when called without any subcommands.
// Browsers launch it with the manifest path and extension id (Firefox) or
// the extension origin (Chrome) as arguments, so positional arguments and
// unknown flags are accepted and ignored.
var rootCmd = &cobra.Command{
	Use:   "deskbridge",
	Short: "Native-messaging bridge between the browser and the KWin window manager",
	Long: `deskbridge is launched by a browser extension as a native-messaging host.
It translates framed JSON requests on stdin into calls on the KWin window
manager plugin over a private D-Bus connection, and forwards the plugin's
change notifications back to the extension.`,
	Args:               cobra.ArbitraryArgs,
	FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
	SilenceUsage:       true,
	SilenceErrors:      true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			fmt.Printf("deskbridge %s\n", Version)
			return nil
		}
		return runBridge(cmd.Context(), args)
	},
}

// Execute runs the CLI application.
// It executes the root command and handles any errors that occur during execution.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, logging.PresentError("deskbridge", err))
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show version information")
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default $XDG_CONFIG_HOME/deskbridge/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&addressFlag, "address", "", "D-Bus address of the window manager plugin")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "log level (debug, info, warn, error)")
}
