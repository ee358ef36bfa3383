// Copyright (c) 2025 Deskbridge
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"deskbridge/cli/internal/bridge"
	"deskbridge/cli/internal/dispatch"
	"deskbridge/cli/internal/errors"
	"deskbridge/cli/internal/logging"
	"deskbridge/cli/internal/terminal"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// callCmd invokes one method through the same dispatch table the bridge uses.
var callCmd = &cobra.Command{
	Use:   "call METHOD [PARAM...]",
	Short: "Call one window manager method and print the result",
	Long: `The call command connects to the window manager plugin, invokes a single
method and prints its JSON result. It uses the same method table and
parameter checks as the bridge.

Each PARAM is parsed as JSON; anything that is not valid JSON is taken as a
string. Quote numeric ids ('"42"') to pass them as strings.

Methods:
` + methodHelp(),
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := logging.New(cfg.Log.Level, os.Stderr)

		remote, err := bridge.New(ctx, remoteOptions(cfg))
		if err != nil {
			logging.PresentRemoteError(err)
			return fmt.Errorf("connect: %s", logging.Mask(errors.Describe(err)))
		}
		defer remote.Close()

		stop := func() {}
		if terminal.IsTerminal(os.Stderr) {
			stop = startInlineSpinner(os.Stderr, "Calling "+args[0], spinnerFrames, 100*time.Millisecond)
		}
		result, err := dispatch.New(remote, dispatch.WithLogger(log)).Invoke(ctx, 0, args[0], parseParams(args[1:]))
		stop()

		if err != nil {
			switch errors.KindOf(err) {
			case errors.UnknownMethod, errors.InvalidParams:
				pterm.Error.Println(errors.Describe(err))
			default:
				logging.PresentRemoteError(err)
			}
			return fmt.Errorf("%s failed", args[0])
		}

		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		pterm.Success.Println(args[0])
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(callCmd)
}

// parseParams turns command-line words into raw JSON params.
func parseParams(words []string) []json.RawMessage {
	params := make([]json.RawMessage, len(words))
	for i, w := range words {
		if json.Valid([]byte(w)) {
			params[i] = json.RawMessage(w)
			continue
		}
		b, _ := json.Marshal(w)
		params[i] = b
	}
	return params
}

func methodHelp() string {
	var b strings.Builder
	for _, m := range dispatch.Methods() {
		fmt.Fprintf(&b, "  %-24s (%s) -> %s\n", m.Name, m.Signature(), m.Result)
	}
	return b.String()
}
