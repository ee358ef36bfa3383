// Copyright (c) 2025 Deskbridge
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"deskbridge/cli/internal/bridge"
	"deskbridge/cli/internal/dispatch"
	"deskbridge/cli/internal/errors"
	"deskbridge/cli/internal/host"
	"deskbridge/cli/internal/logging"
	"deskbridge/cli/internal/terminal"

	"atomicgo.dev/cursor"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

const monitorHistory = 10

// monitorState is what the live view shows. Signal handlers update it on
// the transport goroutine while the redraw loop reads it.
type monitorState struct {
	mu       sync.Mutex
	desktop  string
	activity string
	events   []string
}

func (s *monitorState) apply(name string, params []any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch name {
	case "desktopChanged":
		s.desktop = params[0].(string)
	case "activityChanged":
		s.activity = params[0].(string)
	}
	line := fmt.Sprintf("%s %s %v", time.Now().Format(time.TimeOnly), name, params)
	s.events = append(s.events, line)
	if len(s.events) > monitorHistory {
		s.events = s.events[len(s.events)-monitorHistory:]
	}
}

func (s *monitorState) render(frame string, width int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var b strings.Builder
	fmt.Fprintf(&b, "%s Listening for window manager signals\n\n", frame)
	fmt.Fprintf(&b, "  Desktop:  %s\n", pterm.Cyan(orDash(s.desktop)))
	fmt.Fprintf(&b, "  Activity: %s\n\n", pterm.Cyan(orDash(s.activity)))
	if len(s.events) == 0 {
		b.WriteString(pterm.Gray("  no signals yet"))
	}
	for _, e := range s.events {
		b.WriteString("  " + terminal.Truncate(e, width-2) + "\n")
	}
	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// monitorCmd shows the current desktop and activity and every signal the
// window manager emits until interrupted.
var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Watch window manager signals live",
	Long: `The monitor command connects to the window manager plugin, shows the
current desktop and activity, and lists signals as they arrive. It is a
quick way to check that the plugin is loaded and reachable.

Press Ctrl+C to stop.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := logging.New(cfg.Log.Level, os.Stderr)

		spinner, _ := pterm.DefaultSpinner.Start("Connecting to " + logging.Mask(cfg.Remote.Address))
		remote, err := bridge.New(ctx, remoteOptions(cfg))
		if err != nil {
			if spinner != nil {
				spinner.Fail("Connection failed")
			}
			logging.PresentRemoteError(err)
			return fmt.Errorf("connect: %s", logging.Mask(errors.Describe(err)))
		}
		defer remote.Close()
		if spinner != nil {
			spinner.Success("Connected")
		}

		state := &monitorState{}
		table := dispatch.New(remote, dispatch.WithLogger(log))
		if v, err := table.Invoke(ctx, 0, "getCurrentDesktop", nil); err == nil {
			state.desktop, _ = v.(string)
		} else {
			log.Warn().Err(err).Msg("getCurrentDesktop")
		}
		if v, err := table.Invoke(ctx, 0, "getCurrentActivity", nil); err == nil {
			state.activity, _ = v.(string)
		} else {
			log.Warn().Err(err).Msg("getCurrentActivity")
		}

		for _, spec := range host.Signals {
			spec := spec
			err := remote.Subscribe(spec.Name, func(args []any) {
				params, err := host.Convert(spec, args)
				if err != nil {
					log.Warn().Str("signal", spec.Name).Err(err).Msg("malformed signal")
					return
				}
				state.apply(spec.Name, params)
			})
			if err != nil {
				return err
			}
		}

		cursor.Hide()
		defer cursor.Show()
		area, err := pterm.DefaultArea.Start()
		if err != nil {
			return err
		}
		defer area.Stop()

		ticker := time.NewTicker(120 * time.Millisecond)
		defer ticker.Stop()
		for i := 0; ; i++ {
			area.Update(state.render(spinnerFrames[i%len(spinnerFrames)], terminal.Width()))
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(monitorCmd)
}
