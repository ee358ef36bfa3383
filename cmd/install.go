// Copyright (c) 2025 Deskbridge
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"deskbridge/cli/internal/manifest"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	installBrowser     string
	installExtensionID string
	installName        string
	installExecPath    string
	installDir         string
)

// installCmd writes the native-messaging host manifest for a browser.
var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Register deskbridge as a native-messaging host",
	Long: `The install command writes the native-messaging host manifest that lets
the browser extension launch deskbridge. The manifest points at this
executable unless --path is given, and only the extension named by
--extension-id may connect.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		execPath := installExecPath
		if execPath == "" {
			p, err := os.Executable()
			if err != nil {
				return err
			}
			if resolved, err := filepath.EvalSymlinks(p); err == nil {
				p = resolved
			}
			execPath = p
		}

		browser := manifest.Browser(installBrowser)
		m, err := manifest.Build(browser, installName, execPath, installExtensionID)
		if err != nil {
			return err
		}

		dir := installDir
		if dir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return err
			}
			if dir, err = manifest.Dir(browser, home); err != nil {
				return err
			}
		}

		path, err := manifest.Install(dir, m)
		if err != nil {
			return fmt.Errorf("install manifest: %w", err)
		}
		pterm.Success.Printfln("Installed %s host manifest", browser)
		pterm.Info.Printfln("Manifest: %s", path)
		pterm.Info.Printfln("Host:     %s", execPath)
		return nil
	},
}

func init() {
	installCmd.Flags().StringVar(&installBrowser, "browser", string(manifest.Firefox), "browser to register with (firefox, chrome, chromium)")
	installCmd.Flags().StringVar(&installExtensionID, "extension-id", "", "id of the extension allowed to connect")
	installCmd.Flags().StringVar(&installName, "name", manifest.DefaultName, "native host name the extension connects to")
	installCmd.Flags().StringVar(&installExecPath, "path", "", "absolute path of the deskbridge executable (default: this executable)")
	installCmd.Flags().StringVar(&installDir, "dir", "", "manifest directory (default: the browser's per-user directory)")
	_ = installCmd.MarkFlagRequired("extension-id")
	rootCmd.AddCommand(installCmd)
}
