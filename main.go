// Package main is the entry point for the deskbridge CLI application.
// It runs a browser native-messaging host that bridges framed JSON requests
// to the desktop window manager over D-Bus.
package main

import (
	"deskbridge/cli/cmd"
)

// main is the entry point for the deskbridge CLI application.
// It initializes and executes the command-line interface.
func main() {
	cmd.Execute()
}
