// Tmcatcher is a client for the TrueMoney red packet interception service.
//
// It registers Thai phone numbers with an API key, logs catcher bots in with
// an SMS OTP and reports registration status and the online bot census.
//
// Usage:
//
//	tmcatcher [command] [flags]
//
// Running without arguments launches the interactive TUI.
// See 'tmcatcher --help' for available commands.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/muurk/tmcatcher/internal/version"
)

// errReported is returned by commands that already printed their failure
var errReported = errors.New("operation failed")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tmcatcher",
	Short: "TrueMoney red packet catcher client",
	Long: `A client for the TrueMoney red packet interception service.

Registers phone numbers with an API key, logs catcher bots in via SMS OTP,
and checks registration status and the number of online bots.

If no command is specified, the interactive TUI will launch automatically.`,
	Version:       version.Version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runTUI,
}

func init() {
	// Assigned here: setup reads the root's flags.
	rootCmd.PersistentPreRunE = setup

	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tmcatcher %s (commit: %s)\n", version.Version, version.Commit)
	},
}
