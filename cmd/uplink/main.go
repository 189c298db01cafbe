// Uplink is a terminal portal that walks through a staged account flow:
// landing, credential entry, a simulated provisioning run with telemetry
// lines, and a payment panel with a copy action.
//
// All behaviour is cosmetic. Credentials typed into the portal are never
// validated, stored or transmitted. Telemetry lines come from an optional
// language-model provider (Gemini or an OpenAI-compatible endpoint) and fall
// back to a fixed set when none is configured or the call fails.
//
// Usage:
//
//	uplink [command] [flags]
//
// Running without arguments launches the portal.
// See 'uplink --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/uplink/internal/config"
	"github.com/muurk/uplink/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Global flags
var (
	logLevel     string
	logFile      string
	configFile   string
	providerName string
)

var rootCmd = &cobra.Command{
	Use:   "uplink",
	Short: "Uplink Terminal Portal",
	Long: `A terminal portal with a staged account flow.

Walks through account creation or login, a simulated provisioning run
with live telemetry, and a payment panel. Nothing typed into the portal
leaves the process.

If no command is specified, the portal will launch automatically.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: run the portal when no subcommand provided
		return runPortal(cmd, args)
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); silent when unset")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Log destination file (required for logging inside the portal)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file path (default: user config directory)")
	rootCmd.PersistentFlags().StringVar(&providerName, "provider", "", "Telemetry provider override (gemini, openai, none)")

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "uplink %s (commit: %s) %s\n", version.Version, version.Commit, version.Platform())
	},
}

// configFilePath returns the --config path or the default location.
func configFilePath() (string, error) {
	if configFile != "" {
		return configFile, nil
	}
	return config.GetConfigPath()
}

// loadConfig reads the config file. A missing file yields the defaults.
func loadConfig() (*config.Config, string, error) {
	path, err := configFilePath()
	if err != nil {
		return nil, "", err
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}
