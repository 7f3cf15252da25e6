// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for mapvault.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"mapvault-cli/internal/config"
	"mapvault-cli/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string

	// loadedConfig is the configuration resolved by initRootConfig.
	loadedConfig *config.Config
	// loadedConfigPath is where loadedConfig came from ("" for defaults).
	loadedConfigPath string

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "mapvault",
		Short: "Archive GIS maps into portable feature stores",
		Long: TitleStyle.Render("mapvault") + SubtitleStyle.Render(" - Archive GIS maps into portable feature stores") + `

mapvault takes one map out of a GIS project and turns it into a
standalone, timestamped archive: layers are packaged into a clipped
transfer bundle, extracted with 7-Zip into a feature store, entity
names are repaired, Z-enabled layers are reprojected in, and each
layer's descriptive metadata travels along.

` + SubtitleStyle.Render("Examples:") + `
  mapvault archive ./survey --map "Bedrock*"   Archive a map
  mapvault layers ./survey --map "Bedrock*"    Summarize a map's layers
  mapvault config show                         Show current configuration`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/mapvault/config.cue)")

	// Add subcommands
	rootCmd.AddCommand(archiveCmd)
	rootCmd.AddCommand(layersCmd)
	rootCmd.AddCommand(configCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}

// initRootConfig reads in config file and ENV variables if set.
func initRootConfig() {
	cfg, path, err := config.Load(cfgFile)
	if err != nil {
		// Always surface config loading errors to the user
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	loadedConfig = cfg
	loadedConfigPath = path

	// Apply verbose from config if not set via flag
	if !verbose {
		verbose = cfg.UI.Verbose
	}
}

// activeConfig returns the resolved configuration, falling back to defaults
// when commands run before initRootConfig (as in tests).
func activeConfig() *config.Config {
	if loadedConfig == nil {
		return config.DefaultConfig()
	}
	return loadedConfig
}

// newLogger builds the structured logger commands hand to the pipeline.
func newLogger() *log.Logger {
	logger := log.New(os.Stderr)
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// GetVerbose returns the verbose flag value
func GetVerbose() bool {
	return verbose
}
