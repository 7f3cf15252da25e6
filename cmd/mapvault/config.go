// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"mapvault-cli/internal/config"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage mapvault configuration",
	Long: `Manage mapvault configuration.

Configuration is stored in:
  - Linux: ~/.config/mapvault/config.cue
  - macOS: ~/Library/Application Support/mapvault/config.cue
  - Windows: %APPDATA%\mapvault\config.cue`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig()
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath()
		},
	})
}

func showConfig() error {
	cfg := activeConfig()

	fmt.Println(TitleStyle.Render("Current Configuration"))
	fmt.Println()

	if loadedConfigPath != "" {
		fmt.Printf("%s: %s\n", PathStyle.Render("Config file"), loadedConfigPath)
	} else {
		fmt.Printf("%s: %s\n", PathStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Println()

	// TOML mirrors the mapstructure keys, so the rendered document reads
	// the same as the CUE schema's fields.
	doc := map[string]any{
		"seven_zip": map[string]any{
			"paths": cfg.SevenZip.Paths,
		},
		"archive": map[string]any{
			"default_crs": cfg.Archive.DefaultCRS,
			"keep_temp":   cfg.Archive.KeepTemp,
		},
		"ui": map[string]any{
			"verbose":      cfg.UI.Verbose,
			"color_scheme": string(cfg.UI.ColorScheme),
		},
	}
	out, err := toml.Marshal(doc)
	if err != nil {
		return err
	}
	fmt.Println(strings.TrimSpace(string(out)))
	return nil
}

func showConfigPath() error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	fmt.Println(filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt))
	return nil
}
