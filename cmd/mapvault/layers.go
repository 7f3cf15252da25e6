// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"

	"mapvault-cli/internal/engine/fsengine"
	"mapvault-cli/internal/issue"
	"mapvault-cli/internal/report"
	"mapvault-cli/pkg/gis"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

var (
	layersMapPattern string
	layersOut        string
	layersPretty     bool

	layersCmd = &cobra.Command{
		Use:   "layers <project-dir>",
		Short: "Summarize a map's layers and export their metadata",
		Long: `Generate a layer summary for one map: name, data source, coordinate
system, author, and metadata dates for every non-group layer.

With --out, the summary is written as <map>_layer_summary.txt next to a
metadata/ folder holding one exported XML metadata document per layer.
Without --out, the summary is printed to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: runLayers,
	}
)

func init() {
	layersCmd.Flags().StringVarP(&layersMapPattern, "map", "m", "", "map to summarize (supports * wildcards)")
	layersCmd.Flags().StringVarP(&layersOut, "out", "o", "", "directory to write the summary and metadata exports to")
	layersCmd.Flags().BoolVar(&layersPretty, "pretty", false, "render the summary as styled markdown")
	_ = layersCmd.MarkFlagRequired("map")
}

func runLayers(cmd *cobra.Command, args []string) error {
	gen := report.NewGenerator(fsengine.New())
	r, err := gen.Build(cmd.Context(), args[0], layersMapPattern)
	if err != nil {
		if errors.Is(err, gis.ErrMapNotFound) {
			if entry := issue.Lookup(issue.MapNotFoundId); entry != nil {
				rendered, _ := entry.Render("dark")
				fmt.Fprint(os.Stderr, rendered)
			}
		}
		return &ExitError{Code: 1, Err: issue.WrapWithContext(err, "summarize layers", args[0])}
	}

	if layersOut != "" {
		summaryPath, metadataDir, err := r.WriteFiles(layersOut)
		if err != nil {
			return &ExitError{Code: 1, Err: issue.WrapWithContext(err, "write layer summary", layersOut)}
		}
		fmt.Println(SuccessStyle.Render("Summary file created: ") + PathStyle.Render(summaryPath))
		fmt.Println(SuccessStyle.Render("Metadata exported to: ") + PathStyle.Render(metadataDir))
		return nil
	}

	if layersPretty {
		rendered, err := glamour.Render(r.Markdown(), "dark")
		if err != nil {
			// Styled rendering is cosmetic; fall through to plain text.
			fmt.Print(r.Text())
			return nil
		}
		fmt.Print(rendered)
		return nil
	}

	fmt.Print(r.Text())
	return nil
}
