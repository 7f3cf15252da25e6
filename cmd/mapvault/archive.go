// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"

	"mapvault-cli/internal/archive"
	"mapvault-cli/internal/engine/fsengine"
	"mapvault-cli/internal/issue"
	"mapvault-cli/internal/sevenzip"
	"mapvault-cli/pkg/gis"

	"github.com/spf13/cobra"
)

var (
	archiveMapPattern  string
	archiveOut         string
	archiveExtentLayer string
	archiveKeepTemp    bool
	archiveOutputZ     bool
	archiveOutputM     bool

	archiveCmd = &cobra.Command{
		Use:   "archive <project-dir>",
		Short: "Archive a map into a timestamped feature-store folder",
		Long: `Archive one map from a project into a standalone folder.

The map's flat layers are packaged into a clipped transfer bundle,
extracted with 7-Zip into a feature store, entity names are repaired,
Z-enabled layers are reprojected into the store one by one, and layer
metadata is carried across. The result lands in a folder named
archive_<map>_<timestamp> under --out.`,
		Args: cobra.ExactArgs(1),
		RunE: runArchive,
	}
)

func init() {
	archiveCmd.Flags().StringVarP(&archiveMapPattern, "map", "m", "", "map to archive (supports * wildcards)")
	archiveCmd.Flags().StringVarP(&archiveOut, "out", "o", ".", "parent directory for the archive folder")
	archiveCmd.Flags().StringVar(&archiveExtentLayer, "extent-layer", "", "layer whose extent clips the packaged data")
	archiveCmd.Flags().BoolVar(&archiveKeepTemp, "keep-temp", false, "keep the transfer bundle and working copies")
	archiveCmd.Flags().BoolVar(&archiveOutputZ, "output-z", false, "carry elevation values in packaged geometries")
	archiveCmd.Flags().BoolVar(&archiveOutputM, "output-m", false, "carry measure values in packaged geometries")
	_ = archiveCmd.MarkFlagRequired("map")
}

func runArchive(cmd *cobra.Command, args []string) error {
	cfg := activeConfig()

	pipe := archive.New(
		fsengine.New(),
		&archive.SevenZipExtractor{ExtraPaths: cfg.SevenZip.Paths},
		newLogger(),
	)

	report, err := pipe.Run(cmd.Context(), archive.RunOptions{
		ProjectPath: args[0],
		MapPattern:  archiveMapPattern,
		OutputDir:   archiveOut,
		ExtentLayer: archiveExtentLayer,
		DefaultCRS:  defaultCRS(cfg.Archive.DefaultCRS),
		OutputZ:     archiveOutputZ,
		OutputM:     archiveOutputM,
		KeepTemp:    archiveKeepTemp || cfg.Archive.KeepTemp,
	})
	if err != nil {
		if id := classifyArchiveError(err); id != 0 {
			if entry := issue.Lookup(id); entry != nil {
				rendered, _ := entry.Render("dark")
				fmt.Fprint(os.Stderr, rendered)
			}
		}
		return &ExitError{Code: 1, Err: decorateArchiveError(err, args[0])}
	}

	fmt.Println(SuccessStyle.Render("Archive complete: ") + PathStyle.Render(report.Store))
	fmt.Printf("  %d flat layer(s), %d Z-enabled layer(s)\n", report.NonZ, report.Z)
	for _, r := range report.Renames {
		fmt.Printf("  renamed %s -> %s\n", r.From, r.To)
	}
	if warnings := report.Warnings(); len(warnings) > 0 {
		fmt.Println(WarningStyle.Render(fmt.Sprintf("%d layer(s) reported warnings:", len(warnings))))
		for _, w := range warnings {
			fmt.Printf("  - %s\n", w)
		}
	}
	return nil
}

// defaultCRS maps a configured EPSG code onto a SpatialReference, keeping
// the well-known name when the code matches one.
func defaultCRS(code int) gis.SpatialReference {
	for _, known := range []gis.SpatialReference{gis.WGS84, gis.WebMercator, gis.NAD83UTM16N} {
		if known.Code == code {
			return known
		}
	}
	return gis.SpatialReference{Code: code}
}

// classifyArchiveError maps a structural pipeline error onto the issue
// catalog entry worth rendering for it, or 0 for errors with no card.
func classifyArchiveError(err error) issue.Id {
	var extractErr *sevenzip.ExtractError
	switch {
	case errors.Is(err, sevenzip.ErrNotFound):
		return issue.SevenZipNotFoundId
	case errors.Is(err, gis.ErrMapNotFound):
		return issue.MapNotFoundId
	case errors.Is(err, archive.ErrLayerNotFound):
		return issue.ExtentLayerNotFoundId
	case errors.Is(err, archive.ErrStoreNotFound):
		return issue.StoreNotFoundId
	case errors.As(err, &extractErr):
		return issue.ExtractionFailedId
	default:
		return 0
	}
}

// decorateArchiveError attaches operation context and suggestions to the
// structural errors users hit most.
func decorateArchiveError(err error, projectPath string) error {
	switch {
	case errors.Is(err, gis.ErrMapNotFound):
		return issue.NewErrorContext().
			WithOperation("select map").
			WithResource(projectPath).
			WithSuggestion(fmt.Sprintf("Run 'mapvault layers %s --map \"*\"' to list the project's maps", projectPath)).
			WithSuggestion("Quote wildcard patterns so the shell does not expand them").
			Wrap(err).
			Build()
	case errors.Is(err, archive.ErrLayerNotFound), errors.Is(err, archive.ErrNoSpatialExtent):
		return issue.NewErrorContext().
			WithOperation("resolve clip extent").
			WithResource(archiveExtentLayer).
			WithSuggestion("Pass --extent-layer with the exact name of a non-group layer").
			Wrap(err).
			Build()
	default:
		return issue.WrapWithContext(err, "archive map", projectPath)
	}
}
