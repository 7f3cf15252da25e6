// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"mapvault-cli/pkg/gis"
)

// archiveTimeFormat names archive folders down to the second, so repeated
// runs against the same map never collide.
const archiveTimeFormat = "20060102_150405"

type (
	// Pipeline runs the map-archival stages against a GIS engine. The zero
	// value is not usable; construct one with New.
	Pipeline struct {
		Engine    gis.Engine
		Extractor BundleExtractor
		Logger    *log.Logger
		// Clock supplies the archive folder timestamp. Tests pin it.
		Clock func() time.Time
	}

	// RunOptions parameterizes one archival run.
	RunOptions struct {
		// ProjectPath is the project to open.
		ProjectPath string
		// MapPattern selects the map to archive. Supports "*" wildcards;
		// the first match wins.
		MapPattern string
		// OutputDir is the parent directory the timestamped archive folder
		// is created in.
		OutputDir string
		// ExtentLayer, when set, names the layer whose extent clips the
		// packaged data. Empty means an unclipped run.
		ExtentLayer string
		// DefaultCRS is the reprojection target when the map itself does
		// not declare a coordinate system.
		DefaultCRS gis.SpatialReference
		// OutputZ and OutputM control elevation and measure values in the
		// packaged geometries.
		OutputZ bool
		OutputM bool
		// KeepTemp retains the transfer bundle and working copies, and
		// disables cleanup of the archive folder on failure.
		KeepTemp bool
	}
)

// New returns a pipeline over the given engine and extractor. A nil logger
// falls back to the package default.
func New(engine gis.Engine, extractor BundleExtractor, logger *log.Logger) *Pipeline {
	if logger == nil {
		logger = log.Default()
	}
	return &Pipeline{
		Engine:    engine,
		Extractor: extractor,
		Logger:    logger,
		Clock:     time.Now,
	}
}

// Run executes the full archival chain: classify layers, resolve the clip
// extent, package the non-Z layers into a transfer bundle, extract it into
// a feature store, repair entity names, reconcile Z layers, and propagate
// metadata. Structural failures abort the run and, unless KeepTemp is set,
// remove the partially written archive folder. Per-layer failures are
// collected as warning outcomes on the returned report instead.
func (p *Pipeline) Run(ctx context.Context, opts RunOptions) (*RunReport, error) {
	proj, err := p.Engine.OpenProject(ctx, opts.ProjectPath)
	if err != nil {
		return nil, fmt.Errorf("open project %s: %w", opts.ProjectPath, err)
	}
	defer proj.Close()

	m, err := proj.FindMap(opts.MapPattern)
	if err != nil {
		return nil, err
	}
	p.Logger.Info("archiving map", "map", m.Name, "layers", len(m.Layers))

	extent, err := p.ResolveExtent(m, opts.ExtentLayer)
	if err != nil {
		return nil, err
	}
	if extent != nil {
		p.Logger.Info("clipping to extent", "layer", opts.ExtentLayer,
			"xmin", extent.XMin, "ymin", extent.YMin, "xmax", extent.XMax, "ymax", extent.YMax)
	}

	classification, outcomes := p.Classify(m)
	p.Logger.Info("classified layers", "non_z", len(classification.NonZ), "z", len(classification.Z))

	outDir := filepath.Join(opts.OutputDir, fmt.Sprintf("archive_%s_%s",
		gis.ValidateName(m.Name), p.now().Format(archiveTimeFormat)))
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create archive folder %s: %w", outDir, err)
	}

	report := &RunReport{
		Map:       m.Name,
		OutputDir: outDir,
		NonZ:      len(classification.NonZ),
		Z:         len(classification.Z),
		Outcomes:  outcomes,
	}

	bundle, err := p.BuildPackage(ctx, proj, m, classification.NonZ, extent, outDir, opts.OutputZ, opts.OutputM)
	if err != nil {
		p.cleanup(outDir, opts.KeepTemp)
		return report, err
	}
	p.Logger.Info("built transfer bundle", "bundle", bundle)

	store, err := p.ExtractBundle(ctx, bundle, outDir, m.Name, opts.KeepTemp)
	if err != nil {
		// ExtractBundle already removed outDir on failure.
		return report, err
	}
	report.Store = store
	p.Logger.Info("extracted feature store", "store", store)

	report.Renames, err = p.NormalizeIdentifiers(store)
	if err != nil {
		p.cleanup(outDir, opts.KeepTemp)
		return report, err
	}

	target := m.CRS
	if target.Code == 0 {
		target = opts.DefaultCRS
	}
	report.Outcomes = append(report.Outcomes, p.ReconcileZLayers(ctx, classification.Z, store, target)...)
	report.Outcomes = append(report.Outcomes, p.PropagateMetadata(m, store, extent)...)

	for _, o := range report.Warnings() {
		p.Logger.Warn("layer skipped", "layer", o.Layer, "stage", o.Stage, "err", o.Err)
	}
	return report, nil
}

func (p *Pipeline) now() time.Time {
	if p.Clock == nil {
		return time.Now()
	}
	return p.Clock()
}

func (p *Pipeline) cleanup(dir string, keepTemp bool) {
	if keepTemp {
		return
	}
	if err := os.RemoveAll(dir); err != nil {
		p.Logger.Warn("cleanup archive folder", "dir", dir, "err", err)
	}
}
