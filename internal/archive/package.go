// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"context"
	"fmt"
	"path/filepath"

	"mapvault-cli/pkg/gis"
)

// BuildPackage assembles the non-Z layers into a transfer bundle on disk
// and returns the bundle path. The layers are staged on a transient map
// (so the source map is never mutated), packaged with the clip extent, and
// the transient map is removed again whether packaging succeeded or not.
//
// Packaging always converts data into a single output store so that the
// extraction stage finds exactly one feature store inside the bundle.
func (p *Pipeline) BuildPackage(ctx context.Context, proj gis.Project, m *gis.Map, nonZ []gis.Layer, extent *gis.Extent, outDir string, outputZ, outputM bool) (string, error) {
	staging, err := proj.CreateMap(fmt.Sprintf("%s (transfer)", m.Name))
	if err != nil {
		return "", fmt.Errorf("stage transfer map: %w", err)
	}
	defer func() {
		_ = proj.DeleteMap(staging)
	}()

	staging.CRS = m.CRS
	for _, layer := range nonZ {
		staging.AddLayer(layer)
	}

	bundle := filepath.Join(outDir, gis.ValidateName(m.Name)+gis.BundleExt)
	opts := gis.PackageOptions{
		OutputFile:          bundle,
		ConvertData:         true,
		KeepOnlyRelatedRows: true,
		SingleOutputStore:   true,
		Extent:              extent,
		OutputZ:             outputZ,
		OutputM:             outputM,
	}
	if err := proj.PackageMap(ctx, staging, opts); err != nil {
		return "", fmt.Errorf("package map %q: %w", m.Name, err)
	}
	return bundle, nil
}
