// SPDX-License-Identifier: MPL-2.0

package fsengine

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"mapvault-cli/pkg/gis"
)

// PackageMap consolidates a map's layers into a transfer bundle: a zip
// archive containing one feature store whose entities carry the packaging
// convention's "L<index>" draw-order prefix. Only single-store output is
// supported, matching what the pipeline requests.
func (p *project) PackageMap(ctx context.Context, m *gis.Map, opts gis.PackageOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if opts.OutputFile == "" {
		return fmt.Errorf("package map %q: no output file", m.Name)
	}
	if !opts.SingleOutputStore {
		return fmt.Errorf("package map %q: only single-store output is supported", m.Name)
	}

	staging, err := os.MkdirTemp("", "mapvault-pkg-*")
	if err != nil {
		return fmt.Errorf("failed to create packaging workspace: %w", err)
	}
	defer os.RemoveAll(staging)

	storeDir := filepath.Join(staging, gis.ValidateName(m.Name)+gis.StoreExt)
	if err := os.MkdirAll(storeDir, 0o755); err != nil {
		return err
	}

	for i, layer := range m.Layers {
		if layer.IsGroup() {
			continue
		}

		fc, err := p.engine.readCollection(layer.DataSource)
		if err != nil {
			return fmt.Errorf("package map %q: layer %s: %w", m.Name, layer.Name, err)
		}
		if opts.Extent != nil {
			fc = clipCollection(fc, opts.Extent.Bound())
		}
		if layer.CRS.Code != 0 {
			setCRS(fc, layer.CRS.Code)
		}

		// Draw-order prefix, the tag the identifier normalizer later strips.
		entity := fmt.Sprintf("L%d%s", i, gis.ValidateName(layer.Name))
		if err := p.engine.writeCollection(filepath.Join(storeDir, entity), fc); err != nil {
			return fmt.Errorf("package map %q: layer %s: %w", m.Name, layer.Name, err)
		}
		// Packaging does not carry descriptive metadata; the pipeline's
		// metadata propagation stage restores it afterwards.
		if err := writeMetadataDoc(filepath.Join(storeDir, entity+metaExt), gis.Metadata{}); err != nil {
			return err
		}
	}

	if err := writeMetadataDoc(filepath.Join(storeDir, storeMeta), gis.Metadata{}); err != nil {
		return err
	}

	return zipDir(staging, opts.OutputFile)
}

// zipDir writes the contents of root into a zip archive at outFile, with
// entry names relative to root.
func zipDir(root, outFile string) error {
	if err := os.MkdirAll(filepath.Dir(outFile), 0o755); err != nil {
		return err
	}
	out, err := os.Create(outFile)
	if err != nil {
		return fmt.Errorf("failed to create bundle %s: %w", outFile, err)
	}

	zw := zip.NewWriter(out)
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			_, err := zw.Create(rel + "/")
			return err
		}

		w, err := zw.Create(rel)
		if err != nil {
			return err
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = io.Copy(w, f)
		return err
	})

	if walkErr != nil {
		zw.Close()
		out.Close()
		return fmt.Errorf("failed to write bundle %s: %w", outFile, walkErr)
	}
	if err := zw.Close(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
