// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"mapvault-cli/internal/sevenzip"
	"mapvault-cli/pkg/gis"
)

// tempArchiveName is the working copy of the bundle inside the destination
// directory. Extraction always runs against the copy, never the original.
const tempArchiveName = "temp.7z"

// BundleExtractor unpacks a transfer bundle into a destination directory.
// The production implementation shells out to 7-Zip; tests substitute a
// zip-backed stub.
type BundleExtractor interface {
	Extract(ctx context.Context, archive, dest string) error
}

// SevenZipExtractor extracts bundles with a 7-Zip executable. The tool is
// located lazily so a missing installation surfaces as an extraction-stage
// error, after packaging has already produced the bundle.
type SevenZipExtractor struct {
	// ExtraPaths are candidate executable paths checked before the
	// conventional install locations, typically from configuration.
	ExtraPaths []string
}

// Extract locates 7-Zip and unpacks archive into dest.
func (e *SevenZipExtractor) Extract(ctx context.Context, archive, dest string) error {
	tool, err := sevenzip.Find(e.ExtraPaths)
	if err != nil {
		return err
	}
	return tool.Extract(ctx, archive, dest)
}

// ExtractBundle turns the transfer bundle into the final feature store.
//
// The bundle is copied into destDir as temp.7z, extracted there, and the
// first feature store found in the extracted tree is relocated to
// destDir/<sanitized map name>.gdb. On success the original bundle and the
// working copy are removed unless keepTemp is set. On any failure after
// destDir was created, destDir is removed again so a failed run leaves no
// partial archive behind; keepTemp disables that cleanup too, leaving the
// debris for inspection.
func (p *Pipeline) ExtractBundle(ctx context.Context, bundle, destDir, mapName string, keepTemp bool) (store string, err error) {
	if _, statErr := os.Stat(bundle); statErr != nil {
		return "", &BundleNotFoundError{Path: bundle}
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("create destination %s: %w", destDir, err)
	}
	defer func() {
		if err != nil && !keepTemp {
			if rmErr := os.RemoveAll(destDir); rmErr != nil {
				p.Logger.Warn("cleanup after failed extraction", "dir", destDir, "err", rmErr)
			}
		}
	}()

	temp := filepath.Join(destDir, tempArchiveName)
	if err := copyFile(bundle, temp); err != nil {
		return "", fmt.Errorf("stage bundle copy: %w", err)
	}
	if err := p.Extractor.Extract(ctx, temp, destDir); err != nil {
		return "", err
	}

	found, err := findStore(destDir)
	if err != nil {
		return "", err
	}
	store = filepath.Join(destDir, gis.ValidateName(mapName)+gis.StoreExt)
	if found != store {
		if err := os.Rename(found, store); err != nil {
			return "", fmt.Errorf("relocate store: %w", err)
		}
	}

	if !keepTemp {
		if rmErr := os.Remove(temp); rmErr != nil {
			p.Logger.Warn("remove working copy", "path", temp, "err", rmErr)
		}
		if rmErr := os.Remove(bundle); rmErr != nil {
			p.Logger.Warn("remove bundle", "path", bundle, "err", rmErr)
		}
	}
	return store, nil
}

// findStore walks dir and returns the first feature store directory it
// encounters, depth first in lexical order.
func findStore(dir string) (string, error) {
	var found string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && strings.HasSuffix(d.Name(), gis.StoreExt) {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("search %s: %w", dir, err)
	}
	if found == "" {
		return "", &StoreNotFoundError{SearchDir: dir}
	}
	return found, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
