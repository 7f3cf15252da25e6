// SPDX-License-Identifier: MPL-2.0

package fsengine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"mapvault-cli/pkg/gis"

	"github.com/paulmach/orb/geojson"
)

// Engine implements gis.Engine over plain files. The zero value is not
// usable; construct with New. Engine methods are safe to call from a single
// goroutine, matching the pipeline's fully sequential execution model; the
// scratch workspace carries a lock only so that future callers sharing an
// Engine across goroutines get their own serialization point.
type Engine struct {
	mu      sync.Mutex
	scratch map[string]*geojson.FeatureCollection
}

// New creates an Engine with an empty scratch workspace.
func New() *Engine {
	return &Engine{scratch: make(map[string]*geojson.FeatureCollection)}
}

// Describe probes a layer's geometry by reading its data source.
func (e *Engine) Describe(layer gis.Layer) (gis.Descriptor, error) {
	if layer.IsGroup() {
		return gis.Descriptor{}, fmt.Errorf("%w: %s is a group layer", gis.ErrNoDescriptor, layer.Name)
	}

	fc, err := e.readCollection(layer.DataSource)
	if err != nil {
		return gis.Descriptor{}, fmt.Errorf("%w: %s: %v", gis.ErrNoDescriptor, layer.Name, err)
	}

	desc := gis.Descriptor{HasZ: layer.HasZ, CRS: layer.CRS}
	if len(fc.Features) > 0 {
		bound := fc.Features[0].Geometry.Bound()
		for _, f := range fc.Features[1:] {
			bound = bound.Union(f.Geometry.Bound())
		}
		desc.HasExtent = true
		desc.Extent = gis.ExtentFromBound(bound)
	}
	return desc, nil
}

// ListEntities returns entity names in store directory order.
func (e *Engine) ListEntities(store string) ([]string, error) {
	entries, err := os.ReadDir(store)
	if err != nil {
		return nil, fmt.Errorf("failed to list feature store %s: %w", store, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if name, ok := strings.CutSuffix(entry.Name(), featureExt); ok {
			names = append(names, name)
		}
	}
	return names, nil
}

// RenameEntity renames an entity's feature data and metadata record.
func (e *Engine) RenameEntity(store, oldName, newName string) error {
	oldData := filepath.Join(store, oldName+featureExt)
	newData := filepath.Join(store, newName+featureExt)
	if err := os.Rename(oldData, newData); err != nil {
		return fmt.Errorf("failed to rename entity %s: %w", oldName, err)
	}

	oldMeta := filepath.Join(store, oldName+metaExt)
	if _, err := os.Stat(oldMeta); err == nil {
		if err := os.Rename(oldMeta, filepath.Join(store, newName+metaExt)); err != nil {
			return fmt.Errorf("failed to rename metadata of %s: %w", oldName, err)
		}
	}
	return nil
}

// EntityExists reports whether the store contains the named entity.
func (e *Engine) EntityExists(store, name string) bool {
	_, err := os.Stat(filepath.Join(store, name+featureExt))
	return err == nil
}

// CopyLayerFeatures copies a layer's features to a destination locator.
func (e *Engine) CopyLayerFeatures(ctx context.Context, layer gis.Layer, dest string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fc, err := e.readCollection(layer.DataSource)
	if err != nil {
		return fmt.Errorf("failed to read layer %s: %w", layer.Name, err)
	}
	if layer.CRS.Code != 0 {
		setCRS(fc, layer.CRS.Code)
	}
	return e.writeCollection(dest, fc)
}

// CopyFeatures copies features between locators, overwriting dest.
func (e *Engine) CopyFeatures(ctx context.Context, src, dest string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fc, err := e.readCollection(src)
	if err != nil {
		return err
	}
	return e.writeCollection(dest, fc)
}

// DeleteData removes the data at a locator. Missing data is not an error.
func (e *Engine) DeleteData(path string) error {
	if strings.HasPrefix(path, gis.MemoryPrefix) {
		e.mu.Lock()
		delete(e.scratch, path)
		e.mu.Unlock()
		return nil
	}

	for _, p := range []string{dataPath(path), metaPath(path)} {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to delete %s: %w", path, err)
		}
	}
	return nil
}

// readCollection loads a feature collection from a locator: the scratch
// workspace for memory/ locators, the filesystem otherwise.
func (e *Engine) readCollection(locator string) (*geojson.FeatureCollection, error) {
	if strings.HasPrefix(locator, gis.MemoryPrefix) {
		e.mu.Lock()
		fc, ok := e.scratch[locator]
		e.mu.Unlock()
		if !ok {
			return nil, fmt.Errorf("no scratch data at %s", locator)
		}
		return cloneCollection(fc)
	}

	data, err := os.ReadFile(dataPath(locator))
	if err != nil {
		return nil, err
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("invalid feature data at %s: %w", locator, err)
	}
	return fc, nil
}

// writeCollection stores a feature collection at a locator, overwriting any
// existing data there.
func (e *Engine) writeCollection(locator string, fc *geojson.FeatureCollection) error {
	if strings.HasPrefix(locator, gis.MemoryPrefix) {
		e.mu.Lock()
		e.scratch[locator] = fc
		e.mu.Unlock()
		return nil
	}

	data, err := fc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to encode features for %s: %w", locator, err)
	}
	if err := os.MkdirAll(filepath.Dir(dataPath(locator)), 0o755); err != nil {
		return err
	}
	return os.WriteFile(dataPath(locator), data, 0o644)
}

// dataPath maps an entity locator to its GeoJSON file. Locators that
// already name a .geojson file are used as-is; "<store>/<entity>" locators
// get the extension appended.
func dataPath(locator string) string {
	if strings.HasSuffix(locator, featureExt) {
		return locator
	}
	return locator + featureExt
}

func metaPath(locator string) string {
	if strings.HasSuffix(locator, featureExt) {
		locator = strings.TrimSuffix(locator, featureExt)
	}
	return locator + metaExt
}

const (
	featureExt = ".geojson"
	metaExt    = ".meta.toml"
	storeMeta  = "store.meta.toml"
)
