// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"context"
	"fmt"
	"path/filepath"

	"mapvault-cli/pkg/gis"
)

// scratchLocator is the shared transient workspace Z-layer reprojection
// runs through. It lives under the in-memory locator prefix, so discarding
// it never touches the store on disk.
const scratchLocator = gis.MemoryPrefix + "tempCopy"

// ReconcileZLayers copies each Z-enabled layer into the store and
// reprojects it in place to the target coordinate system. Every layer is
// processed independently: a copy or reprojection failure is recorded as a
// warning outcome and the remaining layers are still attempted, so one
// broken layer costs at most its own entity.
//
// The reprojection runs through a shared scratch workspace: features are
// copied into the store, projected into the scratch locator with shape
// preservation, copied back over the store entity, and the scratch data is
// discarded before the next layer.
func (p *Pipeline) ReconcileZLayers(ctx context.Context, layers []gis.Layer, store string, target gis.SpatialReference) []Outcome {
	var outcomes []Outcome
	for _, layer := range layers {
		outcomes = append(outcomes, p.reconcileOne(ctx, layer, store, target))
	}
	return outcomes
}

func (p *Pipeline) reconcileOne(ctx context.Context, layer gis.Layer, store string, target gis.SpatialReference) Outcome {
	name := gis.EntityName(gis.ValidateName(layer.Name))
	if ok, errs := name.IsValid(); !ok {
		return Outcome{Layer: layer.Name, Stage: StageCopy, Err: fmt.Errorf("entity name %q: %v", name, errs)}
	}
	dest := filepath.Join(store, string(name))

	if err := p.Engine.CopyLayerFeatures(ctx, layer, dest); err != nil {
		return Outcome{Layer: layer.Name, Stage: StageCopy, Err: err}
	}

	defer func() {
		if err := p.Engine.DeleteData(scratchLocator); err != nil {
			p.Logger.Warn("discard scratch workspace", "layer", layer.Name, "err", err)
		}
	}()
	if err := p.Engine.Reproject(ctx, dest, scratchLocator, target, gis.ReprojectOptions{PreserveShape: true}); err != nil {
		return Outcome{Layer: layer.Name, Stage: StageReproject, Err: err}
	}
	if err := p.Engine.CopyFeatures(ctx, scratchLocator, dest); err != nil {
		return Outcome{Layer: layer.Name, Stage: StageReproject, Err: err}
	}
	return Outcome{Layer: layer.Name, Stage: StageReproject}
}
