// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"errors"
	"fmt"
	"path/filepath"

	"mapvault-cli/pkg/gis"
)

// PropagateMetadata copies each non-group layer's descriptive metadata onto
// the same-named store entity, then appends the clip-extent provenance to
// the store's own metadata when an extent was supplied. Every metadata
// failure is per-layer: a missing entity or a read-only record is reported
// as a warning outcome and never aborts the remaining layers.
func (p *Pipeline) PropagateMetadata(m *gis.Map, store string, extent *gis.Extent) []Outcome {
	var outcomes []Outcome
	for _, layer := range m.Layers {
		if layer.Kind != gis.LayerKindFeature {
			continue
		}
		outcomes = append(outcomes, p.propagateLayer(layer, store))
	}
	if extent != nil {
		outcomes = append(outcomes, p.recordProvenance(store, *extent))
	}
	return outcomes
}

func (p *Pipeline) propagateLayer(layer gis.Layer, store string) Outcome {
	entity := gis.ValidateName(layer.Name)
	if !p.Engine.EntityExists(store, entity) {
		return Outcome{
			Layer: layer.Name,
			Stage: StageMetadata,
			Err:   fmt.Errorf("no entity %q in store", entity),
		}
	}
	if layer.Metadata.IsEmpty() {
		return Outcome{Layer: layer.Name, Stage: StageMetadata}
	}
	path := filepath.Join(store, entity)
	if err := p.Engine.WriteMetadata(path, layer.Metadata); err != nil {
		if errors.Is(err, gis.ErrMetadataReadOnly) {
			err = fmt.Errorf("entity %q: %w", entity, err)
		}
		return Outcome{Layer: layer.Name, Stage: StageMetadata, Err: err}
	}
	return Outcome{Layer: layer.Name, Stage: StageMetadata}
}

// recordProvenance appends the clip bounds to the store-level description,
// keeping any existing text and separating the two with a blank line.
func (p *Pipeline) recordProvenance(store string, extent gis.Extent) Outcome {
	md, err := p.Engine.ReadMetadata(store)
	if err != nil {
		return Outcome{Layer: filepath.Base(store), Stage: StageMetadata, Err: err}
	}
	if md.Description != "" {
		md.Description += "\n\n"
	}
	md.Description += extent.ProvenanceText()
	if err := p.Engine.WriteMetadata(store, md); err != nil {
		return Outcome{Layer: filepath.Base(store), Stage: StageMetadata, Err: err}
	}
	return Outcome{Layer: filepath.Base(store), Stage: StageMetadata}
}
