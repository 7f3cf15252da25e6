// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"mapvault-cli/pkg/gis"
)

// Classification partitions a map's feature layers by Z-awareness. Group
// layers are never classified; they only organize the table of contents.
type Classification struct {
	// NonZ layers travel through the transfer bundle.
	NonZ []gis.Layer
	// Z layers are reconciled into the store afterwards, one by one.
	Z []gis.Layer
}

// Classify inspects every feature layer of the map and splits it into the
// bundle-bound and Z-aware sets. A layer whose data source cannot be
// described is reported as a classify-stage warning and left out of both
// sets rather than failing the run.
func (p *Pipeline) Classify(m *gis.Map) (Classification, []Outcome) {
	var (
		c        Classification
		outcomes []Outcome
	)
	for _, layer := range m.Layers {
		if layer.Kind != gis.LayerKindFeature {
			continue
		}
		desc, err := p.Engine.Describe(layer)
		if err != nil {
			outcomes = append(outcomes, Outcome{Layer: layer.Name, Stage: StageClassify, Err: err})
			continue
		}
		if layer.HasZ || desc.HasZ {
			c.Z = append(c.Z, layer)
		} else {
			c.NonZ = append(c.NonZ, layer)
		}
		outcomes = append(outcomes, Outcome{Layer: layer.Name, Stage: StageClassify})
	}
	return c, outcomes
}
