// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"mapvault-cli/pkg/gis"
)

// ResolveExtent looks up the named layer in the map and returns its spatial
// extent, which the packaging stage uses as the clip boundary and the
// metadata stage records as provenance. An empty layerName means the run is
// unclipped and returns a nil extent.
//
// Structural errors: the layer must exist in the map (LayerNotFoundError)
// and its data source must carry a usable extent (NoSpatialExtentError).
func (p *Pipeline) ResolveExtent(m *gis.Map, layerName string) (*gis.Extent, error) {
	if layerName == "" {
		return nil, nil
	}
	var target *gis.Layer
	for i := range m.Layers {
		if m.Layers[i].Name == layerName && !m.Layers[i].IsGroup() {
			target = &m.Layers[i]
			break
		}
	}
	if target == nil {
		return nil, &LayerNotFoundError{Layer: layerName, Map: m.Name}
	}
	desc, err := p.Engine.Describe(*target)
	if err != nil {
		return nil, &NoSpatialExtentError{Layer: layerName}
	}
	if ok, _ := desc.Extent.IsValid(); !desc.HasExtent || !ok {
		return nil, &NoSpatialExtentError{Layer: layerName}
	}
	ext := desc.Extent
	return &ext, nil
}
