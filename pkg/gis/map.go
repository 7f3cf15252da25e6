// SPDX-License-Identifier: MPL-2.0

package gis

import "time"

const (
	// LayerKindGroup marks an organizational layer that carries no data of
	// its own. Group layers never produce store entities.
	LayerKindGroup LayerKind = "group"
	// LayerKindFeature marks a layer backed by feature data.
	LayerKindFeature LayerKind = "feature"
)

type (
	// LayerKind distinguishes the layer variants the pipeline cares about.
	LayerKind string

	// Layer describes one entry in a map's table of contents. Layers are
	// read-only from the pipeline's perspective; they are owned by the
	// engine-side map they came from.
	Layer struct {
		Name       string
		Kind       LayerKind
		HasZ       bool
		DataSource string
		CRS        SpatialReference
		Metadata   Metadata
	}

	// Map is an ordered collection of layers with a name and a coordinate
	// reference system. The pipeline only ever mutates a map by transiently
	// adding layers to a scratch map created through Project.CreateMap.
	Map struct {
		Name   string
		CRS    SpatialReference
		Layers []Layer
	}

	// Metadata is the descriptive record attached to layers, store
	// entities, and the store itself. ReadOnly reflects the engine-side
	// writability of the record the values were read from.
	Metadata struct {
		Title       string
		Credits     string
		Summary     string
		Description string
		Created     time.Time
		Modified    time.Time
		ReadOnly    bool
	}
)

// IsGroup reports whether the layer is a group layer.
func (l Layer) IsGroup() bool { return l.Kind == LayerKindGroup }

// AddLayer appends a layer to the map, preserving draw order.
func (m *Map) AddLayer(l Layer) { m.Layers = append(m.Layers, l) }

// FeatureLayers returns the map's non-group layers in draw order.
func (m *Map) FeatureLayers() []Layer {
	var out []Layer
	for _, l := range m.Layers {
		if !l.IsGroup() {
			out = append(out, l)
		}
	}
	return out
}

// IsEmpty reports whether the metadata record carries no descriptive
// content at all.
func (md Metadata) IsEmpty() bool {
	return md.Title == "" && md.Credits == "" && md.Summary == "" &&
		md.Description == "" && md.Created.IsZero() && md.Modified.IsZero()
}
