// SPDX-License-Identifier: MPL-2.0

package fsengine

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"mapvault-cli/pkg/gis"

	"github.com/pelletier/go-toml/v2"
)

// projectFileName is the document describing a project's maps and layers.
const projectFileName = "project.toml"

type (
	// projectDoc is the on-disk shape of project.toml.
	projectDoc struct {
		Name string   `toml:"name"`
		Maps []mapDoc `toml:"maps"`
	}

	mapDoc struct {
		Name    string     `toml:"name"`
		CRSName string     `toml:"crs_name"`
		CRSCode int        `toml:"crs_code"`
		Layers  []layerDoc `toml:"layers"`
	}

	layerDoc struct {
		Name     string      `toml:"name"`
		Kind     string      `toml:"kind"`
		HasZ     bool        `toml:"has_z"`
		Data     string      `toml:"data"`
		CRSName  string      `toml:"crs_name"`
		CRSCode  int         `toml:"crs_code"`
		Metadata metadataDoc `toml:"metadata"`
	}

	// project implements gis.Project for one opened project directory.
	project struct {
		engine    *Engine
		dir       string
		name      string
		maps      []*gis.Map
		transient map[*gis.Map]struct{}
		closed    bool
	}
)

// OpenProject reads a project directory's project.toml.
func (e *Engine) OpenProject(ctx context.Context, projectPath string) (gis.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(projectPath, projectFileName))
	if err != nil {
		return nil, fmt.Errorf("failed to open project %s: %w", projectPath, err)
	}

	var doc projectDoc
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid project file in %s: %w", projectPath, err)
	}

	p := &project{
		engine:    e,
		dir:       projectPath,
		name:      doc.Name,
		transient: make(map[*gis.Map]struct{}),
	}
	for _, md := range doc.Maps {
		m := &gis.Map{
			Name: md.Name,
			CRS:  gis.SpatialReference{Name: md.CRSName, Code: md.CRSCode},
		}
		for _, ld := range md.Layers {
			kind := gis.LayerKindFeature
			if ld.Kind == string(gis.LayerKindGroup) {
				kind = gis.LayerKindGroup
			}
			crs := gis.SpatialReference{Name: ld.CRSName, Code: ld.CRSCode}
			if crs.IsZero() {
				crs = m.CRS
			}
			dataSource := ld.Data
			if dataSource != "" && !filepath.IsAbs(dataSource) {
				dataSource = filepath.Join(projectPath, dataSource)
			}
			m.AddLayer(gis.Layer{
				Name:       ld.Name,
				Kind:       kind,
				HasZ:       ld.HasZ,
				DataSource: dataSource,
				CRS:        crs,
				Metadata:   ld.Metadata.toMetadata(),
			})
		}
		p.maps = append(p.maps, m)
	}

	return p, nil
}

// Maps returns every map in the project, in project order.
func (p *project) Maps() []*gis.Map {
	out := make([]*gis.Map, len(p.maps))
	copy(out, p.maps)
	return out
}

// FindMap returns the first map whose name matches pattern ("*" wildcards
// supported).
func (p *project) FindMap(pattern string) (*gis.Map, error) {
	for _, m := range p.maps {
		ok, err := path.Match(pattern, m.Name)
		if err != nil {
			return nil, fmt.Errorf("invalid map pattern %q: %w", pattern, err)
		}
		if ok {
			return m, nil
		}
	}
	return nil, fmt.Errorf("%w: no map matches %q", gis.ErrMapNotFound, pattern)
}

// CreateMap adds a transient empty map to the project.
func (p *project) CreateMap(name string) (*gis.Map, error) {
	if p.closed {
		return nil, fmt.Errorf("project %s is closed", p.name)
	}
	m := &gis.Map{Name: name}
	p.maps = append(p.maps, m)
	p.transient[m] = struct{}{}
	return m, nil
}

// DeleteMap removes a map previously added with CreateMap.
func (p *project) DeleteMap(m *gis.Map) error {
	if _, ok := p.transient[m]; !ok {
		return fmt.Errorf("map %q was not created through this project", m.Name)
	}
	delete(p.transient, m)
	for i, existing := range p.maps {
		if existing == m {
			p.maps = append(p.maps[:i], p.maps[i+1:]...)
			break
		}
	}
	return nil
}

// Close releases the project. Undeleted transient maps are discarded.
func (p *project) Close() error {
	p.closed = true
	p.maps = nil
	p.transient = nil
	return nil
}
