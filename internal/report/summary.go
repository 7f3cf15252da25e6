// SPDX-License-Identifier: MPL-2.0

package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"mapvault-cli/pkg/gis"
)

// timestampFormat renders the generation and metadata timestamps in the
// summary file.
const timestampFormat = "2006-01-02 15:04:05"

type (
	// LayerInfo is one non-group layer's row in the summary.
	LayerInfo struct {
		Name     string
		Source   string
		CRS      gis.SpatialReference
		Metadata gis.Metadata
		// MetadataFile is the exported XML document's path relative to
		// the summary file. Empty until WriteFiles runs.
		MetadataFile string
	}

	// Report is a generated layer summary for one map.
	Report struct {
		Map       string
		Generated time.Time
		Layers    []LayerInfo
	}

	// Generator builds Reports against a GIS engine.
	Generator struct {
		Engine gis.Engine
		// Clock supplies the generation timestamp. Tests pin it.
		Clock func() time.Time
	}
)

// NewGenerator returns a Generator over the given engine.
func NewGenerator(engine gis.Engine) *Generator {
	return &Generator{Engine: engine, Clock: time.Now}
}

// Build opens the project, selects the first map matching pattern, and
// collects one LayerInfo per non-group layer. A layer whose data source
// cannot be described still appears in the report, with a blank coordinate
// system, matching the tolerant posture of a read-only inventory.
func (g *Generator) Build(ctx context.Context, projectPath, mapPattern string) (*Report, error) {
	proj, err := g.Engine.OpenProject(ctx, projectPath)
	if err != nil {
		return nil, fmt.Errorf("open project %s: %w", projectPath, err)
	}
	defer proj.Close()

	m, err := proj.FindMap(mapPattern)
	if err != nil {
		return nil, err
	}

	r := &Report{Map: m.Name, Generated: g.Clock()}
	for _, layer := range m.Layers {
		if layer.IsGroup() {
			continue
		}
		info := LayerInfo{
			Name:     layer.Name,
			Source:   layer.DataSource,
			Metadata: layer.Metadata,
		}
		if desc, err := g.Engine.Describe(layer); err == nil {
			info.CRS = desc.CRS
		}
		r.Layers = append(r.Layers, info)
	}
	return r, nil
}

// Text renders the report in the summary file's plain-text format.
func (r *Report) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Layer Summary for Map: %s\n", r.Map)
	fmt.Fprintf(&b, "Generated: %s\n", r.Generated.Format(timestampFormat))
	b.WriteString(strings.Repeat("=", 80) + "\n\n")

	for _, l := range r.Layers {
		fmt.Fprintf(&b, "Layer Name: %s\n", l.Name)
		fmt.Fprintf(&b, "Source Location: %s\n", l.Source)
		if l.CRS.IsZero() {
			b.WriteString("CRS/Projection: \n")
		} else {
			fmt.Fprintf(&b, "CRS/Projection: %s (%d)\n", l.CRS.Name, l.CRS.Code)
		}
		fmt.Fprintf(&b, "Author: %s\n", l.Metadata.Credits)
		fmt.Fprintf(&b, "Created: %s\n", formatDate(l.Metadata.Created))
		fmt.Fprintf(&b, "Last modified: %s\n", formatDate(l.Metadata.Modified))
		fmt.Fprintf(&b, "XML Metadata Location: %s\n", l.MetadataFile)
		b.WriteString("\n" + strings.Repeat("-", 80) + "\n\n")
	}

	fmt.Fprintf(&b, "Total layers processed: %d\n", len(r.Layers))
	return b.String()
}

// Markdown renders the report for terminal display through a markdown
// renderer. The XML location line is omitted when nothing was exported.
func (r *Report) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Layer Summary for Map: %s\n\n", r.Map)
	fmt.Fprintf(&b, "_Generated: %s_\n\n", r.Generated.Format(timestampFormat))

	for _, l := range r.Layers {
		fmt.Fprintf(&b, "## %s\n\n", l.Name)
		fmt.Fprintf(&b, "- **Source:** %s\n", l.Source)
		if !l.CRS.IsZero() {
			fmt.Fprintf(&b, "- **CRS:** %s (%d)\n", l.CRS.Name, l.CRS.Code)
		}
		if l.Metadata.Credits != "" {
			fmt.Fprintf(&b, "- **Author:** %s\n", l.Metadata.Credits)
		}
		if !l.Metadata.Created.IsZero() {
			fmt.Fprintf(&b, "- **Created:** %s\n", formatDate(l.Metadata.Created))
		}
		if !l.Metadata.Modified.IsZero() {
			fmt.Fprintf(&b, "- **Last modified:** %s\n", formatDate(l.Metadata.Modified))
		}
		if l.MetadataFile != "" {
			fmt.Fprintf(&b, "- **XML metadata:** %s\n", l.MetadataFile)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "**Total layers processed: %d**\n", len(r.Layers))
	return b.String()
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(timestampFormat)
}
