// SPDX-License-Identifier: MPL-2.0

package report

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"mapvault-cli/internal/engine/fsengine"
)

const projectFixture = `
name = "Survey"

[[maps]]
name = "Bedrock Geology"
crs_name = "NAD83 / UTM zone 16N"
crs_code = 26916

[[maps.layers]]
name = "Basemap"
kind = "group"

[[maps.layers]]
name = "Roads"
kind = "feature"
data = "roads.geojson"
[maps.layers.metadata]
credits = "County survey"

[[maps.layers]]
name = "Deep Wells"
kind = "feature"
has_z = true
data = "wells.geojson"
[maps.layers.metadata]
title = "Monitoring wells"
created = 2024-03-01T09:00:00Z
`

const featureDoc = `{"type":"FeatureCollection","crs_code":26916,"features":[` +
	`{"type":"Feature","geometry":{"type":"Point","coordinates":[1,2]},"properties":{}}]}`

func writeFixture(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "project.toml"), []byte(projectFixture), 0o644); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"roads.geojson", "wells.geojson"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(featureDoc), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func buildReport(t *testing.T) *Report {
	t.Helper()

	g := NewGenerator(fsengine.New())
	g.Clock = func() time.Time { return time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC) }

	r, err := g.Build(context.Background(), writeFixture(t), "Bedrock*")
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	return r
}

func TestBuild(t *testing.T) {
	t.Parallel()

	r := buildReport(t)
	if r.Map != "Bedrock Geology" {
		t.Errorf("Map = %q, want %q", r.Map, "Bedrock Geology")
	}
	// The group layer is inventory noise and stays out.
	if len(r.Layers) != 2 {
		t.Fatalf("got %d layers, want 2", len(r.Layers))
	}
	if r.Layers[0].Name != "Roads" || r.Layers[1].Name != "Deep Wells" {
		t.Errorf("layer order = %q, %q", r.Layers[0].Name, r.Layers[1].Name)
	}
	if r.Layers[0].CRS.Code != 26916 {
		t.Errorf("Roads CRS code = %d, want 26916", r.Layers[0].CRS.Code)
	}
}

func TestWriteFiles(t *testing.T) {
	t.Parallel()

	r := buildReport(t)
	out := t.TempDir()

	summaryPath, metadataDir, err := r.WriteFiles(out)
	if err != nil {
		t.Fatalf("WriteFiles() error: %v", err)
	}
	if want := filepath.Join(out, "Bedrock Geology_layer_summary.txt"); summaryPath != want {
		t.Errorf("summary path = %s, want %s", summaryPath, want)
	}

	data, err := os.ReadFile(summaryPath)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	for _, want := range []string{
		"Layer Summary for Map: Bedrock Geology",
		"Generated: 2026-08-30 10:00:00",
		"Layer Name: Roads",
		"Author: County survey",
		"Layer Name: Deep Wells",
		"CRS/Projection: NAD83 / UTM zone 16N (26916)",
		"XML Metadata Location: " + filepath.Join("metadata", "Deep_Wells_metadata.xml"),
		"Total layers processed: 2",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("summary missing %q:\n%s", want, text)
		}
	}

	xmlData, err := os.ReadFile(filepath.Join(metadataDir, "Deep_Wells_metadata.xml"))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"<resTitle>Monitoring wells</resTitle>", "<CreaDate>20240301</CreaDate>"} {
		if !strings.Contains(string(xmlData), want) {
			t.Errorf("metadata XML missing %q:\n%s", want, xmlData)
		}
	}
}

func TestMarkdown(t *testing.T) {
	t.Parallel()

	md := buildReport(t).Markdown()
	for _, want := range []string{
		"# Layer Summary for Map: Bedrock Geology",
		"## Roads",
		"- **Author:** County survey",
		"**Total layers processed: 2**",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}
