// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"mapvault-cli/pkg/gis"
)

// zipExtractor stands in for the 7-Zip tool in tests: transfer bundles are
// zip archives, so extracting them needs no external executable.
type zipExtractor struct{}

func (zipExtractor) Extract(_ context.Context, archive, dest string) error {
	zr, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer zr.Close()

	for _, f := range zr.File {
		target := filepath.Join(dest, filepath.FromSlash(f.Name))
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		rc, err := f.Open()
		if err != nil {
			return err
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return err
		}
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return err
		}
	}
	return nil
}

// failingExtractor fails every extraction, for the cleanup contract tests.
type failingExtractor struct{}

func (failingExtractor) Extract(context.Context, string, string) error {
	return errors.New("extractor exploded")
}

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
name = "Wells"
kind = "feature"
has_z = true
data = "wells.geojson"
[maps.layers.metadata]
title = "Monitoring wells"
`

func writeFeatureFile(t *testing.T, path, geometry string) {
	t.Helper()
	doc := fmt.Sprintf(`{"type":"FeatureCollection","crs_code":26916,"features":[`+
		`{"type":"Feature","geometry":%s,"properties":{}}]}`, geometry)
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
}

// writeProjectFixture lays out a project directory with one group layer,
// one flat layer, and one Z-enabled layer.
func writeProjectFixture(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "project.toml"), []byte(projectFixture), 0o644); err != nil {
		t.Fatal(err)
	}
	writeFeatureFile(t, filepath.Join(dir, "roads.geojson"),
		`{"type":"LineString","coordinates":[[0,0],[10,10]]}`)
	writeFeatureFile(t, filepath.Join(dir, "wells.geojson"),
		`{"type":"Point","coordinates":[2,3]}`)
	return dir
}

func fixedClock() time.Time {
	return time.Date(2026, 8, 30, 14, 15, 16, 0, time.UTC)
}

func TestRun_EndToEnd(t *testing.T) {
	t.Parallel()

	p := newTestPipeline(zipExtractor{})
	p.Clock = fixedClock
	out := t.TempDir()

	report, err := p.Run(context.Background(), RunOptions{
		ProjectPath: writeProjectFixture(t),
		MapPattern:  "Bedrock*",
		OutputDir:   out,
		ExtentLayer: "Roads",
		DefaultCRS:  gis.DefaultCRS,
	})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	wantDir := filepath.Join(out, "archive_Bedrock_Geology_20260830_141516")
	if report.OutputDir != wantDir {
		t.Errorf("OutputDir = %s, want %s", report.OutputDir, wantDir)
	}
	wantStore := filepath.Join(wantDir, "Bedrock_Geology.gdb")
	if report.Store != wantStore {
		t.Errorf("Store = %s, want %s", report.Store, wantStore)
	}
	if report.NonZ != 1 || report.Z != 1 {
		t.Errorf("classified non_z=%d z=%d, want 1 and 1", report.NonZ, report.Z)
	}
	if len(report.Renames) != 1 || report.Renames[0] != (Rename{From: "L0Roads", To: "Roads"}) {
		t.Errorf("Renames = %v, want [{L0Roads Roads}]", report.Renames)
	}
	if warnings := report.Warnings(); len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}

	// Every non-group layer ends up as exactly one store entity.
	entities, err := p.Engine.ListEntities(wantStore)
	if err != nil {
		t.Fatal(err)
	}
	if len(entities) != 2 {
		t.Fatalf("entities = %v, want Roads and Wells", entities)
	}
	for _, name := range []string{"Roads", "Wells"} {
		if !p.Engine.EntityExists(wantStore, name) {
			t.Errorf("entity %q missing from store", name)
		}
	}

	// Layer metadata lands on the matching entities.
	md, err := p.Engine.ReadMetadata(filepath.Join(wantStore, "Wells"))
	if err != nil {
		t.Fatal(err)
	}
	if md.Title != "Monitoring wells" {
		t.Errorf("Wells title = %q, want %q", md.Title, "Monitoring wells")
	}
	md, err = p.Engine.ReadMetadata(filepath.Join(wantStore, "Roads"))
	if err != nil {
		t.Fatal(err)
	}
	if md.Credits != "County survey" {
		t.Errorf("Roads credits = %q, want %q", md.Credits, "County survey")
	}

	// The clip extent is recorded as store-level provenance.
	storeMD, err := p.Engine.ReadMetadata(wantStore)
	if err != nil {
		t.Fatal(err)
	}
	for _, bound := range []string{"XMin: 0", "YMin: 0", "XMax: 10", "YMax: 10"} {
		if !strings.Contains(storeMD.Description, bound) {
			t.Errorf("store description missing %q:\n%s", bound, storeMD.Description)
		}
	}

	// The bundle and its working copy are gone after a clean run.
	for _, leftover := range []string{"Bedrock_Geology" + gis.BundleExt, tempArchiveName} {
		if _, err := os.Stat(filepath.Join(wantDir, leftover)); !os.IsNotExist(err) {
			t.Errorf("%s still present after run", leftover)
		}
	}
}

func TestRun_KeepTempRetainsBundle(t *testing.T) {
	t.Parallel()

	p := newTestPipeline(zipExtractor{})
	p.Clock = fixedClock
	out := t.TempDir()

	report, err := p.Run(context.Background(), RunOptions{
		ProjectPath: writeProjectFixture(t),
		MapPattern:  "Bedrock Geology",
		OutputDir:   out,
		DefaultCRS:  gis.DefaultCRS,
		KeepTemp:    true,
	})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	for _, kept := range []string{"Bedrock_Geology" + gis.BundleExt, tempArchiveName} {
		if _, err := os.Stat(filepath.Join(report.OutputDir, kept)); err != nil {
			t.Errorf("%s missing with KeepTemp set: %v", kept, err)
		}
	}

	// Unclipped run: no provenance block on the store metadata.
	md, err := p.Engine.ReadMetadata(report.Store)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(md.Description, "clipped") {
		t.Errorf("unexpected provenance on unclipped run: %q", md.Description)
	}
}

func TestRun_CleanupOnExtractionFailure(t *testing.T) {
	t.Parallel()

	p := newTestPipeline(failingExtractor{})
	p.Clock = fixedClock
	out := t.TempDir()

	_, err := p.Run(context.Background(), RunOptions{
		ProjectPath: writeProjectFixture(t),
		MapPattern:  "Bedrock*",
		OutputDir:   out,
		DefaultCRS:  gis.DefaultCRS,
	})
	if err == nil {
		t.Fatal("expected extraction failure")
	}

	if _, statErr := os.Stat(filepath.Join(out, "archive_Bedrock_Geology_20260830_141516")); !os.IsNotExist(statErr) {
		t.Error("archive folder still exists after failed extraction")
	}
}

func TestRun_MapNotFound(t *testing.T) {
	t.Parallel()

	p := newTestPipeline(zipExtractor{})
	_, err := p.Run(context.Background(), RunOptions{
		ProjectPath: writeProjectFixture(t),
		MapPattern:  "Hydrology*",
		OutputDir:   t.TempDir(),
	})
	if !errors.Is(err, gis.ErrMapNotFound) {
		t.Errorf("err = %v, want ErrMapNotFound", err)
	}
}

func TestResolveExtent(t *testing.T) {
	t.Parallel()

	p := newTestPipeline(nil)
	eng := p.Engine
	ctx := context.Background()

	proj, err := eng.OpenProject(ctx, writeProjectFixture(t))
	if err != nil {
		t.Fatal(err)
	}
	defer proj.Close()
	m, err := proj.FindMap("Bedrock*")
	if err != nil {
		t.Fatal(err)
	}

	ext, err := p.ResolveExtent(m, "Roads")
	if err != nil {
		t.Fatalf("ResolveExtent() error: %v", err)
	}
	want := gis.Extent{XMin: 0, YMin: 0, XMax: 10, YMax: 10}
	if *ext != want {
		t.Errorf("extent = %+v, want %+v", *ext, want)
	}

	if ext, err := p.ResolveExtent(m, ""); err != nil || ext != nil {
		t.Errorf("unclipped run: got %v, %v, want nil, nil", ext, err)
	}

	if _, err := p.ResolveExtent(m, "Rivers"); !errors.Is(err, ErrLayerNotFound) {
		t.Errorf("unknown layer: err = %v, want ErrLayerNotFound", err)
	}

	// Group layers never satisfy an extent lookup.
	if _, err := p.ResolveExtent(m, "Basemap"); !errors.Is(err, ErrLayerNotFound) {
		t.Errorf("group layer: err = %v, want ErrLayerNotFound", err)
	}
}

func TestResolveExtent_NoExtent(t *testing.T) {
	t.Parallel()

	p := newTestPipeline(nil)
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.geojson")
	if err := os.WriteFile(empty, []byte(emptyCollection), 0o644); err != nil {
		t.Fatal(err)
	}

	m := &gis.Map{Name: "Sparse"}
	m.AddLayer(gis.Layer{Name: "Empty", Kind: gis.LayerKindFeature, DataSource: empty})

	if _, err := p.ResolveExtent(m, "Empty"); !errors.Is(err, ErrNoSpatialExtent) {
		t.Errorf("err = %v, want ErrNoSpatialExtent", err)
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	p := newTestPipeline(nil)
	proj, err := p.Engine.OpenProject(context.Background(), writeProjectFixture(t))
	if err != nil {
		t.Fatal(err)
	}
	defer proj.Close()
	m, err := proj.FindMap("Bedrock*")
	if err != nil {
		t.Fatal(err)
	}
	// A layer whose data source is gone cannot be classified.
	m.AddLayer(gis.Layer{Name: "Broken", Kind: gis.LayerKindFeature, DataSource: "/nonexistent.geojson"})

	c, outcomes := p.Classify(m)

	if len(c.NonZ) != 1 || c.NonZ[0].Name != "Roads" {
		t.Errorf("NonZ = %v, want [Roads]", layerNames(c.NonZ))
	}
	if len(c.Z) != 1 || c.Z[0].Name != "Wells" {
		t.Errorf("Z = %v, want [Wells]", layerNames(c.Z))
	}

	var broken *Outcome
	for i := range outcomes {
		if outcomes[i].Layer == "Broken" {
			broken = &outcomes[i]
		}
	}
	if broken == nil || !broken.Failed() || broken.Stage != StageClassify {
		t.Errorf("broken layer outcome = %v, want classify failure", broken)
	}
}

func layerNames(layers []gis.Layer) []string {
	var out []string
	for _, l := range layers {
		out = append(out, l.Name)
	}
	return out
}

func TestReconcileZLayers_PartialFailure(t *testing.T) {
	t.Parallel()

	p := newTestPipeline(nil)
	ctx := context.Background()

	dir := t.TempDir()
	good := filepath.Join(dir, "good.geojson")
	writeFeatureFile(t, good, `{"type":"Point","coordinates":[5,5]}`)

	store := filepath.Join(dir, "Out.gdb")
	if err := os.MkdirAll(store, 0o755); err != nil {
		t.Fatal(err)
	}

	layers := []gis.Layer{
		{Name: "Bad Wells", Kind: gis.LayerKindFeature, HasZ: true, DataSource: filepath.Join(dir, "absent.geojson")},
		{Name: "Good Wells", Kind: gis.LayerKindFeature, HasZ: true, DataSource: good, CRS: gis.NAD83UTM16N},
	}
	outcomes := p.ReconcileZLayers(ctx, layers, store, gis.NAD83UTM16N)

	if len(outcomes) != 2 {
		t.Fatalf("got %d outcomes, want 2", len(outcomes))
	}
	if !outcomes[0].Failed() || outcomes[0].Stage != StageCopy {
		t.Errorf("bad layer outcome = %v, want copy failure", outcomes[0])
	}
	if outcomes[1].Failed() {
		t.Errorf("good layer failed: %v", outcomes[1].Err)
	}

	// The failure cost at most its own entity.
	if !p.Engine.EntityExists(store, "Good_Wells") {
		t.Error("Good_Wells missing from store")
	}
	if p.Engine.EntityExists(store, "Bad_Wells") {
		t.Error("Bad_Wells should not exist")
	}
}

func TestPropagateMetadata_Warnings(t *testing.T) {
	t.Parallel()

	p := newTestPipeline(nil)
	dir := t.TempDir()

	data := filepath.Join(dir, "wells.geojson")
	writeFeatureFile(t, data, `{"type":"Point","coordinates":[1,1]}`)

	store := filepath.Join(dir, "Out.gdb")
	if err := os.MkdirAll(store, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(store, "Wells.geojson"), []byte(emptyCollection), 0o644); err != nil {
		t.Fatal(err)
	}
	// Locked entity: a read-only record rejects the copy.
	if err := os.WriteFile(filepath.Join(store, "Wells.meta.toml"), []byte("read_only = true\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	m := &gis.Map{Name: "Survey"}
	m.AddLayer(gis.Layer{
		Name: "Wells", Kind: gis.LayerKindFeature, DataSource: data,
		Metadata: gis.Metadata{Title: "Monitoring wells"},
	})
	m.AddLayer(gis.Layer{
		Name: "Ghost", Kind: gis.LayerKindFeature, DataSource: data,
		Metadata: gis.Metadata{Title: "Never packaged"},
	})

	outcomes := p.PropagateMetadata(m, store, nil)
	if len(outcomes) != 2 {
		t.Fatalf("got %d outcomes, want 2", len(outcomes))
	}
	if !outcomes[0].Failed() || !errors.Is(outcomes[0].Err, gis.ErrMetadataReadOnly) {
		t.Errorf("read-only outcome = %v, want ErrMetadataReadOnly", outcomes[0])
	}
	if !outcomes[1].Failed() {
		t.Error("missing entity should produce a warning outcome")
	}
}

func TestPropagateMetadata_AppendsProvenance(t *testing.T) {
	t.Parallel()

	p := newTestPipeline(nil)
	store := filepath.Join(t.TempDir(), "Out.gdb")
	if err := os.MkdirAll(store, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := p.Engine.WriteMetadata(store, gis.Metadata{Description: "Survey deliverable."}); err != nil {
		t.Fatal(err)
	}

	extent := gis.Extent{XMin: 0, YMin: 0, XMax: 10, YMax: 10}
	outcomes := p.PropagateMetadata(&gis.Map{Name: "Survey"}, store, &extent)
	for _, o := range outcomes {
		if o.Failed() {
			t.Fatalf("outcome failed: %v", o)
		}
	}

	md, err := p.Engine.ReadMetadata(store)
	if err != nil {
		t.Fatal(err)
	}
	want := "Survey deliverable.\n\n" + extent.ProvenanceText()
	if md.Description != want {
		t.Errorf("description = %q, want %q", md.Description, want)
	}
}

func TestExtractBundle_MissingBundle(t *testing.T) {
	t.Parallel()

	p := newTestPipeline(zipExtractor{})
	dir := t.TempDir()
	_, err := p.ExtractBundle(context.Background(), filepath.Join(dir, "absent.mpkx"), filepath.Join(dir, "out"), "Survey", false)
	if !errors.Is(err, ErrBundleNotFound) {
		t.Errorf("err = %v, want ErrBundleNotFound", err)
	}
}

func TestExtractBundle_NoStoreInside(t *testing.T) {
	t.Parallel()

	p := newTestPipeline(zipExtractor{})
	dir := t.TempDir()

	// A bundle with no .gdb directory inside.
	bundle := filepath.Join(dir, "empty.mpkx")
	f, err := os.Create(bundle)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	w, err := zw.Create("readme.txt")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte("nothing here")); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	dest := filepath.Join(dir, "out")
	_, err = p.ExtractBundle(context.Background(), bundle, dest, "Survey", false)
	if !errors.Is(err, ErrStoreNotFound) {
		t.Errorf("err = %v, want ErrStoreNotFound", err)
	}
	if _, statErr := os.Stat(dest); !os.IsNotExist(statErr) {
		t.Error("destination still exists after failed extraction")
	}
}
