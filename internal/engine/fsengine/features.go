// SPDX-License-Identifier: MPL-2.0

package fsengine

import (
	"context"
	"fmt"

	"mapvault-cli/pkg/gis"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/clip"
	"github.com/paulmach/orb/geojson"
	orbproject "github.com/paulmach/orb/project"
)

// crsMember is the foreign member recording a collection's EPSG code.
const crsMember = "crs_code"

// Reproject projects features from src into dest using the target
// coordinate system. Supported pairs are WGS84 <-> Web Mercator; a same-CRS
// source is copied through unchanged. Any other pair copies coordinates
// as-is and only retags the CRS, which keeps the pipeline's round-trip
// shape intact for systems the file engine cannot transform.
func (e *Engine) Reproject(ctx context.Context, src, dest string, target gis.SpatialReference, opts gis.ReprojectOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if target.IsZero() {
		return fmt.Errorf("reproject %s: target CRS is unknown", src)
	}

	fc, err := e.readCollection(src)
	if err != nil {
		return err
	}

	srcCode := collectionCRS(fc)
	transform := transformFor(srcCode, target.Code)

	out := geojson.NewFeatureCollection()
	for _, f := range fc.Features {
		geom := f.Geometry
		if transform != nil {
			if opts.PreserveShape {
				geom = densify(geom)
			}
			geom = orbproject.Geometry(Clone(geom), transform)
		}
		nf := geojson.NewFeature(geom)
		nf.ID = f.ID
		nf.Properties = f.Properties
		out.Append(nf)
	}
	setCRS(out, target.Code)

	return e.writeCollection(dest, out)
}

// transformFor returns the point projection for a CRS pair, or nil when the
// pair needs no (or gets no) coordinate change.
func transformFor(srcCode, dstCode int) func(orb.Point) orb.Point {
	switch {
	case srcCode == dstCode:
		return nil
	case srcCode == gis.WGS84.Code && dstCode == gis.WebMercator.Code:
		return orbproject.WGS84.ToMercator
	case srcCode == gis.WebMercator.Code && dstCode == gis.WGS84.Code:
		return orbproject.Mercator.ToWGS84
	default:
		return nil
	}
}

// densify subdivides line segments so shape-preserving projection keeps
// long edges curved instead of cutting chords.
func densify(g orb.Geometry) orb.Geometry {
	switch geom := g.(type) {
	case orb.LineString:
		return densifyLine(geom)
	case orb.MultiLineString:
		out := make(orb.MultiLineString, len(geom))
		for i, ls := range geom {
			out[i] = densifyLine(ls)
		}
		return out
	case orb.Polygon:
		out := make(orb.Polygon, len(geom))
		for i, ring := range geom {
			out[i] = orb.Ring(densifyLine(orb.LineString(ring)))
		}
		return out
	case orb.MultiPolygon:
		out := make(orb.MultiPolygon, len(geom))
		for i, poly := range geom {
			out[i] = densify(poly).(orb.Polygon)
		}
		return out
	default:
		return g
	}
}

const densifySteps = 4

func densifyLine(ls orb.LineString) orb.LineString {
	if len(ls) < 2 {
		return ls
	}
	out := make(orb.LineString, 0, (len(ls)-1)*densifySteps+1)
	for i := 0; i < len(ls)-1; i++ {
		a, b := ls[i], ls[i+1]
		for s := 0; s < densifySteps; s++ {
			t := float64(s) / densifySteps
			out = append(out, orb.Point{
				a[0] + (b[0]-a[0])*t,
				a[1] + (b[1]-a[1])*t,
			})
		}
	}
	return append(out, ls[len(ls)-1])
}

// Clone deep-copies a geometry so projection never mutates stored data.
func Clone(g orb.Geometry) orb.Geometry {
	if g == nil {
		return nil
	}
	return orb.Clone(g)
}

// clipCollection clips every feature to the bound, dropping features that
// fall entirely outside it.
func clipCollection(fc *geojson.FeatureCollection, bound orb.Bound) *geojson.FeatureCollection {
	out := geojson.NewFeatureCollection()
	out.ExtraMembers = fc.ExtraMembers
	for _, f := range fc.Features {
		clipped := clip.Geometry(bound, Clone(f.Geometry))
		if clipped == nil {
			continue
		}
		nf := geojson.NewFeature(clipped)
		nf.ID = f.ID
		nf.Properties = f.Properties
		out.Append(nf)
	}
	return out
}

// collectionCRS reads the EPSG code foreign member, 0 when absent.
func collectionCRS(fc *geojson.FeatureCollection) int {
	if fc.ExtraMembers == nil {
		return 0
	}
	switch v := fc.ExtraMembers[crsMember].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

func setCRS(fc *geojson.FeatureCollection, code int) {
	if fc.ExtraMembers == nil {
		fc.ExtraMembers = map[string]interface{}{}
	}
	fc.ExtraMembers[crsMember] = code
}

// cloneCollection deep-copies a collection via its JSON form, so scratch
// reads never alias scratch writes.
func cloneCollection(fc *geojson.FeatureCollection) (*geojson.FeatureCollection, error) {
	data, err := fc.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return geojson.UnmarshalFeatureCollection(data)
}
