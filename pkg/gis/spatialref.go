// SPDX-License-Identifier: MPL-2.0

package gis

import "fmt"

// Well-known coordinate reference systems used throughout the archive
// pipeline. DefaultCRS matches the fallback the pipeline uses when no map
// context is available for Z-layer reconciliation.
var (
	// WGS84 is the geographic lat/lon system (EPSG:4326).
	WGS84 = SpatialReference{Name: "GCS_WGS_1984", Code: 4326}

	// WebMercator is the spherical Mercator projection (EPSG:3857).
	WebMercator = SpatialReference{Name: "WGS_1984_Web_Mercator_Auxiliary_Sphere", Code: 3857}

	// NAD83UTM16N is NAD83 / UTM zone 16N (EPSG:26916).
	NAD83UTM16N = SpatialReference{Name: "NAD_1983_UTM_Zone_16N", Code: 26916}

	// DefaultCRS is the coordinate system assumed when a bundle is
	// reconciled without a source map to take the target CRS from.
	DefaultCRS = NAD83UTM16N
)

// SpatialReference identifies a coordinate reference system by name and
// authority (EPSG) code. The zero value means "unknown CRS" and is treated
// as unprojectable by engines.
type SpatialReference struct {
	Name string
	Code int
}

// IsZero reports whether the SpatialReference carries no CRS information.
func (s SpatialReference) IsZero() bool { return s.Name == "" && s.Code == 0 }

// Equal reports whether two references denote the same system. Authority
// codes win when both sides have one; otherwise names are compared.
func (s SpatialReference) Equal(o SpatialReference) bool {
	if s.Code != 0 && o.Code != 0 {
		return s.Code == o.Code
	}
	return s.Name == o.Name
}

// String returns "Name (EPSG:Code)", omitting whichever part is missing.
func (s SpatialReference) String() string {
	switch {
	case s.IsZero():
		return "unknown"
	case s.Name == "":
		return fmt.Sprintf("EPSG:%d", s.Code)
	case s.Code == 0:
		return s.Name
	default:
		return fmt.Sprintf("%s (EPSG:%d)", s.Name, s.Code)
	}
}
