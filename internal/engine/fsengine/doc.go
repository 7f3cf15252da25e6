// SPDX-License-Identifier: MPL-2.0

// Package fsengine is a file-backed implementation of the gis.Engine
// capability surface.
//
// A project is a directory with a project.toml describing its maps and
// layers; feature data lives in GeoJSON files, feature stores are .gdb
// directories holding one GeoJSON document and one TOML metadata record
// per entity, and transfer bundles are zip archives (which 7-Zip extracts
// natively). The scratch workspace is an in-memory collection keyed by
// "memory/" locators.
//
// Reprojection supports WGS84 (EPSG:4326) and Web Mercator (EPSG:3857)
// through orb/project; any other CRS pair copies coordinates unchanged and
// only retags the collection's CRS. GeoJSON coordinates are planar x/y, so
// elevation values do not survive packaging — the same limitation that
// forces the pipeline to reconcile Z-enabled layers out of band.
package fsengine
