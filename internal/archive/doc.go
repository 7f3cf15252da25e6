// SPDX-License-Identifier: MPL-2.0

// Package archive implements the map-archival pipeline: it classifies a
// map's layers, packages the well-behaved subset into a clipped transfer
// bundle, extracts the bundle into a persistent feature store, repairs
// entity identifiers mangled by the packaging convention, reconciles
// Z-enabled layers back into the store through a scratch-workspace
// reprojection round-trip, and propagates descriptive metadata (including
// extent provenance) onto the archived entities.
//
// The pipeline runs fully sequentially. Failures divide into two classes:
// structural failures (missing layer, missing tool, failed extraction,
// missing store) abort the run and tear down partial output, while
// per-entity failures (one layer's probe, copy, reprojection, or metadata
// write) are recorded as warning Outcomes and never stop the remaining
// layers. Every stage returns its per-entity results explicitly instead of
// suppressing them.
package archive
