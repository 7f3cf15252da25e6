// SPDX-License-Identifier: MPL-2.0

// Package gis defines the capability surface of the GIS engine and the
// domain value types shared by the archive pipeline.
//
// The pipeline never talks to a concrete engine directly; it programs
// against the Engine and Project interfaces declared here. Layers are
// modeled as a tagged variant (group vs. feature, with an explicit HasZ
// capability field) instead of attribute-presence probes, and behavior
// that engines traditionally keep in ambient environment state (output
// Z/M handling, overwrite toggles) is carried in explicit option structs.
//
// This package is a leaf dependency: it imports only the standard library
// and the orb geometry types. Implementations live elsewhere (see
// internal/engine/fsengine for the file-backed reference engine).
package gis
