// SPDX-License-Identifier: MPL-2.0

// Package report generates human-readable layer summaries for a map: a
// plain-text inventory of every non-group layer plus one exported XML
// metadata document per layer. It is a sibling of the archive pipeline,
// not a stage of it.
package report
