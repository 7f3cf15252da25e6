// SPDX-License-Identifier: MPL-2.0

package gis

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"
)

// ErrInvalidExtent is the sentinel error wrapped by InvalidExtentError.
var ErrInvalidExtent = errors.New("invalid extent")

type (
	// Extent is a rectangular bounding box in some map's coordinate
	// reference system. It is immutable once resolved: the pipeline uses
	// it both to clip packaging output and as provenance text appended to
	// store metadata.
	Extent struct {
		XMin, YMin, XMax, YMax float64
	}

	// InvalidExtentError is returned when an Extent's minimum bound
	// exceeds its maximum bound on either axis.
	InvalidExtentError struct {
		Value Extent
	}
)

// ExtentFromBound converts an orb bound into an Extent.
func ExtentFromBound(b orb.Bound) Extent {
	return Extent{XMin: b.Min[0], YMin: b.Min[1], XMax: b.Max[0], YMax: b.Max[1]}
}

// Bound converts the Extent into an orb bound for geometric operations.
func (e Extent) Bound() orb.Bound {
	return orb.Bound{Min: orb.Point{e.XMin, e.YMin}, Max: orb.Point{e.XMax, e.YMax}}
}

// IsValid returns whether the Extent is well-formed (min <= max on both
// axes), and a list of validation errors if it is not.
func (e Extent) IsValid() (bool, []error) {
	if e.XMin > e.XMax || e.YMin > e.YMax {
		return false, []error{&InvalidExtentError{Value: e}}
	}
	return true, nil
}

// String returns a compact single-line rendering of the bounds.
func (e Extent) String() string {
	return fmt.Sprintf("[%g %g %g %g]", e.XMin, e.YMin, e.XMax, e.YMax)
}

// ProvenanceText returns the multi-line clipping note recorded in store
// metadata after an extent-limited archive run.
func (e Extent) ProvenanceText() string {
	return fmt.Sprintf(
		"Data has been clipped to the following extent:\nXMin: %g\nYMin: %g\nXMax: %g\nYMax: %g",
		e.XMin, e.YMin, e.XMax, e.YMax)
}

// Error implements the error interface.
func (e *InvalidExtentError) Error() string {
	return fmt.Sprintf("invalid extent %s: min bound exceeds max bound", e.Value)
}

// Unwrap returns ErrInvalidExtent for errors.Is() compatibility.
func (e *InvalidExtentError) Unwrap() error { return ErrInvalidExtent }
