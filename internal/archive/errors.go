// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"errors"
	"fmt"
)

var (
	// ErrLayerNotFound is the sentinel error wrapped by LayerNotFoundError.
	ErrLayerNotFound = errors.New("layer not found")
	// ErrNoSpatialExtent is the sentinel error wrapped by NoSpatialExtentError.
	ErrNoSpatialExtent = errors.New("layer has no spatial extent")
	// ErrBundleNotFound is the sentinel error wrapped by BundleNotFoundError.
	ErrBundleNotFound = errors.New("transfer bundle not found")
	// ErrStoreNotFound is the sentinel error wrapped by StoreNotFoundError.
	ErrStoreNotFound = errors.New("no feature store found")
)

type (
	// LayerNotFoundError is returned when a named layer does not exist in
	// a map as a non-group layer.
	LayerNotFoundError struct {
		Layer string
		Map   string
	}

	// NoSpatialExtentError is returned when a matched layer's descriptor
	// carries no extent information.
	NoSpatialExtentError struct {
		Layer string
	}

	// BundleNotFoundError is returned when the transfer bundle file does
	// not exist at extraction time.
	BundleNotFoundError struct {
		Path string
	}

	// StoreNotFoundError is returned when an extracted bundle contains no
	// directory with the feature-store suffix.
	StoreNotFoundError struct {
		SearchDir string
	}
)

// Error implements the error interface.
func (e *LayerNotFoundError) Error() string {
	return fmt.Sprintf("layer %q not found in map %q or is a group layer", e.Layer, e.Map)
}

// Unwrap returns ErrLayerNotFound for errors.Is() compatibility.
func (e *LayerNotFoundError) Unwrap() error { return ErrLayerNotFound }

// Error implements the error interface.
func (e *NoSpatialExtentError) Error() string {
	return fmt.Sprintf("layer %q has no spatial extent", e.Layer)
}

// Unwrap returns ErrNoSpatialExtent for errors.Is() compatibility.
func (e *NoSpatialExtentError) Unwrap() error { return ErrNoSpatialExtent }

// Error implements the error interface.
func (e *BundleNotFoundError) Error() string {
	return fmt.Sprintf("transfer bundle not found at %s", e.Path)
}

// Unwrap returns ErrBundleNotFound for errors.Is() compatibility.
func (e *BundleNotFoundError) Unwrap() error { return ErrBundleNotFound }

// Error implements the error interface.
func (e *StoreNotFoundError) Error() string {
	return fmt.Sprintf("no feature store found under %s", e.SearchDir)
}

// Unwrap returns ErrStoreNotFound for errors.Is() compatibility.
func (e *StoreNotFoundError) Unwrap() error { return ErrStoreNotFound }
