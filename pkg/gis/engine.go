// SPDX-License-Identifier: MPL-2.0

package gis

import (
	"context"
	"errors"
)

// Sentinel errors shared by all engine implementations.
var (
	// ErrMetadataReadOnly is returned by WriteMetadata when the target
	// record cannot be modified.
	ErrMetadataReadOnly = errors.New("metadata is read-only")

	// ErrNoDescriptor is returned by Describe when a layer cannot be
	// inspected at all (broken data source, unreadable schema).
	ErrNoDescriptor = errors.New("layer cannot be described")

	// ErrMapNotFound is returned by FindMap when no map name matches the
	// requested pattern.
	ErrMapNotFound = errors.New("map not found")
)

type (
	// Descriptor is the result of probing a layer's geometry. HasExtent
	// and HasZ are explicit capability fields; callers must not infer them
	// from zero values elsewhere.
	Descriptor struct {
		HasExtent bool
		Extent    Extent
		HasZ      bool
		CRS       SpatialReference
	}

	// PackageOptions controls how a map subset is packaged into a
	// transfer bundle. The zero value is not useful; the pipeline always
	// sets the conversion and consolidation fields explicitly instead of
	// relying on ambient engine state.
	PackageOptions struct {
		// OutputFile is the bundle path to write.
		OutputFile string
		// ConvertData copies all referenced data into the bundle instead
		// of recording references.
		ConvertData bool
		// KeepOnlyRelatedRows restricts related tables to rows that
		// participate in a relationship with packaged features.
		KeepOnlyRelatedRows bool
		// SingleOutputStore consolidates every layer into one feature
		// store inside the bundle.
		SingleOutputStore bool
		// Extent, when non-nil, clips packaged features to the bound.
		Extent *Extent
		// OutputZ and OutputM control whether packaged geometries carry
		// elevation and measure values.
		OutputZ bool
		OutputM bool
	}

	// ReprojectOptions controls feature reprojection.
	ReprojectOptions struct {
		// PreserveShape densifies geometry during projection so curves
		// and long edges keep their shape in the target system.
		PreserveShape bool
	}

	// Project is an open connection to a map project. Close releases the
	// connection; maps obtained from the project are invalid afterwards.
	Project interface {
		// Maps returns every map in the project, in project order.
		Maps() []*Map
		// FindMap returns the first map whose name matches pattern.
		// Pattern supports "*" wildcards. Returns ErrMapNotFound when
		// nothing matches.
		FindMap(pattern string) (*Map, error)
		// CreateMap adds a transient empty map to the project.
		CreateMap(name string) (*Map, error)
		// DeleteMap removes a map previously added with CreateMap.
		DeleteMap(m *Map) error
		// PackageMap packages a map into a transfer bundle.
		PackageMap(ctx context.Context, m *Map, opts PackageOptions) error
		// Close releases the project connection.
		Close() error
	}

	// Engine is the capability surface the archive pipeline calls into.
	// Data locations are engine locator strings: a feature store entity is
	// addressed as "<store-path>/<entity-name>", and transient scratch
	// data lives under the "memory/" locator prefix.
	Engine interface {
		// OpenProject opens a project by path.
		OpenProject(ctx context.Context, path string) (Project, error)

		// Describe probes a layer's geometry. Probing can fail on broken
		// layers; callers treat that as a per-layer condition, not a
		// structural one.
		Describe(layer Layer) (Descriptor, error)

		// ListEntities returns the entity names in a feature store, in
		// the store's directory order.
		ListEntities(store string) ([]string, error)
		// RenameEntity renames a store entity in place.
		RenameEntity(store, oldName, newName string) error
		// EntityExists reports whether a store contains the named entity.
		EntityExists(store, name string) bool

		// CopyLayerFeatures copies a layer's features to a destination
		// locator, overwriting any existing data there.
		CopyLayerFeatures(ctx context.Context, layer Layer, dest string) error
		// CopyFeatures copies features between locators, overwriting the
		// destination.
		CopyFeatures(ctx context.Context, src, dest string) error
		// Reproject projects features from src into dest using the target
		// coordinate system.
		Reproject(ctx context.Context, src, dest string, target SpatialReference, opts ReprojectOptions) error
		// DeleteData removes the data at a locator. Deleting a locator
		// that does not exist is not an error.
		DeleteData(path string) error

		// ReadMetadata reads the descriptive record of a store entity, or
		// of the store itself when path is the store's own path.
		ReadMetadata(path string) (Metadata, error)
		// WriteMetadata replaces the descriptive record at path. Returns
		// ErrMetadataReadOnly when the record cannot be written.
		WriteMetadata(path string, md Metadata) error
	}
)
