// SPDX-License-Identifier: MPL-2.0

package gis

// Directory and file conventions shared by engines and the pipeline.
const (
	// StoreExt is the directory suffix identifying a feature store.
	StoreExt = ".gdb"

	// BundleExt is the file extension of a transfer bundle.
	BundleExt = ".mpkx"

	// MemoryPrefix is the locator prefix of the transient scratch
	// workspace. Data under it never touches disk.
	MemoryPrefix = "memory/"
)
