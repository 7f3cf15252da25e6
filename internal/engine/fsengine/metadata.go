// SPDX-License-Identifier: MPL-2.0

package fsengine

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"mapvault-cli/pkg/gis"

	"github.com/pelletier/go-toml/v2"
)

// metadataDoc is the on-disk shape of a TOML metadata record.
type metadataDoc struct {
	Title       string    `toml:"title,omitempty"`
	Credits     string    `toml:"credits,omitempty"`
	Summary     string    `toml:"summary,omitempty"`
	Description string    `toml:"description,omitempty"`
	Created     time.Time `toml:"created,omitempty"`
	Modified    time.Time `toml:"modified,omitempty"`
	ReadOnly    bool      `toml:"read_only,omitempty"`
}

func (d metadataDoc) toMetadata() gis.Metadata {
	return gis.Metadata{
		Title:       d.Title,
		Credits:     d.Credits,
		Summary:     d.Summary,
		Description: d.Description,
		Created:     d.Created,
		Modified:    d.Modified,
		ReadOnly:    d.ReadOnly,
	}
}

func fromMetadata(md gis.Metadata) metadataDoc {
	return metadataDoc{
		Title:       md.Title,
		Credits:     md.Credits,
		Summary:     md.Summary,
		Description: md.Description,
		Created:     md.Created,
		Modified:    md.Modified,
		ReadOnly:    md.ReadOnly,
	}
}

// metadataFile resolves the record path for a locator: the store's own
// record when the locator is a .gdb directory, the entity's record
// otherwise.
func metadataFile(locator string) string {
	if strings.HasSuffix(locator, gis.StoreExt) {
		return filepath.Join(locator, storeMeta)
	}
	return metaPath(locator)
}

// ReadMetadata reads the descriptive record at a locator. A missing record
// reads as an empty, writable Metadata.
func (e *Engine) ReadMetadata(locator string) (gis.Metadata, error) {
	data, err := os.ReadFile(metadataFile(locator))
	if os.IsNotExist(err) {
		return gis.Metadata{}, nil
	}
	if err != nil {
		return gis.Metadata{}, fmt.Errorf("failed to read metadata of %s: %w", locator, err)
	}

	var doc metadataDoc
	if err := toml.Unmarshal(data, &doc); err != nil {
		return gis.Metadata{}, fmt.Errorf("invalid metadata record at %s: %w", locator, err)
	}
	return doc.toMetadata(), nil
}

// WriteMetadata replaces the record at a locator. A record marked
// read-only on disk rejects the write with gis.ErrMetadataReadOnly.
func (e *Engine) WriteMetadata(locator string, md gis.Metadata) error {
	existing, err := e.ReadMetadata(locator)
	if err != nil {
		return err
	}
	if existing.ReadOnly {
		return fmt.Errorf("%s: %w", locator, gis.ErrMetadataReadOnly)
	}
	return writeMetadataDoc(metadataFile(locator), md)
}

func writeMetadataDoc(path string, md gis.Metadata) error {
	data, err := toml.Marshal(fromMetadata(md))
	if err != nil {
		return fmt.Errorf("failed to encode metadata: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
