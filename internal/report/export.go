// SPDX-License-Identifier: MPL-2.0

package report

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// metadataDirName is the subfolder holding exported XML metadata documents.
const metadataDirName = "metadata"

// metadataXML is the exported metadata document shape. Element names follow
// the convention of GIS metadata exports, so downstream tooling that greps
// for CreaDate/ModDate keeps working.
type metadataXML struct {
	XMLName  xml.Name `xml:"metadata"`
	CreaDate string   `xml:"Esri>CreaDate,omitempty"`
	ModDate  string   `xml:"Esri>ModDate,omitempty"`
	Title    string   `xml:"dataIdInfo>idCitation>resTitle,omitempty"`
	Credits  string   `xml:"dataIdInfo>idCredit,omitempty"`
	Summary  string   `xml:"dataIdInfo>idPurp,omitempty"`
	Abstract string   `xml:"dataIdInfo>idAbs,omitempty"`
}

// WriteFiles renders the report into outputFolder: one
// "<map>_layer_summary.txt" plus a metadata/ folder with an XML document
// per layer. Returns the summary file path and the metadata folder path.
func (r *Report) WriteFiles(outputFolder string) (summaryPath, metadataDir string, err error) {
	metadataDir = filepath.Join(outputFolder, metadataDirName)
	if err := os.MkdirAll(metadataDir, 0o755); err != nil {
		return "", "", fmt.Errorf("create metadata folder: %w", err)
	}

	for i := range r.Layers {
		rel, err := exportMetadata(r.Layers[i], metadataDir)
		if err != nil {
			return "", "", err
		}
		r.Layers[i].MetadataFile = filepath.Join(metadataDirName, rel)
	}

	summaryPath = filepath.Join(outputFolder, r.Map+"_layer_summary.txt")
	if err := os.WriteFile(summaryPath, []byte(r.Text()), 0o644); err != nil {
		return "", "", fmt.Errorf("write summary: %w", err)
	}
	return summaryPath, metadataDir, nil
}

// exportMetadata writes one layer's XML document and returns its file name.
func exportMetadata(l LayerInfo, dir string) (string, error) {
	doc := metadataXML{
		Title:    l.Metadata.Title,
		Credits:  l.Metadata.Credits,
		Summary:  l.Metadata.Summary,
		Abstract: l.Metadata.Description,
	}
	if !l.Metadata.Created.IsZero() {
		doc.CreaDate = l.Metadata.Created.Format("20060102")
	}
	if !l.Metadata.Modified.IsZero() {
		doc.ModDate = l.Metadata.Modified.Format("20060102")
	}

	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode metadata for %s: %w", l.Name, err)
	}
	data = append([]byte(xml.Header), data...)

	name := strings.ReplaceAll(l.Name, " ", "_") + "_metadata.xml"
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write metadata for %s: %w", l.Name, err)
	}
	return name, nil
}
