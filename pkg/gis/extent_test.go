// SPDX-License-Identifier: MPL-2.0

package gis

import (
	"strings"
	"testing"
)

func TestExtent_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		extent Extent
		want   bool
	}{
		{"normal box", Extent{XMin: 0, YMin: 0, XMax: 10, YMax: 10}, true},
		{"degenerate point", Extent{XMin: 5, YMin: 5, XMax: 5, YMax: 5}, true},
		{"inverted x", Extent{XMin: 10, YMin: 0, XMax: 0, YMax: 10}, false},
		{"inverted y", Extent{XMin: 0, YMin: 10, XMax: 10, YMax: 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got, _ := tt.extent.IsValid(); got != tt.want {
				t.Errorf("IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtent_BoundRoundTrip(t *testing.T) {
	t.Parallel()

	e := Extent{XMin: -88.4, YMin: 39.7, XMax: -87.5, YMax: 40.2}
	if got := ExtentFromBound(e.Bound()); got != e {
		t.Errorf("round trip changed extent: got %v, want %v", got, e)
	}
}

func TestExtent_ProvenanceText(t *testing.T) {
	t.Parallel()

	text := Extent{XMin: 0, YMin: 0, XMax: 10, YMax: 10}.ProvenanceText()

	if !strings.HasPrefix(text, "Data has been clipped to the following extent:") {
		t.Errorf("missing clipping preamble in %q", text)
	}
	for _, want := range []string{"XMin: 0", "YMin: 0", "XMax: 10", "YMax: 10"} {
		if !strings.Contains(text, want) {
			t.Errorf("provenance text missing %q:\n%s", want, text)
		}
	}
}
