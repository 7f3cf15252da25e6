// SPDX-License-Identifier: MPL-2.0

package gis

import (
	"errors"
	"testing"
)

func TestEntityName_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   EntityName
		want    bool
		wantErr bool
	}{
		{"simple name", EntityName("Roads"), true, false},
		{"underscores allowed after first char", EntityName("Road_Centerlines"), true, false},
		{"digits allowed after first char", EntityName("Wells2024"), true, false},
		{"empty is invalid", EntityName(""), false, true},
		{"leading digit is invalid", EntityName("2024Wells"), false, true},
		{"leading underscore is invalid", EntityName("_Roads"), false, true},
		{"leading symbol is invalid", EntityName("@Roads"), false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, errs := tt.value.IsValid()
			if got != tt.want {
				t.Errorf("IsValid() = %v, want %v", got, tt.want)
			}
			if tt.wantErr && len(errs) == 0 {
				t.Error("expected validation errors, got none")
			}
			if !tt.wantErr && len(errs) != 0 {
				t.Errorf("unexpected validation errors: %v", errs)
			}
		})
	}
}

func TestEntityName_IsValid_ErrorWrapsSentinel(t *testing.T) {
	t.Parallel()

	_, errs := EntityName("9lives").IsValid()
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d", len(errs))
	}
	if !errors.Is(errs[0], ErrInvalidEntityName) {
		t.Errorf("error %v does not wrap ErrInvalidEntityName", errs[0])
	}
}

func TestValidateName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"clean name unchanged", "Roads", "Roads"},
		{"spaces become underscores", "Road Centerlines", "Road_Centerlines"},
		{"punctuation becomes underscores", "Wells (2024)", "Wells__2024_"},
		{"leading digit gets prefix", "2024 Wells", "T2024_Wells"},
		{"empty gets placeholder", "", "T"},
		{"already valid is stable", "Road_Centerlines", "Road_Centerlines"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ValidateName(tt.input); got != tt.want {
				t.Errorf("ValidateName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateName_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{"Roads", "Road Centerlines", "2024 Wells", "a b c"}
	for _, in := range inputs {
		once := ValidateName(in)
		twice := ValidateName(once)
		if once != twice {
			t.Errorf("ValidateName not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}
