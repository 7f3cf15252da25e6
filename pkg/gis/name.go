// SPDX-License-Identifier: MPL-2.0

package gis

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrInvalidEntityName is the sentinel error wrapped by InvalidEntityNameError.
var ErrInvalidEntityName = errors.New("invalid entity name")

type (
	// EntityName is the name of a table or feature class inside a feature
	// store. Stores reject identifiers that are empty or do not start with
	// an alphabetic character.
	EntityName string

	// InvalidEntityNameError is returned when an EntityName is empty or
	// starts with a non-alphabetic character.
	InvalidEntityNameError struct {
		Value EntityName
	}
)

// String returns the string representation of the EntityName.
func (n EntityName) String() string { return string(n) }

// IsValid returns whether the EntityName is acceptable to a feature store,
// and a list of validation errors if it is not.
func (n EntityName) IsValid() (bool, []error) {
	if n == "" {
		return false, []error{&InvalidEntityNameError{Value: n}}
	}
	first := []rune(string(n))[0]
	if !unicode.IsLetter(first) {
		return false, []error{&InvalidEntityNameError{Value: n}}
	}
	return true, nil
}

// ValidateName sanitizes an arbitrary layer or map name into a form a
// feature store accepts: spaces and punctuation become underscores, and a
// leading non-alphabetic run is prefixed with "T". The result is stable
// for already-valid names.
func ValidateName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	out := b.String()
	if out == "" {
		return "T"
	}
	if !unicode.IsLetter([]rune(out)[0]) {
		out = "T" + out
	}
	return out
}

// Error implements the error interface.
func (e *InvalidEntityNameError) Error() string {
	return fmt.Sprintf("invalid entity name %q: must start with an alphabetic character", e.Value)
}

// Unwrap returns ErrInvalidEntityName for errors.Is() compatibility.
func (e *InvalidEntityNameError) Unwrap() error { return ErrInvalidEntityName }
