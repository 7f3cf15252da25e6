// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidDefaultCRS is the sentinel error wrapped by InvalidDefaultCRSError.
	ErrInvalidDefaultCRS = errors.New("invalid default CRS code")
)

type (
	// ColorScheme selects the terminal rendering palette.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not
	// recognized. It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// InvalidDefaultCRSError is returned when archive.default_crs is not a
	// positive EPSG code. It wraps ErrInvalidDefaultCRS.
	InvalidDefaultCRSError struct {
		Value int
	}

	// SevenZipConfig controls how the 7-Zip executable is located.
	SevenZipConfig struct {
		// Paths are candidate executable paths checked before the
		// built-in conventional install locations and PATH.
		Paths []string `mapstructure:"paths"`
	}

	// ArchiveConfig carries pipeline defaults that are configuration, not
	// invocation parameters.
	ArchiveConfig struct {
		// DefaultCRS is the EPSG code used to reproject Z-enabled layers
		// when the run has no map context to take a target CRS from.
		DefaultCRS int `mapstructure:"default_crs"`
		// KeepTemp preserves the transfer bundle and intermediate archive
		// after successful extraction.
		KeepTemp bool `mapstructure:"keep_temp"`
	}

	// UIConfig controls CLI output behavior.
	UIConfig struct {
		Verbose     bool        `mapstructure:"verbose"`
		ColorScheme ColorScheme `mapstructure:"color_scheme"`
	}

	// Config is the root configuration document.
	Config struct {
		SevenZip SevenZipConfig `mapstructure:"seven_zip"`
		Archive  ArchiveConfig  `mapstructure:"archive"`
		UI       UIConfig       `mapstructure:"ui"`
	}
)

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Archive: ArchiveConfig{
			DefaultCRS: 26916, // NAD83 / UTM zone 16N
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
		},
	}
}

// IsValid returns whether the ColorScheme is one of the recognized values,
// and a list of validation errors if it is not.
func (s ColorScheme) IsValid() (bool, []error) {
	switch s {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: s}}
	}
}

// Validate checks constraints the CUE schema cannot express and normalizes
// nothing: the loaded document either passes or the whole load fails.
func (c *Config) Validate() error {
	if ok, errs := c.UI.ColorScheme.IsValid(); !ok {
		return errs[0]
	}
	if c.Archive.DefaultCRS <= 0 {
		return &InvalidDefaultCRSError{Value: c.Archive.DefaultCRS}
	}
	return nil
}

// Error implements the error interface.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (must be auto, dark, or light)", e.Value)
}

// Unwrap returns ErrInvalidColorScheme for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// Error implements the error interface.
func (e *InvalidDefaultCRSError) Error() string {
	return fmt.Sprintf("invalid default CRS code %d (must be a positive EPSG code)", e.Value)
}

// Unwrap returns ErrInvalidDefaultCRS for errors.Is() compatibility.
func (e *InvalidDefaultCRSError) Unwrap() error { return ErrInvalidDefaultCRS }
