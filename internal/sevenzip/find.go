// SPDX-License-Identifier: MPL-2.0

package sevenzip

import (
	"errors"
	"os"
	"os/exec"

	"mapvault-cli/pkg/platform"
)

// ErrNotFound is returned by Find when no 7-Zip executable exists in the
// configured paths, the conventional install locations, or PATH.
var ErrNotFound = errors.New("7-Zip not found")

// conventionalPaths returns the fixed install locations checked after any
// caller-configured paths.
func conventionalPaths() []string {
	if platform.IsWindows() {
		return []string{
			`C:\Program Files\7-Zip\7z.exe`,
			`C:\Program Files (x86)\7-Zip\7z.exe`,
		}
	}
	return []string{
		"/usr/bin/7z",
		"/usr/bin/7zz",
		"/usr/local/bin/7z",
		"/usr/local/bin/7zz",
		"/opt/homebrew/bin/7zz",
	}
}

// pathNames are the bare executable names tried on PATH, in order. 7zz is
// the official standalone build's name on Linux and macOS.
var pathNames = []string{"7z", "7zz"}

// Find resolves the 7-Zip executable. extraPaths are checked first, in
// order, so a configured path always wins over autodetection.
func Find(extraPaths []string) (*Tool, error) {
	for _, p := range extraPaths {
		if isExecutableFile(p) {
			return &Tool{Path: p}, nil
		}
	}
	for _, p := range conventionalPaths() {
		if isExecutableFile(p) {
			return &Tool{Path: p}, nil
		}
	}
	for _, name := range pathNames {
		if p, err := exec.LookPath(platform.ExeName(name)); err == nil {
			return &Tool{Path: p}, nil
		}
	}
	return nil, ErrNotFound
}

func isExecutableFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	if platform.IsWindows() {
		return true
	}
	return info.Mode()&0o111 != 0
}
