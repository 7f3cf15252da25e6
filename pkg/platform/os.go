// SPDX-License-Identifier: MPL-2.0

// Package platform provides cross-platform compatibility helpers: OS name
// constants for runtime.GOOS comparisons and executable-name handling for
// locating external tools.
package platform

import "runtime"

// OS name constants for runtime.GOOS comparisons.
// Centralizes the string literals to avoid scattered magic strings.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)

// IsWindows reports whether the current OS is Windows.
func IsWindows() bool { return runtime.GOOS == Windows }

// ExeName appends the platform executable suffix to a bare tool name
// ("7z" becomes "7z.exe" on Windows, stays "7z" elsewhere).
func ExeName(name string) string {
	if IsWindows() {
		return name + ".exe"
	}
	return name
}
