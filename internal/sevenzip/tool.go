// SPDX-License-Identifier: MPL-2.0

package sevenzip

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"mapvault-cli/pkg/types"
)

type (
	// Tool is a located 7-Zip executable.
	Tool struct {
		// Path is the absolute path to the executable.
		Path string
	}

	// ExtractError is returned when 7-Zip exits non-zero. It carries the
	// exit code and the captured output for diagnostics; extraction
	// failures are structural, so callers propagate this rather than
	// recovering.
	ExtractError struct {
		Archive   string
		ExitCode  types.ExitCode
		Output    string
		ErrOutput string
	}
)

// Error implements the error interface.
func (e *ExtractError) Error() string {
	return fmt.Sprintf("7-Zip extraction of %s failed with exit code %s", e.Archive, e.ExitCode)
}

// Diagnostics returns the captured subprocess output, stderr first, for
// verbose error reporting.
func (e *ExtractError) Diagnostics() string {
	switch {
	case e.ErrOutput != "" && e.Output != "":
		return e.ErrOutput + "\n" + e.Output
	case e.ErrOutput != "":
		return e.ErrOutput
	default:
		return e.Output
	}
}

// Extract unpacks archive into destDir, overwriting existing files
// (7-Zip's "x" command with -y). Exit code 1 (completed with warnings) is
// treated as success; anything else non-zero is an *ExtractError.
func (t *Tool) Extract(ctx context.Context, archive, destDir string) error {
	cmd := exec.CommandContext(ctx, t.Path, "x", archive, "-o"+destDir, "-y")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			code := types.ExitCode(exitErr.ExitCode())
			if code.IsArchiverWarning() {
				return nil
			}
			return &ExtractError{
				Archive:   archive,
				ExitCode:  code,
				Output:    stdout.String(),
				ErrOutput: stderr.String(),
			}
		}
		return fmt.Errorf("failed to run 7-Zip: %w", err)
	}

	return nil
}
