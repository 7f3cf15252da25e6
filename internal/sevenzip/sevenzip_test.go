// SPDX-License-Identifier: MPL-2.0

package sevenzip

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestFind_ExtraPathWins(t *testing.T) {
	t.Parallel()

	fake := writeFakeTool(t, "#!/bin/sh\nexit 0\n")

	tool, err := Find([]string{fake})
	if err != nil {
		t.Fatalf("Find() error: %v", err)
	}
	if tool.Path != fake {
		t.Errorf("Find() path = %q, want %q", tool.Path, fake)
	}
}

func TestFind_SkipsMissingExtraPaths(t *testing.T) {
	t.Parallel()

	fake := writeFakeTool(t, "#!/bin/sh\nexit 0\n")
	missing := filepath.Join(t.TempDir(), "nope", "7z")

	tool, err := Find([]string{missing, fake})
	if err != nil {
		t.Fatalf("Find() error: %v", err)
	}
	if tool.Path != fake {
		t.Errorf("Find() path = %q, want %q", tool.Path, fake)
	}
}

func TestExtract_Success(t *testing.T) {
	t.Parallel()
	requireUnix(t)

	// The fake tool records its arguments so we can verify the invocation
	// convention: x <archive> -o<dest> -y.
	argsFile := filepath.Join(t.TempDir(), "args.txt")
	fake := writeFakeTool(t, "#!/bin/sh\necho \"$@\" > "+argsFile+"\nexit 0\n")

	tool := &Tool{Path: fake}
	if err := tool.Extract(context.Background(), "/tmp/bundle.7z", "/tmp/out"); err != nil {
		t.Fatalf("Extract() error: %v", err)
	}

	raw, err := os.ReadFile(argsFile)
	if err != nil {
		t.Fatal(err)
	}
	got := strings.TrimSpace(string(raw))
	want := "x /tmp/bundle.7z -o/tmp/out -y"
	if got != want {
		t.Errorf("7-Zip invoked with %q, want %q", got, want)
	}
}

func TestExtract_WarningExitIsSuccess(t *testing.T) {
	t.Parallel()
	requireUnix(t)

	fake := writeFakeTool(t, "#!/bin/sh\nexit 1\n")
	tool := &Tool{Path: fake}

	if err := tool.Extract(context.Background(), "a.7z", "out"); err != nil {
		t.Errorf("exit code 1 should be treated as success, got %v", err)
	}
}

func TestExtract_FailureCarriesDiagnostics(t *testing.T) {
	t.Parallel()
	requireUnix(t)

	fake := writeFakeTool(t, "#!/bin/sh\necho 'scanning' \necho 'CRC failed' >&2\nexit 2\n")
	tool := &Tool{Path: fake}

	err := tool.Extract(context.Background(), "a.7z", "out")
	if err == nil {
		t.Fatal("expected error for exit code 2")
	}

	var extractErr *ExtractError
	if !errors.As(err, &extractErr) {
		t.Fatalf("expected *ExtractError, got %T", err)
	}
	if got := int(extractErr.ExitCode); got != 2 {
		t.Errorf("exit code = %d, want 2", got)
	}
	if !strings.Contains(extractErr.Diagnostics(), "CRC failed") {
		t.Errorf("diagnostics missing stderr: %q", extractErr.Diagnostics())
	}
	if !strings.Contains(extractErr.Diagnostics(), "scanning") {
		t.Errorf("diagnostics missing stdout: %q", extractErr.Diagnostics())
	}
}

// writeFakeTool writes an executable stand-in for 7z into a temp dir.
func writeFakeTool(t *testing.T, script string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "7z")
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func requireUnix(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake shell-script tool requires a Unix shell")
	}
}
