package exiftool

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	appErrors "exifmgr/internal/errors"
	"exifmgr/internal/logging"
	"exifmgr/internal/tags"
)

// fakeTool writes an executable shell script standing in for exiftool.
func fakeTool(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fakes need a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "exiftool")
	script := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write fake tool: %v", err)
	}
	return path
}

func TestRunCapturesBothStreams(t *testing.T) {
	path := fakeTool(t, `echo "out $1"; echo "err" 1>&2; exit 3`)
	var logBuf bytes.Buffer
	runner := Runner{Path: path, Logger: logging.New(&logBuf, true)}

	res, err := runner.Run(context.Background(), []string{"-s"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(res.Stdout) != "out -s\n" {
		t.Fatalf("unexpected stdout %q", res.Stdout)
	}
	if string(res.Stderr) != "err\n" {
		t.Fatalf("unexpected stderr %q", res.Stderr)
	}
	if res.ExitCode != 3 {
		t.Fatalf("expected exit code 3, got %d", res.ExitCode)
	}
	if !strings.Contains(logBuf.String(), "Trace: exec "+path+" -s") {
		t.Fatalf("expected command line in trace log, got %q", logBuf.String())
	}
}

func TestRunMissingBinary(t *testing.T) {
	runner := Runner{Path: filepath.Join(t.TempDir(), "no-such-exiftool")}
	_, err := runner.Run(context.Background(), nil)
	if !appErrors.Is(err, appErrors.Process) {
		t.Fatalf("expected %s, got %v", appErrors.Process, err)
	}
}

func TestRunTimeoutKillsProcess(t *testing.T) {
	path := fakeTool(t, "exec sleep 10")
	runner := Runner{Path: path, Timeout: 100 * time.Millisecond}

	start := time.Now()
	_, err := runner.Run(context.Background(), nil)
	if !appErrors.Is(err, appErrors.Process) {
		t.Fatalf("expected %s, got %v", appErrors.Process, err)
	}
	if !strings.Contains(err.Error(), "timed out") {
		t.Fatalf("expected timeout message, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Fatalf("run took %s, expected the process to be killed", elapsed)
	}
}

func TestRunCancelledContext(t *testing.T) {
	path := fakeTool(t, "exec sleep 10")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Runner{Path: path}.Run(ctx, nil)
	if !appErrors.Is(err, appErrors.Process) {
		t.Fatalf("expected %s, got %v", appErrors.Process, err)
	}
}

func TestCheckWriteStderr(t *testing.T) {
	tests := []struct {
		name    string
		stderr  string
		wantErr bool
	}{
		{name: "empty", stderr: ""},
		{name: "blank lines", stderr: "\n\n"},
		{name: "warning", stderr: "Warning: [minor] Ignored empty rational value\n"},
		{name: "warning then error", stderr: "Warning: minor\nError: later\n"},
		{name: "error", stderr: "Error: File not found - /photos/a.jpg\n", wantErr: true},
		{name: "lowercase warning", stderr: "warning: odd\n", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckWriteStderr([]byte(tc.stderr))
			if tc.wantErr {
				if !appErrors.Is(err, appErrors.ToolReported) {
					t.Fatalf("expected %s, got %v", appErrors.ToolReported, err)
				}
				if !strings.Contains(err.Error(), strings.TrimSpace(tc.stderr)) {
					t.Fatalf("expected stderr text in error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestToolReadParsesOutput(t *testing.T) {
	path := fakeTool(t, `
for last; do :; done
echo "MIMEType                        : image/jpeg"
echo "GPSLatitude                     : 33 deg 52' 12.00\" S"
echo "Warning: [minor] odd maker notes" 1>&2
echo "FileName: $last" > "$(dirname "$0")/args.txt"
`)
	tool := New(Runner{Path: path})

	got, err := tool.Read(context.Background(), []tags.Tag{tags.MIMEType, tags.GPSLatitude}, "/photos/a.jpg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := tags.Values{tags.MIMEType: "image/jpeg", tags.GPSLatitude: "-33.87"}
	if d := cmp.Diff(want, got); d != "" {
		t.Fatalf("unexpected values (-want +got):\n%s", d)
	}

	recorded, err := os.ReadFile(filepath.Join(filepath.Dir(path), "args.txt"))
	if err != nil {
		t.Fatalf("read recorded args: %v", err)
	}
	if strings.TrimSpace(string(recorded)) != "FileName: /photos/a.jpg" {
		t.Fatalf("expected file as last argument, got %q", recorded)
	}
}

func TestToolReadUnknownLabel(t *testing.T) {
	path := fakeTool(t, `echo "Make: Canon"`)
	_, err := New(Runner{Path: path}).Read(context.Background(), []tags.Tag{tags.MIMEType}, "/photos/a.jpg")
	if !appErrors.Is(err, appErrors.UnrecognizedTag) {
		t.Fatalf("expected %s, got %v", appErrors.UnrecognizedTag, err)
	}
}

func TestToolWriteToleratesWarnings(t *testing.T) {
	path := fakeTool(t, `echo "    1 image files updated"; echo "Warning: [minor] Fixed incorrect URN" 1>&2`)
	err := New(Runner{Path: path}).Write(context.Background(), tags.Values{tags.ModifyDate: "2020:01:01 00:00:00"}, "/photos/a.jpg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestToolWriteReportsErrors(t *testing.T) {
	path := fakeTool(t, `echo "Error: File not found - /photos/a.jpg" 1>&2; exit 1`)
	err := New(Runner{Path: path}).Write(context.Background(), tags.Values{tags.ModifyDate: "2020:01:01 00:00:00"}, "/photos/a.jpg")
	if !appErrors.Is(err, appErrors.ToolReported) {
		t.Fatalf("expected %s, got %v", appErrors.ToolReported, err)
	}
	if !strings.Contains(err.Error(), "File not found") {
		t.Fatalf("expected tool text in error, got %v", err)
	}
}

func TestToolWriteSilentFailure(t *testing.T) {
	path := fakeTool(t, "exit 2")
	err := New(Runner{Path: path}).Write(context.Background(), tags.Values{tags.ModifyDate: "x"}, "/photos/a.jpg")
	if !appErrors.Is(err, appErrors.ToolReported) {
		t.Fatalf("expected %s, got %v", appErrors.ToolReported, err)
	}
}
