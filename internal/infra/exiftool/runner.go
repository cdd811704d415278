package exiftool

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	appErrors "exifmgr/internal/errors"
	"exifmgr/internal/logging"
)

const (
	DefaultPath    = "exiftool"
	DefaultTimeout = 30 * time.Second

	// waitDelay bounds how long Wait keeps draining pipes after the process
	// was killed, in case a grandchild still holds them open.
	waitDelay = 2 * time.Second
)

// Runner executes exiftool once per call and captures both output streams.
type Runner struct {
	Path    string
	Timeout time.Duration
	Logger  logging.Logger
}

type Result struct {
	Args     []string
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

func (r Runner) Run(ctx context.Context, args []string) (Result, error) {
	path := r.Path
	if path == "" {
		path = DefaultPath
	}
	resolved, err := exec.LookPath(path)
	if err != nil {
		return Result{}, appErrors.Wrap(appErrors.Process, "lookup", path, err)
	}

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(runCtx, resolved, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay

	r.Logger.Tracef("exec %s", commandLine(resolved, args))
	stop := r.Logger.Measure("exiftool")
	runErr := cmd.Run()
	stop()

	result := Result{
		Args:     cmd.Args,
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		ExitCode: cmd.ProcessState.ExitCode(),
	}
	if stdout.Len() > 0 {
		r.Logger.Tracef("stdout:\n%s", stdout.String())
	}
	if stderr.Len() > 0 {
		r.Logger.Tracef("stderr:\n%s", stderr.String())
	}

	if ctxErr := runCtx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) && ctx.Err() == nil {
			ctxErr = fmt.Errorf("timed out after %s: %w", timeout, ctxErr)
		}
		return result, appErrors.Wrap(appErrors.Process, "run", resolved, ctxErr)
	}
	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			// The caller decides what a non-zero exit means for its mode.
			return result, nil
		}
		return result, appErrors.Wrap(appErrors.Process, "run", resolved, runErr)
	}
	return result, nil
}

func commandLine(path string, args []string) string {
	quoted := make([]string, 0, len(args)+1)
	quoted = append(quoted, path)
	for _, arg := range args {
		if strings.ContainsAny(arg, " \t\"'") {
			arg = fmt.Sprintf("%q", arg)
		}
		quoted = append(quoted, arg)
	}
	return strings.Join(quoted, " ")
}

// CheckWriteStderr accepts empty stderr or stderr that begins with
// exiftool's "Warning" prefix. Lines are joined without separators before
// the prefix check, so a warning followed by an error still passes.
func CheckWriteStderr(stderr []byte) error {
	lines := strings.Split(strings.ReplaceAll(string(stderr), "\r\n", "\n"), "\n")
	joined := strings.TrimSpace(strings.Join(lines, ""))
	if joined == "" || strings.HasPrefix(joined, "Warning") {
		return nil
	}
	return appErrors.New(appErrors.ToolReported, "write", "%s", strings.TrimSpace(string(stderr)))
}
