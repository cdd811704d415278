package exiftool

import (
	"bytes"
	"context"

	appErrors "exifmgr/internal/errors"
	"exifmgr/internal/tags"
)

// Tool reads and writes tags through a Runner.
type Tool struct {
	Runner Runner
}

func New(runner Runner) Tool {
	return Tool{Runner: runner}
}

// Read runs exiftool in read mode. Stderr is logged but never fatal: exiftool
// reports a missing tag or an unsupported file there while still exiting.
func (t Tool) Read(ctx context.Context, list []tags.Tag, file string) (tags.Values, error) {
	res, err := t.Runner.Run(ctx, ReadArgs(list, file))
	if err != nil {
		return nil, err
	}
	if len(res.Stderr) > 0 {
		t.Runner.Logger.Verbosef("exiftool exited %d with stderr for %s", res.ExitCode, file)
	}
	values, err := Parse(bytes.NewReader(res.Stdout))
	if err != nil {
		return nil, appErrors.Wrap(appErrors.KindOf(err), "read", file, err)
	}
	return values, nil
}

// Write runs exiftool in write mode, overwriting file in place.
func (t Tool) Write(ctx context.Context, values tags.Values, file string) error {
	res, err := t.Runner.Run(ctx, WriteArgs(values, file))
	if err != nil {
		return err
	}
	if err := CheckWriteStderr(res.Stderr); err != nil {
		return appErrors.Wrap(appErrors.ToolReported, "write", file, err)
	}
	if res.ExitCode != 0 && len(bytes.TrimSpace(res.Stderr)) == 0 {
		return appErrors.New(appErrors.ToolReported, "write", "exiftool exited with status %d for %s", res.ExitCode, file)
	}
	return nil
}
