package app

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"

	"exifmgr/internal/domain"
	appErrors "exifmgr/internal/errors"
	"exifmgr/internal/logging"
	"exifmgr/internal/tags"
)

// Executor applies one set of tag values to many files, one file at a time.
type Executor struct {
	FS         FileSystem
	Writer     TagWriter
	Logger     logging.Logger
	OnProgress ProgressFunc
}

// Plan expands directories into the images they contain. Plain file
// arguments are kept whatever their extension; exiftool decides.
func (e *Executor) Plan(paths []string, values tags.Values) (domain.WritePlan, error) {
	if e.FS == nil {
		return domain.WritePlan{}, errors.New("executor requires FS")
	}
	if len(values) == 0 {
		return domain.WritePlan{}, appErrors.New(appErrors.EmptyRequest, "plan", "no tag values supplied")
	}

	plan := domain.WritePlan{Values: values}
	seen := map[string]bool{}
	add := func(path, rel string) {
		if seen[path] {
			return
		}
		seen[path] = true
		plan.Items = append(plan.Items, domain.WriteItem{FileMeta: domain.NewFileMeta(path, rel)})
	}

	for _, p := range paths {
		info, err := e.FS.Stat(p)
		if err != nil {
			return domain.WritePlan{}, appErrors.Wrap(appErrors.NotFound, "stat", p, err)
		}
		if !info.IsDir() {
			add(p, filepath.Base(p))
			continue
		}
		root := p
		err = e.FS.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if d.IsDir() || !domain.IsImageExtension(filepath.Ext(d.Name())) {
				return nil
			}
			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				rel = filepath.Base(path)
			}
			add(path, rel)
			return nil
		})
		if err != nil {
			return domain.WritePlan{}, appErrors.Wrap(appErrors.IOFailure, "walk", root, err)
		}
	}
	e.Logger.Verbosef("Planned %d files for %d tags", len(plan.Items), len(values))
	return plan, nil
}

// Execute writes the plan values to every item in order and stops at the first failure.
func (e *Executor) Execute(ctx context.Context, plan *domain.WritePlan) error {
	if e.Writer == nil {
		return errors.New("executor requires Writer")
	}

	stop := e.Logger.Measure("Writing tags")
	defer stop()

	total := len(plan.Items)
	for i := range plan.Items {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		item := &plan.Items[i]
		if _, err := e.Writer.WriteTags(ctx, item.FileMeta.SourcePath, plan.Values); err != nil {
			item.Err = err
			return err
		}
		item.Done = true
		if e.OnProgress != nil {
			e.OnProgress(i+1, total)
		}
	}
	return nil
}
