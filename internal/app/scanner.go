package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"

	"exifmgr/internal/domain"
	appErrors "exifmgr/internal/errors"
	"exifmgr/internal/gps"
	"exifmgr/internal/logging"
	"exifmgr/internal/tags"
)

// ProgressFunc is called during scanning and writing to report progress
type ProgressFunc func(current, total int)

// Scanner reads the same tags from every image below a directory.
type Scanner struct {
	FS         FileSystem
	Reader     TagReader
	Workers    int
	Logger     logging.Logger
	OnProgress ProgressFunc
}

func (s *Scanner) Scan(ctx context.Context, root string, list []tags.Tag) (domain.ScanResult, error) {
	if s.FS == nil || s.Reader == nil {
		return domain.ScanResult{}, errors.New("scanner requires FS and Reader")
	}
	if len(list) == 0 {
		return domain.ScanResult{}, appErrors.New(appErrors.EmptyRequest, "scan", "no tags requested")
	}
	list = tags.Unique(list)

	stop := s.Logger.Measure("Scanning " + root)
	defer stop()

	metas, skipped, err := s.collect(root)
	if err != nil {
		return domain.ScanResult{}, err
	}
	s.Logger.Verbosef("Found %d image files in %s (%d other files skipped)", len(metas), root, skipped)

	items, err := s.read(ctx, metas, list)
	if err != nil {
		return domain.ScanResult{}, err
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].FileMeta.RelativePath < items[j].FileMeta.RelativePath
	})

	result := domain.ScanResult{
		Root:      root,
		Requested: list,
		Items:     items,
		Skipped:   skipped,
	}
	for _, item := range items {
		if item.Err != nil {
			result.Failed++
		}
		if item.Coordinate != nil {
			result.WithGPS++
		}
	}
	s.Logger.Verbosef("Scanned %d files, %d failed, %d with GPS", len(items), result.Failed, result.WithGPS)
	return result, nil
}

func (s *Scanner) collect(root string) ([]domain.FileMeta, int, error) {
	var metas []domain.FileMeta
	skipped := 0

	err := s.FS.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		if !domain.IsImageExtension(filepath.Ext(d.Name())) {
			skipped++
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = filepath.Base(path)
		}
		metas = append(metas, domain.NewFileMeta(path, rel))
		return nil
	})
	if err != nil {
		return nil, 0, appErrors.Wrap(appErrors.IOFailure, "walk", root, err)
	}
	return metas, skipped, nil
}

// read hands each file to exactly one worker, so no file sees concurrent exiftool runs.
func (s *Scanner) read(ctx context.Context, metas []domain.FileMeta, list []tags.Tag) ([]domain.ScanItem, error) {
	workerCount := s.Workers
	if workerCount <= 0 {
		workerCount = runtime.NumCPU()
	}
	if workerCount < 1 {
		workerCount = 1
	}
	s.Logger.Verbosef("Using %d exiftool workers", workerCount)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan domain.FileMeta)
	results := make(chan domain.ScanItem)

	for i := 0; i < workerCount; i++ {
		go func() {
			for meta := range jobs {
				item := domain.ScanItem{FileMeta: meta}
				values, err := s.Reader.ReadTags(ctx, list, meta.SourcePath)
				if err != nil {
					item.Err = err
				} else {
					item.Values = values
					coord, ok, gpsErr := gps.FromTags(values)
					if gpsErr != nil {
						item.Err = gpsErr
					} else if ok {
						item.Coordinate = &coord
					}
				}
				select {
				case results <- item:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, meta := range metas {
			select {
			case <-ctx.Done():
				return
			case jobs <- meta:
			}
		}
	}()

	items := make([]domain.ScanItem, 0, len(metas))
	total := len(metas)
	for i := 0; i < total; i++ {
		var item domain.ScanItem
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case item = <-results:
		}
		if item.Err != nil {
			// A per-file timeout is recorded; cancellation of the whole scan is not.
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			s.Logger.Verbosef("%s: %v", item.FileMeta.RelativePath, item.Err)
		}
		items = append(items, item)

		if s.OnProgress != nil {
			s.OnProgress(i+1, total)
		}
	}
	return items, nil
}

// ScanError summarizes the failed items of a scan.
func ScanError(result domain.ScanResult) error {
	if result.Failed == 0 {
		return nil
	}
	return fmt.Errorf("%d of %d files could not be read", result.Failed, len(result.Items))
}
