package domain

import (
	"exifmgr/internal/gps"
	"exifmgr/internal/tags"
)

// ScanItem is the outcome of reading one file. Err is set instead of Values
// when the read failed.
type ScanItem struct {
	FileMeta   FileMeta
	Values     tags.Values
	Coordinate *gps.Coordinate
	Err        error
}

type ScanResult struct {
	Root      string
	Requested []tags.Tag
	Items     []ScanItem
	Skipped   int
	Failed    int
	WithGPS   int
}

// WriteItem is one file to update with the values of a WritePlan.
type WriteItem struct {
	FileMeta FileMeta
	Done     bool
	Err      error
}

type WritePlan struct {
	Values tags.Values
	Items  []WriteItem
}
