package app

import (
	"context"
	"io/fs"

	"exifmgr/internal/tags"
)

type FileSystem interface {
	WalkDir(root string, fn fs.WalkDirFunc) error
	Stat(path string) (fs.FileInfo, error)
	Exists(path string) (bool, error)
	Abs(path string) (string, error)
}

// Exiftool runs the external tool once per call.
type Exiftool interface {
	Read(ctx context.Context, list []tags.Tag, file string) (tags.Values, error)
	Write(ctx context.Context, values tags.Values, file string) error
}

type TagReader interface {
	ReadTags(ctx context.Context, list []tags.Tag, file string) (tags.Values, error)
}

type TagWriter interface {
	WriteTags(ctx context.Context, file string, values tags.Values) (bool, error)
}
