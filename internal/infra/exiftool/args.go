package exiftool

import (
	"exifmgr/internal/tags"
)

const (
	// FlagShort prints tag names instead of descriptions, one `Name: value` per line.
	FlagShort = "-s"
	// FlagOverwrite rewrites the file in place without a `_original` backup.
	FlagOverwrite = "-overwrite_original"
)

// ReadArgs builds the arguments for a read: -s, one -Field per tag, then the file.
func ReadArgs(list []tags.Tag, file string) []string {
	list = tags.Unique(list)
	args := make([]string, 0, len(list)+2)
	args = append(args, FlagShort)
	for _, t := range list {
		args = append(args, "-"+t.FieldName())
	}
	return append(args, file)
}

// WriteArgs builds the arguments for an in-place write: one -Field=value per
// tag, -overwrite_original, then the file.
func WriteArgs(values tags.Values, file string) []string {
	args := make([]string, 0, len(values)+2)
	for _, t := range values.Tags() {
		args = append(args, "-"+t.FieldName()+"="+values[t])
	}
	return append(args, FlagOverwrite, file)
}
