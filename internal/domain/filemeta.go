package domain

import (
	"path/filepath"
	"strings"
)

type FileMeta struct {
	SourcePath   string
	RelativePath string
	Name         string
	Ext          string
	IsRAW        bool
	IsJPEG       bool
}

func NewFileMeta(sourcePath, relativePath string) FileMeta {
	name := filepath.Base(sourcePath)
	ext := strings.ToLower(filepath.Ext(name))

	return FileMeta{
		SourcePath:   sourcePath,
		RelativePath: relativePath,
		Name:         name,
		Ext:          ext,
		IsRAW:        IsRawExtension(ext),
		IsJPEG:       IsJpegExtension(ext),
	}
}

func IsRawExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ".arw", ".cr2", ".cr3", ".nef", ".raf", ".rw2", ".orf", ".dng":
		return true
	default:
		return false
	}
}

func IsJpegExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg":
		return true
	default:
		return false
	}
}

// IsImageExtension reports whether exiftool should be asked about the file.
func IsImageExtension(ext string) bool {
	if IsRawExtension(ext) || IsJpegExtension(ext) {
		return true
	}
	switch strings.ToLower(ext) {
	case ".heic", ".heif", ".png", ".tif", ".tiff", ".webp":
		return true
	default:
		return false
	}
}
