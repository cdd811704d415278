package app

import (
	"context"
	"errors"

	appErrors "exifmgr/internal/errors"
	"exifmgr/internal/gps"
	"exifmgr/internal/logging"
	"exifmgr/internal/tags"
)

// Manager is the entry point for reading and writing tags of a single file.
// Calls against the same file must be serialized by the caller.
type Manager struct {
	Tool   Exiftool
	FS     FileSystem
	Logger logging.Logger
}

func NewManager(tool Exiftool, filesystem FileSystem, logger logging.Logger) *Manager {
	return &Manager{Tool: tool, FS: filesystem, Logger: logger}
}

// ReadTags returns the values exiftool reports for the requested tags.
// Tags the file does not carry are absent from the result.
func (m *Manager) ReadTags(ctx context.Context, list []tags.Tag, file string) (tags.Values, error) {
	if err := m.check(); err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, appErrors.New(appErrors.EmptyRequest, "read", "no tags requested")
	}
	for _, t := range list {
		if !t.Valid() {
			return nil, appErrors.New(appErrors.UnrecognizedTag, "read", "tag %d is not in the catalog", int(t))
		}
		if !t.Readable() {
			return nil, appErrors.New(appErrors.UnmanagedTag, "read", "tag %s cannot be read", t)
		}
	}

	path, err := m.resolve("read", file)
	if err != nil {
		return nil, err
	}

	list = tags.Unique(list)
	m.Logger.Verbosef("Reading %d tags from %s", len(list), path)
	return m.Tool.Read(ctx, list, path)
}

// WriteTags overwrites the given tags in place. Warnings from exiftool are
// tolerated; any other stderr output fails the call.
func (m *Manager) WriteTags(ctx context.Context, file string, values tags.Values) (bool, error) {
	if err := m.check(); err != nil {
		return false, err
	}
	if len(values) == 0 {
		return false, appErrors.New(appErrors.EmptyRequest, "write", "no tag values supplied")
	}
	for t := range values {
		if !t.Valid() {
			return false, appErrors.New(appErrors.UnrecognizedTag, "write", "tag %d is not in the catalog", int(t))
		}
	}

	path, err := m.resolve("write", file)
	if err != nil {
		return false, err
	}

	m.Logger.Verbosef("Writing %d tags to %s", len(values), path)
	if err := m.Tool.Write(ctx, values, path); err != nil {
		return false, err
	}
	return true, nil
}

// GPSToTags converts a coordinate into the four tags needed to write it.
func (m *Manager) GPSToTags(c gps.Coordinate) tags.Values {
	return gps.ToSexagesimalTags(c)
}

// TagsToGPS returns a coordinate when both decimal latitude and longitude are present.
func (m *Manager) TagsToGPS(values tags.Values) (gps.Coordinate, bool, error) {
	return gps.FromTags(values)
}

func (m *Manager) ReadGPS(ctx context.Context, file string) (gps.Coordinate, bool, error) {
	values, err := m.ReadTags(ctx, []tags.Tag{tags.GPSLatitude, tags.GPSLongitude}, file)
	if err != nil {
		return gps.Coordinate{}, false, err
	}
	return gps.FromTags(values)
}

func (m *Manager) WriteGPS(ctx context.Context, file string, c gps.Coordinate) error {
	if err := c.Validate(); err != nil {
		return err
	}
	_, err := m.WriteTags(ctx, file, gps.ToSexagesimalTags(c))
	return err
}

func (m *Manager) check() error {
	if m == nil || m.Tool == nil {
		return appErrors.Wrap(appErrors.Internal, "manager", "", errors.New("manager requires Tool"))
	}
	return nil
}

// resolve makes file absolute so exiftool never mistakes it for an option,
// and fails early when it does not exist.
func (m *Manager) resolve(op, file string) (string, error) {
	if file == "" {
		return "", appErrors.New(appErrors.NotFound, op, "no file given")
	}
	if m.FS == nil {
		return file, nil
	}
	path, err := m.FS.Abs(file)
	if err != nil {
		return "", appErrors.Wrap(appErrors.IOFailure, op, file, err)
	}
	exists, err := m.FS.Exists(path)
	if err != nil {
		return "", appErrors.Wrap(appErrors.IOFailure, op, path, err)
	}
	if !exists {
		return "", appErrors.Wrap(appErrors.NotFound, op, path, errors.New("file does not exist"))
	}
	return path, nil
}
