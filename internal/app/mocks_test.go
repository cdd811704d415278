package app

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"exifmgr/internal/tags"
)

type mockFS struct {
	entries []mockEntry
}

type mockEntry struct {
	path  string
	isDir bool
}

func (m mockFS) WalkDir(root string, fn fs.WalkDirFunc) error {
	for _, entry := range m.entries {
		rel, err := filepath.Rel(root, entry.path)
		if err != nil || strings.HasPrefix(rel, "..") {
			continue
		}
		dirEntry := mockDirEntry{name: filepath.Base(entry.path), isDir: entry.isDir}
		if err := fn(entry.path, dirEntry, nil); err != nil {
			return err
		}
	}
	return nil
}

func (m mockFS) Stat(path string) (fs.FileInfo, error) {
	for _, entry := range m.entries {
		if entry.path == path {
			return mockFileInfo{name: filepath.Base(path), isDir: entry.isDir}, nil
		}
	}
	return nil, fs.ErrNotExist
}

func (m mockFS) Exists(path string) (bool, error) {
	_, err := m.Stat(path)
	return err == nil, nil
}

func (m mockFS) Abs(path string) (string, error) {
	if filepath.IsAbs(path) {
		return path, nil
	}
	return filepath.Join("/work", path), nil
}

type readCall struct {
	list []tags.Tag
	file string
}

type writeCall struct {
	values tags.Values
	file   string
}

type mockTool struct {
	mu       sync.Mutex
	reads    []readCall
	writes   []writeCall
	values   map[string]tags.Values
	readErr  map[string]error
	writeErr error
	delay    time.Duration
}

func (m *mockTool) Read(ctx context.Context, list []tags.Tag, file string) (tags.Values, error) {
	m.mu.Lock()
	m.reads = append(m.reads, readCall{list: list, file: file})
	m.mu.Unlock()

	if m.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(m.delay):
		}
	}
	if err := m.readErr[file]; err != nil {
		return nil, err
	}
	if v, ok := m.values[file]; ok {
		return v, nil
	}
	return tags.Values{}, nil
}

func (m *mockTool) Write(ctx context.Context, values tags.Values, file string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes = append(m.writes, writeCall{values: values, file: file})
	return m.writeErr
}

func (m *mockTool) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.reads) + len(m.writes)
}

type mockDirEntry struct {
	name  string
	isDir bool
}

func (m mockDirEntry) Name() string               { return m.name }
func (m mockDirEntry) IsDir() bool                { return m.isDir }
func (m mockDirEntry) Type() fs.FileMode          { return 0 }
func (m mockDirEntry) Info() (fs.FileInfo, error) { return nil, nil }

type mockFileInfo struct {
	name  string
	isDir bool
}

func (m mockFileInfo) Name() string       { return m.name }
func (m mockFileInfo) Size() int64        { return 0 }
func (m mockFileInfo) Mode() fs.FileMode  { return 0 }
func (m mockFileInfo) ModTime() time.Time { return time.Time{} }
func (m mockFileInfo) IsDir() bool        { return m.isDir }
func (m mockFileInfo) Sys() interface{}   { return nil }

var errBoom = errors.New("boom")
