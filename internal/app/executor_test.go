package app

import (
	"context"
	"testing"

	appErrors "exifmgr/internal/errors"
	"exifmgr/internal/logging"
	"exifmgr/internal/tags"
)

func TestExecutorPlanExpandsDirectories(t *testing.T) {
	filesystem := mockFS{entries: []mockEntry{
		{path: "/photos", isDir: true},
		{path: "/photos/a.jpg"},
		{path: "/photos/readme.md"},
		{path: "/single.xmp"},
	}}
	executor := Executor{FS: filesystem}

	plan, err := executor.Plan([]string{"/photos", "/single.xmp", "/photos/a.jpg"}, tags.Values{tags.ModifyDate: "2020:01:01 00:00:00"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plan.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(plan.Items))
	}
	if plan.Items[0].FileMeta.SourcePath != "/photos/a.jpg" || plan.Items[1].FileMeta.SourcePath != "/single.xmp" {
		t.Fatalf("unexpected items %+v", plan.Items)
	}
}

func TestExecutorPlanRequiresValues(t *testing.T) {
	executor := Executor{FS: mockFS{}}
	_, err := executor.Plan([]string{"/photos"}, nil)
	if !appErrors.Is(err, appErrors.EmptyRequest) {
		t.Fatalf("expected %s, got %v", appErrors.EmptyRequest, err)
	}
}

func TestExecutorPlanMissingPath(t *testing.T) {
	executor := Executor{FS: mockFS{}}
	_, err := executor.Plan([]string{"/nope.jpg"}, tags.Values{tags.ModifyDate: "x"})
	if !appErrors.Is(err, appErrors.NotFound) {
		t.Fatalf("expected %s, got %v", appErrors.NotFound, err)
	}
}

func TestExecutorStopsAtFirstFailure(t *testing.T) {
	filesystem := mockFS{entries: []mockEntry{
		{path: "/photos/a.jpg"},
		{path: "/photos/b.jpg"},
	}}
	tool := &mockTool{writeErr: errBoom}
	executor := Executor{
		FS:     filesystem,
		Writer: NewManager(tool, filesystem, logging.Logger{}),
	}

	plan, err := executor.Plan([]string{"/photos/a.jpg", "/photos/b.jpg"}, tags.Values{tags.ModifyDate: "x"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := executor.Execute(context.Background(), &plan); err == nil {
		t.Fatalf("expected error")
	}
	if len(tool.writes) != 1 {
		t.Fatalf("expected 1 write attempt, got %d", len(tool.writes))
	}
	if plan.Items[0].Err == nil || plan.Items[1].Done {
		t.Fatalf("unexpected item state %+v", plan.Items)
	}
}

func TestExecutorWritesAll(t *testing.T) {
	filesystem := mockFS{entries: []mockEntry{
		{path: "/photos/a.jpg"},
		{path: "/photos/b.jpg"},
	}}
	tool := &mockTool{}
	var last int
	executor := Executor{
		FS:         filesystem,
		Writer:     NewManager(tool, filesystem, logging.Logger{}),
		OnProgress: func(current, total int) { last = current },
	}

	plan, err := executor.Plan([]string{"/photos/a.jpg", "/photos/b.jpg"}, tags.Values{tags.ModifyDate: "x"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := executor.Execute(context.Background(), &plan); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if last != 2 || !plan.Items[0].Done || !plan.Items[1].Done {
		t.Fatalf("expected both items done, progress=%d", last)
	}
}
