package joblog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestAllocateCreatesRootAndNamesLog(t *testing.T) {
	root := filepath.Join(t.TempDir(), "logs")
	alloc := New(root)
	alloc.SetNowFunc(func() time.Time {
		return time.Date(2026, 8, 24, 10, 30, 45, 0, time.UTC)
	})

	path, err := alloc.Allocate("/data/projects")
	if err != nil {
		t.Fatalf("Allocate error: %v", err)
	}
	want := filepath.Join(root, "Copy-projects-2026-08-24_10-30-45.log")
	if path != want {
		t.Fatalf("Allocate = %q; want %q", path, want)
	}
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		t.Fatalf("log root was not created: %v", err)
	}
}

func TestAllocateSameSecondCollides(t *testing.T) {
	alloc := New(filepath.Join(t.TempDir(), "logs"))
	fixed := time.Date(2026, 8, 24, 11, 0, 0, 0, time.UTC)
	alloc.SetNowFunc(func() time.Time { return fixed })

	first, err := alloc.Allocate("/data/projects")
	if err != nil {
		t.Fatalf("Allocate error: %v", err)
	}
	second, err := alloc.Allocate("/data/projects")
	if err != nil {
		t.Fatalf("Allocate error: %v", err)
	}
	// Same-second collision is a documented limitation, not a bug.
	if first != second {
		t.Fatalf("expected colliding names within one second, got %q and %q", first, second)
	}
}

func TestAllocateFatalWhenRootUnwritable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	// The root path passes through a regular file, so MkdirAll fails.
	alloc := New(filepath.Join(blocker, "logs"))
	_, err := alloc.Allocate("/data/projects")
	if err == nil {
		t.Fatalf("expected fatal error")
	}
	var fatal *FatalError
	if !errors.As(err, &fatal) {
		t.Fatalf("expected *FatalError, got %T: %v", err, err)
	}
}

func TestLeafName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/data/projects", "projects"},
		{"/data/projects/", "projects"},
		{`C:\Data`, "Data"},
		{`D:\Backup\Photos`, "Photos"},
		{"/", "root"},
		{"", "root"},
	}
	for _, tt := range tests {
		if got := leafName(tt.in); got != tt.want {
			t.Errorf("leafName(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}
