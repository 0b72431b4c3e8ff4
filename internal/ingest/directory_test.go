package ingest

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
		t.Fatalf("touch %s: %v", name, err)
	}
}

func TestListImages(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "b.png")
	touch(t, dir, "a.JPG")
	touch(t, dir, "c.jpeg")
	touch(t, dir, "notes.txt")
	touch(t, dir, "scan.pdf")
	touch(t, dir, ".hidden.png")
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0755); err != nil {
		t.Fatal(err)
	}
	touch(t, dir, filepath.Join("sub", "nested.png"))

	jobs, err := ListImages(dir)
	if err != nil {
		t.Fatalf("ListImages: %v", err)
	}

	want := []string{"a.JPG", "b.png", "c.jpeg"}
	if len(jobs) != len(want) {
		t.Fatalf("got %d jobs, want %d: %+v", len(jobs), len(want), jobs)
	}
	for i, name := range want {
		if jobs[i].Filename != name {
			t.Errorf("jobs[%d] = %q, want %q", i, jobs[i].Filename, name)
		}
		if jobs[i].Path != filepath.Join(dir, name) {
			t.Errorf("jobs[%d].Path = %q", i, jobs[i].Path)
		}
	}
}

func TestListImagesEmptyRoot(t *testing.T) {
	if _, err := ListImages("  "); err == nil {
		t.Error("expected error for blank root")
	}
	if _, err := ListImages(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing directory")
	}
}
