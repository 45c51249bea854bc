package engine

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileSystemLoaderSearchOrder(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	writeTemplate(t, first, "t.txt", "from first")
	writeTemplate(t, second, "t.txt", "from second")

	loader := NewFileSystemLoader(first, second)
	src, path, err := loader.Source("t.txt")
	if err != nil {
		t.Fatal(err)
	}
	if src != "from first" {
		t.Errorf("wrong search precedence, got %q", src)
	}
	if path != filepath.Join(first, "t.txt") {
		t.Errorf("resolved path = %q", path)
	}
}

func TestFileSystemLoaderSkipsDirectories(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	if err := os.Mkdir(filepath.Join(first, "entry"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeTemplate(t, second, "entry", "real template")

	loader := NewFileSystemLoader(first, second)
	src, _, err := loader.Source("entry")
	if err != nil {
		t.Fatal(err)
	}
	if src != "real template" {
		t.Errorf("directory should be skipped during resolution, got %q", src)
	}
}

func TestFileSystemLoaderNotFound(t *testing.T) {
	loader := NewFileSystemLoader(t.TempDir())
	_, _, err := loader.Source("ghost.txt")

	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %T: %v", err, err)
	}
	if nf.Name != "ghost.txt" {
		t.Errorf("Name = %q", nf.Name)
	}
}
