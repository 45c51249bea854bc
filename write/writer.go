// Package write handles destination-side filesystem operations for tree
// rendering: creating output directories on demand and opening destination
// files for truncating writes.
package write

import (
	"fmt"
	"os"
)

type Writer struct{}

func New() *Writer {
	return &Writer{}
}

// EnsureDir makes sure path exists, is a directory, and is writable,
// creating it (and missing parents) when absent. Writability is verified
// eagerly with a probe file so an unusable destination fails the run
// before any subtree work starts.
func (w *Writer) EnsureDir(path string) error {
	info, err := os.Stat(path)
	switch {
	case os.IsNotExist(err):
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("creating directory: %w", err)
		}
	case err != nil:
		return err
	case !info.IsDir():
		return fmt.Errorf("destination exists and is not a directory")
	}

	probe, err := os.CreateTemp(path, ".loom-probe-*")
	if err != nil {
		return fmt.Errorf("directory is not writable: %w", err)
	}
	name := probe.Name()
	probe.Close()
	os.Remove(name)
	return nil
}

// CreateFile opens path for binary writing, creating or truncating it.
func (w *Writer) CreateFile(path string) (*os.File, error) {
	return os.Create(path)
}
