package engine

import (
	"os"
	"path/filepath"
)

// Loader resolves a template name to its source text and on-disk path.
type Loader interface {
	Source(name string) (src string, path string, err error)
}

// FileSystemLoader resolves template names against an ordered list of
// directories, returning the first match.
type FileSystemLoader struct {
	paths []string
}

// NewFileSystemLoader creates a loader over the given directories,
// searched in order.
func NewFileSystemLoader(paths ...string) *FileSystemLoader {
	return &FileSystemLoader{paths: paths}
}

// Source returns the content and resolved path for name, or *NotFoundError
// when no search directory contains it.
func (l *FileSystemLoader) Source(name string) (string, string, error) {
	for _, dir := range l.paths {
		candidate := filepath.Join(dir, name)
		info, err := os.Stat(candidate)
		if err != nil || info.IsDir() {
			continue
		}

		data, err := os.ReadFile(candidate)
		if err != nil {
			return "", "", err
		}
		return string(data), candidate, nil
	}
	return "", "", &NotFoundError{Name: name}
}
