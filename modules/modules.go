// Package modules loads named binding modules for template rendering.
//
// A module is a YAML document whose top-level mapping keys become variables
// in the render context. Modules are located by name through an ordered
// list of search directories, so shared context definitions can live next
// to the templates that use them or in a central include directory.
package modules

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Loader resolves a module identifier to its exported bindings.
type Loader interface {
	Load(name string) (map[string]any, error)
}

// NotFoundError reports a module that could not be located in any search
// directory.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("module not found: %s", e.Name)
}

// LoadError reports a module that was located but could not be decoded.
type LoadError struct {
	Name string
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("module %s (%s): %v", e.Name, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// FileLoader locates modules as <name>.yaml or <name>.yml files under an
// ordered list of search directories. The current directory is always
// searched first.
type FileLoader struct {
	logger *slog.Logger
	paths  []string
}

// FileLoaderOption configures a FileLoader.
type FileLoaderOption func(*FileLoader)

// WithLogger sets the logger used for module resolution diagnostics.
func WithLogger(logger *slog.Logger) FileLoaderOption {
	return func(l *FileLoader) {
		l.logger = logger
	}
}

// NewFileLoader creates a loader over the given search directories.
func NewFileLoader(searchPaths []string, opts ...FileLoaderOption) *FileLoader {
	l := &FileLoader{
		logger: slog.Default(),
		paths:  append([]string{"."}, searchPaths...),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load resolves name through the search directories and decodes the first
// match. A name that already points at an existing YAML file is used
// directly, which covers modules referenced by explicit path.
func (l *FileLoader) Load(name string) (map[string]any, error) {
	if hasYAMLExt(name) {
		if _, err := os.Stat(name); err == nil {
			return l.decode(name, name)
		}
		return nil, &NotFoundError{Name: name}
	}

	for _, dir := range l.paths {
		for _, ext := range []string{".yaml", ".yml"} {
			candidate := filepath.Join(dir, name+ext)
			l.logger.Debug("trying module candidate", "module", name, "path", candidate)
			if _, err := os.Stat(candidate); err == nil {
				return l.decode(name, candidate)
			}
		}
	}
	return nil, &NotFoundError{Name: name}
}

func (l *FileLoader) decode(name, path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Name: name, Path: path, Err: err}
	}

	var bindings map[string]any
	if err := yaml.Unmarshal(data, &bindings); err != nil {
		return nil, &LoadError{Name: name, Path: path, Err: err}
	}

	l.logger.Debug("loaded module", "module", name, "path", path, "bindings", len(bindings))
	return bindings, nil
}

// LoadAll loads the named modules in order and merges their bindings.
// Later modules silently shadow earlier ones on key collision.
func LoadAll(loader Loader, names []string) (map[string]any, error) {
	if len(names) == 0 {
		return nil, nil
	}

	merged := make(map[string]any)
	for _, name := range names {
		bindings, err := loader.Load(name)
		if err != nil {
			return nil, err
		}
		for k, v := range bindings {
			merged[k] = v
		}
	}
	return merged, nil
}

func hasYAMLExt(name string) bool {
	switch filepath.Ext(name) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
