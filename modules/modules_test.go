package modules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeModule(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFileLoaderByName(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "project.yaml", "name: widget\nversion: 2\n")

	loader := NewFileLoader([]string{dir})
	bindings, err := loader.Load("project")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "widget", "version": 2}, bindings)
}

func TestFileLoaderSearchOrder(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	writeModule(t, first, "shared.yaml", "origin: first\n")
	writeModule(t, second, "shared.yaml", "origin: second\n")

	loader := NewFileLoader([]string{first, second})
	bindings, err := loader.Load("shared")
	require.NoError(t, err)
	assert.Equal(t, "first", bindings["origin"])
}

func TestFileLoaderByPath(t *testing.T) {
	dir := t.TempDir()
	path := writeModule(t, dir, "direct.yml", "key: value\n")

	loader := NewFileLoader(nil)
	bindings, err := loader.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "value", bindings["key"])
}

func TestFileLoaderNotFound(t *testing.T) {
	loader := NewFileLoader([]string{t.TempDir()})

	_, err := loader.Load("missing")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "missing", nf.Name)
}

func TestFileLoaderBadYAML(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "broken.yaml", "key: [unclosed\n")

	loader := NewFileLoader([]string{dir})
	_, err := loader.Load("broken")
	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "broken", le.Name)
}

func TestLoadAllLaterOverridesEarlier(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "base.yaml", "name: base\ncommon: kept\n")
	writeModule(t, dir, "override.yaml", "name: override\n")

	loader := NewFileLoader([]string{dir})
	merged, err := LoadAll(loader, []string{"base", "override"})
	require.NoError(t, err)
	assert.Equal(t, "override", merged["name"])
	assert.Equal(t, "kept", merged["common"])
}

func TestLoadAllEmpty(t *testing.T) {
	merged, err := LoadAll(NewFileLoader(nil), nil)
	require.NoError(t, err)
	assert.Nil(t, merged)
}

func TestLoadAllPropagatesNotFound(t *testing.T) {
	loader := NewFileLoader([]string{t.TempDir()})
	_, err := LoadAll(loader, []string{"absent"})
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
}
