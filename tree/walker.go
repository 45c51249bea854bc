// Package tree renders a source directory of templates into a destination
// directory, recursively. Each source entry is classified as a naming
// directive, an ignored directory, a subdirectory to recurse into, or a
// content file to render. Naming directives are companion templates named
// <entry> + ".j2n" whose rendered output supplies the destination name for
// their sibling entry.
package tree

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/cpcf/loom/postprocess"
	"github.com/cpcf/loom/processors"
	"github.com/cpcf/loom/vars"
	"github.com/cpcf/loom/write"
)

// NameSuffix marks naming directives. Matching is case-insensitive.
const NameSuffix = ".j2n"

// DefaultIgnoreDirs are version-control metadata directories that are
// never descended into and never appear in the destination tree.
var DefaultIgnoreDirs = []string{".git", ".hg", ".svn"}

// Renderer is the template engine boundary the walker renders through.
type Renderer interface {
	Render(templatePath string, context map[string]any) (string, error)
}

// Walker converts one source tree into one destination tree using a single
// shared context. It is single-threaded; a walk either completes or stops
// at the first fatal error.
//
// Source trees containing symlink cycles are not detected and recurse
// without bound, matching the behavior this tool is modeled on.
type Walker struct {
	logger     *slog.Logger
	renderer   Renderer
	context    *vars.Context
	searchPath []string
	lineSep    string
	writer     *write.Writer
	newline    *processors.Newline
	post       *postprocess.Chain
	ignore     map[string]struct{}
}

// Option configures a Walker.
type Option func(*Walker)

// WithLogger sets the logger for walk diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Walker) {
		w.logger = logger
	}
}

// WithSearchPath sets the extra template search directories recorded in
// each file's per-render context.
func WithSearchPath(dirs []string) Option {
	return func(w *Walker) {
		w.searchPath = dirs
	}
}

// WithLineSeparator sets the line separator applied to rendered output.
func WithLineSeparator(sep string) Option {
	return func(w *Walker) {
		w.lineSep = sep
	}
}

// WithPostProcessors sets additional content processors, run after newline
// normalization.
func WithPostProcessors(chain *postprocess.Chain) Option {
	return func(w *Walker) {
		w.post = chain
	}
}

// WithIgnoreDirs replaces the default set of ignored directory names.
func WithIgnoreDirs(names []string) Option {
	return func(w *Walker) {
		w.ignore = make(map[string]struct{}, len(names))
		for _, n := range names {
			w.ignore[n] = struct{}{}
		}
	}
}

// NewWalker creates a Walker rendering through renderer with the given
// shared context.
func NewWalker(renderer Renderer, context *vars.Context, opts ...Option) *Walker {
	w := &Walker{
		logger:   slog.Default(),
		renderer: renderer,
		context:  context,
		lineSep:  "\n",
		writer:   write.New(),
	}
	w.ignore = make(map[string]struct{}, len(DefaultIgnoreDirs))
	for _, n := range DefaultIgnoreDirs {
		w.ignore[n] = struct{}{}
	}

	for _, opt := range opts {
		opt(w)
	}

	w.newline = processors.NewNewline(w.lineSep)
	return w
}

// RenderTree renders the template tree rooted at srcDir into destDir,
// creating destDir if needed. Entries are visited in lexical order
// (os.ReadDir's ordering), so a walk over an unchanged source tree with an
// unchanged context reproduces its output byte for byte.
func (w *Walker) RenderTree(srcDir, destDir string) error {
	w.logger.Debug("rendering tree", "source", srcDir, "dest", destDir)

	if err := w.writer.EnsureDir(destDir); err != nil {
		return &DestinationError{Path: destDir, Op: "create", Err: err}
	}

	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return fmt.Errorf("reading source directory %s: %w", srcDir, err)
	}

	// First pass: set naming directives aside, keyed by the sibling entry
	// they rename. They are consumed through resolveName only and are
	// never copied standalone.
	directives := make(map[string]string)
	regular := entries[:0]
	for _, e := range entries {
		if isNameDirective(e.Name()) {
			target := e.Name()[:len(e.Name())-len(NameSuffix)]
			directives[target] = filepath.Join(srcDir, e.Name())
			continue
		}
		regular = append(regular, e)
	}

	for _, e := range regular {
		srcPath := filepath.Join(srcDir, e.Name())

		if e.IsDir() {
			if _, skip := w.ignore[e.Name()]; skip {
				w.logger.Debug("skipping ignored directory", "path", srcPath)
				continue
			}
			destName, err := w.resolveName(directives, e.Name())
			if err != nil {
				return err
			}
			if err := w.RenderTree(srcPath, filepath.Join(destDir, destName)); err != nil {
				return err
			}
			continue
		}

		destName, err := w.resolveName(directives, e.Name())
		if err != nil {
			return err
		}
		if err := w.renderFile(srcPath, filepath.Join(destDir, destName)); err != nil {
			return err
		}
	}
	return nil
}

// resolveName returns the destination name for an entry: the trimmed
// render of its naming directive when one exists, the entry name itself
// otherwise. The rendered name is used verbatim; path separators in it
// are not sanitized. For a directory the extra segments are created by
// the recursive walk, but for a file the missing parents are not, so a
// separator in a file name fails at create time with a DestinationError.
func (w *Walker) resolveName(directives map[string]string, entryName string) (string, error) {
	directive, ok := directives[entryName]
	if !ok {
		return entryName, nil
	}

	ctx := w.context.ForTemplate(directive, w.searchPath)
	name, err := w.renderer.Render(directive, ctx.Vars())
	if err != nil {
		return "", err
	}
	name = strings.TrimRight(name, "\r\n")

	w.logger.Debug("resolved destination name", "entry", entryName, "name", name)
	return name, nil
}

func (w *Walker) renderFile(srcPath, destPath string) error {
	w.logger.Debug("rendering file", "source", srcPath, "dest", destPath)

	out, err := w.writer.CreateFile(destPath)
	if err != nil {
		return &DestinationError{Path: destPath, Op: "open", Err: err}
	}

	ctx := w.context.ForTemplate(srcPath, w.searchPath)
	text, err := w.renderer.Render(srcPath, ctx.Vars())
	if err != nil {
		out.Close()
		return err
	}

	content, err := w.newline.ProcessContent(destPath, []byte(text))
	if err != nil {
		out.Close()
		return err
	}
	if w.post != nil {
		if content, err = w.post.Process(destPath, content); err != nil {
			out.Close()
			return err
		}
	}

	if _, err := out.Write(content); err != nil {
		out.Close()
		return &DestinationError{Path: destPath, Op: "write", Err: err}
	}
	return out.Close()
}

func isNameDirective(name string) bool {
	return len(name) >= len(NameSuffix) &&
		strings.EqualFold(name[len(name)-len(NameSuffix):], NameSuffix)
}
