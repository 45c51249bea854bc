// Package engine wraps text/template behind the narrow rendering boundary
// the rest of loom consumes: resolve a template through a search path,
// execute it against a variable namespace, and translate failures into two
// distinguished error kinds (template not found, template syntax error).
package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

// Engine renders templates located through a search path. Whitespace
// trimming and the extra search directories are invocation-wide
// configuration, fixed at construction.
type Engine struct {
	logger     *slog.Logger
	funcs      template.FuncMap
	trimBlocks bool
	searchPath []string
	maxInclude int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger for render diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithFuncs sets the function map exposed to templates.
func WithFuncs(funcs template.FuncMap) Option {
	return func(e *Engine) {
		e.funcs = funcs
	}
}

// WithTrimBlocks toggles removal of the newline immediately following a
// control action that ends a line, so {{if}}/{{range}}/{{end}} scaffolding
// does not leak blank lines into the output.
func WithTrimBlocks(trim bool) Option {
	return func(e *Engine) {
		e.trimBlocks = trim
	}
}

// WithSearchPath appends extra directories searched when a template
// includes another template by name. The template's own directory is
// always searched first.
func WithSearchPath(dirs []string) Option {
	return func(e *Engine) {
		e.searchPath = dirs
	}
}

// New creates an Engine. Trim mode defaults to on, matching the common
// case of block-structured text templates.
func New(opts ...Option) *Engine {
	e := &Engine{
		logger:     slog.Default(),
		funcs:      template.FuncMap{},
		trimBlocks: true,
		maxInclude: 10,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Render executes the template at templatePath against the given variable
// namespace and returns the rendered text, without any trailing-newline
// handling. The namespace is augmented with an always-present "env"
// binding exposing the raw process environment.
//
// Failures are reported as *NotFoundError or *SyntaxError; both are meant
// to be treated as fatal by callers.
func (e *Engine) Render(templatePath string, context map[string]any) (string, error) {
	e.logger.Debug("rendering template", "path", templatePath)

	loader := NewFileSystemLoader(append([]string{filepath.Dir(templatePath)}, e.searchPath...)...)
	st := &renderState{
		engine: e,
		loader: loader,
		data:   withEnv(context),
	}
	return st.render(filepath.Base(templatePath), st.data)
}

// renderState carries the include stack for one Render call. The first
// error raised by a nested include is recorded so it survives the engine's
// own error wrapping.
type renderState struct {
	engine     *Engine
	loader     Loader
	data       map[string]any
	stack      []string
	includeErr error
}

func (st *renderState) render(name string, data any) (string, error) {
	src, path, err := st.loader.Source(name)
	if err != nil {
		return "", err
	}

	if st.engine.trimBlocks {
		src = trimBlockLines(src)
	}

	funcs := make(template.FuncMap, len(st.engine.funcs)+2)
	for k, v := range st.engine.funcs {
		funcs[k] = v
	}
	funcs["include"] = st.include
	funcs["includeWith"] = st.includeWith

	tmpl, err := template.New(name).Funcs(funcs).Parse(src)
	if err != nil {
		return "", newSyntaxError(path, err)
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, data); err != nil {
		if nested := st.includeErr; nested != nil {
			var nf *NotFoundError
			if errors.As(nested, &nf) {
				return "", nf
			}
			var se *SyntaxError
			if errors.As(nested, &se) {
				return "", se
			}
		}
		return "", newSyntaxError(path, err)
	}
	return buf.String(), nil
}

// include renders another template from the search path with the full
// current namespace, mirroring classic template-inheritance includes.
func (st *renderState) include(name string) (string, error) {
	return st.includeWith(name, st.data)
}

// includeWith renders another template against explicit data.
func (st *renderState) includeWith(name string, data any) (string, error) {
	if len(st.stack) >= st.engine.maxInclude {
		return "", fmt.Errorf("include depth limit exceeded (%d)", st.engine.maxInclude)
	}
	for _, active := range st.stack {
		if active == name {
			return "", fmt.Errorf("circular include detected: %s", name)
		}
	}

	st.stack = append(st.stack, name)
	defer func() { st.stack = st.stack[:len(st.stack)-1] }()

	text, err := st.render(name, data)
	if err != nil && st.includeErr == nil {
		st.includeErr = err
	}
	return text, err
}

// withEnv copies the namespace and adds the "env" binding. The input map
// is never mutated; the context owner may share it across renders.
func withEnv(context map[string]any) map[string]any {
	data := make(map[string]any, len(context)+1)
	for k, v := range context {
		data[k] = v
	}

	env := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	data["env"] = env
	return data
}
