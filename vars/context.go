// Package vars builds the render context shared by every template in a run.
//
// The context is assembled once per invocation from three ordered layers,
// later layers silently shadowing earlier ones:
//
//  1. built-in metadata, published under the reserved "loom" variable
//  2. command-line expression bindings
//  3. module-exported bindings
//
// After Build the context is read-only. The only per-render variation is
// ForTemplate, which returns a copy whose metadata reflects the template
// being rendered (templatepath and the log strings).
package vars

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"time"
)

// MetaVar is the reserved context variable holding the metadata mapping.
const MetaVar = "loom"

// WarningBanner is the autogeneration notice templates embed in rendered
// output, typically inside a comment near the top of the file.
const WarningBanner = "WARNING!! DO NOT EDIT THIS FILE, ALL CHANGES WILL BE LOST. THIS FILE IS AUTOGENERATED BY LOOM."

// Encoding is the fixed output encoding, published as loom.encoding.
const Encoding = "utf-8"

// Metadata captures the invocation-time facts published under MetaVar.
type Metadata struct {
	User        string
	Host        string
	VersionNum  string
	Modules     []string
	Expressions []string
	Now         time.Time
	LineSep     string
}

// NewMetadata collects operator and host identity for an invocation.
// Lookup failures degrade to "unknown" rather than failing the run.
func NewMetadata(versionNum string, moduleNames, expressions []string, lineSep string) Metadata {
	username := "unknown"
	if u, err := user.Current(); err == nil && u.Username != "" {
		username = u.Username
	} else if env := os.Getenv("USER"); env != "" {
		username = env
	}

	host := "unknown"
	if h, err := os.Hostname(); err == nil && h != "" {
		host = h
	}

	if lineSep == "" {
		lineSep = "\n"
	}

	return Metadata{
		User:        username,
		Host:        host,
		VersionNum:  versionNum,
		Modules:     moduleNames,
		Expressions: expressions,
		Now:         time.Now(),
		LineSep:     lineSep,
	}
}

// Context is the full name-to-value mapping available to every template.
// It is immutable after Build; ForTemplate returns adjusted copies.
type Context struct {
	vars     map[string]any
	meta     map[string]any
	lineSep  string
	shadowed bool
}

// Builder assembles a Context from its ordered input layers.
type Builder struct {
	meta        Metadata
	expressions map[string]any
	modules     map[string]any
}

// NewBuilder starts a context build from invocation metadata.
func NewBuilder(meta Metadata) *Builder {
	return &Builder{meta: meta}
}

// WithExpressions adds the expression binding layer.
func (b *Builder) WithExpressions(bindings map[string]any) *Builder {
	b.expressions = bindings
	return b
}

// WithModules adds the module binding layer.
func (b *Builder) WithModules(bindings map[string]any) *Builder {
	b.modules = bindings
	return b
}

// Build merges the layers into a Context. Collisions are not reported:
// expressions shadow metadata, modules shadow both.
func (b *Builder) Build() *Context {
	m := b.meta
	date := m.Now.Format("01/02/2006")
	clock := m.Now.Format("03:04 PM")

	meta := map[string]any{
		"encoding":    Encoding,
		"user":        m.User,
		"host":        m.Host,
		"warning":     WarningBanner,
		"version":     "Loom Version " + m.VersionNum,
		"versionnum":  m.VersionNum,
		"modules":     formatNames(m.Modules),
		"expressions": formatNames(m.Expressions),
		"date":        date,
		"time":        clock,
		"log1":        "    processed on " + date + " at " + clock,
		"log2":        "    using modules " + formatNames(m.Modules),
		"log3":        "    with expressions " + formatNames(m.Expressions),
		"log4":        fmt.Sprintf("    by %s@%s", m.User, m.Host),
	}

	vars := map[string]any{MetaVar: meta}
	for k, v := range b.expressions {
		vars[k] = v
	}
	for k, v := range b.modules {
		vars[k] = v
	}

	_, shadowedByExpr := b.expressions[MetaVar]
	_, shadowedByModule := b.modules[MetaVar]

	return &Context{
		vars:     vars,
		meta:     meta,
		lineSep:  m.LineSep,
		shadowed: shadowedByExpr || shadowedByModule,
	}
}

// Vars returns the variable namespace handed to the template engine.
// Callers must not mutate the returned map.
func (c *Context) Vars() map[string]any {
	return c.vars
}

// ForTemplate returns a copy of the context with the per-template metadata
// fields (templatepath, log, logall) recomputed for the given template and
// its resolved search path. Everything else is shared with the receiver.
// If a binding layer shadowed the reserved metadata variable, the copy is
// returned with metadata untouched.
func (c *Context) ForTemplate(templatePath string, extraSearch []string) *Context {
	clone := &Context{
		vars:     make(map[string]any, len(c.vars)+1),
		lineSep:  c.lineSep,
		shadowed: c.shadowed,
	}
	for k, v := range c.vars {
		clone.vars[k] = v
	}

	if c.shadowed {
		clone.meta = c.meta
		return clone
	}

	meta := make(map[string]any, len(c.meta)+3)
	for k, v := range c.meta {
		meta[k] = v
	}

	search := append([]string{filepath.Dir(templatePath)}, extraSearch...)
	searchPath := strings.Join(search, string(os.PathListSeparator))

	meta["templatepath"] = searchPath
	meta["log"] = "LOOM: Template " + searchPath
	meta["logall"] = strings.Join([]string{
		meta["log"].(string),
		meta["log1"].(string),
		meta["log2"].(string),
		meta["log3"].(string),
		meta["log4"].(string),
	}, c.lineSep)

	clone.meta = meta
	clone.vars[MetaVar] = meta
	return clone
}

func formatNames(names []string) string {
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}
