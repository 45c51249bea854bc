package vars

import (
	"os"
	"strings"
	"testing"
	"time"
)

func testMetadata() Metadata {
	return Metadata{
		User:        "tester",
		Host:        "buildhost",
		VersionNum:  "1.0",
		Now:         time.Date(2026, 3, 14, 15, 9, 0, 0, time.UTC),
		LineSep:     "\n",
		Modules:     nil,
		Expressions: nil,
	}
}

func TestBuildMetadataKeys(t *testing.T) {
	ctx := NewBuilder(testMetadata()).Build()

	meta, ok := ctx.Vars()[MetaVar].(map[string]any)
	if !ok {
		t.Fatalf("expected %q to be a metadata map, got %T", MetaVar, ctx.Vars()[MetaVar])
	}

	expectations := map[string]any{
		"encoding":   "utf-8",
		"user":       "tester",
		"host":       "buildhost",
		"warning":    WarningBanner,
		"version":    "Loom Version 1.0",
		"versionnum": "1.0",
		"date":       "03/14/2026",
		"time":       "03:09 PM",
		"modules":    "none",
		"log4":       "    by tester@buildhost",
	}
	for key, want := range expectations {
		if got := meta[key]; got != want {
			t.Errorf("meta[%q] = %v, want %v", key, got, want)
		}
	}
}

func TestBuildLayerPrecedence(t *testing.T) {
	ctx := NewBuilder(testMetadata()).
		WithExpressions(map[string]any{"name": "from-expr", "only": "expr"}).
		WithModules(map[string]any{"name": "from-module"}).
		Build()

	vars := ctx.Vars()
	if vars["name"] != "from-module" {
		t.Errorf("modules should shadow expressions, got %v", vars["name"])
	}
	if vars["only"] != "expr" {
		t.Errorf("expression binding lost, got %v", vars["only"])
	}
}

func TestForTemplateRecomputesPerNodeFields(t *testing.T) {
	base := NewBuilder(testMetadata()).Build()

	ctx := base.ForTemplate("/src/tree/note.txt", []string{"/extra"})
	meta := ctx.Vars()[MetaVar].(map[string]any)

	wantPath := strings.Join([]string{"/src/tree", "/extra"}, string(os.PathListSeparator))
	if meta["templatepath"] != wantPath {
		t.Errorf("templatepath = %v, want %v", meta["templatepath"], wantPath)
	}
	if meta["log"] != "LOOM: Template "+wantPath {
		t.Errorf("log = %v", meta["log"])
	}

	logall, _ := meta["logall"].(string)
	if !strings.Contains(logall, "processed on 03/14/2026") {
		t.Errorf("logall missing timestamp line: %q", logall)
	}

	// The base context must be untouched.
	baseMeta := base.Vars()[MetaVar].(map[string]any)
	if _, exists := baseMeta["templatepath"]; exists {
		t.Error("ForTemplate mutated the base context")
	}
}

func TestForTemplateSharesNonMetaBindings(t *testing.T) {
	base := NewBuilder(testMetadata()).
		WithExpressions(map[string]any{"project": "widget"}).
		Build()

	ctx := base.ForTemplate("/src/a.txt", nil)
	if ctx.Vars()["project"] != "widget" {
		t.Errorf("binding lost in per-template copy: %v", ctx.Vars()["project"])
	}
}

func TestShadowedMetaVarIsLeftAlone(t *testing.T) {
	base := NewBuilder(testMetadata()).
		WithExpressions(map[string]any{MetaVar: "user-owned"}).
		Build()

	ctx := base.ForTemplate("/src/a.txt", nil)
	if ctx.Vars()[MetaVar] != "user-owned" {
		t.Errorf("shadowed metadata variable was overwritten: %v", ctx.Vars()[MetaVar])
	}
}
