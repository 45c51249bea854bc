package processors

import (
	"strings"
	"testing"
)

func TestGoImportsFormatsGoFiles(t *testing.T) {
	g := NewGoImports()
	src := "package   main\n\nfunc main(){println(\"hi\")}\n"

	out, err := g.ProcessContent("main.go", []byte(src))
	if err != nil {
		t.Fatalf("ProcessContent failed: %v", err)
	}
	if !strings.HasPrefix(string(out), "package main\n") {
		t.Errorf("output not formatted: %q", out)
	}
}

func TestGoImportsIgnoresOtherFiles(t *testing.T) {
	g := NewGoImports()
	src := "not   go   code"

	out, err := g.ProcessContent("notes.txt", []byte(src))
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != src {
		t.Errorf("non-Go content was modified: %q", out)
	}
}

func TestGoImportsInvalidGoCode(t *testing.T) {
	g := NewGoImports()
	_, err := g.ProcessContent("broken.go", []byte("package {{"))
	if err == nil {
		t.Fatal("expected error for unparseable Go source")
	}
}
