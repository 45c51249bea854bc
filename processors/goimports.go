package processors

import (
	"fmt"
	"go/format"
	"path/filepath"
	"strings"

	"golang.org/x/tools/imports"
)

// GoImports formats rendered Go source files, organizing imports with
// goimports and falling back to gofmt when import resolution fails.
// Non-Go files pass through unchanged, so the processor is safe to leave
// in the chain for mixed-content template trees.
type GoImports struct {
	// TabWidth sets the tab width for formatting (default: 8).
	TabWidth int
	// TabIndent selects tabs for indentation (default: true).
	TabIndent bool
	// Comments keeps comments updated during formatting (default: true).
	Comments bool
}

// NewGoImports creates a Go formatter with the standard defaults.
func NewGoImports() *GoImports {
	return &GoImports{
		TabWidth:  8,
		TabIndent: true,
		Comments:  true,
	}
}

// ProcessContent implements the postprocess.Processor interface.
func (g *GoImports) ProcessContent(filePath string, content []byte) ([]byte, error) {
	if strings.ToLower(filepath.Ext(filePath)) != ".go" {
		return content, nil
	}

	formatted, err := imports.Process(filePath, content, &imports.Options{
		Comments:  g.Comments,
		TabIndent: g.TabIndent,
		TabWidth:  g.TabWidth,
	})
	if err != nil {
		gofmted, fmtErr := format.Source(content)
		if fmtErr != nil {
			return nil, fmt.Errorf("formatting %s failed with goimports (%w) and gofmt (%w)", filePath, err, fmtErr)
		}
		return gofmted, nil
	}
	return formatted, nil
}
