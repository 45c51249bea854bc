package engine

import "regexp"

// A control action that ends a line, e.g. "{{range .Items}}\n". Trim mode
// suppresses the trailing newline so block scaffolding leaves no blank
// lines. Value interpolations are left alone; only block-structuring
// keywords qualify.
var blockActionLine = regexp.MustCompile(`(\{\{-?\s*(?:if|else|end|range|with|block|define|template)\b[^{}]*\}\})\r?\n`)

// trimBlockLines moves the newline after each block action into a comment
// rather than deleting it, so the parser's line numbers keep matching the
// file on disk and syntax errors point at the right line.
func trimBlockLines(src string) string {
	return blockActionLine.ReplaceAllString(src, "${1}{{/*\n*/}}")
}
