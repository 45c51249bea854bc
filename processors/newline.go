// Package processors provides the built-in post-processors.
package processors

import "strings"

// Newline normalizes line endings to one separator convention and ensures
// the content ends with exactly one trailing separator, regardless of how
// many terminators the rendered template produced.
type Newline struct {
	// Sep is the target line separator, "\n" or "\r\n".
	Sep string
}

// NewNewline creates a newline normalizer for the given separator.
// An empty separator defaults to "\n".
func NewNewline(sep string) *Newline {
	if sep == "" {
		sep = "\n"
	}
	return &Newline{Sep: sep}
}

// ProcessContent implements the postprocess.Processor interface.
func (n *Newline) ProcessContent(filePath string, content []byte) ([]byte, error) {
	text := string(content)

	// Collapse all line-ending conventions to bare LF first, then trim the
	// trailing terminators and re-expand to the target separator.
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimRight(text, "\n")

	if n.Sep != "\n" {
		text = strings.ReplaceAll(text, "\n", n.Sep)
	}
	return []byte(text + n.Sep), nil
}
