package engine

import (
	"fmt"
	"regexp"
	"strconv"
)

// NotFoundError reports a template that could not be located in the active
// search path, either the template named on the command line or one pulled
// in through an include.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("template not found: %s", e.Name)
}

// SyntaxError reports a parse or execution failure inside a template,
// carrying the source path and, when the engine provides one, a line
// number.
type SyntaxError struct {
	Path    string
	Line    int
	Message string
}

func (e *SyntaxError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("template syntax error: %s(%d): %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("template syntax error: %s: %s", e.Path, e.Message)
}

// Diagnostic formats the error as a source-location diagnostic of the form
// "file(line): message", the framing build tools and editors expect.
func (e *SyntaxError) Diagnostic() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s(%d): loom error: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("%s: loom error: %s", e.Path, e.Message)
}

// text/template prefixes errors with "template: <name>:<line>[:<col>]: ".
var errorLocation = regexp.MustCompile(`^template: .*?:(\d+)(?::\d+)?: `)

// newSyntaxError converts a text/template error into a SyntaxError,
// extracting the line number from the engine's message prefix when present.
func newSyntaxError(path string, err error) *SyntaxError {
	msg := err.Error()
	if m := errorLocation.FindStringSubmatchIndex(msg); m != nil {
		line, _ := strconv.Atoi(msg[m[2]:m[3]])
		return &SyntaxError{Path: path, Line: line, Message: msg[m[1]:]}
	}
	return &SyntaxError{Path: path, Message: msg}
}
