// Package expr parses command-line variable assignments into context bindings.
//
// An assignment has the form name=value. The value is decoded as a YAML
// scalar or flow collection, so numbers, booleans, lists and maps arrive
// typed rather than as raw strings:
//
//	count=23        -> int 23
//	debug=true      -> bool true
//	tags=[a, b, c]  -> []any{"a", "b", "c"}
//	opts={x: 1}     -> map[string]any{"x": 1}
//
// A value that is not valid YAML is kept as a literal string, which keeps
// shell-mangled input like Windows paths usable without extra quoting.
package expr

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Binding is a single parsed name=value assignment.
type Binding struct {
	Name  string
	Value any
}

// ParseError reports an assignment that could not be parsed.
type ParseError struct {
	Assignment string
	Reason     string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid expression %q: %s", e.Assignment, e.Reason)
}

// Parse splits a single name=value assignment and decodes the value.
func Parse(assignment string) (Binding, error) {
	name, value, ok := strings.Cut(assignment, "=")
	if !ok {
		return Binding{}, &ParseError{Assignment: assignment, Reason: "missing '='"}
	}

	name = strings.TrimSpace(name)
	if !isIdentifier(name) {
		return Binding{}, &ParseError{Assignment: assignment, Reason: "name must be an identifier"}
	}

	return Binding{Name: name, Value: decodeValue(value)}, nil
}

// ParseAll parses assignments in order into one binding map. Later
// assignments silently shadow earlier ones with the same name.
func ParseAll(assignments []string) (map[string]any, error) {
	if len(assignments) == 0 {
		return nil, nil
	}

	bindings := make(map[string]any, len(assignments))
	for _, a := range assignments {
		b, err := Parse(a)
		if err != nil {
			return nil, err
		}
		bindings[b.Name] = b.Value
	}
	return bindings, nil
}

func decodeValue(raw string) any {
	var v any
	if err := yaml.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}
	return v
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_':
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
