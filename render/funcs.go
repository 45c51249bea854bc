// Package render supplies the function map available inside templates.
package render

import (
	"fmt"
	"strings"
	"text/template"
	"unicode"

	"github.com/google/uuid"
)

// DefaultFuncMap returns the functions exposed to every template: string
// case conversion, trimming and splitting helpers, plus a uuid generator
// for templates that stamp identifiers into rendered output.
func DefaultFuncMap() template.FuncMap {
	return template.FuncMap{
		"snake":  toSnakeCase,
		"camel":  toCamelCase,
		"pascal": toPascalCase,
		"kebab":  toKebabCase,

		"lower":      strings.ToLower,
		"upper":      strings.ToUpper,
		"trim":       strings.TrimSpace,
		"trimPrefix": strings.TrimPrefix,
		"trimSuffix": strings.TrimSuffix,
		"replace":    strings.ReplaceAll,
		"split":      strings.Split,
		"join":       strings.Join,
		"contains":   strings.Contains,
		"hasPrefix":  strings.HasPrefix,
		"hasSuffix":  strings.HasSuffix,
		"repeat":     strings.Repeat,

		"default": defaultValue,
		"quote":   quote,
		"uuid":    func() string { return uuid.New().String() },
	}
}

func splitWords(s string) []string {
	var words []string
	var current strings.Builder
	var prev rune

	flush := func() {
		if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}

	for i, r := range s {
		switch {
		case r == '_' || r == '-' || r == ' ' || r == '.':
			flush()
		case unicode.IsUpper(r) && i > 0 && (unicode.IsLower(prev) || unicode.IsDigit(prev)):
			flush()
			current.WriteRune(r)
		default:
			current.WriteRune(r)
		}
		prev = r
	}
	flush()
	return words
}

func toSnakeCase(s string) string {
	return joinLower(splitWords(s), "_")
}

func toKebabCase(s string) string {
	return joinLower(splitWords(s), "-")
}

func toCamelCase(s string) string {
	words := splitWords(s)
	if len(words) == 0 {
		return ""
	}
	out := strings.ToLower(words[0])
	for _, w := range words[1:] {
		out += capitalize(w)
	}
	return out
}

func toPascalCase(s string) string {
	var out string
	for _, w := range splitWords(s) {
		out += capitalize(w)
	}
	return out
}

func joinLower(words []string, sep string) string {
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return strings.Join(words, sep)
}

func capitalize(w string) string {
	if w == "" {
		return ""
	}
	return strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
}

// defaultValue substitutes def when value is nil or an empty string.
func defaultValue(def, value any) any {
	switch v := value.(type) {
	case nil:
		return def
	case string:
		if v == "" {
			return def
		}
	}
	return value
}

func quote(value any) string {
	return fmt.Sprintf("%q", fmt.Sprint(value))
}
