package config

import (
	"fmt"
	"os"
	"runtime"
)

// DefaultFile is the configuration file looked up in the working directory
// when no explicit --config path is given.
const DefaultFile = ".loom.yaml"

// Config holds invocation defaults normally supplied by command-line
// flags. Flags given explicitly take precedence over file values.
type Config struct {
	// TemplatePath lists extra directories searched for included templates.
	TemplatePath []string `yaml:"template_path"`
	// ModulePath lists directories searched for module files.
	ModulePath []string `yaml:"module_path"`
	// Modules names modules loaded into the context before rendering.
	Modules []string `yaml:"modules"`
	// Expressions lists name=value bindings evaluated before module loading.
	Expressions []string `yaml:"expressions"`
	// TrimBlocks toggles block-line whitespace trimming. Defaults to on.
	TrimBlocks *bool `yaml:"trim_blocks"`
	// LineSeparator selects the output line ending: "lf", "crlf", or
	// "native" (the default).
	LineSeparator string `yaml:"line_separator"`
	// Goimports formats rendered .go files through goimports.
	Goimports bool `yaml:"goimports"`
}

// Validate implements the Validator interface.
func (c *Config) Validate() error {
	switch c.LineSeparator {
	case "", "lf", "crlf", "native":
		return nil
	}
	return fmt.Errorf("line_separator must be one of lf, crlf, native; got %q", c.LineSeparator)
}

// Trim reports the effective trim mode.
func (c *Config) Trim() bool {
	if c.TrimBlocks == nil {
		return true
	}
	return *c.TrimBlocks
}

// LineSep resolves the configured line separator to its byte sequence.
func (c *Config) LineSep() string {
	switch c.LineSeparator {
	case "lf":
		return "\n"
	case "crlf":
		return "\r\n"
	default:
		if runtime.GOOS == "windows" {
			return "\r\n"
		}
		return "\n"
	}
}

// Load reads the configuration from path. When path is empty, DefaultFile
// is used if present; a missing default file yields a zero Config.
func Load(path string) (Config, error) {
	var cfg Config

	if path == "" {
		if _, err := os.Stat(DefaultFile); err != nil {
			return cfg, nil
		}
		path = DefaultFile
	}

	if err := LoadYAML(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
