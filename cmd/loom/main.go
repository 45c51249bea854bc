// Command loom renders text templates from the command line, either a
// single template to stdout/file or a whole template tree into a
// destination directory.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/cpcf/loom/engine"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "loom: error: %v\n", err)

		// A syntax error is also framed as a source-location diagnostic,
		// the shape build tools and editors pick up.
		var se *engine.SyntaxError
		if errors.As(err, &se) {
			fmt.Fprintln(os.Stderr, se.Diagnostic())
		}
		os.Exit(1)
	}
}
