package tree

import "fmt"

// DestinationError reports a failure to create, open, or write an entry in
// the destination tree. Any such failure aborts the entire walk; output
// already written stays on disk.
type DestinationError struct {
	Path string
	Op   string // "create", "open", or "write"
	Err  error
}

func (e *DestinationError) Error() string {
	return fmt.Sprintf("cannot %s destination %s: %v", e.Op, e.Path, e.Err)
}

func (e *DestinationError) Unwrap() error {
	return e.Err
}
