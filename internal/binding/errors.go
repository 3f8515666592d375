package binding

import "fmt"

// RenderError reports an output whose callback failed or panicked.
// It is confined to that output; other outputs still update.
type RenderError struct {
	Output   string
	Err      error
	Panicked bool
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s: %v", e.Output, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
