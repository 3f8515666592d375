package dataset

import "fmt"

// DataLoadError reports a launch records file that could not be loaded:
// missing, malformed, or lacking a required column. It is fatal at startup.
type DataLoadError struct {
	Path   string
	Reason string
	Err    error
}

func (e *DataLoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("load launch records %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("load launch records %s: %s", e.Path, e.Reason)
}

func (e *DataLoadError) Unwrap() error {
	return e.Err
}
