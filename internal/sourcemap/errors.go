package sourcemap

import "fmt"

// FormatError is returned when a byte stream is not a well-formed source map.
type FormatError struct {
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed source map: %s: %v", e.Reason, e.Err)
	}
	return "malformed source map: " + e.Reason
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

func formatErrorf(format string, args ...any) *FormatError {
	return &FormatError{Reason: fmt.Sprintf(format, args...)}
}
