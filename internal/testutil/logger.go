package testutil

import (
	"bytes"
	"io"
	"testing"

	"github.com/rs/zerolog"
)

// NewTestLogger creates a test logger that discards output.
func NewTestLogger(t testing.TB) zerolog.Logger {
	t.Helper()
	return zerolog.New(io.Discard)
}

// NewCaptureLogger creates a trace-level logger that records JSON lines into
// the returned buffer.
func NewCaptureLogger(t testing.TB) (zerolog.Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	return zerolog.New(&buf).Level(zerolog.TraceLevel), &buf
}
