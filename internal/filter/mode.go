package filter

import "fmt"

// Mode selects how input is delivered to the scanner.
type Mode int

const (
	// WholeBuffer reads the entire input before rewriting it in one pass.
	WholeBuffer Mode = iota
	// LineBuffered rewrites and emits each line as soon as it is read.
	// Tokens split across a line break are not recognised.
	LineBuffered
)

func (m Mode) String() string {
	switch m {
	case WholeBuffer:
		return "whole-buffer"
	case LineBuffered:
		return "line-buffered"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}
