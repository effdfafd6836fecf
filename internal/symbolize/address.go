// Package symbolize turns the address text captured from a trace into a
// rendered source location.
package symbolize

import (
	"strconv"
	"strings"
)

// ParseAddress decodes a captured address. A "0x" prefix selects hexadecimal,
// anything else is read as decimal. Values that do not fit the 32-bit
// generated column space are rejected.
func ParseAddress(raw string) (uint32, bool) {
	base := 10
	if digits, ok := strings.CutPrefix(raw, "0x"); ok {
		raw, base = digits, 16
	}
	v, err := strconv.ParseUint(raw, base, 32)
	if err != nil {
		return 0, false
	}
	return uint32(v), true
}
