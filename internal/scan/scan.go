// Package scan locates wasm frame addresses in free-form text.
package scan

import (
	"iter"
	"strings"

	"github.com/grafana/regexp"
)

// Pattern matches frames such as "wasm://wasm/000c5502:wasm-function[1060]:0x2648d".
// The first group captures the address, optionally 0x-prefixed.
const Pattern = `wasm://.*:.*:((?:0x)?[[:xdigit:]]+)`

var defaultPattern = regexp.MustCompile(Pattern)

// Match is one located address token.
type Match struct {
	// Start and End delimit the whole token in the scanned text.
	Start, End int
	Text       string
	Address    string
}

// Scanner finds address tokens. It holds no per-scan state and may be shared.
type Scanner struct {
	re *regexp.Regexp
}

// New returns a scanner for the wasm frame pattern.
func New() *Scanner {
	return &Scanner{re: defaultPattern}
}

// Matches yields every non-overlapping token in text, left to right.
func (s *Scanner) Matches(text string) iter.Seq[Match] {
	return func(yield func(Match) bool) {
		pos := 0
		for pos < len(text) {
			loc := s.re.FindStringSubmatchIndex(text[pos:])
			if loc == nil {
				return
			}
			m := Match{
				Start:   pos + loc[0],
				End:     pos + loc[1],
				Address: text[pos+loc[2] : pos+loc[3]],
			}
			m.Text = text[m.Start:m.End]
			if !yield(m) {
				return
			}
			pos = m.End
		}
	}
}

// Rewrite appends " "+annotate(address) after every token in text and returns
// the result together with the number of tokens found. Text outside tokens is
// copied unchanged.
func (s *Scanner) Rewrite(text string, annotate func(address string) string) (string, int) {
	var (
		sb    strings.Builder
		last  int
		count int
	)
	for m := range s.Matches(text) {
		if count == 0 {
			sb.Grow(len(text) + 64)
		}
		count++
		sb.WriteString(text[last:m.End])
		sb.WriteByte(' ')
		sb.WriteString(annotate(m.Address))
		last = m.End
	}
	if count == 0 {
		return text, 0
	}
	sb.WriteString(text[last:])
	return sb.String(), count
}
