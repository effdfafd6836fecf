package symbolize

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/wasmsym/wasmsym/internal/sourcemap"
)

// UnknownSource is rendered in place of the path when an entry has no source.
const UnknownSource = "<unknown>"

// Render formats tok as "path:line:column" with 1-based line and column.
// A nil token renders as the empty string. When baseDir is non-empty, paths
// below it are rendered relative to it; other paths are left untouched.
func Render(tok *sourcemap.Token, baseDir string) string {
	if tok == nil {
		return ""
	}
	path, ok := tok.Source()
	switch {
	case !ok:
		path = UnknownSource
	case baseDir != "":
		if rel, ok := stripBase(path, baseDir); ok {
			path = rel
		}
	}
	return fmt.Sprintf("%s:%d:%d", path, uint64(tok.Line)+1, uint64(tok.Column)+1)
}

// stripBase removes base from the front of path, comparing whole path
// components. The remainder is returned as written in path, minus leading
// separators and "." components.
func stripBase(path, base string) (string, bool) {
	if isAbs(path) != isAbs(base) {
		return "", false
	}
	rest := filepath.ToSlash(path)
	for _, part := range components(base) {
		var c string
		c, rest, _ = strings.Cut(trimLeading(rest), "/")
		if c != part {
			return "", false
		}
	}
	rest = trimLeading(rest)
	return path[len(path)-len(rest):], true
}

func isAbs(p string) bool {
	return filepath.IsAbs(p) || strings.HasPrefix(p, "/")
}

func components(p string) []string {
	var parts []string
	for _, c := range strings.Split(filepath.ToSlash(p), "/") {
		if c == "" || c == "." {
			continue
		}
		parts = append(parts, c)
	}
	return parts
}

// trimLeading drops separators and "." components from the front of a
// slash-separated path.
func trimLeading(p string) string {
	for {
		p = strings.TrimLeft(p, "/")
		switch {
		case p == ".":
			return ""
		case strings.HasPrefix(p, "./"):
			p = p[2:]
		default:
			return p
		}
	}
}
