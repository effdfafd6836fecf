// Package sourcemap decodes Source Map v3 documents and answers point lookups
// from a generated position to the original source position.
package sourcemap

import (
	"cmp"
	"math"
	"slices"
	"sort"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type rawMap struct {
	Version    *int         `json:"version"`
	File       string       `json:"file"`
	SourceRoot string       `json:"sourceRoot"`
	Sources    []*string    `json:"sources"`
	Names      []string     `json:"names"`
	Mappings   string       `json:"mappings"`
	Sections   []rawSection `json:"sections"`
}

type rawSection struct {
	Offset struct {
		Line   uint32 `json:"line"`
		Column uint32 `json:"column"`
	} `json:"offset"`
	URL string  `json:"url"`
	Map *rawMap `json:"map"`
}

// Token is a resolved mapping entry.
type Token struct {
	GenLine   uint32
	GenColumn uint32
	// Line and Column are 0-based positions in the original source.
	Line   uint32
	Column uint32
	Name   string

	source    string
	hasSource bool
}

// Source returns the original source path, if the entry references one.
func (t Token) Source() (string, bool) {
	return t.source, t.hasSource
}

// Map is an immutable decoded source map. It is safe for concurrent lookups.
type Map struct {
	file     string
	sources  []*string
	names    []string
	mappings []mapping
}

// Load decodes a source map. Both regular and indexed (sectioned) maps are
// accepted; sections are flattened into a single table.
func Load(data []byte) (*Map, error) {
	var raw rawMap
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &FormatError{Reason: "invalid JSON", Err: err}
	}
	if err := checkVersion(raw.Version); err != nil {
		return nil, err
	}

	var (
		m   *Map
		err error
	)
	if raw.Sections != nil {
		m, err = loadIndexed(&raw)
	} else {
		m, err = loadRegular(&raw)
	}
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(m.mappings, func(a, b mapping) int {
		if c := cmp.Compare(a.genLine, b.genLine); c != 0 {
			return c
		}
		return cmp.Compare(a.genColumn, b.genColumn)
	})
	return m, nil
}

func checkVersion(v *int) error {
	if v != nil && *v != 3 {
		return formatErrorf("unsupported version %d", *v)
	}
	return nil
}

func loadRegular(raw *rawMap) (*Map, error) {
	mappings, err := parseMappings(raw.Mappings, len(raw.Sources), len(raw.Names))
	if err != nil {
		return nil, err
	}
	return &Map{
		file:     raw.File,
		sources:  applySourceRoot(raw.SourceRoot, raw.Sources),
		names:    raw.Names,
		mappings: mappings,
	}, nil
}

func loadIndexed(raw *rawMap) (*Map, error) {
	if raw.Mappings != "" {
		return nil, formatErrorf("indexed map must not carry mappings")
	}

	out := &Map{file: raw.File}
	var prevLine, prevColumn uint32
	for i, section := range raw.Sections {
		if section.URL != "" {
			return nil, formatErrorf("section %d references external map %q", i, section.URL)
		}
		if section.Map == nil {
			return nil, formatErrorf("section %d has no map", i)
		}
		if section.Map.Sections != nil {
			return nil, formatErrorf("section %d is itself an indexed map", i)
		}
		if err := checkVersion(section.Map.Version); err != nil {
			return nil, err
		}
		off := section.Offset
		if i > 0 && (off.Line < prevLine || (off.Line == prevLine && off.Column < prevColumn)) {
			return nil, formatErrorf("section %d is out of order", i)
		}
		prevLine, prevColumn = off.Line, off.Column

		sub, err := loadRegular(section.Map)
		if err != nil {
			return nil, err
		}

		sourceBase := int32(len(out.sources))
		nameBase := int32(len(out.names))
		for _, mp := range sub.mappings {
			line := uint64(mp.genLine) + uint64(off.Line)
			column := uint64(mp.genColumn)
			if mp.genLine == 0 {
				column += uint64(off.Column)
			}
			if line > math.MaxUint32 || column > math.MaxUint32 {
				return nil, formatErrorf("section %d shifts a mapping out of range", i)
			}
			mp.genLine, mp.genColumn = uint32(line), uint32(column)
			if mp.source >= 0 {
				mp.source += sourceBase
			}
			if mp.name >= 0 {
				mp.name += nameBase
			}
			out.mappings = append(out.mappings, mp)
		}
		out.sources = append(out.sources, sub.sources...)
		out.names = append(out.names, sub.names...)
	}
	return out, nil
}

func applySourceRoot(root string, sources []*string) []*string {
	if root == "" {
		return sources
	}
	root = strings.TrimSuffix(root, "/")
	out := make([]*string, len(sources))
	for i, s := range sources {
		if s == nil {
			continue
		}
		joined := root + "/" + *s
		out[i] = &joined
	}
	return out
}

// File returns the "file" attribute of the map.
func (m *Map) File() string {
	return m.file
}

// Len returns the number of decoded mapping entries.
func (m *Map) Len() int {
	return len(m.mappings)
}

// Sources returns the source paths referenced by the map. Null entries are
// returned as empty strings.
func (m *Map) Sources() []string {
	out := make([]string, len(m.sources))
	for i, s := range m.sources {
		if s != nil {
			out[i] = *s
		}
	}
	return out
}

// Lookup returns the entry at or most closely preceding the generated
// position (line, column), both 0-based. It reports false when no entry
// precedes the position.
//
// Several entries may share a generated position. An exact hit returns the
// first of them in mapping order; a position between entries returns the
// last entry before it.
func (m *Map) Lookup(line, column uint32) (Token, bool) {
	i := sort.Search(len(m.mappings), func(i int) bool {
		mp := &m.mappings[i]
		return mp.genLine > line || (mp.genLine == line && mp.genColumn > column)
	})
	if i == 0 {
		return Token{}, false
	}
	k := i - 1
	for k > 0 && m.mappings[k].genLine == line && m.mappings[k].genColumn == column &&
		m.mappings[k-1].genLine == line && m.mappings[k-1].genColumn == column {
		k--
	}
	return m.token(&m.mappings[k]), true
}

func (m *Map) token(mp *mapping) Token {
	tok := Token{
		GenLine:   mp.genLine,
		GenColumn: mp.genColumn,
		Line:      mp.line,
		Column:    mp.column,
	}
	if mp.source >= 0 {
		if s := m.sources[mp.source]; s != nil {
			tok.source, tok.hasSource = *s, true
		}
	}
	if mp.name >= 0 {
		tok.Name = m.names[mp.name]
	}
	return tok
}
