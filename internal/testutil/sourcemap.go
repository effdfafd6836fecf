// Package testutil provides testing utilities for wasmsym.
package testutil

import (
	"cmp"
	"slices"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
)

const base64Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

// Segment describes one mapping entry of a fixture source map.
type Segment struct {
	GenLine   uint32
	GenColumn uint32
	Source    string
	Line      uint32
	Column    uint32
	Name      string
	// Unmapped emits a single-field segment that carries no source.
	Unmapped bool
}

// SourceMap builds Source Map v3 documents for tests.
type SourceMap struct {
	File       string
	SourceRoot string
	Segments   []Segment
}

// EncodeVLQ encodes a single base64 VLQ value.
func EncodeVLQ(v int64) string {
	u := v << 1
	if v < 0 {
		u = (-v << 1) | 1
	}
	var sb strings.Builder
	for {
		digit := u & 31
		u >>= 5
		if u > 0 {
			digit |= 32
		}
		sb.WriteByte(base64Alphabet[digit])
		if u == 0 {
			return sb.String()
		}
	}
}

// Encode returns the sources, names and mappings fields for the segments.
func (m SourceMap) Encode() (sources, names []string, mappings string) {
	segs := slices.Clone(m.Segments)
	slices.SortStableFunc(segs, func(a, b Segment) int {
		if c := cmp.Compare(a.GenLine, b.GenLine); c != 0 {
			return c
		}
		return cmp.Compare(a.GenColumn, b.GenColumn)
	})

	sourceIdx := map[string]int{}
	nameIdx := map[string]int{}
	var (
		sb    strings.Builder
		line  uint32
		first = true

		prevGenCol, prevSrc, prevLine, prevCol, prevName int64
	)
	for _, s := range segs {
		for line < s.GenLine {
			sb.WriteByte(';')
			line++
			prevGenCol = 0
			first = true
		}
		if !first {
			sb.WriteByte(',')
		}
		first = false

		sb.WriteString(EncodeVLQ(int64(s.GenColumn) - prevGenCol))
		prevGenCol = int64(s.GenColumn)
		if s.Unmapped {
			continue
		}

		si, ok := sourceIdx[s.Source]
		if !ok {
			si = len(sources)
			sourceIdx[s.Source] = si
			sources = append(sources, s.Source)
		}
		sb.WriteString(EncodeVLQ(int64(si) - prevSrc))
		prevSrc = int64(si)
		sb.WriteString(EncodeVLQ(int64(s.Line) - prevLine))
		prevLine = int64(s.Line)
		sb.WriteString(EncodeVLQ(int64(s.Column) - prevCol))
		prevCol = int64(s.Column)

		if s.Name != "" {
			ni, ok := nameIdx[s.Name]
			if !ok {
				ni = len(names)
				nameIdx[s.Name] = ni
				names = append(names, s.Name)
			}
			sb.WriteString(EncodeVLQ(int64(ni) - prevName))
			prevName = int64(ni)
		}
	}
	return sources, names, sb.String()
}

// JSON renders the map as a Source Map v3 document.
func (m SourceMap) JSON(t testing.TB) []byte {
	t.Helper()
	sources, names, mappings := m.Encode()
	if sources == nil {
		sources = []string{}
	}
	if names == nil {
		names = []string{}
	}
	doc := map[string]any{
		"version":  3,
		"file":     m.File,
		"sources":  sources,
		"names":    names,
		"mappings": mappings,
	}
	if m.SourceRoot != "" {
		doc["sourceRoot"] = m.SourceRoot
	}
	data, err := jsoniter.Marshal(doc)
	if err != nil {
		t.Fatalf("failed to marshal source map fixture: %v", err)
	}
	return data
}
