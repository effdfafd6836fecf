package sourcemap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wasmsym/wasmsym/internal/testutil"
)

func wasmFixture(t *testing.T) *Map {
	t.Helper()
	fixture := testutil.SourceMap{
		File: "app.wasm",
		Segments: []testutil.Segment{
			{GenColumn: 100, Source: "/proj/src/main.rs", Line: 9, Column: 0},
			{GenColumn: 150157, Source: "/proj/src/lib.rs", Line: 41, Column: 4, Name: "run"},
			{GenColumn: 200000, Unmapped: true},
			{GenColumn: 250000, Source: "/proj/src/lib.rs", Line: 2, Column: 7},
		},
	}
	m, err := Load(fixture.JSON(t))
	require.NoError(t, err)
	return m
}

func TestLoad_Regular(t *testing.T) {
	m := wasmFixture(t)
	assert.Equal(t, "app.wasm", m.File())
	assert.Equal(t, 4, m.Len())
	assert.Equal(t, []string{"/proj/src/main.rs", "/proj/src/lib.rs"}, m.Sources())
}

func TestLookup(t *testing.T) {
	m := wasmFixture(t)

	tests := []struct {
		name       string
		column     uint32
		wantOK     bool
		wantSource string
		hasSource  bool
		wantLine   uint32
		wantColumn uint32
		wantName   string
	}{
		{name: "before first entry", column: 99, wantOK: false},
		{name: "exact first entry", column: 100, wantOK: true, wantSource: "/proj/src/main.rs", hasSource: true, wantLine: 9},
		{name: "exact match", column: 150157, wantOK: true, wantSource: "/proj/src/lib.rs", hasSource: true, wantLine: 41, wantColumn: 4, wantName: "run"},
		{name: "nearest preceding", column: 150200, wantOK: true, wantSource: "/proj/src/lib.rs", hasSource: true, wantLine: 41, wantColumn: 4, wantName: "run"},
		{name: "unmapped segment", column: 200001, wantOK: true, hasSource: false},
		{name: "past last entry", column: 0xffffffff, wantOK: true, wantSource: "/proj/src/lib.rs", hasSource: true, wantLine: 2, wantColumn: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok, ok := m.Lookup(0, tt.column)
			require.Equal(t, tt.wantOK, ok)
			if !ok {
				return
			}
			src, has := tok.Source()
			assert.Equal(t, tt.hasSource, has)
			assert.Equal(t, tt.wantSource, src)
			assert.Equal(t, tt.wantLine, tok.Line)
			assert.Equal(t, tt.wantColumn, tok.Column)
			assert.Equal(t, tt.wantName, tok.Name)
		})
	}
}

func TestLookup_MultiLine(t *testing.T) {
	fixture := testutil.SourceMap{
		Segments: []testutil.Segment{
			{GenLine: 0, GenColumn: 5, Source: "a.js", Line: 0, Column: 0},
			{GenLine: 2, GenColumn: 3, Source: "b.js", Line: 10, Column: 1},
		},
	}
	m, err := Load(fixture.JSON(t))
	require.NoError(t, err)

	tok, ok := m.Lookup(1, 0)
	require.True(t, ok)
	src, _ := tok.Source()
	assert.Equal(t, "a.js", src)

	tok, ok = m.Lookup(2, 3)
	require.True(t, ok)
	src, _ = tok.Source()
	assert.Equal(t, "b.js", src)
	assert.Equal(t, uint32(10), tok.Line)
	assert.Equal(t, uint32(2), tok.GenLine)
}

func TestLookup_SharedPosition(t *testing.T) {
	m, err := Load([]byte(`{"version":3,"sources":["a.rs","b.rs"],"names":[],"mappings":"AAAA,ACCA;ADAA,ACCA"}`))
	require.NoError(t, err)

	tests := []struct {
		name     string
		line     uint32
		column   uint32
		wantSrc  string
		wantLine uint32
	}{
		{name: "exact hit takes first", line: 0, column: 0, wantSrc: "a.rs", wantLine: 0},
		{name: "between entries takes last", line: 0, column: 5, wantSrc: "b.rs", wantLine: 1},
		{name: "exact hit on later line", line: 1, column: 0, wantSrc: "a.rs", wantLine: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok, ok := m.Lookup(tt.line, tt.column)
			require.True(t, ok)
			src, _ := tok.Source()
			assert.Equal(t, tt.wantSrc, src)
			assert.Equal(t, tt.wantLine, tok.Line)
		})
	}
}

func TestLookup_EmptyMap(t *testing.T) {
	m, err := Load([]byte(`{"version":3,"sources":[],"names":[],"mappings":""}`))
	require.NoError(t, err)
	_, ok := m.Lookup(0, 0)
	assert.False(t, ok)
}

func TestLoad_SourceRootAndNullSources(t *testing.T) {
	data := []byte(`{
		"version": 3,
		"sourceRoot": "/proj/",
		"sources": ["src/lib.rs", null],
		"names": [],
		"mappings": "AAAA,CCAA"
	}`)
	m, err := Load(data)
	require.NoError(t, err)

	tok, ok := m.Lookup(0, 0)
	require.True(t, ok)
	src, has := tok.Source()
	assert.True(t, has)
	assert.Equal(t, "/proj/src/lib.rs", src)

	tok, ok = m.Lookup(0, 1)
	require.True(t, ok)
	_, has = tok.Source()
	assert.False(t, has)
}

func TestLoad_Indexed(t *testing.T) {
	first := testutil.SourceMap{Segments: []testutil.Segment{
		{GenColumn: 0, Source: "one.rs", Line: 1, Column: 1},
	}}
	second := testutil.SourceMap{Segments: []testutil.Segment{
		{GenColumn: 0, Source: "two.rs", Line: 2, Column: 2, Name: "f"},
		{GenLine: 1, GenColumn: 4, Source: "two.rs", Line: 3, Column: 0},
	}}
	data := []byte(`{"version":3,"sections":[` +
		`{"offset":{"line":0,"column":0},"map":` + string(first.JSON(t)) + `},` +
		`{"offset":{"line":0,"column":1000},"map":` + string(second.JSON(t)) + `}]}`)

	m, err := Load(data)
	require.NoError(t, err)
	assert.Equal(t, 3, m.Len())
	assert.Equal(t, []string{"one.rs", "two.rs"}, m.Sources())

	tok, ok := m.Lookup(0, 999)
	require.True(t, ok)
	src, _ := tok.Source()
	assert.Equal(t, "one.rs", src)

	tok, ok = m.Lookup(0, 1000)
	require.True(t, ok)
	src, _ = tok.Source()
	assert.Equal(t, "two.rs", src)
	assert.Equal(t, "f", tok.Name)

	// The column offset only applies to the first line of a section.
	tok, ok = m.Lookup(1, 4)
	require.True(t, ok)
	assert.Equal(t, uint32(3), tok.Line)
}

func TestLoad_FormatErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "not json", data: `not a source map`},
		{name: "wrong version", data: `{"version":2,"sources":[],"mappings":""}`},
		{name: "bad base64", data: `{"version":3,"sources":["a"],"mappings":"A!AA"}`},
		{name: "two field segment", data: `{"version":3,"sources":["a"],"mappings":"AA"}`},
		{name: "six field segment", data: `{"version":3,"sources":["a"],"names":["n"],"mappings":"AAAAAA"}`},
		{name: "source out of range", data: `{"version":3,"sources":[],"mappings":"AAAA"}`},
		{name: "name out of range", data: `{"version":3,"sources":["a"],"names":[],"mappings":"AAAAA"}`},
		{name: "negative column", data: `{"version":3,"sources":["a"],"mappings":"D"}`},
		{name: "section url", data: `{"version":3,"sections":[{"offset":{"line":0,"column":0},"url":"x.map"}]}`},
		{name: "section without map", data: `{"version":3,"sections":[{"offset":{"line":0,"column":0}}]}`},
		{name: "sections out of order", data: `{"version":3,"sections":[` +
			`{"offset":{"line":1,"column":0},"map":{"version":3,"sources":[],"mappings":""}},` +
			`{"offset":{"line":0,"column":0},"map":{"version":3,"sources":[],"mappings":""}}]}`},
		{name: "indexed with mappings", data: `{"version":3,"mappings":"A","sections":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Load([]byte(tt.data))
			assert.Nil(t, m)
			var fe *FormatError
			require.ErrorAs(t, err, &fe)
			assert.Contains(t, err.Error(), "malformed source map")
		})
	}
}
