package sourcemap

import (
	"bytes"
	"os"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wasmsym/wasmsym/internal/testutil"
)

func fixtureJSON(t *testing.T) []byte {
	return testutil.SourceMap{Segments: []testutil.Segment{
		{GenColumn: 0x2648d, Source: "/proj/src/lib.rs", Line: 41, Column: 4},
	}}.JSON(t)
}

func gzipped(t *testing.T, data []byte) []byte {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func zstded(t *testing.T, data []byte) []byte {
	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	defer enc.Close() // nolint:errcheck
	return enc.EncodeAll(data, nil)
}

func TestLoadFile(t *testing.T) {
	plain := fixtureJSON(t)

	tests := []struct {
		name string
		data []byte
	}{
		{name: "plain", data: plain},
		{name: "gzip", data: gzipped(t, plain)},
		{name: "zstd", data: zstded(t, plain)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fs, "/maps/app.wasm.map", tt.data, 0o644))

			m, err := LoadFile(fs, "/maps/app.wasm.map")
			require.NoError(t, err)

			tok, ok := m.Lookup(0, 0x2648d)
			require.True(t, ok)
			src, _ := tok.Source()
			assert.Equal(t, "/proj/src/lib.rs", src)
			assert.Equal(t, uint32(41), tok.Line)
			assert.Equal(t, uint32(4), tok.Column)
		})
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(afero.NewMemMapFs(), "/nope.map")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	var fe *FormatError
	assert.NotErrorAs(t, err, &fe)
}

func TestLoadFile_CorruptCompressed(t *testing.T) {
	fs := afero.NewMemMapFs()
	corrupt := append([]byte{0x1f, 0x8b}, []byte("definitely not gzip")...)
	require.NoError(t, afero.WriteFile(fs, "/bad.map.gz", corrupt, 0o644))

	_, err := LoadFile(fs, "/bad.map.gz")
	var fe *FormatError
	require.ErrorAs(t, err, &fe)
}
