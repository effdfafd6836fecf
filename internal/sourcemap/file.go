package sourcemap

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/spf13/afero"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// LoadFile reads and decodes the source map stored at path. Gzip and zstd
// compressed maps are decompressed transparently.
func LoadFile(fs afero.Fs, path string) (*Map, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read source map %s: %w", path, err)
	}
	data, err = decompress(data)
	if err != nil {
		return nil, err
	}
	return Load(data)
}

func decompress(data []byte) ([]byte, error) {
	switch {
	case bytes.HasPrefix(data, gzipMagic):
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, &FormatError{Reason: "invalid gzip stream", Err: err}
		}
		defer r.Close() // nolint:errcheck
		out, err := io.ReadAll(r)
		if err != nil {
			return nil, &FormatError{Reason: "failed to decompress gzip", Err: err}
		}
		return out, nil
	case bytes.HasPrefix(data, zstdMagic):
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
		}
		defer dec.Close()
		out, err := dec.DecodeAll(data, nil)
		if err != nil {
			return nil, &FormatError{Reason: "failed to decompress zstd", Err: err}
		}
		return out, nil
	default:
		return data, nil
	}
}
