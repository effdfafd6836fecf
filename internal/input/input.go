// Package input provides the text sources the filter reads from: a named
// file or an unbounded stream such as standard input.
package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/afero"
)

// Source delivers input either whole or one line at a time.
type Source interface {
	// ReadAll reads until the source is exhausted.
	ReadAll() (string, error)
	// ReadLine returns the next line including its terminator. A final
	// unterminated line is returned with a nil error; afterwards ReadLine
	// returns "", io.EOF.
	ReadLine() (string, error)
	Close() error
}

// Open returns a file-backed source for path, or a stream-backed source over
// stdin when path is empty.
func Open(fs afero.Fs, path string, stdin io.Reader) (Source, error) {
	if path == "" {
		return FromReader(stdin), nil
	}
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input %s: %w", path, err)
	}
	return &fileSource{
		file:         f,
		streamSource: newStream(f),
	}, nil
}

// FromReader returns a stream-backed source over r. Closing it does not
// close r.
func FromReader(r io.Reader) Source {
	return newStream(r)
}

type streamSource struct {
	r *bufio.Reader
}

func newStream(r io.Reader) *streamSource {
	return &streamSource{r: bufio.NewReader(r)}
}

func (s *streamSource) ReadAll() (string, error) {
	b, err := io.ReadAll(s.r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (s *streamSource) ReadLine() (string, error) {
	line, err := s.r.ReadString('\n')
	if errors.Is(err, io.EOF) && line != "" {
		return line, nil
	}
	return line, err
}

func (s *streamSource) Close() error {
	return nil
}

type fileSource struct {
	file afero.File
	*streamSource
}

func (f *fileSource) ReadAll() (string, error) {
	s, err := f.streamSource.ReadAll()
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", f.file.Name(), err)
	}
	return s, nil
}

func (f *fileSource) ReadLine() (string, error) {
	line, err := f.streamSource.ReadLine()
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read %s: %w", f.file.Name(), err)
	}
	return line, err
}

func (f *fileSource) Close() error {
	return f.file.Close()
}
