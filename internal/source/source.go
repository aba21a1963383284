// Package source resolves input arguments to readable log streams.
package source

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// ErrNoInput is returned when no input path was given or a pattern matched nothing
var ErrNoInput = errors.New("no input files")

// Expand resolves each argument to file paths, preserving argument order.
// Existing files and arguments without glob metacharacters are returned
// unchanged so that a missing file surfaces as an open error, not as an
// empty match.
func Expand(args []string) ([]string, error) {
	if len(args) == 0 {
		return nil, ErrNoInput
	}

	var paths []string
	for _, arg := range args {
		if !isPattern(arg) || exists(arg) {
			paths = append(paths, arg)
			continue
		}
		if !doublestar.ValidatePathPattern(filepath.ToSlash(arg)) {
			return nil, fmt.Errorf("invalid glob pattern %q", arg)
		}
		matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly(), doublestar.WithFailOnIOErrors())
		if err != nil {
			return nil, fmt.Errorf("expand %q: %w", arg, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("%w: pattern %q matched nothing", ErrNoInput, arg)
		}
		paths = append(paths, matches...)
	}
	return paths, nil
}

func isPattern(s string) bool {
	return strings.ContainsAny(s, "*?[{")
}

// exists reports whether s names a file literally, e.g. "auth[1].log".
func exists(s string) bool {
	_, err := os.Lstat(s)
	return err == nil
}

// Compression identifies how an input file is encoded
type Compression int

const (
	CompressionNone Compression = iota
	CompressionGzip
	CompressionZstd
)

// CompressionFor picks the decoder from the file extension
func CompressionFor(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz", ".gzip":
		return CompressionGzip
	case ".zst", ".zstd":
		return CompressionZstd
	default:
		return CompressionNone
	}
}

// Open opens a log file, transparently decompressing .gz and .zst inputs
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	rc, err := Decode(f, CompressionFor(path))
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rc, nil
}

// Decode wraps r with the decoder for c. Closing the result also closes r
// when r is an io.Closer.
func Decode(r io.Reader, c Compression) (io.ReadCloser, error) {
	switch c {
	case CompressionGzip:
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, err
		}
		return &stackedReader{Reader: gz, closers: []io.Closer{gz, asCloser(r)}}, nil
	case CompressionZstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		zr := dec.IOReadCloser()
		return &stackedReader{Reader: zr, closers: []io.Closer{zr, asCloser(r)}}, nil
	default:
		return &stackedReader{Reader: r, closers: []io.Closer{asCloser(r)}}, nil
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func asCloser(r io.Reader) io.Closer {
	if c, ok := r.(io.Closer); ok {
		return c
	}
	return nopCloser{}
}

// stackedReader closes decoder layers innermost-last.
type stackedReader struct {
	io.Reader
	closers []io.Closer
}

func (s *stackedReader) Close() error {
	var errs []error
	for _, c := range s.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
