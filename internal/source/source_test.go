package source

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = "[2024-01-01 00:00:00] FAILED LOGIN from 10.0.0.1\n"

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func readAll(t *testing.T, path string) string {
	t.Helper()
	rc, err := Open(path)
	require.NoError(t, err)
	defer func() { require.NoError(t, rc.Close()) }()
	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	return string(b)
}

func TestExpand(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.log"), []byte(sample))
	writeFile(t, filepath.Join(dir, "nested", "b.log"), []byte(sample))
	writeFile(t, filepath.Join(dir, "nested", "c.txt"), []byte(sample))

	t.Run("keeps literal paths", func(t *testing.T) {
		got, err := Expand([]string{"missing.log", filepath.Join(dir, "a.log")})
		require.NoError(t, err)
		assert.Equal(t, []string{"missing.log", filepath.Join(dir, "a.log")}, got)
	})

	t.Run("expands recursive globs", func(t *testing.T) {
		got, err := Expand([]string{filepath.Join(dir, "**", "*.log")})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{
			filepath.Join(dir, "a.log"),
			filepath.Join(dir, "nested", "b.log"),
		}, got)
	})

	t.Run("pattern without matches", func(t *testing.T) {
		_, err := Expand([]string{filepath.Join(dir, "*.gz")})
		assert.ErrorIs(t, err, ErrNoInput)
	})

	t.Run("existing file with metacharacters is literal", func(t *testing.T) {
		literal := filepath.Join(dir, "auth[1].log")
		writeFile(t, literal, []byte(sample))

		got, err := Expand([]string{literal})
		require.NoError(t, err)
		assert.Equal(t, []string{literal}, got)
	})

	t.Run("unreadable directory fails the glob", func(t *testing.T) {
		if os.Geteuid() == 0 {
			t.Skip("root can read any directory")
		}
		root := t.TempDir()
		locked := filepath.Join(root, "locked")
		writeFile(t, filepath.Join(locked, "d.log"), []byte(sample))
		require.NoError(t, os.Chmod(locked, 0o000))
		t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

		_, err := Expand([]string{filepath.Join(root, "**", "*.log")})
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrNoInput)
	})

	t.Run("no arguments", func(t *testing.T) {
		_, err := Expand(nil)
		assert.ErrorIs(t, err, ErrNoInput)
	})
}

func TestCompressionFor(t *testing.T) {
	assert.Equal(t, CompressionNone, CompressionFor("auth.log"))
	assert.Equal(t, CompressionGzip, CompressionFor("auth.log.1.GZ"))
	assert.Equal(t, CompressionZstd, CompressionFor("auth.log.zst"))
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	t.Run("plain", func(t *testing.T) {
		path := filepath.Join(dir, "plain.log")
		writeFile(t, path, []byte(sample))
		assert.Equal(t, sample, readAll(t, path))
	})

	t.Run("gzip", func(t *testing.T) {
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		_, err := zw.Write([]byte(sample))
		require.NoError(t, err)
		require.NoError(t, zw.Close())

		path := filepath.Join(dir, "auth.log.gz")
		writeFile(t, path, buf.Bytes())
		assert.Equal(t, sample, readAll(t, path))
	})

	t.Run("zstd", func(t *testing.T) {
		enc, err := zstd.NewWriter(nil)
		require.NoError(t, err)
		data := enc.EncodeAll([]byte(sample), nil)
		require.NoError(t, enc.Close())

		path := filepath.Join(dir, "auth.log.zst")
		writeFile(t, path, data)
		assert.Equal(t, sample, readAll(t, path))
	})

	t.Run("corrupt gzip", func(t *testing.T) {
		path := filepath.Join(dir, "bad.gz")
		writeFile(t, path, []byte("not gzip"))
		_, err := Open(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Open(filepath.Join(dir, "nope.log"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
