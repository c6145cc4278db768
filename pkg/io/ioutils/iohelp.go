// Package ioutils opens dataset and report paths, handling stdin/stdout and
// gzip compression.
package ioutils

import (
	"bufio"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// IsStdio reports whether path refers to stdin or stdout.
func IsStdio(path string) bool { return path == "" || path == "-" }

// OpenMaybeCompressed opens a file path or stdin ("-"). Input is gunzipped
// when the path ends in .gz or the stream starts with the gzip magic bytes.
func OpenMaybeCompressed(path string) (io.ReadCloser, error) {
	if IsStdio(path) {
		return gunzip(bufio.NewReader(os.Stdin), io.NopCloser(nil))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	rc, err := gunzip(bufio.NewReader(f), f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return rc, nil
}

func gunzip(br *bufio.Reader, under io.Closer) (io.ReadCloser, error) {
	if b, err := br.Peek(2); err != nil || b[0] != 0x1f || b[1] != 0x8b {
		return readCloser{Reader: br, close: under.Close}, nil
	}
	zr, err := gzip.NewReader(br)
	if err != nil {
		return nil, err
	}
	return readCloser{Reader: zr, close: func() error {
		_ = zr.Close()
		return under.Close()
	}}, nil
}

// CreateMaybeCompressed creates a file (or stdout for "-"). A path ending in
// .gz is gzip compressed. Close flushes and closes everything.
func CreateMaybeCompressed(path string) (io.WriteCloser, error) {
	if IsStdio(path) {
		bw := bufio.NewWriter(os.Stdout)
		return writeCloser{Writer: bw, close: bw.Flush}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".gz") {
		zw := gzip.NewWriter(f)
		return writeCloser{Writer: zw, close: func() error {
			if err := zw.Close(); err != nil {
				_ = f.Close()
				return err
			}
			return f.Close()
		}}, nil
	}
	bw := bufio.NewWriter(f)
	return writeCloser{Writer: bw, close: func() error {
		if err := bw.Flush(); err != nil {
			_ = f.Close()
			return err
		}
		return f.Close()
	}}, nil
}

// Ext returns the lower-cased extension of path, looking through a trailing
// .gz ("report.csv.gz" gives ".csv").
func Ext(path string) string {
	p := strings.ToLower(path)
	p = strings.TrimSuffix(p, ".gz")
	return filepath.Ext(p)
}

type readCloser struct {
	io.Reader
	close func() error
}

func (r readCloser) Close() error { return r.close() }

type writeCloser struct {
	io.Writer
	close func() error
}

func (w writeCloser) Close() error { return w.close() }
