// Common package contains commonly used functions that benefit multiple tools
// Exporting these functions from the Common package reduces redundant code
package common

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
)

// OpenInput opens a plain or gzip-compressed file for reading.
// Compression is detected from the gzip magic bytes, not the file extension,
// so renamed or extension-less archives are still read correctly.
func OpenInput(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	br := bufio.NewReader(f)
	magic, err := br.Peek(2)
	if err == nil && magic[0] == 0x1F && magic[1] == 0x8B {
		gr, err := gzip.NewReader(br)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to open gzip reader: %w", err)
		}
		return &readCloser{Reader: gr, closers: []io.Closer{gr, f}}, nil
	}
	return &readCloser{Reader: br, closers: []io.Closer{f}}, nil
}

// CreateOutput creates (truncating) a buffered output file.
// Paths ending in ".gz" are gzip-compressed on the fly.
func CreateOutput(path string) (io.WriteCloser, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	if strings.HasSuffix(path, ".gz") {
		gz := gzip.NewWriter(f)
		bw := bufio.NewWriterSize(gz, 1<<16)
		return &writeCloser{w: bw, flush: bw.Flush, closers: []io.Closer{gz, f}}, nil
	}
	bw := bufio.NewWriterSize(f, 1<<16)
	return &writeCloser{w: bw, flush: bw.Flush, closers: []io.Closer{f}}, nil
}

type readCloser struct {
	io.Reader
	closers []io.Closer
}

func (r *readCloser) Close() error {
	var first error
	for _, c := range r.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// writeCloser flushes the buffer, then closes the gzip stream (if any) and the file, in that order.
type writeCloser struct {
	w       io.Writer
	flush   func() error
	closers []io.Closer
	closed  bool
}

func (w *writeCloser) Write(p []byte) (int, error) { return w.w.Write(p) }

// Close is safe to call more than once; only the first call does any work.
func (w *writeCloser) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	first := w.flush()
	for _, c := range w.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
