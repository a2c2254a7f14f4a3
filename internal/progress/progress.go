// Package progress provides utilities for tracking I/O progress.
package progress

import (
	"io"
	"sync/atomic"

	"github.com/meigma/flume/core"
)

// Reader wraps an io.Reader to track bytes read and report progress.
type Reader struct {
	reader    io.Reader
	callback  core.ProgressCallback
	operation string
	total     int64
	read      int64
}

// NewReader creates a progress-tracking reader.
// The total parameter should be the expected size (-1 if unknown).
// The callback is called after each Read that makes progress.
func NewReader(r io.Reader, operation string, total int64, callback core.ProgressCallback) *Reader {
	return &Reader{
		reader:    r,
		callback:  callback,
		operation: operation,
		total:     total,
	}
}

// Read implements io.Reader and reports progress after each read.
func (r *Reader) Read(p []byte) (n int, err error) {
	n, err = r.reader.Read(p)
	if n > 0 {
		r.read += int64(n)
		if r.callback != nil {
			r.callback(core.ProgressEvent{
				Operation:        r.operation,
				BytesTransferred: r.read,
				TotalBytes:       r.total,
			})
		}
	}
	return n, err
}

// Close closes the underlying reader if it implements io.Closer.
func (r *Reader) Close() error {
	if closer, ok := r.reader.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// Writer wraps an io.Writer and counts bytes written. The count is read
// with Count, typically from a copy stop function observing accumulated
// sink state between transfer rounds.
type Writer struct {
	writer  io.Writer
	written atomic.Int64
}

// NewWriter creates a counting writer around w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{writer: w}
}

// Write implements io.Writer.
func (w *Writer) Write(p []byte) (n int, err error) {
	n, err = w.writer.Write(p)
	if n > 0 {
		w.written.Add(int64(n))
	}
	return n, err
}

// Count returns the cumulative bytes written.
func (w *Writer) Count() int64 {
	return w.written.Load()
}
