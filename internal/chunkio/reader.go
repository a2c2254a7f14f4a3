// Package chunkio adapts lazy byte-chunk sequences to io.Reader.
package chunkio

import (
	"io"
	"iter"

	"github.com/meigma/flume/core"
)

// Compile-time interface implementation check.
var _ io.ReadCloser = (*Reader)(nil)

// Reader exposes a pull-based chunk sequence through the io.Reader
// contract. At most one chunk is active at a time; the sequence is
// advanced exactly once each time the active chunk is exhausted and is
// never prefetched further ahead.
type Reader struct {
	next core.NextChunk
	cur  []byte
	done bool

	stop   func()
	closed bool
}

// NewReader creates a Reader over next.
// The Reader assumes exclusive access to the sequence: it must be the only
// caller of next for its lifetime.
func NewReader(next core.NextChunk) *Reader {
	return &Reader{next: next}
}

// NewReaderSeq creates a Reader over a chunk sequence expressed as an
// iterator. The sequence is consumed through iter.Pull, one chunk at a
// time. Close releases the underlying iterator; callers that abandon the
// Reader before end of stream should call it.
func NewReaderSeq(seq iter.Seq[[]byte]) *Reader {
	next, stop := iter.Pull(seq)
	return &Reader{
		next: func() ([]byte, bool) { return next() },
		stop: stop,
	}
}

// Read copies bytes from the active chunk into p, pulling the next chunk
// from the sequence whenever no active chunk remains. Zero-length chunks
// are skipped transparently: they never produce a 0-byte read while later
// chunks remain. Once the sequence is exhausted, Read returns io.EOF on
// this and every subsequent call.
func (r *Reader) Read(p []byte) (int, error) {
	if r.closed {
		return 0, core.ErrClosed
	}

	for {
		if len(r.cur) > 0 {
			n := copy(p, r.cur)
			r.cur = r.cur[n:]
			return n, nil
		}

		if r.done {
			return 0, io.EOF
		}

		chunk, ok := r.next()
		if !ok {
			r.done = true
			r.next = nil
			return 0, io.EOF
		}
		r.cur = chunk
	}
}

// Close releases the underlying sequence. Reads after Close return
// ErrClosed. Close is idempotent.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	r.cur = nil
	r.next = nil
	if r.stop != nil {
		r.stop()
		r.stop = nil
	}
	return nil
}
