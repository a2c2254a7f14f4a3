package flume

import "io"

// DefaultBufferSize is the scratch buffer size used by CopyUntil when the
// caller does not supply one. It matches the common stream-buffering
// convention of 8 KiB.
const DefaultBufferSize = 8 * 1024

// StopFunc decides whether a copy should stop. It is evaluated between
// transfer rounds, never mid-buffer, and receives the destination and
// source so it can observe accumulated state (e.g., a bytes.Buffer length).
// It must not read from src or write to dst.
type StopFunc func(dst io.Writer, src io.Reader) bool

// CopyUntil copies from src to dst until stop returns true, src is
// exhausted, or an error occurs. It returns the number of bytes written.
//
// A nil stop never stops: the call behaves like a buffered io.Copy.
// Stopping on the condition is success; no further bytes are read once
// stop reports true, so any overshoot is bounded by one buffer round.
//
// Interrupted reads (see IsInterrupted) that transferred no bytes are
// retried transparently, with the stop function re-evaluated before each
// retry. Any other read error, and any write error, is returned
// immediately; whatever was already written to dst remains there.
//
// Unlike io.Copy, CopyUntil never delegates to WriterTo or ReaderFrom:
// every transferred byte passes through the scratch buffer so that the
// stop function observes every round boundary.
func CopyUntil(dst io.Writer, src io.Reader, stop StopFunc) (int64, error) {
	return copyUntil(dst, src, nil, stop)
}

// CopyUntilBuffer is like CopyUntil but stages through buf.
// If buf is nil, a buffer of DefaultBufferSize is allocated.
// If buf has zero length, CopyUntilBuffer panics.
func CopyUntilBuffer(dst io.Writer, src io.Reader, buf []byte, stop StopFunc) (int64, error) {
	if buf != nil && len(buf) == 0 {
		panic("empty buffer in CopyUntilBuffer")
	}
	return copyUntil(dst, src, buf, stop)
}

func copyUntil(dst io.Writer, src io.Reader, buf []byte, stop StopFunc) (written int64, err error) {
	if buf == nil {
		buf = make([]byte, DefaultBufferSize)
	}

	for {
		if stop != nil && stop(dst, src) {
			return written, nil
		}

		nr, er := src.Read(buf)
		if nr > 0 {
			nw, ew := dst.Write(buf[:nr])
			if nw > 0 {
				written += int64(nw)
			}
			if ew != nil {
				return written, ew
			}
			if nw != nr {
				return written, io.ErrShortWrite
			}
		}

		if er != nil {
			if er == io.EOF {
				return written, nil
			}
			if nr == 0 && IsInterrupted(er) {
				continue
			}
			return written, er
		}

		if nr == 0 {
			return written, nil
		}
	}
}
