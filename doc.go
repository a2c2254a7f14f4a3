// Package flume provides small stream primitives that extend the standard
// io package: a copy operation that stops on a caller-supplied condition,
// and a reader over a lazily-produced sequence of byte chunks.
//
// # Conditional copy
//
// CopyUntil behaves like io.Copy, except that a stop function is evaluated
// between buffer-sized transfer rounds:
//
//	var buf bytes.Buffer
//	src, _ := os.Open("/dev/urandom")
//
//	written, err := flume.CopyUntil(&buf, src, func(io.Writer, io.Reader) bool {
//	    return buf.Len() >= 1024
//	})
//
// The stop function is not checked after each copied byte, so the copy may
// overshoot the condition by up to one buffer round. Callers needing an
// exact cutoff should pick a condition tolerant of this slack.
//
// # Chunk sequences
//
// ChunkReader adapts a pull-based chunk sequence to io.Reader, so it can
// itself serve as the source of a copy:
//
//	r := flume.NewChunkReaderSeq(slices.Values(chunks))
//	defer r.Close()
//
//	written, err := flume.CopyUntil(dst, r, nil)
//
// Only one chunk is held at a time, bounding memory to the size of the
// current chunk.
package flume
