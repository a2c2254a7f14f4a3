package flume

import (
	"iter"

	"github.com/meigma/flume/core"
	"github.com/meigma/flume/internal/chunkio"
)

// NextChunk pulls the next chunk from a lazy byte-chunk sequence.
// Re-exported from core package.
type NextChunk = core.NextChunk

// ChunkReader exposes a lazy sequence of byte chunks through the io.Reader
// contract, so it can serve as the source of a copy. See the package
// documentation for usage.
type ChunkReader = chunkio.Reader

// NewChunkReader creates a ChunkReader over next. The reader assumes
// exclusive access to the sequence for its lifetime.
func NewChunkReader(next NextChunk) *ChunkReader {
	return chunkio.NewReader(next)
}

// NewChunkReaderSeq creates a ChunkReader over an iterator of chunks.
// The sequence is pulled one chunk at a time and never prefetched.
// Callers that abandon the reader before end of stream should call Close
// to release the iterator.
func NewChunkReaderSeq(seq iter.Seq[[]byte]) *ChunkReader {
	return chunkio.NewReaderSeq(seq)
}
