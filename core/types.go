// Package core provides the shared types and errors for flume.
//
// This package exists to break import cycles between the root flume package
// and internal implementation packages. The flume package re-exports all
// public types from this package, so external users should import flume
// directly, not flume/core.
package core

import "errors"

// Sentinel errors for common failure conditions.
var (
	// ErrInterrupted indicates a read was interrupted before any bytes were
	// transferred. It is transient: the read can be retried immediately.
	// CopyUntil retries it internally and never returns it.
	ErrInterrupted = errors.New("flume: read interrupted")

	// ErrClosed indicates an operation was attempted on a closed resource.
	ErrClosed = errors.New("flume: resource closed")
)

// NextChunk pulls the next chunk from a lazy byte-chunk sequence.
// It returns false when the sequence is exhausted. The returned slice is
// borrowed: it must remain valid until the subsequent NextChunk call, and
// callers must not modify it. Zero-length chunks are permitted.
type NextChunk func() ([]byte, bool)

// ProgressEvent represents a progress update during a copy operation.
type ProgressEvent struct {
	// Operation identifies the operation type (e.g., "cp", "join").
	Operation string
	// BytesTransferred is the cumulative bytes transferred so far.
	BytesTransferred int64
	// TotalBytes is the total expected size, or -1 if unknown.
	TotalBytes int64
}

// ProgressCallback is called during copy operations to report progress.
// Implementations should be efficient as this may be called once per
// buffer round.
type ProgressCallback func(event ProgressEvent)
