package flume

import (
	"errors"
	"syscall"

	"github.com/meigma/flume/core"
)

// Sentinel errors for common failure conditions.
// Re-exported from core package.
var (
	// ErrInterrupted indicates a read was interrupted before any bytes
	// were transferred; the read can be retried immediately.
	ErrInterrupted = core.ErrInterrupted

	// ErrClosed indicates an operation was attempted on a closed resource.
	ErrClosed = core.ErrClosed
)

// IsInterrupted reports whether err is the transient interrupted-read
// condition. It matches ErrInterrupted as well as a wrapped syscall.EINTR,
// which os.File reads can surface on signal delivery.
//
// CopyUntil retries interrupted reads internally; callers only need this
// when driving a read loop themselves.
func IsInterrupted(err error) bool {
	return errors.Is(err, ErrInterrupted) || errors.Is(err, syscall.EINTR)
}
