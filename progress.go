package flume

import "github.com/meigma/flume/core"

// ProgressEvent represents a progress update during a copy operation.
// Re-exported from core package.
type ProgressEvent = core.ProgressEvent

// ProgressCallback is called during copy operations to report progress.
// Re-exported from core package.
type ProgressCallback = core.ProgressCallback
