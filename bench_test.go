package flume_test

import (
	"io"
	"testing"

	"github.com/meigma/flume"
)

func BenchmarkCopyUntil(b *testing.B) {
	src := &repeatReader{b: 0xA5}
	buf := make([]byte, flume.DefaultBufferSize)
	const limit = 1 << 20

	b.SetBytes(limit)
	b.ReportAllocs()

	for b.Loop() {
		var written int64
		counter := writerFunc(func(p []byte) (int, error) {
			written += int64(len(p))
			return len(p), nil
		})
		_, err := flume.CopyUntilBuffer(counter, src, buf, func(io.Writer, io.Reader) bool {
			return written >= limit
		})
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkChunkReader(b *testing.B) {
	chunk := make([]byte, 4096)
	const limit = 1 << 20

	b.SetBytes(limit)
	b.ReportAllocs()

	for b.Loop() {
		var produced int64
		r := flume.NewChunkReader(func() ([]byte, bool) {
			if produced >= limit {
				return nil, false
			}
			produced += int64(len(chunk))
			return chunk, true
		})
		if _, err := io.Copy(io.Discard, r); err != nil {
			b.Fatal(err)
		}
	}
}

type writerFunc func(p []byte) (int, error)

func (f writerFunc) Write(p []byte) (int, error) { return f(p) }
