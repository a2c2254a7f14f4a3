package progress

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/flume/core"
)

type mockCloser struct {
	io.Reader
	onClose func() error
}

func (m *mockCloser) Close() error {
	return m.onClose()
}

func TestReader_TracksProgress(t *testing.T) {
	t.Parallel()

	data := []byte("hello world")
	r := bytes.NewReader(data)

	var events []core.ProgressEvent
	pr := NewReader(r, "cp", int64(len(data)), func(event core.ProgressEvent) {
		events = append(events, event)
	})

	buf := make([]byte, 5)
	n, err := pr.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	require.Len(t, events, 1)
	assert.Equal(t, "cp", events[0].Operation)
	assert.Equal(t, int64(5), events[0].BytesTransferred)
	assert.Equal(t, int64(11), events[0].TotalBytes)

	// Read remaining
	_, err = io.ReadAll(pr)
	require.NoError(t, err)
	assert.Equal(t, int64(11), events[len(events)-1].BytesTransferred)
}

func TestReader_NilCallback(t *testing.T) {
	t.Parallel()

	data := []byte("hello")
	pr := NewReader(bytes.NewReader(data), "cp", int64(len(data)), nil)

	buf, err := io.ReadAll(pr)
	require.NoError(t, err)
	assert.Equal(t, data, buf)
}

func TestReader_CloseClosesUnderlying(t *testing.T) {
	t.Parallel()

	closed := false
	r := &mockCloser{
		Reader: bytes.NewReader([]byte("test")),
		onClose: func() error {
			closed = true
			return nil
		},
	}

	pr := NewReader(r, "cp", 4, nil)
	require.NoError(t, pr.Close())
	assert.True(t, closed)
}

func TestReader_CloseNonCloser(t *testing.T) {
	t.Parallel()

	pr := NewReader(bytes.NewReader([]byte("test")), "cp", 4, nil)
	require.NoError(t, pr.Close())
}

func TestWriter_CountsBytes(t *testing.T) {
	t.Parallel()

	var sink bytes.Buffer
	w := NewWriter(&sink)
	assert.Zero(t, w.Count())

	n, err := w.Write([]byte("hello "))
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	_, err = w.Write([]byte("world"))
	require.NoError(t, err)

	assert.Equal(t, int64(11), w.Count())
	assert.Equal(t, "hello world", sink.String())
}
