package protopatch

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"
)

func TestCompileArgs(t *testing.T) {
	t.Parallel()

	args := compileArgs(
		[]string{"/tmp/x/proto/jobs.proto"},
		[]string{"/tmp/x/proto"},
		"internal/protogen",
		"/tmp/x/descriptor_set.pb",
	)

	assert.Equal(t, []string{
		"-I", "/tmp/x/proto",
		"--go_out=internal/protogen",
		"--go_opt=paths=source_relative",
		"--descriptor_set_out=/tmp/x/descriptor_set.pb",
		"--include_imports",
		"/tmp/x/proto/jobs.proto",
	}, args)
}

func TestNewCompiler_Defaults(t *testing.T) {
	t.Parallel()

	c := NewCompiler(nil)
	assert.Equal(t, "protoc", c.Protoc)
	assert.NotNil(t, c.Logger)

	c = NewCompiler(slog.New(slog.DiscardHandler))
	assert.Equal(t, "protoc", c.protoc())

	c.Protoc = ""
	assert.Equal(t, "protoc", c.protoc())
}

func TestReadDescriptorSet(t *testing.T) {
	t.Parallel()

	set := &descriptorpb.FileDescriptorSet{
		File: []*descriptorpb.FileDescriptorProto{
			{
				Name:    proto.String("jobs.proto"),
				Package: proto.String("grr"),
				MessageType: []*descriptorpb.DescriptorProto{
					{Name: proto.String("StatEntry")},
					{Name: proto.String("BufferReference")},
				},
			},
		},
	}
	data, err := proto.Marshal(set)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "descriptor_set.pb")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	got, err := readDescriptorSet(path)
	require.NoError(t, err)
	assert.Len(t, got.GetFile(), 1)
	assert.Equal(t, 2, messageCount(got))
}

func TestReadDescriptorSet_Empty(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "descriptor_set.pb")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	_, err := readDescriptorSet(path)
	assert.Error(t, err)
}

func TestReadDescriptorSet_Corrupt(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "descriptor_set.pb")
	require.NoError(t, os.WriteFile(path, []byte("not a descriptor set"), 0o600))

	_, err := readDescriptorSet(path)
	assert.Error(t, err)
}
