package protopatch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "protogen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadManifest(t *testing.T) {
	t.Parallel()

	path := writeManifest(t, `
package: grr
go_package: github.com/meigma/flume/internal/protogen/grrpb
protos:
  - proto/jobs.proto
  - proto/knowledge_base.proto
includes:
  - proto
out: internal/protogen
`)

	m, err := LoadManifest(path)
	require.NoError(t, err)

	assert.Equal(t, "grr", m.Package)
	assert.Equal(t, "github.com/meigma/flume/internal/protogen/grrpb", m.GoPackage)
	assert.Equal(t, []string{"proto/jobs.proto", "proto/knowledge_base.proto"}, m.Protos)
	assert.Equal(t, []string{"proto"}, m.Includes)
	assert.Equal(t, "internal/protogen", m.Out)
}

func TestLoadManifest_DefaultOut(t *testing.T) {
	t.Parallel()

	path := writeManifest(t, `
package: grr
protos:
  - a.proto
`)

	m, err := LoadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, "gen", m.Out)
}

func TestLoadManifest_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{name: "no protos", content: "package: grr\n"},
		{name: "no package", content: "protos:\n  - a.proto\n"},
		{name: "bad yaml", content: "protos: [unclosed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := LoadManifest(writeManifest(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadManifest_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadManifest(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestManifest_PatchOptions(t *testing.T) {
	t.Parallel()

	m := &Manifest{Package: "grr", GoPackage: "example.com/pb"}
	assert.Equal(t, Options{Package: "grr", GoPackage: "example.com/pb"}, m.PatchOptions())
}
