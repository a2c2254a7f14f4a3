package protopatch

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatch_InsertsAfterSyntaxLine(t *testing.T) {
	t.Parallel()

	in := strings.Join([]string{
		`// A malformed schema without a package declaration.`,
		`syntax = "proto3";`,
		``,
		`message KnowledgeBase {`,
		`  string os = 1;`,
		`}`,
	}, "\n") + "\n"

	var out strings.Builder
	err := Patch(&out, strings.NewReader(in), Options{
		Package:   "grr",
		GoPackage: "github.com/meigma/flume/internal/protogen/grrpb",
	})
	require.NoError(t, err)

	want := strings.Join([]string{
		`// A malformed schema without a package declaration.`,
		`syntax = "proto3";`,
		`package grr;`,
		`option go_package = "github.com/meigma/flume/internal/protogen/grrpb";`,
		``,
		`message KnowledgeBase {`,
		`  string os = 1;`,
		`}`,
	}, "\n") + "\n"
	assert.Equal(t, want, out.String())
}

func TestPatch_PackageOnly(t *testing.T) {
	t.Parallel()

	in := "syntax = \"proto2\";\nmessage M {}\n"

	var out strings.Builder
	require.NoError(t, Patch(&out, strings.NewReader(in), Options{Package: "grr"}))
	assert.Equal(t, "syntax = \"proto2\";\npackage grr;\nmessage M {}\n", out.String())
}

func TestPatch_KeepsExistingPackage(t *testing.T) {
	t.Parallel()

	in := "syntax = \"proto3\";\npackage already.here;\nmessage M {}\n"

	var out strings.Builder
	require.NoError(t, Patch(&out, strings.NewReader(in), Options{Package: "grr"}))
	assert.Equal(t, in, out.String())
}

func TestPatch_KeepsExistingGoPackage(t *testing.T) {
	t.Parallel()

	in := strings.Join([]string{
		`syntax = "proto3";`,
		`option go_package = "example.com/pb";`,
		`message M {}`,
	}, "\n") + "\n"

	var out strings.Builder
	err := Patch(&out, strings.NewReader(in), Options{
		Package:   "grr",
		GoPackage: "example.com/other",
	})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "package grr;")
	assert.Equal(t, 1, strings.Count(out.String(), "go_package"))
	assert.Contains(t, out.String(), `option go_package = "example.com/pb";`)
}

func TestPatch_NoSyntaxLine(t *testing.T) {
	t.Parallel()

	in := "message M {}\n"

	var out strings.Builder
	require.NoError(t, Patch(&out, strings.NewReader(in), Options{Package: "grr"}))
	assert.Equal(t, in, out.String(), "nothing is inserted without a syntax marker")
}

func TestPatch_NormalizesLineEndings(t *testing.T) {
	t.Parallel()

	in := "syntax = \"proto3\";\r\nmessage M {}"

	var out strings.Builder
	require.NoError(t, Patch(&out, strings.NewReader(in), Options{Package: "grr"}))
	assert.Equal(t, "syntax = \"proto3\";\npackage grr;\nmessage M {}\n", out.String())
}

func TestPatch_EmptyInput(t *testing.T) {
	t.Parallel()

	var out strings.Builder
	require.NoError(t, Patch(&out, strings.NewReader(""), Options{Package: "grr"}))
	assert.Empty(t, out.String())
}

func TestPatchFile_CreatesParentDirs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "in.proto")
	require.NoError(t, os.WriteFile(src, []byte("syntax = \"proto3\";\n"), 0o600))

	dst := filepath.Join(dir, "patched", "nested", "in.proto")
	require.NoError(t, PatchFile(src, dst, Options{Package: "grr"}))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "syntax = \"proto3\";\npackage grr;\n", string(data))
}

func TestPatchFile_MissingSource(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	err := PatchFile(filepath.Join(dir, "absent.proto"), filepath.Join(dir, "out.proto"), Options{Package: "grr"})
	assert.ErrorIs(t, err, os.ErrNotExist)
}
