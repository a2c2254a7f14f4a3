package protopatch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"
)

// Compiler invokes the external protoc binary on patched schemas.
type Compiler struct {
	// Protoc is the compiler binary to run. Defaults to "protoc".
	Protoc string

	// Logger receives compilation progress. Defaults to a discard logger.
	Logger *slog.Logger
}

// NewCompiler creates a Compiler.
func NewCompiler(logger *slog.Logger) *Compiler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Compiler{
		Protoc: "protoc",
		Logger: logger,
	}
}

// Run patches the manifest's schemas into a temporary tree, compiles them
// with protoc, and verifies the emitted descriptor set. Generated Go code
// is written under m.Out.
func (c *Compiler) Run(ctx context.Context, m *Manifest) (*descriptorpb.FileDescriptorSet, error) {
	tempDir, err := os.MkdirTemp("", "protopatch-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	opts := m.PatchOptions()
	protos := make([]string, 0, len(m.Protos))
	for _, p := range m.Protos {
		patched := filepath.Join(tempDir, p)
		if err := PatchFile(p, patched, opts); err != nil {
			return nil, err
		}
		c.Logger.Debug("patched schema", "proto", p)
		protos = append(protos, patched)
	}

	includes := make([]string, 0, len(m.Includes))
	for _, inc := range m.Includes {
		includes = append(includes, filepath.Join(tempDir, inc))
	}

	if err := os.MkdirAll(m.Out, 0o750); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	descPath := filepath.Join(tempDir, "descriptor_set.pb")
	args := compileArgs(protos, includes, m.Out, descPath)

	cmd := exec.CommandContext(ctx, c.protoc(), args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("protoc: %w: %s", err, out)
	}

	set, err := readDescriptorSet(descPath)
	if err != nil {
		return nil, err
	}

	c.Logger.Info("compiled schemas",
		"files", len(set.GetFile()),
		"messages", messageCount(set),
		"out", m.Out,
	)
	return set, nil
}

func (c *Compiler) protoc() string {
	if c.Protoc != "" {
		return c.Protoc
	}
	return "protoc"
}

// compileArgs builds the protoc argument list for a patched tree.
func compileArgs(protos, includes []string, outDir, descPath string) []string {
	args := make([]string, 0, 2*len(includes)+len(protos)+4)
	for _, inc := range includes {
		args = append(args, "-I", inc)
	}
	args = append(args,
		"--go_out="+outDir,
		"--go_opt=paths=source_relative",
		"--descriptor_set_out="+descPath,
		"--include_imports",
	)
	return append(args, protos...)
}

// readDescriptorSet parses the descriptor set protoc emitted, proving the
// compiled schemas are loadable message definitions.
func readDescriptorSet(path string) (*descriptorpb.FileDescriptorSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read descriptor set: %w", err)
	}

	var set descriptorpb.FileDescriptorSet
	if err := proto.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("parse descriptor set: %w", err)
	}
	if len(set.GetFile()) == 0 {
		return nil, fmt.Errorf("descriptor set %s contains no files", path)
	}
	return &set, nil
}

func messageCount(set *descriptorpb.FileDescriptorSet) int {
	n := 0
	for _, f := range set.GetFile() {
		n += len(f.GetMessageType())
	}
	return n
}
