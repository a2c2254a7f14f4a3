package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meigma/flume/internal/protopatch"
)

var generateProtoc string

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Patch schemas and compile them with protoc",
	Long: `Generate patches the manifest's schemas into a temporary tree,
compiles them with protoc, verifies the emitted descriptor set, and
writes the generated Go code to the manifest's output directory.

Requires protoc and protoc-gen-go on PATH.

Examples:
  protogen generate --manifest protogen.yaml
  protogen generate --protoc /usr/local/bin/protoc`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&generateProtoc, "protoc", "protoc", "Protocol buffer compiler binary")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	m, err := protopatch.LoadManifest(manifestPath)
	if err != nil {
		return err
	}

	compiler := protopatch.NewCompiler(newLogger())
	compiler.Protoc = generateProtoc

	set, err := compiler.Run(cmd.Context(), m)
	if err != nil {
		return err
	}

	fmt.Printf("Generated code for %d schemas into %s\n", len(set.GetFile()), m.Out)
	return nil
}
