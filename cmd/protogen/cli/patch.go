package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/meigma/flume/internal/protopatch"
)

var patchOut string

var patchCmd = &cobra.Command{
	Use:   "patch",
	Short: "Patch schemas without compiling them",
	Long: `Patch rewrites the manifest's schemas into the output directory,
keeping their relative layout, and inserts the missing package and
go_package declarations. No compiler is invoked.

Examples:
  protogen patch --manifest protogen.yaml --out patched`,
	Args: cobra.NoArgs,
	RunE: runPatch,
}

func init() {
	patchCmd.Flags().StringVar(&patchOut, "out", "patched", "Output directory for patched schemas")
	rootCmd.AddCommand(patchCmd)
}

func runPatch(_ *cobra.Command, _ []string) error {
	logger := newLogger()

	m, err := protopatch.LoadManifest(manifestPath)
	if err != nil {
		return err
	}

	opts := m.PatchOptions()
	for _, proto := range m.Protos {
		dst := filepath.Join(patchOut, proto)
		if err := protopatch.PatchFile(proto, dst, opts); err != nil {
			return err
		}
		logger.Debug("patched schema", "proto", proto, "dst", dst)
	}

	fmt.Printf("Patched %d schemas into %s\n", len(m.Protos), patchOut)
	return nil
}
