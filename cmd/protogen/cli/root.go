// Package cli implements the protogen command-line interface.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// Global flags.
var (
	manifestPath string
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "protogen",
	Short: "Patch and compile malformed protobuf schemas",
	Long: `Protogen prepares protobuf schemas that ship without package or
go_package declarations, which protoc refuses to compile as-is.

It rewrites each schema, inserting the missing declarations right after
the syntax marker, and can then invoke protoc on the patched copies.
Schemas, includes, and the injected names come from a yaml manifest.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&manifestPath, "manifest", "protogen.yaml", "Path to the yaml manifest")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose debug logging")
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

// newLogger creates the CLI logger honoring the --verbose flag.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
