// Package cli implements the flume command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/meigma/flume"
	"github.com/meigma/flume/cmd/flume/cli/config"
)

// Build information set via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Global flags.
var verbose bool

var rootCmd = &cobra.Command{
	Use:   "flume",
	Short: "Conditional stream copies and chunk joining",
	Long: `Flume copies byte streams with a caller-chosen stop condition and
reassembles sequences of byte chunks into a single stream.

Copies stop on source exhaustion, a byte limit, or a timeout, and the
stop condition is checked between buffer-sized rounds rather than per
byte, so a limit may overshoot by up to one buffer.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose debug logging")
	rootCmd.Version = version
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, formatError(err))
	}
	return err
}

// initConfig loads the config file and environment overrides into viper.
func initConfig() {
	viper.SetDefault("progress", "auto")
	viper.SetDefault("copy.buffer-size", "")

	if configDir, err := config.Dir(); err == nil {
		viper.AddConfigPath(configDir)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		// A missing config file is fine; only report genuine parse errors.
		var notFound viper.ConfigFileNotFoundError
		if err := viper.ReadInConfig(); err != nil && !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	viper.SetEnvPrefix("FLUME")
	viper.AutomaticEnv()
}

// newLogger creates the CLI logger honoring the --verbose flag.
func newLogger() *slog.Logger {
	if verbose {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.DiscardHandler)
}

// signalContext returns a context that is canceled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}

// configPath returns the path of the yaml config file.
func configPath() (string, error) {
	configDir, err := config.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.yaml"), nil
}

// formatError converts flume errors to user-friendly messages.
func formatError(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, flume.ErrClosed):
		return "Error: stream already closed"
	case errors.Is(err, os.ErrNotExist):
		return fmt.Sprintf("Error: no such file: %v", err)
	case errors.Is(err, context.Canceled):
		return "Error: operation canceled"
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}
