// Package config provides configuration management for the flume CLI.
package config

// Config represents the flume CLI configuration.
// Use mapstructure tags for Viper unmarshaling.
type Config struct {
	// Progress selects the progress rendering mode: "auto", "tty", or "plain".
	Progress string `mapstructure:"progress"`

	Copy CopyConfig `mapstructure:"copy"`
}

// CopyConfig holds copy-related settings.
type CopyConfig struct {
	// BufferSize is the default scratch buffer size as a humanized string
	// (e.g., "8 KiB"). Empty means the library default.
	BufferSize string `mapstructure:"buffer-size"`
}
