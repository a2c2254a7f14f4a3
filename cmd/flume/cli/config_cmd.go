package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage flume configuration",
	Long: `View and modify flume configuration.

Without arguments, displays the current effective configuration.
Use subcommands to view the config path or set configuration values.`,
	RunE: runConfigShow,
}

func init() {
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show configuration file path",
	RunE: func(_ *cobra.Command, _ []string) error {
		path, err := configPath()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the config file.

Examples:
  flume config set progress plain
  flume config set copy.buffer-size 64KiB`,
	Args: cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		// Parse boolean values
		var parsedValue any
		switch value {
		case "true":
			parsedValue = true
		case "false":
			parsedValue = false
		default:
			parsedValue = value
		}

		// Set in Viper
		viper.Set(key, parsedValue)

		// Write to config file
		path, err := configPath()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return err
		}
		if err := viper.WriteConfigAs(path); err != nil {
			return fmt.Errorf("write config: %w", err)
		}

		fmt.Printf("Updated %s = %v\n", key, parsedValue)
		return nil
	},
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	// Show all settings with their effective values
	settings := viper.AllSettings()
	data, err := yaml.Marshal(settings)
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}
