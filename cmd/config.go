package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/zjrosen/membrane/tracing"
)

// Config holds the CLI configuration.
type Config struct {
	// Debug enables debug logging to stderr.
	Debug bool `yaml:"debug" mapstructure:"debug"`

	// Tracing configures span export for playground runs.
	Tracing tracing.Config `yaml:"tracing" mapstructure:"tracing"`
}

// Defaults returns the default CLI configuration.
func Defaults() Config {
	return Config{
		Debug:   false,
		Tracing: tracing.DefaultConfig(),
	}
}

// WriteDefaultConfig writes the default configuration as YAML to path,
// creating parent directories as needed. Fails if the file already exists.
func WriteDefaultConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file %s already exists", path)
	}

	data, err := yaml.Marshal(Defaults())
	if err != nil {
		return fmt.Errorf("marshal default config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func newConfigInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config:init [path]",
		Short: "Write a default config file",
		Long: `Write the default membrane configuration as YAML.

Defaults to .membrane.yaml in the current directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ".membrane.yaml"
			if len(args) == 1 {
				path = args[0]
			}
			if err := WriteDefaultConfig(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(newConfigInitCmd())
}
