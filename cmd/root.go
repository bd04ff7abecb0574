// Package cmd implements the membrane CLI. The CLI is a development aid:
// the playground builds and runs a demo component tree, and graph renders
// it. The runtime itself is a library; nothing here is required to embed it.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/membrane/internal/log"
)

var (
	version = "dev"
	cfgFile string
	cfg     Config
)

var rootCmd = &cobra.Command{
	Use:     "membrane",
	Short:   "A hierarchical component-composition runtime",
	Long: `Membrane wraps business objects in components governed by naming,
scope, lifecycle, binding, and parameter controllers. Operating on a
container component cascades to its whole subtree.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/membrane/config.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false,
		"enable debug logging to stderr")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
}

func initConfig() {
	defaults := Defaults()
	viper.SetDefault("debug", defaults.Debug)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)
	viper.SetDefault("tracing.service_name", defaults.Tracing.ServiceName)

	viper.SetEnvPrefix("MEMBRANE")
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .membrane.yaml (current directory)
		// 2. ~/.config/membrane/config.yaml (user config)
		if _, err := os.Stat(".membrane.yaml"); err == nil {
			viper.SetConfigFile(".membrane.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "membrane"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// Missing config is fine; run on defaults.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			fmt.Fprintf(os.Stderr, "warning: reading config: %v\n", err)
		}
	}

	_ = viper.Unmarshal(&cfg)

	if cfg.Debug {
		log.InitWithWriter(os.Stderr)
	}
}

// SetVersion sets the version string reported by --version.
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return err
	}
	return nil
}
