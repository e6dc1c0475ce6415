// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pptx2pro CLI. With no subcommand
// it converts every configured hymnal batch (ph, then sb) from slide decks
// into ProPresenter 6 documents and bundles.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pptx2pro/internal/logger"
	"github.com/pdiddy/pptx2pro/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the pptx2pro CLI.
var rootCmd = &cobra.Command{
	Use:   "pptx2pro",
	Short: "Convert hymn slide decks into ProPresenter 6 documents",
	Long: `pptx2pro reads hymn slide decks (.pptx) from src-<prefix>/ directories,
recovers title, credit and verse structure from each deck, and writes one
ProPresenter 6 document (.pro6) per deck plus a bundle-<prefix>.pro6x archive
per batch.

Run without a subcommand to convert every configured prefix in order. Each
converted song is also recorded in a local SQLite catalog that can be listed
or exported.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert(cmd, nil)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pptx2pro.yaml or ~/.config/pptx2pro/pptx2pro.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "", "log format: console or json")
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("convert.source_root", ".")
	v.SetDefault("convert.output_dir", "output")
	v.SetDefault("convert.bundle_dir", ".")
	v.SetDefault("convert.extension", "pro6")
	v.SetDefault("convert.concurrency", 0)
	v.SetDefault("convert.prefixes", []string{"ph", "sb"})
	v.SetDefault("catalog.enabled", true)
	v.SetDefault("catalog.path", filepath.Join("catalog", "songs.db"))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", logger.FormatConsole)
}

func initConfig() {
	setDefaults(viper.GetViper())

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pptx2pro")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pptx2pro"))
		}
	}

	viper.SetEnvPrefix("PPTX2PRO")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig decodes the merged flag, environment, file and default
// settings.
func loadConfig(v *viper.Viper) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decoding configuration: %w", err)
	}
	return cfg, nil
}

// runLogger builds the run log on stderr.
func runLogger(cfg types.Config) zerolog.Logger {
	return logger.New(cfg.Log, os.Stderr)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
