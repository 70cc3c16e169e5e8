// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the archive-engine CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the archive-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "archive-engine",
	Short: "Convert news-archive text exports into CSV records",
	Long: `archive-engine converts plain-text bibliographic export files from a
news-archive database into CSV records. Each export file holds many
concatenated documents; split cuts them apart, extracts the labeled
metadata fields (document number, publication, date, title, URL, photo
caption, length), and writes one CSV row per document.

Each stage is a subcommand: split converts export files to CSV, scan
reports the meta tags an export file carries, and index maintains a
local full-text archive over split output.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./archive-engine.yaml or ~/.config/archive-engine/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("archive-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "archive-engine"))
		}
	}

	viper.SetEnvPrefix("ARCHIVE_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
