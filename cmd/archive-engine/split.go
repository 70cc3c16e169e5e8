// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/archive-engine/internal/splitter"
	"github.com/pdiddy/archive-engine/pkg/types"
)

var splitCmd = &cobra.Command{
	Use:   "split [files...]",
	Short: "Convert export files to CSV, one row per document",
	Long: `Split reads each input file, cuts it into documents at the copyright
footers, extracts the labeled metadata fields, and writes X.csv for
every input X.txt. Wildcards such as *.txt process multiple files at
once. Unreadable files are reported and skipped; the rest of the batch
continues.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSplit,
}

func runSplit(cmd *cobra.Command, args []string) error {
	cfg := splitConfig(cmd)

	if cfg.OutDir != "" {
		if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	paths := splitter.ExpandGlobs(args)

	result := splitter.SplitPaths(paths, cfg, os.Stdout)
	if result.HasFailures() {
		return fmt.Errorf("%d file(s) failed", result.Failed)
	}
	return nil
}

// splitConfig resolves split settings: explicit flags win, then config
// file values, then defaults.
func splitConfig(cmd *cobra.Command) types.SplitConfig {
	outDir, _ := cmd.Flags().GetString("out-dir")
	includeText, _ := cmd.Flags().GetBool("text")
	minTagRatio, _ := cmd.Flags().GetFloat64("min-tag-ratio")
	suppress, _ := cmd.Flags().GetStringSlice("suppress-tag")
	encoding, _ := cmd.Flags().GetString("encoding")
	force, _ := cmd.Flags().GetBool("force")

	if outDir == "" {
		outDir = viper.GetString("split.out_dir")
	}
	if !cmd.Flags().Changed("min-tag-ratio") && viper.IsSet("split.min_tag_ratio") {
		minTagRatio = viper.GetFloat64("split.min_tag_ratio")
	}
	if !cmd.Flags().Changed("suppress-tag") && viper.IsSet("split.suppress_tags") {
		suppress = viper.GetStringSlice("split.suppress_tags")
	}
	if !cmd.Flags().Changed("encoding") && viper.IsSet("split.encoding") {
		encoding = viper.GetString("split.encoding")
	}

	return types.SplitConfig{
		OutDir:       outDir,
		IncludeText:  includeText,
		MinTagRatio:  minTagRatio,
		SuppressTags: suppress,
		Encoding:     types.InputEncoding(encoding),
		Force:        force,
	}
}

func init() {
	splitCmd.Flags().String("out-dir", "", "directory for CSV output (default: next to each input)")
	splitCmd.Flags().Bool("text", false, "append a TEXT column with the article body")
	splitCmd.Flags().Float64("min-tag-ratio", 0.20, "fraction of documents a discovered tag must appear in")
	splitCmd.Flags().StringSlice("suppress-tag", []string{"WELT"}, "discovered tags to ignore (repeatable)")
	splitCmd.Flags().String("encoding", "utf-8", "input encoding: utf-8, latin1, or windows-1252")
	splitCmd.Flags().Bool("force", false, "rewrite CSV output even when it is up to date")

	rootCmd.AddCommand(splitCmd)
}
