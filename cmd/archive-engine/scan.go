// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/archive-engine/internal/report"
	"github.com/pdiddy/archive-engine/internal/splitter"
)

var scanCmd = &cobra.Command{
	Use:   "scan [files...]",
	Short: "Report the meta tags an export file carries, without writing CSV",
	Long: `Scan segments each input file and prints a tag-discovery report: each
tag label found, its occurrence count, the fraction of documents it
covers, and whether it clears the coverage threshold. Use it to decide
which tags to suppress before a split run.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg := splitConfig(cmd)
	paths := splitter.ExpandGlobs(args)

	failed := 0
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			fmt.Fprintf(os.Stdout, "failed:  %s (%v)\n", path, err)
			failed++
			continue
		}

		a, err := splitter.Split(f, filepath.Base(path), cfg)
		f.Close()
		if err != nil {
			fmt.Fprintf(os.Stdout, "failed:  %s (%v)\n", path, err)
			failed++
			continue
		}

		fmt.Fprintf(os.Stdout, "%s: %d documents\n", a.Name, a.Len())

		rows := make([][]string, len(a.Tags))
		for i, t := range a.Tags {
			kept := "no"
			if t.Kept {
				kept = "yes"
			}
			rows[i] = []string{t.Name, fmt.Sprintf("%d", t.Count), fmt.Sprintf("%.0f%%", t.Ratio*100), kept}
		}
		report.Table(os.Stdout, []string{"Tag", "Count", "Coverage", "Considered"}, rows)
		fmt.Fprintln(os.Stdout)
	}

	if failed > 0 {
		return fmt.Errorf("%d file(s) failed", failed)
	}
	return nil
}

func init() {
	scanCmd.Flags().Float64("min-tag-ratio", 0.20, "fraction of documents a discovered tag must appear in")
	scanCmd.Flags().StringSlice("suppress-tag", []string{"WELT"}, "discovered tags to ignore (repeatable)")
	scanCmd.Flags().String("encoding", "utf-8", "input encoding: utf-8, latin1, or windows-1252")

	rootCmd.AddCommand(scanCmd)
}
