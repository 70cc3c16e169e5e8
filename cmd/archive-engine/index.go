// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/archive-engine/internal/archive"
	"github.com/pdiddy/archive-engine/internal/report"
	"github.com/pdiddy/archive-engine/internal/splitter"
	"github.com/pdiddy/archive-engine/pkg/types"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Maintain a local full-text archive over split output (store, retrieve, export)",
	Long: `Index manages a local SQLite archive built from split CSV files. Use
subcommands to ingest documents, query them with full-text search, or
export the archive.`,
}

// --- store subcommand ---

var indexStoreCmd = &cobra.Command{
	Use:   "store [csv-files...]",
	Short: "Ingest split CSV files into the archive",
	Long: `Store reads split CSV output, ingests the document rows into a SQLite
database with FTS5 indexing, and records each source file's mod time.
Unchanged files are skipped on subsequent runs; changed files replace
their previous rows.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIndexStore,
}

func runIndexStore(cmd *cobra.Command, args []string) error {
	store, err := archive.NewStore(archiveConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	paths := splitter.ExpandGlobs(args)

	summary, err := store.Ingest(context.Background(), paths, os.Stdout)
	if err != nil {
		return err
	}
	if summary.HasFailures() {
		return fmt.Errorf("%d file(s) failed indexing", summary.Failed)
	}
	return nil
}

// --- retrieve subcommand ---

var indexRetrieveCmd = &cobra.Command{
	Use:   "retrieve [query]",
	Short: "Query the archive with full-text search and filters",
	Long: `Retrieve searches the archive using FTS5 full-text search over title,
body, and publication, structured filters (publication, year, source
file), or a combination of both.`,
	RunE: runIndexRetrieve,
}

func runIndexRetrieve(cmd *cobra.Command, args []string) error {
	store, err := archive.NewStore(archiveConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	opts := queryOptsFromFlags(cmd, args)
	if opts.IsEmpty() {
		return fmt.Errorf("query or filter required: provide a search query, --publication, --year, or --source")
	}

	results, err := store.Retrieve(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatRetrieveOutput(results, jsonOutput)
}

func formatRetrieveOutput(results []archive.QueryResult, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	rows := make([][]string, len(results))
	for i, r := range results {
		rows[i] = []string{
			r.ID,
			r.Date,
			report.Truncate(r.Publication, 24),
			report.Truncate(r.Title, 50),
			r.SourceFile,
		}
	}
	report.Table(os.Stdout, []string{"ID", "Date", "Publication", "Title", "Source"}, rows)

	fmt.Fprintf(os.Stdout, "\n%d results\n", len(results))
	return nil
}

// --- export subcommand ---

var indexExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the archive to YAML, JSON, or CSV",
	Long: `Export writes the full archive (or a filtered subset) to
archive/index/export.yaml, export.json, or export.csv. Supports the
same filter flags as retrieve for partial exports.`,
	RunE: runIndexExport,
}

func runIndexExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	store, err := archive.NewStore(archiveConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	opts := queryOptsFromFlags(cmd, args)

	var path string
	switch format {
	case "yaml", "":
		path, err = store.ExportYAML(context.Background(), opts)
	case "json":
		path, err = store.ExportJSON(context.Background(), opts)
	case "csv":
		path, err = store.ExportCSV(context.Background(), opts)
	default:
		return fmt.Errorf("unsupported format %q: use yaml, json, or csv", format)
	}
	if err != nil {
		return err
	}

	fmt.Println("Exported to", path)
	return nil
}

// --- shared helpers ---

func archiveConfig(cmd *cobra.Command) types.ArchiveConfig {
	archiveDir, _ := cmd.Flags().GetString("archive-dir")
	if archiveDir == "" {
		archiveDir = viper.GetString("archive.archive_dir")
	}
	if archiveDir == "" {
		archiveDir = "archive"
	}
	maxResults, _ := cmd.Flags().GetInt("max-results")

	return types.ArchiveConfig{
		ArchiveDir: archiveDir,
		MaxResults: maxResults,
	}
}

func queryOptsFromFlags(cmd *cobra.Command, args []string) archive.QueryOptions {
	queryText, _ := cmd.Flags().GetString("query")
	if queryText == "" && len(args) > 0 {
		queryText = strings.Join(args, " ")
	}

	publication, _ := cmd.Flags().GetString("publication")
	year, _ := cmd.Flags().GetString("year")
	source, _ := cmd.Flags().GetString("source")
	limit, _ := cmd.Flags().GetInt("limit")

	return archive.QueryOptions{
		Query:       queryText,
		Publication: publication,
		Year:        year,
		SourceFile:  source,
		MaxResults:  limit,
	}
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	indexCmd.PersistentFlags().String("archive-dir", "", "base directory for the archive (contains index/)")
	indexCmd.PersistentFlags().Int("max-results", 20, "maximum number of query results")

	// Retrieve flags.
	indexRetrieveCmd.Flags().String("query", "", "full-text search query")
	indexRetrieveCmd.Flags().String("publication", "", "filter by outlet name")
	indexRetrieveCmd.Flags().String("year", "", "filter by publication year")
	indexRetrieveCmd.Flags().String("source", "", "filter by source export file")
	indexRetrieveCmd.Flags().Int("limit", 0, "maximum results (0 uses --max-results)")
	indexRetrieveCmd.Flags().Bool("json", false, "output results as JSON")

	// Export flags.
	indexExportCmd.Flags().String("format", "yaml", "export format: yaml, json, or csv")
	indexExportCmd.Flags().String("query", "", "full-text search query")
	indexExportCmd.Flags().String("publication", "", "filter by outlet name")
	indexExportCmd.Flags().String("year", "", "filter by publication year")
	indexExportCmd.Flags().String("source", "", "filter by source export file")
	indexExportCmd.Flags().Int("limit", 0, "maximum results (0 exports everything matching)")

	indexCmd.AddCommand(indexStoreCmd)
	indexCmd.AddCommand(indexRetrieveCmd)
	indexCmd.AddCommand(indexExportCmd)
	rootCmd.AddCommand(indexCmd)
}
