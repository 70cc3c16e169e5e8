// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package splitter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/archive-engine/internal/csvio"
	"github.com/pdiddy/archive-engine/internal/extract"
	"github.com/pdiddy/archive-engine/pkg/types"
)

// BatchResult holds the outcome of a batch split run.
type BatchResult struct {
	Written int
	Skipped int
	Failed  int
}

// Total returns the total number of input files processed.
func (r BatchResult) Total() int {
	return r.Written + r.Skipped + r.Failed
}

// HasFailures reports whether any files failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Documents extracts one record per span, in source order. Each call
// re-parses the retained spans, so the sequence is restartable.
func (a *Archive) Documents(cfg types.SplitConfig) []types.Document {
	considered := a.ConsideredTags(cfg)
	docs := make([]types.Document, len(a.Spans))
	for i, span := range a.Spans {
		doc := extract.Parse(span, considered, cfg.IncludeText)
		doc.SourceFile = a.Name
		doc.Seq = i + 1
		docs[i] = doc
	}
	return docs
}

// SplitStatus is the outcome of splitting one file.
type SplitStatus int

const (
	StatusWritten SplitStatus = iota
	StatusSkipped
)

// SplitFile converts one export file to CSV. For input X.txt the output is
// X.csv, next to the input unless cfg.OutDir is set. It prints the set of
// meta tags considered and the item count to w. When the CSV is already
// newer than its input the file is skipped; cfg.Force overrides.
func SplitFile(path string, cfg types.SplitConfig, w io.Writer) (SplitStatus, error) {
	outPath := outputPath(path, cfg.OutDir)
	if !cfg.Force && upToDate(path, outPath) {
		fmt.Fprintf(w, "skipped: %s (%s is up to date)\n", path, outPath)
		return StatusSkipped, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return StatusWritten, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	a, err := Split(f, filepath.Base(path), cfg)
	if err != nil {
		return StatusWritten, err
	}

	docs := a.Documents(cfg)
	cols := a.Columns(cfg)

	fmt.Fprintf(w, "%s: considering tags: %s\n", a.Name, strings.Join(cols, ", "))

	for _, doc := range docs {
		if msg := extract.Anomaly(doc, cfg.IncludeText); msg != "" {
			fmt.Fprintf(w, "warning: %s: %s\n", a.Name, msg)
		}
	}

	out, err := os.Create(outPath)
	if err != nil {
		return StatusWritten, fmt.Errorf("creating %s: %w", outPath, err)
	}
	defer out.Close()

	if err := csvio.Write(out, docs, cols); err != nil {
		return StatusWritten, fmt.Errorf("writing %s: %w", outPath, err)
	}
	if err := out.Close(); err != nil {
		return StatusWritten, fmt.Errorf("closing %s: %w", outPath, err)
	}

	fmt.Fprintf(w, "%s: wrote %d items to %s\n", a.Name, len(docs), outPath)
	return StatusWritten, nil
}

// SplitPaths processes input files sequentially and independently, printing
// per-file status to w and returning a summary. A failed file is reported
// and counted; the run continues with the remaining files.
func SplitPaths(paths []string, cfg types.SplitConfig, w io.Writer) BatchResult {
	var result BatchResult
	for _, path := range paths {
		status, err := SplitFile(path, cfg, w)
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", path, err)
			result.Failed++
			continue
		}
		if status == StatusSkipped {
			result.Skipped++
			continue
		}
		result.Written++
	}
	fmt.Fprintf(w, "\nBatch summary: %d written, %d skipped, %d failed (total: %d)\n",
		result.Written, result.Skipped, result.Failed, result.Total())
	return result
}

// ExpandGlobs expands shell-style patterns into concrete paths. Arguments
// that match nothing are kept verbatim so the failure surfaces per file
// instead of vanishing silently.
func ExpandGlobs(args []string) []string {
	var paths []string
	for _, arg := range args {
		matches, err := filepath.Glob(arg)
		if err != nil || len(matches) == 0 {
			paths = append(paths, arg)
			continue
		}
		paths = append(paths, matches...)
	}
	return paths
}

// outputPath derives the CSV path for an input file: the extension is
// replaced with .csv, and the directory with outDir when set.
func outputPath(path, outDir string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + ".csv"
	if outDir != "" {
		return filepath.Join(outDir, base)
	}
	return filepath.Join(filepath.Dir(path), base)
}

// upToDate reports whether outPath exists and is at least as new as path.
func upToDate(path, outPath string) bool {
	in, err := os.Stat(path)
	if err != nil {
		return false
	}
	out, err := os.Stat(outPath)
	if err != nil {
		return false
	}
	return !out.ModTime().Before(in.ModTime())
}
