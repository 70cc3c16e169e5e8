package splitter

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/archive-engine/internal/csvio"
	"github.com/pdiddy/archive-engine/pkg/types"
)

func writeExport(t *testing.T, dir, name string, nDocs int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(testArchiveText(nDocs)), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSplitFile(t *testing.T) {
	dir := t.TempDir()
	path := writeExport(t, dir, "test.txt", 4)

	var out bytes.Buffer
	status, err := SplitFile(path, types.SplitConfig{}, &out)
	if err != nil {
		t.Fatal(err)
	}
	if status != StatusWritten {
		t.Fatalf("status = %v, want StatusWritten", status)
	}

	csvPath := filepath.Join(dir, "test.csv")
	f, err := os.Open(csvPath)
	if err != nil {
		t.Fatalf("expected CSV output: %v", err)
	}
	defer f.Close()

	docs, cols, err := csvio.Read(f)
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 4 {
		t.Fatalf("CSV has %d data rows, want 4", len(docs))
	}
	if len(cols) != 7 {
		t.Fatalf("CSV has %d columns, want the 7 contract columns: %v", len(cols), cols)
	}
	if docs[0].Publication != "Neue Zürcher Zeitung" {
		t.Errorf("Publication = %q", docs[0].Publication)
	}
	if docs[0].Date != "2015-03-02" {
		t.Errorf("Date = %q, want 2015-03-02", docs[0].Date)
	}
	if docs[0].Fields[types.ColLength] != "312 words" {
		t.Errorf("LENGTH = %q, want %q", docs[0].Fields[types.ColLength], "312 words")
	}

	summary := out.String()
	if !strings.Contains(summary, "considering tags") {
		t.Errorf("missing tag report in output: %q", summary)
	}
	if !strings.Contains(summary, "wrote 4 items") {
		t.Errorf("missing item count in output: %q", summary)
	}
}

func TestSplitFileSkipsUpToDate(t *testing.T) {
	dir := t.TempDir()
	path := writeExport(t, dir, "test.txt", 2)

	var out bytes.Buffer
	if _, err := SplitFile(path, types.SplitConfig{}, &out); err != nil {
		t.Fatal(err)
	}

	// Make the CSV clearly newer than the input.
	csvPath := filepath.Join(dir, "test.csv")
	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(csvPath, future, future); err != nil {
		t.Fatal(err)
	}

	status, err := SplitFile(path, types.SplitConfig{}, &out)
	if err != nil {
		t.Fatal(err)
	}
	if status != StatusSkipped {
		t.Fatalf("status = %v, want StatusSkipped", status)
	}

	status, err = SplitFile(path, types.SplitConfig{Force: true}, &out)
	if err != nil {
		t.Fatal(err)
	}
	if status != StatusWritten {
		t.Fatalf("with Force, status = %v, want StatusWritten", status)
	}
}

func TestSplitFileOutDir(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "csv")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := writeExport(t, dir, "report.txt", 1)

	var out bytes.Buffer
	if _, err := SplitFile(path, types.SplitConfig{OutDir: outDir}, &out); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "report.csv")); err != nil {
		t.Fatalf("expected CSV in out dir: %v", err)
	}
}

func TestSplitPathsContinuesPastFailures(t *testing.T) {
	dir := t.TempDir()
	good := writeExport(t, dir, "good.txt", 2)
	missing := filepath.Join(dir, "missing.txt")

	var out bytes.Buffer
	result := SplitPaths([]string{missing, good}, types.SplitConfig{}, &out)

	if result.Failed != 1 {
		t.Errorf("Failed = %d, want 1", result.Failed)
	}
	if result.Written != 1 {
		t.Errorf("Written = %d, want 1", result.Written)
	}
	if !result.HasFailures() {
		t.Error("HasFailures() = false")
	}
	if result.Total() != 2 {
		t.Errorf("Total() = %d, want 2", result.Total())
	}
	if !strings.Contains(out.String(), "failed:") {
		t.Errorf("missing failure report: %q", out.String())
	}
	if _, err := os.Stat(filepath.Join(dir, "good.csv")); err != nil {
		t.Fatalf("good file should still be processed: %v", err)
	}
}

func TestSplitFileWithText(t *testing.T) {
	dir := t.TempDir()
	path := writeExport(t, dir, "test.txt", 1)

	var out bytes.Buffer
	if _, err := SplitFile(path, types.SplitConfig{IncludeText: true}, &out); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(filepath.Join(dir, "test.csv"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	docs, cols, err := csvio.Read(f)
	if err != nil {
		t.Fatal(err)
	}
	if cols[len(cols)-1] != types.ColText {
		t.Fatalf("last column = %q, want TEXT", cols[len(cols)-1])
	}
	if !strings.Contains(docs[0].Text, "Der Artikel beginnt hier") {
		t.Errorf("Text = %q", docs[0].Text)
	}
}

func TestExpandGlobs(t *testing.T) {
	dir := t.TempDir()
	writeExport(t, dir, "a.txt", 1)
	writeExport(t, dir, "b.txt", 1)

	paths := ExpandGlobs([]string{filepath.Join(dir, "*.txt")})
	if len(paths) != 2 {
		t.Fatalf("ExpandGlobs() = %v, want 2 paths", paths)
	}

	// Non-matching arguments are kept so the failure surfaces per file.
	paths = ExpandGlobs([]string{filepath.Join(dir, "nope.txt")})
	if len(paths) != 1 || !strings.HasSuffix(paths[0], "nope.txt") {
		t.Fatalf("ExpandGlobs() = %v", paths)
	}
}
