// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive persists extracted document records and builds a
// retrieval index over them.
package archive

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/archive-engine/internal/csvio"
	"github.com/pdiddy/archive-engine/pkg/types"
)

const (
	indexDir = "index"
	dbFile   = "archive.db"
)

// Store manages the archive SQLite database.
type Store struct {
	db         *sql.DB
	archiveDir string
	maxResults int

	// fts reports whether the documents_fts mirror exists. It is false
	// when the SQLite build lacks the FTS5 module; queries then fall
	// back to substring matching.
	fts bool
}

// NewStore opens or creates the archive database at
// archiveDir/index/archive.db, creating the schema if needed.
func NewStore(cfg types.ArchiveConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.ArchiveDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{
		db:         db,
		archiveDir: cfg.ArchiveDir,
		maxResults: maxResults,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id_doc TEXT,
			publication TEXT,
			date TEXT,
			title TEXT,
			url TEXT,
			photo TEXT,
			length TEXT,
			text TEXT,
			source_file TEXT NOT NULL,
			seq INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_source ON documents(source_file)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_publication ON documents(publication)`,
		`CREATE TABLE IF NOT EXISTS ingest_status (
			source_file TEXT PRIMARY KEY,
			file_mod_time TEXT
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync. The FTS5 module needs a
	// SQLite build with the sqlite_fts5 tag (the mage targets pass it);
	// without it the store degrades to substring search.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='documents_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists > 0 {
		s.fts = true
		return nil
	}

	ftsStatements := []string{
		`CREATE VIRTUAL TABLE documents_fts USING fts5(title, text, publication, content=documents, content_rowid=rowid)`,
		`CREATE TRIGGER documents_ai AFTER INSERT ON documents BEGIN
			INSERT INTO documents_fts(rowid, title, text, publication)
			VALUES (new.rowid, new.title, new.text, new.publication);
		END`,
		`CREATE TRIGGER documents_ad AFTER DELETE ON documents BEGIN
			INSERT INTO documents_fts(documents_fts, rowid, title, text, publication)
			VALUES('delete', old.rowid, old.title, old.text, old.publication);
		END`,
		`CREATE TRIGGER documents_au AFTER UPDATE ON documents BEGIN
			INSERT INTO documents_fts(documents_fts, rowid, title, text, publication)
			VALUES('delete', old.rowid, old.title, old.text, old.publication);
			INSERT INTO documents_fts(rowid, title, text, publication)
			VALUES (new.rowid, new.title, new.text, new.publication);
		END`,
	}
	for i, stmt := range ftsStatements {
		if _, err := s.db.Exec(stmt); err != nil {
			if i == 0 && strings.Contains(err.Error(), "no such module: fts5") {
				return nil
			}
			return fmt.Errorf("creating FTS infrastructure: %w", err)
		}
	}

	s.fts = true
	return nil
}

// IngestSummary holds counts from an archive indexing run.
type IngestSummary struct {
	Indexed int
	Updated int
	Skipped int
	Failed  int
}

// Total returns the number of CSV files processed.
func (s IngestSummary) Total() int {
	return s.Indexed + s.Updated + s.Skipped + s.Failed
}

// HasFailures reports whether any files failed indexing.
func (s IngestSummary) HasFailures() bool {
	return s.Failed > 0
}

// Ingest reads split CSV output files and populates the database. A source
// file whose mod time is unchanged since its last ingest is skipped;
// re-ingesting a changed file replaces its rows.
func (s *Store) Ingest(ctx context.Context, csvPaths []string, w io.Writer) (IngestSummary, error) {
	var summary IngestSummary

	for _, path := range csvPaths {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		name := filepath.Base(path)

		info, err := os.Stat(path)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			summary.Failed++
			continue
		}
		modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

		var storedModTime string
		err = s.db.QueryRowContext(ctx,
			`SELECT file_mod_time FROM ingest_status WHERE source_file = ?`, name,
		).Scan(&storedModTime)

		if err == nil && storedModTime == modTime {
			fmt.Fprintf(w, "skipped %s\n", name)
			summary.Skipped++
			continue
		}

		isUpdate := err == nil

		f, err := os.Open(path)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			summary.Failed++
			continue
		}
		docs, _, err := csvio.Read(f)
		f.Close()
		if err != nil {
			fmt.Fprintf(w, "failed  %s: parse error: %v\n", name, err)
			summary.Failed++
			continue
		}

		if err := s.ingestFile(ctx, name, docs, modTime); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			summary.Failed++
			continue
		}

		if isUpdate {
			fmt.Fprintf(w, "updated %s (%d documents)\n", name, len(docs))
			summary.Updated++
		} else {
			fmt.Fprintf(w, "indexing %s (%d documents)\n", name, len(docs))
			summary.Indexed++
		}
	}

	fmt.Fprintf(w, "\nindexed: %d, updated: %d, skipped: %d, failed: %d\n",
		summary.Indexed, summary.Updated, summary.Skipped, summary.Failed)

	return summary, nil
}

// ingestFile replaces all rows for one source file inside a transaction.
func (s *Store) ingestFile(ctx context.Context, name string, docs []types.Document, modTime string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM documents WHERE source_file = ?`, name); err != nil {
		return fmt.Errorf("clearing previous rows: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO documents (id_doc, publication, date, title, url, photo, length, text, source_file, seq)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, d := range docs {
		if _, err := stmt.ExecContext(ctx,
			d.ID, d.Publication, d.Date, d.Title,
			d.Fields[types.ColURL], d.Fields[types.ColPhoto], d.Fields[types.ColLength],
			d.Text, name, d.Seq,
		); err != nil {
			return fmt.Errorf("inserting document %d: %w", d.Seq, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO ingest_status (source_file, file_mod_time) VALUES (?, ?)
		 ON CONFLICT(source_file) DO UPDATE SET file_mod_time = excluded.file_mod_time`,
		name, modTime); err != nil {
		return fmt.Errorf("recording ingest status: %w", err)
	}

	return tx.Commit()
}
