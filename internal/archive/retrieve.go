// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package archive

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// QueryOptions holds parameters for archive queries.
type QueryOptions struct {
	// Query is the FTS5 full-text search string, matched against title,
	// text, and publication.
	Query string

	// Publication filters by exact outlet name.
	Publication string

	// Year filters by the year prefix of the normalized date.
	Year string

	// SourceFile filters by the export file the record came from.
	SourceFile string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Query == "" && q.Publication == "" && q.Year == "" && q.SourceFile == ""
}

// QueryResult is one matched document row.
type QueryResult struct {
	ID          string `json:"id_doc" yaml:"id_doc"`
	Publication string `json:"publication" yaml:"publication"`
	Date        string `json:"date" yaml:"date"`
	Title       string `json:"title" yaml:"title"`
	URL         string `json:"url,omitempty" yaml:"url,omitempty"`
	Photo       string `json:"photo,omitempty" yaml:"photo,omitempty"`
	Length      string `json:"length,omitempty" yaml:"length,omitempty"`
	Text        string `json:"text,omitempty" yaml:"text,omitempty"`
	SourceFile  string `json:"source_file" yaml:"source_file"`
	Seq         int    `json:"seq" yaml:"seq"`
}

// Retrieve queries the archive with optional full-text search and
// structured filters. Full-text queries are ranked by relevance;
// structured-only queries come back in source order. When the SQLite build
// lacks FTS5 the search term degrades to substring matching over title,
// body, and publication.
func (s *Store) Retrieve(ctx context.Context, opts QueryOptions) ([]QueryResult, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Query != "" && s.fts
	)

	if useFTS {
		qb.WriteString(
			`SELECT d.id_doc, d.publication, d.date, d.title, d.url, d.photo,
				d.length, d.text, d.source_file, d.seq
			FROM documents_fts
			JOIN documents d ON d.rowid = documents_fts.rowid
			WHERE documents_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(
			`SELECT d.id_doc, d.publication, d.date, d.title, d.url, d.photo,
				d.length, d.text, d.source_file, d.seq
			FROM documents d
			WHERE 1=1`)
	}

	if !useFTS && opts.Query != "" {
		qb.WriteString(` AND (d.title LIKE ? OR d.text LIKE ? OR d.publication LIKE ?)`)
		pattern := "%" + opts.Query + "%"
		args = append(args, pattern, pattern, pattern)
	}

	if opts.Publication != "" {
		qb.WriteString(` AND d.publication = ?`)
		args = append(args, opts.Publication)
	}

	if opts.Year != "" {
		qb.WriteString(` AND substr(d.date, 1, 4) = ?`)
		args = append(args, opts.Year)
	}

	if opts.SourceFile != "" {
		qb.WriteString(` AND d.source_file = ?`)
		args = append(args, opts.SourceFile)
	}

	if useFTS {
		qb.WriteString(` ORDER BY documents_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY d.source_file, d.seq`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying archive: %w", err)
	}
	defer rows.Close()

	var results []QueryResult
	for rows.Next() {
		var (
			r                        QueryResult
			url, photo, length, text sql.NullString
		)
		if err := rows.Scan(&r.ID, &r.Publication, &r.Date, &r.Title,
			&url, &photo, &length, &text, &r.SourceFile, &r.Seq); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		r.URL = url.String
		r.Photo = photo.String
		r.Length = length.String
		r.Text = text.String
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	return results, nil
}
