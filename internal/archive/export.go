// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/archive-engine/internal/csvio"
	"github.com/pdiddy/archive-engine/pkg/types"
)

// exportLimit caps unlimited exports so a runaway archive cannot buffer
// without bound. A caller-supplied MaxResults takes precedence.
const exportLimit = 1000000

// ExportYAML writes the archive to archiveDir/index/export.yaml. It
// supports the same filters as Retrieve.
func (s *Store) ExportYAML(ctx context.Context, opts QueryOptions) (string, error) {
	results, err := s.exportResults(ctx, opts)
	if err != nil {
		return "", err
	}

	path := filepath.Join(s.archiveDir, indexDir, "export.yaml")
	data, err := yaml.Marshal(results)
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}
	return path, os.WriteFile(path, data, 0o644)
}

// ExportJSON writes the archive to archiveDir/index/export.json.
func (s *Store) ExportJSON(ctx context.Context, opts QueryOptions) (string, error) {
	results, err := s.exportResults(ctx, opts)
	if err != nil {
		return "", err
	}

	path := filepath.Join(s.archiveDir, indexDir, "export.json")
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}
	return path, os.WriteFile(path, data, 0o644)
}

// ExportCSV writes the archive to archiveDir/index/export.csv using the
// seven contract columns plus TEXT.
func (s *Store) ExportCSV(ctx context.Context, opts QueryOptions) (string, error) {
	results, err := s.exportResults(ctx, opts)
	if err != nil {
		return "", err
	}

	docs := make([]types.Document, len(results))
	for i, r := range results {
		docs[i] = types.Document{
			ID:          r.ID,
			Publication: r.Publication,
			Date:        r.Date,
			Title:       r.Title,
			Text:        r.Text,
			SourceFile:  r.SourceFile,
			Seq:         r.Seq,
			Fields: map[string]string{
				types.ColURL:    r.URL,
				types.ColPhoto:  r.Photo,
				types.ColLength: r.Length,
			},
		}
	}

	cols := append(types.ContractColumns(), types.ColText)

	path := filepath.Join(s.archiveDir, indexDir, "export.csv")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := csvio.Write(f, docs, cols); err != nil {
		return "", err
	}
	return path, f.Close()
}

func (s *Store) exportResults(ctx context.Context, opts QueryOptions) ([]QueryResult, error) {
	if opts.MaxResults <= 0 {
		opts.MaxResults = exportLimit
	}
	results, err := s.Retrieve(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}
	return results, nil
}
