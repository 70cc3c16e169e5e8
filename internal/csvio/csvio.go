// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package csvio serializes document records to CSV and reads them back.
package csvio

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/pdiddy/archive-engine/pkg/types"
)

// Write emits a header row with the given columns, then one row per
// document. Absent fields serialize as empty strings; quoting is handled by
// the encoder.
func Write(w io.Writer, docs []types.Document, cols []string) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(cols); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	row := make([]string, len(cols))
	for i := range docs {
		for j, col := range cols {
			row[j] = docs[i].Value(col)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// Read decodes split output back into documents. The first row names the
// columns; each later row becomes one document. A leading BOM is stripped
// and lazily quoted fields are tolerated, since spreadsheet tools rewrite
// these files.
func Read(r io.Reader) ([]types.Document, []string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, err
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	cr := csv.NewReader(bytes.NewReader(data))
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	cols, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil, fmt.Errorf("empty CSV: no header row")
		}
		return nil, nil, fmt.Errorf("reading header: %w", err)
	}

	var docs []types.Document
	for seq := 1; ; seq++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("reading row %d: %w", seq, err)
		}
		var doc types.Document
		for i, col := range cols {
			if i < len(record) {
				doc.SetValue(col, record[i])
			}
		}
		doc.Seq = seq
		docs = append(docs, doc)
	}
	return docs, cols, nil
}
