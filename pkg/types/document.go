// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Column names for the fixed part of the CSV contract. Every split output
// carries these seven columns in this order; documents missing a tag get an
// empty string in its column, never a missing column.
const (
	ColID          = "ID_DOC"
	ColPublication = "PUBLICATION"
	ColDate        = "DATE"
	ColTitle       = "TITLE"
	ColURL         = "URL"
	ColPhoto       = "PHOTO"
	ColLength      = "LENGTH"

	// ColText is the document body column. It is emitted last, and only
	// when body extraction is enabled.
	ColText = "TEXT"
)

// ContractColumns lists the always-present CSV columns in output order.
func ContractColumns() []string {
	return []string{ColID, ColPublication, ColDate, ColTitle, ColURL, ColPhoto, ColLength}
}

// Document is one extracted record from a news-archive export file. It maps
// to exactly one contiguous span of the raw input.
type Document struct {
	// ID is the document number from the export header (e.g. "42" from
	// "42 of 187 DOCUMENTS").
	ID string `json:"id_doc" yaml:"id_doc"`

	// Publication is the source outlet name, taken from the first
	// non-empty header paragraph after the document number.
	Publication string `json:"publication" yaml:"publication"`

	// Date is the publication date, normalized to YYYY-MM-DD when the raw
	// value is parseable. Unparseable dates carry the raw value verbatim.
	Date string `json:"date" yaml:"date"`

	// Title is the headline paragraph.
	Title string `json:"title" yaml:"title"`

	// Fields holds the labeled meta tags found in the document
	// (e.g. URL, PHOTO, LENGTH), keyed by tag name without the colon.
	Fields map[string]string `json:"fields,omitempty" yaml:"fields,omitempty"`

	// Text is the accumulated article body. Empty unless body extraction
	// is enabled.
	Text string `json:"text,omitempty" yaml:"text,omitempty"`

	// SourceFile is the export file this document came from.
	SourceFile string `json:"source_file,omitempty" yaml:"source_file,omitempty"`

	// Seq is the 1-based position of the document within its source file.
	Seq int `json:"seq,omitempty" yaml:"seq,omitempty"`
}

// Value returns the document's value for a CSV column name. Unknown columns
// resolve through the Fields map; absent tags yield "".
func (d *Document) Value(col string) string {
	switch col {
	case ColID:
		return d.ID
	case ColPublication:
		return d.Publication
	case ColDate:
		return d.Date
	case ColTitle:
		return d.Title
	case ColText:
		return d.Text
	}
	return d.Fields[col]
}

// SetValue stores a CSV column value back into the document. It is the
// inverse of Value and is used when reading split output back in.
func (d *Document) SetValue(col, v string) {
	switch col {
	case ColID:
		d.ID = v
	case ColPublication:
		d.Publication = v
	case ColDate:
		d.Date = v
	case ColTitle:
		d.Title = v
	case ColText:
		d.Text = v
	default:
		if v == "" {
			return
		}
		if d.Fields == nil {
			d.Fields = make(map[string]string)
		}
		d.Fields[col] = v
	}
}
