// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract pulls labeled metadata fields out of a single document
// span. Extraction is best effort: a document with no recognizable header
// still yields a record, with empty values for whatever was not found.
package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pdiddy/archive-engine/pkg/types"
)

// Document number banners come in two schemes: "Dokument 42" and
// "42 of 187 DOCUMENTS" (or the German "42 von 187 Dokumenten").
var (
	idScheme1 = regexp.MustCompile(`(?i)do[kc]ument (\d+)`)
	idScheme2 = regexp.MustCompile(`(?i)(\d+) (?:of|von) (?:\d+) do[kc]ument`)
)

// tagLinePattern matches a labeled meta line within a document, e.g.
// "LENGTH: 312 words".
var tagLinePattern = regexp.MustCompile(`^([A-Z-]+): `)

// rightsNotices are rights boilerplate paragraphs dropped before parsing.
var rightsNotices = map[string]bool{
	"All Rights Reserved":     true,
	"Alle Rechte Vorbehalten": true,
}

// Parse extracts one Document from a raw span. The header block is parsed
// positionally: the document-number banner, then the next non-empty
// paragraph as publication, then date, then title. Every later paragraph is
// either a considered tag line or, when includeText is set, body text.
func Parse(span string, considered map[string]bool, includeText bool) types.Document {
	var doc types.Document

	paras := paragraphs(span)

	// Locate the document-number banner.
	i := 0
	found := false
	for ; i < len(paras); i++ {
		if m := idScheme1.FindStringSubmatch(paras[i]); m != nil {
			doc.ID = m[1]
			found = true
			break
		}
		if m := idScheme2.FindStringSubmatch(paras[i]); m != nil {
			doc.ID = m[1]
			found = true
			break
		}
	}

	if found {
		i++
		doc.Publication, i = nextNonEmpty(paras, i)
		var rawDate string
		rawDate, i = nextNonEmpty(paras, i)
		doc.Date = NormalizeDate(rawDate)
		doc.Title, i = nextNonEmpty(paras, i)
	} else {
		// No banner: skip the positional header and scan the whole span
		// for tag lines so the record is still produced.
		i = 0
	}

	var body []string
	for ; i < len(paras); i++ {
		line := paras[i]
		if m := tagLinePattern.FindStringSubmatch(line); m != nil && considered[m[1]] {
			if doc.Fields == nil {
				doc.Fields = make(map[string]string)
			}
			doc.Fields[m[1]] = strings.TrimPrefix(line, m[0])
			continue
		}
		if includeText && line != "" {
			body = append(body, line)
		}
	}
	if includeText {
		doc.Text = strings.Join(body, " ")
	}

	return doc
}

// paragraphs splits a span on blank lines, folds hard returns within each
// paragraph into spaces, and drops rights boilerplate.
func paragraphs(span string) []string {
	parts := strings.Split(span, "\n\n")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(strings.ReplaceAll(p, "\n", " "))
		if rightsNotices[p] {
			continue
		}
		out = append(out, p)
	}
	return out
}

// nextNonEmpty returns the first non-empty paragraph at or after index i,
// and the index just past it.
func nextNonEmpty(paras []string, i int) (string, int) {
	for ; i < len(paras); i++ {
		if paras[i] != "" {
			return paras[i], i + 1
		}
	}
	return "", i
}

// minBodyLength is the body size below which an extracted document looks
// suspect when body extraction is on.
const minBodyLength = 100

// Anomaly checks an extracted document for signs of a misparse and returns
// a human-readable description, or "" when the document looks sound. It
// never fails the run; callers print it as a warning.
func Anomaly(doc types.Document, includeText bool) string {
	if doc.ID == "" && doc.Title == "" && doc.Date == "" {
		return fmt.Sprintf("document %d: no document number, title, or date found", doc.Seq)
	}
	if includeText && len(doc.Text) < minBodyLength {
		return fmt.Sprintf("document %d (%s): extracted body is suspiciously short", doc.Seq, doc.ID)
	}
	return ""
}
