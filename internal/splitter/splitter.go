// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package splitter segments news-archive export files into per-document
// spans and discovers the meta tags reported in them.
package splitter

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/pdiddy/archive-engine/pkg/types"
)

// boundaryPattern matches the copyright footer that closes each document in
// an export file. The copyright line is indented to roughly the middle of
// the page, which distinguishes it from body text.
var boundaryPattern = regexp.MustCompile(`\n[ \t]{5,}Copyright .*\n+`)

// headerPattern matches the "N of M DOCUMENTS" banner that opens a document.
// Used as a fallback boundary when a copyright footer is missing, so one
// malformed document does not swallow its successor.
var headerPattern = regexp.MustCompile(`(?mi)^[ \t]*\d+ (?:of|von) \d+ do[ck]umente?n?s?[ \t]*$`)

// Archive is a segmented export file. It retains the raw document spans, so
// Documents can be re-yielded deterministically without re-reading the file.
type Archive struct {
	// Name is the source file the archive was read from.
	Name string

	// Spans holds the raw text of each document in source order.
	Spans []string

	// Tags is the tag-discovery report for the whole file.
	Tags []TagStat
}

// Len returns the number of documents in the archive.
func (a *Archive) Len() int { return len(a.Spans) }

// Split reads one export file from r and segments it into documents. The
// raw text is decoded according to cfg.Encoding, cut at copyright footers,
// and further cut at document banners when a footer is missing. Content
// after the last footer is discarded, matching the export format's trailing
// boilerplate.
func Split(r io.Reader, name string, cfg types.SplitConfig) (*Archive, error) {
	raw, err := decode(r, cfg.Encoding)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}

	spans := segment(raw)

	a := &Archive{
		Name:  name,
		Spans: spans,
	}
	a.Tags = DiscoverTags(raw, len(spans), cfg)
	return a, nil
}

// segment cuts raw archive text into per-document spans.
func segment(raw string) []string {
	parts := boundaryPattern.Split(raw, -1)
	if len(parts) > 0 {
		// The remainder after the last copyright footer is boilerplate,
		// not a document.
		parts = parts[:len(parts)-1]
	}

	var spans []string
	for _, part := range parts {
		spans = append(spans, splitMergedSpan(part)...)
	}
	return spans
}

// splitMergedSpan cuts a span that contains more than one document banner.
// A document without a copyright footer otherwise merges into the next one.
func splitMergedSpan(span string) []string {
	locs := headerPattern.FindAllStringIndex(span, -1)
	if len(locs) <= 1 {
		return []string{span}
	}
	var out []string
	prev := 0
	for _, loc := range locs[1:] {
		out = append(out, span[prev:loc[0]])
		prev = loc[0]
	}
	out = append(out, span[prev:])
	return out
}

// decode reads all of r and converts it to UTF-8.
func decode(r io.Reader, enc types.InputEncoding) (string, error) {
	switch enc {
	case types.EncodingLatin1:
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	case types.EncodingWin1252:
		r = transform.NewReader(r, charmap.Windows1252.NewDecoder())
	case types.EncodingUTF8, "":
		// no transform
	default:
		return "", fmt.Errorf("unsupported encoding %q: use utf-8, latin1, or windows-1252", enc)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	// Strip a UTF-8 BOM if the exporter wrote one.
	return strings.TrimPrefix(string(data), "\ufeff"), nil
}
