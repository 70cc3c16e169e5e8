package splitter

import (
	"fmt"
	"strings"
	"testing"

	"github.com/pdiddy/archive-engine/pkg/types"
)

// testDoc builds one export document span with the standard header block,
// the given tag lines, and a body paragraph, closed by a copyright footer.
func testDoc(seq, total int, publication, date, title string, tagLines []string, body string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "                    %d of %d DOCUMENTS\n\n", seq, total)
	fmt.Fprintf(&b, "            %s\n\n", publication)
	fmt.Fprintf(&b, "            %s\n\n", date)
	fmt.Fprintf(&b, "       %s\n\n", title)
	for _, line := range tagLines {
		fmt.Fprintf(&b, "%s\n\n", line)
	}
	fmt.Fprintf(&b, "%s\n\n", body)
	fmt.Fprintf(&b, "              Copyright %s Test Media AG\n", date)
	return b.String()
}

func testArchiveText(n int) string {
	var b strings.Builder
	for i := 1; i <= n; i++ {
		b.WriteString(testDoc(i, n,
			"Neue Zürcher Zeitung",
			"2. März 2015",
			fmt.Sprintf("Schlagzeile Nummer %d", i),
			[]string{"LENGTH: 312 words", "URL: https://example.com/artikel"},
			"Der Artikel beginnt hier und enthält genug Text für eine saubere Extraktion der Felder."))
	}
	return b.String()
}

func TestSegment(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{name: "empty input", raw: "", want: 0},
		{name: "single document", raw: testArchiveText(1), want: 1},
		{name: "three documents", raw: testArchiveText(3), want: 3},
		{name: "trailing boilerplate dropped", raw: testArchiveText(2) + "\nEnd of search results.\n", want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spans := segment(tt.raw)
			if len(spans) != tt.want {
				t.Fatalf("segment() returned %d spans, want %d", len(spans), tt.want)
			}
		})
	}
}

func TestSegmentMissingFooter(t *testing.T) {
	// The first document lacks a copyright footer; the banner of the
	// second must still start a new span.
	merged := "                    1 of 2 DOCUMENTS\n\n      Erste Zeitung\n\n" +
		testDoc(2, 2, "Zweite Zeitung", "March 2, 2015", "Second headline",
			nil, "Body text of the second document, long enough to read as an article.")

	spans := segment(merged)
	if len(spans) != 2 {
		t.Fatalf("segment() returned %d spans, want 2", len(spans))
	}
	if !strings.Contains(spans[0], "Erste Zeitung") {
		t.Errorf("first span missing first document content: %q", spans[0])
	}
	if !strings.Contains(spans[1], "Zweite Zeitung") {
		t.Errorf("second span missing second document content: %q", spans[1])
	}
}

func TestSplitCountMatchesBoundaries(t *testing.T) {
	const n = 187
	raw := testArchiveText(n)

	a, err := Split(strings.NewReader(raw), "test.txt", types.SplitConfig{})
	if err != nil {
		t.Fatal(err)
	}
	if a.Len() != n {
		t.Fatalf("Split() found %d documents, want %d", a.Len(), n)
	}

	docs := a.Documents(types.SplitConfig{})
	if len(docs) != n {
		t.Fatalf("Documents() returned %d records, want %d", len(docs), n)
	}
	for i, d := range docs {
		if d.Seq != i+1 {
			t.Fatalf("document %d has Seq %d", i, d.Seq)
		}
		if d.ID == "" {
			t.Fatalf("document %d has empty ID", i+1)
		}
	}
}

func TestDocumentsRestartable(t *testing.T) {
	a, err := Split(strings.NewReader(testArchiveText(5)), "test.txt", types.SplitConfig{})
	if err != nil {
		t.Fatal(err)
	}

	first := a.Documents(types.SplitConfig{})
	second := a.Documents(types.SplitConfig{})
	if len(first) != len(second) {
		t.Fatalf("re-yield changed length: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Title != second[i].Title || first[i].ID != second[i].ID {
			t.Fatalf("re-yield changed document %d", i+1)
		}
	}
}

func TestSplitLatin1(t *testing.T) {
	// "Zürich" in ISO 8859-1: 0xFC for ü.
	raw := "                    1 of 1 DOCUMENTS\n\n      Z\xfcrcher Blatt\n\n      March 2, 2015\n\n      Headline\n\n" +
		"Body text long enough to count as an article for this test case.\n\n" +
		"              Copyright 2015 Test Media AG\n"

	a, err := Split(strings.NewReader(raw), "latin.txt", types.SplitConfig{Encoding: types.EncodingLatin1})
	if err != nil {
		t.Fatal(err)
	}
	docs := a.Documents(types.SplitConfig{})
	if len(docs) != 1 {
		t.Fatalf("got %d documents, want 1", len(docs))
	}
	if docs[0].Publication != "Zürcher Blatt" {
		t.Errorf("Publication = %q, want %q", docs[0].Publication, "Zürcher Blatt")
	}
}

func TestSplitUnsupportedEncoding(t *testing.T) {
	_, err := Split(strings.NewReader("x"), "x.txt", types.SplitConfig{Encoding: "ebcdic"})
	if err == nil {
		t.Fatal("expected error for unsupported encoding")
	}
}
