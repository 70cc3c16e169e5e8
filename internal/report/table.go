// Package report renders aligned console tables for scan and query output.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Table writes headers and rows as a plain aligned table. Column widths use
// display width rather than byte length, so titles with wide runes line up.
func Table(w io.Writer, headers []string, rows [][]string) {
	colCount := len(headers)
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}

	widths := make([]int, colCount)
	measure := func(row []string) {
		for i := 0; i < len(row) && i < colCount; i++ {
			if width := runewidth.StringWidth(row[i]); width > widths[i] {
				widths[i] = width
			}
		}
	}
	measure(headers)
	for _, row := range rows {
		measure(row)
	}

	writeRow := func(row []string) {
		var sb strings.Builder
		for i := 0; i < colCount; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			sb.WriteString(cell)
			if i < colCount-1 {
				padding := widths[i] - runewidth.StringWidth(cell)
				sb.WriteString(strings.Repeat(" ", padding+2))
			}
		}
		fmt.Fprintln(w, strings.TrimRight(sb.String(), " "))
	}

	writeRow(headers)

	total := 0
	for _, width := range widths {
		total += width
	}
	fmt.Fprintln(w, strings.Repeat("-", total+2*(colCount-1)))

	for _, row := range rows {
		writeRow(row)
	}
}

// Truncate shortens a cell to max display width, appending "..." when cut.
func Truncate(s string, max int) string {
	if runewidth.StringWidth(s) <= max {
		return s
	}
	return runewidth.Truncate(s, max, "...")
}
