// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package splitter

import (
	"regexp"
	"sort"
	"strings"

	"github.com/pdiddy/archive-engine/pkg/types"
)

// defaultMinTagRatio is the coverage a discovered tag needs before it is
// considered. Tags below the threshold are usually artifacts of body text.
const defaultMinTagRatio = 0.20

// tagPattern matches a meta tag label: capitalized, at line start, at least
// three letters, followed by a colon and a space (e.g. "LENGTH: 312 words").
var tagPattern = regexp.MustCompile(`\n([A-Z-]{3,}): `)

// TagStat describes one discovered meta tag.
type TagStat struct {
	// Name is the tag label without the trailing colon.
	Name string

	// Count is the number of occurrences across the file.
	Count int

	// Ratio is Count divided by the number of documents.
	Ratio float64

	// Kept reports whether the tag cleared the coverage threshold and is
	// not suppressed.
	Kept bool
}

// DiscoverTags scans raw archive text for meta tag labels and reports each
// with its coverage. A tag is kept when it appears in at least
// cfg.MinTagRatio of documents and is not listed in cfg.SuppressTags.
// Results are sorted by name.
func DiscoverTags(raw string, nDocs int, cfg types.SplitConfig) []TagStat {
	minRatio := cfg.MinTagRatio
	if minRatio <= 0 {
		minRatio = defaultMinTagRatio
	}

	suppressed := make(map[string]bool, len(cfg.SuppressTags))
	for _, t := range cfg.SuppressTags {
		suppressed[strings.ToUpper(t)] = true
	}

	counts := make(map[string]int)
	for _, m := range tagPattern.FindAllStringSubmatch(raw, -1) {
		counts[m[1]]++
	}

	stats := make([]TagStat, 0, len(counts))
	for name, count := range counts {
		ratio := 0.0
		if nDocs > 0 {
			ratio = float64(count) / float64(nDocs)
		}
		stats = append(stats, TagStat{
			Name:  name,
			Count: count,
			Ratio: ratio,
			Kept:  ratio >= minRatio && !suppressed[name],
		})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Name < stats[j].Name })
	return stats
}

// Columns returns the CSV column set for the archive: the seven contract
// columns first, then any further kept tags in sorted order, then TEXT when
// body extraction is on.
func (a *Archive) Columns(cfg types.SplitConfig) []string {
	cols := types.ContractColumns()
	seen := make(map[string]bool, len(cols))
	for _, c := range cols {
		seen[c] = true
	}
	for _, t := range a.Tags {
		if t.Kept && !seen[t.Name] {
			cols = append(cols, t.Name)
			seen[t.Name] = true
		}
	}
	if cfg.IncludeText {
		cols = append(cols, types.ColText)
	}
	return cols
}

// ConsideredTags returns the tag names extraction should honor: the contract
// tags plus every kept discovered tag.
func (a *Archive) ConsideredTags(cfg types.SplitConfig) map[string]bool {
	tags := make(map[string]bool)
	for _, c := range types.ContractColumns() {
		tags[c] = true
	}
	for _, t := range a.Tags {
		if t.Kept {
			tags[t.Name] = true
		}
	}
	return tags
}
