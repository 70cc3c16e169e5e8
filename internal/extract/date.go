// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/araddon/dateparse"
)

// months maps German and English month names to their number. Exports mix
// both locales, sometimes within one file.
var months = map[string]int{
	"Januar": 1, "Februar": 2, "März": 3, "Maerz": 3, "Mai": 5, "Juni": 6,
	"Juli": 7, "Oktober": 10, "Dezember": 12,
	"January": 1, "February": 2, "March": 3, "April": 4, "May": 5, "June": 6,
	"July": 7, "August": 8, "September": 9, "October": 10, "November": 11, "December": 12,
}

var (
	// gerDatePattern matches "2. März 2015".
	gerDatePattern *regexp.Regexp
	// engDatePattern matches "March 2, 2015".
	engDatePattern *regexp.Regexp
)

func init() {
	names := make([]string, 0, len(months))
	for name := range months {
		names = append(names, name)
	}
	// Longest first so "Mai" cannot shadow a longer name in alternation.
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})
	alt := strings.Join(names, "|")
	gerDatePattern = regexp.MustCompile(`(?i)(\d{1,2})\. (` + alt + `) (\d{4})`)
	engDatePattern = regexp.MustCompile(`(?i)(` + alt + `) (\d{1,2}), (\d{4})`)
}

// NormalizeDate converts a raw date paragraph to YYYY-MM-DD. It tries the
// German scheme, then the English scheme, then a generic parse. Input that
// resists all three is returned verbatim so the column is never silently
// emptied.
func NormalizeDate(raw string) string {
	if raw == "" {
		return ""
	}

	if m := gerDatePattern.FindStringSubmatch(raw); m != nil {
		day, _ := strconv.Atoi(m[1])
		return formatDate(m[3], monthNumber(m[2]), day)
	}
	if m := engDatePattern.FindStringSubmatch(raw); m != nil {
		day, _ := strconv.Atoi(m[2])
		return formatDate(m[3], monthNumber(m[1]), day)
	}

	if t, err := dateparse.ParseAny(raw); err == nil {
		return t.Format("2006-01-02")
	}
	return raw
}

// monthNumber resolves a matched month name case-insensitively.
func monthNumber(name string) int {
	for k, v := range months {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return 0
}

func formatDate(year string, month, day int) string {
	return fmt.Sprintf("%s-%02d-%02d", year, month, day)
}
