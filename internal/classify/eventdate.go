package classify

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	dayMonthYear = regexp.MustCompile(`(?i)\b(\d{1,2})\s+(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s+(\d{4})\b`)
	yearFirst    = regexp.MustCompile(`\b(\d{4})[-/](\d{2})[-/](\d{2})\b`)
	dayFirst     = regexp.MustCompile(`\b(\d{1,2})[/\-](\d{1,2})[/\-](\d{4})\b`)
)

var monthNumbers = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

// ExtractEventDate finds the document's event date in the filename or
// text and returns it as YYYY-MM-DD, or "" when no date pattern matches.
// Patterns are tried in order: "14 Apr 2026", then "2026-04-14" (or with
// slashes), then day-first "14/04/2026". A match that assembles into an
// impossible calendar date degrades to "", never to a partial string.
// Ambiguous numeric dates are always read day-first.
func ExtractEventDate(text, filename string) string {
	haystack := filename + " " + truncate(text, dateScanLimit)

	if m := dayMonthYear.FindStringSubmatch(haystack); m != nil {
		month, ok := monthNumbers[strings.ToLower(m[2])]
		if !ok {
			return ""
		}
		day, _ := strconv.Atoi(m[1])
		return validISODate(fmt.Sprintf("%s-%02d-%02d", m[3], month, day))
	}

	if m := yearFirst.FindStringSubmatch(haystack); m != nil {
		return validISODate(m[1] + "-" + m[2] + "-" + m[3])
	}

	if m := dayFirst.FindStringSubmatch(haystack); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		return validISODate(fmt.Sprintf("%s-%02d-%02d", m[3], month, day))
	}

	return ""
}

// validISODate keeps only dates that exist on the calendar.
func validISODate(date string) string {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return ""
	}
	return date
}
