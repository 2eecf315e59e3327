package classify

import "strings"

const (
	// keywordScanLimit bounds how much document text the keyword rules
	// look at. OCR output gets noisy past the first page or two.
	keywordScanLimit = 2000

	// dateScanLimit bounds the text scanned for event dates.
	dateScanLimit = 1000
)

// truncate returns at most n leading bytes of s. Extracted PDF text is
// effectively ASCII, so byte truncation is fine for bounding scans.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// foldedPrefix lowercases a bounded prefix of s for keyword matching.
func foldedPrefix(s string, n int) string {
	return strings.ToLower(truncate(s, n))
}
