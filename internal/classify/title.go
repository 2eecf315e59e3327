package classify

import (
	"regexp"
	"strings"
)

const maxTitleLength = 150

var (
	pdfExtension = regexp.MustCompile(`(?i)\.pdf$`)
	datePrefix   = regexp.MustCompile(`(?i)^\d{1,2}\s?(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s*\|?\s*`)
)

// GenerateTitle derives a display title from the filename and extracted
// metadata. The base is the filename with extension and any leading
// date prefix stripped; flights with a known route and hotels with a
// known name override the base. The result is never empty and at most
// 150 characters.
func GenerateTitle(filename string, category Category, meta Metadata) string {
	title := pdfExtension.ReplaceAllString(filename, "")
	title = datePrefix.ReplaceAllString(title, "")
	title = strings.ReplaceAll(title, "_", " ")
	title = whitespaceRun.ReplaceAllString(title, " ")
	title = strings.TrimSpace(title)

	switch category {
	case CategoryFlights:
		departure := meta.Str("departure_airport")
		arrival := meta.Str("arrival_airport")
		if departure != "" && arrival != "" {
			title = departure + " → " + arrival
			if number := meta.Str("flight_number"); number != "" {
				title += " (" + number + ")"
			}
		}
	case CategoryHotels:
		if name := meta.Str("hotel_name"); name != "" {
			title = name
		}
	}

	if title == "" {
		title = strings.TrimSpace(pdfExtension.ReplaceAllString(filename, ""))
	}
	if title == "" {
		title = filename
	}

	if runes := []rune(title); len(runes) > maxTitleLength {
		title = string(runes[:maxTitleLength])
	}
	return title
}
