package classify

import (
	"regexp"
	"strings"
)

// Metadata is the open field mapping attached to a document. Keys are
// scoped to the document's category, except "passengers" which may
// appear on any category.
type Metadata map[string]any

// Str returns the string value stored under key, or "" when absent.
func (m Metadata) Str(key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

// Passengers returns the extracted passenger names, tolerating the
// []any shape the list takes after a JSON round trip through storage.
func (m Metadata) Passengers() []string {
	switch v := m["passengers"].(type) {
	case []string:
		return v
	case []any:
		names := make([]string, 0, len(v))
		for _, p := range v {
			if s, ok := p.(string); ok {
				names = append(names, s)
			}
		}
		return names
	}
	return nil
}

const (
	maxPassengersPerDocument = 4
	maxActivityNameLength    = 100
)

var (
	// "Passenger: John Smith" style. The colon after an explicit label
	// keeps incidental capitalized words out.
	labeledNamePattern = regexp.MustCompile(`(?i:passenger|name|travell?er):\s+([A-Z][a-z]+ [A-Z][a-z]+)`)

	// ALL-CAPS names behind a title, e.g. "MR SOHIL GUPTA".
	titledNamePattern = regexp.MustCompile(`\b(?:MR|MRS|MS|DR)\.?\s+([A-Z]+(?:\s+[A-Z]+)*)`)
	embeddedTitle     = regexp.MustCompile(`(?i)\b(?:MR|MRS|MS|DR)\b`)

	flightNumberToken = regexp.MustCompile(`\b([A-Z]{2}\d{3,4})\b`)
	pnrLabeled        = regexp.MustCompile(`(?i)(?:PNR|booking\s*(?:ref|reference|code)|confirmation)[:\s#]+([A-Za-z0-9]{5,8})`)
	routeText         = regexp.MustCompile(`\b([A-Z]{3})\s*(?:→|->|to|-)\s*([A-Z]{3})\b`)
	routeFilename     = regexp.MustCompile(`(?i)([A-Z]{3})-([A-Z]{3})`)
	departureTime     = regexp.MustCompile(`(?i)(?:departs?|departure|dep)[:\s]+(\d{1,2}:\d{2}\s*(?:AM|PM)?)`)
	arrivalTime       = regexp.MustCompile(`(?i)(?:arrives?|arrival|arr)[:\s]+(\d{1,2}:\d{2}\s*(?:AM|PM)?)`)
	airlineLabeled    = regexp.MustCompile(`(?i)(?:airline|operated\s+by|carrier)[:\s]+([A-Za-z\s]+?)(?:\n|,|flight)`)
	knownAirlines     = regexp.MustCompile(`(?i)\b(Virgin Australia|Jetstar|Qantas|Emirates|Air New Zealand|Singapore Airlines)\b`)

	hotelLabeled = regexp.MustCompile(`(?i)(?:hotel|resort|inn|lodge|property)[:\s]+([^\n]+)`)
	hotelHeading = regexp.MustCompile(`(?m)^([A-Z][A-Za-z\s&']+(?:Hotel|Resort|Inn|Lodge|Suites|Motel))`)
	checkInDate  = regexp.MustCompile(`(?i)(?:check.?in|arrival)[:\s]+(\d{1,2}[/\-]\d{1,2}[/\-]\d{2,4}|\d{1,2}\s+\w+\s+\d{4})`)
	checkOutDate = regexp.MustCompile(`(?i)(?:check.?out|departure)[:\s]+(\d{1,2}[/\-]\d{1,2}[/\-]\d{2,4}|\d{1,2}\s+\w+\s+\d{4})`)

	pickupLocation  = regexp.MustCompile(`(?i)(?:pick.?up|pickup\s+location)[:\s]+([^\n]+)`)
	dropoffLocation = regexp.MustCompile(`(?i)(?:drop.?off|return\s+location)[:\s]+([^\n]+)`)
	vehicleModel    = regexp.MustCompile(`(?i)(?:vehicle|car|model)[:\s]+([^\n]{3,40})`)
	pickupTime      = regexp.MustCompile(`(?i)pick.?up\s+time[:\s]+(\d{1,2}:\d{2}\s*(?:AM|PM)?)`)
	rentalRef       = regexp.MustCompile(`(?i)(?:booking|confirmation|reservation)\s*(?:ref|reference|number|id|no)[:\s#]+([A-Za-z0-9\-]{4,20})`)

	activityStart    = regexp.MustCompile(`(?i)(?:departs?|starts?|begins?|time)[:\s]+(\d{1,2}:\d{2}\s*(?:AM|PM)?)`)
	activityEnd      = regexp.MustCompile(`(?i)(?:ends?|returns?|finishes?)[:\s]+(\d{1,2}:\d{2}\s*(?:AM|PM)?)`)
	activityLocation = regexp.MustCompile(`(?i)(?:location|meeting\s+point|departs?\s+from|departure\s+point)[:\s]+([^\n]{3,80})`)
	activityRef      = regexp.MustCompile(`(?i)(?:booking|confirmation|reservation|ref)[:\s#]+([A-Za-z0-9\-]{4,20})`)

	whitespaceRun = regexp.MustCompile(`\s+`)
)

// ExtractMetadata pulls category-specific fields from the document text.
// Every rule is independently optional: a pattern that fails to match
// simply omits its field. Passenger names are extracted for every
// category.
func ExtractMetadata(text string, category Category, filename string) Metadata {
	meta := Metadata{}

	if passengers := extractPassengers(text); len(passengers) > 0 {
		meta["passengers"] = passengers
	}

	switch category {
	case CategoryFlights:
		extractFlightFields(meta, text, filename)
	case CategoryHotels:
		extractHotelFields(meta, text)
	case CategoryCarRental:
		extractCarRentalFields(meta, text)
	case CategoryActivities:
		extractActivityFields(meta, text)
	}
	return meta
}

// extractPassengers merges two independent strategies into one
// first-seen ordered set: labeled mixed-case names, and title-prefixed
// ALL-CAPS names converted to Title Case. Names are kept exactly as
// written in the source; no surname inference, no cross-record merging.
func extractPassengers(text string) []string {
	seen := make(map[string]bool)
	var passengers []string
	add := func(name string) {
		if len(name) <= 3 || len(name) >= 50 || seen[name] {
			return
		}
		seen[name] = true
		passengers = append(passengers, name)
	}

	for _, m := range labeledNamePattern.FindAllStringSubmatch(text, -1) {
		add(strings.Join(strings.Fields(m[1]), " "))
	}

	for _, m := range titledNamePattern.FindAllStringSubmatch(text, -1) {
		namePart := m[1]
		// Cut at the next embedded title so adjacent passenger blocks
		// cannot merge into one name.
		if loc := embeddedTitle.FindStringIndex(namePart); loc != nil {
			namePart = namePart[:loc[0]]
		}
		words := strings.Fields(namePart)
		if len(words) > 3 {
			words = words[:3]
		}
		if len(words) < 2 {
			continue
		}
		for i, w := range words {
			words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
		}
		add(strings.Join(words, " "))
	}

	if len(passengers) > maxPassengersPerDocument {
		passengers = passengers[:maxPassengersPerDocument]
	}
	return passengers
}

func extractFlightFields(meta Metadata, text, filename string) {
	if m := flightNumberToken.FindStringSubmatch(text); m != nil {
		meta["flight_number"] = m[1]
	} else if m := flightNumberFilename.FindStringSubmatch(filename); m != nil {
		meta["flight_number"] = strings.ToUpper(m[1])
	}

	if m := pnrLabeled.FindStringSubmatch(text); m != nil {
		meta["pnr"] = strings.ToUpper(m[1])
	}

	// A route in the text beats one parsed from the filename.
	if m := routeText.FindStringSubmatch(text); m != nil {
		meta["departure_airport"] = m[1]
		meta["arrival_airport"] = m[2]
	} else if m := routeFilename.FindStringSubmatch(filename); m != nil {
		meta["departure_airport"] = strings.ToUpper(m[1])
		meta["arrival_airport"] = strings.ToUpper(m[2])
	}

	if m := departureTime.FindStringSubmatch(text); m != nil {
		meta["departure_time"] = strings.TrimSpace(m[1])
	}
	if m := arrivalTime.FindStringSubmatch(text); m != nil {
		meta["arrival_time"] = strings.TrimSpace(m[1])
	}

	if m := airlineLabeled.FindStringSubmatch(text); m != nil {
		meta["airline"] = strings.TrimSpace(m[1])
	} else if m := knownAirlines.FindStringSubmatch(text); m != nil {
		meta["airline"] = m[1]
	}
}

func extractHotelFields(meta Metadata, text string) {
	if m := hotelLabeled.FindStringSubmatch(text); m != nil {
		meta["hotel_name"] = whitespaceRun.ReplaceAllString(strings.TrimSpace(m[1]), " ")
	} else if m := hotelHeading.FindStringSubmatch(text); m != nil {
		meta["hotel_name"] = whitespaceRun.ReplaceAllString(strings.TrimSpace(m[1]), " ")
	}

	if m := checkInDate.FindStringSubmatch(text); m != nil {
		meta["check_in"] = m[1]
	}
	if m := checkOutDate.FindStringSubmatch(text); m != nil {
		meta["check_out"] = m[1]
	}
}

func extractCarRentalFields(meta Metadata, text string) {
	if m := pickupLocation.FindStringSubmatch(text); m != nil {
		meta["pickup_location"] = strings.TrimSpace(m[1])
	}
	if m := dropoffLocation.FindStringSubmatch(text); m != nil {
		meta["dropoff_location"] = strings.TrimSpace(m[1])
	}
	if m := vehicleModel.FindStringSubmatch(text); m != nil {
		meta["vehicle"] = strings.TrimSpace(m[1])
	}
	if m := pickupTime.FindStringSubmatch(text); m != nil {
		meta["pickup_time"] = strings.TrimSpace(m[1])
	}
	if m := rentalRef.FindStringSubmatch(text); m != nil {
		meta["booking_ref"] = m[1]
	}
}

func extractActivityFields(meta Metadata, text string) {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) > 5 {
			meta["activity_name"] = truncate(line, maxActivityNameLength)
			break
		}
	}

	if m := activityStart.FindStringSubmatch(text); m != nil {
		meta["start_time"] = strings.TrimSpace(m[1])
	}
	if m := activityEnd.FindStringSubmatch(text); m != nil {
		meta["end_time"] = strings.TrimSpace(m[1])
	}
	if m := activityLocation.FindStringSubmatch(text); m != nil {
		meta["location"] = strings.TrimSpace(m[1])
	}
	if m := activityRef.FindStringSubmatch(text); m != nil {
		meta["booking_ref"] = m[1]
	}
}
