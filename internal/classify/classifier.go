package classify

import (
	"regexp"
	"strings"
)

// Category is the closed set of classes a travel document can belong to.
type Category string

const (
	CategoryFlights    Category = "flights"
	CategoryHotels     Category = "hotels"
	CategoryCarRental  Category = "car_rental"
	CategoryActivities Category = "activities"
	CategoryInsurance  Category = "insurance"
	CategoryMisc       Category = "misc"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryFlights,
	CategoryHotels,
	CategoryCarRental,
	CategoryActivities,
	CategoryInsurance,
	CategoryMisc,
}

// folderCategories maps curated folder names to a category. A matching
// folder hint is authoritative and skips the content rules entirely.
var folderCategories = map[string]Category{
	"flights":       CategoryFlights,
	"activities":    CategoryActivities,
	"car rental":    CategoryCarRental,
	"hotels":        CategoryHotels,
	"insurance":     CategoryInsurance,
	"personal docs": CategoryMisc,
	"personal":      CategoryMisc,
}

var (
	flightNumberFilename = regexp.MustCompile(`(?i)(?:^|[\s_\-])([A-Z]{2}\d{3,4})(?:$|[\s_\-.])`)
	flightNumberText     = regexp.MustCompile(`\b[A-Z]{2}\d{3,4}\b`)
	pnrFilename          = regexp.MustCompile(`(?i)(?:^|[\s_\-])PNR[-_]`)
	pnrToken             = regexp.MustCompile(`(?i)\bPNR\b`)
	airportPairFilename  = regexp.MustCompile(`\b[A-Z]{3}-[A-Z]{3}\b`)

	activityKeywords  = regexp.MustCompile(`tour|cruise|activity|zoo|safari|museum|park|ticket|booking|excursion|transfer|stargazing|hobbiton|milford|glacier|helicopter|sea.world|movie.world|waitomo|scenic`)
	hotelKeywords     = regexp.MustCompile(`hotel|resort|inn|lodge|accommodation|check.in|check.out|room|nights?\b`)
	carRentalKeywords = regexp.MustCompile(`rental|car.hire|hertz|avis|enterprise|budget|thrifty|dollar|sixt|drop.?off`)
	insuranceKeywords = regexp.MustCompile(`insurance|travel.protect|policy|cover|claim`)
	flightKeywords    = regexp.MustCompile(`flight|airline|boarding|departure|arrival|airways|depart`)
)

// signals carries the raw and folded inputs through the rule list. The
// keyword rules see only the folded prefix; the flight-number and PNR
// checks may look at the full raw text.
type signals struct {
	filename string
	text     string
	combined string
}

// contentRules are evaluated top to bottom and the first match decides
// the category. Specific signals come before generic keywords so a word
// like "departure" inside a hotel confirmation cannot win.
var contentRules = []struct {
	match    func(in signals) bool
	category Category
}{
	{hasFlightSignal, CategoryFlights},
	{func(in signals) bool { return activityKeywords.MatchString(in.combined) }, CategoryActivities},
	{func(in signals) bool { return hotelKeywords.MatchString(in.combined) }, CategoryHotels},
	{func(in signals) bool { return carRentalKeywords.MatchString(in.combined) }, CategoryCarRental},
	{func(in signals) bool { return insuranceKeywords.MatchString(in.combined) }, CategoryInsurance},
	{func(in signals) bool { return flightKeywords.MatchString(in.combined) }, CategoryFlights},
}

func hasFlightSignal(in signals) bool {
	if flightNumberFilename.MatchString(in.filename) || flightNumberText.MatchString(in.text) {
		return true
	}
	if pnrFilename.MatchString(in.filename) || pnrToken.MatchString(in.combined) {
		return true
	}
	return airportPairFilename.MatchString(in.filename)
}

// Classify maps a document to exactly one category. folderHint is the
// name of the file's parent directory; it wins over any content signal
// when it maps to a known category. With no hint and no matching content
// rule the document falls back to misc. The function is a pure function
// of its inputs and is safe on empty text.
func Classify(filename, text, folderHint string) Category {
	if folderHint != "" {
		if category, ok := folderCategories[strings.ToLower(folderHint)]; ok {
			return category
		}
	}

	in := signals{
		filename: filename,
		text:     text,
		combined: strings.ToLower(filename) + " " + foldedPrefix(text, keywordScanLimit),
	}
	for _, rule := range contentRules {
		if rule.match(in) {
			return rule.category
		}
	}
	return CategoryMisc
}
