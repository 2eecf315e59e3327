package document

import (
	"sort"
	"time"

	"github.com/tripvault/trip-vault/internal/classify"
)

const (
	maxTripPassengers = 6
	defaultTripName   = "My Trip"
)

// orderedSet keeps first-seen insertion order with an optional size cap
// so the aggregate output is reproducible across runs with identical
// inputs.
type orderedSet struct {
	max    int // 0 means unbounded
	seen   map[string]bool
	values []string
}

func newOrderedSet(max int) *orderedSet {
	return &orderedSet{max: max, seen: make(map[string]bool)}
}

func (s *orderedSet) add(v string) {
	if s.seen[v] || (s.max > 0 && len(s.values) >= s.max) {
		return
	}
	s.seen[v] = true
	s.values = append(s.values, v)
}

func (s *orderedSet) list() []string {
	if s.values == nil {
		return []string{}
	}
	return s.values
}

// AggregateTrip folds a set of document results into one trip summary.
// It is a pure function: it never mutates its input and the same input
// always produces the same summary. First-occurrence order (passengers,
// destinations, airline tie-breaks) follows the input iteration order,
// which in practice is filesystem traversal order.
func AggregateTrip(docs []*Document) *TripSummary {
	summary := &TripSummary{TripName: defaultTripName}

	var dates []string
	passengers := newOrderedSet(maxTripPassengers)
	destinations := newOrderedSet(0)
	airlineCounts := make(map[string]int)
	var airlineOrder []string

	for _, doc := range docs {
		if doc.EventDate != "" {
			dates = append(dates, doc.EventDate)
		}
		for _, name := range doc.Metadata.Passengers() {
			passengers.add(name)
		}

		switch doc.Category {
		case classify.CategoryFlights:
			summary.TotalFlights++
			if airport := doc.Metadata.Str("departure_airport"); airport != "" {
				destinations.add(airport)
			}
			if airport := doc.Metadata.Str("arrival_airport"); airport != "" {
				destinations.add(airport)
			}
			if airline := doc.Metadata.Str("airline"); airline != "" {
				if airlineCounts[airline] == 0 {
					airlineOrder = append(airlineOrder, airline)
				}
				airlineCounts[airline]++
			}
		case classify.CategoryHotels:
			summary.TotalHotels++
		case classify.CategoryActivities:
			summary.TotalActivities++
		}
	}

	// ISO dates compare correctly as plain strings.
	sort.Strings(dates)
	if len(dates) > 0 {
		summary.StartDate = dates[0]
		summary.EndDate = dates[len(dates)-1]
		summary.DurationDays = inclusiveDays(summary.StartDate, summary.EndDate)
	}

	summary.Passengers = passengers.list()
	summary.Destinations = destinations.list()

	// Most frequent airline wins; ties go to the first one seen.
	best := 0
	for _, airline := range airlineOrder {
		if airlineCounts[airline] > best {
			best = airlineCounts[airline]
			summary.PrimaryAirline = airline
		}
	}

	if n := len(summary.Destinations); n >= 2 {
		summary.TripName = summary.Destinations[0] + " → " + summary.Destinations[n-1]
	} else if n == 1 {
		summary.TripName = "Trip to " + summary.Destinations[0]
	}

	summary.TotalDocuments = len(docs)
	return summary
}

// inclusiveDays counts both endpoints, so a same-day trip is 1 day.
func inclusiveDays(start, end string) int {
	s, err := time.Parse("2006-01-02", start)
	if err != nil {
		return 0
	}
	e, err := time.Parse("2006-01-02", end)
	if err != nil {
		return 0
	}
	return int(e.Sub(s).Hours()/24) + 1
}
