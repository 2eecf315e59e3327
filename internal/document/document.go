package document

import (
	"time"

	"github.com/tripvault/trip-vault/internal/classify"
)

// rawTextLimit caps how much extracted text is persisted on a record.
const rawTextLimit = 10000

// Document is the structured record produced from one ingested file.
// It is immutable once created within a run; re-ingesting the same file
// replaces the stored record rather than adding a second one.
type Document struct {
	ID          string            `json:"id"`
	Filename    string            `json:"filename"`
	StoragePath string            `json:"storage_path"`
	Category    classify.Category `json:"category"`
	Title       string            `json:"title"`
	RawText     string            `json:"raw_text,omitempty"`
	Metadata    classify.Metadata `json:"metadata"`
	EventDate   string            `json:"event_date,omitempty"` // YYYY-MM-DD, "" when unknown
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// TripSummary is the aggregate folded from every document in a run.
// There is only ever one logical summary; saving overwrites the
// previous one.
type TripSummary struct {
	TripName        string    `json:"trip_name"`
	StartDate       string    `json:"start_date,omitempty"`
	EndDate         string    `json:"end_date,omitempty"`
	DurationDays    int       `json:"duration_days,omitempty"` // 0 when either bound is unknown
	Passengers      []string  `json:"passengers"`
	Destinations    []string  `json:"destinations"`
	PrimaryAirline  string    `json:"primary_airline,omitempty"`
	TotalFlights    int       `json:"total_flights"`
	TotalHotels     int       `json:"total_hotels"`
	TotalActivities int       `json:"total_activities"`
	TotalDocuments  int       `json:"total_documents"`
	UpdatedAt       time.Time `json:"updated_at"`
}
