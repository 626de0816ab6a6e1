// Package crawler defines core types shared across subsystems.
package crawler

import (
	"fmt"
	"time"
)

// FailureReason classifies why a fetch gave up on a URL.
type FailureReason string

// Failure reasons surfaced to callers and the skip log.
const (
	FailureNetwork    FailureReason = "NETWORK"
	FailureTimeout    FailureReason = "TIMEOUT"
	FailureHTTPStatus FailureReason = "HTTP_STATUS"
)

// Failure is the terminal outcome of a fetch after all retries were spent.
// It is entity-fatal, never run-fatal: callers skip the URL and move on.
type Failure struct {
	URL      string
	Reason   FailureReason
	Attempts int
	Err      error
}

// Error implements the error interface for logging convenience.
func (f *Failure) Error() string {
	return fmt.Sprintf("fetch %s failed after %d attempts (%s): %v", f.URL, f.Attempts, f.Reason, f.Err)
}

// Page is a fetched document. FromCache marks bodies served without a
// network round trip.
type Page struct {
	URL        string
	FinalURL   string
	StatusCode int
	Body       []byte
	FromCache  bool
	Duration   time.Duration
}

// HotelRecord is one assembled entity per detail page. Name and DetailURL
// are structurally required; every other field may be absent. Optional
// numerics are pointers so absence survives serialization; optional texts
// use the empty string.
type HotelRecord struct {
	Name            string   `json:"name"`
	OfficialWebsite string   `json:"official_website"`
	Address         string   `json:"address"`
	StarRating      *int     `json:"star_rating"`
	ReviewScore     *float64 `json:"review_score"`
	NumberOfReviews *int     `json:"number_of_reviews"`
	PhoneNumber     string   `json:"phone_number"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
	DetailURL       string   `json:"detail_url"`
}

// HasCoordinates reports whether both halves of the pair are set.
func (r HotelRecord) HasCoordinates() bool {
	return r.Latitude != nil && r.Longitude != nil
}

// SkippedEntity records a detail URL that was abandoned after fetch failure.
type SkippedEntity struct {
	URL    string        `json:"url"`
	Reason FailureReason `json:"reason"`
}

// CrawlResult aggregates one run's output. Records mirror discovery order;
// Skipped holds one entry per abandoned entity.
type CrawlResult struct {
	RunID   string
	Records []HotelRecord
	Skipped []SkippedEntity
	Elapsed time.Duration
}

// FieldCounts tallies how many records carry each optional field, mirroring
// the per-field completeness report printed after a run.
type FieldCounts struct {
	Total           int
	OfficialWebsite int
	Address         int
	StarRating      int
	ReviewScore     int
	NumberOfReviews int
	PhoneNumber     int
	Coordinates     int
}

// Summary computes field completeness over the result set.
func (r *CrawlResult) Summary() FieldCounts {
	counts := FieldCounts{Total: len(r.Records)}
	for _, rec := range r.Records {
		if rec.OfficialWebsite != "" {
			counts.OfficialWebsite++
		}
		if rec.Address != "" {
			counts.Address++
		}
		if rec.StarRating != nil {
			counts.StarRating++
		}
		if rec.ReviewScore != nil {
			counts.ReviewScore++
		}
		if rec.NumberOfReviews != nil {
			counts.NumberOfReviews++
		}
		if rec.PhoneNumber != "" {
			counts.PhoneNumber++
		}
		if rec.HasCoordinates() {
			counts.Coordinates++
		}
	}
	return counts
}
