// Package sink serializes assembled hotel records to their output formats.
// Both writers derive from the same record slice with an identical field
// set, so the tabular and structured outputs never drift apart.
package sink

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/ionian-data/greeka-hotels-crawler/internal/crawler"
)

// csvHeader fixes the column order consumed by downstream analysis.
var csvHeader = []string{
	"name",
	"official_website",
	"address",
	"star_rating",
	"review_score",
	"number_of_reviews",
	"phone_number",
	"latitude",
	"longitude",
	"detail_url",
}

// WriteCSV writes records as a header row plus one row per record. Absent
// optional fields serialize as empty cells.
func WriteCSV(path string, records []crawler.HotelRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range records {
		row := []string{
			r.Name,
			r.OfficialWebsite,
			r.Address,
			formatInt(r.StarRating),
			formatFloat(r.ReviewScore),
			formatInt(r.NumberOfReviews),
			r.PhoneNumber,
			formatFloat(r.Latitude),
			formatFloat(r.Longitude),
			r.DetailURL,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

func formatInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
