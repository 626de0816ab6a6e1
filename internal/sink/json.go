package sink

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ionian-data/greeka-hotels-crawler/internal/crawler"
)

// WriteJSON writes records as an indented JSON array with the same field
// set as the CSV output. Absent optional fields serialize as null.
func WriteJSON(path string, records []crawler.HotelRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create json %s: %w", path, err)
	}
	defer f.Close()

	if records == nil {
		records = []crawler.HotelRecord{}
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
