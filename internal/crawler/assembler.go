package crawler

import (
	"context"

	"go.uber.org/zap"

	"github.com/ionian-data/greeka-hotels-crawler/internal/extract"
)

// EntityAssembler builds one HotelRecord per detail URL. A fetch failure
// invalidates the whole entity; extraction failures are field-local and
// never block the other fields.
type EntityAssembler struct {
	fetcher   Fetcher
	extractor *extract.Extractor
	logger    *zap.Logger
}

// NewEntityAssembler wires the assembler.
func NewEntityAssembler(fetcher Fetcher, extractor *extract.Extractor, logger *zap.Logger) *EntityAssembler {
	return &EntityAssembler{
		fetcher:   fetcher,
		extractor: extractor,
		logger:    logger,
	}
}

// Assemble fetches the detail page and runs every field extractor against
// it. On fetch failure it returns a SkippedEntity instead of a
// half-populated record. The returned record is never mutated afterwards.
func (a *EntityAssembler) Assemble(ctx context.Context, detailURL string) (HotelRecord, *SkippedEntity) {
	page, failure := a.fetcher.Fetch(ctx, detailURL)
	if failure != nil {
		a.logger.Warn("Skipping hotel after fetch failure",
			zap.String("url", detailURL),
			zap.String("reason", string(failure.Reason)),
			zap.Int("attempts", failure.Attempts),
		)
		return HotelRecord{}, &SkippedEntity{URL: detailURL, Reason: failure.Reason}
	}

	doc, err := extract.NewDocument(page.Body, detailURL)
	if err != nil {
		a.logger.Warn("Skipping hotel after parse failure",
			zap.String("url", detailURL),
			zap.Error(err),
		)
		return HotelRecord{}, &SkippedEntity{URL: detailURL, Reason: FailureNetwork}
	}

	record := HotelRecord{DetailURL: detailURL}

	a.runField(detailURL, "name", func() {
		if name, ok := a.extractor.Name(doc); ok {
			record.Name = name
		}
	})
	a.runField(detailURL, "star_rating", func() {
		if stars, ok := a.extractor.StarRating(doc); ok {
			record.StarRating = &stars
		}
	})
	a.runField(detailURL, "reviews", func() {
		if score, count, ok := a.extractor.Reviews(doc); ok {
			record.ReviewScore = &score
			record.NumberOfReviews = &count
		}
	})
	a.runField(detailURL, "phone_number", func() {
		if phone, ok := a.extractor.Phone(doc); ok {
			record.PhoneNumber = phone
		}
	})
	a.runField(detailURL, "official_website", func() {
		if site, ok := a.extractor.Website(doc); ok {
			record.OfficialWebsite = site
		}
	})
	a.runField(detailURL, "address", func() {
		if addr, ok := a.extractor.Address(doc); ok {
			record.Address = addr
		}
	})
	a.runField(detailURL, "coordinates", func() {
		if lat, lon, ok := a.extractor.Coordinates(doc); ok {
			record.Latitude = &lat
			record.Longitude = &lon
		}
	})

	a.logger.Info("Extracted hotel details",
		zap.String("url", detailURL),
		zap.String("name", record.Name),
	)
	return record, nil
}

// runField isolates one extractor so a panic inside it is a missing field,
// not a lost entity.
func (a *EntityAssembler) runField(url, field string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Warn("Field extractor panicked; leaving field absent",
				zap.String("url", url),
				zap.String("field", field),
				zap.Any("panic", r),
			)
		}
	}()
	fn()
}
