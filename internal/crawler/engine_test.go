package crawler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ionian-data/greeka-hotels-crawler/internal/extract"
)

// newFixtureSite serves a 2-page listing with five distinct detail pages,
// one of which always returns HTTP 500.
func newFixtureSite(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/corfu/hotels/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		switch r.URL.Query().Get("page") {
		case "", "1":
			fmt.Fprint(w, `<html><body>
				<a href="/corfu/hotels/hotel-1/">Hotel 1</a>
				<a href="/corfu/hotels/hotel-2/">Hotel 2</a>
				<a href="/corfu/hotels/hotel-3/">Hotel 3</a>
				<a href="/corfu/hotels/?page=2">Next page</a>
			</body></html>`)
		case "2":
			fmt.Fprint(w, `<html><body>
				<a href="/corfu/hotels/hotel-3/">Hotel 3 again</a>
				<a href="/corfu/hotels/hotel-4/">Hotel 4</a>
				<a href="/corfu/hotels/hotel-5/">Hotel 5</a>
			</body></html>`)
		default:
			// Pages past the content repeat known links only.
			fmt.Fprint(w, `<html><body>
				<a href="/corfu/hotels/hotel-1/">Hotel 1</a>
			</body></html>`)
		}
	})

	for i := 1; i <= 5; i++ {
		if i == 3 {
			mux.HandleFunc("/corfu/hotels/hotel-3/", func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "upstream exploded", http.StatusInternalServerError)
			})
			continue
		}
		name := fmt.Sprintf("Hotel %d", i)
		lat := 39.5 + float64(i)/100
		lon := 19.8 + float64(i)/100
		mux.HandleFunc(fmt.Sprintf("/corfu/hotels/hotel-%d/", i), func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			fmt.Fprintf(w, `<html><head><title>%s | Greeka</title></head><body>
				<h1>%s</h1>
				<span class="star-rating">★★★</span>
				<div>4.2/5 (%d reviews)</div>
				<script>{"@type":"GeoCoordinates","latitude":"%f","longitude":"%f"}</script>
			</body></html>`, name, name, i*10, lat, lon)
		})
	}

	return httptest.NewServer(mux)
}

func newE2EEngine(t *testing.T, baseURL string) *Engine {
	t.Helper()
	cfg := CrawlerConfig{
		ListingURL:           baseURL + "/corfu/hotels/",
		UserAgent:            "hotelcrawl-test",
		DelayBetweenRequests: 0,
		DelayBetweenHotels:   0,
		MaxRetries:           2,
		RequestTimeout:       5 * time.Second,
		MaxPages:             10,
		DetailPathMarker:     "/hotels/",
		TitleSuffixes:        []string{" | Greeka"},
	}
	logger := zap.NewNop()

	fetcher := NewRetryingFetcher(
		NewCollyClient(cfg, logger),
		nil,
		NewExponentialRetryPolicy(cfg.MaxRetries),
		nopPacer{},
		0,
		cfg.MaxRetries,
		logger,
	)
	discoverer := NewLinkDiscoverer(fetcher, cfg.DetailPathMarker, cfg.MaxPages, logger)
	assembler := NewEntityAssembler(fetcher, &extract.Extractor{TitleSuffixes: cfg.TitleSuffixes}, logger)
	return NewEngine(cfg, discoverer, assembler, nopPacer{}, logger)
}

func TestEngineEndToEnd(t *testing.T) {
	site := newFixtureSite(t)
	defer site.Close()

	engine := newE2EEngine(t, site.URL)
	result, err := engine.Run(context.Background())
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.NotEmpty(t, result.RunID)

	// Five distinct detail URLs, one permanently failing.
	require.Len(t, result.Records, 4)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, FailureHTTPStatus, result.Skipped[0].Reason)
	assert.Contains(t, result.Skipped[0].URL, "hotel-3")

	// Output order mirrors discovery order.
	names := make([]string, 0, len(result.Records))
	for _, r := range result.Records {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"Hotel 1", "Hotel 2", "Hotel 4", "Hotel 5"}, names)

	// detail_url is pairwise distinct within one run.
	seen := make(map[string]struct{})
	for _, r := range result.Records {
		_, dup := seen[r.DetailURL]
		assert.False(t, dup, "duplicate detail_url %s", r.DetailURL)
		seen[r.DetailURL] = struct{}{}
	}

	// Coordinate and rating invariants hold for every record.
	for _, r := range result.Records {
		require.True(t, r.HasCoordinates())
		assert.GreaterOrEqual(t, *r.Latitude, -90.0)
		assert.LessOrEqual(t, *r.Latitude, 90.0)
		assert.GreaterOrEqual(t, *r.Longitude, -180.0)
		assert.LessOrEqual(t, *r.Longitude, 180.0)
		require.NotNil(t, r.StarRating)
		assert.GreaterOrEqual(t, *r.StarRating, 1)
		assert.LessOrEqual(t, *r.StarRating, 5)
		require.NotNil(t, r.ReviewScore)
		assert.GreaterOrEqual(t, *r.ReviewScore, 0.0)
		assert.LessOrEqual(t, *r.ReviewScore, 5.0)
	}
}

func TestEngineUnreachableRootIsFatal(t *testing.T) {
	site := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer site.Close()

	engine := newE2EEngine(t, site.URL)
	_, err := engine.Run(context.Background())
	require.Error(t, err)
}

func TestCrawlResultSummary(t *testing.T) {
	stars := 4
	score := 4.5
	count := 10
	lat, lon := 39.6, 19.9
	result := &CrawlResult{Records: []HotelRecord{
		{Name: "A", DetailURL: "u1", StarRating: &stars, PhoneNumber: "+30 123"},
		{Name: "B", DetailURL: "u2", ReviewScore: &score, NumberOfReviews: &count, Latitude: &lat, Longitude: &lon},
		{Name: "C", DetailURL: "u3", OfficialWebsite: "https://c.example", Address: "Somewhere in Corfu"},
	}}

	counts := result.Summary()
	assert.Equal(t, 3, counts.Total)
	assert.Equal(t, 1, counts.StarRating)
	assert.Equal(t, 1, counts.ReviewScore)
	assert.Equal(t, 1, counts.NumberOfReviews)
	assert.Equal(t, 1, counts.PhoneNumber)
	assert.Equal(t, 1, counts.OfficialWebsite)
	assert.Equal(t, 1, counts.Address)
	assert.Equal(t, 1, counts.Coordinates)
}
