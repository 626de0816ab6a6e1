package crawler

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidViper() *viper.Viper {
	v := viper.New()
	v.Set("crawler.listing_url", "https://www.greeka.com/ionian/corfu/hotels/")
	v.Set("crawler.user_agent", "hotelcrawl/1.0")
	v.Set("crawler.delay_between_requests", "1s")
	v.Set("crawler.delay_between_hotels", "2s")
	v.Set("crawler.max_retries", 3)
	v.Set("crawler.request_timeout", "20s")
	v.Set("crawler.max_pages", 50)
	v.Set("crawler.detail_path_marker", "/hotels/")
	v.Set("crawler.title_suffixes", []string{" | Greeka", ""})
	v.Set("crawler.website_denylist", []string{"Facebook.com", "www.booking.com", "facebook.com", " "})
	v.Set("crawler.cache_enabled", true)
	v.Set("crawler.cache_dir", ".cache")
	v.Set("crawler.output_csv", "hotels.csv")
	v.Set("crawler.output_json", "hotels.json")
	return v
}

func TestLoadCrawlerConfig(t *testing.T) {
	cfg, err := LoadCrawlerConfig(newValidViper())
	require.NoError(t, err)

	assert.Equal(t, "https://www.greeka.com/ionian/corfu/hotels/", cfg.ListingURL)
	assert.Equal(t, time.Second, cfg.DelayBetweenRequests)
	assert.Equal(t, 2*time.Second, cfg.DelayBetweenHotels)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, 20*time.Second, cfg.RequestTimeout)
	assert.Equal(t, []string{" | Greeka"}, cfg.TitleSuffixes, "empty suffixes are dropped")
	assert.Equal(t, []string{"facebook.com", "booking.com"}, cfg.WebsiteDenylist,
		"denylist hosts are lowercased, de-www'd, and deduplicated")
}

func TestValidateRejectsBadConfig(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(v *viper.Viper)
	}{
		{"missing listing url", func(v *viper.Viper) { v.Set("crawler.listing_url", "") }},
		{"malformed listing url", func(v *viper.Viper) { v.Set("crawler.listing_url", "not-a-url") }},
		{"missing user agent", func(v *viper.Viper) { v.Set("crawler.user_agent", "") }},
		{"negative request delay", func(v *viper.Viper) { v.Set("crawler.delay_between_requests", "-1s") }},
		{"zero retries", func(v *viper.Viper) { v.Set("crawler.max_retries", 0) }},
		{"zero timeout", func(v *viper.Viper) { v.Set("crawler.request_timeout", "0s") }},
		{"zero page ceiling", func(v *viper.Viper) { v.Set("crawler.max_pages", 0) }},
		{"missing detail marker", func(v *viper.Viper) { v.Set("crawler.detail_path_marker", "") }},
		{"cache enabled without dir", func(v *viper.Viper) { v.Set("crawler.cache_dir", "") }},
		{"no outputs at all", func(v *viper.Viper) {
			v.Set("crawler.output_csv", "")
			v.Set("crawler.output_json", "")
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := newValidViper()
			tc.mutate(v)
			_, err := LoadCrawlerConfig(v)
			require.Error(t, err)
		})
	}
}
