package crawler

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// CrawlerConfig captures every configuration knob that influences a crawl run.
// All values originate from Viper so the crawler can be configured via files,
// env vars, or CLI flags.
type CrawlerConfig struct {
	ListingURL           string
	UserAgent            string
	DelayBetweenRequests time.Duration
	DelayBetweenHotels   time.Duration
	MaxRetries           int
	RequestTimeout       time.Duration
	MaxPages             int
	DetailPathMarker     string
	TitleSuffixes        []string
	WebsiteDenylist      []string
	CacheEnabled         bool
	CacheDir             string
	OutputCSV            string
	OutputJSON           string
	MetricsAddr          string
	DevelopmentLogging   bool
}

// LoadCrawlerConfig constructs a CrawlerConfig by reading from Viper.
func LoadCrawlerConfig(v *viper.Viper) (CrawlerConfig, error) {
	cfg := CrawlerConfig{
		ListingURL:           v.GetString("crawler.listing_url"),
		UserAgent:            v.GetString("crawler.user_agent"),
		DelayBetweenRequests: v.GetDuration("crawler.delay_between_requests"),
		DelayBetweenHotels:   v.GetDuration("crawler.delay_between_hotels"),
		MaxRetries:           v.GetInt("crawler.max_retries"),
		RequestTimeout:       v.GetDuration("crawler.request_timeout"),
		MaxPages:             v.GetInt("crawler.max_pages"),
		DetailPathMarker:     v.GetString("crawler.detail_path_marker"),
		TitleSuffixes:        trimStrings(v.GetStringSlice("crawler.title_suffixes")),
		WebsiteDenylist:      normalizeHosts(v.GetStringSlice("crawler.website_denylist")),
		CacheEnabled:         v.GetBool("crawler.cache_enabled"),
		CacheDir:             v.GetString("crawler.cache_dir"),
		OutputCSV:            v.GetString("crawler.output_csv"),
		OutputJSON:           v.GetString("crawler.output_json"),
		MetricsAddr:          v.GetString("crawler.metrics_addr"),
		DevelopmentLogging:   v.GetBool("crawler.development_logging"),
	}
	return cfg, cfg.Validate()
}

// Validate checks for obviously bad configuration combinations.
func (c CrawlerConfig) Validate() error {
	if strings.TrimSpace(c.ListingURL) == "" {
		return fmt.Errorf("crawler.listing_url must be set")
	}
	if _, err := url.ParseRequestURI(c.ListingURL); err != nil {
		return fmt.Errorf("crawler.listing_url is not a valid URL: %w", err)
	}
	if c.UserAgent == "" {
		return fmt.Errorf("crawler.user_agent must be set")
	}
	if c.DelayBetweenRequests < 0 {
		return fmt.Errorf("crawler.delay_between_requests must be >= 0")
	}
	if c.DelayBetweenHotels < 0 {
		return fmt.Errorf("crawler.delay_between_hotels must be >= 0")
	}
	if c.MaxRetries <= 0 {
		return fmt.Errorf("crawler.max_retries must be > 0")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("crawler.request_timeout must be > 0")
	}
	if c.MaxPages <= 0 {
		return fmt.Errorf("crawler.max_pages must be > 0")
	}
	if c.DetailPathMarker == "" {
		return fmt.Errorf("crawler.detail_path_marker must be set")
	}
	if c.CacheEnabled && c.CacheDir == "" {
		return fmt.Errorf("crawler.cache_dir must be set when the cache is enabled")
	}
	if c.OutputCSV == "" && c.OutputJSON == "" {
		return fmt.Errorf("at least one of crawler.output_csv or crawler.output_json must be set")
	}
	return nil
}

func trimStrings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func normalizeHosts(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{})
	for _, h := range in {
		h = strings.ToLower(strings.TrimSpace(h))
		h = strings.TrimPrefix(h, "www.")
		if h == "" {
			continue
		}
		if _, ok := seen[h]; ok {
			continue
		}
		seen[h] = struct{}{}
		out = append(out, h)
	}
	return out
}
