// Package config is responsible for initializing the application's configuration.
// It uses the Viper library to read settings from a config file, environment
// variables, and command-line flags, providing a unified configuration system.
package config

import (
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ionian-data/greeka-hotels-crawler/internal/logging"
)

// InitConfig initializes the application's configuration using Viper.
// It sets up default values, defines configuration search paths, and enables
// reading from environment variables. This function is designed to be called
// once at application startup.
func InitConfig() {
	viper.SetConfigName("config")
	viper.AddConfigPath(".")                  // Current working directory
	viper.AddConfigPath("/etc/hotelcrawl/")   // System-wide configuration
	viper.AddConfigPath("$HOME/.hotelcrawl")  // User-specific configuration

	const defaultUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	viper.SetDefault("crawler.listing_url", "https://www.greeka.com/ionian/corfu/hotels/")
	viper.SetDefault("crawler.user_agent", defaultUA)
	viper.SetDefault("crawler.delay_between_requests", "1s")
	viper.SetDefault("crawler.delay_between_hotels", "2s")
	viper.SetDefault("crawler.max_retries", 3)
	viper.SetDefault("crawler.request_timeout", "30s")
	viper.SetDefault("crawler.max_pages", 20)
	viper.SetDefault("crawler.detail_path_marker", "/hotels/")
	viper.SetDefault("crawler.title_suffixes", []string{" | Greeka", " - Greeka"})
	viper.SetDefault("crawler.website_denylist", []string{
		"facebook.com",
		"twitter.com",
		"x.com",
		"instagram.com",
		"youtube.com",
		"pinterest.com",
		"booking.com",
		"tripadvisor.com",
		"expedia.com",
		"agoda.com",
		"hotels.com",
	})
	viper.SetDefault("crawler.cache_enabled", true)
	viper.SetDefault("crawler.cache_dir", "data/cache")
	viper.SetDefault("crawler.output_csv", "hotels.csv")
	viper.SetDefault("crawler.output_json", "hotels.json")
	viper.SetDefault("crawler.metrics_addr", "")
	viper.SetDefault("crawler.development_logging", false)

	// Enable Viper to read environment variables,
	// e.g. CRAWLER_CRAWLER_MAX_RETRIES=5.
	viper.SetEnvPrefix("CRAWLER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; not fatal, defaults and env vars suffice.
			logging.L.Warn("Config file not found; using defaults and environment variables.")
		} else {
			logging.L.Error("Error reading config file", zap.Error(err))
		}
	} else {
		logging.L.Info("Using config file", zap.String("path", viper.ConfigFileUsed()))
	}
}
