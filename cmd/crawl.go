package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ionian-data/greeka-hotels-crawler/internal/api"
	"github.com/ionian-data/greeka-hotels-crawler/internal/cache"
	"github.com/ionian-data/greeka-hotels-crawler/internal/crawler"
	"github.com/ionian-data/greeka-hotels-crawler/internal/extract"
	"github.com/ionian-data/greeka-hotels-crawler/internal/logging"
	"github.com/ionian-data/greeka-hotels-crawler/internal/sink"
)

// newCrawlCmd creates and configures the 'crawl' subcommand, which runs
// one full crawl and writes the configured outputs.
func newCrawlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl",
		Short: "Runs one crawl of the configured listing",
		Long: `Walks the listing pages, discovers every hotel detail page, fetches
each one with retries and pacing, and writes the extracted records to
the configured CSV and JSON outputs.`,

		RunE: runCrawlCommand,
	}
	return cmd
}

func runCrawlCommand(cmd *cobra.Command, _ []string) error {
	logger := logging.L

	cfg, err := crawler.LoadCrawlerConfig(viper.GetViper())
	if err != nil {
		return fmt.Errorf("load crawler config: %w", err)
	}

	engine, err := buildCrawlerEngine(cfg, logger)
	if err != nil {
		return err
	}

	if cfg.MetricsAddr != "" {
		metricsSrv := api.New(cfg.MetricsAddr, logger)
		metricsSrv.Start()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
				logger.Warn("Metrics listener shutdown failed", zap.Error(err))
			}
		}()
	}

	result, err := engine.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("run crawler: %w", err)
	}

	if err := writeOutputs(cfg, result); err != nil {
		return err
	}
	logSummary(logger, result)
	return nil
}

func buildCrawlerEngine(cfg crawler.CrawlerConfig, logger *zap.Logger) (*crawler.Engine, error) {
	var pageCache crawler.PageCache
	if cfg.CacheEnabled {
		fsCache, err := cache.NewFS(cfg.CacheDir, logger)
		if err != nil {
			// Absence of the cache store degrades to always-fetch.
			logger.Warn("Cache unavailable; fetching everything", zap.Error(err))
		} else {
			pageCache = fsCache
		}
	}

	fetcher := crawler.NewRetryingFetcher(
		crawler.NewCollyClient(cfg, logger),
		pageCache,
		crawler.NewExponentialRetryPolicy(cfg.MaxRetries),
		&crawler.TimerPacer{},
		cfg.DelayBetweenRequests,
		cfg.MaxRetries,
		logger,
	)

	discoverer := crawler.NewLinkDiscoverer(fetcher, cfg.DetailPathMarker, cfg.MaxPages, logger)
	assembler := crawler.NewEntityAssembler(fetcher, &extract.Extractor{
		TitleSuffixes:   cfg.TitleSuffixes,
		WebsiteDenylist: cfg.WebsiteDenylist,
	}, logger)

	return crawler.NewEngine(cfg, discoverer, assembler, &crawler.TimerPacer{}, logger), nil
}

func writeOutputs(cfg crawler.CrawlerConfig, result *crawler.CrawlResult) error {
	if cfg.OutputCSV != "" {
		if err := sink.WriteCSV(cfg.OutputCSV, result.Records); err != nil {
			return fmt.Errorf("write csv output: %w", err)
		}
		logging.L.Info("Wrote CSV output", zap.String("path", cfg.OutputCSV))
	}
	if cfg.OutputJSON != "" {
		if err := sink.WriteJSON(cfg.OutputJSON, result.Records); err != nil {
			return fmt.Errorf("write json output: %w", err)
		}
		logging.L.Info("Wrote JSON output", zap.String("path", cfg.OutputJSON))
	}
	return nil
}

// logSummary reports per-field completeness and the skip list, mirroring
// the summary printed after every run.
func logSummary(logger *zap.Logger, result *crawler.CrawlResult) {
	counts := result.Summary()
	logger.Info("Crawl summary",
		zap.String("run_id", result.RunID),
		zap.Int("hotels", counts.Total),
		zap.Int("with_website", counts.OfficialWebsite),
		zap.Int("with_address", counts.Address),
		zap.Int("with_star_rating", counts.StarRating),
		zap.Int("with_review_score", counts.ReviewScore),
		zap.Int("with_review_count", counts.NumberOfReviews),
		zap.Int("with_phone", counts.PhoneNumber),
		zap.Int("with_coordinates", counts.Coordinates),
		zap.Int("skipped", len(result.Skipped)),
	)
	for _, s := range result.Skipped {
		logger.Warn("Skipped hotel",
			zap.String("url", s.URL),
			zap.String("reason", string(s.Reason)),
		)
	}
}
