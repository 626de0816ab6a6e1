package crawler

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Engine orchestrates a crawl run: discover detail links, then assemble
// one record per link, pacing between entities. The run is sequential by
// design so the target sees at most one in-flight request.
type Engine struct {
	cfg        CrawlerConfig
	discoverer *LinkDiscoverer
	assembler  *EntityAssembler
	pacer      Pacer
	logger     *zap.Logger
}

// NewEngine wires the orchestrator.
func NewEngine(
	cfg CrawlerConfig,
	discoverer *LinkDiscoverer,
	assembler *EntityAssembler,
	pacer Pacer,
	logger *zap.Logger,
) *Engine {
	return &Engine{
		cfg:        cfg,
		discoverer: discoverer,
		assembler:  assembler,
		pacer:      pacer,
		logger:     logger,
	}
}

// Run executes one crawl. No single entity failure aborts the run; the
// only run-fatal condition is the listing root being unreachable. Record
// order mirrors discovery order.
func (e *Engine) Run(ctx context.Context) (*CrawlResult, error) {
	start := time.Now()
	result := &CrawlResult{RunID: uuid.NewString()}
	logger := e.logger.With(zap.String("run_id", result.RunID))

	logger.Info("Starting crawl", zap.String("listing_url", e.cfg.ListingURL))
	links, err := e.discoverer.Discover(ctx, e.cfg.ListingURL)
	if err != nil {
		return nil, fmt.Errorf("discover detail links: %w", err)
	}
	if len(links) == 0 {
		logger.Warn("No detail links discovered")
	}

	for i, link := range links {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("crawl canceled: %w", err)
		}
		if i > 0 {
			e.pacer.Pause(ctx, e.cfg.DelayBetweenHotels)
		}
		logger.Info("Processing hotel",
			zap.Int("index", i+1),
			zap.Int("total", len(links)),
			zap.String("url", link),
		)
		record, skipped := e.assembler.Assemble(ctx, link)
		if skipped != nil {
			TotalEntitiesSkipped.Inc()
			result.Skipped = append(result.Skipped, *skipped)
			continue
		}
		TotalRecords.Inc()
		result.Records = append(result.Records, record)
	}

	result.Elapsed = time.Since(start)
	logger.Info("Crawl completed",
		zap.Int("records", len(result.Records)),
		zap.Int("skipped", len(result.Skipped)),
		zap.Duration("elapsed", result.Elapsed),
	)
	return result, nil
}
