package crawler

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"
)

// CollyClient performs single-shot HTTP GETs through a Colly collector.
// Retries, pacing, and caching live a layer above in RetryingFetcher.
type CollyClient struct {
	baseCollector *colly.Collector
	logger        *zap.Logger
}

// NewCollyClient constructs a configured Colly-based page getter.
func NewCollyClient(cfg CrawlerConfig, logger *zap.Logger) *CollyClient {
	base := colly.NewCollector(
		colly.UserAgent(cfg.UserAgent),
	)
	base.AllowURLRevisit = true
	base.WithTransport(&http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		MaxIdleConns:          16,
		MaxIdleConnsPerHost:   4,
		IdleConnTimeout:       30 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: cfg.RequestTimeout,
		ForceAttemptHTTP2:     true,
	})
	base.SetRequestTimeout(cfg.RequestTimeout)

	return &CollyClient{
		baseCollector: base,
		logger:        logger,
	}
}

// Get retrieves a page via the configured Colly collector. Non-2xx
// responses come back as an error alongside a Page carrying the status
// code, so callers can classify the failure.
func (c *CollyClient) Get(ctx context.Context, rawURL string) (Page, error) {
	collector := c.baseCollector.Clone()
	resultCh := make(chan fetchResult, 1)
	var once sync.Once
	send := func(res fetchResult) {
		once.Do(func() {
			resultCh <- res
		})
	}

	start := time.Now()
	collector.OnResponse(func(r *colly.Response) {
		page := Page{
			URL:        rawURL,
			FinalURL:   r.Request.URL.String(),
			StatusCode: r.StatusCode,
			Body:       append([]byte{}, r.Body...),
			Duration:   time.Since(start),
		}
		send(fetchResult{page: page})
	})

	collector.OnError(func(r *colly.Response, err error) {
		if err == nil {
			err = errors.New("unknown colly error")
		}
		page := Page{URL: rawURL, Duration: time.Since(start)}
		if r != nil {
			// Colly reports non-2xx responses here with the status set.
			page.StatusCode = r.StatusCode
			if r.Request != nil {
				page.FinalURL = r.Request.URL.String()
			}
		}
		send(fetchResult{page: page, err: err})
	})

	if err := collector.Visit(rawURL); err != nil {
		return Page{URL: rawURL}, err
	}
	collector.Wait()

	select {
	case res := <-resultCh:
		if err := ctx.Err(); err != nil {
			return Page{URL: rawURL}, err
		}
		return res.page, res.err
	default:
		return Page{URL: rawURL}, errors.New("colly fetch produced no result")
	}
}

type fetchResult struct {
	page Page
	err  error
}
