package crawler

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// PageGetter performs one HTTP GET with no retries. CollyClient is the
// production implementation.
type PageGetter interface {
	Get(ctx context.Context, rawURL string) (Page, error)
}

// RetryingFetcher is the sole network boundary. It paces every outbound
// request with a fixed delay, consults the cache before going to the
// network, retries with exponential backoff, and reports exhaustion as a
// typed Failure instead of an error. Its contract is total: it always
// returns either a usable Page or a Failure, never panics or raises.
type RetryingFetcher struct {
	getter      PageGetter
	cache       PageCache
	retry       RetryPolicy
	pacer       Pacer
	delay       time.Duration
	maxAttempts int
	logger      *zap.Logger
}

// NewRetryingFetcher wires the fetch pipeline. cache may be nil, which
// degrades to always-fetch. maxAttempts counts total attempts, so 3 means
// at most three GETs per URL.
func NewRetryingFetcher(
	getter PageGetter,
	cache PageCache,
	retry RetryPolicy,
	pacer Pacer,
	delay time.Duration,
	maxAttempts int,
	logger *zap.Logger,
) *RetryingFetcher {
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	return &RetryingFetcher{
		getter:      getter,
		cache:       cache,
		retry:       retry,
		pacer:       pacer,
		delay:       delay,
		maxAttempts: maxAttempts,
		logger:      logger,
	}
}

// Fetch retrieves rawURL, serving from cache when possible.
func (f *RetryingFetcher) Fetch(ctx context.Context, rawURL string) (Page, *Failure) {
	key, err := NormalizeURL(rawURL)
	if err != nil {
		return Page{}, &Failure{URL: rawURL, Reason: FailureNetwork, Attempts: 0, Err: err}
	}

	if f.cache != nil {
		if body, status, ok := f.cache.Get(ctx, key); ok {
			TotalCacheHits.Inc()
			f.logger.Debug("Cache hit", zap.String("url", key))
			return Page{URL: rawURL, FinalURL: rawURL, StatusCode: status, Body: body, FromCache: true}, nil
		}
	}

	var lastErr error
	var lastStatus int
	for attempt := 1; attempt <= f.maxAttempts; attempt++ {
		if attempt > 1 {
			TotalRetries.Inc()
			f.pacer.Pause(ctx, f.retry.Backoff(attempt-1))
		}
		f.pacer.Pause(ctx, f.delay)
		if ctx.Err() != nil {
			return Page{}, &Failure{URL: rawURL, Reason: FailureTimeout, Attempts: attempt - 1, Err: ctx.Err()}
		}

		f.logger.Info("Fetching",
			zap.String("url", rawURL),
			zap.Int("attempt", attempt),
		)
		TotalRequests.Inc()
		page, err := f.getter.Get(ctx, rawURL)
		if err == nil && page.StatusCode >= 200 && page.StatusCode < 300 {
			if f.cache != nil {
				if cerr := f.cache.Put(ctx, key, page.StatusCode, page.Body); cerr != nil {
					f.logger.Warn("Cache write failed", zap.String("url", key), zap.Error(cerr))
				}
			}
			return page, nil
		}

		TotalRequestErrors.Inc()
		if err == nil {
			err = errors.New(http.StatusText(page.StatusCode))
		}
		lastErr = err
		lastStatus = page.StatusCode
		f.logger.Warn("Fetch attempt failed",
			zap.String("url", rawURL),
			zap.Int("attempt", attempt),
			zap.Int("status", page.StatusCode),
			zap.Error(err),
		)
		if !f.retry.ShouldRetry(err, attempt) {
			return Page{}, &Failure{
				URL:      rawURL,
				Reason:   classifyFailure(lastErr, lastStatus),
				Attempts: attempt,
				Err:      lastErr,
			}
		}
	}

	return Page{}, &Failure{
		URL:      rawURL,
		Reason:   classifyFailure(lastErr, lastStatus),
		Attempts: f.maxAttempts,
		Err:      lastErr,
	}
}

// classifyFailure maps the last attempt's outcome onto the skip-log taxonomy.
func classifyFailure(err error, status int) FailureReason {
	if status >= 300 {
		return FailureHTTPStatus
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return FailureTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return FailureTimeout
	}
	return FailureNetwork
}
