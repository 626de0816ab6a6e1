package crawler

import (
	"context"
	"time"
)

// Fetcher retrieves a URL, absorbing transient errors. A nil Failure means
// the Page is usable; a non-nil Failure is entity-fatal but never run-fatal.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (Page, *Failure)
}

// PageCache short-circuits the network for URLs fetched in a prior run.
// Implementations must treat Get misses and Put errors as non-fatal.
type PageCache interface {
	Get(ctx context.Context, rawURL string) (body []byte, status int, ok bool)
	Put(ctx context.Context, rawURL string, status int, body []byte) error
}

// RetryPolicy decides whether a failed attempt is worth repeating and how
// long to wait before the next one.
type RetryPolicy interface {
	ShouldRetry(err error, attempt int) bool
	Backoff(attempt int) time.Duration
}

// Pacer blocks between requests to keep the crawl polite.
type Pacer interface {
	Pause(ctx context.Context, delay time.Duration)
}
