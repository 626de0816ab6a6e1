package crawler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TotalRequests tracks the number of HTTP requests dispatched by the crawler.
	TotalRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hotelcrawl_requests_total",
		Help: "The total number of HTTP requests sent.",
	})
	// TotalRequestErrors tracks the number of requests that resulted in an error.
	TotalRequestErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hotelcrawl_request_errors_total",
		Help: "The total number of failed HTTP requests.",
	})
	// TotalRetries tracks how many fetch attempts were repeats of a failed one.
	TotalRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hotelcrawl_retries_total",
		Help: "The total number of retried HTTP requests.",
	})
	// TotalCacheHits tracks pages served from the local cache.
	TotalCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hotelcrawl_cache_hits_total",
		Help: "The total number of pages served from the cache.",
	})
	// TotalEntitiesSkipped tracks detail pages abandoned after fetch failure.
	TotalEntitiesSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hotelcrawl_entities_skipped_total",
		Help: "The total number of hotel pages skipped after retries were exhausted.",
	})
	// TotalRecords tracks successfully assembled hotel records.
	TotalRecords = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hotelcrawl_records_total",
		Help: "The total number of hotel records assembled.",
	})
)
