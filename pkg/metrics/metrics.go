// Package metrics provides the centralized Prometheus metrics registry for
// the PeeringDB tooling. All metrics are defined in their respective packages
// (client, cache, ratelimit) to maintain modularity and avoid circular
// dependencies.
//
// This package provides documentation and reference for all available metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the PeeringDB client.
// All metrics are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Throttle Metrics (pkg/ratelimit):
//   - pdb_throttle_wait_seconds (Gauge): Seconds until the current 429 backoff horizon passes
//   - pdb_throttle_blocks_total (Counter): Requests blocked because the backoff horizon was too far away
//   - pdb_throttle_sleeps_total (Counter): Requests delayed by sleeping through a short backoff
//
// Cache Metrics (pkg/cache):
//   - pdb_cache_hits_total{layer="redis"} (Counter): Cache hits by layer
//   - pdb_cache_misses_total (Counter): Cache misses
//   - pdb_cache_size_bytes{layer="redis"} (Gauge): Current cache size in bytes
//   - pdb_304_responses_total (Counter): 304 Not Modified responses
//   - pdb_conditional_requests_total (Counter): Conditional requests sent with If-None-Match
//   - pdb_cache_errors_total{operation} (Counter): Cache operation errors
//
// Request Metrics (pkg/client):
//   - pdb_requests_total{endpoint, status} (Counter): Total requests by endpoint and HTTP status
//   - pdb_request_duration_seconds{endpoint} (Histogram): Request duration by endpoint
//   - pdb_errors_total{class} (Counter): Errors by class (client, server, rate_limit, network)
//
// Retry Metrics (pkg/client):
//   - pdb_retries_total{error_class} (Counter): Retry attempts by error class
//   - pdb_retry_backoff_seconds{error_class} (Histogram): Backoff duration by error class
//   - pdb_retry_exhausted_total{error_class} (Counter): Requests that exhausted max retries
//
// Example Prometheus Queries:
//
//   # Cache Hit Rate
//   sum(rate(pdb_cache_hits_total[5m])) /
//   (sum(rate(pdb_cache_hits_total[5m])) + sum(rate(pdb_cache_misses_total[5m])))
//
//   # Request Error Rate
//   rate(pdb_errors_total[5m])
//
//   # P95 Request Latency
//   histogram_quantile(0.95, rate(pdb_request_duration_seconds_bucket[5m]))
//
//   # 304 Response Rate
//   rate(pdb_304_responses_total[5m]) / rate(pdb_requests_total[5m])
