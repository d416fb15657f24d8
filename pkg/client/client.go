// Package client provides the core PeeringDB HTTP client with throttling,
// caching, and error handling.
package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ixmetrics/peeringdb-market/pkg/cache"
	"github.com/ixmetrics/peeringdb-market/pkg/ratelimit"
)

// DefaultBaseURL is the public PeeringDB API root.
const DefaultBaseURL = "https://www.peeringdb.com/api"

// Prometheus metrics for client operations.
var (
	pdbRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pdb_requests_total",
		Help: "Total PeeringDB requests by endpoint and status",
	}, []string{"endpoint", "status"})

	pdbRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pdb_request_duration_seconds",
		Help:    "PeeringDB request duration in seconds by endpoint",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	}, []string{"endpoint"})

	pdbErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pdb_errors_total",
		Help: "Total PeeringDB errors by class",
	}, []string{"class"})
)

// ErrorClass represents a classification of HTTP errors.
type ErrorClass string

const (
	// ErrorClassClient represents non-retryable 4xx client errors.
	ErrorClassClient ErrorClass = "client"

	// ErrorClassServer represents 5xx server errors.
	ErrorClassServer ErrorClass = "server"

	// ErrorClassRateLimit represents 429 rate limit errors.
	ErrorClassRateLimit ErrorClass = "rate_limit"

	// ErrorClassNetwork represents network/timeout errors.
	ErrorClassNetwork ErrorClass = "network"
)

// Client is the PeeringDB API client.
type Client struct {
	httpClient  *http.Client
	redis       *redis.Client
	rateLimiter *ratelimit.Tracker
	cache       *cache.Manager
	config      Config
	logger      zerolog.Logger
}

// Config holds the client configuration.
type Config struct {
	// Redis client for caching and shared throttle state
	Redis *redis.Client

	// BaseURL is the API root (DefaultBaseURL when empty)
	BaseURL string

	// User-Agent header identifying this tool to PeeringDB
	UserAgent string

	// APIKey enables authenticated requests via the Authorization header.
	// Empty means anonymous access (lower rate limits).
	APIKey string

	// Retry
	MaxRetries     int
	InitialBackoff time.Duration
}

// DefaultConfig returns a safe default configuration.
func DefaultConfig(redis *redis.Client, userAgent string) Config {
	return Config{
		Redis:          redis,
		BaseURL:        DefaultBaseURL,
		UserAgent:      userAgent,
		MaxRetries:     3,
		InitialBackoff: 1 * time.Second,
	}
}

// New creates a new PeeringDB client.
func New(cfg Config) (*Client, error) {
	if cfg.Redis == nil {
		return nil, fmt.Errorf("redis client is required")
	}

	if cfg.UserAgent == "" {
		return nil, fmt.Errorf("user-agent is required")
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}

	logger := log.With().Str("component", "pdb-client").Logger()

	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		redis:       cfg.Redis,
		rateLimiter: ratelimit.NewTracker(cfg.Redis, logger),
		cache:       cache.NewManager(cfg.Redis),
		config:      cfg,
		logger:      logger,
	}, nil
}

// Do performs an HTTP request with throttling, caching, and error handling.
// This is the core request method that orchestrates all client features.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	endpoint := req.URL.Path

	startTime := time.Now()
	defer func() {
		pdbRequestDuration.WithLabelValues(endpoint).Observe(time.Since(startTime).Seconds())
	}()

	// Step 1: Check shared throttle state
	allowed, err := c.rateLimiter.ShouldAllowRequest(ctx)
	if err != nil {
		c.logger.Error().Err(err).Msg("Throttle check failed")
		return nil, fmt.Errorf("throttle check: %w", err)
	}
	if !allowed {
		c.logger.Warn().
			Str("endpoint", endpoint).
			Msg("Request blocked by throttle")
		pdbRequestsTotal.WithLabelValues(endpoint, "throttled").Inc()
		return nil, ErrThrottled
	}

	// Step 2: Check cache
	cacheKey := cache.Key{
		Endpoint:    endpoint,
		QueryParams: req.URL.Query(),
	}

	cachedEntry, err := c.cache.Get(ctx, cacheKey)
	if err != nil && err != cache.ErrCacheMiss {
		c.logger.Warn().Err(err).Str("endpoint", endpoint).Msg("Cache get error")
	}

	// Step 3: Make a conditional request on cache hit
	if cachedEntry != nil && cache.ShouldMakeConditionalRequest(cachedEntry) {
		cache.AddConditionalHeaders(req, cachedEntry)
		cache.ConditionalRequestsSent.Inc()
		c.logger.Debug().
			Str("endpoint", endpoint).
			Str("etag", cachedEntry.ETag).
			Msg("Making conditional request")
	}

	// Step 4: Set identification headers
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "application/json")
	if c.config.APIKey != "" {
		req.Header.Set("Authorization", "Api-Key "+c.config.APIKey)
	}

	// Step 5: Execute with retry logic
	c.logger.Debug().
		Str("endpoint", endpoint).
		Str("method", req.Method).
		Msg("Executing PeeringDB request")

	var resp *http.Response

	retryErr := retryWithBackoff(ctx, c.retryConfig(), func() error {
		var reqErr error
		resp, reqErr = c.httpClient.Do(req)

		// Network errors
		if reqErr != nil {
			c.logger.Error().Err(reqErr).Str("endpoint", endpoint).Msg("HTTP request failed")
			pdbErrorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
			pdbRequestsTotal.WithLabelValues(endpoint, "network_error").Inc()
			return &APIError{
				ErrorClass: ErrorClassNetwork,
				Message:    "request failed",
				Err:        reqErr,
			}
		}

		// Publish any server-requested backoff so other processes see it
		if err := c.rateLimiter.UpdateFromResponse(ctx, resp.StatusCode, resp.Header); err != nil {
			c.logger.Warn().Err(err).Msg("Failed to update throttle state")
		}

		// 304 Not Modified is a success, served from cache below
		if resp.StatusCode == http.StatusNotModified {
			return nil
		}

		if resp.StatusCode >= 400 {
			errClass := classifyStatus(resp.StatusCode)
			pdbErrorsTotal.WithLabelValues(string(errClass)).Inc()
			pdbRequestsTotal.WithLabelValues(endpoint, fmt.Sprintf("%d", resp.StatusCode)).Inc()

			c.logger.Warn().
				Str("endpoint", endpoint).
				Int("status", resp.StatusCode).
				Str("error_class", string(errClass)).
				Msg("PeeringDB request error")

			apiErr := &APIError{
				StatusCode: resp.StatusCode,
				ErrorClass: errClass,
				Message:    resp.Status,
				RetryAfter: ratelimit.ParseRetryAfter(resp.Header),
			}

			if shouldRetry(apiErr) {
				resp.Body.Close()
				return apiErr
			}

			// Don't retry client errors; let the caller handle the status
			return nil
		}

		pdbRequestsTotal.WithLabelValues(endpoint, fmt.Sprintf("%d", resp.StatusCode)).Inc()
		return nil
	})

	if retryErr != nil {
		if resp != nil && resp.Body != nil {
			resp.Body.Close()
		}
		return nil, retryErr
	}

	// Step 6: Serve 304 from cache. A 304 without a cache entry cannot be
	// reconstructed and passes through to the caller as-is.
	if resp.StatusCode == http.StatusNotModified && cachedEntry != nil {
		c.logger.Debug().Str("endpoint", endpoint).Msg("304 Not Modified - using cache")
		pdbRequestsTotal.WithLabelValues(endpoint, "304").Inc()
		cache.NotModifiedResponses.Inc()

		if expiresStr := resp.Header.Get("Expires"); expiresStr != "" {
			if newExpires, err := http.ParseTime(expiresStr); err == nil {
				if err := c.cache.UpdateTTL(ctx, cacheKey, newExpires); err != nil {
					c.logger.Warn().Err(err).Msg("Failed to update cache TTL")
				}
			}
		}

		resp.Body.Close()
		return cache.EntryToResponse(cachedEntry), nil
	}

	// Step 7: Update cache on success
	if resp.StatusCode == http.StatusOK {
		entry, err := cache.ResponseToEntry(resp)
		if err != nil {
			c.logger.Warn().Err(err).Msg("Failed to create cache entry")
		} else if entry.TTL() > 0 {
			if err := c.cache.Set(ctx, cacheKey, entry); err != nil {
				c.logger.Warn().Err(err).Msg("Failed to cache response")
			} else {
				c.logger.Debug().
					Str("endpoint", endpoint).
					Dur("ttl", entry.TTL()).
					Msg("Cached response")
			}
		}
	}

	return resp, nil
}

// classifyStatus categorizes an HTTP status code for observability and retry.
func classifyStatus(statusCode int) ErrorClass {
	switch {
	case statusCode == http.StatusTooManyRequests:
		return ErrorClassRateLimit
	case statusCode >= 400 && statusCode < 500:
		return ErrorClassClient
	case statusCode >= 500:
		return ErrorClassServer
	default:
		return ""
	}
}

func (c *Client) retryConfig() RetryConfig {
	cfg := DefaultRetryConfig()
	if c.config.MaxRetries > 0 {
		cfg.MaxAttempts = c.config.MaxRetries
	}
	if c.config.InitialBackoff > 0 {
		cfg.InitialBackoff = c.config.InitialBackoff
	}
	return cfg
}

// Get performs a GET request against an API endpoint path (e.g. "/net").
func (c *Client) Get(ctx context.Context, endpoint string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.config.BaseURL+endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	return c.Do(req)
}

// GetURL performs a GET request against an absolute URL. Pagination follows
// the meta.next cursor, which PeeringDB returns as a full URL.
func (c *Client) GetURL(ctx context.Context, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	return c.Do(req)
}

// Close closes the client and releases resources.
func (c *Client) Close() error {
	return nil
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}
