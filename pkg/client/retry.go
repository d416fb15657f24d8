package client

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
)

// Prometheus metrics for retry operations.
var (
	pdbRetriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pdb_retries_total",
		Help: "Total number of retry attempts by error class",
	}, []string{"error_class"})

	pdbRetryBackoffSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pdb_retry_backoff_seconds",
		Help:    "Backoff duration for retries by error class",
		Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60},
	}, []string{"error_class"})

	pdbRetryExhaustedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pdb_retry_exhausted_total",
		Help: "Total number of times retry attempts were exhausted by error class",
	}, []string{"error_class"})
)

// RetryConfig holds the configuration for retry logic.
type RetryConfig struct {
	// MaxAttempts is the maximum number of attempts (including the initial request).
	MaxAttempts int

	// InitialBackoff is the initial backoff duration.
	InitialBackoff time.Duration

	// MaxBackoff is the maximum backoff duration.
	MaxBackoff time.Duration

	// BackoffMultiplier is the multiplier for exponential backoff.
	BackoffMultiplier float64
}

// DefaultRetryConfig returns the default retry configuration.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:       3,
		InitialBackoff:    1 * time.Second,
		MaxBackoff:        30 * time.Second,
		BackoffMultiplier: 2.0,
	}
}

// retryWithBackoff executes fn with exponential backoff retry logic.
// fn returns nil on success or an *APIError describing the failure.
// A server-requested Retry-After overrides the computed backoff when it
// is longer. Context cancellation is respected, and jitter is added to
// prevent thundering herd.
func retryWithBackoff(ctx context.Context, config RetryConfig, fn func() error) error {
	var lastErr error
	backoff := config.InitialBackoff

	for attempt := 1; attempt <= config.MaxAttempts; attempt++ {
		err := fn()
		if err == nil {
			if attempt > 1 {
				log.Info().
					Int("attempt", attempt).
					Msg("Request succeeded after retry")
			}
			return nil
		}

		lastErr = err

		var apiErr *APIError
		if !errors.As(err, &apiErr) || !shouldRetry(apiErr) {
			// Non-transient error, fail immediately
			return lastErr
		}

		if attempt >= config.MaxAttempts {
			break
		}

		errorClass := string(apiErr.ErrorClass)
		pdbRetriesTotal.WithLabelValues(errorClass).Inc()

		// Jitter (±20% randomness)
		wait := time.Duration(float64(backoff) * (0.8 + rand.Float64()*0.4))

		// Honor the server-requested backoff when longer
		if apiErr.RetryAfter > wait {
			wait = apiErr.RetryAfter
		}

		pdbRetryBackoffSeconds.WithLabelValues(errorClass).Observe(wait.Seconds())

		log.Debug().
			Str("error_class", errorClass).
			Int("attempt", attempt).
			Dur("backoff", wait).
			Msg("Retrying request after backoff")

		select {
		case <-ctx.Done():
			log.Warn().
				Str("error_class", errorClass).
				Int("attempt", attempt).
				Msg("Context cancelled during retry backoff")
			return fmt.Errorf("%w: %v", ErrContextCancelled, ctx.Err())
		case <-time.After(wait):
		}

		backoff = time.Duration(float64(backoff) * config.BackoffMultiplier)
		if backoff > config.MaxBackoff {
			backoff = config.MaxBackoff
		}
	}

	var apiErr *APIError
	errorClass := "unknown"
	if errors.As(lastErr, &apiErr) {
		errorClass = string(apiErr.ErrorClass)
	}

	pdbRetryExhaustedTotal.WithLabelValues(errorClass).Inc()
	log.Warn().
		Str("error_class", errorClass).
		Int("max_attempts", config.MaxAttempts).
		Msg("Retry attempts exhausted")

	return fmt.Errorf("%w after %d attempts: %v", ErrRetryExhausted, config.MaxAttempts, lastErr)
}
