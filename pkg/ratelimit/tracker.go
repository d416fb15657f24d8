package ratelimit

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Prometheus metrics for throttle tracking.
var (
	pdbThrottleWaitSeconds = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pdb_throttle_wait_seconds",
		Help: "Seconds until the current PeeringDB backoff horizon passes",
	})

	pdbThrottleBlocksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pdb_throttle_blocks_total",
		Help: "Total number of requests blocked by an active backoff horizon",
	})

	pdbThrottleSleepsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pdb_throttle_sleeps_total",
		Help: "Total number of requests delayed by sleeping through a short backoff",
	})
)

// Tracker monitors 429 responses and gates requests on the shared
// backoff horizon.
type Tracker struct {
	redis  *redis.Client
	logger zerolog.Logger
}

// NewTracker creates a new throttle tracker.
func NewTracker(redisClient *redis.Client, logger zerolog.Logger) *Tracker {
	return &Tracker{
		redis:  redisClient,
		logger: logger,
	}
}

// GetState retrieves the current throttle state from redis.
// Returns an empty (unthrottled) state if no data exists.
func (t *Tracker) GetState(ctx context.Context) (*State, error) {
	blockedUnix, err := t.redis.Get(ctx, RedisKeyBlockedUntil).Int64()
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("get blocked until: %w", err)
	}

	last429Unix, err := t.redis.Get(ctx, RedisKeyLast429).Int64()
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("get last 429: %w", err)
	}

	state := &State{}
	if blockedUnix > 0 {
		state.BlockedUntil = time.Unix(blockedUnix, 0)
	}
	if last429Unix > 0 {
		state.Last429 = time.Unix(last429Unix, 0)
	}

	return state, nil
}

// UpdateFromResponse inspects a response and records the backoff horizon
// when the server answered 429. Other status codes are ignored.
func (t *Tracker) UpdateFromResponse(ctx context.Context, statusCode int, headers http.Header) error {
	if statusCode != http.StatusTooManyRequests {
		return nil
	}

	wait := ParseRetryAfter(headers)
	if wait <= 0 {
		wait = DefaultRetryAfter
	}

	return t.RecordBackoff(ctx, wait)
}

// RecordBackoff stores a backoff horizon of now+wait in redis.
// The keys expire with the horizon so stale state cleans itself up.
func (t *Tracker) RecordBackoff(ctx context.Context, wait time.Duration) error {
	now := time.Now()
	blockedUntil := now.Add(wait)

	pipe := t.redis.Pipeline()
	pipe.Set(ctx, RedisKeyBlockedUntil, blockedUntil.Unix(), wait)
	pipe.Set(ctx, RedisKeyLast429, now.Unix(), 24*time.Hour)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store throttle state in redis: %w", err)
	}

	pdbThrottleWaitSeconds.Set(wait.Seconds())

	t.logger.Warn().
		Dur("retry_after", wait).
		Time("blocked_until", blockedUntil).
		Msg("PeeringDB requested backoff - throttling requests")

	return nil
}

// ShouldAllowRequest checks if a request should be allowed given the
// shared throttle state. Short waits are slept through inline; waits
// beyond MaxSleepThrough block the request.
func (t *Tracker) ShouldAllowRequest(ctx context.Context) (bool, error) {
	state, err := t.GetState(ctx)
	if err != nil {
		return false, fmt.Errorf("get throttle state: %w", err)
	}

	wait := state.Wait()
	pdbThrottleWaitSeconds.Set(wait.Seconds())

	if wait == 0 {
		return true, nil
	}

	if wait > MaxSleepThrough {
		t.logger.Error().
			Dur("wait", wait).
			Msg("Backoff horizon too far away - blocking request")

		pdbThrottleBlocksTotal.Inc()
		return false, nil
	}

	t.logger.Warn().
		Dur("wait", wait).
		Msg("Sleeping through short backoff before request")

	pdbThrottleSleepsTotal.Inc()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case <-time.After(wait):
	}

	return true, nil
}

// ParseRetryAfter parses a Retry-After header value, which may be either
// a number of seconds or an HTTP date. Returns 0 when absent or invalid.
func ParseRetryAfter(headers http.Header) time.Duration {
	value := headers.Get("Retry-After")
	if value == "" {
		return 0
	}

	if seconds, err := strconv.Atoi(value); err == nil {
		if seconds < 0 {
			return 0
		}
		return time.Duration(seconds) * time.Second
	}

	if at, err := http.ParseTime(value); err == nil {
		wait := time.Until(at)
		if wait < 0 {
			return 0
		}
		return wait
	}

	return 0
}
