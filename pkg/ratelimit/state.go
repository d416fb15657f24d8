// Package ratelimit implements PeeringDB request throttling shared via redis.
// PeeringDB signals throttling with 429 responses carrying a Retry-After
// header; the tracker records the resulting backoff horizon so every process
// on the host backs off together instead of each one burning its own 429.
package ratelimit

import (
	"time"
)

// Redis keys for throttle state storage.
const (
	RedisKeyBlockedUntil = "pdb:throttle:blocked_until"
	RedisKeyLast429      = "pdb:throttle:last_429"
)

const (
	// MaxSleepThrough is the longest wait a request will sleep through
	// inline. Longer waits block the request instead, so callers can halt
	// pagination and keep whatever they accumulated.
	MaxSleepThrough = 2 * time.Second

	// DefaultRetryAfter is assumed when a 429 arrives without a
	// Retry-After header.
	DefaultRetryAfter = 30 * time.Second
)

// State represents the current throttle state.
// The state is shared across all client instances via redis.
type State struct {
	// BlockedUntil is the backoff horizon requested by the server.
	// Zero when no throttle is active.
	BlockedUntil time.Time `json:"blocked_until"`

	// Last429 is when the most recent 429 response was observed.
	Last429 time.Time `json:"last_429"`
}

// Wait returns how long a new request would have to wait before the
// backoff horizon passes. Returns 0 when requests may proceed immediately.
func (s *State) Wait() time.Duration {
	wait := time.Until(s.BlockedUntil)
	if wait < 0 {
		return 0
	}
	return wait
}

// IsThrottled returns true while the backoff horizon lies in the future.
func (s *State) IsThrottled() bool {
	return s.Wait() > 0
}
