package client

import (
	"errors"
	"fmt"
	"time"
)

// Common errors returned by the client.
var (
	// ErrRetryExhausted is returned when all retry attempts are exhausted.
	ErrRetryExhausted = errors.New("retry attempts exhausted")

	// ErrContextCancelled is returned when the context is cancelled during retry.
	ErrContextCancelled = errors.New("context cancelled")

	// ErrThrottled is returned when the shared backoff horizon blocks a request.
	ErrThrottled = errors.New("request blocked: throttle active")
)

// retryableStatuses is the fixed set of transient status codes worth retrying.
var retryableStatuses = map[int]bool{
	429: true,
	500: true,
	502: true,
	503: true,
	504: true,
}

// APIError represents a PeeringDB API error with additional context.
type APIError struct {
	StatusCode int
	ErrorClass ErrorClass
	Message    string

	// RetryAfter is the server-requested backoff from a 429 response.
	// Zero when the server did not specify one.
	RetryAfter time.Duration

	Err error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("peeringdb %s error (status %d): %s: %v",
			e.ErrorClass, e.StatusCode, e.Message, e.Err)
	}
	return fmt.Sprintf("peeringdb %s error (status %d): %s",
		e.ErrorClass, e.StatusCode, e.Message)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *APIError) Unwrap() error {
	return e.Err
}

// shouldRetry determines if an error is worth another attempt.
// Network errors and the transient status set are retried; everything
// else (notably 4xx responses) fails immediately.
func shouldRetry(e *APIError) bool {
	if e == nil {
		return false
	}
	if e.ErrorClass == ErrorClassNetwork {
		return true
	}
	return retryableStatuses[e.StatusCode]
}
