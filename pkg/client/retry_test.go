package client

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fastRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:       3,
		InitialBackoff:    1 * time.Millisecond,
		MaxBackoff:        10 * time.Millisecond,
		BackoffMultiplier: 2.0,
	}
}

func TestRetryWithBackoff_SuccessFirstAttempt(t *testing.T) {
	calls := 0
	err := retryWithBackoff(context.Background(), fastRetryConfig(), func() error {
		calls++
		return nil
	})

	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}
	if calls != 1 {
		t.Errorf("Calls = %d, want 1", calls)
	}
}

func TestRetryWithBackoff_SuccessAfterRetry(t *testing.T) {
	calls := 0
	err := retryWithBackoff(context.Background(), fastRetryConfig(), func() error {
		calls++
		if calls < 3 {
			return &APIError{StatusCode: 503, ErrorClass: ErrorClassServer}
		}
		return nil
	})

	if err != nil {
		t.Fatalf("Expected success after retries, got %v", err)
	}
	if calls != 3 {
		t.Errorf("Calls = %d, want 3", calls)
	}
}

func TestRetryWithBackoff_Exhausted(t *testing.T) {
	calls := 0
	err := retryWithBackoff(context.Background(), fastRetryConfig(), func() error {
		calls++
		return &APIError{StatusCode: 500, ErrorClass: ErrorClassServer}
	})

	if !errors.Is(err, ErrRetryExhausted) {
		t.Errorf("Expected ErrRetryExhausted, got %v", err)
	}
	if calls != 3 {
		t.Errorf("Calls = %d, want 3 (max attempts)", calls)
	}
}

func TestRetryWithBackoff_NoRetryOnClientError(t *testing.T) {
	calls := 0
	err := retryWithBackoff(context.Background(), fastRetryConfig(), func() error {
		calls++
		return &APIError{StatusCode: 404, ErrorClass: ErrorClassClient}
	})

	if err == nil {
		t.Fatal("Expected error for 404")
	}
	if errors.Is(err, ErrRetryExhausted) {
		t.Error("Client errors should fail immediately, not exhaust retries")
	}
	if calls != 1 {
		t.Errorf("Calls = %d, want 1 (no retries for 4xx)", calls)
	}
}

func TestRetryWithBackoff_NoRetryOnPlainError(t *testing.T) {
	calls := 0
	plainErr := errors.New("not an API error")
	err := retryWithBackoff(context.Background(), fastRetryConfig(), func() error {
		calls++
		return plainErr
	})

	if !errors.Is(err, plainErr) {
		t.Errorf("Expected plain error returned, got %v", err)
	}
	if calls != 1 {
		t.Errorf("Calls = %d, want 1", calls)
	}
}

func TestRetryWithBackoff_HonorsRetryAfter(t *testing.T) {
	calls := 0
	start := time.Now()
	err := retryWithBackoff(context.Background(), fastRetryConfig(), func() error {
		calls++
		if calls == 1 {
			return &APIError{
				StatusCode: 429,
				ErrorClass: ErrorClassRateLimit,
				RetryAfter: 50 * time.Millisecond,
			}
		}
		return nil
	})

	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}
	// Retry-After must override the (much shorter) computed backoff
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Errorf("Elapsed = %v, want >= 50ms (Retry-After)", elapsed)
	}
}

func TestRetryWithBackoff_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	cfg := RetryConfig{
		MaxAttempts:       3,
		InitialBackoff:    5 * time.Second,
		MaxBackoff:        10 * time.Second,
		BackoffMultiplier: 2.0,
	}

	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	err := retryWithBackoff(ctx, cfg, func() error {
		return &APIError{StatusCode: 503, ErrorClass: ErrorClassServer}
	})

	if !errors.Is(err, ErrContextCancelled) {
		t.Errorf("Expected ErrContextCancelled, got %v", err)
	}
}
