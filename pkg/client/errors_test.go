package client

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestAPIError_Error(t *testing.T) {
	err := &APIError{
		StatusCode: 502,
		ErrorClass: ErrorClassServer,
		Message:    "502 Bad Gateway",
	}

	msg := err.Error()
	if !strings.Contains(msg, "server") {
		t.Errorf("Error() = %q, want error class in message", msg)
	}
	if !strings.Contains(msg, "502") {
		t.Errorf("Error() = %q, want status code in message", msg)
	}
}

func TestAPIError_Error_Wrapped(t *testing.T) {
	inner := errors.New("connection refused")
	err := &APIError{
		ErrorClass: ErrorClassNetwork,
		Message:    "request failed",
		Err:        inner,
	}

	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("Error() = %q, want wrapped error in message", err.Error())
	}
}

func TestAPIError_Unwrap(t *testing.T) {
	inner := errors.New("underlying")
	err := &APIError{Err: inner}

	if !errors.Is(err, inner) {
		t.Error("errors.Is should find the wrapped error")
	}
}

func TestShouldRetry(t *testing.T) {
	tests := []struct {
		name string
		err  *APIError
		want bool
	}{
		{"nil error", nil, false},
		{"network error", &APIError{ErrorClass: ErrorClassNetwork}, true},
		{"429 rate limit", &APIError{StatusCode: 429, ErrorClass: ErrorClassRateLimit}, true},
		{"500 server", &APIError{StatusCode: 500, ErrorClass: ErrorClassServer}, true},
		{"502 server", &APIError{StatusCode: 502, ErrorClass: ErrorClassServer}, true},
		{"503 server", &APIError{StatusCode: 503, ErrorClass: ErrorClassServer}, true},
		{"504 server", &APIError{StatusCode: 504, ErrorClass: ErrorClassServer}, true},
		{"404 client", &APIError{StatusCode: 404, ErrorClass: ErrorClassClient}, false},
		{"401 client", &APIError{StatusCode: 401, ErrorClass: ErrorClassClient}, false},
		{"501 not in transient set", &APIError{StatusCode: 501, ErrorClass: ErrorClassServer}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shouldRetry(tt.err); got != tt.want {
				t.Errorf("shouldRetry() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAPIError_RetryAfter(t *testing.T) {
	err := &APIError{
		StatusCode: 429,
		ErrorClass: ErrorClassRateLimit,
		RetryAfter: 15 * time.Second,
	}

	if err.RetryAfter != 15*time.Second {
		t.Errorf("RetryAfter = %v, want 15s", err.RetryAfter)
	}
}
