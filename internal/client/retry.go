// Package client provides retry logic with exponential backoff for API clients.
//
// Purpose:
//
//	Handle transient failures (network timeouts, 5xx errors) with exponential
//	backoff. Max 3 attempts with delays of 1s, 2s, 4s. Only read paths go
//	through this helper: mutations are issued exactly once and their failures
//	surfaced to the caller, never replayed.
//
// Dependencies:
//   - context: Timeout and cancellation
//   - time: Exponential backoff delays
package client

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"
)

// RetryConfig holds retry configuration.
type RetryConfig struct {
	MaxAttempts  int           // Max attempts including the first (default: 3)
	InitialDelay time.Duration // Delay before the first retry (default: 1s)
	MaxDelay     time.Duration // Maximum delay between retries (default: 4s)
}

// DefaultRetryConfig returns the default retry configuration.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:  3,
		InitialDelay: 1 * time.Second,
		MaxDelay:     4 * time.Second,
	}
}

// DoWithRetry executes an HTTP request with retry logic. The request must be
// replayable (no body, or a body safe to resend).
func DoWithRetry(ctx context.Context, httpClient *http.Client, req *http.Request, config RetryConfig) (*http.Response, error) {
	if config.MaxAttempts == 0 {
		config = DefaultRetryConfig()
	}

	var lastErr error
	delay := config.InitialDelay

	for attempt := 0; attempt < config.MaxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		resp, err := httpClient.Do(req)
		if err == nil && !isRetriableStatus(resp.StatusCode) {
			return resp, nil
		}

		if err != nil {
			if !isRetriableError(err) {
				return nil, err
			}
			lastErr = err
		} else {
			resp.Body.Close()
			lastErr = fmt.Errorf("status %d", resp.StatusCode)
		}

		// Don't wait after the last attempt.
		if attempt < config.MaxAttempts-1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
				// Exponential backoff: 1s, 2s, 4s.
				delay = min(delay*2, config.MaxDelay)
			}
		}
	}

	return nil, fmt.Errorf("max retry attempts (%d) exceeded: %w", config.MaxAttempts, lastErr)
}

// isRetriableError checks if an error is retriable.
func isRetriableError(err error) bool {
	if netErr, ok := err.(net.Error); ok {
		return netErr.Timeout()
	}
	return false
}

// isRetriableStatus checks if an HTTP status code is retriable.
func isRetriableStatus(statusCode int) bool {
	return statusCode >= 500 || statusCode == http.StatusTooManyRequests
}
