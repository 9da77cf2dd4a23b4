package retry

import (
	"context"
	"log"
	"math"
	"strconv"
	"time"
)

// Config holds the configuration for retry logic
type Config struct {
	MaxRetries      int
	BaseDelay       time.Duration
	MaxDelay        time.Duration
	BackoffMultiple float64
}

// DefaultConfig returns a sensible default retry configuration
func DefaultConfig() Config {
	return Config{
		MaxRetries:      3,
		BaseDelay:       200 * time.Millisecond,
		MaxDelay:        5 * time.Second,
		BackoffMultiple: 2.0,
	}
}

// Attempt performs one request and returns the response body and status
// code. A non-nil error means the request never produced a response.
type Attempt func(attempt int) (body []byte, statusCode int, err error)

// ShouldRetry decides whether a failed attempt is worth repeating.
type ShouldRetry func(err error, statusCode int, body []byte) bool

// delay computes the backoff for the given attempt.
func (c Config) delay(attempt int) time.Duration {
	d := time.Duration(float64(c.BaseDelay) * math.Pow(c.BackoffMultiple, float64(attempt)))
	if d > c.MaxDelay {
		d = c.MaxDelay
	}
	return d
}

// Do runs fn with exponential backoff until it succeeds, the error is not
// retryable, or the attempts are exhausted. Backoff sleeps respect ctx.
func Do(ctx context.Context, apiName string, cfg Config, shouldRetry ShouldRetry, fn Attempt) ([]byte, error) {
	var lastErr error
	var lastStatus int
	var lastBody []byte

	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			d := cfg.delay(attempt - 1)
			log.Printf("%s API retry attempt %d/%d after %v delay", apiName, attempt+1, cfg.MaxRetries+1, d)

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(d):
			}
		}

		body, status, err := fn(attempt)
		if shouldRetry != nil && shouldRetry(err, status, body) {
			lastErr = err
			lastStatus = status
			lastBody = body
			continue
		}

		if err != nil {
			// Non-retryable error, return immediately
			return nil, err
		}
		return body, nil
	}

	if lastErr != nil {
		return nil, lastErr
	}

	return nil, &ExhaustedError{
		APIName:        apiName,
		MaxAttempts:    cfg.MaxRetries + 1,
		LastStatusCode: lastStatus,
		LastResponse:   lastBody,
	}
}

// ExhaustedError represents an error when all retry attempts have been exhausted
type ExhaustedError struct {
	APIName        string
	MaxAttempts    int
	LastStatusCode int
	LastResponse   []byte
}

func (e *ExhaustedError) Error() string {
	return "retry attempts exhausted for " + e.APIName + " API (last status " + strconv.Itoa(e.LastStatusCode) + ")"
}
