package database

import (
	"context"
	"math/rand"
	"strings"
	"time"

	coreport "github.com/amirhossein-jamali/realty-processor/internal/domain/port/core"
)

// RetryConfig bounds the retry loop for transient database failures
type RetryConfig struct {
	MaxRetries    int
	RetryInterval time.Duration
	MaxInterval   time.Duration
	// JitterFactor in [0,1] randomizes the backoff to spread reconnects
	JitterFactor float64
}

// DefaultRetryConfig returns the default retry configuration
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:    5,
		RetryInterval: 100 * time.Millisecond,
		MaxInterval:   2 * time.Second,
		JitterFactor:  0.2,
	}
}

// RetryOnTransientError runs the operation, retrying with exponential
// backoff while the failure looks transient. Permanent errors return
// immediately; context cancellation aborts the wait.
func RetryOnTransientError(
	ctx context.Context,
	config RetryConfig,
	operation func() error,
	logger coreport.Logger,
) error {
	var lastErr error

	for attempt := 0; attempt < config.MaxRetries; attempt++ {
		lastErr = operation()
		if lastErr == nil {
			return nil
		}
		if !isTransientError(lastErr) {
			return lastErr
		}

		wait := backoffInterval(attempt, config)
		logger.Warn("Transient database error, retrying operation", map[string]any{
			"attempt":     attempt + 1,
			"max_retries": config.MaxRetries,
			"error":       lastErr.Error(),
			"retry_after": wait.String(),
		})

		select {
		case <-time.After(wait):
		case <-ctx.Done():
			logger.Warn("Retry loop canceled by context", map[string]any{
				"attempts": attempt + 1,
				"error":    ctx.Err().Error(),
			})
			return ctx.Err()
		}
	}

	logger.Error("All retry attempts failed", map[string]any{
		"attempts": config.MaxRetries,
		"error":    lastErr.Error(),
	})
	return lastErr
}

// backoffInterval doubles the base interval per attempt, caps it, and
// adds jitter
func backoffInterval(attempt int, config RetryConfig) time.Duration {
	interval := config.RetryInterval << uint(attempt)
	if interval > config.MaxInterval {
		interval = config.MaxInterval
	}
	if config.JitterFactor > 0 {
		interval += time.Duration(float64(interval) * config.JitterFactor * rand.Float64())
	}
	return interval
}

// transientMessages are the failure modes worth retrying: lock conflicts
// and broken or saturated connections
var transientMessages = []string{
	"deadlock",
	"serialization",
	"connection reset",
	"connection refused",
	"timeout",
	"too many connections",
	"server closed",
	"broken pipe",
	"eof",
}

func isTransientError(err error) bool {
	if err == nil {
		return false
	}
	message := strings.ToLower(err.Error())
	for _, candidate := range transientMessages {
		if strings.Contains(message, candidate) {
			return true
		}
	}
	return false
}
