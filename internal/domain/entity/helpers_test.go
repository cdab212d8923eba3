package entity

import (
	"context"
	"time"
)

// fixedTimeProvider returns the same instant on every call
type fixedTimeProvider struct {
	now time.Time
}

func newFixedTimeProvider(now time.Time) *fixedTimeProvider {
	return &fixedTimeProvider{now: now}
}

func (f *fixedTimeProvider) Now() time.Time {
	return f.now
}

func (f *fixedTimeProvider) Since(t time.Time) time.Duration {
	return f.now.Sub(t)
}

func (f *fixedTimeProvider) WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}
