package time

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/realty-processor/internal/domain/port/core"
)

// RealTimeProvider backs the time port with the system clock
type RealTimeProvider struct{}

// NewRealTimeProvider creates the production time provider
func NewRealTimeProvider() core.TimeProvider {
	return &RealTimeProvider{}
}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

func (p *RealTimeProvider) Since(t time.Time) time.Duration {
	return time.Since(t)
}

func (p *RealTimeProvider) WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}
