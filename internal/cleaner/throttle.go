package cleaner

import (
	"context"
	"time"
)

// Throttle is the cooperative delay between model calls. It is an
// interface so tests can swap the real sleep out.
type Throttle interface {
	Wait(ctx context.Context) error
}

type sleepThrottle struct {
	delay time.Duration
}

// NewSleepThrottle waits a fixed delay between calls, honoring context
// cancellation.
func NewSleepThrottle(delay time.Duration) Throttle {
	return &sleepThrottle{delay: delay}
}

func (t *sleepThrottle) Wait(ctx context.Context) error {
	select {
	case <-time.After(t.delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// NopThrottle never waits.
type NopThrottle struct{}

func (NopThrottle) Wait(ctx context.Context) error { return nil }
