package realtime

import (
	"context"
	"math"
	"time"
)

// RetryPolicy decides whether and when a dropped channel reconnects.
//
// The zero value retries forever without delay. MaxAttempts > 0 caps the
// number of consecutive reconnect attempts; a successful open resets the
// count. The delay before attempt n is Delay*Multiplier^(n-1), capped by
// MaxDelay when it is positive. A Multiplier below 1 means a fixed delay.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
	Multiplier  float64
	MaxDelay    time.Duration
}

// Next returns the delay before reconnect attempt n (1-based) and whether
// the attempt should be made at all.
func (p RetryPolicy) Next(attempt int) (time.Duration, bool) {
	if attempt < 1 {
		attempt = 1
	}
	if p.MaxAttempts > 0 && attempt > p.MaxAttempts {
		return 0, false
	}

	if p.Delay <= 0 {
		return 0, true
	}

	factor := 1.0
	if p.Multiplier > 1 {
		factor = math.Pow(p.Multiplier, float64(attempt-1))
	}

	delay := float64(p.Delay) * factor
	if p.MaxDelay > 0 && delay > float64(p.MaxDelay) {
		return p.MaxDelay, true
	}
	if delay > math.MaxInt64 {
		return time.Duration(math.MaxInt64), true
	}
	return time.Duration(delay), true
}

// WaitFunc blocks for d or until ctx is done, returning ctx.Err() in the
// latter case.
type WaitFunc func(ctx context.Context, d time.Duration) error

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
