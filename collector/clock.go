package collector

import (
	"context"
	"time"
)

// NextDelay is the time from now until the next interval boundary after start.
// Cycle N starts at start + N*interval, however long the previous cycle took.
func NextDelay(start time.Time, now time.Time, interval time.Duration) time.Duration {
	elapsed := now.Sub(start)
	if elapsed < 0 {
		return interval
	}

	return interval - elapsed%interval
}

func (collector *Collector) sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-collector.clock.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
