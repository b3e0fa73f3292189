package health

import (
	"context"
	"runtime"
	"runtime/debug"
	"time"

	"github.com/go-faster/errors"
)

// GoroutineCountCheck reports unhealthy when the goroutine count exceeds
// threshold. Useful as a liveness check for goroutine leaks, which the
// per-order notification timers would make visible here if they ever stopped
// being released.
func GoroutineCountCheck(threshold int) CheckFunc {
	return func(_ context.Context) error {
		if count := runtime.NumGoroutine(); count > threshold {
			return errors.Errorf("goroutine count %d exceeds threshold %d", count, threshold)
		}
		return nil
	}
}

// GCMaxPauseCheck reports unhealthy when any recorded GC pause exceeds
// threshold.
func GCMaxPauseCheck(threshold time.Duration) CheckFunc {
	return func(_ context.Context) error {
		var stats debug.GCStats
		debug.ReadGCStats(&stats)

		for _, pause := range stats.Pause {
			if pause > threshold {
				return errors.Errorf("GC pause %s exceeds threshold %s", pause, threshold)
			}
		}
		return nil
	}
}

// BoundedStoreCheck reports unhealthy when size() exceeds limit. The session
// store registers this so unbounded cart growth (a broken TTL sweeper) trips
// readiness before memory does.
func BoundedStoreCheck(name string, size func() int, limit int) CheckFunc {
	return func(_ context.Context) error {
		if n := size(); n > limit {
			return errors.Errorf("%s holds %d entries, limit %d", name, n, limit)
		}
		return nil
	}
}
