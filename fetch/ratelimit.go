package fetch

import (
	"context"
	"sync"
	"time"
)

// Limiter enforces a rolling-window call quota: at most `calls` permits per
// `window`. Wait blocks the calling goroutine until a permit frees up; it
// never drops a call. Each adapter's Client owns its own Limiter, so windows
// are independent across sources.
type Limiter struct {
	mu     sync.Mutex
	calls  int
	window time.Duration
	stamps []time.Time // grant times still inside the window, oldest first
}

// NewLimiter creates a limiter allowing calls permits per window.
func NewLimiter(calls int, window time.Duration) *Limiter {
	if calls <= 0 {
		calls = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &Limiter{calls: calls, window: window}
}

// Wait blocks until a permit is available or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	for {
		l.mu.Lock()
		now := time.Now()

		expired := 0
		for expired < len(l.stamps) && now.Sub(l.stamps[expired]) >= l.window {
			expired++
		}
		l.stamps = l.stamps[expired:]

		if len(l.stamps) < l.calls {
			l.stamps = append(l.stamps, now)
			l.mu.Unlock()
			return nil
		}

		wait := l.window - now.Sub(l.stamps[0])
		l.mu.Unlock()

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
