package gateway

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	headerRateRemaining = "X-RateLimit-Remaining"
	headerRateReset     = "X-RateLimit-Reset"

	// lowWaterMark is the remaining-quota threshold below which the
	// governor schedules a pause until the advertised reset time.
	lowWaterMark = 5
)

// Governor implements advisory throttling from the quota headers the
// API attaches to every response. Decisions are derived solely from the
// latest observed headers, but because concurrent fetches would each
// read a stale remaining-quota value on their own, the pause is kept
// behind a mutex and every fetch path goes through the single Wait
// gate before issuing a request.
type Governor struct {
	mu       sync.Mutex
	resumeAt time.Time

	pacer *rate.Limiter // optional proactive pacing, nil to disable
	now   func() time.Time
}

// GovernorOption configures a Governor.
type GovernorOption func(*Governor)

// WithPacing adds a token-bucket limiter in front of the header-driven
// throttle so that a fresh quota is not burned in one burst.
func WithPacing(rps float64) GovernorOption {
	return func(g *Governor) {
		if rps > 0 {
			g.pacer = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// NewGovernor creates a governor with no scheduled pause.
func NewGovernor(opts ...GovernorOption) *Governor {
	g := &Governor{now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Observe reads the remaining-quota and reset-epoch headers off one
// response and returns how long the caller should wait before the next
// request. Zero means go ahead. Absent or unparseable headers are
// treated as ample quota. The returned duration is also recorded so
// that Wait applies it to whichever goroutine issues the next request.
func (g *Governor) Observe(h http.Header) time.Duration {
	remaining, err := strconv.Atoi(h.Get(headerRateRemaining))
	if err != nil || remaining >= lowWaterMark {
		return 0
	}

	resetEpoch, err := strconv.ParseInt(h.Get(headerRateReset), 10, 64)
	if err != nil {
		return 0
	}

	wait := time.Unix(resetEpoch, 0).Sub(g.now())
	if wait <= 0 {
		return 0
	}

	g.mu.Lock()
	resume := g.now().Add(wait)
	if resume.After(g.resumeAt) {
		g.resumeAt = resume
	}
	g.mu.Unlock()
	return wait
}

// Wait blocks until any pause scheduled by Observe has elapsed and the
// pacer (when configured) hands out a token. Cancellation interrupts
// the sleep and is returned as the context's error.
func (g *Governor) Wait(ctx context.Context) error {
	if g.pacer != nil {
		if err := g.pacer.Wait(ctx); err != nil {
			return err
		}
	}

	g.mu.Lock()
	d := g.resumeAt.Sub(g.now())
	g.mu.Unlock()
	if d <= 0 {
		return nil
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
