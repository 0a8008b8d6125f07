package worker

import (
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/bhargavak04/Book-My-Player-Scrape/internal/model"
	"golang.org/x/time/rate"
)

// Limiter rate limits requests per host
type Limiter struct {
	mu       sync.RWMutex
	limiters map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
}

// NewLimiter creates a limiter allowing requestsPerSecond per host.
// Zero or negative rates disable limiting; burst defaults to 5.
func NewLimiter(requestsPerSecond float64, burst int) *Limiter {
	if burst <= 0 {
		burst = 5
	}
	limit := rate.Limit(requestsPerSecond)
	if requestsPerSecond <= 0 {
		limit = rate.Inf
	}

	return &Limiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      limit,
		burst:    burst,
	}
}

// NewLimiterFromConfig creates a limiter with the default rate and the
// per-host overrides of cfg
func NewLimiterFromConfig(cfg model.RateLimitingConfig) *Limiter {
	l := NewLimiter(cfg.RequestsPerSecond, cfg.BurstSize)
	for _, hr := range cfg.HostRates {
		l.SetHostRate(hr.Host, hr.RequestsPerSecond, hr.BurstSize)
	}
	return l
}

// Wait blocks until a request to rawURL's host is allowed
func (l *Limiter) Wait(ctx context.Context, rawURL string) error {
	return l.forHost(hostOf(rawURL)).Wait(ctx)
}

// WaitWithDelay waits for the host limiter and then sleeps a fixed delay
func (l *Limiter) WaitWithDelay(ctx context.Context, rawURL string, delay time.Duration) error {
	if err := l.Wait(ctx, rawURL); err != nil {
		return err
	}
	if delay <= 0 {
		return nil
	}

	t := time.NewTimer(delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// SetHostRate overrides the rate for one host. Zero or negative rates
// leave the host unlimited; burst defaults to the limiter's burst.
func (l *Limiter) SetHostRate(host string, requestsPerSecond float64, burst int) {
	if burst <= 0 {
		burst = l.burst
	}
	limit := rate.Limit(requestsPerSecond)
	if requestsPerSecond <= 0 {
		limit = rate.Inf
	}
	l.mu.Lock()
	l.limiters[host] = rate.NewLimiter(limit, burst)
	l.mu.Unlock()
}

func (l *Limiter) forHost(host string) *rate.Limiter {
	l.mu.RLock()
	lim, ok := l.limiters[host]
	l.mu.RUnlock()
	if ok {
		return lim
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if lim, ok := l.limiters[host]; ok {
		return lim
	}
	lim = rate.NewLimiter(l.rps, l.burst)
	l.limiters[host] = lim
	return lim
}

// hostOf returns the host of rawURL without port; unparsable URLs share
// the empty host
func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
