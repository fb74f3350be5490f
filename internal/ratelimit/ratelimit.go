// Package ratelimit implements fixed-window request budgets keyed by
// domain, so that link validation stays polite toward publisher sites
// that aggressively block crawlers.
package ratelimit

import (
	"sync"
	"time"
)

// Limit describes one domain's request budget.
type Limit struct {
	MaxRequests int
	Window      time.Duration
}

// Defaults returns the built-in per-domain budgets. dl.acm.org throttles
// hard and bans fast, so it gets the tightest budget; doi.org tolerates
// moderate traffic; everything else shares a generous default.
func Defaults() map[string]Limit {
	return map[string]Limit{
		"dl.acm.org": {MaxRequests: 10, Window: 60 * time.Second},
		"doi.org":    {MaxRequests: 30, Window: 60 * time.Second},
		"default":    {MaxRequests: 50, Window: 60 * time.Second},
	}
}

type bucket struct {
	count       int
	windowStart time.Time
	limit       Limit
}

// Limiter tracks request counts per domain over fixed windows. The zero
// value is not usable; construct with New.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	limits  map[string]Limit
}

// New creates a limiter with the default per-domain budgets.
func New() *Limiter {
	return &Limiter{
		buckets: make(map[string]*bucket),
		limits:  Defaults(),
	}
}

// SetLimit overrides the budget for a domain. Use the key "default" to
// change the fallback budget. Overrides apply to new windows only.
func (l *Limiter) SetLimit(domain string, limit Limit) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.limits[domain] = limit
	delete(l.buckets, domain)
}

// Allow reports whether a request to the given domain fits in the current
// window, and counts it if so. A denied request is not counted: callers
// that retry after the window resets get the full budget back.
func (l *Limiter) Allow(domain string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[domain]
	if !ok {
		b = &bucket{windowStart: time.Now(), limit: l.limitFor(domain)}
		l.buckets[domain] = b
	}

	if time.Since(b.windowStart) > b.limit.Window {
		b.count = 0
		b.windowStart = time.Now()
	}

	if b.count >= b.limit.MaxRequests {
		return false
	}
	b.count++
	return true
}

// Remaining reports how many requests are left in the domain's current
// window, without consuming any.
func (l *Limiter) Remaining(domain string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[domain]
	if !ok {
		return l.limitFor(domain).MaxRequests
	}
	if time.Since(b.windowStart) > b.limit.Window {
		return b.limit.MaxRequests
	}
	if left := b.limit.MaxRequests - b.count; left > 0 {
		return left
	}
	return 0
}

// Reset clears all window state. Budget overrides survive.
func (l *Limiter) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.buckets = make(map[string]*bucket)
}

func (l *Limiter) limitFor(domain string) Limit {
	if limit, ok := l.limits[domain]; ok {
		return limit
	}
	return l.limits["default"]
}
