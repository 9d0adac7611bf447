package landing

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// IPLimiter rate-limits requests per client IP with a token bucket each.
type IPLimiter struct {
	mu      sync.Mutex
	clients map[string]*ipClient
	limit   rate.Limit
	burst   int
	idle    time.Duration
}

type ipClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewIPLimiter allows perSecond requests per IP with the given burst.
// Clients unseen for idle are forgotten by Sweep.
func NewIPLimiter(perSecond float64, burst int, idle time.Duration) *IPLimiter {
	return &IPLimiter{
		clients: make(map[string]*ipClient),
		limit:   rate.Limit(perSecond),
		burst:   burst,
		idle:    idle,
	}
}

// Allow reports whether ip may make a request now and consumes a token.
func (l *IPLimiter) Allow(ip string) bool {
	now := time.Now()
	l.mu.Lock()
	c, ok := l.clients[ip]
	if !ok {
		c = &ipClient{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[ip] = c
	}
	c.lastSeen = now
	l.mu.Unlock()
	return c.limiter.AllowN(now, 1)
}

// Sweep drops clients idle since before now-idle and returns how many
// remain.
func (l *IPLimiter) Sweep(now time.Time) int {
	cutoff := now.Add(-l.idle)
	l.mu.Lock()
	defer l.mu.Unlock()
	for ip, c := range l.clients {
		if c.lastSeen.Before(cutoff) {
			delete(l.clients, ip)
		}
	}
	return len(l.clients)
}

// Start sweeps idle clients every idle period until ctx is done or the
// returned stop function is called.
func (l *IPLimiter) Start(ctx context.Context) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	go func() {
		ticker := time.NewTicker(l.idle)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				l.Sweep(now)
			}
		}
	}()
	return cancel
}
