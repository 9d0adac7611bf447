package landing

import (
	"context"
	"testing"
	"time"
)

func TestIPLimiterBlocksAfterBurst(t *testing.T) {
	limiter := NewIPLimiter(0.001, 2, time.Minute)
	ip := "203.0.113.10"

	if !limiter.Allow(ip) {
		t.Fatalf("expected first request to be allowed")
	}
	if !limiter.Allow(ip) {
		t.Fatalf("expected second request to be allowed")
	}
	if limiter.Allow(ip) {
		t.Fatalf("expected third request to be blocked")
	}
}

func TestIPLimiterRefills(t *testing.T) {
	limiter := NewIPLimiter(20, 1, time.Minute)
	ip := "203.0.113.20"

	if !limiter.Allow(ip) {
		t.Fatalf("expected first request to be allowed")
	}
	if limiter.Allow(ip) {
		t.Fatalf("expected second request to be blocked")
	}

	time.Sleep(100 * time.Millisecond)
	if !limiter.Allow(ip) {
		t.Fatalf("expected request after refill to be allowed")
	}
}

func TestIPLimiterIsPerIP(t *testing.T) {
	limiter := NewIPLimiter(0.001, 1, time.Minute)

	if !limiter.Allow("203.0.113.30") {
		t.Fatalf("expected first ip to be allowed")
	}
	if !limiter.Allow("203.0.113.31") {
		t.Fatalf("expected second ip to be allowed independently")
	}
	if limiter.Allow("203.0.113.30") {
		t.Fatalf("expected first ip to be blocked after burst")
	}
}

func TestIPLimiterSweep(t *testing.T) {
	limiter := NewIPLimiter(1, 1, time.Minute)
	limiter.Allow("203.0.113.40")
	limiter.Allow("203.0.113.41")

	if n := limiter.Sweep(time.Now()); n != 2 {
		t.Fatalf("Sweep kept %d clients, want 2", n)
	}
	if n := limiter.Sweep(time.Now().Add(2 * time.Minute)); n != 0 {
		t.Fatalf("Sweep kept %d clients after idle period, want 0", n)
	}
}

func TestIPLimiterStartStops(t *testing.T) {
	limiter := NewIPLimiter(1, 1, 10*time.Millisecond)
	stop := limiter.Start(context.Background())
	limiter.Allow("203.0.113.50")
	time.Sleep(50 * time.Millisecond)
	stop()

	limiter.mu.Lock()
	n := len(limiter.clients)
	limiter.mu.Unlock()
	if n != 0 {
		t.Fatalf("expected background sweep to drop idle client, have %d", n)
	}
}
