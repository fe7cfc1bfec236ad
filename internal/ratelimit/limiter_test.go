package ratelimit

import (
	"testing"
	"time"
)

func TestLimiter_AllowsUpToMax_ThenRejects(t *testing.T) {
	base := time.Now()
	now = func() time.Time { return base }
	t.Cleanup(func() { now = time.Now })

	l := NewLimiter(Config{Window: 10 * time.Second, MaxRequests: 5})

	for i := 1; i <= 5; i++ {
		dec := l.Allow("1.2.3.4")
		if !dec.Allowed {
			t.Fatalf("request %d should be allowed", i)
		}
	}

	dec := l.Allow("1.2.3.4")
	if dec.Allowed {
		t.Fatalf("6th request should be rejected")
	}
	if dec.RetryAfter <= 0 || dec.RetryAfter > 10*time.Second {
		t.Fatalf("unexpected RetryAfter %v", dec.RetryAfter)
	}
}

func TestLimiter_WindowReset(t *testing.T) {
	base := time.Now()
	now = func() time.Time { return base }
	t.Cleanup(func() { now = time.Now })

	l := NewLimiter(Config{Window: 10 * time.Second, MaxRequests: 5})

	for i := 0; i < 6; i++ {
		l.Allow("client")
	}
	if dec := l.Allow("client"); dec.Allowed {
		t.Fatalf("expected rejection while window active")
	}

	// advance past the window; counter resets and the next call is the
	// first of a fresh window
	base = base.Add(10*time.Second + time.Millisecond)
	if dec := l.Allow("client"); !dec.Allowed {
		t.Fatalf("expected allow after window reset")
	}

	l.mu.Lock()
	cw := l.clients["client"]
	l.mu.Unlock()
	cw.mu.Lock()
	count := cw.count
	cw.mu.Unlock()
	if count != 1 {
		t.Fatalf("expected counter reset to 1, got %d", count)
	}
}

func TestLimiter_ClientsAreIndependent(t *testing.T) {
	base := time.Now()
	now = func() time.Time { return base }
	t.Cleanup(func() { now = time.Now })

	l := NewLimiter(Config{Window: 10 * time.Second, MaxRequests: 2})

	l.Allow("a")
	l.Allow("a")
	if dec := l.Allow("a"); dec.Allowed {
		t.Fatalf("client a should be limited")
	}
	if dec := l.Allow("b"); !dec.Allowed {
		t.Fatalf("client b should not be affected by client a")
	}
}

// Fixed windows admit up to 2N requests in a span straddling the window
// boundary. This pins that behavior down so a rewrite to a sliding
// window does not slip in unnoticed.
func TestLimiter_BoundaryBurst(t *testing.T) {
	base := time.Now()
	now = func() time.Time { return base }
	t.Cleanup(func() { now = time.Now })

	l := NewLimiter(Config{Window: 10 * time.Second, MaxRequests: 5})

	// 5 requests at the very end of window one
	base = base.Add(9 * time.Second)
	for i := 0; i < 5; i++ {
		if dec := l.Allow("c"); !dec.Allowed {
			t.Fatalf("request %d in first window should be allowed", i+1)
		}
	}

	// window rolls over; 5 more land right after the boundary
	base = base.Add(2 * time.Second)
	for i := 0; i < 5; i++ {
		if dec := l.Allow("c"); !dec.Allowed {
			t.Fatalf("request %d in second window should be allowed", i+1)
		}
	}
}

func TestLimiter_CleanupDropsIdleClients(t *testing.T) {
	base := time.Now()
	now = func() time.Time { return base }
	t.Cleanup(func() { now = time.Now })

	l := NewLimiter(Config{Window: 10 * time.Second, MaxRequests: 5})
	l.Allow("stale")

	base = base.Add(16 * time.Minute)
	l.Allow("fresh")
	l.Cleanup()

	l.mu.Lock()
	_, hasStale := l.clients["stale"]
	_, hasFresh := l.clients["fresh"]
	l.mu.Unlock()

	if hasStale {
		t.Fatalf("expected idle client to be dropped")
	}
	if !hasFresh {
		t.Fatalf("expected active client to survive cleanup")
	}
}
