package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Config holds the fixed-window limiter settings.
type Config struct {
	// Window is the length of each counting window.
	Window time.Duration
	// MaxRequests is the number of requests admitted per window per client.
	MaxRequests int
}

// DefaultConfig returns the limiter settings used by the server:
// 5 requests per 10 seconds per client.
func DefaultConfig() Config {
	return Config{
		Window:      10 * time.Second,
		MaxRequests: 5,
	}
}

// Decision is the outcome of an admission check.
type Decision struct {
	Allowed bool
	// RetryAfter is how long the client should wait before retrying when
	// rejected. Zero when allowed.
	RetryAfter time.Duration
}

// clientWindow tracks one client's count within the current fixed window.
type clientWindow struct {
	mu          sync.Mutex
	windowStart time.Time
	count       int
	lastSeen    time.Time
}

// Limiter is a fixed-window request counter keyed by client identity.
//
// Fixed windows admit up to 2*MaxRequests in a Window-length span that
// straddles a window boundary. That burst is part of the contract here;
// switching to a sliding window would change observable behavior.
//
// The outer mutex only guards the client map. Each client window carries
// its own lock, so concurrent requests from different clients do not
// serialize on a single lock.
type Limiter struct {
	mu      sync.Mutex
	clients map[string]*clientWindow
	cfg     Config
	idleTTL time.Duration
}

// now is a small indirection to allow test stubbing if needed.
var now = time.Now

// NewLimiter constructs a Limiter with the given config.
func NewLimiter(cfg Config) *Limiter {
	return &Limiter{
		clients: make(map[string]*clientWindow),
		cfg:     cfg,
		idleTTL: 15 * time.Minute,
	}
}

// Allow records one request from clientID and reports whether it is
// admitted. The request that overflows the window is itself rejected:
// with MaxRequests=5, the 5th call is the last allowed and the 6th is
// the first rejected.
func (l *Limiter) Allow(clientID string) Decision {
	ts := now()
	cw := l.window(clientID, ts)

	cw.mu.Lock()
	defer cw.mu.Unlock()

	if ts.Sub(cw.windowStart) >= l.cfg.Window {
		cw.windowStart = ts
		cw.count = 0
	}
	cw.count++
	cw.lastSeen = ts

	if cw.count > l.cfg.MaxRequests {
		return Decision{
			Allowed:    false,
			RetryAfter: cw.windowStart.Add(l.cfg.Window).Sub(ts),
		}
	}
	return Decision{Allowed: true}
}

// window fetches or creates the per-client state.
func (l *Limiter) window(clientID string, ts time.Time) *clientWindow {
	l.mu.Lock()
	defer l.mu.Unlock()

	if cw, ok := l.clients[clientID]; ok {
		return cw
	}
	cw := &clientWindow{windowStart: ts, lastSeen: ts}
	l.clients[clientID] = cw
	return cw
}

// Cleanup drops windows that have been idle longer than the idle TTL.
func (l *Limiter) Cleanup() {
	cutoff := now().Add(-l.idleTTL)

	l.mu.Lock()
	defer l.mu.Unlock()

	for id, cw := range l.clients {
		cw.mu.Lock()
		idle := cw.lastSeen.Before(cutoff)
		cw.mu.Unlock()
		if idle {
			delete(l.clients, id)
		}
	}
}

// StartJanitor starts a goroutine that periodically drops idle client
// windows. Stop it by cancelling the context.
func (l *Limiter) StartJanitor(ctx context.Context, every time.Duration) {
	if every <= 0 {
		return
	}

	t := time.NewTicker(every)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				l.Cleanup()
			}
		}
	}()
}
