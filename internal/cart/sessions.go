package cart

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// session pairs a cart with its last-access time for TTL eviction.
type session struct {
	cart     *Cart
	lastSeen time.Time
}

// Sessions owns every live cart, keyed by an opaque session ID. Carts exist
// only in memory: they die with their session's TTL or with the process,
// never outliving either. Each cart has a single logical owner (one browser
// session); the mutex exists because the HTTP server serves requests
// concurrently, not because carts have concurrent writers.
type Sessions struct {
	ttl time.Duration

	mu    sync.Mutex
	carts map[string]*session
}

// NewSessions creates a session store whose carts are evicted after ttl of
// inactivity.
func NewSessions(ttl time.Duration) *Sessions {
	return &Sessions{
		ttl:   ttl,
		carts: make(map[string]*session),
	}
}

// NewID returns a fresh session identifier.
func NewID() string {
	return uuid.New().String()
}

// Mutate runs fn against the session's cart while holding the store lock,
// serializing all access to that cart. The cart is created empty on first
// access and its TTL refreshed. Reads go through Mutate too, capturing what
// they need inside fn.
func (s *Sessions) Mutate(id string, fn func(*Cart)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.carts[id]
	if !ok {
		sess = &session{cart: New()}
		s.carts[id] = sess
	}
	sess.lastSeen = time.Now()
	fn(sess.cart)
}

// Count returns the number of live sessions.
func (s *Sessions) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.carts)
}

// evictStale removes sessions idle longer than the TTL and reports how many
// were dropped.
func (s *Sessions) evictStale(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, sess := range s.carts {
		if now.Sub(sess.lastSeen) >= s.ttl {
			delete(s.carts, id)
			evicted++
		}
	}
	return evicted
}

// Sweep periodically evicts stale sessions until ctx is cancelled. Intended
// to run in its own goroutine (the app runs it under an errgroup).
func (s *Sessions) Sweep(ctx context.Context, interval time.Duration, lg *zap.Logger) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			if n := s.evictStale(now); n > 0 {
				lg.Info("Evicted stale cart sessions",
					zap.Int("evicted", n),
					zap.Int("remaining", s.Count()),
				)
			}
		}
	}
}
