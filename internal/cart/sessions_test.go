package cart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solemate/storefront/internal/catalog"
)

func TestSessions_IsolatedPerSession(t *testing.T) {
	s := NewSessions(time.Hour)
	a, b := NewID(), NewID()

	s.Mutate(a, func(c *Cart) {
		c.Add(sockItem(t, catalog.LengthAnkle, "Black", 2))
	})

	var aTotal, bTotal int
	s.Mutate(a, func(c *Cart) { aTotal = c.TotalItems() })
	s.Mutate(b, func(c *Cart) { bTotal = c.TotalItems() })

	assert.Equal(t, 2, aTotal)
	assert.Equal(t, 0, bTotal)
	assert.Equal(t, 2, s.Count())
}

func TestSessions_EvictStale(t *testing.T) {
	s := NewSessions(10 * time.Minute)
	stale, fresh := NewID(), NewID()

	s.Mutate(stale, func(c *Cart) {
		c.Add(sockItem(t, catalog.LengthAnkle, "Black", 1))
	})
	// Backdate the stale session beyond the TTL.
	s.mu.Lock()
	s.carts[stale].lastSeen = time.Now().Add(-time.Hour)
	s.mu.Unlock()

	s.Mutate(fresh, func(*Cart) {})

	evicted := s.evictStale(time.Now())
	assert.Equal(t, 1, evicted)
	assert.Equal(t, 1, s.Count())

	// The evicted session comes back as a fresh, empty cart.
	var total int
	s.Mutate(stale, func(c *Cart) { total = c.TotalItems() })
	assert.Equal(t, 0, total)
}

func TestNewID_Unique(t *testing.T) {
	require.NotEqual(t, NewID(), NewID())
}
