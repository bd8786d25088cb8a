// Package latest implements a latest-request-wins discipline keyed by an
// arbitrary string (a booking session, a location).
package latest

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	// DefaultSize bounds the number of keys a tracker remembers.
	DefaultSize = 10000
	// DefaultTTL is how long an idle key is remembered.
	DefaultTTL = 24 * time.Hour
)

// Ticket identifies one started request.
type Ticket struct {
	Key        string
	Generation uint64
}

// Tracker hands out generations per key. Generations come from one counter
// shared by all keys, so a value is never handed out twice, even after the
// key is forgotten or evicted.
type Tracker struct {
	mu          sync.Mutex
	next        uint64
	generations *expirable.LRU[string, uint64]
}

// NewTracker returns an empty tracker with DefaultSize and DefaultTTL.
func NewTracker() *Tracker {
	return NewTrackerWithLimits(DefaultSize, DefaultTTL)
}

// NewTrackerWithLimits returns an empty tracker remembering at most size keys
// for ttl each. Evicted keys behave like forgotten ones.
func NewTrackerWithLimits(size int, ttl time.Duration) *Tracker {
	return &Tracker{generations: expirable.NewLRU[string, uint64](size, nil, ttl)}
}

// Begin starts a new request for key and supersedes every earlier one.
func (t *Tracker) Begin(key string) Ticket {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.bump(key)
}

// Current returns a ticket for the key's present generation without
// superseding anything. It stays latest until the next Begin or Forget.
func (t *Tracker) Current(key string) Ticket {
	t.mu.Lock()
	defer t.mu.Unlock()

	if gen, ok := t.generations.Get(key); ok {
		return Ticket{Key: key, Generation: gen}
	}
	return t.bump(key)
}

// IsLatest reports whether no newer request for the ticket's key has begun.
func (t *Tracker) IsLatest(ticket Ticket) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	gen, ok := t.generations.Get(ticket.Key)
	return ok && gen == ticket.Generation
}

// Forget drops the key once its owner is gone. Tickets issued before stay stale.
func (t *Tracker) Forget(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.generations.Remove(key)
}

// Len returns the number of remembered keys.
func (t *Tracker) Len() int {
	return t.generations.Len()
}

func (t *Tracker) bump(key string) Ticket {
	t.next++
	t.generations.Add(key, t.next)
	return Ticket{Key: key, Generation: t.next}
}
