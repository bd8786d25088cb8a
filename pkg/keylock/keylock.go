// Package keylock provides one mutex per string key. Unused keys are released.
package keylock

import "sync"

type entry struct {
	mu   sync.Mutex
	refs int
}

// Locker hands out per-key locks.
type Locker struct {
	mu    sync.Mutex
	locks map[string]*entry
}

// New returns an empty locker.
func New() *Locker {
	return &Locker{locks: make(map[string]*entry)}
}

// Lock blocks until key is free and returns the function that releases it.
func (l *Locker) Lock(key string) (unlock func()) {
	l.mu.Lock()
	e, ok := l.locks[key]
	if !ok {
		e = &entry{}
		l.locks[key] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()

	return l.releaser(key, e)
}

// TryLock acquires key only if it is free. It never blocks.
func (l *Locker) TryLock(key string) (unlock func(), ok bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, busy := l.locks[key]; busy {
		return nil, false
	}
	e := &entry{refs: 1}
	e.mu.Lock()
	l.locks[key] = e

	return l.releaser(key, e), true
}

func (l *Locker) releaser(key string, e *entry) func() {
	return func() {
		e.mu.Unlock()

		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.locks, key)
		}
		l.mu.Unlock()
	}
}

func (l *Locker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
