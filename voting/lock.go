// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import "sync"

// eventLocks serializes mutations per event. Operations that span every
// event take the global write lock and exclude all per-event holders.
type eventLocks struct {
	global sync.RWMutex

	mu    sync.Mutex
	locks map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newEventLocks() *eventLocks {
	return &eventLocks{locks: make(map[string]*lockEntry)}
}

// lock blocks until the caller owns eventID and returns the release func
func (l *eventLocks) lock(eventID string) func() {
	l.global.RLock()

	l.mu.Lock()
	e, ok := l.locks[eventID]
	if !ok {
		e = &lockEntry{}
		l.locks[eventID] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()

	return func() {
		e.mu.Unlock()

		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.locks, eventID)
		}
		l.mu.Unlock()

		l.global.RUnlock()
	}
}

// lockAll excludes every per-event holder
func (l *eventLocks) lockAll() func() {
	l.global.Lock()
	return l.global.Unlock
}
