// Package locks provides per-key mutual exclusion. Read-modify-write
// sequences on one user's state (stat increments, session lifecycle) run
// under that user's lock so concurrent requests cannot lose updates.
package locks

import (
	"sync"

	"github.com/google/uuid"
)

// PerUser hands out one mutex per user id. Entries are created on first
// use and kept for the process lifetime; the set of users is bounded by
// the user table.
type PerUser struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

// NewPerUser creates an empty lock table.
func NewPerUser() *PerUser {
	return &PerUser{locks: make(map[uuid.UUID]*sync.Mutex)}
}

// Lock acquires the mutex for id and returns the unlock function.
func (p *PerUser) Lock(id uuid.UUID) func() {
	p.mu.Lock()
	m, ok := p.locks[id]
	if !ok {
		m = &sync.Mutex{}
		p.locks[id] = m
	}
	p.mu.Unlock()

	m.Lock()
	return m.Unlock
}
