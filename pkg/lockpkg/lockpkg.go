// Package lockpkg provides per-entity mutual exclusion handles.
//
// A Registry hands out one stable Mutex per entity id so that all callers
// mutating the same entity serialize against each other while unrelated
// entities proceed in parallel. Handles are created lazily and retained for
// the life of the process.
package lockpkg

import (
	"context"
	"sync"
)

// Mutex is a mutual exclusion lock granted to waiters in arrival order.
// Unlike sync.Mutex, acquisition can be abandoned while waiting via the
// caller's context. The zero value is not usable; obtain one from a Registry.
type Mutex struct {
	ch chan struct{}
}

func newMutex() *Mutex {
	return &Mutex{ch: make(chan struct{}, 1)}
}

// Lock blocks until the mutex is acquired or ctx is done, whichever comes
// first. On ctx expiry it returns ctx.Err() without having acquired the
// mutex, so it is always safe to abandon the wait.
func (m *Mutex) Lock(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	select {
	case m.ch <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Unlock releases the mutex. It panics when the mutex is not held.
func (m *Mutex) Unlock() {
	select {
	case <-m.ch:
	default:
		panic("lockpkg: unlock of unlocked mutex")
	}
}

// Registry maps entity ids to their Mutex, creating handles on first use.
// Entries are never evicted; the registry assumes a bounded entity
// population. The zero value is ready to use.
type Registry struct {
	mutexes sync.Map // int64 -> *Mutex
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Get returns the Mutex for the given id, creating it if absent. Concurrent
// first use by multiple callers yields the same handle: creation goes
// through LoadOrStore, so losers discard their candidate and adopt the
// stored one.
func (r *Registry) Get(id int64) *Mutex {
	if m, ok := r.mutexes.Load(id); ok {
		return m.(*Mutex)
	}

	m, _ := r.mutexes.LoadOrStore(id, newMutex())

	return m.(*Mutex)
}

// Len reports the number of live handles. Intended for observability since
// the registry never shrinks.
func (r *Registry) Len() int {
	n := 0

	r.mutexes.Range(func(_, _ any) bool {
		n++
		return true
	})

	return n
}
