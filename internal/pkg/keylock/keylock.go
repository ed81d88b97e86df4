// Package keylock provides mutual exclusion per string key.
package keylock

import (
	"context"
	"sort"
	"sync"
)

type entry struct {
	ch   chan struct{} // holds one token while the key is locked
	refs int
}

// Locker hands out one lock per key. Entries are dropped once nobody holds or waits on them.
type Locker struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// New creates an empty Locker
func New() *Locker {
	return &Locker{entries: make(map[string]*entry)}
}

func (l *Locker) acquireEntry(key string) *entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.entries[key]
	if !ok {
		e = &entry{ch: make(chan struct{}, 1)}
		l.entries[key] = e
	}
	e.refs++
	return e
}

func (l *Locker) releaseEntry(key string, e *entry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(l.entries, key)
	}
}

// Lock blocks until key is held or ctx is done.
func (l *Locker) Lock(ctx context.Context, key string) error {
	e := l.acquireEntry(key)
	select {
	case e.ch <- struct{}{}:
		return nil
	case <-ctx.Done():
		l.releaseEntry(key, e)
		return ctx.Err()
	}
}

// Unlock releases key. Unlocking a key that is not held panics.
func (l *Locker) Unlock(key string) {
	l.mu.Lock()
	e, ok := l.entries[key]
	l.mu.Unlock()
	if !ok {
		panic("keylock: unlock of unlocked key " + key)
	}
	select {
	case <-e.ch:
	default:
		panic("keylock: unlock of unlocked key " + key)
	}
	l.releaseEntry(key, e)
}

// LockAll locks every key in sorted order, so two callers with overlapping
// key sets cannot deadlock. The returned func releases them all.
func (l *Locker) LockAll(ctx context.Context, keys ...string) (func(), error) {
	sorted := Normalize(keys)
	held := make([]string, 0, len(sorted))
	unlock := func() {
		for i := len(held) - 1; i >= 0; i-- {
			l.Unlock(held[i])
		}
	}
	for _, k := range sorted {
		if err := l.Lock(ctx, k); err != nil {
			unlock()
			return nil, err
		}
		held = append(held, k)
	}
	return unlock, nil
}

// Normalize sorts keys and removes duplicates
func Normalize(keys []string) []string {
	out := make([]string, 0, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
