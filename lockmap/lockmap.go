// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package lockmap provides reference-counted, per-key read-write locks.
//
// On a real chain the transaction-ordering layer guarantees that no two
// calls touching the same record run concurrently. Outside that host, the
// guarantee has to be made explicitly: the runtime takes the lock for every
// writable account it is about to touch before dispatching a handler.
package lockmap

import (
	"sort"
	"sync"
)

type holderLock struct {
	holders int
	mu      sync.RWMutex
}

type Lockmap struct {
	l sync.Mutex
	m map[string]*holderLock
}

func New(initSize int) *Lockmap {
	return &Lockmap{
		m: make(map[string]*holderLock, initSize),
	}
}

func (l *Lockmap) Lock(key string) {
	l.lock(key, true)
}

func (l *Lockmap) Unlock(key string) {
	l.unlock(key, true)
}

func (l *Lockmap) RLock(key string) {
	l.lock(key, false)
}

func (l *Lockmap) RUnlock(key string) {
	l.unlock(key, false)
}

// LockAll write-locks every key in [keys], deduplicated and in sorted
// order so that two callers locking overlapping sets cannot deadlock.
// It returns the keys in the order they were locked.
func (l *Lockmap) LockAll(keys []string) []string {
	unique := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		unique[k] = struct{}{}
	}
	sorted := make([]string, 0, len(unique))
	for k := range unique {
		sorted = append(sorted, k)
	}
	sort.Strings(sorted)
	for _, k := range sorted {
		l.Lock(k)
	}
	return sorted
}

// UnlockAll releases keys previously locked with LockAll, in reverse order.
func (l *Lockmap) UnlockAll(keys []string) {
	for i := len(keys) - 1; i >= 0; i-- {
		l.Unlock(keys[i])
	}
}

func (l *Lockmap) lock(key string, write bool) {
	l.l.Lock()
	hl, ok := l.m[key]
	if ok {
		hl.holders++
		l.l.Unlock()

		if write {
			hl.mu.Lock()
		} else {
			hl.mu.RLock()
		}
		return
	}
	hl = &holderLock{holders: 1}
	if write {
		hl.mu.Lock()
	} else {
		hl.mu.RLock()
	}
	l.m[key] = hl
	l.l.Unlock()
}

func (l *Lockmap) unlock(key string, write bool) {
	l.l.Lock()
	hl := l.m[key]
	if hl.holders > 1 {
		hl.holders--
		l.l.Unlock()
		if write {
			hl.mu.Unlock()
		} else {
			hl.mu.RUnlock()
		}
	} else {
		delete(l.m, key)
		l.l.Unlock()
	}
}

// Locks returns the number of keys currently held.
func (l *Lockmap) Locks() int {
	l.l.Lock()
	defer l.l.Unlock()

	return len(l.m)
}
