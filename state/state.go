// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"context"
	"errors"
)

// ErrNotFound is returned by [Immutable.GetValue] when a key has no value.
var ErrNotFound = errors.New("not found")

type Immutable interface {
	GetValue(ctx context.Context, key []byte) (value []byte, err error)
}

type Mutable interface {
	Immutable

	Insert(ctx context.Context, key []byte, value []byte) error
	Remove(ctx context.Context, key []byte) error
}

// A Change is a pending write against a key. If [Remove] is set,
// [Value] is ignored.
type Change struct {
	Value  []byte
	Remove bool
}

// Database is a store that can atomically apply the change set produced
// by a successful call. All-or-nothing commits are how partial mutation
// stays unobservable.
type Database interface {
	Mutable

	Commit(ctx context.Context, changes map[string]Change) error
}
