// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tstate

import (
	"context"
	"errors"

	"github.com/countervm/countervm/state"
)

const defaultOps = 4

type op struct {
	k string

	pastV       []byte
	pastExists  bool
	pastChanged bool
}

// View is a scoped, transactional overlay of base storage. Reads and
// writes are restricted to the keys declared in scope with sufficient
// permissions; nothing touches the base store until the pending change
// set is committed by the caller.
type View struct {
	scope        state.Keys
	scopeStorage map[string][]byte

	pendingChangedKeys map[string]state.Change

	// ops is a record of all operations performed on the view. Tracking
	// operations allows for reverting state to a certain point-in-time.
	ops []*op
}

// NewView fetches every in-scope key from [im] and returns a view over
// the results. Keys absent from [im] are simply absent from the view.
func NewView(ctx context.Context, im state.Immutable, scope state.Keys) (*View, error) {
	storage := make(map[string][]byte, len(scope))
	for key := range scope {
		v, err := im.GetValue(ctx, []byte(key))
		if errors.Is(err, state.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		storage[key] = v
	}
	return &View{
		scope:              scope,
		scopeStorage:       storage,
		pendingChangedKeys: make(map[string]state.Change, len(scope)),
		ops:                make([]*op, 0, defaultOps),
	}, nil
}

func (v *View) checkScope(key string, perm state.Permissions) bool {
	return v.scope[key].Has(perm)
}

// GetValue returns the value of [key] as visible inside the view.
func (v *View) GetValue(_ context.Context, key []byte) ([]byte, error) {
	k := string(key)
	if !v.checkScope(k, state.Read) {
		return nil, ErrInvalidKeyOrPermission
	}
	value, exists := v.current(k)
	if !exists {
		return nil, state.ErrNotFound
	}
	return value, nil
}

func (v *View) current(k string) ([]byte, bool) {
	if change, ok := v.pendingChangedKeys[k]; ok {
		if change.Remove {
			return nil, false
		}
		return change.Value, true
	}
	value, ok := v.scopeStorage[k]
	return value, ok
}

// Insert sets [key] to [value] inside the view. Creating a key that does
// not yet exist requires the Allocate permission.
func (v *View) Insert(_ context.Context, key []byte, value []byte) error {
	k := string(key)
	pastV, exists := v.current(k)
	perm := state.Write
	if !exists {
		perm = state.Allocate | state.Write
	}
	if !v.checkScope(k, perm) {
		return ErrInvalidKeyOrPermission
	}
	v.recordOp(k, pastV, exists)
	v.pendingChangedKeys[k] = state.Change{Value: value}
	return nil
}

// Remove deletes [key] inside the view. Removing a missing key is a no-op.
func (v *View) Remove(_ context.Context, key []byte) error {
	k := string(key)
	if !v.checkScope(k, state.Write) {
		return ErrInvalidKeyOrPermission
	}
	pastV, exists := v.current(k)
	if !exists {
		return nil
	}
	v.recordOp(k, pastV, exists)
	v.pendingChangedKeys[k] = state.Change{Remove: true}
	return nil
}

func (v *View) recordOp(k string, pastV []byte, pastExists bool) {
	_, pastChanged := v.pendingChangedKeys[k]
	v.ops = append(v.ops, &op{
		k:           k,
		pastV:       pastV,
		pastExists:  pastExists,
		pastChanged: pastChanged,
	})
}

// OpIndex returns the number of operations done on v.
func (v *View) OpIndex() int {
	return len(v.ops)
}

// Rollback restores the view to the state it had after operation
// [restorePoint].
func (v *View) Rollback(restorePoint int) {
	for i := len(v.ops) - 1; i >= restorePoint; i-- {
		op := v.ops[i]

		// Remove all key changes from the view if the key was not
		// previously modified.
		if !op.pastChanged {
			delete(v.pendingChangedKeys, op.k)
			continue
		}
		if !op.pastExists {
			v.pendingChangedKeys[op.k] = state.Change{Remove: true}
			continue
		}
		v.pendingChangedKeys[op.k] = state.Change{Value: op.pastV}
	}
	v.ops = v.ops[:restorePoint]
}

// ChangedKeys returns the pending change set to apply to base storage.
// Removals of keys that never existed in base storage are dropped.
func (v *View) ChangedKeys() map[string]state.Change {
	changes := make(map[string]state.Change, len(v.pendingChangedKeys))
	for k, change := range v.pendingChangedKeys {
		if change.Remove {
			if _, existed := v.scopeStorage[k]; !existed {
				continue
			}
		}
		changes[k] = change
	}
	return changes
}
