// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package statetest

import (
	"context"

	"github.com/countervm/countervm/state"
)

var _ state.Database = (*InMemoryStore)(nil)

// InMemoryStore is a storage that acts as a wrapper around a map and
// implements state.Database.
type InMemoryStore struct {
	Storage map[string][]byte
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		Storage: make(map[string][]byte),
	}
}

func (s *InMemoryStore) GetValue(_ context.Context, key []byte) ([]byte, error) {
	val, ok := s.Storage[string(key)]
	if !ok {
		return nil, state.ErrNotFound
	}
	return val, nil
}

func (s *InMemoryStore) Insert(_ context.Context, key []byte, value []byte) error {
	s.Storage[string(key)] = value
	return nil
}

func (s *InMemoryStore) Remove(_ context.Context, key []byte) error {
	delete(s.Storage, string(key))
	return nil
}

func (s *InMemoryStore) Commit(_ context.Context, changes map[string]state.Change) error {
	for k, change := range changes {
		if change.Remove {
			delete(s.Storage, k)
			continue
		}
		s.Storage[k] = change.Value
	}
	return nil
}
