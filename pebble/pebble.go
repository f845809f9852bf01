// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import (
	"context"
	"errors"

	"github.com/cockroachdb/pebble"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/countervm/countervm/state"
)

var _ state.Database = (*Database)(nil)

type Database struct {
	db *pebble.DB

	writeOptions *pebble.WriteOptions
	metrics      *metrics
}

type Config struct {
	CacheSize    int // B
	BytesPerSync int // B
	MemTableSize int // B
	MaxOpenFiles int

	// Sync forces an fsync on every write.
	Sync bool
}

func NewDefaultConfig() Config {
	return Config{
		CacheSize:    64 * 1024 * 1024,
		BytesPerSync: 1024 * 1024,
		MemTableSize: 16 * 1024 * 1024,
		MaxOpenFiles: 4_096,

		Sync: true,
	}
}

func New(file string, cfg Config) (*Database, *prometheus.Registry, error) {
	opts := &pebble.Options{
		Cache:        pebble.NewCache(int64(cfg.CacheSize)),
		BytesPerSync: cfg.BytesPerSync,
		MemTableSize: uint64(cfg.MemTableSize),
		MaxOpenFiles: cfg.MaxOpenFiles,
	}
	db, err := pebble.Open(file, opts)
	if err != nil {
		return nil, nil, err
	}
	registry, m, err := newMetrics()
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	wopts := pebble.NoSync
	if cfg.Sync {
		wopts = pebble.Sync
	}
	return &Database{
		db:           db,
		writeOptions: wopts,
		metrics:      m,
	}, registry, nil
}

func (db *Database) GetValue(_ context.Context, key []byte) ([]byte, error) {
	db.metrics.reads.Inc()
	v, closer, err := db.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, state.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	// The returned slice is only valid until closer.Close.
	value := make([]byte, len(v))
	copy(value, v)
	return value, closer.Close()
}

func (db *Database) Insert(_ context.Context, key []byte, value []byte) error {
	db.metrics.writes.Inc()
	return db.db.Set(key, value, db.writeOptions)
}

func (db *Database) Remove(_ context.Context, key []byte) error {
	db.metrics.writes.Inc()
	return db.db.Delete(key, db.writeOptions)
}

// Commit applies [changes] in a single batch: either every change in the
// set becomes durable or none does.
func (db *Database) Commit(_ context.Context, changes map[string]state.Change) error {
	batch := db.db.NewBatch()
	defer func() {
		_ = batch.Close()
	}()

	for k, change := range changes {
		if change.Remove {
			if err := batch.Delete([]byte(k), nil); err != nil {
				return err
			}
			continue
		}
		if err := batch.Set([]byte(k), change.Value, nil); err != nil {
			return err
		}
	}
	db.metrics.commits.Inc()
	return batch.Commit(db.writeOptions)
}

func (db *Database) Close() error {
	return db.db.Close()
}
