// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package controller

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/countervm/countervm/genesis"
	"github.com/countervm/countervm/pebble"
	"github.com/countervm/countervm/programs/counter"
	"github.com/countervm/countervm/runtime"
	"github.com/countervm/countervm/state"
	"github.com/countervm/countervm/utils"
)

// genesisKey marks a store whose genesis allocations were applied.
var genesisKey = []byte("genesis")

// Controller owns a store and the processor serving calls against it.
type Controller struct {
	log *zap.Logger
	db  *pebble.Database
	gen *genesis.Genesis

	processor *runtime.Processor
	gatherers prometheus.Gatherers
}

// New opens (or creates) the store at [dbPath], applies [genesisBytes]
// allocations on first open, and wires the counter program's
// instructions into a processor.
func New(log *zap.Logger, dbPath string, genesisBytes []byte) (*Controller, error) {
	dbDir, err := utils.InitSubDirectory(dbPath, "db")
	if err != nil {
		return nil, err
	}
	db, dbRegistry, err := pebble.New(dbDir, pebble.NewDefaultConfig())
	if err != nil {
		return nil, err
	}
	gen, err := genesis.New(genesisBytes)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	registry := runtime.NewRegistry()
	if err := counter.Register(registry); err != nil {
		_ = db.Close()
		return nil, err
	}
	procRegistry := prometheus.NewRegistry()
	processor, err := runtime.NewProcessor(log, db, registry, gen.Rules, procRegistry)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	c := &Controller{
		log:       log,
		db:        db,
		gen:       gen,
		processor: processor,
		gatherers: prometheus.Gatherers{dbRegistry, procRegistry},
	}
	if err := c.bootstrap(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return c, nil
}

func (c *Controller) bootstrap(ctx context.Context) error {
	_, err := c.db.GetValue(ctx, genesisKey)
	if err == nil {
		return nil
	}
	if !errors.Is(err, state.ErrNotFound) {
		return err
	}
	c.log.Info("loading genesis allocations",
		zap.Int("allocations", len(c.gen.CustomAllocation)),
	)
	// The allocations and the marker land in one batch so an interrupted
	// bootstrap cannot leave credited balances without the marker.
	staged := newStagedStore(c.db)
	if err := c.gen.Load(ctx, staged); err != nil {
		return err
	}
	staged.changes[string(genesisKey)] = state.Change{Value: []byte{0x1}}
	return c.db.Commit(ctx, staged.changes)
}

// stagedStore buffers writes as a change set over a base store, for
// applying through a single atomic Commit.
type stagedStore struct {
	base    state.Immutable
	changes map[string]state.Change
}

func newStagedStore(base state.Immutable) *stagedStore {
	return &stagedStore{
		base:    base,
		changes: make(map[string]state.Change),
	}
}

func (s *stagedStore) GetValue(ctx context.Context, key []byte) ([]byte, error) {
	if change, ok := s.changes[string(key)]; ok {
		if change.Remove {
			return nil, state.ErrNotFound
		}
		return change.Value, nil
	}
	return s.base.GetValue(ctx, key)
}

func (s *stagedStore) Insert(_ context.Context, key []byte, value []byte) error {
	s.changes[string(key)] = state.Change{Value: value}
	return nil
}

func (s *stagedStore) Remove(_ context.Context, key []byte) error {
	s.changes[string(key)] = state.Change{Remove: true}
	return nil
}

func (c *Controller) Genesis() *genesis.Genesis {
	return c.gen
}

func (c *Controller) Processor() *runtime.Processor {
	return c.processor
}

func (c *Controller) ReadState() state.Immutable {
	return c.db
}

func (c *Controller) Gatherers() prometheus.Gatherers {
	return c.gatherers
}

func (c *Controller) Close() error {
	return c.db.Close()
}
