// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/countervm/countervm/codec"
	"github.com/countervm/countervm/lockmap"
	"github.com/countervm/countervm/state"
	"github.com/countervm/countervm/storage"
	"github.com/countervm/countervm/tstate"
)

// Processor validates and dispatches calls. It is the explicit stand-in
// for everything the host chain did declaratively: signature checks,
// account-constraint validation, per-record serialization, and atomic
// commit of each call's state changes.
type Processor struct {
	log      *zap.Logger
	db       state.Database
	registry *Registry
	rules    *Rules

	locks   *lockmap.Lockmap
	metrics *metrics
}

func NewProcessor(
	log *zap.Logger,
	db state.Database,
	registry *Registry,
	rules *Rules,
	r prometheus.Registerer,
) (*Processor, error) {
	m, err := newMetrics(r)
	if err != nil {
		return nil, err
	}
	return &Processor{
		log:      log,
		db:       db,
		registry: registry,
		rules:    rules,
		locks:    lockmap.New(16),
		metrics:  m,
	}, nil
}

// Execute runs [call] to completion. On success the call's change set is
// committed atomically; on any failure every attempted change is
// discarded and the error is returned to the caller.
func (p *Processor) Execute(ctx context.Context, call *Call) (*Result, error) {
	p.metrics.calls.Inc()
	res, err := p.execute(ctx, call)
	if err != nil {
		p.metrics.failures.Inc()
		p.log.Debug("call aborted",
			zap.Uint8("instruction", call.Instruction),
			zap.Error(err),
		)
		return nil, err
	}
	return res, nil
}

func (p *Processor) execute(ctx context.Context, call *Call) (*Result, error) {
	inst, err := p.registry.New(call.Instruction, call.Data)
	if err != nil {
		return nil, err
	}
	metas := inst.Accounts()
	if len(call.Accounts) != len(metas) {
		return nil, ErrAccountCountMismatch
	}

	// Authorization runs before any handler logic: a call missing a
	// declared signature is rejected outright.
	if err := p.verifySigners(ctx, call, metas); err != nil {
		return nil, err
	}

	// No two calls touching the same writable record run concurrently.
	locked := p.locks.LockAll(writableKeys(call, metas))
	defer p.locks.UnlockAll(locked)

	view, err := tstate.NewView(ctx, p.db, callScope(call, metas))
	if err != nil {
		return nil, err
	}
	if err := p.validateConstraints(ctx, view, call, metas); err != nil {
		return nil, err
	}
	if err := p.allocate(ctx, view, call, metas); err != nil {
		return nil, err
	}

	ectx := newExecContext(view, call.Accounts)
	if err := inst.Execute(ctx, ectx); err != nil {
		// The view is discarded wholesale; no partial mutation survives.
		return nil, err
	}

	if err := p.db.Commit(ctx, view.ChangedKeys()); err != nil {
		return nil, err
	}
	p.metrics.committed.Inc()
	for _, l := range ectx.Logs() {
		p.log.Info("program log", zap.String("message", l))
	}
	return &Result{Logs: ectx.Logs()}, nil
}

func (p *Processor) verifySigners(ctx context.Context, call *Call, metas []AccountMeta) error {
	msg, err := call.SigningMessage()
	if err != nil {
		return err
	}
	for i, meta := range metas {
		if !meta.Role.Has(Signer) {
			continue
		}
		a := call.authFor(call.Accounts[i])
		if a == nil {
			return ErrMissingSignature
		}
		if err := a.Verify(ctx, msg); err != nil {
			return err
		}
	}
	return nil
}

func (p *Processor) validateConstraints(
	ctx context.Context,
	view *tstate.View,
	call *Call,
	metas []AccountMeta,
) error {
	for i, meta := range metas {
		acct, exists, err := storage.GetAccount(ctx, view, call.Accounts[i])
		if err != nil {
			return err
		}
		if meta.Role.Has(Init) {
			if exists {
				return ErrAlreadyInitialized
			}
			continue
		}
		if !exists {
			return ErrAccountNotFound
		}
		if meta.Owner != codec.EmptyAddress && acct.Owner != meta.Owner {
			return ErrWrongOwner
		}
	}
	return nil
}

func (p *Processor) allocate(
	ctx context.Context,
	view *tstate.View,
	call *Call,
	metas []AccountMeta,
) error {
	for i, meta := range metas {
		if !meta.Role.Has(Init) {
			continue
		}
		if meta.Owner == codec.EmptyAddress {
			return ErrInvalidAccountMeta
		}
		payer, ok := metaIndex(metas, meta.Payer)
		if !ok || !metas[payer].Role.Has(Writable|Signer) {
			return ErrInvalidAccountMeta
		}
		fee := p.rules.AllocationFee(meta.Space)
		if _, err := storage.SubLamports(ctx, view, call.Accounts[payer], fee); err != nil {
			return err
		}
		acct := &storage.Account{
			Lamports: fee,
			Owner:    meta.Owner,
			Data:     make([]byte, meta.Space),
		}
		if err := storage.SetAccount(ctx, view, call.Accounts[i], acct); err != nil {
			return err
		}
	}
	return nil
}

func writableKeys(call *Call, metas []AccountMeta) []string {
	keys := make([]string, 0, len(metas))
	for i, meta := range metas {
		if meta.Role.Has(Writable) {
			keys = append(keys, string(storage.AccountKey(call.Accounts[i])))
		}
	}
	return keys
}

func callScope(call *Call, metas []AccountMeta) state.Keys {
	scope := make(state.Keys, len(metas))
	for i, meta := range metas {
		perm := state.Read
		if meta.Role.Has(Writable) {
			perm |= state.Write
		}
		if meta.Role.Has(Init) {
			perm |= state.Allocate
		}
		scope.Add(string(storage.AccountKey(call.Accounts[i])), perm)
	}
	return scope
}

func metaIndex(metas []AccountMeta, name string) (int, bool) {
	for i, meta := range metas {
		if meta.Name == name {
			return i, true
		}
	}
	return 0, false
}
