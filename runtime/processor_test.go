// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/countervm/countervm/codec"
	"github.com/countervm/countervm/state/statetest"
	"github.com/countervm/countervm/storage"
	"github.com/countervm/countervm/tstate"
	"github.com/countervm/countervm/utils"
)

const fakeID uint8 = 0xf0

var (
	errFake = errors.New("handler failed")

	targetAddr = codec.CreateAddress(0x1, utils.ToID([]byte("target")))
	strayAddr  = codec.CreateAddress(0x1, utils.ToID([]byte("stray")))
	fakeOwner  = codec.CreateAddress(0x2, utils.ToID([]byte("owner")))

	_ Instruction = (*fakeInstruction)(nil)
)

// fakeInstruction mutates its single writable account and optionally
// misbehaves afterwards.
type fakeInstruction struct {
	Fail       bool
	OutOfScope bool
}

func (*fakeInstruction) GetTypeID() uint8 {
	return fakeID
}

func (*fakeInstruction) Accounts() []AccountMeta {
	return []AccountMeta{
		{Name: "target", Role: Writable, Owner: fakeOwner},
	}
}

func (f *fakeInstruction) Execute(ctx context.Context, ectx *ExecContext) error {
	acct, _, err := storage.GetAccount(ctx, ectx.State(), ectx.Account(0))
	if err != nil {
		return err
	}
	acct.Data = []byte("written")
	if err := storage.SetAccount(ctx, ectx.State(), ectx.Account(0), acct); err != nil {
		return err
	}
	if f.OutOfScope {
		return storage.SetAccount(ctx, ectx.State(), strayAddr, acct)
	}
	if f.Fail {
		return errFake
	}
	return nil
}

func newTestProcessor(t *testing.T, db *statetest.InMemoryStore) *Processor {
	registry := NewRegistry()
	require.NoError(t, registry.Register(func() Instruction { return &fakeInstruction{} }))
	p, err := NewProcessor(zap.NewNop(), db, registry, NewDefaultRules(), prometheus.NewRegistry())
	require.NoError(t, err)
	return p
}

func seedTarget(t *testing.T, db *statetest.InMemoryStore) {
	require.NoError(t, storage.SetAccount(context.Background(), db, targetAddr, &storage.Account{
		Owner: fakeOwner,
		Data:  []byte("initial"),
	}))
}

func fakeCall(t *testing.T, inst *fakeInstruction) *Call {
	data, err := codec.Serialize(inst)
	require.NoError(t, err)
	return &Call{
		Instruction: fakeID,
		Data:        data,
		Accounts:    []codec.Address{targetAddr},
	}
}

func TestRoleHas(t *testing.T) {
	require := require.New(t)

	require.True(Init.Has(Writable))
	require.True((Writable | Signer).Has(Signer))
	require.False(Writable.Has(Signer))
	require.False(ReadOnly.Has(Writable))
}

func TestRegistry(t *testing.T) {
	require := require.New(t)

	registry := NewRegistry()
	require.NoError(registry.Register(func() Instruction { return &fakeInstruction{} }))
	require.ErrorIs(
		registry.Register(func() Instruction { return &fakeInstruction{} }),
		ErrDuplicateInstruction,
	)

	_, err := registry.New(0xaa, nil)
	require.ErrorIs(err, ErrUnknownInstruction)

	data, err := codec.Serialize(&fakeInstruction{Fail: true})
	require.NoError(err)
	inst, err := registry.New(fakeID, data)
	require.NoError(err)
	require.True(inst.(*fakeInstruction).Fail)
}

func TestExecuteUnknownInstruction(t *testing.T) {
	require := require.New(t)

	p := newTestProcessor(t, statetest.NewInMemoryStore())
	_, err := p.Execute(context.Background(), &Call{Instruction: 0xaa})
	require.ErrorIs(err, ErrUnknownInstruction)
}

func TestExecuteAccountCountMismatch(t *testing.T) {
	require := require.New(t)

	p := newTestProcessor(t, statetest.NewInMemoryStore())
	_, err := p.Execute(context.Background(), &Call{Instruction: fakeID})
	require.ErrorIs(err, ErrAccountCountMismatch)
}

func TestExecuteCommitsOnSuccess(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	db := statetest.NewInMemoryStore()
	p := newTestProcessor(t, db)
	seedTarget(t, db)

	_, err := p.Execute(ctx, fakeCall(t, &fakeInstruction{}))
	require.NoError(err)

	acct, _, err := storage.GetAccount(ctx, db, targetAddr)
	require.NoError(err)
	require.Equal([]byte("written"), acct.Data)
}

func TestExecuteDiscardsOnHandlerError(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	db := statetest.NewInMemoryStore()
	p := newTestProcessor(t, db)
	seedTarget(t, db)

	_, err := p.Execute(ctx, fakeCall(t, &fakeInstruction{Fail: true}))
	require.ErrorIs(err, errFake)

	// The handler wrote before failing; none of it is observable.
	acct, _, err := storage.GetAccount(ctx, db, targetAddr)
	require.NoError(err)
	require.Equal([]byte("initial"), acct.Data)
}

func TestExecuteRejectsUndeclaredWrites(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	db := statetest.NewInMemoryStore()
	p := newTestProcessor(t, db)
	seedTarget(t, db)

	_, err := p.Execute(ctx, fakeCall(t, &fakeInstruction{OutOfScope: true}))
	require.ErrorIs(err, tstate.ErrInvalidKeyOrPermission)

	// The declared account's write was discarded along with the call.
	acct, _, err := storage.GetAccount(ctx, db, targetAddr)
	require.NoError(err)
	require.Equal([]byte("initial"), acct.Data)
	_, exists, err := storage.GetAccount(ctx, db, strayAddr)
	require.NoError(err)
	require.False(exists)
}

func TestExecuteWrongOwner(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	db := statetest.NewInMemoryStore()
	p := newTestProcessor(t, db)

	require.NoError(storage.SetAccount(ctx, db, targetAddr, &storage.Account{
		Owner: storage.SystemAddress,
		Data:  []byte("initial"),
	}))
	_, err := p.Execute(ctx, fakeCall(t, &fakeInstruction{}))
	require.ErrorIs(err, ErrWrongOwner)
}
