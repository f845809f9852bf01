// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package controller_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/countervm/countervm/auth"
	"github.com/countervm/countervm/codec"
	"github.com/countervm/countervm/controller"
	"github.com/countervm/countervm/crypto/ed25519"
	"github.com/countervm/countervm/genesis"
	"github.com/countervm/countervm/programs/counter"
	"github.com/countervm/countervm/runtime"
	"github.com/countervm/countervm/storage"
	"github.com/countervm/countervm/utils"
)

func newFundedGenesis(t *testing.T, balance uint64) ([]byte, *auth.ED25519Factory) {
	require := require.New(t)

	priv, err := ed25519.GeneratePrivateKey()
	require.NoError(err)
	factory := auth.NewED25519Factory(priv)

	g := genesis.Default()
	g.CustomAllocation = append(g.CustomAllocation, &genesis.CustomAllocation{
		Address: factory.Address().String(),
		Balance: balance,
	})
	b, err := json.Marshal(g)
	require.NoError(err)
	return b, factory
}

func TestBootstrapAppliesAllocationsOnce(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	dir := t.TempDir()

	genesisBytes, factory := newFundedGenesis(t, 1000)

	c, err := controller.New(zap.NewNop(), dir, genesisBytes)
	require.NoError(err)
	bal, err := storage.GetBalance(ctx, c.ReadState(), factory.Address())
	require.NoError(err)
	require.Equal(uint64(1000), bal)
	require.NoError(c.Close())

	// Reopening must not credit the allocation a second time.
	c, err = controller.New(zap.NewNop(), dir, genesisBytes)
	require.NoError(err)
	defer func() {
		require.NoError(c.Close())
	}()
	bal, err = storage.GetBalance(ctx, c.ReadState(), factory.Address())
	require.NoError(err)
	require.Equal(uint64(1000), bal)
}

func TestCounterFlowPersistsAcrossReopen(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	dir := t.TempDir()

	genesisBytes, factory := newFundedGenesis(t, 1_000_000)
	counterAddr := counter.NewRecordAddress(utils.ToID([]byte("slot")))

	c, err := controller.New(zap.NewNop(), dir, genesisBytes)
	require.NoError(err)

	call := &runtime.Call{
		Instruction: counter.InitializeID,
		Accounts:    []codec.Address{counterAddr, factory.Address()},
	}
	require.NoError(call.Sign(factory))
	res, err := c.Processor().Execute(ctx, call)
	require.NoError(err)
	require.Equal([]string{"Counter initialized! Current count: 0"}, res.Logs)

	res, err = c.Processor().Execute(ctx, &runtime.Call{
		Instruction: counter.IncrementID,
		Accounts:    []codec.Address{counterAddr},
	})
	require.NoError(err)
	require.Equal([]string{"Counter incremented! Current count: 1"}, res.Logs)
	require.NoError(c.Close())

	c, err = controller.New(zap.NewNop(), dir, genesisBytes)
	require.NoError(err)
	defer func() {
		require.NoError(c.Close())
	}()
	record, err := counter.GetCounter(ctx, c.ReadState(), counterAddr)
	require.NoError(err)
	require.Equal(uint64(1), record.Count)
}
