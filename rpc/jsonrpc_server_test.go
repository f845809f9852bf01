// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/rpc/v2/json2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/countervm/countervm/auth"
	"github.com/countervm/countervm/codec"
	"github.com/countervm/countervm/crypto/ed25519"
	"github.com/countervm/countervm/genesis"
	"github.com/countervm/countervm/programs/counter"
	"github.com/countervm/countervm/rpc"
	"github.com/countervm/countervm/runtime"
	"github.com/countervm/countervm/state"
	"github.com/countervm/countervm/state/statetest"
	"github.com/countervm/countervm/storage"
	"github.com/countervm/countervm/utils"
)

type testController struct {
	gen       *genesis.Genesis
	processor *runtime.Processor
	db        *statetest.InMemoryStore
}

func (c *testController) Genesis() *genesis.Genesis     { return c.gen }
func (c *testController) Processor() *runtime.Processor { return c.processor }
func (c *testController) ReadState() state.Immutable    { return c.db }

func newTestServer(t *testing.T) (*httptest.Server, *testController) {
	require := require.New(t)

	db := statetest.NewInMemoryStore()
	registry := runtime.NewRegistry()
	require.NoError(counter.Register(registry))
	processor, err := runtime.NewProcessor(
		zap.NewNop(),
		db,
		registry,
		runtime.NewDefaultRules(),
		prometheus.NewRegistry(),
	)
	require.NoError(err)

	c := &testController{
		gen:       genesis.Default(),
		processor: processor,
		db:        db,
	}
	handler, err := rpc.NewJSONRPCHandler("counter", rpc.NewJSONRPCServer(c))
	require.NoError(err)
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv, c
}

func call(t *testing.T, srv *httptest.Server, method string, args interface{}, reply interface{}) error {
	require := require.New(t)

	body, err := json2.EncodeClientRequest(method, args)
	require.NoError(err)
	resp, err := http.Post(srv.URL, "application/json", bytes.NewReader(body))
	require.NoError(err)
	defer resp.Body.Close()
	return json2.DecodeClientResponse(resp.Body, reply)
}

func newFundedFactory(t *testing.T, c *testController, amount uint64) *auth.ED25519Factory {
	require := require.New(t)

	priv, err := ed25519.GeneratePrivateKey()
	require.NoError(err)
	factory := auth.NewED25519Factory(priv)
	_, err = storage.AddLamports(context.Background(), c.db, factory.Address(), amount)
	require.NoError(err)
	return factory
}

func signInitialize(t *testing.T, factory *auth.ED25519Factory, counterAddr codec.Address) rpc.InitializeArgs {
	require := require.New(t)

	msg, err := (&runtime.Call{
		Instruction: counter.InitializeID,
		Accounts:    []codec.Address{counterAddr, factory.Address()},
	}).SigningMessage()
	require.NoError(err)
	a, err := factory.Sign(msg)
	require.NoError(err)
	signed := a.(*auth.ED25519)
	return rpc.InitializeArgs{
		Counter:   counterAddr.String(),
		Signer:    codec.ToHex(signed.Signer[:]),
		Signature: codec.ToHex(signed.Signature[:]),
	}
}

func TestGenesis(t *testing.T) {
	require := require.New(t)
	srv, c := newTestServer(t)

	var reply rpc.GenesisReply
	require.NoError(call(t, srv, "counter.Genesis", &struct{}{}, &reply))
	require.Equal(c.gen.Rules.LamportsPerByte, reply.Genesis.Rules.LamportsPerByte)
}

func TestInitializeAndIncrement(t *testing.T) {
	require := require.New(t)
	srv, c := newTestServer(t)

	factory := newFundedFactory(t, c, 1_000_000)
	counterAddr := counter.NewRecordAddress(utils.ToID([]byte("slot")))

	var initReply rpc.CallReply
	args := signInitialize(t, factory, counterAddr)
	require.NoError(call(t, srv, "counter.Initialize", &args, &initReply))
	require.Equal([]string{"Counter initialized! Current count: 0"}, initReply.Logs)

	var countReply rpc.CountReply
	require.NoError(call(t, srv, "counter.Count", &rpc.CountArgs{Counter: counterAddr.String()}, &countReply))
	require.Zero(countReply.Count)

	var incReply rpc.CallReply
	require.NoError(call(t, srv, "counter.Increment", &rpc.IncrementArgs{Counter: counterAddr.String()}, &incReply))
	require.Equal([]string{"Counter incremented! Current count: 1"}, incReply.Logs)
	require.NoError(call(t, srv, "counter.Increment", &rpc.IncrementArgs{Counter: counterAddr.String()}, &incReply))
	require.Equal([]string{"Counter incremented! Current count: 2"}, incReply.Logs)

	require.NoError(call(t, srv, "counter.Count", &rpc.CountArgs{Counter: counterAddr.String()}, &countReply))
	require.Equal(uint64(2), countReply.Count)
}

func TestInitializeBadSignature(t *testing.T) {
	require := require.New(t)
	srv, c := newTestServer(t)

	factory := newFundedFactory(t, c, 1_000_000)
	counterAddr := counter.NewRecordAddress(utils.ToID([]byte("slot")))

	args := signInitialize(t, factory, counterAddr)
	other := counter.NewRecordAddress(utils.ToID([]byte("other")))
	args.Counter = other.String()
	err := call(t, srv, "counter.Initialize", &args, &rpc.CallReply{})
	require.ErrorContains(err, auth.ErrInvalidSignature.Error())
}

func TestIncrementMissingCounter(t *testing.T) {
	require := require.New(t)
	srv, _ := newTestServer(t)

	counterAddr := counter.NewRecordAddress(utils.ToID([]byte("missing")))
	err := call(t, srv, "counter.Increment", &rpc.IncrementArgs{Counter: counterAddr.String()}, &rpc.CallReply{})
	require.ErrorContains(err, runtime.ErrAccountNotFound.Error())
}

func TestBalance(t *testing.T) {
	require := require.New(t)
	srv, c := newTestServer(t)

	factory := newFundedFactory(t, c, 12345)
	var reply rpc.BalanceReply
	require.NoError(call(t, srv, "counter.Balance", &rpc.BalanceArgs{Address: factory.Address().String()}, &reply))
	require.Equal(uint64(12345), reply.Amount)
}
