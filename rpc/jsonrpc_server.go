// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"net/http"

	"github.com/countervm/countervm/auth"
	"github.com/countervm/countervm/codec"
	"github.com/countervm/countervm/crypto/ed25519"
	"github.com/countervm/countervm/genesis"
	"github.com/countervm/countervm/programs/counter"
	"github.com/countervm/countervm/runtime"
	"github.com/countervm/countervm/storage"
)

const Endpoint = "/counter"

type JSONRPCServer struct {
	c Controller
}

func NewJSONRPCServer(c Controller) *JSONRPCServer {
	return &JSONRPCServer{c}
}

type GenesisReply struct {
	Genesis *genesis.Genesis `json:"genesis"`
}

func (j *JSONRPCServer) Genesis(_ *http.Request, _ *struct{}, reply *GenesisReply) error {
	reply.Genesis = j.c.Genesis()
	return nil
}

type InitializeArgs struct {
	// Counter is the address of the record slot to create.
	Counter string `json:"counter"`
	// Signer is the funding identity's hex-encoded ed25519 public key.
	Signer string `json:"signer"`
	// Signature is the signer's hex-encoded signature over the call's
	// signing message.
	Signature string `json:"signature"`
}

type CallReply struct {
	Logs []string `json:"logs"`
}

func (j *JSONRPCServer) Initialize(req *http.Request, args *InitializeArgs, reply *CallReply) error {
	counterAddr, err := codec.StringToAddress(args.Counter)
	if err != nil {
		return err
	}
	a, err := parseAuth(args.Signer, args.Signature)
	if err != nil {
		return err
	}
	call := &runtime.Call{
		Instruction: counter.InitializeID,
		Accounts:    []codec.Address{counterAddr, a.Actor()},
		Auth:        []runtime.Auth{a},
	}
	res, err := j.c.Processor().Execute(req.Context(), call)
	if err != nil {
		return err
	}
	reply.Logs = res.Logs
	return nil
}

type IncrementArgs struct {
	Counter string `json:"counter"`
}

func (j *JSONRPCServer) Increment(req *http.Request, args *IncrementArgs, reply *CallReply) error {
	counterAddr, err := codec.StringToAddress(args.Counter)
	if err != nil {
		return err
	}
	call := &runtime.Call{
		Instruction: counter.IncrementID,
		Accounts:    []codec.Address{counterAddr},
	}
	res, err := j.c.Processor().Execute(req.Context(), call)
	if err != nil {
		return err
	}
	reply.Logs = res.Logs
	return nil
}

type CountArgs struct {
	Counter string `json:"counter"`
}

type CountReply struct {
	Count uint64 `json:"count"`
}

func (j *JSONRPCServer) Count(req *http.Request, args *CountArgs, reply *CountReply) error {
	counterAddr, err := codec.StringToAddress(args.Counter)
	if err != nil {
		return err
	}
	record, err := counter.GetCounter(req.Context(), j.c.ReadState(), counterAddr)
	if err != nil {
		return err
	}
	reply.Count = record.Count
	return nil
}

type BalanceArgs struct {
	Address string `json:"address"`
}

type BalanceReply struct {
	Amount uint64 `json:"amount"`
}

func (j *JSONRPCServer) Balance(req *http.Request, args *BalanceArgs, reply *BalanceReply) error {
	addr, err := codec.StringToAddress(args.Address)
	if err != nil {
		return err
	}
	amount, err := storage.GetBalance(req.Context(), j.c.ReadState(), addr)
	if err != nil {
		return err
	}
	reply.Amount = amount
	return nil
}

func parseAuth(signer string, signature string) (runtime.Auth, error) {
	pk, err := codec.LoadHex(signer, ed25519.PublicKeyLen)
	if err != nil {
		return nil, err
	}
	sig, err := codec.LoadHex(signature, ed25519.SignatureLen)
	if err != nil {
		return nil, err
	}
	return &auth.ED25519{
		Signer:    ed25519.PublicKey(pk),
		Signature: ed25519.Signature(sig),
	}, nil
}
