// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"errors"

	"github.com/countervm/countervm/codec"
	"github.com/countervm/countervm/consts"
	"github.com/countervm/countervm/state"
	"github.com/countervm/countervm/utils"
)

// State
// 0x0/ (account)
//   -> [address] => borsh(Account)

const accountPrefix byte = 0x0

// SystemAddress owns plain fund-holding accounts (genesis allocations and
// fee payers). Program-owned records use their program's address instead.
var SystemAddress = codec.CreateAddress(0xff, utils.ToID([]byte("system")))

// Account is the persistent record stored for every address: a lamport
// balance, the owning program, and that program's opaque record data.
type Account struct {
	Lamports uint64
	Owner    codec.Address
	Data     []byte
}

// AccountKey returns the state key of [addr].
func AccountKey(addr codec.Address) []byte {
	k := make([]byte, consts.ByteLen+codec.AddressLen)
	k[0] = accountPrefix
	copy(k[1:], addr[:])
	return k
}

// GetAccount returns the account stored at [addr], or false if the slot
// has never been allocated.
func GetAccount(
	ctx context.Context,
	im state.Immutable,
	addr codec.Address,
) (*Account, bool, error) {
	v, err := im.GetValue(ctx, AccountKey(addr))
	if errors.Is(err, state.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	acct, err := codec.Deserialize[Account](v)
	if err != nil {
		return nil, false, err
	}
	return acct, true, nil
}

// SetAccount persists [acct] at [addr].
func SetAccount(
	ctx context.Context,
	mu state.Mutable,
	addr codec.Address,
	acct *Account,
) error {
	v, err := codec.Serialize(acct)
	if err != nil {
		return err
	}
	return mu.Insert(ctx, AccountKey(addr), v)
}

// GetBalance returns the lamport balance of [addr]. Missing accounts have
// a zero balance.
func GetBalance(
	ctx context.Context,
	im state.Immutable,
	addr codec.Address,
) (uint64, error) {
	acct, exists, err := GetAccount(ctx, im, addr)
	if err != nil || !exists {
		return 0, err
	}
	return acct.Lamports, nil
}

// AddLamports credits [amount] to [addr], allocating a system-owned
// account if the slot is empty.
func AddLamports(
	ctx context.Context,
	mu state.Mutable,
	addr codec.Address,
	amount uint64,
) (uint64, error) {
	acct, exists, err := GetAccount(ctx, mu, addr)
	if err != nil {
		return 0, err
	}
	if !exists {
		acct = &Account{Owner: SystemAddress}
	}
	nbal := acct.Lamports + amount
	if nbal < acct.Lamports {
		return 0, ErrLamportOverflow
	}
	acct.Lamports = nbal
	if err := SetAccount(ctx, mu, addr, acct); err != nil {
		return 0, err
	}
	return nbal, nil
}

// SubLamports debits [amount] from [addr]. Debiting a missing account or
// past zero fails with ErrInsufficientFunds.
func SubLamports(
	ctx context.Context,
	mu state.Mutable,
	addr codec.Address,
	amount uint64,
) (uint64, error) {
	acct, exists, err := GetAccount(ctx, mu, addr)
	if err != nil {
		return 0, err
	}
	if !exists || acct.Lamports < amount {
		return 0, ErrInsufficientFunds
	}
	acct.Lamports -= amount
	if err := SetAccount(ctx, mu, addr, acct); err != nil {
		return 0, err
	}
	return acct.Lamports, nil
}
