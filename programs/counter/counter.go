// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package counter implements the counter program: one persistent
// unsigned 64-bit count per record, created by Initialize and bumped by
// Increment.
package counter

import (
	"context"

	"github.com/countervm/countervm/codec"
	"github.com/countervm/countervm/consts"
	"github.com/countervm/countervm/runtime"
	"github.com/countervm/countervm/state"
	"github.com/countervm/countervm/storage"
	"github.com/countervm/countervm/utils"
)

const (
	ProgramName = "counter"

	// Instruction type ids
	InitializeID uint8 = 0
	IncrementID  uint8 = 1

	programAddressID uint8 = 0x10
	recordAddressID  uint8 = 0x11

	RecordVersion uint8 = 1

	// RecordSize is the full persisted layout: an 8 byte discriminator,
	// a version byte, and the little-endian count.
	RecordSize = consts.DiscriminatorLen + consts.ByteLen + consts.Uint64Len
)

// ProgramID owns every counter record.
var ProgramID = codec.CreateAddress(programAddressID, utils.ToID([]byte(ProgramName)))

// NewRecordAddress derives a counter record address from [seed]. Any
// unused address works as a record slot; this just keeps record
// addresses distinguishable from identity addresses.
func NewRecordAddress(seed [consts.IDLen]byte) codec.Address {
	return codec.CreateAddress(recordAddressID, seed)
}

// discriminator tags counter records; derived from the record type's
// name so no two programs' layouts collide.
var discriminator = func() [consts.DiscriminatorLen]byte {
	h := utils.ToID([]byte("account:Counter"))
	var d [consts.DiscriminatorLen]byte
	copy(d[:], h[:consts.DiscriminatorLen])
	return d
}()

// Counter is the sole persistent entity of the program.
type Counter struct {
	Version uint8
	Count   uint64
}

// Marshal returns the record's persisted bytes: discriminator then the
// borsh-encoded body.
func (c *Counter) Marshal() ([]byte, error) {
	body, err := codec.Serialize(c)
	if err != nil {
		return nil, err
	}
	raw := make([]byte, 0, RecordSize)
	raw = append(raw, discriminator[:]...)
	return append(raw, body...), nil
}

// UnmarshalCounter parses a persisted counter record, rejecting foreign
// or malformed data before any field is trusted.
func UnmarshalCounter(raw []byte) (*Counter, error) {
	if len(raw) != RecordSize {
		return nil, ErrInvalidRecord
	}
	if [consts.DiscriminatorLen]byte(raw[:consts.DiscriminatorLen]) != discriminator {
		return nil, ErrInvalidRecord
	}
	c, err := codec.Deserialize[Counter](raw[consts.DiscriminatorLen:])
	if err != nil {
		return nil, ErrInvalidRecord
	}
	if c.Version != RecordVersion {
		return nil, ErrInvalidVersion
	}
	return c, nil
}

// GetCounter reads the counter record stored at [addr].
func GetCounter(ctx context.Context, im state.Immutable, addr codec.Address) (*Counter, error) {
	acct, exists, err := storage.GetAccount(ctx, im, addr)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, runtime.ErrAccountNotFound
	}
	if acct.Owner != ProgramID {
		return nil, runtime.ErrWrongOwner
	}
	return UnmarshalCounter(acct.Data)
}

// SetCounter writes [c] into the record at [addr], preserving the
// account's balance and owner.
func SetCounter(ctx context.Context, mu state.Mutable, addr codec.Address, c *Counter) error {
	acct, exists, err := storage.GetAccount(ctx, mu, addr)
	if err != nil {
		return err
	}
	if !exists {
		return runtime.ErrAccountNotFound
	}
	raw, err := c.Marshal()
	if err != nil {
		return err
	}
	acct.Data = raw
	return storage.SetAccount(ctx, mu, addr, acct)
}

// Register adds the program's instructions to [r].
func Register(r *runtime.Registry) error {
	for _, f := range []func() runtime.Instruction{
		func() runtime.Instruction { return &Initialize{} },
		func() runtime.Instruction { return &Increment{} },
	} {
		if err := r.Register(f); err != nil {
			return err
		}
	}
	return nil
}
