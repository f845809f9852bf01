// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import (
	"context"

	"github.com/countervm/countervm/codec"
)

const (
	// ReadOnly accounts must exist and may not be mutated.
	ReadOnly Role = 0
	// Writable accounts must exist and may be mutated in place.
	Writable Role = 1
	// Signer accounts must supply a valid authorization for the call.
	Signer Role = 1 << 1
	// Init accounts must not exist yet; the runtime allocates them before
	// the handler runs, charging the declared payer.
	Init Role = 1<<2 | Writable
)

// Role is the closed set of constraint kinds a handler can declare on an
// account. The pre-dispatch validation stage enforces them before any
// handler logic runs.
type Role uint8

// Has returns true if [r] includes all roles contained in require.
func (r Role) Has(require Role) bool {
	return require&^r == 0
}

// AccountMeta declares the constraints on one positional account of an
// instruction.
type AccountMeta struct {
	Name string
	Role Role

	// Owner is the program that must own the account (or will own it, for
	// Init). The empty address disables the check.
	Owner codec.Address

	// Space is the record size to allocate for Init accounts.
	Space uint64

	// Payer names the meta whose account funds allocation of an Init
	// account.
	Payer string
}

// Instruction is an externally invocable operation. Implementations
// declare their account constraints and mutate state only through the
// transactional view in [ExecContext].
type Instruction interface {
	GetTypeID() uint8
	Accounts() []AccountMeta
	Execute(ctx context.Context, ectx *ExecContext) error
}

// Auth is an authorization proof attached to a call.
type Auth interface {
	Actor() codec.Address
	Verify(ctx context.Context, msg []byte) error
}

// AuthFactory signs call messages on behalf of one identity.
type AuthFactory interface {
	Sign(msg []byte) (Auth, error)
	Address() codec.Address
}
