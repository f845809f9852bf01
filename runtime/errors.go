// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import "errors"

var (
	ErrUnknownInstruction   = errors.New("unknown instruction")
	ErrDuplicateInstruction = errors.New("duplicate instruction")
	ErrAccountCountMismatch = errors.New("wrong number of accounts")
	ErrInvalidAccountMeta   = errors.New("invalid account meta")

	ErrMissingSignature   = errors.New("missing signature")
	ErrAlreadyInitialized = errors.New("account already initialized")
	ErrAccountNotFound    = errors.New("account not found")
	ErrWrongOwner         = errors.New("account owner mismatch")
)
