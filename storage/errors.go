// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import "errors"

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrLamportOverflow   = errors.New("lamport balance overflow")
)
