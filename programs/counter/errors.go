// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package counter

import "errors"

var (
	ErrInvalidRecord   = errors.New("not a counter record")
	ErrInvalidVersion  = errors.New("unsupported counter record version")
	ErrCounterOverflow = errors.New("counter overflow")
)
