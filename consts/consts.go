// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consts

const (
	IDLen            = 32
	ByteLen          = 1
	Uint16Len        = 2
	Uint64Len        = 8
	DiscriminatorLen = 8
	MaxUint          = ^uint(0)
	MaxInt           = int(MaxUint >> 1)
	MaxUint64        = ^uint64(0)
)
