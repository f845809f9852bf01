// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

// Note: IDs are assigned explicitly to avoid accidental remapping.
const (
	ED25519ID uint8 = 0
)
