// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

// Rules are the host parameters applied to every call.
type Rules struct {
	// LamportsPerByte prices record allocation. The fee for an Init
	// account is its declared space times this rate and is moved from the
	// payer into the new record's balance.
	LamportsPerByte uint64 `json:"lamportsPerByte"`
}

func NewDefaultRules() *Rules {
	return &Rules{
		LamportsPerByte: 10,
	}
}

// AllocationFee returns the lamports charged to allocate [space] bytes.
func (r *Rules) AllocationFee(space uint64) uint64 {
	return space * r.LamportsPerByte
}
