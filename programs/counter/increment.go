// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package counter

import (
	"context"
	"math"

	"github.com/countervm/countervm/runtime"
)

var _ runtime.Instruction = (*Increment)(nil)

// Increment adds 1 to an existing counter record. It declares no
// signer: any caller able to name the record may increment it.
type Increment struct{}

func (*Increment) GetTypeID() uint8 {
	return IncrementID
}

func (*Increment) Accounts() []runtime.AccountMeta {
	return []runtime.AccountMeta{
		{
			Name:  "counter",
			Role:  runtime.Writable,
			Owner: ProgramID,
		},
	}
}

func (*Increment) Execute(ctx context.Context, ectx *runtime.ExecContext) error {
	record, err := GetCounter(ctx, ectx.State(), ectx.Account(0))
	if err != nil {
		return err
	}
	if record.Count == math.MaxUint64 {
		return ErrCounterOverflow
	}
	record.Count++
	if err := SetCounter(ctx, ectx.State(), ectx.Account(0), record); err != nil {
		return err
	}
	ectx.Msgf("Counter incremented! Current count: %d", record.Count)
	return nil
}
