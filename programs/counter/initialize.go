// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package counter

import (
	"context"

	"github.com/countervm/countervm/runtime"
)

var _ runtime.Instruction = (*Initialize)(nil)

// Initialize creates a counter record and sets its count to 0. The
// record slot must not exist yet; the signing user funds its allocation.
type Initialize struct{}

func (*Initialize) GetTypeID() uint8 {
	return InitializeID
}

func (*Initialize) Accounts() []runtime.AccountMeta {
	return []runtime.AccountMeta{
		{
			Name:  "counter",
			Role:  runtime.Init,
			Owner: ProgramID,
			Space: RecordSize,
			Payer: "user",
		},
		{
			Name: "user",
			Role: runtime.Writable | runtime.Signer,
		},
	}
}

func (*Initialize) Execute(ctx context.Context, ectx *runtime.ExecContext) error {
	record := &Counter{Version: RecordVersion, Count: 0}
	if err := SetCounter(ctx, ectx.State(), ectx.Account(0), record); err != nil {
		return err
	}
	ectx.Msgf("Counter initialized! Current count: %d", record.Count)
	return nil
}
