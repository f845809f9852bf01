// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/countervm/countervm/codec"
	"github.com/countervm/countervm/runtime"
	"github.com/countervm/countervm/state"
	"github.com/countervm/countervm/storage"
)

type CustomAllocation struct {
	Address string `json:"address"`
	Balance uint64 `json:"balance"`
}

type Genesis struct {
	CustomAllocation []*CustomAllocation `json:"customAllocation"`
	Rules            *runtime.Rules      `json:"initialRules"`
}

func Default() *Genesis {
	return &Genesis{
		Rules: runtime.NewDefaultRules(),
	}
}

// New parses [b] as a genesis document. A nil [b] yields the default
// genesis.
func New(b []byte) (*Genesis, error) {
	g := Default()
	if len(b) == 0 {
		return g, nil
	}
	if err := json.Unmarshal(b, g); err != nil {
		return nil, err
	}
	if g.Rules == nil {
		g.Rules = runtime.NewDefaultRules()
	}
	return g, nil
}

// Load credits every custom allocation, creating system-owned accounts.
// It is run once against a fresh store.
func (g *Genesis) Load(ctx context.Context, mu state.Mutable) error {
	for _, alloc := range g.CustomAllocation {
		addr, err := codec.StringToAddress(alloc.Address)
		if err != nil {
			return fmt.Errorf("%w: %s", err, alloc.Address)
		}
		if _, err := storage.AddLamports(ctx, mu, addr, alloc.Balance); err != nil {
			return fmt.Errorf("%w: addr=%s, bal=%d", err, alloc.Address, alloc.Balance)
		}
	}
	return nil
}
