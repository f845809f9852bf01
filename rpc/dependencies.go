// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"github.com/countervm/countervm/genesis"
	"github.com/countervm/countervm/runtime"
	"github.com/countervm/countervm/state"
)

type Controller interface {
	Genesis() *genesis.Genesis
	Processor() *runtime.Processor
	ReadState() state.Immutable
}
