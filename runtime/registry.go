// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import (
	"github.com/near/borsh-go"
)

// Registry maps instruction type ids to constructors.
type Registry struct {
	instructions map[uint8]func() Instruction
}

func NewRegistry() *Registry {
	return &Registry{
		instructions: make(map[uint8]func() Instruction),
	}
}

// Register adds [f]'s instruction under its type id. Re-registering an id
// fails rather than remapping silently.
func (r *Registry) Register(f func() Instruction) error {
	typeID := f().GetTypeID()
	if _, ok := r.instructions[typeID]; ok {
		return ErrDuplicateInstruction
	}
	r.instructions[typeID] = f
	return nil
}

// New returns an instruction of type [typeID] with [data] decoded into it.
func (r *Registry) New(typeID uint8, data []byte) (Instruction, error) {
	f, ok := r.instructions[typeID]
	if !ok {
		return nil, ErrUnknownInstruction
	}
	inst := f()
	if len(data) > 0 {
		if err := borsh.Deserialize(inst, data); err != nil {
			return nil, err
		}
	}
	return inst, nil
}
