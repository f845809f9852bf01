// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import (
	"github.com/countervm/countervm/codec"
)

// Call names an instruction, its payload, and the accounts it touches,
// in the positional order the instruction's metas declare.
type Call struct {
	Instruction uint8
	Data        []byte
	Accounts    []codec.Address
	Auth        []Auth
}

type signedPayload struct {
	Instruction uint8
	Data        []byte
	Accounts    []codec.Address
}

// SigningMessage returns the canonical bytes every declared signer must
// have signed: the borsh encoding of the instruction id, payload, and
// account list. Auth entries are excluded so signatures cannot depend on
// each other.
func (c *Call) SigningMessage() ([]byte, error) {
	return codec.Serialize(signedPayload{
		Instruction: c.Instruction,
		Data:        c.Data,
		Accounts:    c.Accounts,
	})
}

func (c *Call) authFor(addr codec.Address) Auth {
	for _, a := range c.Auth {
		if a.Actor() == addr {
			return a
		}
	}
	return nil
}

// Sign appends an authorization from [factory] to the call.
func (c *Call) Sign(factory AuthFactory) error {
	msg, err := c.SigningMessage()
	if err != nil {
		return err
	}
	a, err := factory.Sign(msg)
	if err != nil {
		return err
	}
	c.Auth = append(c.Auth, a)
	return nil
}
