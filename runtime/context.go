// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import (
	"fmt"

	"github.com/countervm/countervm/codec"
	"github.com/countervm/countervm/state"
)

// ExecContext is what a handler sees: the validated accounts of its call
// and a transactional view of state scoped to them.
type ExecContext struct {
	mu       state.Mutable
	accounts []codec.Address
	logs     []string
}

func newExecContext(mu state.Mutable, accounts []codec.Address) *ExecContext {
	return &ExecContext{mu: mu, accounts: accounts}
}

// State returns the call's transactional state view.
func (e *ExecContext) State() state.Mutable {
	return e.mu
}

// Account returns the address bound to the instruction's i-th meta.
func (e *ExecContext) Account(i int) codec.Address {
	return e.accounts[i]
}

// Msgf appends a formatted line to the call's transaction log.
func (e *ExecContext) Msgf(format string, args ...interface{}) {
	e.logs = append(e.logs, fmt.Sprintf(format, args...))
}

// Logs returns the transaction log accumulated so far.
func (e *ExecContext) Logs() []string {
	return e.logs
}

// Result reports a successful call. Logs are the handler's emitted
// transaction log lines in order.
type Result struct {
	Logs []string `json:"logs"`
}
