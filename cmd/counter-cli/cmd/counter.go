// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"crypto/rand"

	"github.com/spf13/cobra"

	"github.com/countervm/countervm/auth"
	"github.com/countervm/countervm/codec"
	"github.com/countervm/countervm/consts"
	"github.com/countervm/countervm/programs/counter"
	"github.com/countervm/countervm/runtime"
	"github.com/countervm/countervm/storage"
	"github.com/countervm/countervm/utils"
)

var counterCmd = &cobra.Command{
	Use:   "counter",
	Short: "Initialize, increment, and read counters",
	RunE: func(*cobra.Command, []string) error {
		return ErrInvalidArgs
	},
}

var counterInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a counter record funded by --key",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		priv, err := loadKey(keyFile)
		if err != nil {
			return err
		}
		c, err := openController()
		if err != nil {
			return err
		}
		defer func() {
			_ = c.Close()
		}()

		var seed [consts.IDLen]byte
		if _, err := rand.Read(seed[:]); err != nil {
			return err
		}
		counterAddr := counter.NewRecordAddress(seed)

		factory := auth.NewED25519Factory(priv)
		call := &runtime.Call{
			Instruction: counter.InitializeID,
			Accounts:    []codec.Address{counterAddr, factory.Address()},
		}
		if err := call.Sign(factory); err != nil {
			return err
		}
		res, err := c.Processor().Execute(ctx, call)
		if err != nil {
			return err
		}
		printLogs(res)
		utils.Outf("{{yellow}}counter:{{/}} %s\n", counterAddr)
		return nil
	},
}

var counterIncrementCmd = &cobra.Command{
	Use:   "increment [address]",
	Short: "Add 1 to the counter at [address]",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		counterAddr, err := codec.StringToAddress(args[0])
		if err != nil {
			return err
		}
		c, err := openController()
		if err != nil {
			return err
		}
		defer func() {
			_ = c.Close()
		}()

		call := &runtime.Call{
			Instruction: counter.IncrementID,
			Accounts:    []codec.Address{counterAddr},
		}
		res, err := c.Processor().Execute(cmd.Context(), call)
		if err != nil {
			return err
		}
		printLogs(res)
		return nil
	},
}

var counterGetCmd = &cobra.Command{
	Use:   "get [address]",
	Short: "Read the counter at [address]",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		counterAddr, err := codec.StringToAddress(args[0])
		if err != nil {
			return err
		}
		c, err := openController()
		if err != nil {
			return err
		}
		defer func() {
			_ = c.Close()
		}()

		record, err := counter.GetCounter(cmd.Context(), c.ReadState(), counterAddr)
		if err != nil {
			return err
		}
		utils.Outf("{{yellow}}count:{{/}} %d\n", record.Count)
		return nil
	},
}

var balanceCmd = &cobra.Command{
	Use:   "balance [address]",
	Short: "Read the lamport balance of an address (or of --key)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var addr codec.Address
		switch {
		case len(args) == 1:
			a, err := codec.StringToAddress(args[0])
			if err != nil {
				return err
			}
			addr = a
		case keyFile != "":
			priv, err := loadKey(keyFile)
			if err != nil {
				return err
			}
			addr = auth.NewED25519Address(priv.PublicKey())
		default:
			return ErrInvalidArgs
		}
		c, err := openController()
		if err != nil {
			return err
		}
		defer func() {
			_ = c.Close()
		}()

		bal, err := storage.GetBalance(cmd.Context(), c.ReadState(), addr)
		if err != nil {
			return err
		}
		utils.Outf("{{yellow}}balance:{{/}} %d\n", bal)
		return nil
	},
}

func printLogs(res *runtime.Result) {
	for _, l := range res.Logs {
		utils.Outf("{{cyan}}log:{{/}} %s\n", l)
	}
}
