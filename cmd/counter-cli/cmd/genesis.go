// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/countervm/countervm/codec"
	"github.com/countervm/countervm/genesis"
	"github.com/countervm/countervm/utils"
)

var genesisAllocations []string

var genesisCmd = &cobra.Command{
	Use:   "genesis",
	Short: "Manage genesis files",
	RunE: func(*cobra.Command, []string) error {
		return ErrInvalidArgs
	},
}

var genesisCreateCmd = &cobra.Command{
	Use:   "create [path]",
	Short: "Write a genesis file with the given allocations",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		g := genesis.Default()
		for _, alloc := range genesisAllocations {
			addrStr, balStr, found := strings.Cut(alloc, "=")
			if !found {
				return ErrInvalidArgs
			}
			if _, err := codec.StringToAddress(addrStr); err != nil {
				return err
			}
			bal, err := strconv.ParseUint(balStr, 10, 64)
			if err != nil {
				return err
			}
			g.CustomAllocation = append(g.CustomAllocation, &genesis.CustomAllocation{
				Address: addrStr,
				Balance: bal,
			})
		}
		b, err := json.MarshalIndent(g, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(args[0], b, fsModeWrite); err != nil {
			return err
		}
		utils.Outf("{{green}}created genesis:{{/}} %s\n", args[0])
		return nil
	},
}

func init() {
	genesisCreateCmd.Flags().StringSliceVar(
		&genesisAllocations,
		"allocation",
		nil,
		"address=balance pair to fund (repeatable)",
	)
}
