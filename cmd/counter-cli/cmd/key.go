// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/countervm/countervm/auth"
	"github.com/countervm/countervm/codec"
	"github.com/countervm/countervm/crypto/ed25519"
	"github.com/countervm/countervm/utils"
)

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage funding keys",
	RunE: func(*cobra.Command, []string) error {
		return ErrInvalidArgs
	},
}

var keyGenerateCmd = &cobra.Command{
	Use:   "generate [path]",
	Short: "Generate a funding key and write it to [path]",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		priv, err := ed25519.GeneratePrivateKey()
		if err != nil {
			return err
		}
		if err := os.WriteFile(args[0], []byte(codec.ToHex(priv[:])), fsModeWrite); err != nil {
			return err
		}
		utils.Outf("{{green}}created key:{{/}} %s\n", args[0])
		utils.Outf("{{yellow}}address:{{/}} %s\n", auth.NewED25519Address(priv.PublicKey()))
		return nil
	},
}

var keyAddressCmd = &cobra.Command{
	Use:   "address [path]",
	Short: "Print the address of the key at [path]",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		priv, err := loadKey(args[0])
		if err != nil {
			return err
		}
		utils.Outf("{{yellow}}address:{{/}} %s\n", auth.NewED25519Address(priv.PublicKey()))
		return nil
	},
}

func loadKey(path string) (ed25519.PrivateKey, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return ed25519.EmptyPrivateKey, err
	}
	b, err := codec.LoadHex(string(raw), ed25519.PrivateKeyLen)
	if err != nil {
		return ed25519.EmptyPrivateKey, err
	}
	return ed25519.PrivateKey(b), nil
}
