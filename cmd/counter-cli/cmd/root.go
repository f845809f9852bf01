// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// "counter-cli" drives the counter program against a local store.
package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/countervm/countervm/controller"
)

const (
	fsModeWrite     = 0o600
	defaultDatabase = ".counter-cli"
)

var (
	dbPath      string
	genesisFile string
	keyFile     string

	rootCmd = &cobra.Command{
		Use:        "counter-cli",
		Short:      "Counter program CLI",
		SuggestFor: []string{"counter-cli", "countercli"},
	}
)

func init() {
	cobra.EnablePrefixMatching = true
	rootCmd.AddCommand(
		keyCmd,
		genesisCmd,
		counterCmd,
		balanceCmd,
	)
	rootCmd.PersistentFlags().StringVar(
		&dbPath,
		"database",
		defaultDatabase,
		"path to database (will create if missing)",
	)
	rootCmd.PersistentFlags().StringVar(
		&genesisFile,
		"genesis",
		"",
		"path to genesis file (optional)",
	)

	keyCmd.AddCommand(keyGenerateCmd, keyAddressCmd)
	genesisCmd.AddCommand(genesisCreateCmd)
	counterCmd.AddCommand(counterInitCmd, counterIncrementCmd, counterGetCmd)

	counterInitCmd.Flags().StringVar(&keyFile, "key", "", "path to the funding key file")
	_ = counterInitCmd.MarkFlagRequired("key")
	balanceCmd.Flags().StringVar(&keyFile, "key", "", "path to a key file to resolve the address from")
}

func Execute() error {
	return rootCmd.Execute()
}

// openController opens the local store; every chain-touching command
// goes through it.
func openController() (*controller.Controller, error) {
	log, err := zap.NewDevelopment()
	if err != nil {
		return nil, err
	}
	var genesisBytes []byte
	if genesisFile != "" {
		genesisBytes, err = os.ReadFile(genesisFile)
		if err != nil {
			return nil, err
		}
	}
	return controller.New(log, dbPath, genesisBytes)
}

var ErrInvalidArgs = errors.New("invalid args")
