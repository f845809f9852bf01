// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// "counterd" serves the counter program over JSON-RPC against an
// on-disk store.
package main

import (
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/countervm/countervm/controller"
	"github.com/countervm/countervm/rpc"
	"github.com/countervm/countervm/server"
	"github.com/countervm/countervm/utils"
)

var (
	addr           string
	dbPath         string
	genesisFile    string
	allowedOrigins []string

	rootCmd = &cobra.Command{
		Use:   "counterd",
		Short: "Counter program JSON-RPC daemon",
		RunE:  runE,
	}
)

func init() {
	rootCmd.Flags().StringVar(&addr, "addr", "127.0.0.1:9650", "listen address")
	rootCmd.Flags().StringVar(&dbPath, "database", ".counterd", "path to database (will create if missing)")
	rootCmd.Flags().StringVar(&genesisFile, "genesis", "", "path to genesis file (optional)")
	rootCmd.Flags().StringSliceVar(&allowedOrigins, "allowed-origins", []string{"*"}, "allowed CORS origins")
}

func runE(*cobra.Command, []string) error {
	log, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer func() {
		_ = log.Sync()
	}()

	var genesisBytes []byte
	if genesisFile != "" {
		genesisBytes, err = os.ReadFile(genesisFile)
		if err != nil {
			return err
		}
	}
	c, err := controller.New(log, dbPath, genesisBytes)
	if err != nil {
		return err
	}
	defer func() {
		_ = c.Close()
	}()

	handler, err := rpc.NewJSONRPCHandler("counter", rpc.NewJSONRPCServer(c))
	if err != nil {
		return err
	}
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	srv := server.New(
		log,
		listener,
		server.HTTPConfig{
			ReadTimeout:       30 * time.Second,
			ReadHeaderTimeout: 30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
		allowedOrigins,
		10*time.Second,
	)
	srv.AddRoute(handler, rpc.Endpoint)
	srv.AddRoute(promhttp.HandlerFor(c.Gatherers(), promhttp.HandlerOpts{}), "/metrics")

	errs := make(chan error, 1)
	go func() {
		errs <- srv.Dispatch()
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errs:
		return err
	case sig := <-sigs:
		log.Info("shutting down", zap.Stringer("signal", sig))
		return srv.Shutdown()
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		utils.Outf("{{red}}counterd exited with error:{{/}} %+v\n", err)
		os.Exit(1)
	}
	os.Exit(0)
}
