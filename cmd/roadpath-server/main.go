// Command roadpath-server loads one DIMACS map and answers route queries
// over HTTP until interrupted.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/katalvlaran/roadpath/config"
	"github.com/katalvlaran/roadpath/roadgraph"
	"github.com/katalvlaran/roadpath/server"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	cfg, err := LoadConfig(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(2)
	}
	logger, err := cfg.Logger(os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(2)
	}

	graphOpts, err := cfg.GraphOptions(logger)
	if err != nil {
		logger.Error("bad graph options", "error", err)
		os.Exit(2)
	}
	base := cfg.MapPath(cfg.Map)
	t0 := time.Now()
	g, err := roadgraph.Load(base, graphOpts...)
	if err != nil {
		logger.Error("failed to load map", "map", base, "error", err)
		os.Exit(1)
	}
	logger.Info("map ready", "map", base, "nodes", g.NodeCount(), "arcs", g.EdgeCount(), "elapsed", time.Since(t0))

	srv := server.New(g,
		server.WithLogger(logger),
		server.WithMapName(filepath.Base(base)),
		server.WithAddr(cfg.Addr),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutdown initiated")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Stop(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", "error", err)
			os.Exit(1)
		}
		logger.Info("shutdown complete")
	}
}
