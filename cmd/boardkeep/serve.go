// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BoardKeep Contributors

package main

import (
	"context"
	"log/slog"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/boardkeep/boardkeep/internal/auth"
	authpg "github.com/boardkeep/boardkeep/internal/auth/postgres"
	"github.com/boardkeep/boardkeep/internal/board"
	boardpg "github.com/boardkeep/boardkeep/internal/board/postgres"
	"github.com/boardkeep/boardkeep/internal/config"
	"github.com/boardkeep/boardkeep/internal/httpapi"
	"github.com/boardkeep/boardkeep/internal/logging"
	"github.com/boardkeep/boardkeep/internal/observability"
	"github.com/boardkeep/boardkeep/internal/store"
	"github.com/boardkeep/boardkeep/pkg/errutil"
)

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the BoardKeep API server",
		Long: `Start the BoardKeep API server, serving the JSON API on the
configured address and metrics/health probes on the metrics address.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configFile, cmd.Flags())
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&configFile, "config", "", "config file path (YAML)")
	cmd.Flags().String("addr", config.Default().Addr, "API listen address")
	cmd.Flags().String("metrics-addr", config.Default().MetricsAddr, "metrics/health HTTP address (empty = disabled)")
	cmd.Flags().String("log-format", config.Default().LogFormat, "log format (json or text)")

	return cmd
}

// runServe wires the server from config and blocks until shutdown.
func runServe(ctx context.Context, cfg config.Config) error {
	logging.SetDefault("boardkeep", version, cfg.LogFormat)
	logger := slog.Default()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := store.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	hasher := auth.NewArgon2idHasher()
	tokens, err := auth.NewTokenIssuer(auth.TokenConfig{Secret: cfg.TokenSecret})
	if err != nil {
		return err
	}
	authSvc, err := auth.NewService(authpg.NewUserRepository(pool), hasher, tokens)
	if err != nil {
		return err
	}
	boardSvc, err := board.NewService(boardpg.NewProjectRepository(pool), boardpg.NewTodoRepository(pool))
	if err != nil {
		return err
	}

	var ready atomic.Bool

	var obsSrv *observability.Server
	var obsErrCh <-chan error
	var metrics *observability.Metrics
	if cfg.MetricsAddr != "" {
		obsSrv = observability.NewServer(cfg.MetricsAddr, ready.Load)
		obsErrCh, err = obsSrv.Start()
		if err != nil {
			return oops.Code("SERVE_FAILED").With("operation", "start observability server").Wrap(err)
		}
		metrics = obsSrv.Metrics()
	}

	apiSrv, err := httpapi.NewServer(httpapi.ServerConfig{
		Addr:    cfg.Addr,
		Auth:    authSvc,
		Board:   boardSvc,
		Metrics: metrics,
		Logger:  logger,
	})
	if err != nil {
		return err
	}
	apiErrCh, err := apiSrv.Start()
	if err != nil {
		return oops.Code("SERVE_FAILED").With("operation", "start api server").Wrap(err)
	}

	ready.Store(true)
	logger.Info("boardkeep ready", "addr", apiSrv.Addr())

	var serveErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case serveErr = <-apiErrCh:
		if serveErr != nil {
			errutil.LogError(logger, "api server failed", serveErr)
		}
	case serveErr = <-obsErrCh:
		if serveErr != nil {
			errutil.LogError(logger, "observability server failed", serveErr)
		}
	}

	ready.Store(false)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := apiSrv.Stop(shutdownCtx); err != nil {
		errutil.LogError(logger, "api server shutdown failed", err)
	}
	if obsSrv != nil {
		if err := obsSrv.Stop(shutdownCtx); err != nil {
			errutil.LogError(logger, "observability server shutdown failed", err)
		}
	}

	return serveErr
}
