package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/quay/ci-metrics-dashboard/internal/artifacts"
	"github.com/quay/ci-metrics-dashboard/internal/config"
	"github.com/quay/ci-metrics-dashboard/internal/metricsapi"
	"github.com/quay/ci-metrics-dashboard/internal/server"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		logger.Error("load config", "error", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := metricsapi.New(metricsapi.Config{
		BaseURL: cfg.MetricsURL,
		Timeout: cfg.Timeout,
	})
	logger.Info("metrics api", "url", client.BaseURL(), "builds", cfg.Builds)

	var signer *artifacts.Signer
	if cfg.Artifacts.Enabled {
		signer, err = artifacts.New(ctx, artifacts.Config{
			Endpoint:  cfg.Artifacts.Endpoint,
			Region:    cfg.Artifacts.Region,
			AccessKey: cfg.Artifacts.AccessKey,
			SecretKey: cfg.Artifacts.SecretKey,
			Expiry:    cfg.Artifacts.Expiry,
		}, logger.With("component", "artifacts"))
		if err != nil {
			logger.Error("create artifact signer", "error", err)
			os.Exit(1)
		}
		logger.Info("artifact links enabled", "endpoint", cfg.Artifacts.Endpoint, "region", cfg.Artifacts.Region, "expiry", cfg.Artifacts.Expiry)
	}

	srv := server.New(client, signer, server.Options{
		Addr:       cfg.Addr,
		Builds:     cfg.Builds,
		MetricsURL: client.BaseURL(),
	}, logger.With("component", "http"))
	if err := srv.Run(ctx); err != nil {
		logger.Error("server", "error", err)
		os.Exit(1)
	}
}
