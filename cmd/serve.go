package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"keyVaultAPI/internal/auth"
	"keyVaultAPI/internal/backends"
	"keyVaultAPI/internal/config"
	"keyVaultAPI/internal/handlers"
	"keyVaultAPI/internal/logger"
	"keyVaultAPI/internal/metrics"
	"keyVaultAPI/internal/server"
	"keyVaultAPI/internal/vault"
)

func newServeCmd(settingsFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the secrets API until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*settingsFile)
			if err != nil {
				return err
			}

			log, err := logger.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
			if err != nil {
				return err
			}
			slog.SetDefault(log)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			store, err := backends.New(ctx, cfg)
			if err != nil {
				return err
			}

			deps, err := buildDependencies(cfg, store, log)
			if err != nil {
				return err
			}

			log.Info("configuration loaded", "config", cfg.String())
			return server.Run(ctx, server.New(cfg.Addr(), server.NewRouter(deps)), log)
		},
	}
}

// buildDependencies assembles everything the router needs from cfg and an already created store.
func buildDependencies(cfg *config.Config, store vault.Store, log *slog.Logger) (server.Dependencies, error) {
	level, err := auth.ParseLevel(cfg.AuthLevel)
	if err != nil {
		return server.Dependencies{}, err
	}

	policy := auth.Policy{Level: level, Log: log}
	switch level {
	case auth.LevelFunction:
		policy.Key, err = auth.NewFunctionKey(cfg.FunctionKey, cfg.FunctionKeyHash)
		if err != nil {
			return server.Dependencies{}, fmt.Errorf("function key: %w", err)
		}
	case auth.LevelBearer:
		policy.JWT = auth.NewJWTManager(cfg.JWTSecret, time.Hour)
	}

	deps := server.Dependencies{
		Auth:    policy,
		Prefix:  cfg.RoutePrefix,
		Backend: store.Backend(),
		Log:     log,
	}

	var observer vault.Observer
	if cfg.MetricsEnabled {
		deps.Metrics = metrics.New()
		observer = deps.Metrics
	}

	if cfg.OpenAPIAuthKey != "" {
		deps.DocumentKey, err = auth.NewFunctionKey(cfg.OpenAPIAuthKey, "")
		if err != nil {
			return server.Dependencies{}, fmt.Errorf("document key: %w", err)
		}
	}

	deps.Secrets = handlers.NewSecretsHandler(vault.WithObserver(store, observer), log)
	docs := handlers.NewDocsHandler(newDocument(cfg), cfg.RoutePrefix, cfg.OpenAPISpecVersion, cfg.OpenAPIAuthKey, log)
	docs.TrustForwarded = cfg.TrustForwardedHeaders
	deps.Docs = docs
	return deps, nil
}
