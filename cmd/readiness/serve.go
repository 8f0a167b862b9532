package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonathan/career-readiness/internal/config"
	"github.com/jonathan/career-readiness/internal/controller"
	"github.com/jonathan/career-readiness/internal/server"
	"github.com/jonathan/career-readiness/internal/server/ratelimit"
	"github.com/jonathan/career-readiness/internal/session"
	"github.com/jonathan/career-readiness/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the dashboard, roadmap and mock interview endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides server.port)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, logger, err := loadRuntime()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if servePort != 0 {
		cfg.Server.Port = servePort
	}
	if cfg.Auth.GeneratedSecret {
		logger.Warn("auth.jwt_secret not set, using a random secret; tokens will not survive a restart")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kv, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	svc, client, err := newPipelines(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	registry := controller.NewRegistry(func(sessionID string) *controller.Controller {
		identity := session.New(
			store.Scoped(kv, store.SessionPrefix(sessionID)),
			session.WithSignInLatency(cfg.Auth.SignInLatency),
			session.WithLogger(logger),
		)
		return controller.New(identity, svc, controller.WithLogger(logger.With(zap.String("session_id", sessionID))))
	}, cfg.Session.IdleTTL, logger)
	registry.OnExpire(func(sessionID string) {
		logger.Debug("session expired", zap.String("session_id", sessionID))
	})
	if cfg.Session.SweepInterval > 0 {
		go registry.Run(ctx, cfg.Session.SweepInterval)
	}

	srv, err := server.New(server.Config{
		Port: cfg.Server.Port,
		JWT:  cfg.JWT(),
		RateLimit: ratelimit.NewConfig(
			cfg.RateLimit.Enabled,
			cfg.RateLimit.DefaultLimit,
			cfg.RateLimit.DefaultWindow,
			cfg.RateLimit.Whitelist,
		),
		Registry: registry,
		Reports:  svc,
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	logger.Info("configuration loaded",
		zap.String("llm_provider", cfg.LLM.Provider),
		zap.String("store_backend", cfg.Store.Backend),
		zap.Bool("rate_limit", cfg.RateLimit.Enabled),
	)
	return srv.Start(ctx)
}

// openStore connects the configured key-value backend.
func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (store.KV, func(), error) {
	switch cfg.Store.Backend {
	case config.StoreRedis:
		kv := store.NewRedis(store.RedisOptions{Addr: cfg.Store.RedisAddr, TTL: cfg.Store.RedisTTL})
		if err := kv.Ping(ctx); err != nil {
			_ = kv.Close()
			return nil, nil, err
		}
		logger.Info("using redis store", zap.String("addr", cfg.Store.RedisAddr))
		return kv, func() { _ = kv.Close() }, nil
	case config.StorePostgres:
		kv, err := store.ConnectPostgres(ctx, cfg.Store.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using postgres store")
		return kv, kv.Close, nil
	default:
		logger.Info("using in-memory store")
		return store.NewMemory(), func() {}, nil
	}
}
