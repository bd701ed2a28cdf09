// Package validator implements app.Runner for the validator process.
package validator

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	apphttp "github.com/chainsafe/burnmint-bridge/pkg/app/http"
	"github.com/chainsafe/burnmint-bridge/pkg/bridge"
	"github.com/chainsafe/burnmint-bridge/pkg/client"
	"github.com/chainsafe/burnmint-bridge/pkg/config"
	"github.com/chainsafe/burnmint-bridge/pkg/keys"
	"github.com/chainsafe/burnmint-bridge/pkg/validator"
)

// Server holds the configuration of the validator process.
type Server struct {
	cfg *config.ValidatorConfig
}

// NewServer initializes a new validator Server.
func NewServer(cfg *config.ValidatorConfig) *Server {
	return &Server{cfg: cfg}
}

// Run watches the configured routes and serves the signed claims until an OS shutdown
// signal is received or one of them fails.
func (s *Server) Run() error {
	if s.cfg == nil {
		return fmt.Errorf("nil config")
	}
	cfg := s.cfg

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := config.NewLogger(cfg.Logging, "validator")
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	key, err := keys.Load(cfg.Key.PrivateKey, cfg.Key.EncryptedKey, cfg.Key.MasterKeyBase64)
	if err != nil {
		return fmt.Errorf("load validator key: %w", err)
	}
	signer := bridge.NewSigner(key)

	logger.Info("Starting validator",
		zap.String("address", signer.Address().Hex()),
		zap.String("node_url", cfg.NodeURL),
		zap.Int("routes", len(cfg.Routes)))

	store, closeStore, err := s.openClaimStore(ctx, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	routes := make([]validator.Route, 0, len(cfg.Routes))
	for _, r := range cfg.Routes {
		routes = append(routes, validator.Route{Source: r.Source, Destination: r.Destination})
	}
	v := validator.New(client.New(cfg.NodeURL), store, signer, routes,
		validator.Options{PollInterval: cfg.PollInterval, BatchSize: cfg.BatchSize}, logger)

	r := apphttp.NewRouter(logger)
	r.Handle("/metrics", promhttp.Handler())
	validator.RegisterRoutes(r, store, v.Address(), logger)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return v.Run(ctx) })
	g.Go(func() error { return apphttp.ServeAndWait(ctx, r, logger, cfg.Server, cfg.Shutdown.Timeout) })
	return g.Wait()
}

func (s *Server) openClaimStore(ctx context.Context, logger *zap.Logger) (validator.ClaimStore, func(), error) {
	if s.cfg.ClaimStore != config.StoreRedis {
		logger.Warn("Using the in-memory claim store, signed claims are lost on restart")
		return validator.NewMemoryStore(), func() {}, nil
	}

	pool := validator.NewRedisPool(s.cfg.Redis)
	store := validator.NewRedisStore(pool, s.cfg.Redis.KeyPrefix)
	if err := store.Ping(ctx); err != nil {
		_ = pool.Close()
		return nil, nil, fmt.Errorf("connect redis: %w", err)
	}
	logger.Info("Connected to redis",
		zap.String("address", s.cfg.Redis.Address),
		zap.String("key_prefix", s.cfg.Redis.KeyPrefix))
	return store, func() { _ = pool.Close() }, nil
}
