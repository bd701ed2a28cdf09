// Package node implements app.Runner for the bridge node process.
package node

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apphttp "github.com/chainsafe/burnmint-bridge/pkg/app/http"
	"github.com/chainsafe/burnmint-bridge/pkg/auth"
	"github.com/chainsafe/burnmint-bridge/pkg/bridge"
	"github.com/chainsafe/burnmint-bridge/pkg/bridge/service"
	"github.com/chainsafe/burnmint-bridge/pkg/config"
	"github.com/chainsafe/burnmint-bridge/pkg/events"
	"github.com/chainsafe/burnmint-bridge/pkg/pgutil"
	"github.com/chainsafe/burnmint-bridge/pkg/store/memstore"
	"github.com/chainsafe/burnmint-bridge/pkg/store/pgstore"
)

// Server holds the configuration of the bridge node process.
type Server struct {
	cfg *config.NodeConfig
}

// NewServer initializes a new bridge node Server.
func NewServer(cfg *config.NodeConfig) *Server {
	return &Server{cfg: cfg}
}

// Run bootstraps the ledgers, serves the node API and blocks until an OS shutdown
// signal is received or the HTTP server fails.
func (s *Server) Run() error {
	if s.cfg == nil {
		return fmt.Errorf("nil config")
	}
	cfg := s.cfg

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := config.NewLogger(cfg.Logging, "bridge-node")
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting bridge node",
		zap.String("store", cfg.Store),
		zap.Int("ledgers", len(cfg.Ledgers)),
		zap.Int("bridges", len(cfg.Bridges)))

	store, closeStore, err := s.openStore(ctx, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	setups, err := cfg.LedgerSetups()
	if err != nil {
		return err
	}
	if err := bridge.Bootstrap(ctx, store, setups, cfg.BridgeConfigs(), cfg.GrantRoles); err != nil {
		return fmt.Errorf("bootstrap ledgers: %w", err)
	}

	locker := bridge.NewLocker()
	opts := []bridge.Option{bridge.WithLocker(locker), bridge.WithLogger(logger)}
	if cfg.NATS.URL != "" {
		conn, err := events.Connect(cfg.NATS.URL, logger)
		if err != nil {
			return err
		}
		defer func() { _ = conn.Drain() }()
		opts = append(opts, bridge.WithPublisher(events.NewPublisher(conn, cfg.NATS.SubjectPrefix, logger)))
		logger.Info("Publishing bridge events", zap.String("subject_prefix", cfg.NATS.SubjectPrefix))
	}

	registry, err := newRegistry(cfg.BridgeConfigs(), store, opts...)
	if err != nil {
		return err
	}

	svc := service.NewLog(service.NewService(registry, bridge.NewLedgerAdmin(store, locker), store), logger)

	var jwtValidator *auth.JWTValidator
	if cfg.Auth.JWKSURL != "" {
		jwtValidator = auth.NewJWTValidator(cfg.Auth.JWKSURL, cfg.Auth.JWTIssuer)
	}
	authenticator := auth.NewAuthenticator(cfg.Auth.SignatureWindow, jwtValidator, logger)

	r := apphttp.NewRouter(logger)
	r.Handle("/metrics", promhttp.Handler())
	service.RegisterRoutes(r, svc, authenticator.Middleware, logger)

	return apphttp.ServeAndWait(ctx, r, logger, cfg.Server, cfg.Shutdown.Timeout)
}

func (s *Server) openStore(ctx context.Context, logger *zap.Logger) (bridge.Store, func(), error) {
	if s.cfg.Store != config.StorePostgres {
		logger.Warn("Using the in-memory store, ledger state is lost on restart")
		return memstore.New(s.cfg.LedgerIDs()...), func() {}, nil
	}

	db, err := pgutil.ConnectDB(ctx, &s.cfg.Database, logger)
	if err != nil {
		return nil, nil, err
	}
	return pgstore.NewStore(db, s.cfg.LedgerIDs()...), func() { _ = db.Close() }, nil
}

func newRegistry(configs []bridge.Config, store bridge.Store, opts ...bridge.Option) (*bridge.Registry, error) {
	instances := make([]*bridge.Instance, 0, len(configs))
	for _, c := range configs {
		inst, err := bridge.NewInstance(c, store, opts...)
		if err != nil {
			return nil, fmt.Errorf("bridge %s: %w", c.ID, err)
		}
		instances = append(instances, inst)
	}
	return bridge.NewRegistry(instances...)
}
