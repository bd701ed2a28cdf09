// Package relayer implements app.Runner for the relayer process.
package relayer

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apphttp "github.com/chainsafe/burnmint-bridge/pkg/app/http"
	"github.com/chainsafe/burnmint-bridge/pkg/client"
	"github.com/chainsafe/burnmint-bridge/pkg/config"
	"github.com/chainsafe/burnmint-bridge/pkg/db"
	"github.com/chainsafe/burnmint-bridge/pkg/keys"
	"github.com/chainsafe/burnmint-bridge/pkg/pgutil"
	"github.com/chainsafe/burnmint-bridge/pkg/relayer"
)

// claimBatchSize bounds the claims fetched from the validator per poll.
const claimBatchSize = 100

// Server holds the configuration of the relayer process.
type Server struct {
	cfg *config.RelayerConfig
}

// NewServer initializes a new relayer Server.
func NewServer(cfg *config.RelayerConfig) *Server {
	return &Server{cfg: cfg}
}

// Run starts the relayer engine and the operational HTTP server.
// It blocks until an OS shutdown signal is received or a fatal server error occurs.
func (s *Server) Run() error {
	if s.cfg == nil {
		return fmt.Errorf("nil config")
	}
	cfg := s.cfg

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := config.NewLogger(cfg.Logging, "relayer")
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ring, err := s.loadRecipients()
	if err != nil {
		return err
	}
	logger.Info("Starting relayer",
		zap.String("node_url", cfg.NodeURL),
		zap.String("validator_url", cfg.ValidatorURL),
		zap.Int("recipients", len(ring.Addresses())))

	store, closeStore, err := s.openStore(ctx, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	engine := relayer.NewEngine(
		relayer.EngineConfig{PollInterval: cfg.PollInterval, MaxRetries: cfg.MaxRetries},
		relayer.NewValidatorSource(client.New(cfg.ValidatorURL), claimBatchSize),
		relayer.NewNodeDestination(client.New(cfg.NodeURL), ring),
		store,
		ring.Addresses(),
		logger,
	)
	if err := engine.Start(ctx); err != nil {
		return fmt.Errorf("start relayer engine: %w", err)
	}
	defer engine.Stop()

	r := apphttp.NewRouter(logger)
	r.Handle("/metrics", promhttp.Handler())
	relayer.RegisterRoutes(r, store, logger)

	return apphttp.ServeAndWait(ctx, r, logger, cfg.Server, cfg.Shutdown.Timeout)
}

// loadRecipients decrypts the custodial recipient keys. A recipient without its own
// master key uses the relayer-wide one.
func (s *Server) loadRecipients() (*keys.Ring, error) {
	ring := keys.NewRing()
	for i, rc := range s.cfg.Recipients {
		master := rc.MasterKeyBase64
		if master == "" {
			master = s.cfg.MasterKey
		}
		key, err := keys.Load(rc.PrivateKey, rc.EncryptedKey, master)
		if err != nil {
			return nil, fmt.Errorf("recipients[%d]: %w", i, err)
		}
		ring.Add(key)
	}
	return ring, nil
}

func (s *Server) openStore(ctx context.Context, logger *zap.Logger) (relayer.RelayStore, func(), error) {
	if s.cfg.Store != config.StorePostgres {
		logger.Warn("Using the in-memory relay store, relay history is lost on restart")
		return db.NewMemoryStore(), func() {}, nil
	}

	bunDB, err := pgutil.ConnectDB(ctx, &s.cfg.Database, logger)
	if err != nil {
		return nil, nil, err
	}
	return db.NewStore(bunDB), func() { _ = bunDB.Close() }, nil
}
