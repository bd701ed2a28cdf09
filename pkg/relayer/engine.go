// Package relayer submits signed claims to their destination bridge on behalf of
// custodial recipients.
package relayer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/chainsafe/burnmint-bridge/internal/metrics"
	"github.com/chainsafe/burnmint-bridge/pkg/db"
)

// EngineConfig tunes the relayer engine
type EngineConfig struct {
	PollInterval      time.Duration
	MaxRetries        int
	ReconcileInterval time.Duration
}

// Engine runs one processor per custodial recipient
type Engine struct {
	config      EngineConfig
	source      Source
	destination Destination
	store       RelayStore
	recipients  []common.Address
	logger      *zap.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewEngine creates a new relayer engine
func NewEngine(
	cfg EngineConfig,
	source Source,
	destination Destination,
	store RelayStore,
	recipients []common.Address,
	logger *zap.Logger,
) *Engine {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 5 * time.Second
	}
	if cfg.ReconcileInterval <= 0 {
		cfg.ReconcileInterval = time.Minute
	}
	return &Engine{
		config:      cfg,
		source:      source,
		destination: destination,
		store:       store,
		recipients:  recipients,
		logger:      logger,
	}
}

// Start starts the relayer engine
func (e *Engine) Start(ctx context.Context) error {
	if len(e.recipients) == 0 {
		return fmt.Errorf("no recipients to relay for")
	}
	e.logger.Info("Starting relayer engine", zap.Int("recipients", len(e.recipients)))

	ctx, e.cancel = context.WithCancel(ctx)
	for _, recipient := range e.recipients {
		p := NewProcessor(recipient, e.source, e.destination, e.store, e.config.MaxRetries, e.logger)
		e.wg.Add(1)
		go func() {
			defer e.wg.Done()
			_ = p.Start(ctx, e.config.PollInterval)
		}()
	}

	e.wg.Add(1)
	go e.reconcile(ctx)

	e.logger.Info("Relayer engine started")
	return nil
}

// Stop stops the relayer engine and waits for the processors to return
func (e *Engine) Stop() {
	e.logger.Info("Stopping relayer engine")
	if e.cancel != nil {
		e.cancel()
	}
	e.wg.Wait()
	e.logger.Info("Relayer engine stopped")
}

// reconcile periodically reports the relays still in flight
func (e *Engine) reconcile(ctx context.Context) {
	defer e.wg.Done()

	ticker := time.NewTicker(e.config.ReconcileInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := e.runReconciliation(ctx); err != nil && ctx.Err() == nil {
				e.logger.Error("Reconciliation failed", zap.Error(err))
			}
		}
	}
}

// runReconciliation publishes the pending relay count per recipient
func (e *Engine) runReconciliation(ctx context.Context) error {
	pending, err := e.store.ListRelays(ctx, db.RelayStatusPending, 0)
	if err != nil {
		return fmt.Errorf("failed to get pending relays: %w", err)
	}

	counts := make(map[string]int, len(e.recipients))
	for _, r := range e.recipients {
		counts[r.Hex()] = 0
	}
	for _, r := range pending {
		counts[common.HexToAddress(r.Recipient).Hex()]++
	}
	for recipient, n := range counts {
		metrics.PendingRelays.WithLabelValues(recipient).Set(float64(n))
	}

	e.logger.Debug("Reconciliation summary", zap.Int("pending", len(pending)))
	return nil
}
