package relayer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/chainsafe/burnmint-bridge/internal/metrics"
	"github.com/chainsafe/burnmint-bridge/pkg/bridge"
	"github.com/chainsafe/burnmint-bridge/pkg/db"
)

// Source defines the interface for fetching claims waiting to be redeemed
type Source interface {
	// PendingClaims returns the signed claims of recipient not yet redeemed
	PendingClaims(ctx context.Context, recipient common.Address) ([]bridge.SignedClaim, error)
}

// Destination defines the interface for redeeming claims on the destination bridge
type Destination interface {
	// SubmitRedeem submits claim on behalf of its recipient
	SubmitRedeem(ctx context.Context, claim *bridge.SignedClaim) (*bridge.RedeemEvent, error)
}

// RelayStore defines the interface for relay record persistence
type RelayStore interface {
	CreateRelay(ctx context.Context, r *db.Relay) error
	GetRelay(ctx context.Context, id string) (*db.Relay, error)
	RecordAttempt(ctx context.Context, id string, a db.Attempt) error
	ListRelays(ctx context.Context, status db.RelayStatus, limit int) ([]*db.Relay, error)
}

// Relay outcomes reported in metrics
const (
	outcomeCompleted       = "completed"
	outcomeAlreadyRedeemed = "already_redeemed"
	outcomeRejected        = "rejected"
	outcomeRetry           = "retry"
	outcomeExhausted       = "exhausted"
)

// permanent lists redeem errors that no retry can fix
var permanent = []error{
	bridge.ErrInvalidSignature,
	bridge.ErrNotRecipient,
	bridge.ErrZeroAmount,
	bridge.ErrAmountOverflow,
	bridge.ErrUnknownBridge,
}

// Processor relays the claims of one custodial recipient from Source to Destination
type Processor struct {
	recipient   common.Address
	source      Source
	destination Destination
	store       RelayStore
	maxRetries  int
	logger      *zap.Logger
}

// NewProcessor creates a new relay processor
func NewProcessor(recipient common.Address, source Source, destination Destination, store RelayStore, maxRetries int, logger *zap.Logger) *Processor {
	return &Processor{
		recipient:   recipient,
		source:      source,
		destination: destination,
		store:       store,
		maxRetries:  maxRetries,
		logger:      logger.With(zap.String("recipient", recipient.Hex())),
	}
}

// Start polls the source every interval until ctx is cancelled
func (p *Processor) Start(ctx context.Context, interval time.Duration) error {
	p.logger.Info("Starting processor", zap.Duration("interval", interval))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := p.ProcessOnce(ctx); err != nil && ctx.Err() == nil {
			p.logger.Warn("Relay pass failed", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// ProcessOnce relays every pending claim once and returns how many were completed
func (p *Processor) ProcessOnce(ctx context.Context) (int, error) {
	claims, err := p.source.PendingClaims(ctx, p.recipient)
	if err != nil {
		metrics.ErrorsTotal.WithLabelValues("relayer", "source").Inc()
		return 0, fmt.Errorf("failed to fetch claims: %w", err)
	}

	completed := 0
	var errs []error
	for i := range claims {
		done, err := p.processClaim(ctx, &claims[i])
		if err != nil {
			p.logger.Error("Failed to relay claim",
				zap.String("claim", claims[i].Key()),
				zap.Error(err))
			metrics.ErrorsTotal.WithLabelValues("relayer", "processing").Inc()
			errs = append(errs, err)
		}
		if done {
			completed++
		}
	}
	return completed, errors.Join(errs...)
}

// processClaim submits one claim unless its relay already finished
func (p *Processor) processClaim(ctx context.Context, claim *bridge.SignedClaim) (bool, error) {
	id := claim.Key()
	rec, err := p.store.GetRelay(ctx, id)
	switch {
	case errors.Is(err, db.ErrRelayNotFound):
		rec = &db.Relay{
			ID:                id,
			SourceBridge:      claim.SourceBridge,
			DestinationBridge: claim.DestinationBridge,
			Sender:            claim.Sender,
			Recipient:         claim.Recipient,
			Amount:            claim.Amount,
			Nonce:             claim.Nonce,
			Status:            db.RelayStatusPending,
		}
		if err := p.store.CreateRelay(ctx, rec); err != nil {
			return false, err
		}
	case err != nil:
		return false, err
	}

	if rec.Status != db.RelayStatusPending {
		p.logger.Debug("Claim already relayed", zap.String("claim", id), zap.String("status", string(rec.Status)))
		return false, nil
	}

	ev, submitErr := p.destination.SubmitRedeem(ctx, claim)
	attempt, outcome := p.classify(submitErr, rec.Attempts+1)
	if ev != nil {
		eventID := ev.ID.String()
		attempt.RedeemEventID = &eventID
	}
	if err := p.store.RecordAttempt(ctx, id, attempt); err != nil {
		return false, fmt.Errorf("failed to record attempt: %w", err)
	}
	metrics.RelayedTotal.WithLabelValues(claim.DestinationBridge, outcome).Inc()

	fields := []zap.Field{
		zap.String("claim", id),
		zap.String("amount", claim.Amount),
		zap.String("outcome", outcome),
		zap.Int("attempt", rec.Attempts+1),
	}
	switch attempt.Status {
	case db.RelayStatusCompleted:
		p.logger.Info("Claim relayed", fields...)
		return true, nil
	case db.RelayStatusFailed:
		p.logger.Error("Claim relay abandoned", append(fields, zap.Error(submitErr))...)
		return false, nil
	default:
		return false, fmt.Errorf("submission failed: %w", submitErr)
	}
}

// classify maps a submission result onto the next relay state
func (p *Processor) classify(err error, attempts int) (db.Attempt, string) {
	if err == nil {
		return db.Attempt{Status: db.RelayStatusCompleted}, outcomeCompleted
	}
	msg := err.Error()
	if errors.Is(err, bridge.ErrNonceAlreadyProcessed) {
		return db.Attempt{Status: db.RelayStatusCompleted, Error: &msg}, outcomeAlreadyRedeemed
	}
	for _, target := range permanent {
		if errors.Is(err, target) {
			return db.Attempt{Status: db.RelayStatusFailed, Error: &msg}, outcomeRejected
		}
	}
	if p.maxRetries > 0 && attempts >= p.maxRetries {
		return db.Attempt{Status: db.RelayStatusFailed, Error: &msg}, outcomeExhausted
	}
	return db.Attempt{Status: db.RelayStatusPending, Error: &msg}, outcomeRetry
}
