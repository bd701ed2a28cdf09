// Package validator watches swaps on the source bridges of its routes and signs the
// claims that let recipients redeem on the destination bridges.
package validator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/chainsafe/burnmint-bridge/internal/metrics"
	"github.com/chainsafe/burnmint-bridge/pkg/bridge"
)

// Route connects a watched source bridge to the destination bridge its claims target.
type Route struct {
	Source      string
	Destination string
}

// Node is the part of the node API the validator reads.
type Node interface {
	Bridge(ctx context.Context, id string) (*bridge.BridgeInfo, error)
	ListSwaps(ctx context.Context, filter bridge.EventFilter) ([]bridge.SwapEvent, error)
	ListRedeems(ctx context.Context, filter bridge.EventFilter) ([]bridge.RedeemEvent, error)
}

// Options tunes the watcher loop.
type Options struct {
	PollInterval time.Duration
	BatchSize    int
}

// Validator signs claims for the swaps of its routes.
type Validator struct {
	node   Node
	store  ClaimStore
	signer *bridge.Signer
	routes []Route
	opts   Options
	logger *zap.Logger
	now    func() time.Time

	mu           sync.Mutex
	destinations map[string]*bridge.BridgeInfo
}

// New creates a Validator.
func New(node Node, store ClaimStore, signer *bridge.Signer, routes []Route, opts Options, logger *zap.Logger) *Validator {
	if opts.PollInterval <= 0 {
		opts.PollInterval = 5 * time.Second
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = bridge.DefaultEventLimit
	}
	return &Validator{
		node:         node,
		store:        store,
		signer:       signer,
		routes:       routes,
		opts:         opts,
		logger:       logger,
		now:          time.Now,
		destinations: make(map[string]*bridge.BridgeInfo),
	}
}

// Address returns the address claims are signed with.
func (v *Validator) Address() string {
	return v.signer.Address().Hex()
}

// Run polls until ctx is cancelled.
func (v *Validator) Run(ctx context.Context) error {
	v.logger.Info("Validator started",
		zap.String("address", v.Address()),
		zap.Int("routes", len(v.routes)),
		zap.Duration("poll_interval", v.opts.PollInterval))

	ticker := time.NewTicker(v.opts.PollInterval)
	defer ticker.Stop()

	for {
		if err := v.Poll(ctx); err != nil && ctx.Err() == nil {
			v.logger.Warn("Validator poll failed", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			v.logger.Info("Validator stopped")
			return nil
		case <-ticker.C:
		}
	}
}

// Poll processes every route once: new swaps are signed and new redeems settle claims.
func (v *Validator) Poll(ctx context.Context) error {
	var errs []error
	for _, r := range v.routes {
		if err := v.syncSwaps(ctx, r); err != nil {
			metrics.ErrorsTotal.WithLabelValues("validator", "sync_swaps").Inc()
			errs = append(errs, fmt.Errorf("route %s->%s: %w", r.Source, r.Destination, err))
			continue
		}
		if err := v.syncRedeems(ctx, r); err != nil {
			metrics.ErrorsTotal.WithLabelValues("validator", "sync_redeems").Inc()
			errs = append(errs, fmt.Errorf("route %s->%s: %w", r.Source, r.Destination, err))
		}
	}
	return errors.Join(errs...)
}

func swapCursor(r Route) string   { return "swaps:" + r.Source }
func redeemCursor(r Route) string { return "redeems:" + r.Destination }

// destination returns the destination bridge of r. The claim carries its chain IDs.
func (v *Validator) destination(ctx context.Context, r Route) (*bridge.BridgeInfo, error) {
	v.mu.Lock()
	info, ok := v.destinations[r.Destination]
	v.mu.Unlock()
	if ok {
		return info, nil
	}

	info, err := v.node.Bridge(ctx, r.Destination)
	if err != nil {
		return nil, fmt.Errorf("failed to read destination bridge: %w", err)
	}
	if !strings.EqualFold(info.Validator, v.Address()) {
		return nil, fmt.Errorf("bridge %s trusts validator %s, not %s", info.ID, info.Validator, v.Address())
	}

	v.mu.Lock()
	v.destinations[r.Destination] = info
	v.mu.Unlock()
	return info, nil
}

func (v *Validator) syncSwaps(ctx context.Context, r Route) error {
	dest, err := v.destination(ctx, r)
	if err != nil {
		return err
	}
	cursor, err := v.store.Cursor(ctx, swapCursor(r))
	if err != nil {
		return fmt.Errorf("failed to read cursor: %w", err)
	}

	swaps, err := v.node.ListSwaps(ctx, bridge.EventFilter{BridgeID: r.Source, After: cursor, Limit: v.opts.BatchSize})
	if err != nil {
		return fmt.Errorf("failed to list swaps: %w", err)
	}

	for i := range swaps {
		claim, err := v.Sign(&swaps[i], dest)
		if err != nil {
			return fmt.Errorf("swap %d: %w", swaps[i].Seq, err)
		}
		if err := v.store.Save(ctx, claim); err != nil {
			return fmt.Errorf("failed to save claim %s: %w", claim.Key(), err)
		}
		if err := v.store.SetCursor(ctx, swapCursor(r), swaps[i].Seq); err != nil {
			return fmt.Errorf("failed to advance cursor: %w", err)
		}

		metrics.ClaimsSigned.WithLabelValues(r.Source, r.Destination).Inc()
		metrics.ValidatorCursor.WithLabelValues(r.Source, "swap").Set(float64(swaps[i].Seq))
		v.logger.Info("Claim signed",
			zap.String("source", r.Source),
			zap.String("destination", r.Destination),
			zap.Uint64("nonce", claim.Nonce),
			zap.String("recipient", claim.Recipient),
			zap.String("amount", claim.Amount))
	}
	return nil
}

func (v *Validator) syncRedeems(ctx context.Context, r Route) error {
	cursor, err := v.store.Cursor(ctx, redeemCursor(r))
	if err != nil {
		return fmt.Errorf("failed to read cursor: %w", err)
	}
	redeems, err := v.node.ListRedeems(ctx, bridge.EventFilter{BridgeID: r.Destination, After: cursor, Limit: v.opts.BatchSize})
	if err != nil {
		return fmt.Errorf("failed to list redeems: %w", err)
	}

	for _, ev := range redeems {
		err := v.store.MarkRedeemed(ctx, r.Destination, ev.Nonce, ev.CreatedAt)
		switch {
		case errors.Is(err, ErrClaimNotFound):
			v.logger.Warn("Redeem without a known claim",
				zap.String("bridge", r.Destination),
				zap.Uint64("nonce", ev.Nonce))
		case err != nil:
			return fmt.Errorf("failed to settle claim %d: %w", ev.Nonce, err)
		}
		if err := v.store.SetCursor(ctx, redeemCursor(r), ev.Seq); err != nil {
			return fmt.Errorf("failed to advance cursor: %w", err)
		}
		metrics.ValidatorCursor.WithLabelValues(r.Destination, "redeem").Set(float64(ev.Seq))
	}
	return nil
}

// Sign produces the claim for a swap observed on the source bridge. The nonce is the
// sequence number of the swap and the chain IDs are those of the destination bridge.
func (v *Validator) Sign(ev *bridge.SwapEvent, dest *bridge.BridgeInfo) (*bridge.SignedClaim, error) {
	sender, err := bridge.ParseAddress("sender", ev.Sender)
	if err != nil {
		return nil, err
	}
	recipient, err := bridge.ParseAddress("recipient", ev.Recipient)
	if err != nil {
		return nil, err
	}
	amount, err := bridge.ParseAmount(ev.Amount)
	if err != nil {
		return nil, err
	}

	hash, sig, err := v.signer.SignClaim(&bridge.Claim{
		Sender:      sender,
		Recipient:   recipient,
		Amount:      amount,
		Nonce:       ev.Seq,
		ChainIDFrom: dest.ChainIDFrom,
		ChainIDTo:   dest.ChainIDTo,
	})
	if err != nil {
		return nil, err
	}

	return &bridge.SignedClaim{
		SourceBridge:      ev.BridgeID,
		DestinationBridge: dest.ID,
		Sender:            sender.Hex(),
		Recipient:         recipient.Hex(),
		Amount:            amount.String(),
		Nonce:             ev.Seq,
		ChainIDFrom:       dest.ChainIDFrom,
		ChainIDTo:         dest.ChainIDTo,
		Hash:              hash.Hex(),
		Signature:         sig.Hex(),
		Validator:         v.Address(),
		Status:            bridge.ClaimPending,
		CreatedAt:         v.now().UTC(),
	}, nil
}
