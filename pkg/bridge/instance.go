package bridge

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/chainsafe/burnmint-bridge/internal/metrics"
)

// Publisher receives committed events. Publishing is best effort.
type Publisher interface {
	PublishSwap(ctx context.Context, ev *SwapInitialized) error
	PublishRedeem(ctx context.Context, ev *Redeemed) error
}

// Instance is one bridge value serving a single directed chain pair.
type Instance struct {
	cfg       Config
	store     Store
	locker    *Locker
	verifier  *Verifier
	publisher Publisher
	logger    *zap.Logger
}

// Option configures an Instance.
type Option func(*Instance)

// WithPublisher sets the event publisher.
func WithPublisher(p Publisher) Option {
	return func(i *Instance) { i.publisher = p }
}

// WithLocker shares a Locker between instances hosted on the same ledgers.
func WithLocker(l *Locker) Option {
	return func(i *Instance) { i.locker = l }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(i *Instance) { i.logger = l }
}

// NewInstance creates a bridge instance over store.
func NewInstance(cfg Config, store Store, opts ...Option) (*Instance, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	i := &Instance{
		cfg:      cfg,
		store:    store,
		verifier: NewVerifier(cfg.Validator),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(i)
	}
	if i.locker == nil {
		i.locker = NewLocker()
	}
	return i, nil
}

// Config returns the instance configuration.
func (i *Instance) Config() Config { return i.cfg }

// ID returns the instance identifier.
func (i *Instance) ID() string { return i.cfg.ID }

// ChainIDFrom returns the source chain of the corridor the instance serves.
func (i *Instance) ChainIDFrom() uint64 { return i.cfg.ChainIDFrom }

// ChainIDTo returns the destination chain of the corridor the instance serves.
func (i *Instance) ChainIDTo() uint64 { return i.cfg.ChainIDTo }

// Claim builds the claim the validator must have signed for a redeem on this instance.
func (i *Instance) Claim(sender, recipient common.Address, amount *big.Int, nonce uint64) *Claim {
	return &Claim{
		Sender:      sender,
		Recipient:   recipient,
		Amount:      amount,
		Nonce:       nonce,
		ChainIDFrom: i.cfg.ChainIDFrom,
		ChainIDTo:   i.cfg.ChainIDTo,
	}
}

// Swap burns amount from caller and records a SwapInitialized event.
func (i *Instance) Swap(ctx context.Context, caller, recipient common.Address, amount *big.Int) (ev *SwapInitialized, err error) {
	start := time.Now()
	defer func() { i.observe("swap", start, err) }()

	if err = CheckAmount(amount); err != nil {
		return nil, err
	}

	unlock := i.locker.Lock(AccountKey(i.cfg.Ledger, caller))
	defer unlock()

	err = i.store.RunInTx(ctx, func(ctx context.Context, tx Tx) error {
		ledger, err := tx.Ledger(i.cfg.Ledger)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrSwapFailed, err)
		}
		if err = ledger.Burn(ctx, i.cfg.Address, caller, amount); err != nil {
			return fmt.Errorf("%w: %w", ErrSwapFailed, err)
		}

		ev = &SwapInitialized{
			Sender:      caller,
			Recipient:   recipient,
			Amount:      new(big.Int).Set(amount),
			ChainIDFrom: i.cfg.ChainIDFrom,
			ChainIDTo:   i.cfg.ChainIDTo,
		}
		ev.BridgeID = i.cfg.ID
		return tx.Events().AppendSwap(ctx, ev)
	})
	if err != nil {
		return nil, err
	}

	i.logger.Info("Swap initialized",
		zap.String("bridge", i.cfg.ID),
		zap.Uint64("seq", ev.Seq),
		zap.String("sender", caller.Hex()),
		zap.String("recipient", recipient.Hex()),
		zap.String("amount", amount.String()))

	if i.publisher != nil {
		if perr := i.publisher.PublishSwap(ctx, ev); perr != nil {
			i.logger.Warn("Failed to publish swap event", zap.String("bridge", i.cfg.ID), zap.Error(perr))
		}
	}
	return ev, nil
}

// Redeem verifies a validator signed claim and mints the amount to the recipient.
// The caller must be the recipient. A consumed nonce is rejected on every later call.
func (i *Instance) Redeem(ctx context.Context, caller common.Address, req *RedeemRequest) (ev *Redeemed, err error) {
	start := time.Now()
	defer func() { i.observe("redeem", start, err) }()

	if caller != req.Recipient {
		return nil, ErrNotRecipient
	}
	if err = CheckAmount(req.Amount); err != nil {
		return nil, err
	}

	unlock := i.locker.Lock(NonceKey(i.cfg.ID, req.Nonce), AccountKey(i.cfg.Ledger, req.Recipient))
	defer unlock()

	err = i.store.RunInTx(ctx, func(ctx context.Context, tx Tx) error {
		nonces := tx.Nonces(i.cfg.ID)
		processed, err := nonces.IsProcessed(ctx, req.Nonce)
		if err != nil {
			return err
		}
		if processed {
			return ErrNonceAlreadyProcessed
		}

		hash, err := ClaimHash(i.Claim(req.Sender, req.Recipient, req.Amount, req.Nonce))
		if err != nil {
			return err
		}
		if err = i.verifier.Verify(hash, req.Signature); err != nil {
			return err
		}

		ledger, err := tx.Ledger(i.cfg.Ledger)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrRedeemFailed, err)
		}
		if err = ledger.Mint(ctx, i.cfg.Address, req.Recipient, req.Amount); err != nil {
			return fmt.Errorf("%w: %w", ErrRedeemFailed, err)
		}
		if err = nonces.MarkProcessed(ctx, req.Nonce); err != nil {
			return err
		}

		ev = &Redeemed{
			Sender:      req.Sender,
			Recipient:   req.Recipient,
			Amount:      new(big.Int).Set(req.Amount),
			Nonce:       req.Nonce,
			ChainIDFrom: i.cfg.ChainIDFrom,
			ChainIDTo:   i.cfg.ChainIDTo,
		}
		ev.BridgeID = i.cfg.ID
		return tx.Events().AppendRedeem(ctx, ev)
	})
	if err != nil {
		return nil, err
	}

	i.logger.Info("Redeemed",
		zap.String("bridge", i.cfg.ID),
		zap.Uint64("nonce", req.Nonce),
		zap.String("sender", req.Sender.Hex()),
		zap.String("recipient", req.Recipient.Hex()),
		zap.String("amount", req.Amount.String()))

	if i.publisher != nil {
		if perr := i.publisher.PublishRedeem(ctx, ev); perr != nil {
			i.logger.Warn("Failed to publish redeem event", zap.String("bridge", i.cfg.ID), zap.Error(perr))
		}
	}
	return ev, nil
}

func (i *Instance) observe(op string, start time.Time, err error) {
	metrics.OperationDuration.WithLabelValues(i.cfg.ID, op).Observe(time.Since(start).Seconds())
	counter := metrics.SwapsTotal
	if op == "redeem" {
		counter = metrics.RedeemsTotal
	}
	counter.WithLabelValues(i.cfg.ID, errorStatus(err)).Inc()
}

// errorStatus converts an operation result into a metrics label.
func errorStatus(err error) string {
	if err == nil {
		return "success"
	}
	if reason := ReasonFor(err); reason != "" {
		return reason
	}
	return "error"
}
