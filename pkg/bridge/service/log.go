package service

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	apperrors "github.com/chainsafe/burnmint-bridge/pkg/app/errors"
	"github.com/chainsafe/burnmint-bridge/pkg/auth"
	"github.com/chainsafe/burnmint-bridge/pkg/bridge"
)

const serviceName = "BridgeService"

// logService wraps Service with automatic logging of all method calls
type logService struct {
	svc    Service
	logger *zap.Logger
}

// NewLog creates a logging decorator for the bridge Service.
// Mutating calls are logged at info level, reads at debug level.
func NewLog(svc Service, logger *zap.Logger) Service {
	return &logService{
		svc:    svc,
		logger: logger.With(zap.String("service", serviceName)),
	}
}

// done logs the outcome of a call. Client errors are logged as warnings.
func (ls *logService) done(method string, start time.Time, err error, fields ...zap.Field) {
	fields = append(fields, zap.String("method", method), zap.Duration("duration", time.Since(start)))
	switch {
	case err == nil:
		ls.logger.Debug(method+" completed", fields...)
	case apperrors.IsInternalError(err):
		ls.logger.Error(method+" failed", append(fields, zap.Error(err))...)
	default:
		ls.logger.Warn(method+" rejected", append(fields, zap.Error(err))...)
	}
}

func (ls *logService) Bridges(ctx context.Context) (out []bridge.BridgeInfo, err error) {
	defer func(start time.Time) { ls.done("Bridges", start, err) }(time.Now())
	return ls.svc.Bridges(ctx)
}

func (ls *logService) Bridge(ctx context.Context, id string) (out *bridge.BridgeInfo, err error) {
	defer func(start time.Time) { ls.done("Bridge", start, err, zap.String("bridge", id)) }(time.Now())
	return ls.svc.Bridge(ctx, id)
}

func (ls *logService) Swap(ctx context.Context, caller common.Address, bridgeID string, req *bridge.SwapRequest) (ev *bridge.SwapEvent, err error) {
	ls.logger.Info("Swap started",
		zap.String("bridge", bridgeID),
		zap.String("caller", caller.Hex()),
		zap.String("auth", auth.MethodFromContext(ctx)),
		zap.String("recipient", req.Recipient),
		zap.String("amount", req.Amount))

	defer func(start time.Time) {
		if err == nil {
			ls.logger.Info("Swap completed",
				zap.String("bridge", bridgeID),
				zap.Uint64("seq", ev.Seq),
				zap.Duration("duration", time.Since(start)))
			return
		}
		ls.done("Swap", start, err, zap.String("bridge", bridgeID), zap.String("caller", caller.Hex()))
	}(time.Now())

	return ls.svc.Swap(ctx, caller, bridgeID, req)
}

func (ls *logService) Redeem(ctx context.Context, caller common.Address, bridgeID string, req *bridge.RedeemBody) (ev *bridge.RedeemEvent, err error) {
	ls.logger.Info("Redeem started",
		zap.String("bridge", bridgeID),
		zap.String("caller", caller.Hex()),
		zap.String("auth", auth.MethodFromContext(ctx)),
		zap.String("sender", req.Sender),
		zap.String("amount", req.Amount),
		zap.Uint64("nonce", req.Nonce))

	defer func(start time.Time) {
		if err == nil {
			ls.logger.Info("Redeem completed",
				zap.String("bridge", bridgeID),
				zap.Uint64("nonce", ev.Nonce),
				zap.Duration("duration", time.Since(start)))
			return
		}
		ls.done("Redeem", start, err, zap.String("bridge", bridgeID), zap.Uint64("nonce", req.Nonce))
	}(time.Now())

	return ls.svc.Redeem(ctx, caller, bridgeID, req)
}

func (ls *logService) ListSwaps(ctx context.Context, filter bridge.EventFilter) (out []bridge.SwapEvent, err error) {
	defer func(start time.Time) {
		ls.done("ListSwaps", start, err, zap.String("bridge", filter.BridgeID), zap.Uint64("after", filter.After), zap.Int("count", len(out)))
	}(time.Now())
	return ls.svc.ListSwaps(ctx, filter)
}

func (ls *logService) ListRedeems(ctx context.Context, filter bridge.EventFilter) (out []bridge.RedeemEvent, err error) {
	defer func(start time.Time) {
		ls.done("ListRedeems", start, err, zap.String("bridge", filter.BridgeID), zap.Uint64("after", filter.After), zap.Int("count", len(out)))
	}(time.Now())
	return ls.svc.ListRedeems(ctx, filter)
}

func (ls *logService) Balance(ctx context.Context, ledgerID, account string) (out *bridge.BalanceResponse, err error) {
	defer func(start time.Time) {
		ls.done("Balance", start, err, zap.String("ledger", ledgerID), zap.String("account", account))
	}(time.Now())
	return ls.svc.Balance(ctx, ledgerID, account)
}

func (ls *logService) Mint(ctx context.Context, caller common.Address, ledgerID string, req *bridge.MintRequest) (out *bridge.BalanceResponse, err error) {
	defer func(start time.Time) {
		fields := []zap.Field{
			zap.String("ledger", ledgerID),
			zap.String("operator", caller.Hex()),
			zap.String("account", req.Account),
			zap.String("amount", req.Amount),
		}
		if err == nil {
			ls.logger.Info("Mint completed", append(fields, zap.Duration("duration", time.Since(start)))...)
			return
		}
		ls.done("Mint", start, err, fields...)
	}(time.Now())
	return ls.svc.Mint(ctx, caller, ledgerID, req)
}

func (ls *logService) Grant(ctx context.Context, caller common.Address, ledgerID string, req *bridge.CapabilityRequest) (err error) {
	defer func(start time.Time) {
		fields := []zap.Field{
			zap.String("ledger", ledgerID),
			zap.String("granter", caller.Hex()),
			zap.String("account", req.Account),
			zap.String("capability", req.Capability),
		}
		if err == nil {
			ls.logger.Info("Capability granted", fields...)
			return
		}
		ls.done("Grant", start, err, fields...)
	}(time.Now())
	return ls.svc.Grant(ctx, caller, ledgerID, req)
}

func (ls *logService) Revoke(ctx context.Context, caller common.Address, ledgerID string, req *bridge.CapabilityRequest) (err error) {
	defer func(start time.Time) {
		fields := []zap.Field{
			zap.String("ledger", ledgerID),
			zap.String("granter", caller.Hex()),
			zap.String("account", req.Account),
			zap.String("capability", req.Capability),
		}
		if err == nil {
			ls.logger.Info("Capability revoked", fields...)
			return
		}
		ls.done("Revoke", start, err, fields...)
	}(time.Now())
	return ls.svc.Revoke(ctx, caller, ledgerID, req)
}
