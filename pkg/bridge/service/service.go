// Package service exposes the bridge instances and ledgers hosted by a node
// through a transport independent Service and its HTTP binding.
package service

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	apperrors "github.com/chainsafe/burnmint-bridge/pkg/app/errors"
	"github.com/chainsafe/burnmint-bridge/pkg/bridge"
)

// Service defines the node operations callable over the API.
//
//go:generate mockery --name Service --output mocks --outpkg mocks --filename mock_service.go --with-expecter
type Service interface {
	Bridges(ctx context.Context) ([]bridge.BridgeInfo, error)
	Bridge(ctx context.Context, id string) (*bridge.BridgeInfo, error)
	Swap(ctx context.Context, caller common.Address, bridgeID string, req *bridge.SwapRequest) (*bridge.SwapEvent, error)
	Redeem(ctx context.Context, caller common.Address, bridgeID string, req *bridge.RedeemBody) (*bridge.RedeemEvent, error)
	ListSwaps(ctx context.Context, filter bridge.EventFilter) ([]bridge.SwapEvent, error)
	ListRedeems(ctx context.Context, filter bridge.EventFilter) ([]bridge.RedeemEvent, error)
	Balance(ctx context.Context, ledgerID, account string) (*bridge.BalanceResponse, error)
	Mint(ctx context.Context, caller common.Address, ledgerID string, req *bridge.MintRequest) (*bridge.BalanceResponse, error)
	Grant(ctx context.Context, caller common.Address, ledgerID string, req *bridge.CapabilityRequest) error
	Revoke(ctx context.Context, caller common.Address, ledgerID string, req *bridge.CapabilityRequest) error
}

type bridgeService struct {
	registry *bridge.Registry
	admin    *bridge.LedgerAdmin
	events   bridge.EventReader
}

// NewService creates the node service over the hosted instances and ledgers.
func NewService(registry *bridge.Registry, admin *bridge.LedgerAdmin, events bridge.EventReader) Service {
	return &bridgeService{
		registry: registry,
		admin:    admin,
		events:   events,
	}
}

func (s *bridgeService) Bridges(_ context.Context) ([]bridge.BridgeInfo, error) {
	instances := s.registry.List()
	out := make([]bridge.BridgeInfo, 0, len(instances))
	for _, inst := range instances {
		out = append(out, bridge.InfoFromConfig(inst.Config()))
	}
	return out, nil
}

func (s *bridgeService) Bridge(_ context.Context, id string) (*bridge.BridgeInfo, error) {
	inst, err := s.registry.Get(id)
	if err != nil {
		return nil, toServiceError(err)
	}
	info := bridge.InfoFromConfig(inst.Config())
	return &info, nil
}

func (s *bridgeService) Swap(ctx context.Context, caller common.Address, bridgeID string, req *bridge.SwapRequest) (*bridge.SwapEvent, error) {
	inst, err := s.registry.Get(bridgeID)
	if err != nil {
		return nil, toServiceError(err)
	}
	recipient, err := bridge.ParseAddress("recipient", req.Recipient)
	if err != nil {
		return nil, apperrors.BadRequestError(err, err.Error())
	}
	amount, err := bridge.ParseAmount(req.Amount)
	if err != nil {
		return nil, apperrors.BadRequestError(err, err.Error())
	}

	ev, err := inst.Swap(ctx, caller, recipient, amount)
	if err != nil {
		return nil, toServiceError(err)
	}
	out := bridge.NewSwapEvent(ev)
	return &out, nil
}

func (s *bridgeService) Redeem(ctx context.Context, caller common.Address, bridgeID string, body *bridge.RedeemBody) (*bridge.RedeemEvent, error) {
	inst, err := s.registry.Get(bridgeID)
	if err != nil {
		return nil, toServiceError(err)
	}
	req, err := body.Request()
	if err != nil {
		return nil, apperrors.BadRequestError(err, err.Error())
	}

	ev, err := inst.Redeem(ctx, caller, req)
	if err != nil {
		return nil, toServiceError(err)
	}
	out := bridge.NewRedeemEvent(ev)
	return &out, nil
}

func (s *bridgeService) ListSwaps(ctx context.Context, filter bridge.EventFilter) ([]bridge.SwapEvent, error) {
	if _, err := s.registry.Get(filter.BridgeID); err != nil {
		return nil, toServiceError(err)
	}
	events, err := s.events.ListSwaps(ctx, filter.Normalize())
	if err != nil {
		return nil, toServiceError(fmt.Errorf("failed to list swaps: %w", err))
	}
	out := make([]bridge.SwapEvent, 0, len(events))
	for _, ev := range events {
		out = append(out, bridge.NewSwapEvent(ev))
	}
	return out, nil
}

func (s *bridgeService) ListRedeems(ctx context.Context, filter bridge.EventFilter) ([]bridge.RedeemEvent, error) {
	if _, err := s.registry.Get(filter.BridgeID); err != nil {
		return nil, toServiceError(err)
	}
	events, err := s.events.ListRedeems(ctx, filter.Normalize())
	if err != nil {
		return nil, toServiceError(fmt.Errorf("failed to list redeems: %w", err))
	}
	out := make([]bridge.RedeemEvent, 0, len(events))
	for _, ev := range events {
		out = append(out, bridge.NewRedeemEvent(ev))
	}
	return out, nil
}

func (s *bridgeService) Balance(ctx context.Context, ledgerID, account string) (*bridge.BalanceResponse, error) {
	addr, err := bridge.ParseAddress("account", account)
	if err != nil {
		return nil, apperrors.BadRequestError(err, err.Error())
	}
	balance, err := s.admin.BalanceOf(ctx, ledgerID, addr)
	if err != nil {
		return nil, toServiceError(err)
	}
	return &bridge.BalanceResponse{Ledger: ledgerID, Account: addr.Hex(), Balance: balance.String()}, nil
}

func (s *bridgeService) Mint(ctx context.Context, caller common.Address, ledgerID string, req *bridge.MintRequest) (*bridge.BalanceResponse, error) {
	account, err := bridge.ParseAddress("account", req.Account)
	if err != nil {
		return nil, apperrors.BadRequestError(err, err.Error())
	}
	amount, err := bridge.ParseAmount(req.Amount)
	if err != nil {
		return nil, apperrors.BadRequestError(err, err.Error())
	}
	if err := s.admin.Mint(ctx, ledgerID, caller, account, amount); err != nil {
		return nil, toServiceError(err)
	}
	return s.Balance(ctx, ledgerID, account.Hex())
}

func (s *bridgeService) Grant(ctx context.Context, caller common.Address, ledgerID string, req *bridge.CapabilityRequest) error {
	account, c, err := parseCapabilityRequest(req)
	if err != nil {
		return err
	}
	return toServiceError(s.admin.GrantCapability(ctx, ledgerID, caller, account, c))
}

func (s *bridgeService) Revoke(ctx context.Context, caller common.Address, ledgerID string, req *bridge.CapabilityRequest) error {
	account, c, err := parseCapabilityRequest(req)
	if err != nil {
		return err
	}
	return toServiceError(s.admin.RevokeCapability(ctx, ledgerID, caller, account, c))
}

func parseCapabilityRequest(req *bridge.CapabilityRequest) (common.Address, bridge.Capability, error) {
	account, err := bridge.ParseAddress("account", req.Account)
	if err != nil {
		return common.Address{}, "", apperrors.BadRequestError(err, err.Error())
	}
	c, err := bridge.ParseCapability(req.Capability)
	if err != nil {
		return common.Address{}, "", apperrors.BadRequestError(err, err.Error())
	}
	return account, c, nil
}
