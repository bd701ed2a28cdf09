package relayer

import (
	"context"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/chainsafe/burnmint-bridge/pkg/bridge"
	"github.com/chainsafe/burnmint-bridge/pkg/db"
)

// MockSource is a mock implementation of Source
type MockSource struct {
	PendingClaimsFunc func(ctx context.Context, recipient common.Address) ([]bridge.SignedClaim, error)
}

func (m *MockSource) PendingClaims(ctx context.Context, recipient common.Address) ([]bridge.SignedClaim, error) {
	if m.PendingClaimsFunc != nil {
		return m.PendingClaimsFunc(ctx, recipient)
	}
	return nil, nil
}

// MockDestination is a mock implementation of Destination
type MockDestination struct {
	mu               sync.Mutex
	calls            int
	SubmitRedeemFunc func(ctx context.Context, claim *bridge.SignedClaim) (*bridge.RedeemEvent, error)
}

func (m *MockDestination) SubmitRedeem(ctx context.Context, claim *bridge.SignedClaim) (*bridge.RedeemEvent, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.SubmitRedeemFunc != nil {
		return m.SubmitRedeemFunc(ctx, claim)
	}
	return &bridge.RedeemEvent{Nonce: claim.Nonce}, nil
}

func (m *MockDestination) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// MockStore is a mock implementation of RelayStore
type MockStore struct {
	CreateRelayFunc   func(ctx context.Context, r *db.Relay) error
	GetRelayFunc      func(ctx context.Context, id string) (*db.Relay, error)
	RecordAttemptFunc func(ctx context.Context, id string, a db.Attempt) error
	ListRelaysFunc    func(ctx context.Context, status db.RelayStatus, limit int) ([]*db.Relay, error)
}

func (m *MockStore) CreateRelay(ctx context.Context, r *db.Relay) error {
	if m.CreateRelayFunc != nil {
		return m.CreateRelayFunc(ctx, r)
	}
	return nil
}

func (m *MockStore) GetRelay(ctx context.Context, id string) (*db.Relay, error) {
	if m.GetRelayFunc != nil {
		return m.GetRelayFunc(ctx, id)
	}
	return nil, db.ErrRelayNotFound
}

func (m *MockStore) RecordAttempt(ctx context.Context, id string, a db.Attempt) error {
	if m.RecordAttemptFunc != nil {
		return m.RecordAttemptFunc(ctx, id, a)
	}
	return nil
}

func (m *MockStore) ListRelays(ctx context.Context, status db.RelayStatus, limit int) ([]*db.Relay, error) {
	if m.ListRelaysFunc != nil {
		return m.ListRelaysFunc(ctx, status, limit)
	}
	return nil, nil
}
