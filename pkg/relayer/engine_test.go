package relayer

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/chainsafe/burnmint-bridge/pkg/bridge"
	"github.com/chainsafe/burnmint-bridge/pkg/db"
)

var bob = common.HexToAddress("0x0000000000000000000000000000000000000b0b")

func testClaim(nonce uint64) bridge.SignedClaim {
	return bridge.SignedClaim{
		SourceBridge:      "src",
		DestinationBridge: "dst",
		Sender:            "0x000000000000000000000000000000000000a11C",
		Recipient:         bob.Hex(),
		Amount:            "100",
		Nonce:             nonce,
		ChainIDFrom:       1,
		ChainIDTo:         2,
		Signature:         "0x01",
		Status:            bridge.ClaimPending,
	}
}

func staticSource(claims ...bridge.SignedClaim) *MockSource {
	return &MockSource{
		PendingClaimsFunc: func(_ context.Context, _ common.Address) ([]bridge.SignedClaim, error) {
			return claims, nil
		},
	}
}

func TestProcessor_RelaysClaim(t *testing.T) {
	store := db.NewMemoryStore()
	eventID := uuid.New()
	dest := &MockDestination{
		SubmitRedeemFunc: func(_ context.Context, claim *bridge.SignedClaim) (*bridge.RedeemEvent, error) {
			assert.Equal(t, "dst", claim.DestinationBridge)
			return &bridge.RedeemEvent{ID: eventID, Nonce: claim.Nonce}, nil
		},
	}
	p := NewProcessor(bob, staticSource(testClaim(1)), dest, store, 3, zap.NewNop())

	n, err := p.ProcessOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	rec, err := store.GetRelay(context.Background(), "dst/1")
	require.NoError(t, err)
	assert.Equal(t, db.RelayStatusCompleted, rec.Status)
	assert.Equal(t, 1, rec.Attempts)
	require.NotNil(t, rec.RedeemEventID)
	assert.Equal(t, eventID.String(), *rec.RedeemEventID)

	// the validator still lists the claim until it sees the redeem
	n, err = p.ProcessOnce(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, 1, dest.Calls())
}

func TestProcessor_AlreadyRedeemedCompletes(t *testing.T) {
	store := db.NewMemoryStore()
	dest := &MockDestination{
		SubmitRedeemFunc: func(context.Context, *bridge.SignedClaim) (*bridge.RedeemEvent, error) {
			return nil, fmt.Errorf("redeem: %w", bridge.ErrNonceAlreadyProcessed)
		},
	}
	p := NewProcessor(bob, staticSource(testClaim(1)), dest, store, 3, zap.NewNop())

	n, err := p.ProcessOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	rec, err := store.GetRelay(context.Background(), "dst/1")
	require.NoError(t, err)
	assert.Equal(t, db.RelayStatusCompleted, rec.Status)
}

func TestProcessor_PermanentErrorsFail(t *testing.T) {
	for _, target := range []error{bridge.ErrInvalidSignature, bridge.ErrNotRecipient, bridge.ErrZeroAmount} {
		t.Run(target.Error(), func(t *testing.T) {
			store := db.NewMemoryStore()
			dest := &MockDestination{
				SubmitRedeemFunc: func(context.Context, *bridge.SignedClaim) (*bridge.RedeemEvent, error) {
					return nil, target
				},
			}
			p := NewProcessor(bob, staticSource(testClaim(1)), dest, store, 5, zap.NewNop())

			_, err := p.ProcessOnce(context.Background())
			require.NoError(t, err)
			_, err = p.ProcessOnce(context.Background())
			require.NoError(t, err)

			rec, err := store.GetRelay(context.Background(), "dst/1")
			require.NoError(t, err)
			assert.Equal(t, db.RelayStatusFailed, rec.Status)
			require.NotNil(t, rec.LastError)
			assert.Equal(t, 1, dest.Calls())
		})
	}
}

func TestProcessor_RetriesUntilExhausted(t *testing.T) {
	store := db.NewMemoryStore()
	dest := &MockDestination{
		SubmitRedeemFunc: func(context.Context, *bridge.SignedClaim) (*bridge.RedeemEvent, error) {
			return nil, fmt.Errorf("%w: ledger: missing capability", bridge.ErrRedeemFailed)
		},
	}
	p := NewProcessor(bob, staticSource(testClaim(1)), dest, store, 3, zap.NewNop())
	ctx := context.Background()

	for i := 1; i <= 2; i++ {
		_, err := p.ProcessOnce(ctx)
		require.Error(t, err)
		assert.ErrorIs(t, err, bridge.ErrRedeemFailed)

		rec, err := store.GetRelay(ctx, "dst/1")
		require.NoError(t, err)
		assert.Equal(t, db.RelayStatusPending, rec.Status)
		assert.Equal(t, i, rec.Attempts)
	}

	_, err := p.ProcessOnce(ctx)
	require.NoError(t, err)
	rec, err := store.GetRelay(ctx, "dst/1")
	require.NoError(t, err)
	assert.Equal(t, db.RelayStatusFailed, rec.Status)
	assert.Equal(t, 3, rec.Attempts)

	_, err = p.ProcessOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, dest.Calls())
}

func TestProcessor_SourceError(t *testing.T) {
	source := &MockSource{
		PendingClaimsFunc: func(context.Context, common.Address) ([]bridge.SignedClaim, error) {
			return nil, errors.New("validator unavailable")
		},
	}
	dest := &MockDestination{}
	p := NewProcessor(bob, source, dest, db.NewMemoryStore(), 3, zap.NewNop())

	_, err := p.ProcessOnce(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validator unavailable")
	assert.Zero(t, dest.Calls())
}

func TestProcessor_StoreErrorSkipsSubmission(t *testing.T) {
	store := &MockStore{
		GetRelayFunc: func(context.Context, string) (*db.Relay, error) {
			return nil, errors.New("connection refused")
		},
	}
	dest := &MockDestination{}
	p := NewProcessor(bob, staticSource(testClaim(1)), dest, store, 3, zap.NewNop())

	_, err := p.ProcessOnce(context.Background())
	require.Error(t, err)
	assert.Zero(t, dest.Calls())
}

func TestEngine_StartStop(t *testing.T) {
	store := db.NewMemoryStore()
	dest := &MockDestination{}
	e := NewEngine(EngineConfig{PollInterval: 10 * time.Millisecond, MaxRetries: 3, ReconcileInterval: 10 * time.Millisecond},
		staticSource(testClaim(1), testClaim(2)), dest, store, []common.Address{bob}, zap.NewNop())

	require.NoError(t, e.Start(context.Background()))
	require.Eventually(t, func() bool {
		relays, err := store.ListRelays(context.Background(), db.RelayStatusCompleted, 0)
		return err == nil && len(relays) == 2
	}, time.Second, 10*time.Millisecond)
	e.Stop()

	assert.Equal(t, 2, dest.Calls())
}

func TestEngine_RequiresRecipients(t *testing.T) {
	e := NewEngine(EngineConfig{}, &MockSource{}, &MockDestination{}, db.NewMemoryStore(), nil, zap.NewNop())
	assert.Error(t, e.Start(context.Background()))
}

func TestEngine_Reconciliation(t *testing.T) {
	var listed db.RelayStatus
	store := &MockStore{
		ListRelaysFunc: func(_ context.Context, status db.RelayStatus, _ int) ([]*db.Relay, error) {
			listed = status
			return []*db.Relay{{ID: "dst/1", Recipient: bob.Hex()}}, nil
		},
	}
	e := NewEngine(EngineConfig{}, &MockSource{}, &MockDestination{}, store, []common.Address{bob}, zap.NewNop())

	require.NoError(t, e.runReconciliation(context.Background()))
	assert.Equal(t, db.RelayStatusPending, listed)
}
