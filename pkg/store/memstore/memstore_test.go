package memstore

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainsafe/burnmint-bridge/pkg/bridge"
)

var (
	alice = common.HexToAddress("0x00000000000000000000000000000000000000a0")
	bob   = common.HexToAddress("0x00000000000000000000000000000000000000b0")
	admin = common.HexToAddress("0x00000000000000000000000000000000000000ad")
)

func balanceOf(t *testing.T, s *Store, ledgerID string, account common.Address) string {
	t.Helper()
	var out *big.Int
	require.NoError(t, s.RunInTx(context.Background(), func(ctx context.Context, tx bridge.Tx) error {
		l, err := tx.Ledger(ledgerID)
		if err != nil {
			return err
		}
		out, err = l.BalanceOf(ctx, account)
		return err
	}))
	return out.String()
}

func TestStore_LedgerOperations(t *testing.T) {
	ctx := context.Background()
	s := New("x")

	err := s.RunInTx(ctx, func(ctx context.Context, tx bridge.Tx) error {
		l, err := tx.Ledger("x")
		require.NoError(t, err)
		require.ErrorIs(t, l.Mint(ctx, admin, alice, big.NewInt(1)), bridge.ErrMissingCapability)

		require.NoError(t, l.Grant(ctx, admin, bridge.CapabilityMint))
		require.NoError(t, l.Grant(ctx, admin, bridge.CapabilityBurn))
		require.NoError(t, l.Mint(ctx, admin, alice, big.NewInt(100)))
		require.NoError(t, l.Burn(ctx, admin, alice, big.NewInt(40)))
		require.ErrorIs(t, l.Burn(ctx, admin, alice, big.NewInt(61)), bridge.ErrInsufficientBalance)
		require.ErrorIs(t, l.Burn(ctx, admin, bob, big.NewInt(1)), bridge.ErrInsufficientBalance)

		require.NoError(t, l.Revoke(ctx, admin, bridge.CapabilityBurn))
		ok, err := l.HasCapability(ctx, admin, bridge.CapabilityBurn)
		require.NoError(t, err)
		assert.False(t, ok)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "60", balanceOf(t, s, "x", alice))

	err = s.RunInTx(ctx, func(_ context.Context, tx bridge.Tx) error {
		_, err := tx.Ledger("nope")
		return err
	})
	assert.ErrorIs(t, err, bridge.ErrUnknownLedger)
}

func TestStore_FailedTxLeavesNoTrace(t *testing.T) {
	ctx := context.Background()
	s := New("x")
	boom := errors.New("boom")

	err := s.RunInTx(ctx, func(ctx context.Context, tx bridge.Tx) error {
		l, _ := tx.Ledger("x")
		require.NoError(t, l.Grant(ctx, admin, bridge.CapabilityMint))
		require.NoError(t, l.Mint(ctx, admin, alice, big.NewInt(10)))
		require.NoError(t, tx.Nonces("b").MarkProcessed(ctx, 1))
		require.NoError(t, tx.Events().AppendSwap(ctx, &bridge.SwapInitialized{
			EventMeta: bridge.EventMeta{BridgeID: "b"},
			Amount:    big.NewInt(10),
		}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	assert.Equal(t, "0", balanceOf(t, s, "x", alice))
	assert.Empty(t, s.ProcessedNonces("b"))
	swaps, err := s.ListSwaps(ctx, bridge.EventFilter{BridgeID: "b"})
	require.NoError(t, err)
	assert.Empty(t, swaps)

	// the sequence is not advanced by the failed transaction
	require.NoError(t, s.RunInTx(ctx, func(ctx context.Context, tx bridge.Tx) error {
		return tx.Events().AppendSwap(ctx, &bridge.SwapInitialized{
			EventMeta: bridge.EventMeta{BridgeID: "b"},
			Amount:    big.NewInt(1),
		})
	}))
	swaps, err = s.ListSwaps(ctx, bridge.EventFilter{BridgeID: "b"})
	require.NoError(t, err)
	require.Len(t, swaps, 1)
	assert.Equal(t, uint64(1), swaps[0].Seq)
}

func TestStore_Nonces(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.RunInTx(ctx, func(ctx context.Context, tx bridge.Tx) error {
		n := tx.Nonces("dst")
		require.NoError(t, n.MarkProcessed(ctx, 7))
		assert.ErrorIs(t, n.MarkProcessed(ctx, 7), bridge.ErrNonceAlreadyProcessed)
		ok, err := n.IsProcessed(ctx, 7)
		require.NoError(t, err)
		assert.True(t, ok)
		return nil
	}))

	require.NoError(t, s.RunInTx(ctx, func(ctx context.Context, tx bridge.Tx) error {
		assert.ErrorIs(t, tx.Nonces("dst").MarkProcessed(ctx, 7), bridge.ErrNonceAlreadyProcessed)
		// nonce spaces are per bridge
		require.NoError(t, tx.Nonces("other").MarkProcessed(ctx, 7))
		return tx.Nonces("dst").MarkProcessed(ctx, 3)
	}))

	assert.Equal(t, []uint64{3, 7}, s.ProcessedNonces("dst"))
	assert.Equal(t, []uint64{7}, s.ProcessedNonces("other"))
}

func TestStore_EventListing(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.RunInTx(ctx, func(ctx context.Context, tx bridge.Tx) error {
		for i := 1; i <= 3; i++ {
			require.NoError(t, tx.Events().AppendSwap(ctx, &bridge.SwapInitialized{
				EventMeta: bridge.EventMeta{BridgeID: "a"},
				Amount:    big.NewInt(int64(i)),
			}))
		}
		require.NoError(t, tx.Events().AppendRedeem(ctx, &bridge.Redeemed{
			EventMeta: bridge.EventMeta{BridgeID: "b"},
			Amount:    big.NewInt(9),
			Nonce:     1,
		}))
		return nil
	}))

	swaps, err := s.ListSwaps(ctx, bridge.EventFilter{BridgeID: "a", After: 1, Limit: 1})
	require.NoError(t, err)
	require.Len(t, swaps, 1)
	assert.Equal(t, uint64(2), swaps[0].Seq)
	assert.Equal(t, "2", swaps[0].Amount.String())
	assert.NotEmpty(t, swaps[0].ID)

	// listings are copies
	swaps[0].Amount.SetInt64(1000)
	again, err := s.ListSwaps(ctx, bridge.EventFilter{BridgeID: "a", After: 1, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, "2", again[0].Amount.String())

	redeems, err := s.ListRedeems(ctx, bridge.EventFilter{BridgeID: "b"})
	require.NoError(t, err)
	require.Len(t, redeems, 1)
	assert.Equal(t, uint64(4), redeems[0].Seq)

	none, err := s.ListRedeems(ctx, bridge.EventFilter{BridgeID: "a"})
	require.NoError(t, err)
	assert.Empty(t, none)
}
