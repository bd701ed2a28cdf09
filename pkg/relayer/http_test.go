package relayer

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "github.com/chainsafe/burnmint-bridge/pkg/app/errors"
	"github.com/chainsafe/burnmint-bridge/pkg/client"
	"github.com/chainsafe/burnmint-bridge/pkg/db"
)

func newRelayServer(t *testing.T, store RelayStore) *client.Client {
	t.Helper()
	r := chi.NewRouter()
	RegisterRoutes(r, store, zap.NewNop())
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return client.New(srv.URL, client.WithHTTPClient(srv.Client()))
}

func seedRelay(t *testing.T, store RelayStore, nonce uint64) {
	t.Helper()
	claim := testClaim(nonce)
	require.NoError(t, store.CreateRelay(context.Background(), &db.Relay{
		ID:                claim.Key(),
		SourceBridge:      claim.SourceBridge,
		DestinationBridge: claim.DestinationBridge,
		Sender:            claim.Sender,
		Recipient:         claim.Recipient,
		Amount:            claim.Amount,
		Nonce:             claim.Nonce,
		Status:            db.RelayStatusPending,
	}))
}

func TestHTTP_Relays(t *testing.T) {
	ctx := context.Background()
	store := db.NewMemoryStore()
	seedRelay(t, store, 1)
	time.Sleep(2 * time.Millisecond)
	seedRelay(t, store, 2)
	require.NoError(t, store.RecordAttempt(ctx, "dst/2", db.Attempt{Status: db.RelayStatusCompleted}))
	c := newRelayServer(t, store)

	all, err := c.Relays(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "dst/1", all[0].ID)

	completed, err := c.Relays(ctx, db.RelayStatusCompleted, 10)
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, uint64(2), completed[0].Nonce)
	assert.Equal(t, 1, completed[0].Attempts)
	assert.NotNil(t, completed[0].CompletedAt)

	relay, err := c.Relay(ctx, "dst", 1)
	require.NoError(t, err)
	assert.Equal(t, db.RelayStatusPending, relay.Status)
	assert.Equal(t, bob.Hex(), relay.Recipient)
}

func TestHTTP_RelayErrors(t *testing.T) {
	ctx := context.Background()
	c := newRelayServer(t, db.NewMemoryStore())

	_, err := c.Relay(ctx, "dst", 7)
	assert.True(t, apperrors.Is(err, apperrors.CategoryResourceNotFound))

	_, err = c.Relays(ctx, "stuck", 0)
	assert.True(t, apperrors.Is(err, apperrors.CategoryDataError))
}
