package relayer

import (
	"context"
	"crypto/ecdsa"
	"math/big"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/chainsafe/burnmint-bridge/pkg/auth"
	"github.com/chainsafe/burnmint-bridge/pkg/bridge"
	"github.com/chainsafe/burnmint-bridge/pkg/bridge/service"
	"github.com/chainsafe/burnmint-bridge/pkg/client"
	"github.com/chainsafe/burnmint-bridge/pkg/db"
	"github.com/chainsafe/burnmint-bridge/pkg/keys"
	"github.com/chainsafe/burnmint-bridge/pkg/store/memstore"
	"github.com/chainsafe/burnmint-bridge/pkg/validator"
)

type stack struct {
	node      *client.Client
	validator *validator.Validator
	claims    *validator.MemoryStore
	claimsAPI *client.Client
	alice     *ecdsa.PrivateKey
	aliceAddr common.Address
}

// newStack runs a node with a corridor between ledgers x and y, and a validator
// watching it, both behind real HTTP servers.
func newStack(t *testing.T) *stack {
	t.Helper()
	ctx := context.Background()

	validatorKey, err := keys.Generate()
	require.NoError(t, err)
	signer := bridge.NewSigner(validatorKey)
	alice, err := keys.Generate()
	require.NoError(t, err)
	aliceAddr := keys.Address(alice)

	store := memstore.New("x", "y")
	locker := bridge.NewLocker()
	src := bridge.Config{ID: "src", Address: common.HexToAddress("0xb1"), Validator: signer.Address(), Ledger: "x", ChainIDFrom: 1, ChainIDTo: 2}
	dst := bridge.Config{ID: "dst", Address: common.HexToAddress("0xb2"), Validator: signer.Address(), Ledger: "y", ChainIDFrom: 1, ChainIDTo: 2}
	admin := common.HexToAddress("0xa1")
	require.NoError(t, bridge.Bootstrap(ctx, store, []bridge.LedgerSetup{
		{ID: "x", Admin: admin, InitialBalances: map[common.Address]*big.Int{aliceAddr: big.NewInt(1000)}},
		{ID: "y", Admin: admin},
	}, []bridge.Config{src, dst}, true))

	srcInst, err := bridge.NewInstance(src, store, bridge.WithLocker(locker))
	require.NoError(t, err)
	dstInst, err := bridge.NewInstance(dst, store, bridge.WithLocker(locker))
	require.NoError(t, err)
	registry, err := bridge.NewRegistry(srcInst, dstInst)
	require.NoError(t, err)

	nodeRouter := chi.NewRouter()
	service.RegisterRoutes(nodeRouter,
		service.NewService(registry, bridge.NewLedgerAdmin(store, locker), store),
		auth.NewAuthenticator(time.Minute, nil, zap.NewNop()).Middleware,
		zap.NewNop())
	nodeSrv := httptest.NewServer(nodeRouter)
	t.Cleanup(nodeSrv.Close)
	node := client.New(nodeSrv.URL, client.WithHTTPClient(nodeSrv.Client()))

	claims := validator.NewMemoryStore()
	v := validator.New(node, claims, signer, []validator.Route{{Source: "src", Destination: "dst"}}, validator.Options{}, zap.NewNop())
	claimRouter := chi.NewRouter()
	validator.RegisterRoutes(claimRouter, claims, v.Address(), zap.NewNop())
	claimSrv := httptest.NewServer(claimRouter)
	t.Cleanup(claimSrv.Close)

	return &stack{
		node:      node,
		validator: v,
		claims:    claims,
		claimsAPI: client.New(claimSrv.URL, client.WithHTTPClient(claimSrv.Client())),
		alice:     alice,
		aliceAddr: aliceAddr,
	}
}

func TestIntegration_SwapSignRelayRedeem(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	bobKey, err := keys.Generate()
	require.NoError(t, err)
	ring := keys.NewRing(bobKey)
	bobAddr := keys.Address(bobKey)

	_, err = s.node.As(s.alice).Swap(ctx, "src", bobAddr, big.NewInt(250))
	require.NoError(t, err)
	require.NoError(t, s.validator.Poll(ctx))

	relays := db.NewMemoryStore()
	p := NewProcessor(bobAddr,
		NewValidatorSource(s.claimsAPI, 50),
		NewNodeDestination(s.node, ring),
		relays, 3, zap.NewNop())

	n, err := p.ProcessOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	balance, err := s.node.Balance(ctx, "y", bobAddr)
	require.NoError(t, err)
	assert.Equal(t, int64(250), balance.Int64())

	// the validator settles the claim once it observes the redeem
	require.NoError(t, s.validator.Poll(ctx))
	claims, err := s.claimsAPI.Claims(ctx, bridge.ClaimQuery{Recipient: bobAddr.Hex()})
	require.NoError(t, err)
	require.Len(t, claims, 1)
	assert.Equal(t, bridge.ClaimRedeemed, claims[0].Status)

	n, err = p.ProcessOnce(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestIntegration_ManualRedeemIsDetected(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	bobKey, err := keys.Generate()
	require.NoError(t, err)
	bobAddr := keys.Address(bobKey)

	_, err = s.node.As(s.alice).Swap(ctx, "src", bobAddr, big.NewInt(10))
	require.NoError(t, err)
	require.NoError(t, s.validator.Poll(ctx))

	claims, err := s.claimsAPI.Claims(ctx, bridge.ClaimQuery{Recipient: bobAddr.Hex(), Status: bridge.ClaimPending})
	require.NoError(t, err)
	require.Len(t, claims, 1)

	// the recipient collects the claim without the relayer
	_, err = s.node.As(bobKey).Redeem(ctx, "dst", claims[0].RedeemBody())
	require.NoError(t, err)

	relays := db.NewMemoryStore()
	p := NewProcessor(bobAddr, NewValidatorSource(s.claimsAPI, 50), NewNodeDestination(s.node, keys.NewRing(bobKey)), relays, 3, zap.NewNop())
	n, err := p.ProcessOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	rec, err := relays.GetRelay(ctx, claims[0].Key())
	require.NoError(t, err)
	assert.Equal(t, db.RelayStatusCompleted, rec.Status)
	require.NotNil(t, rec.LastError)
	assert.Contains(t, *rec.LastError, "nonce already processed")
}

func TestIntegration_UnknownRecipientKeyFails(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	bobKey, err := keys.Generate()
	require.NoError(t, err)
	bobAddr := keys.Address(bobKey)

	_, err = s.node.As(s.alice).Swap(ctx, "src", bobAddr, big.NewInt(10))
	require.NoError(t, err)
	require.NoError(t, s.validator.Poll(ctx))

	relays := db.NewMemoryStore()
	p := NewProcessor(bobAddr, NewValidatorSource(s.claimsAPI, 50), NewNodeDestination(s.node, keys.NewRing()), relays, 3, zap.NewNop())
	_, err = p.ProcessOnce(ctx)
	require.NoError(t, err)

	failed, err := relays.ListRelays(ctx, db.RelayStatusFailed, 0)
	require.NoError(t, err)
	assert.Len(t, failed, 1)
}

func TestValidatorSource_FiltersForeignClaims(t *testing.T) {
	lister := claimListerFunc(func(_ context.Context, q bridge.ClaimQuery) ([]bridge.SignedClaim, error) {
		assert.Equal(t, bridge.ClaimPending, q.Status)
		assert.Equal(t, 10, q.Limit)
		other := testClaim(2)
		other.Recipient = "0x00000000000000000000000000000000000000c0"
		return []bridge.SignedClaim{testClaim(1), other}, nil
	})

	claims, err := NewValidatorSource(lister, 10).PendingClaims(context.Background(), bob)
	require.NoError(t, err)
	require.Len(t, claims, 1)
	assert.Equal(t, uint64(1), claims[0].Nonce)
}

type claimListerFunc func(ctx context.Context, q bridge.ClaimQuery) ([]bridge.SignedClaim, error)

func (f claimListerFunc) Claims(ctx context.Context, q bridge.ClaimQuery) ([]bridge.SignedClaim, error) {
	return f(ctx, q)
}

// storeLister serves claims from a validator store the way the claim API does
type storeLister struct {
	store *validator.MemoryStore
}

func (l storeLister) Claims(ctx context.Context, q bridge.ClaimQuery) ([]bridge.SignedClaim, error) {
	claims, err := l.store.List(ctx, q)
	if err != nil {
		return nil, err
	}
	out := make([]bridge.SignedClaim, 0, len(claims))
	for _, c := range claims {
		out = append(out, *c)
	}
	return out, nil
}

func TestProcessor_AbandonedClaimsDoNotStarveLaterOnes(t *testing.T) {
	ctx := context.Background()
	claims := validator.NewMemoryStore()
	for nonce := uint64(1); nonce <= 3; nonce++ {
		c := testClaim(nonce)
		require.NoError(t, claims.Save(ctx, &c))
	}

	submitted := make(map[uint64]int)
	dest := &MockDestination{
		SubmitRedeemFunc: func(_ context.Context, claim *bridge.SignedClaim) (*bridge.RedeemEvent, error) {
			submitted[claim.Nonce]++
			if claim.Nonce < 3 {
				return nil, bridge.ErrRedeemFailed
			}
			return &bridge.RedeemEvent{Nonce: claim.Nonce}, nil
		},
	}
	relays := db.NewMemoryStore()
	p := NewProcessor(bob, NewValidatorSource(storeLister{claims}, 2), dest, relays, 1, zap.NewNop())

	for i := 0; i < 3; i++ {
		_, _ = p.ProcessOnce(ctx)
	}

	assert.Equal(t, map[uint64]int{1: 1, 2: 1, 3: 1}, submitted)
	rec, err := relays.GetRelay(ctx, "dst/3")
	require.NoError(t, err)
	assert.Equal(t, db.RelayStatusCompleted, rec.Status)
	failed, err := relays.ListRelays(ctx, db.RelayStatusFailed, 0)
	require.NoError(t, err)
	assert.Len(t, failed, 2)
}

func TestValidatorSource_PagesThroughClaims(t *testing.T) {
	var queries []bridge.ClaimQuery
	lister := claimListerFunc(func(_ context.Context, q bridge.ClaimQuery) ([]bridge.SignedClaim, error) {
		queries = append(queries, q)
		switch q.AfterNonce {
		case 0:
			return []bridge.SignedClaim{testClaim(1), testClaim(2)}, nil
		case 2:
			return []bridge.SignedClaim{testClaim(5)}, nil
		default:
			return nil, nil
		}
	})

	claims, err := NewValidatorSource(lister, 2).PendingClaims(context.Background(), bob)
	require.NoError(t, err)
	require.Len(t, claims, 3)
	assert.Equal(t, uint64(5), claims[2].Nonce)
	require.Len(t, queries, 2)
	assert.Equal(t, "", queries[0].AfterBridge)
	assert.Equal(t, "dst", queries[1].AfterBridge)
	assert.Equal(t, uint64(2), queries[1].AfterNonce)
}

func TestValidatorSource_StuckListingFails(t *testing.T) {
	lister := claimListerFunc(func(_ context.Context, _ bridge.ClaimQuery) ([]bridge.SignedClaim, error) {
		return []bridge.SignedClaim{testClaim(1)}, nil
	})
	_, err := NewValidatorSource(lister, 1).PendingClaims(context.Background(), bob)
	assert.ErrorContains(t, err, "did not advance")
}
