package client

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "github.com/chainsafe/burnmint-bridge/pkg/app/errors"
	"github.com/chainsafe/burnmint-bridge/pkg/auth"
	"github.com/chainsafe/burnmint-bridge/pkg/bridge"
	"github.com/chainsafe/burnmint-bridge/pkg/bridge/service"
	"github.com/chainsafe/burnmint-bridge/pkg/store/memstore"
)

type testNode struct {
	client    *Client
	validator *bridge.Signer
	alice     *ecdsa.PrivateKey
	admin     *ecdsa.PrivateKey
}

func newTestNode(t *testing.T) *testNode {
	t.Helper()
	ctx := context.Background()

	validatorKey, err := crypto.GenerateKey()
	require.NoError(t, err)
	alice, err := crypto.GenerateKey()
	require.NoError(t, err)
	admin, err := crypto.GenerateKey()
	require.NoError(t, err)
	validator := bridge.NewSigner(validatorKey)
	aliceAddr := crypto.PubkeyToAddress(alice.PublicKey)
	adminAddr := crypto.PubkeyToAddress(admin.PublicKey)

	store := memstore.New("x", "y")
	locker := bridge.NewLocker()
	src := bridge.Config{ID: "src", Address: common.HexToAddress("0xb1"), Validator: validator.Address(), Ledger: "x", ChainIDFrom: 1, ChainIDTo: 2}
	dst := bridge.Config{ID: "dst", Address: common.HexToAddress("0xb2"), Validator: validator.Address(), Ledger: "y", ChainIDFrom: 1, ChainIDTo: 2}
	require.NoError(t, bridge.Bootstrap(ctx, store, []bridge.LedgerSetup{
		{ID: "x", Admin: adminAddr, InitialBalances: map[common.Address]*big.Int{aliceAddr: big.NewInt(1000)}},
		{ID: "y", Admin: adminAddr},
	}, []bridge.Config{src, dst}, true))

	srcInst, err := bridge.NewInstance(src, store, bridge.WithLocker(locker))
	require.NoError(t, err)
	dstInst, err := bridge.NewInstance(dst, store, bridge.WithLocker(locker))
	require.NoError(t, err)
	registry, err := bridge.NewRegistry(srcInst, dstInst)
	require.NoError(t, err)

	svc := service.NewService(registry, bridge.NewLedgerAdmin(store, locker), store)
	authn := auth.NewAuthenticator(time.Minute, nil, zap.NewNop())
	r := chi.NewRouter()
	service.RegisterRoutes(r, svc, authn.Middleware, zap.NewNop())

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &testNode{
		client:    New(srv.URL, WithHTTPClient(srv.Client())),
		validator: validator,
		alice:     alice,
		admin:     admin,
	}
}

func (n *testNode) sign(t *testing.T, ev *bridge.SwapEvent) bridge.RedeemBody {
	t.Helper()
	amount, ok := new(big.Int).SetString(ev.Amount, 10)
	require.True(t, ok)
	_, sig, err := n.validator.SignClaim(&bridge.Claim{
		Sender:      common.HexToAddress(ev.Sender),
		Recipient:   common.HexToAddress(ev.Recipient),
		Amount:      amount,
		Nonce:       ev.Seq,
		ChainIDFrom: ev.ChainIDFrom,
		ChainIDTo:   ev.ChainIDTo,
	})
	require.NoError(t, err)
	return bridge.RedeemBody{
		Sender:    ev.Sender,
		Recipient: ev.Recipient,
		Amount:    ev.Amount,
		Nonce:     ev.Seq,
		Signature: sig.Hex(),
	}
}

func TestClient_SwapAndRedeem(t *testing.T) {
	n := newTestNode(t)
	ctx := context.Background()

	bob, err := crypto.GenerateKey()
	require.NoError(t, err)
	bobAddr := crypto.PubkeyToAddress(bob.PublicKey)

	ev, err := n.client.As(n.alice).Swap(ctx, "src", bobAddr, big.NewInt(400))
	require.NoError(t, err)
	assert.Equal(t, "400", ev.Amount)
	assert.Equal(t, bobAddr.Hex(), ev.Recipient)

	balance, err := n.client.Balance(ctx, "x", crypto.PubkeyToAddress(n.alice.PublicKey))
	require.NoError(t, err)
	assert.Equal(t, int64(600), balance.Int64())

	swaps, err := n.client.ListSwaps(ctx, bridge.EventFilter{BridgeID: "src"})
	require.NoError(t, err)
	require.Len(t, swaps, 1)
	assert.Equal(t, ev.ID, swaps[0].ID)

	body := n.sign(t, ev)
	redeemed, err := n.client.As(bob).Redeem(ctx, "dst", body)
	require.NoError(t, err)
	assert.Equal(t, ev.Seq, redeemed.Nonce)

	balance, err = n.client.Balance(ctx, "y", bobAddr)
	require.NoError(t, err)
	assert.Equal(t, int64(400), balance.Int64())

	// a fresh timestamp keeps the retry clear of the replay guard
	retry := n.client.As(bob)
	retry.now = func() time.Time { return time.Now().Add(2 * time.Second) }
	_, err = retry.Redeem(ctx, "dst", body)
	require.Error(t, err)
	assert.ErrorIs(t, err, bridge.ErrNonceAlreadyProcessed)

	var svcErr *apperrors.ServiceError
	require.True(t, errors.As(err, &svcErr))
	assert.Equal(t, apperrors.CategoryDataConflict, svcErr.Category)
	assert.Equal(t, bridge.ReasonNonceAlreadyProcessed, svcErr.Reason)

	redeems, err := n.client.ListRedeems(ctx, bridge.EventFilter{BridgeID: "dst"})
	require.NoError(t, err)
	require.Len(t, redeems, 1)
}

func TestClient_RedeemByOtherAccountIsRejected(t *testing.T) {
	n := newTestNode(t)
	ctx := context.Background()

	bob := common.HexToAddress("0x0000000000000000000000000000000000000b0b")
	ev, err := n.client.As(n.alice).Swap(ctx, "src", bob, big.NewInt(1))
	require.NoError(t, err)

	_, err = n.client.As(n.alice).Redeem(ctx, "dst", n.sign(t, ev))
	assert.ErrorIs(t, err, bridge.ErrNotRecipient)
}

func TestClient_UnsignedMutationFails(t *testing.T) {
	n := newTestNode(t)

	_, err := n.client.Swap(context.Background(), "src", common.Address{}, big.NewInt(1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires a signing key")
}

func TestClient_Bridges(t *testing.T) {
	n := newTestNode(t)
	ctx := context.Background()

	list, err := n.client.Bridges(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "dst", list[0].ID)

	info, err := n.client.Bridge(ctx, "src")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), info.ChainIDFrom)

	_, err = n.client.Bridge(ctx, "nope")
	assert.ErrorIs(t, err, bridge.ErrUnknownBridge)
	var svcErr *apperrors.ServiceError
	require.True(t, errors.As(err, &svcErr))
	assert.Equal(t, apperrors.CategoryResourceNotFound, svcErr.Category)
}

func TestClient_AdminOperations(t *testing.T) {
	n := newTestNode(t)
	ctx := context.Background()
	admin := n.client.As(n.admin)
	adminAddr := crypto.PubkeyToAddress(n.admin.PublicKey)
	carol := common.HexToAddress("0x00000000000000000000000000000000000000c0")

	_, err := n.client.As(n.alice).Mint(ctx, "y", carol, big.NewInt(5))
	assert.ErrorIs(t, err, bridge.ErrMissingCapability)

	require.NoError(t, admin.Grant(ctx, "y", adminAddr, bridge.CapabilityMint))
	out, err := admin.Mint(ctx, "y", carol, big.NewInt(5))
	require.NoError(t, err)
	assert.Equal(t, "5", out.Balance)

	require.NoError(t, admin.Revoke(ctx, "y", adminAddr, bridge.CapabilityMint))
	_, err = admin.Mint(ctx, "y", carol, big.NewInt(6))
	assert.ErrorIs(t, err, bridge.ErrMissingCapability)

	err = n.client.As(n.alice).Grant(ctx, "y", carol, bridge.CapabilityMint)
	assert.ErrorIs(t, err, bridge.ErrNotAdmin)
}

func TestDecodeError(t *testing.T) {
	err := decodeError(http.StatusBadGateway, []byte("not json"))
	var svcErr *apperrors.ServiceError
	require.True(t, errors.As(err, &svcErr))
	assert.Equal(t, http.StatusText(http.StatusBadGateway), svcErr.Message)
	assert.Empty(t, svcErr.Reason)

	err = decodeError(http.StatusForbidden, []byte(`{"error":"bad sig","code":403,"reason":"invalid_signature"}`))
	assert.ErrorIs(t, err, bridge.ErrInvalidSignature)
	require.True(t, errors.As(err, &svcErr))
	assert.Equal(t, apperrors.CategoryForbidden, svcErr.Category)
}
