package service

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "github.com/chainsafe/burnmint-bridge/pkg/app/errors"
	apphttp "github.com/chainsafe/burnmint-bridge/pkg/app/http"
	"github.com/chainsafe/burnmint-bridge/pkg/auth"
	"github.com/chainsafe/burnmint-bridge/pkg/bridge"
	"github.com/chainsafe/burnmint-bridge/pkg/bridge/service/mocks"
)

// asCaller authenticates every request as caller.
func asCaller(caller common.Address) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(auth.WithCaller(r.Context(), caller, auth.MethodSignature)))
		})
	}
}

func newTestServer(svc Service, authMiddleware func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()
	RegisterRoutes(r, svc, authMiddleware, zap.NewNop())
	return r
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apphttp.ErrorResponse {
	t.Helper()
	var got apphttp.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	return got
}

func TestSwapHTTP_PassesCallerAndBody(t *testing.T) {
	caller := common.HexToAddress("0x000000000000000000000000000000000000a11c")
	svc := mocks.NewService(t)
	svc.EXPECT().
		Swap(mock.Anything, caller, "src", &bridge.SwapRequest{Recipient: "0xb0b", Amount: "7"}).
		Return(&bridge.SwapEvent{Seq: 3, BridgeID: "src", Amount: "7"}, nil)
	handler := newTestServer(svc, asCaller(caller))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bridges/src/swap", bytes.NewBufferString(`{"recipient":"0xb0b","amount":"7"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got bridge.SwapEvent
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, uint64(3), got.Seq)
}

func TestSwapHTTP_InvalidJSON_ReturnsBadRequest(t *testing.T) {
	svc := mocks.NewService(t)
	handler := newTestServer(svc, asCaller(common.Address{1}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bridges/src/swap", bytes.NewBufferString("{invalid"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, http.StatusBadRequest, decodeError(t, rec).ErrMsgCode)
}

func TestSwapHTTP_UnknownFieldRejected(t *testing.T) {
	svc := mocks.NewService(t)
	handler := newTestServer(svc, asCaller(common.Address{1}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bridges/src/swap", bytes.NewBufferString(`{"recipient":"0xb0b","amount":"1","sender":"0x1"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRedeemHTTP_ReasonPropagated(t *testing.T) {
	svc := mocks.NewService(t)
	svc.EXPECT().
		Redeem(mock.Anything, mock.Anything, "dst", mock.Anything).
		Return(nil, toServiceError(bridge.ErrNonceAlreadyProcessed))
	handler := newTestServer(svc, asCaller(common.Address{1}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bridges/dst/redeem", bytes.NewBufferString(`{"nonce":1}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	got := decodeError(t, rec)
	assert.Equal(t, bridge.ReasonNonceAlreadyProcessed, got.Reason)
	assert.Equal(t, bridge.ErrNonceAlreadyProcessed.Error(), got.ErrMsg)
}

func TestMutatingRoutesRequireAuthentication(t *testing.T) {
	svc := mocks.NewService(t)
	deny := func(http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			apphttp.DefaultErrorHandler(w, apperrors.UnAuthorizedError(nil, "authentication required"))
		})
	}
	handler := newTestServer(svc, deny)

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/api/v1/bridges/src/swap"},
		{http.MethodPost, "/api/v1/bridges/dst/redeem"},
		{http.MethodPost, "/api/v1/ledgers/x/mint"},
		{http.MethodPost, "/api/v1/ledgers/x/capabilities"},
		{http.MethodDelete, "/api/v1/ledgers/x/capabilities"},
	} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, bytes.NewBufferString(`{}`)))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", tc.method, tc.path)
	}
}

func TestListSwapsHTTP_Filter(t *testing.T) {
	svc := mocks.NewService(t)
	svc.EXPECT().
		ListSwaps(mock.Anything, bridge.EventFilter{BridgeID: "src", After: 5, Limit: 2}).
		Return([]bridge.SwapEvent{{Seq: 6}, {Seq: 7}}, nil)
	handler := newTestServer(svc, asCaller(common.Address{1}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/bridges/src/events/swaps?after=5&limit=2", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got []bridge.SwapEvent
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, uint64(7), got[1].Seq)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/bridges/src/events/swaps?after=-1", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBalanceHTTP_NotFound(t *testing.T) {
	svc := mocks.NewService(t)
	svc.EXPECT().
		Balance(mock.Anything, "z", "0xabc").
		Return(nil, toServiceError(bridge.ErrUnknownLedger))
	handler := newTestServer(svc, asCaller(common.Address{1}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/ledgers/z/balances/0xabc", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, bridge.ReasonUnknownLedger, decodeError(t, rec).Reason)
}

func TestGrantHTTP_NoContent(t *testing.T) {
	admin := common.HexToAddress("0xa1")
	svc := mocks.NewService(t)
	svc.EXPECT().
		Grant(mock.Anything, admin, "x", &bridge.CapabilityRequest{Account: "0xb1", Capability: "mint"}).
		Return(nil)
	svc.EXPECT().
		Revoke(mock.Anything, admin, "x", &bridge.CapabilityRequest{Account: "0xb1", Capability: "mint"}).
		Return(nil)
	handler := newTestServer(svc, asCaller(admin))

	body := `{"account":"0xb1","capability":"mint"}`
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/ledgers/x/capabilities", bytes.NewBufferString(body)))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/ledgers/x/capabilities", bytes.NewBufferString(body)))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
