package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "github.com/chainsafe/burnmint-bridge/pkg/app/errors"
)

func TestHandleError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   ErrorResponse
	}{
		{
			name:   "service error with reason",
			err:    apperrors.WithReason(apperrors.ConflictError(errors.New("dup"), "nonce already processed"), "nonce_already_processed"),
			status: http.StatusConflict,
			body:   ErrorResponse{ErrMsg: "nonce already processed", ErrMsgCode: http.StatusConflict, Reason: "nonce_already_processed"},
		},
		{
			name:   "plain error",
			err:    errors.New("boom"),
			status: http.StatusInternalServerError,
			body:   ErrorResponse{ErrMsg: "Unexpected Service Error", ErrMsgCode: http.StatusInternalServerError},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := HandleError(func(http.ResponseWriter, *http.Request) error { return tt.err })
			rec := httptest.NewRecorder()
			h(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			var got ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, tt.body, got)
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	var v struct {
		Amount string `json:"amount"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"amount":"5"}`))
	require.NoError(t, DecodeJSON(req, &v))
	assert.Equal(t, "5", v.Amount)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"amount":"5","extra":1}`))
	err := DecodeJSON(req, &v)
	assert.True(t, apperrors.Is(err, apperrors.CategoryDataError))
}

func TestNewRouterHealth(t *testing.T) {
	r := NewRouter(zap.NewNop())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}
