package validator

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apperrors "github.com/chainsafe/burnmint-bridge/pkg/app/errors"
	apphttp "github.com/chainsafe/burnmint-bridge/pkg/app/http"
	"github.com/chainsafe/burnmint-bridge/pkg/bridge"
)

// HTTP serves the signed claims of a validator.
type HTTP struct {
	store   ClaimStore
	address string
	logger  *zap.Logger
}

// RegisterRoutes registers the claim API on r.
func RegisterRoutes(r chi.Router, store ClaimStore, address string, logger *zap.Logger) {
	h := &HTTP{store: store, address: address, logger: logger}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/validator", apphttp.HandleError(h.info))
		r.Get("/claims", apphttp.HandleError(h.listClaims))
		r.Get("/claims/{bridge}/{nonce}", apphttp.HandleError(h.getClaim))
	})
}

func (h *HTTP) info(w http.ResponseWriter, _ *http.Request) error {
	return apphttp.WriteJSON(w, http.StatusOK, map[string]string{"address": h.address})
}

func (h *HTTP) listClaims(w http.ResponseWriter, r *http.Request) error {
	q := r.URL.Query()
	query := bridge.ClaimQuery{
		DestinationBridge: q.Get("bridge"),
	}
	if v := q.Get("recipient"); v != "" {
		recipient, err := bridge.ParseAddress("recipient", v)
		if err != nil {
			return apperrors.BadRequestError(err, err.Error())
		}
		query.Recipient = recipient.Hex()
	}
	if v := q.Get("status"); v != "" {
		status, err := bridge.ParseClaimStatus(v)
		if err != nil {
			return apperrors.BadRequestError(err, err.Error())
		}
		query.Status = status
	}
	if v := q.Get("after_bridge"); v != "" {
		nonce, err := strconv.ParseUint(q.Get("after_nonce"), 10, 64)
		if err != nil {
			return apperrors.BadRequestError(err, "invalid after_nonce parameter")
		}
		query.AfterBridge = v
		query.AfterNonce = nonce
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			return apperrors.BadRequestError(err, "invalid limit parameter")
		}
		query.Limit = limit
	}

	claims, err := h.store.List(r.Context(), query)
	if err != nil {
		h.logger.Error("Failed to list claims", zap.Error(err))
		return apperrors.UnavailableError(err, "claim store unavailable")
	}
	return apphttp.WriteJSON(w, http.StatusOK, claims)
}

func (h *HTTP) getClaim(w http.ResponseWriter, r *http.Request) error {
	nonce, err := strconv.ParseUint(chi.URLParam(r, "nonce"), 10, 64)
	if err != nil {
		return apperrors.BadRequestError(err, "invalid nonce")
	}
	claim, err := h.store.Get(r.Context(), chi.URLParam(r, "bridge"), nonce)
	if errors.Is(err, ErrClaimNotFound) {
		return apperrors.ResourceNotFoundError(err, "claim not found")
	}
	if err != nil {
		h.logger.Error("Failed to read claim", zap.Error(err))
		return apperrors.UnavailableError(err, "claim store unavailable")
	}
	return apphttp.WriteJSON(w, http.StatusOK, claim)
}
