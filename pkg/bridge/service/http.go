package service

import (
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apperrors "github.com/chainsafe/burnmint-bridge/pkg/app/errors"
	apphttp "github.com/chainsafe/burnmint-bridge/pkg/app/http"
	"github.com/chainsafe/burnmint-bridge/pkg/auth"
	"github.com/chainsafe/burnmint-bridge/pkg/bridge"
)

// HTTP wraps the Service to provide HTTP endpoints
type HTTP struct {
	service Service
	logger  *zap.Logger
}

// RegisterRoutes registers the node API on r. Mutating endpoints sit behind authMiddleware,
// which must store the caller with auth.WithCaller.
func RegisterRoutes(r chi.Router, service Service, authMiddleware func(http.Handler) http.Handler, logger *zap.Logger) {
	h := &HTTP{
		service: service,
		logger:  logger,
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/bridges", apphttp.HandleError(h.listBridges))
		r.Get("/bridges/{id}", apphttp.HandleError(h.getBridge))
		r.Get("/bridges/{id}/events/swaps", apphttp.HandleError(h.listSwaps))
		r.Get("/bridges/{id}/events/redeems", apphttp.HandleError(h.listRedeems))
		r.Get("/ledgers/{id}/balances/{account}", apphttp.HandleError(h.balance))

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Post("/bridges/{id}/swap", apphttp.HandleError(h.swap))
			r.Post("/bridges/{id}/redeem", apphttp.HandleError(h.redeem))
			r.Post("/ledgers/{id}/mint", apphttp.HandleError(h.mint))
			r.Post("/ledgers/{id}/capabilities", apphttp.HandleError(h.grant))
			r.Delete("/ledgers/{id}/capabilities", apphttp.HandleError(h.revoke))
		})
	})
}

func (h *HTTP) listBridges(w http.ResponseWriter, r *http.Request) error {
	out, err := h.service.Bridges(r.Context())
	if err != nil {
		return err
	}
	return apphttp.WriteJSON(w, http.StatusOK, out)
}

func (h *HTTP) getBridge(w http.ResponseWriter, r *http.Request) error {
	out, err := h.service.Bridge(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return err
	}
	return apphttp.WriteJSON(w, http.StatusOK, out)
}

func (h *HTTP) swap(w http.ResponseWriter, r *http.Request) error {
	caller, err := callerOf(r)
	if err != nil {
		return err
	}
	var req bridge.SwapRequest
	if err := apphttp.DecodeJSON(r, &req); err != nil {
		return err
	}
	out, err := h.service.Swap(r.Context(), caller, chi.URLParam(r, "id"), &req)
	if err != nil {
		return err
	}
	return apphttp.WriteJSON(w, http.StatusOK, out)
}

func (h *HTTP) redeem(w http.ResponseWriter, r *http.Request) error {
	caller, err := callerOf(r)
	if err != nil {
		return err
	}
	var req bridge.RedeemBody
	if err := apphttp.DecodeJSON(r, &req); err != nil {
		return err
	}
	out, err := h.service.Redeem(r.Context(), caller, chi.URLParam(r, "id"), &req)
	if err != nil {
		return err
	}
	return apphttp.WriteJSON(w, http.StatusOK, out)
}

func (h *HTTP) listSwaps(w http.ResponseWriter, r *http.Request) error {
	filter, err := eventFilter(r)
	if err != nil {
		return err
	}
	out, err := h.service.ListSwaps(r.Context(), filter)
	if err != nil {
		return err
	}
	return apphttp.WriteJSON(w, http.StatusOK, out)
}

func (h *HTTP) listRedeems(w http.ResponseWriter, r *http.Request) error {
	filter, err := eventFilter(r)
	if err != nil {
		return err
	}
	out, err := h.service.ListRedeems(r.Context(), filter)
	if err != nil {
		return err
	}
	return apphttp.WriteJSON(w, http.StatusOK, out)
}

func (h *HTTP) balance(w http.ResponseWriter, r *http.Request) error {
	out, err := h.service.Balance(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "account"))
	if err != nil {
		return err
	}
	return apphttp.WriteJSON(w, http.StatusOK, out)
}

func (h *HTTP) mint(w http.ResponseWriter, r *http.Request) error {
	caller, err := callerOf(r)
	if err != nil {
		return err
	}
	var req bridge.MintRequest
	if err := apphttp.DecodeJSON(r, &req); err != nil {
		return err
	}
	out, err := h.service.Mint(r.Context(), caller, chi.URLParam(r, "id"), &req)
	if err != nil {
		return err
	}
	return apphttp.WriteJSON(w, http.StatusOK, out)
}

func (h *HTTP) grant(w http.ResponseWriter, r *http.Request) error {
	caller, err := callerOf(r)
	if err != nil {
		return err
	}
	var req bridge.CapabilityRequest
	if err := apphttp.DecodeJSON(r, &req); err != nil {
		return err
	}
	if err := h.service.Grant(r.Context(), caller, chi.URLParam(r, "id"), &req); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (h *HTTP) revoke(w http.ResponseWriter, r *http.Request) error {
	caller, err := callerOf(r)
	if err != nil {
		return err
	}
	var req bridge.CapabilityRequest
	if err := apphttp.DecodeJSON(r, &req); err != nil {
		return err
	}
	if err := h.service.Revoke(r.Context(), caller, chi.URLParam(r, "id"), &req); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func callerOf(r *http.Request) (common.Address, error) {
	caller, ok := auth.CallerFromContext(r.Context())
	if !ok {
		return common.Address{}, apperrors.UnAuthorizedError(nil, "authentication required")
	}
	return caller, nil
}

func eventFilter(r *http.Request) (bridge.EventFilter, error) {
	filter := bridge.EventFilter{BridgeID: chi.URLParam(r, "id")}
	q := r.URL.Query()
	if v := q.Get("after"); v != "" {
		after, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return filter, apperrors.BadRequestError(err, "invalid after parameter")
		}
		filter.After = after
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			return filter, apperrors.BadRequestError(err, "invalid limit parameter")
		}
		filter.Limit = limit
	}
	return filter, nil
}
