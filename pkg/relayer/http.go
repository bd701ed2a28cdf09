package relayer

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apperrors "github.com/chainsafe/burnmint-bridge/pkg/app/errors"
	apphttp "github.com/chainsafe/burnmint-bridge/pkg/app/http"
	"github.com/chainsafe/burnmint-bridge/pkg/db"
)

// DefaultRelayLimit caps relay listings when no limit is given.
const DefaultRelayLimit = 100

// HTTP serves the relay records of the relayer.
type HTTP struct {
	store  RelayStore
	logger *zap.Logger
}

// RegisterRoutes registers the relay status API on r.
func RegisterRoutes(r chi.Router, store RelayStore, logger *zap.Logger) {
	h := &HTTP{store: store, logger: logger}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/relays", apphttp.HandleError(h.listRelays))
		// claim keys contain a slash
		r.Get("/relays/{bridge}/{nonce}", apphttp.HandleError(h.getRelay))
	})
}

func (h *HTTP) listRelays(w http.ResponseWriter, r *http.Request) error {
	q := r.URL.Query()

	var status db.RelayStatus
	if v := q.Get("status"); v != "" {
		st, err := db.ParseRelayStatus(v)
		if err != nil {
			return apperrors.BadRequestError(err, err.Error())
		}
		status = st
	}
	limit := DefaultRelayLimit
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return apperrors.BadRequestError(err, "invalid limit parameter")
		}
		limit = n
	}

	relays, err := h.store.ListRelays(r.Context(), status, limit)
	if err != nil {
		h.logger.Error("Failed to list relays", zap.Error(err))
		return apperrors.GeneralError(err)
	}
	return apphttp.WriteJSON(w, http.StatusOK, relays)
}

func (h *HTTP) getRelay(w http.ResponseWriter, r *http.Request) error {
	id := chi.URLParam(r, "bridge") + "/" + chi.URLParam(r, "nonce")
	relay, err := h.store.GetRelay(r.Context(), id)
	if errors.Is(err, db.ErrRelayNotFound) {
		return apperrors.ResourceNotFoundError(err, "relay not found")
	}
	if err != nil {
		h.logger.Error("Failed to read relay", zap.Error(err), zap.String("id", id))
		return apperrors.GeneralError(err)
	}
	return apphttp.WriteJSON(w, http.StatusOK, relay)
}
