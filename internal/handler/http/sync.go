package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kotobadev/kotoba-sync/internal/logger"
	"github.com/kotobadev/kotoba-sync/internal/service"
	"github.com/kotobadev/kotoba-sync/internal/utils"
	"github.com/kotobadev/kotoba-sync/models"
)

func (h *Handler) sync(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.sync").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusBadRequest)
		return
	}

	var syncRequest models.SyncRequest
	if err := json.NewDecoder(r.Body).Decode(&syncRequest); err != nil {
		log.Err(err).Str("func", "*Handler.sync").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	// The owner is always the authenticated user, never the request body.
	syncRequest.UserID = userID

	response, err := h.services.SyncService.Sync(ctx, syncRequest)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSyncInProgress):
			log.Warn().Str("device_id", syncRequest.DeviceID).Msg("sync already in progress for device")
			http.Error(w, "sync already in progress for this device", http.StatusConflict)
			return
		default:
			log.Err(err).Str("func", "*Handler.sync").Msg("sync session failed")
			http.Error(w, "sync session failed", statusFromError(err))
			return
		}
	}

	utils.WriteJSON(w, response, http.StatusOK)
}
