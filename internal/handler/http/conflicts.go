package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kotobadev/kotoba-sync/internal/logger"
	"github.com/kotobadev/kotoba-sync/internal/utils"
	"github.com/kotobadev/kotoba-sync/models"
)

// defaultConflictListLimit bounds an unqualified conflict listing.
const defaultConflictListLimit = 50

func (h *Handler) listConflicts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.listConflicts").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusBadRequest)
		return
	}

	status := models.ConflictStatus(r.URL.Query().Get("status"))
	if status == "" {
		status = models.ConflictStatusPending
	}

	limit := uint64(defaultConflictListLimit)
	if rawLimit := r.URL.Query().Get("limit"); rawLimit != "" {
		parsed, err := strconv.ParseUint(rawLimit, 10, 64)
		if err != nil || parsed == 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	conflicts, err := h.services.SyncService.ListConflicts(ctx, userID, status, limit)
	if err != nil {
		log.Err(err).Str("func", "*Handler.listConflicts").Msg("error listing conflicts")
		http.Error(w, "error listing conflicts", statusFromError(err))
		return
	}

	utils.WriteJSON(w, conflicts, http.StatusOK)
}

func (h *Handler) resolveConflict(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.resolveConflict").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusBadRequest)
		return
	}

	conflictID := chi.URLParam(r, "conflictID")

	var request models.ResolveConflictRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Str("func", "*Handler.resolveConflict").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	err := h.services.SyncService.ResolveConflict(ctx, userID, conflictID, request.ChosenData, resolverIdentity(userID))
	if err != nil {
		log.Err(err).Str("conflict_id", conflictID).Msg("error resolving conflict")
		http.Error(w, "error resolving conflict", statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) ignoreConflict(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.ignoreConflict").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusBadRequest)
		return
	}

	conflictID := chi.URLParam(r, "conflictID")

	err := h.services.SyncService.IgnoreConflict(ctx, userID, conflictID, resolverIdentity(userID))
	if err != nil {
		log.Err(err).Str("conflict_id", conflictID).Msg("error ignoring conflict")
		http.Error(w, "error ignoring conflict", statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusOK)
}

// resolverIdentity is the audit identity recorded for manual decisions.
func resolverIdentity(userID int64) string {
	return fmt.Sprintf("user:%d", userID)
}
