package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/MatiasRiera/travelmatch-backend/internal/models"
	"github.com/MatiasRiera/travelmatch-backend/internal/services"
)

// UserHandler serves the current-user profile endpoints.
type UserHandler struct {
	store    services.ProfileStore
	sessions SessionStore
}

func NewUserHandler(store services.ProfileStore, sessions SessionStore) *UserHandler {
	return &UserHandler{store: store, sessions: sessions}
}

// GetMe handles GET /api/user/me. Responds 204 with an empty body when no
// profile is stored yet.
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	id := resolveUserID(r, h.sessions)

	profile, err := h.store.Get(r.Context(), id)
	if err != nil {
		log.Printf("failed to load profile %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}
	if profile == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// PutMe handles PUT /api/user/me: create-or-replace the current user's
// profile. Last write wins; there is no concurrency check. The stored
// password hash and creation time survive the replace since the request
// body can never carry them.
func (h *UserHandler) PutMe(w http.ResponseWriter, r *http.Request) {
	var profile models.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id := resolveUserID(r, h.sessions)
	profile.ID = id

	if existing, err := h.store.Get(r.Context(), id); err == nil && existing != nil {
		profile.Password = existing.Password
		profile.CreatedAt = existing.CreatedAt
	}

	stored, err := h.store.Put(r.Context(), &profile)
	if err != nil {
		log.Printf("failed to save profile %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, "failed to save profile")
		return
	}

	writeJSON(w, http.StatusOK, stored)
}
