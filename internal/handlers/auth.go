package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MatiasRiera/travelmatch-backend/internal/models"
	"github.com/MatiasRiera/travelmatch-backend/internal/services"
)

// AuthServicer is the slice of AuthService the auth endpoints need.
type AuthServicer interface {
	Register(ctx context.Context, in services.RegisterInput) (*models.UserProfile, error)
	Login(ctx context.Context, email, password string) (*models.UserProfile, error)
	UpdateProfile(ctx context.Context, id string, fields map[string]interface{}) (*models.UserProfile, error)
}

// AuthHandler serves registration, login and profile updates.
type AuthHandler struct {
	auth     AuthServicer
	sessions SessionStore
}

// NewAuthHandler builds the handler. sessions may be nil; tokens are then
// simply omitted from responses.
func NewAuthHandler(auth AuthServicer, sessions SessionStore) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions}
}

// authResponse is the success body for register and login.
type authResponse struct {
	User  *models.UserProfile `json:"user"`
	Token string              `json:"token,omitempty"`
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, err := h.auth.Register(r.Context(), in)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, authResponse{
		User:  profile,
		Token: h.createSession(r.Context(), profile.ID),
	})
}

// loginRequest is the POST /api/auth/login body.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{
		User:  profile,
		Token: h.createSession(r.Context(), profile.ID),
	})
}

// UpdateUser handles PUT /api/users/{id}: a partial profile update. Any
// attempt to set the password through this path is stripped by the service.
func (h *AuthHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// Translate JSON field names to store keys, dropping unknown fields.
	fields := make(map[string]interface{}, len(body))
	for key, value := range body {
		if bsonKey, ok := models.ProfileFieldBSON[key]; ok {
			fields[bsonKey] = value
		}
	}

	profile, err := h.auth.UpdateProfile(r.Context(), id, fields)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// createSession issues a session token, or "" when sessions are disabled or
// Redis is unavailable. A login without a token is still a login.
func (h *AuthHandler) createSession(ctx context.Context, userID string) string {
	if h.sessions == nil {
		return ""
	}
	token, err := h.sessions.Create(ctx, userID)
	if err != nil {
		log.Printf("failed to create session for %s: %v", userID, err)
		return ""
	}
	return token
}
