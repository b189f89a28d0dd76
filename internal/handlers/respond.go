package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/MatiasRiera/travelmatch-backend/internal/models"
)

// CurrentUserID is the fixed id used when a request carries no session
// token. It keeps the demo client working without an account.
const CurrentUserID = "user-me"

// ErrorResponse is the JSON body for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SessionStore issues and validates session tokens.
type SessionStore interface {
	Create(ctx context.Context, userID string) (string, error)
	Validate(ctx context.Context, token string) (string, bool, error)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// writeServiceError maps a sentinel error from the service layer to its
// HTTP status. Unknown errors become an opaque 500.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrValidation):
		writeError(w, http.StatusBadRequest, models.ErrorMessage(err))
	case errors.Is(err, models.ErrConflict):
		writeError(w, http.StatusConflict, models.ErrorMessage(err))
	case errors.Is(err, models.ErrAuthentication):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, models.ErrNotFound):
		writeError(w, http.StatusNotFound, models.ErrorMessage(err))
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// extractBearerToken pulls the token out of "Authorization: Bearer <token>".
func extractBearerToken(header string) string {
	const prefix = "Bearer "
	if strings.HasPrefix(header, prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}

// resolveUserID maps a request to its user id: a valid session token wins,
// otherwise the fixed demo id is used. sessions may be nil.
func resolveUserID(r *http.Request, sessions SessionStore) string {
	token := extractBearerToken(r.Header.Get("Authorization"))
	if token == "" {
		token = r.URL.Query().Get("token")
	}
	if token != "" && sessions != nil {
		if userID, ok, err := sessions.Validate(r.Context(), token); err == nil && ok {
			return userID
		}
	}
	return CurrentUserID
}
