package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/MatiasRiera/travelmatch-backend/internal/models"
	"github.com/MatiasRiera/travelmatch-backend/internal/services"
)

// MatchGenerator produces candidate companion profiles. It never fails;
// degraded results are flagged on the result itself.
type MatchGenerator interface {
	GenerateMatches(ctx context.Context, requester models.UserProfile) services.MatchResult
}

// MatchHandler serves the matching feed.
type MatchHandler struct {
	generator MatchGenerator
}

func NewMatchHandler(generator MatchGenerator) *MatchHandler {
	return &MatchHandler{generator: generator}
}

// Generate handles POST /api/matches. The body is the requesting user's
// profile; the response is a batch of candidates plus a flag telling the
// client whether it is looking at fallback content.
func (h *MatchHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var requester models.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&requester); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result := h.generator.GenerateMatches(r.Context(), requester)
	writeJSON(w, http.StatusOK, result)
}
