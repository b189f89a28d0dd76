package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/MatiasRiera/travelmatch-backend/internal/services"
)

// ItineraryGenerator synthesizes day-by-day trip plans.
type ItineraryGenerator interface {
	GenerateItinerary(ctx context.Context, req services.ItineraryRequest) services.ItineraryResult
}

// ItineraryHandler serves itinerary synthesis.
type ItineraryHandler struct {
	generator ItineraryGenerator
}

func NewItineraryHandler(generator ItineraryGenerator) *ItineraryHandler {
	return &ItineraryHandler{generator: generator}
}

// Generate handles POST /api/itineraries. Duration is bounded to [1, 14] by
// the client's input control and is not re-validated here.
func (h *ItineraryHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req services.ItineraryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Destination == "" {
		writeError(w, http.StatusBadRequest, "destination is required")
		return
	}

	result := h.generator.GenerateItinerary(r.Context(), req)
	writeJSON(w, http.StatusOK, result)
}
