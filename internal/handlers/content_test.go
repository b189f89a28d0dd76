package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MatiasRiera/travelmatch-backend/internal/handlers"
	"github.com/MatiasRiera/travelmatch-backend/internal/models"
	"github.com/MatiasRiera/travelmatch-backend/internal/services"
)

// stubMatchGenerator returns a fixed result and records the requester.
type stubMatchGenerator struct {
	result    services.MatchResult
	requester models.UserProfile
}

func (g *stubMatchGenerator) GenerateMatches(_ context.Context, requester models.UserProfile) services.MatchResult {
	g.requester = requester
	return g.result
}

type stubItineraryGenerator struct {
	result services.ItineraryResult
	req    services.ItineraryRequest
}

func (g *stubItineraryGenerator) GenerateItinerary(_ context.Context, req services.ItineraryRequest) services.ItineraryResult {
	g.req = req
	return g.result
}

func TestMatchesEndpoint_OK(t *testing.T) {
	gen := &stubMatchGenerator{result: services.MatchResult{
		Matches: []models.UserProfile{{ID: "match-0-1", Name: "Aiko Tanaka"}},
	}}
	h := handlers.NewMatchHandler(gen)

	body := `{"name":"Matías Riera","destination":"Lisbon, Portugal","budget":"Medium"}`
	req := httptest.NewRequest(http.MethodPost, "/api/matches", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Generate(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Matías Riera", gen.requester.Name)
	assert.Equal(t, "Lisbon, Portugal", gen.requester.Destination)

	var resp services.MatchResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Fallback)
	require.Len(t, resp.Matches, 1)
	assert.Equal(t, "Aiko Tanaka", resp.Matches[0].Name)
}

func TestMatchesEndpoint_FallbackFlagPassesThrough(t *testing.T) {
	gen := &stubMatchGenerator{result: services.MatchResult{
		Matches:  services.FallbackMatches(models.UserProfile{Destination: "Lisbon, Portugal"}),
		Fallback: true,
	}}
	h := handlers.NewMatchHandler(gen)

	req := httptest.NewRequest(http.MethodPost, "/api/matches", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	h.Generate(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp services.MatchResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Fallback)
	assert.Len(t, resp.Matches, 2)
}

func TestMatchesEndpoint_InvalidBody(t *testing.T) {
	h := handlers.NewMatchHandler(&stubMatchGenerator{})

	req := httptest.NewRequest(http.MethodPost, "/api/matches", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.Generate(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestItinerariesEndpoint_OK(t *testing.T) {
	gen := &stubItineraryGenerator{result: services.ItineraryResult{
		Itinerary: models.Itinerary{
			ID:          "trip-1",
			Destination: "Lisbon, Portugal",
			Days:        []models.ItineraryDay{{Day: 1, Title: "Alfama"}},
		},
	}}
	h := handlers.NewItineraryHandler(gen)

	body := `{"destination":"Lisbon, Portugal","duration":3,"interests":["History"],"budget":"Medium"}`
	req := httptest.NewRequest(http.MethodPost, "/api/itineraries", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Generate(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, gen.req.Duration)
	assert.Equal(t, []string{"History"}, gen.req.Interests)

	var resp services.ItineraryResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "trip-1", resp.Itinerary.ID)
	assert.False(t, resp.Fallback)
}

func TestItinerariesEndpoint_MissingDestination(t *testing.T) {
	gen := &stubItineraryGenerator{}
	h := handlers.NewItineraryHandler(gen)

	req := httptest.NewRequest(http.MethodPost, "/api/itineraries", strings.NewReader(`{"duration":3}`))
	rec := httptest.NewRecorder()
	h.Generate(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "destination is required", resp.Error)
}

func TestItinerariesEndpoint_DurationNotRevalidated(t *testing.T) {
	// The client's input control bounds duration; the server passes odd
	// values straight through.
	gen := &stubItineraryGenerator{result: services.ItineraryResult{
		Itinerary: models.Itinerary{ID: "error-trip", Destination: "Lisbon, Portugal", Days: []models.ItineraryDay{}},
		Fallback:  true,
	}}
	h := handlers.NewItineraryHandler(gen)

	req := httptest.NewRequest(http.MethodPost, "/api/itineraries", strings.NewReader(`{"destination":"Lisbon, Portugal","duration":99}`))
	rec := httptest.NewRecorder()
	h.Generate(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 99, gen.req.Duration)

	var resp services.ItineraryResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Fallback)
	assert.Equal(t, "error-trip", resp.Itinerary.ID)
}
