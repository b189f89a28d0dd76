package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"

	"github.com/MatiasRiera/travelmatch-backend/internal/models"
	"github.com/MatiasRiera/travelmatch-backend/pkg/utils"
)

// MatchCount is the number of candidate profiles requested per batch.
const MatchCount = 8

// FallbackItineraryID marks an itinerary produced by the failure path.
const FallbackItineraryID = "error-trip"

// MatchResult distinguishes genuinely generated candidates from the static
// fallback so callers and tests can tell degraded responses apart.
type MatchResult struct {
	Matches  []models.UserProfile `json:"matches"`
	Fallback bool                 `json:"fallback"`
}

// ItineraryResult is the two-branch result of itinerary synthesis.
type ItineraryResult struct {
	Itinerary models.Itinerary `json:"itinerary"`
	Fallback  bool             `json:"fallback"`
}

// ItineraryRequest carries the trip parameters. Duration is bounded to
// [1, 14] by the client's input control; there is no server-side
// re-validation.
type ItineraryRequest struct {
	Destination string        `json:"destination"`
	Duration    int           `json:"duration"`
	Interests   []string      `json:"interests"`
	Budget      models.Budget `json:"budget"`
}

// ContentGenerator builds prompts, delegates to the external model and
// parses its structured output. It never returns an error: any network,
// parse or schema failure degrades silently to static content.
type ContentGenerator struct {
	model ContentModel
	now   func() time.Time
}

// NewContentGenerator wraps a ContentModel. model may be nil (e.g. no API
// key configured), in which case every call serves fallback content.
func NewContentGenerator(model ContentModel) *ContentGenerator {
	return &ContentGenerator{model: model, now: time.Now}
}

// GenerateMatches produces candidate companion profiles for the requester.
// On any failure it returns the two canned profiles with destination and
// dates copied from the requester.
func (g *ContentGenerator) GenerateMatches(ctx context.Context, requester models.UserProfile) MatchResult {
	matches, err := g.generateCandidates(ctx, requester)
	if err != nil {
		log.Printf("match generation failed, serving fallback: %v", err)
		return MatchResult{Matches: FallbackMatches(requester), Fallback: true}
	}
	return MatchResult{Matches: matches}
}

// GenerateItinerary produces a day-by-day plan for the requested trip. On
// any failure it returns an empty itinerary for the input destination with
// the sentinel id.
func (g *ContentGenerator) GenerateItinerary(ctx context.Context, req ItineraryRequest) ItineraryResult {
	itinerary, err := g.generateItinerary(ctx, req)
	if err != nil {
		log.Printf("itinerary generation failed, serving fallback: %v", err)
		return ItineraryResult{
			Itinerary: models.Itinerary{
				ID:          FallbackItineraryID,
				Destination: req.Destination,
				Days:        []models.ItineraryDay{},
			},
			Fallback: true,
		}
	}
	return ItineraryResult{Itinerary: *itinerary}
}

// candidate mirrors the JSON schema declared to the model. id, destination
// and dates are optional; everything else is required.
type candidate struct {
	ID          string        `json:"id,omitempty"`
	Name        string        `json:"name"`
	Age         int           `json:"age"`
	Country     string        `json:"country"`
	Bio         string        `json:"bio"`
	Budget      models.Budget `json:"budget"`
	TravelStyle []string      `json:"travelStyle"`
	Interests   []string      `json:"interests"`
	Destination string        `json:"destination,omitempty"`
	Dates       string        `json:"dates,omitempty"`
}

func (g *ContentGenerator) generateCandidates(ctx context.Context, requester models.UserProfile) ([]models.UserProfile, error) {
	if g.model == nil {
		return nil, fmt.Errorf("%w: no model configured", models.ErrExternalService)
	}

	prompt := fmt.Sprintf(`Generate %d fictional traveler profiles that would be a good match for someone with the following profile:
Name: %s
Age: %d
Budget: %s
Style: %s
Interests: %s
Destination: %s

The matches should have diverse backgrounds but compatible travel styles.
Return the data in JSON format.`,
		MatchCount,
		requester.Name,
		requester.Age,
		requester.Budget,
		strings.Join(requester.TravelStyle, ", "),
		strings.Join(requester.Interests, ", "),
		requester.Destination,
	)

	raw, err := g.model.GenerateJSON(ctx, prompt, matchSchema())
	if err != nil {
		return nil, err
	}

	var candidates []candidate
	if err := json.Unmarshal(raw, &candidates); err != nil {
		return nil, fmt.Errorf("%w: unparseable match response: %v", models.ErrExternalService, err)
	}

	batch := g.now().UnixMilli()
	matches := make([]models.UserProfile, 0, len(candidates))
	for i, c := range candidates {
		if c.Name == "" || c.Age <= 0 || c.Country == "" || c.Bio == "" || !models.ValidBudget(c.Budget) {
			return nil, fmt.Errorf("%w: match response violates schema", models.ErrExternalService)
		}

		// The returned identity and avatar are always replaced: the id is
		// unique within the batch and the avatar is derived from the name.
		matches = append(matches, models.UserProfile{
			ID:          fmt.Sprintf("match-%d-%d", i, batch),
			Name:        c.Name,
			Age:         c.Age,
			Country:     c.Country,
			Bio:         c.Bio,
			Budget:      c.Budget,
			TravelStyle: c.TravelStyle,
			Interests:   c.Interests,
			AvatarURL:   utils.AvatarURL(c.Name),
			Destination: c.Destination,
			Dates:       c.Dates,
		})
	}
	return matches, nil
}

// itineraryResponse mirrors the itinerary schema declared to the model.
type itineraryResponse struct {
	Destination string                `json:"destination"`
	Days        []models.ItineraryDay `json:"days"`
}

func (g *ContentGenerator) generateItinerary(ctx context.Context, req ItineraryRequest) (*models.Itinerary, error) {
	if g.model == nil {
		return nil, fmt.Errorf("%w: no model configured", models.ErrExternalService)
	}

	prompt := fmt.Sprintf(`Create a %d-day itinerary for a trip to %s.
Focus on these interests: %s.
Budget level: %s.
Provide a structured JSON response.`,
		req.Duration,
		req.Destination,
		strings.Join(req.Interests, ", "),
		req.Budget,
	)

	raw, err := g.model.GenerateJSON(ctx, prompt, itinerarySchema())
	if err != nil {
		return nil, err
	}

	var parsed itineraryResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("%w: unparseable itinerary response: %v", models.ErrExternalService, err)
	}

	itinerary := &models.Itinerary{
		ID:          fmt.Sprintf("trip-%d", g.now().UnixMilli()),
		Destination: parsed.Destination,
		Days:        parsed.Days,
	}
	if itinerary.Destination == "" {
		itinerary.Destination = req.Destination
	}
	if itinerary.Days == nil {
		itinerary.Days = []models.ItineraryDay{}
	}
	return itinerary, nil
}

// matchSchema declares the candidate array shape the model must produce.
func matchSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"id":      {Type: genai.TypeString},
				"name":    {Type: genai.TypeString},
				"age":     {Type: genai.TypeInteger},
				"country": {Type: genai.TypeString},
				"bio":     {Type: genai.TypeString},
				"budget": {
					Type: genai.TypeString,
					Enum: []string{string(models.BudgetLow), string(models.BudgetMedium), string(models.BudgetHigh)},
				},
				"travelStyle": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
				"interests":   {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
				"destination": {Type: genai.TypeString},
				"dates":       {Type: genai.TypeString},
			},
			Required: []string{"name", "age", "country", "bio", "budget", "travelStyle", "interests"},
		},
	}
}

// itinerarySchema declares the itinerary shape the model must produce.
func itinerarySchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"destination": {Type: genai.TypeString},
			"days": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"day":   {Type: genai.TypeInteger},
						"title": {Type: genai.TypeString},
						"activities": {
							Type: genai.TypeArray,
							Items: &genai.Schema{
								Type: genai.TypeObject,
								Properties: map[string]*genai.Schema{
									"time":        {Type: genai.TypeString},
									"description": {Type: genai.TypeString},
									"location":    {Type: genai.TypeString},
								},
							},
						},
					},
				},
			},
		},
	}
}
