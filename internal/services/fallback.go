package services

import "github.com/MatiasRiera/travelmatch-backend/internal/models"

// FallbackMatches returns the hand-authored candidate profiles served when
// match generation fails. Destination and dates are copied from the
// requester so the canned data still fits their trip.
func FallbackMatches(requester models.UserProfile) []models.UserProfile {
	return []models.UserProfile{
		{
			ID:          "fallback-1",
			Name:        "Elena Gómez",
			Age:         26,
			Country:     "Argentina",
			Bio:         "Photography and coffee lover. Looking to explore hidden corners.",
			Budget:      models.BudgetMedium,
			TravelStyle: []string{models.StyleCultural, models.StyleBackpacker},
			Interests:   []string{"Photography", "History"},
			AvatarURL:   "https://picsum.photos/seed/elena/600/600",
			Destination: requester.Destination,
			Dates:       requester.Dates,
			Email:       "elena@example.com",
			Role:        models.RoleCustomer,
			Language:    "en",
			Theme:       "light",
		},
		{
			ID:          "fallback-2",
			Name:        "Marco Silva",
			Age:         30,
			Country:     "Brazil",
			Bio:         "Passionate about nature and trekking.",
			Budget:      models.BudgetLow,
			TravelStyle: []string{models.StyleAdventure, models.StyleBackpacker},
			Interests:   []string{"Hiking", "Beaches"},
			AvatarURL:   "https://picsum.photos/seed/marco/600/600",
			Destination: requester.Destination,
			Dates:       requester.Dates,
			Email:       "marco@example.com",
			Role:        models.RoleCustomer,
			Language:    "en",
			Theme:       "light",
		},
	}
}
