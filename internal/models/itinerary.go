package models

// Activity is a single entry in an itinerary day.
type Activity struct {
	Time        string `json:"time"`
	Description string `json:"description"`
	Location    string `json:"location"`
}

// ItineraryDay is one numbered day of a generated trip plan.
type ItineraryDay struct {
	Day        int        `json:"day"`
	Title      string     `json:"title"`
	Activities []Activity `json:"activities"`
}

// Itinerary is a generated multi-day travel plan. Itineraries are built on
// demand and held only by the client; they are never persisted.
type Itinerary struct {
	ID          string         `json:"id"`
	Destination string         `json:"destination"`
	Days        []ItineraryDay `json:"days"`
}
