package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MatiasRiera/travelmatch-backend/internal/handlers"
)

// Handlers aggregates everything SetupRoutes mounts.
type Handlers struct {
	Auth      *handlers.AuthHandler
	User      *handlers.UserHandler
	Match     *handlers.MatchHandler
	Itinerary *handlers.ItineraryHandler
	Chat      *handlers.ChatHandler
	ChatWS    *handlers.ChatWSHandler
	Upload    *handlers.UploadHandler
}

func SetupRoutes(r *chi.Mux, h Handlers) {
	// Auth routes
	r.Post("/api/auth/register", h.Auth.Register)
	r.Post("/api/auth/login", h.Auth.Login)
	r.Put("/api/users/{id}", h.Auth.UpdateUser)

	// Current-user profile routes
	r.Get("/api/user/me", h.User.GetMe)
	r.Put("/api/user/me", h.User.PutMe)

	// Generated content routes
	r.Post("/api/matches", h.Match.Generate)
	r.Post("/api/itineraries", h.Itinerary.Generate)

	// Chat routes
	r.Get("/api/chats", h.Chat.ListThreads)
	r.Post("/api/chats/{id}/messages", h.Chat.SendMessage)

	// WebSocket endpoint for realtime chat events
	r.Get("/ws/chat", h.ChatWS.Serve)

	// Avatar upload
	r.Post("/api/upload", h.Upload.Upload)
}
