package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/MatiasRiera/travelmatch-backend/internal/config"
	"github.com/MatiasRiera/travelmatch-backend/internal/database"
	"github.com/MatiasRiera/travelmatch-backend/internal/handlers"
	"github.com/MatiasRiera/travelmatch-backend/internal/middleware"
	"github.com/MatiasRiera/travelmatch-backend/internal/routes"
	"github.com/MatiasRiera/travelmatch-backend/internal/services"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()

	// Connect to MongoDB
	log.Printf("Connecting to MongoDB...")
	if err := database.Connect(cfg.MongoURI); err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer database.Disconnect()

	// Connect to Redis
	log.Printf("Connecting to Redis...")
	if err := database.ConnectRedis(cfg.RedisURI); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer database.DisconnectRedis()

	ctx := context.Background()

	// Profile store with Redis cache
	cache := services.NewProfileCache(database.RedisClient)
	store := services.NewMongoProfileStore(database.DB, cache)
	if err := store.EnsureProfileIndexes(ctx); err != nil {
		log.Printf("⚠️  WARNING: failed to ensure profile indexes: %v", err)
	} else {
		log.Println("✅ MongoDB profile indexes ensured")
	}

	// Chat store, hub and service
	chatStore := services.NewMongoChatStore(database.DB)
	if err := chatStore.EnsureChatIndexes(ctx); err != nil {
		log.Printf("⚠️  WARNING: failed to ensure chat indexes: %v", err)
	} else {
		log.Println("✅ MongoDB chat indexes ensured")
	}
	hub := services.NewChatHub(database.RedisClient)
	hub.Start(ctx)
	chatService := services.NewChatService(chatStore, hub)

	// Content generator: without an API key every request serves the static
	// fallback content instead of failing.
	var model services.ContentModel
	if cfg.GeminiAPIKey != "" {
		gemini, err := services.NewGeminiModel(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Printf("⚠️  WARNING: failed to initialize Gemini: %v", err)
			log.Println("   Matches and itineraries will use fallback content")
		} else {
			defer gemini.Close()
			model = gemini
			log.Printf("✅ Gemini initialized (model: %s)", cfg.GeminiModel)
		}
	} else {
		log.Println("⚠️  WARNING: GEMINI_API_KEY not set. Matches and itineraries will use fallback content")
	}
	generator := services.NewContentGenerator(model)

	// Cloudinary for avatar uploads
	var cloudinaryService *services.CloudinaryService
	if cfg.CloudinaryName != "" && cfg.CloudinaryAPIKey != "" && cfg.CloudinaryAPISecret != "" {
		svc, err := services.NewCloudinaryService(cfg.CloudinaryName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
		if err != nil {
			log.Printf("Warning: Failed to initialize Cloudinary: %v", err)
			log.Println("Avatar uploads will not be available")
		} else {
			cloudinaryService = svc
			log.Println("✅ Cloudinary service initialized")
		}
	} else {
		log.Println("Warning: Cloudinary credentials not found. Avatar uploads will not be available")
	}

	sessions := services.NewSessionService(database.RedisClient)
	auth := services.NewAuthService(store)

	// Setup router
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.RateLimit(database.RedisClient))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	routes.SetupRoutes(r, routes.Handlers{
		Auth:      handlers.NewAuthHandler(auth, sessions),
		User:      handlers.NewUserHandler(store, sessions),
		Match:     handlers.NewMatchHandler(generator),
		Itinerary: handlers.NewItineraryHandler(generator),
		Chat:      handlers.NewChatHandler(chatService, sessions),
		ChatWS:    handlers.NewChatWSHandler(chatService, hub, sessions),
		Upload:    handlers.NewUploadHandler(cloudinaryService),
	})

	log.Println("📋 Registered routes:")
	log.Println("  GET  /health")
	log.Println("  POST /api/auth/register")
	log.Println("  POST /api/auth/login")
	log.Println("  PUT  /api/users/{id}")
	log.Println("  GET  /api/user/me")
	log.Println("  PUT  /api/user/me")
	log.Println("  POST /api/matches")
	log.Println("  POST /api/itineraries")
	log.Println("  GET  /api/chats")
	log.Println("  POST /api/chats/{id}/messages")
	log.Println("  GET  /ws/chat")
	log.Println("  POST /api/upload")

	log.Printf("🚀 TravelMatch backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
