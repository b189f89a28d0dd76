package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MatiasRiera/travelmatch-backend/internal/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"MONGODB_URI", "MONGO_URI", "REDIS_URI", "PORT",
		"FRONTEND_URL", "FRONTEND_URL_2", "ALLOWED_ORIGINS",
		"GEMINI_API_KEY", "API_KEY", "GEMINI_MODEL",
		"CLOUDINARY_CLOUD_NAME", "CLOUDINARY_API_KEY", "CLOUDINARY_API_SECRET",
		"ENV",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := config.Load()

	assert.Equal(t, "mongodb://localhost:27017/travelmatch", cfg.MongoURI)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURI)
	assert.Equal(t, "4000", cfg.Port)
	assert.Equal(t, "http://localhost:5173", cfg.FrontendURL)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.AllowedOrigins)
	assert.Empty(t, cfg.GeminiAPIKey)
	assert.Equal(t, "gemini-2.0-flash", cfg.GeminiModel)
	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_GeminiKeyFallsBackToAPIKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_KEY", "legacy-key")

	cfg := config.Load()
	assert.Equal(t, "legacy-key", cfg.GeminiAPIKey)

	t.Setenv("GEMINI_API_KEY", "primary-key")
	cfg = config.Load()
	assert.Equal(t, "primary-key", cfg.GeminiAPIKey)
}

func TestLoad_AllowedOriginsList(t *testing.T) {
	clearEnv(t)
	t.Setenv("ALLOWED_ORIGINS", " https://travelmatch.app , http://localhost:5173 ,")

	cfg := config.Load()
	assert.Equal(t, []string{"https://travelmatch.app", "http://localhost:5173"}, cfg.AllowedOrigins)
}

func TestLoad_OriginsFromFrontendURLs(t *testing.T) {
	clearEnv(t)
	t.Setenv("FRONTEND_URL", "https://travelmatch.app")
	t.Setenv("FRONTEND_URL_2", "https://staging.travelmatch.app")

	cfg := config.Load()
	assert.Equal(t, []string{"https://travelmatch.app", "https://staging.travelmatch.app"}, cfg.AllowedOrigins)
}

func TestLoad_Production(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENV", " Production ")

	cfg := config.Load()
	assert.Equal(t, "production", cfg.Environment)
	assert.True(t, cfg.IsProduction())
}
