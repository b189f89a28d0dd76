package services

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/MatiasRiera/travelmatch-backend/internal/models"
)

const (
	// profileCacheKeyPrefix is the Redis key prefix for cached profiles.
	profileCacheKeyPrefix = "cache:profile:"
	// ProfileCacheTTL bounds how stale a cached profile can get.
	ProfileCacheTTL = 15 * time.Minute
)

// ProfileCache is a Redis read-through cache for profile documents.
// Misses and Redis failures are silent; the store always has the truth.
type ProfileCache struct {
	client *redis.Client
}

func NewProfileCache(client *redis.Client) *ProfileCache {
	return &ProfileCache{client: client}
}

// Get returns the cached profile and true on a hit.
func (c *ProfileCache) Get(ctx context.Context, id string) (*models.UserProfile, bool) {
	val, err := c.client.Get(ctx, profileCacheKeyPrefix+id).Result()
	if err != nil {
		return nil, false // cache miss, not an error
	}

	var profile models.UserProfile
	if err := bson.Unmarshal([]byte(val), &profile); err != nil {
		return nil, false
	}
	return &profile, true
}

// Set caches a profile under its id. Entries are cached in BSON form so a
// cached read carries exactly the same fields as a store read.
func (c *ProfileCache) Set(ctx context.Context, profile *models.UserProfile) error {
	data, err := bson.Marshal(profile)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, profileCacheKeyPrefix+profile.ID, data, ProfileCacheTTL).Err()
}

// Invalidate drops the cached entry for id. Called after every write.
func (c *ProfileCache) Invalidate(ctx context.Context, id string) error {
	return c.client.Del(ctx, profileCacheKeyPrefix+id).Err()
}
