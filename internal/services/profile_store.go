package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/MatiasRiera/travelmatch-backend/internal/models"
)

// ProfileStore is keyed upsert storage for user profiles. Get returns
// (nil, nil) when no record exists; absence is not an error. Put is
// create-or-replace with last-write-wins semantics.
type ProfileStore interface {
	Get(ctx context.Context, id string) (*models.UserProfile, error)
	GetByEmail(ctx context.Context, email string) (*models.UserProfile, error)
	Put(ctx context.Context, profile *models.UserProfile) (*models.UserProfile, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) (*models.UserProfile, error)
}

// MongoProfileStore stores one flat document per user in the "profiles"
// collection. An optional ProfileCache fronts reads by id.
type MongoProfileStore struct {
	col   *mongo.Collection
	cache *ProfileCache
}

// NewMongoProfileStore builds a store over db's "profiles" collection.
// cache may be nil.
func NewMongoProfileStore(db *mongo.Database, cache *ProfileCache) *MongoProfileStore {
	return &MongoProfileStore{col: db.Collection("profiles"), cache: cache}
}

// EnsureProfileIndexes creates the unique indexes on id and email.
// Called on startup from main after Mongo has connected.
func (s *MongoProfileStore) EnsureProfileIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_profile_id"),
		},
		{
			Keys: bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_profile_email").
				SetPartialFilterExpression(bson.M{"email": bson.M{"$type": "string"}}),
		},
	}
	for _, m := range indexes {
		if _, err := s.col.Indexes().CreateOne(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

func (s *MongoProfileStore) Get(ctx context.Context, id string) (*models.UserProfile, error) {
	if s.cache != nil {
		if profile, ok := s.cache.Get(ctx, id); ok {
			return profile, nil
		}
	}

	var profile models.UserProfile
	err := s.col.FindOne(ctx, bson.M{"id": id}).Decode(&profile)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, &profile)
	}
	return &profile, nil
}

func (s *MongoProfileStore) GetByEmail(ctx context.Context, email string) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&profile)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Put replaces the document keyed by profile.ID, creating it if absent.
func (s *MongoProfileStore) Put(ctx context.Context, profile *models.UserProfile) (*models.UserProfile, error) {
	now := time.Now().UTC()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now

	opts := options.FindOneAndReplace().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var stored models.UserProfile
	err := s.col.FindOneAndReplace(ctx, bson.M{"id": profile.ID}, profile, opts).Decode(&stored)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, profile.ID)
	}
	return &stored, nil
}

// Update applies a partial $set to the document keyed by id. Returns
// models.ErrNotFound when no document matches.
func (s *MongoProfileStore) Update(ctx context.Context, id string, fields map[string]interface{}) (*models.UserProfile, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	for k, v := range fields {
		set[k] = v
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var stored models.UserProfile
	err := s.col.FindOneAndUpdate(ctx, bson.M{"id": id}, bson.M{"$set": set}, opts).Decode(&stored)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, id)
	}
	return &stored, nil
}
