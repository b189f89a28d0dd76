package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// SessionDuration is 7 days.
	SessionDuration = 7 * 24 * time.Hour
	// sessionKeyPrefix is the Redis key prefix for session tokens.
	sessionKeyPrefix = "session:"
	// userSessionKeyPrefix is the Redis key prefix for the user -> token mapping.
	userSessionKeyPrefix = "user_session:"
)

// SessionService stores opaque session tokens in Redis. A user has at most
// one live session; logging in again replaces it so the 7-day timer resets.
type SessionService struct {
	client *redis.Client
}

func NewSessionService(client *redis.Client) *SessionService {
	return &SessionService{client: client}
}

// Create issues a new session token for userID, invalidating any previous one.
func (s *SessionService) Create(ctx context.Context, userID string) (string, error) {
	_ = s.InvalidateUserSessions(ctx, userID)

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	token := base64.URLEncoding.EncodeToString(tokenBytes)

	if err := s.client.Set(ctx, sessionKeyPrefix+token, userID, SessionDuration).Err(); err != nil {
		return "", err
	}
	if err := s.client.Set(ctx, userSessionKeyPrefix+userID, token, SessionDuration).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// Validate resolves a token to its user id. ok is false for unknown or
// expired tokens; Redis errors are treated as an invalid session.
func (s *SessionService) Validate(ctx context.Context, token string) (string, bool, error) {
	if token == "" {
		return "", false, nil
	}
	userID, err := s.client.Get(ctx, sessionKeyPrefix+token).Result()
	if err != nil {
		return "", false, nil
	}
	return userID, true, nil
}

// Invalidate removes a session token.
func (s *SessionService) Invalidate(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	userID, err := s.client.Get(ctx, sessionKeyPrefix+token).Result()
	if err == nil && userID != "" {
		s.client.Del(ctx, userSessionKeyPrefix+userID)
	}
	return s.client.Del(ctx, sessionKeyPrefix+token).Err()
}

// InvalidateUserSessions drops the user's current session, if any.
func (s *SessionService) InvalidateUserSessions(ctx context.Context, userID string) error {
	token, err := s.client.Get(ctx, userSessionKeyPrefix+userID).Result()
	if err == nil && token != "" {
		s.client.Del(ctx, sessionKeyPrefix+token)
	}
	return s.client.Del(ctx, userSessionKeyPrefix+userID).Err()
}
