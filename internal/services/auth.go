package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MatiasRiera/travelmatch-backend/internal/models"
	"github.com/MatiasRiera/travelmatch-backend/pkg/utils"
)

// MinPasswordLength is the shortest password Register accepts.
const MinPasswordLength = 6

// RegisterInput carries the registration form. Name, Email, Password, Role
// and Destination are required; everything else is optional profile data.
type RegisterInput struct {
	Name        string         `json:"name"`
	Email       string         `json:"email"`
	Password    string         `json:"password"`
	Role        string         `json:"role"`
	Destination string         `json:"destination"`
	Age         int            `json:"age,omitempty"`
	Country     string         `json:"country,omitempty"`
	Bio         string         `json:"bio,omitempty"`
	Budget      models.Budget  `json:"budget,omitempty"`
	TravelStyle []string       `json:"travelStyle,omitempty"`
	Interests   []string       `json:"interests,omitempty"`
	Dates       string         `json:"dates,omitempty"`
	AvatarURL   string         `json:"avatarUrl,omitempty"`
	Language    string         `json:"language,omitempty"`
	Theme       string         `json:"theme,omitempty"`
}

// AuthService registers and authenticates users against the profile store.
type AuthService struct {
	store ProfileStore
}

func NewAuthService(store ProfileStore) *AuthService {
	return &AuthService{store: store}
}

// Register validates the input, hashes the password and stores the new
// profile. The returned profile carries the hash internally but the field is
// excluded from JSON serialization.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.UserProfile, error) {
	in.Email = strings.TrimSpace(in.Email)

	if in.Name == "" || in.Email == "" || in.Password == "" || in.Role == "" || in.Destination == "" {
		return nil, fmt.Errorf("%w: name, email, password, role and destination are required", models.ErrValidation)
	}
	if !strings.Contains(in.Email, "@") {
		return nil, fmt.Errorf("%w: email must contain \"@\"", models.ErrValidation)
	}
	if in.Role != models.RoleCustomer && in.Role != models.RoleBusiness {
		return nil, fmt.Errorf("%w: role must be customer or business", models.ErrValidation)
	}
	if len(in.Password) < MinPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", models.ErrValidation, MinPasswordLength)
	}

	existing, err := s.store.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: a user with this email already exists", models.ErrConflict)
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	profile := &models.UserProfile{
		ID:          "user-" + uuid.NewString(),
		Name:        in.Name,
		Age:         in.Age,
		Country:     in.Country,
		Bio:         in.Bio,
		Budget:      in.Budget,
		TravelStyle: in.TravelStyle,
		Interests:   in.Interests,
		AvatarURL:   in.AvatarURL,
		Destination: in.Destination,
		Dates:       in.Dates,
		Email:       in.Email,
		Password:    hash,
		Role:        in.Role,
		Language:    in.Language,
		Theme:       in.Theme,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if profile.AvatarURL == "" {
		profile.AvatarURL = utils.AvatarURL(profile.Name)
	}
	if profile.Language == "" {
		profile.Language = "en"
	}
	if profile.Theme == "" {
		profile.Theme = "light"
	}

	return s.store.Put(ctx, profile)
}

// Login checks the credentials and returns the stored profile. The failure
// is deliberately generic: an unknown email and a wrong password are
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.UserProfile, error) {
	email = strings.TrimSpace(email)

	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", models.ErrValidation)
	}
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: email must contain \"@\"", models.ErrValidation)
	}

	profile, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, models.ErrAuthentication
	}

	ok, err := utils.VerifyPassword(password, profile.Password)
	if err != nil || !ok {
		return nil, models.ErrAuthentication
	}

	return profile, nil
}

// UpdateProfile applies a partial update to the stored record. The password
// hash cannot be set through this path; any attempt is stripped.
func (s *AuthService) UpdateProfile(ctx context.Context, id string, fields map[string]interface{}) (*models.UserProfile, error) {
	delete(fields, "password")
	delete(fields, "Password")

	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no fields to update", models.ErrValidation)
	}

	return s.store.Update(ctx, id, fields)
}
