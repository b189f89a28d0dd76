package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MatiasRiera/travelmatch-backend/internal/handlers"
	"github.com/MatiasRiera/travelmatch-backend/internal/models"
	"github.com/MatiasRiera/travelmatch-backend/internal/services"
)

// mockAuthServicer delegates to function fields so each test controls only
// the method it exercises.
type mockAuthServicer struct {
	registerFn func(ctx context.Context, in services.RegisterInput) (*models.UserProfile, error)
	loginFn    func(ctx context.Context, email, password string) (*models.UserProfile, error)
	updateFn   func(ctx context.Context, id string, fields map[string]interface{}) (*models.UserProfile, error)
}

func (m *mockAuthServicer) Register(ctx context.Context, in services.RegisterInput) (*models.UserProfile, error) {
	return m.registerFn(ctx, in)
}

func (m *mockAuthServicer) Login(ctx context.Context, email, password string) (*models.UserProfile, error) {
	return m.loginFn(ctx, email, password)
}

func (m *mockAuthServicer) UpdateProfile(ctx context.Context, id string, fields map[string]interface{}) (*models.UserProfile, error) {
	return m.updateFn(ctx, id, fields)
}

// fixedSessions always issues the same token and resolves it back to userID.
type fixedSessions struct {
	token  string
	userID string
}

func (s *fixedSessions) Create(context.Context, string) (string, error) {
	return s.token, nil
}

func (s *fixedSessions) Validate(_ context.Context, token string) (string, bool, error) {
	if token == s.token {
		return s.userID, true, nil
	}
	return "", false, nil
}

func sampleProfile() *models.UserProfile {
	return &models.UserProfile{
		ID:          "user-123",
		Name:        "Lucía Fernández",
		Email:       "lucia@example.com",
		Password:    "$argon2id$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA",
		Role:        models.RoleCustomer,
		Destination: "Kyoto, Japan",
	}
}

func TestRegisterEndpoint_Created(t *testing.T) {
	auth := &mockAuthServicer{
		registerFn: func(_ context.Context, in services.RegisterInput) (*models.UserProfile, error) {
			assert.Equal(t, "lucia@example.com", in.Email)
			return sampleProfile(), nil
		},
	}
	h := handlers.NewAuthHandler(auth, &fixedSessions{token: "tok-abc", userID: "user-123"})

	body := `{"name":"Lucía Fernández","email":"lucia@example.com","password":"wanderlust","role":"customer","destination":"Kyoto, Japan"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp struct {
		User  map[string]interface{} `json:"user"`
		Token string                 `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "user-123", resp.User["id"])
	assert.Equal(t, "tok-abc", resp.Token)
	assert.NotContains(t, resp.User, "password")
}

func TestRegisterEndpoint_InvalidBody(t *testing.T) {
	h := handlers.NewAuthHandler(&mockAuthServicer{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterEndpoint_ServiceErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation", fmt.Errorf("%w: email is required", models.ErrValidation), http.StatusBadRequest},
		{"conflict", fmt.Errorf("%w: email already registered", models.ErrConflict), http.StatusConflict},
		{"unknown", fmt.Errorf("mongo exploded"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			auth := &mockAuthServicer{
				registerFn: func(context.Context, services.RegisterInput) (*models.UserProfile, error) {
					return nil, tc.err
				},
			}
			h := handlers.NewAuthHandler(auth, nil)

			req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(`{}`))
			rec := httptest.NewRecorder()
			h.Register(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)

			var resp handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestLoginEndpoint_OK(t *testing.T) {
	auth := &mockAuthServicer{
		loginFn: func(_ context.Context, email, password string) (*models.UserProfile, error) {
			assert.Equal(t, "lucia@example.com", email)
			assert.Equal(t, "wanderlust", password)
			return sampleProfile(), nil
		},
	}
	h := handlers.NewAuthHandler(auth, &fixedSessions{token: "tok-abc", userID: "user-123"})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"lucia@example.com","password":"wanderlust"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "tok-abc", resp.Token)
}

func TestLoginEndpoint_Unauthorized(t *testing.T) {
	auth := &mockAuthServicer{
		loginFn: func(context.Context, string, string) (*models.UserProfile, error) {
			return nil, models.ErrAuthentication
		},
	}
	h := handlers.NewAuthHandler(auth, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"a@b.c","password":"nope"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var resp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "invalid credentials", resp.Error)
}

func TestLoginEndpoint_NoSessionStoreOmitsToken(t *testing.T) {
	auth := &mockAuthServicer{
		loginFn: func(context.Context, string, string) (*models.UserProfile, error) {
			return sampleProfile(), nil
		},
	}
	h := handlers.NewAuthHandler(auth, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"a@b.c","password":"secret"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotContains(t, resp, "token")
}

func TestUpdateUserEndpoint_TranslatesFields(t *testing.T) {
	var gotID string
	var gotFields map[string]interface{}
	auth := &mockAuthServicer{
		updateFn: func(_ context.Context, id string, fields map[string]interface{}) (*models.UserProfile, error) {
			gotID = id
			gotFields = fields
			return sampleProfile(), nil
		},
	}
	h := handlers.NewAuthHandler(auth, nil)

	r := chi.NewRouter()
	r.Put("/api/users/{id}", h.UpdateUser)

	body := `{"travelStyle":["cultural"],"avatarUrl":"https://example.com/a.png","bio":"hello","unknownField":"dropped"}`
	req := httptest.NewRequest(http.MethodPut, "/api/users/user-123", strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-123", gotID)

	// camelCase JSON keys arrive translated to store keys; unknown keys are
	// dropped before the service ever sees them.
	assert.Contains(t, gotFields, "travel_style")
	assert.Contains(t, gotFields, "avatar_url")
	assert.Contains(t, gotFields, "bio")
	assert.NotContains(t, gotFields, "unknownField")
}

func TestUpdateUserEndpoint_NotFound(t *testing.T) {
	auth := &mockAuthServicer{
		updateFn: func(context.Context, string, map[string]interface{}) (*models.UserProfile, error) {
			return nil, models.ErrNotFound
		},
	}
	h := handlers.NewAuthHandler(auth, nil)

	r := chi.NewRouter()
	r.Put("/api/users/{id}", h.UpdateUser)

	req := httptest.NewRequest(http.MethodPut, "/api/users/user-missing", strings.NewReader(`{"bio":"x"}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
