package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuitionnetwork/tuition-api/internal/domain"
	"github.com/tuitionnetwork/tuition-api/internal/service/auth"
)

// mockJWTService implements auth.JWTService with function fields.
type mockJWTService struct {
	generateTokenFn func(ctx context.Context, email, role string) (string, error)
	validateTokenFn func(ctx context.Context, tokenString string) (*auth.Claims, error)
}

func (m *mockJWTService) GenerateToken(ctx context.Context, email, role string) (string, error) {
	return m.generateTokenFn(ctx, email, role)
}

func (m *mockJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	return m.validateTokenFn(ctx, tokenString)
}

func okHandler(t *testing.T, wantClaims *auth.Claims) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if wantClaims != nil {
			claims, ok := GetClaims(r)
			require.True(t, ok)
			assert.Equal(t, wantClaims.Email, claims.Email)
			assert.Equal(t, wantClaims.Role, claims.Role)
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		authHeader string
		validateFn func(ctx context.Context, tokenString string) (*auth.Claims, error)
		wantStatus int
	}{
		{
			name:       "missing header",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong scheme",
			authHeader: "Basic abc123",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "expired token",
			authHeader: "Bearer sometoken",
			validateFn: func(ctx context.Context, tokenString string) (*auth.Claims, error) {
				return nil, auth.ErrExpiredToken
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "invalid token",
			authHeader: "Bearer sometoken",
			validateFn: func(ctx context.Context, tokenString string) (*auth.Claims, error) {
				return nil, auth.ErrInvalidToken
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "valid token",
			authHeader: "Bearer sometoken",
			validateFn: func(ctx context.Context, tokenString string) (*auth.Claims, error) {
				return &auth.Claims{Email: "admin@example.com", Role: domain.RoleAdmin}, nil
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			m := NewAuthMiddleware(&mockJWTService{validateTokenFn: tc.validateFn})

			var wantClaims *auth.Claims
			if tc.wantStatus == http.StatusOK {
				wantClaims = &auth.Claims{Email: "admin@example.com", Role: domain.RoleAdmin}
			}
			handler := m.Authenticate(okHandler(t, wantClaims))

			req := httptest.NewRequest(http.MethodGet, "/users", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
		})
	}
}

func TestRequireRole(t *testing.T) {
	t.Parallel()

	m := NewAuthMiddleware(&mockJWTService{
		validateTokenFn: func(ctx context.Context, tokenString string) (*auth.Claims, error) {
			return &auth.Claims{Email: "student@example.com", Role: domain.RoleStudent}, nil
		},
	})

	t.Run("allowed role passes through", func(t *testing.T) {
		t.Parallel()

		handler := m.Authenticate(m.RequireRole(domain.RoleStudent)(okHandler(t, nil)))

		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		req.Header.Set("Authorization", "Bearer sometoken")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("disallowed role is forbidden", func(t *testing.T) {
		t.Parallel()

		handler := m.Authenticate(m.RequireRole(domain.RoleAdmin)(okHandler(t, nil)))

		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		req.Header.Set("Authorization", "Bearer sometoken")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("unauthenticated request is rejected", func(t *testing.T) {
		t.Parallel()

		handler := m.RequireRole(domain.RoleAdmin)(okHandler(t, nil))

		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
