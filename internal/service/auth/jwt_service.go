// Package auth provides JWT issuance and validation for the API. Tokens are
// issued to frontend-authenticated users and carry the email and role claims
// the route guards check.
package auth

import (
	"context"
	"time"
)

// Claims represents the application claims carried in an access token.
type Claims struct {
	// Email identifies the user the token was issued for.
	Email string `json:"email,omitempty"`

	// Role is the user's platform role, used by admin/student route guards.
	Role string `json:"role,omitempty"`

	// Standard registered claim times.
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
}

// JWTService defines operations for managing JWT authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed access token for the given user
	// identity. Returns the token string or an error if signing fails.
	GenerateToken(ctx context.Context, email, role string) (string, error)

	// ValidateToken validates the provided token string and extracts the
	// claims. Returns ErrExpiredToken, ErrTokenNotYetValid, or
	// ErrInvalidToken when validation fails.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}
