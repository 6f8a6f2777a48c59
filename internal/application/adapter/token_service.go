package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenPair represents an access and refresh token pair.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// TokenClaims represents the claims contained in a JWT token.
type TokenClaims struct {
	UserID    uuid.UUID
	Email     string
	ExpiresAt time.Time
}

// TokenService defines the interface for JWT token operations.
type TokenService interface {
	// GenerateTokenPair generates a new access and refresh token pair.
	GenerateTokenPair(ctx context.Context, userID uuid.UUID, email string) (*TokenPair, error)

	// ValidateAccessToken validates an access token and returns its claims.
	ValidateAccessToken(ctx context.Context, token string) (*TokenClaims, error)

	// ValidateRefreshToken validates a refresh token and returns its claims.
	ValidateRefreshToken(ctx context.Context, token string) (*TokenClaims, error)
}
