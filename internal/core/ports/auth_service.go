package ports

import (
	"context"
	"time"

	"github.com/bookvault/books-api/internal/core/domain"
)

// TokenPair is the credential set issued on login.
type TokenPair struct {
	Access  string
	Refresh string
}

type AuthService interface {
	Register(ctx context.Context, username, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*TokenPair, error)
	// Refresh exchanges a valid refresh token for a new access token.
	Refresh(ctx context.Context, refreshToken string) (string, error)
}

// RefreshTokenStore records issued refresh tokens so they can be checked
// (and implicitly revoked by expiry) when a new access token is requested.
type RefreshTokenStore interface {
	Save(ctx context.Context, username, tokenID string, ttl time.Duration) error
	Exists(ctx context.Context, username, tokenID string) (bool, error)
}
