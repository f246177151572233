package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenStore is the refresh-token allowlist backed by Redis.
// Key format: refresh:<username>:<token_id>
type TokenStore struct {
	client *redis.Client
}

// NewTokenStore creates a TokenStore wrapping the given Redis client.
func NewTokenStore(client *redis.Client) *TokenStore {
	return &TokenStore{client: client}
}

// Save records an issued refresh token. The entry expires with the token so
// stale identifiers never accumulate.
func (s *TokenStore) Save(ctx context.Context, username, tokenID string, ttl time.Duration) error {
	return s.client.Set(ctx, s.key(username, tokenID), "1", ttl).Err()
}

// Exists reports whether the refresh token is still valid (issued and not
// yet expired or revoked).
func (s *TokenStore) Exists(ctx context.Context, username, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(username, tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("refresh token lookup: %w", err)
	}
	return n > 0, nil
}

func (s *TokenStore) key(username, tokenID string) string {
	return fmt.Sprintf("refresh:%s:%s", username, tokenID)
}
