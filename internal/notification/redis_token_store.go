package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const tokenTTL = 90 * 24 * time.Hour

// RedisTokenStore keeps each user's device tokens in a redis set. Tokens
// expire after 90 days of no re-registration.
type RedisTokenStore struct {
	client *redis.Client
}

// NewRedisTokenStore creates a RedisTokenStore on the given client.
func NewRedisTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{client: client}
}

func tokenKey(userID uuid.UUID) string {
	return "push:tokens:" + userID.String()
}

// TokensFor returns the user's registered device tokens.
func (s *RedisTokenStore) TokensFor(ctx context.Context, userID uuid.UUID) ([]string, error) {
	tokens, err := s.client.SMembers(ctx, tokenKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read device tokens: %w", err)
	}
	return tokens, nil
}

// Register adds a device token for the user and refreshes the key's TTL.
func (s *RedisTokenStore) Register(ctx context.Context, userID uuid.UUID, token string) error {
	key := tokenKey(userID)
	if err := s.client.SAdd(ctx, key, token).Err(); err != nil {
		return fmt.Errorf("failed to register device token: %w", err)
	}
	if err := s.client.Expire(ctx, key, tokenTTL).Err(); err != nil {
		return fmt.Errorf("failed to set token TTL: %w", err)
	}
	return nil
}
