package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore tracks live login sessions so tokens can be revoked
// before their JWT expiry (logout, credential changes).
type SessionStore interface {
	Save(ctx context.Context, token, userID string, ttl time.Duration) error
	Exists(ctx context.Context, token string) (bool, error)
	Delete(ctx context.Context, token string) error
}

const sessionKeyPrefix = "session:"

type RedisSessionStore struct {
	client *redis.Client
}

func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

func (s *RedisSessionStore) Save(ctx context.Context, token, userID string, ttl time.Duration) error {
	return s.client.Set(ctx, sessionKeyPrefix+token, userID, ttl).Err()
}

func (s *RedisSessionStore) Exists(ctx context.Context, token string) (bool, error) {
	n, err := s.client.Exists(ctx, sessionKeyPrefix+token).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, sessionKeyPrefix+token).Err()
}
