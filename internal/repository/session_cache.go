package repository

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// SessionCache mirrors live session ids in Redis so revocation checks do
// not need a database round trip. Entries expire with the token.
type SessionCache interface {
	MarkLive(ctx context.Context, sessionID string, ttl time.Duration) error
	IsLive(ctx context.Context, sessionID string) (bool, error)
	Drop(ctx context.Context, sessionID string) error
}

type sessionCache struct {
	client *redis.Client
}

// NewSessionCache wraps a Redis client as a session mirror.
func NewSessionCache(client *redis.Client) SessionCache {
	return &sessionCache{client: client}
}

func (c *sessionCache) MarkLive(ctx context.Context, sessionID string, ttl time.Duration) error {
	if c.client == nil || ttl <= 0 {
		return nil
	}
	return c.client.Set(ctx, sessionKeyPrefix+sessionID, "1", ttl).Err()
}

func (c *sessionCache) IsLive(ctx context.Context, sessionID string) (bool, error) {
	if c.client == nil {
		return false, nil
	}
	_, err := c.client.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (c *sessionCache) Drop(ctx context.Context, sessionID string) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, sessionKeyPrefix+sessionID).Err()
}
