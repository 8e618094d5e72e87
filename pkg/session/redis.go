package session

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/caseworks/casegate/pkg/utils/errors"
)

// RedisStore is the Redis-backed ContextStore used in distributed
// deployments: every instance must observe a context switch on the next
// evaluation, not after some cache expiry.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed context store. The client is managed
// by the caller.
func NewRedisStore(client *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	if prefix == "" {
		prefix = "casegate:context:"
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

// Select records the session's confidentiality context.
func (s *RedisStore) Select(ctx context.Context, sessionID, programID string) error {
	if sessionID == "" || programID == "" {
		return errors.ErrInvalidParam.WithMessage("session id and program id are required")
	}
	if err := s.client.Set(ctx, s.prefix+sessionID, programID, s.ttl).Err(); err != nil {
		return errors.ErrSessionStore.WithCause(err)
	}
	return nil
}

// Clear removes the session's selection.
func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.prefix+sessionID).Err(); err != nil {
		return errors.ErrSessionStore.WithCause(err)
	}
	return nil
}

// SelectedContext returns the session's current selection ("" when none).
func (s *RedisStore) SelectedContext(ctx context.Context, sessionID string) (string, error) {
	val, err := s.client.Get(ctx, s.prefix+sessionID).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", errors.ErrSessionStore.WithCause(err)
	}
	return val, nil
}
