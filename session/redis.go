package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists session fields in Redis under a fixed prefix. Fields are
// written without TTL; the session lives until Logout clears it.
type RedisStore struct {
	redis  redis.UniversalClient
	prefix string
}

// NewRedisStore creates a Redis-backed store. An empty prefix defaults to "mb".
func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "mb"
	}
	return &RedisStore{
		redis:  client,
		prefix: prefix,
	}
}

func (r *RedisStore) key(key Key) string {
	return r.prefix + ":session:" + string(key)
}

// Get describes the get operation and its observable behavior.
func (r *RedisStore) Get(ctx context.Context, key Key) (string, error) {
	value, err := r.redis.Get(ctx, r.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrFieldNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return value, nil
}

// Set describes the set operation and its observable behavior.
func (r *RedisStore) Set(ctx context.Context, key Key, value string) error {
	if err := r.redis.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// Delete describes the delete operation and its observable behavior.
func (r *RedisStore) Delete(ctx context.Context, key Key) error {
	if err := r.redis.Del(ctx, r.key(key)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}
