package handoff

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "handoff:"

// RedisStore implements Store on redis with a per-slot TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a redis-backed handoff store.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// Put serializes the payload and stores it under the token with the TTL.
func (s *RedisStore) Put(ctx context.Context, token string, payload Payload) error {
	payload.Version = SchemaVersion

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, keyPrefix+token, data, s.ttl).Err()
}

// Get returns the payload for the token. Absent, expired, malformed, and
// stale-version slots all return ErrNotFound.
func (s *RedisStore) Get(ctx context.Context, token string) (Payload, error) {
	data, err := s.client.Get(ctx, keyPrefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Payload{}, ErrNotFound
		}
		return Payload{}, err
	}

	var payload Payload
	if err := json.Unmarshal(data, &payload); err != nil {
		return Payload{}, ErrNotFound
	}
	if payload.Version != SchemaVersion {
		return Payload{}, ErrNotFound
	}

	return payload, nil
}

// Clear removes the slot.
func (s *RedisStore) Clear(ctx context.Context, token string) error {
	return s.client.Del(ctx, keyPrefix+token).Err()
}

var _ Store = (*RedisStore)(nil)
