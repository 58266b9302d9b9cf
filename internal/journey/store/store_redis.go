package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"addressfinder/internal/journey"
	"addressfinder/pkg/platform/sentinel"
)

const journeyKeyPrefix = "journey:"

// RedisStore is the production keystore. Records are stored as JSON values
// with a TTL; expiry is how journeys end when the user walks away.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore constructs a Redis-backed keystore. Every Put refreshes the
// TTL, so an active journey stays alive.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, id journey.ID) (*journey.Record, error) {
	raw, err := s.client.Get(ctx, journeyKeyPrefix+id.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("journey %s: %w", id, sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get journey %s: %w", id, errors.Join(sentinel.ErrUnavailable, err))
	}
	var record journey.Record
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("decode journey %s: %w", id, err)
	}
	return &record, nil
}

func (s *RedisStore) Put(ctx context.Context, id journey.ID, record *journey.Record) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode journey %s: %w", id, err)
	}
	if err := s.client.Set(ctx, journeyKeyPrefix+id.String(), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("put journey %s: %w", id, errors.Join(sentinel.ErrUnavailable, err))
	}
	return nil
}
