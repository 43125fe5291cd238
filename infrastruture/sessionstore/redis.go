// Package sessionstore keeps live session snapshots.
package sessionstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/vinom-robomaze/domain"
	"github.com/beka-birhanu/vinom-robomaze/service/i"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisStore stores sessions as JSON values that expire after a period of inactivity.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a store on the given Redis client. Every save refreshes the TTL.
func NewRedisStore(client *redis.Client, ttlSeconds int) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}
}

var _ i.SessionStore = &RedisStore{}

// Save writes the session record.
func (s *RedisStore) Save(ctx context.Context, record dmn.SessionRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encoding session %s: %w", record.ID, err)
	}
	return s.client.Set(ctx, sessionKey(record.ID), payload, s.ttl).Err()
}

// ByID retrieves a session record.
func (s *RedisStore) ByID(ctx context.Context, id uuid.UUID) (dmn.SessionRecord, error) {
	var record dmn.SessionRecord

	payload, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return record, i.ErrNotFound
		}
		return record, err
	}

	if err := json.Unmarshal(payload, &record); err != nil {
		return record, fmt.Errorf("decoding session %s: %w", id, err)
	}
	return record, nil
}

// Delete removes a session record.
func (s *RedisStore) Delete(ctx context.Context, id uuid.UUID) error {
	return s.client.Del(ctx, sessionKey(id)).Err()
}

func sessionKey(id uuid.UUID) string {
	return "robomaze:session:" + id.String()
}
