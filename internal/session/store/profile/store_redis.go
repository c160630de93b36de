package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"cabinet/internal/session/models"
	"cabinet/pkg/platform/sentinel"
)

const keyPrefix = "cabinet:profiles:"

// RedisStore persists documents under one key per provider UID.
type RedisStore struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, uid string) (*models.UserProfile, error) {
	data, err := s.client.Get(ctx, keyPrefix+uid).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get profile document: %w", err)
	}
	return unmarshalDocument(data)
}

func (s *RedisStore) Set(ctx context.Context, uid string, profile *models.UserProfile) error {
	data, err := marshalDocument(profile)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, keyPrefix+uid, data, 0).Err(); err != nil {
		return fmt.Errorf("set profile document: %w", err)
	}
	return nil
}

func (s *RedisStore) Update(ctx context.Context, uid string, profile *models.UserProfile) error {
	data, err := marshalDocument(profile)
	if err != nil {
		return err
	}

	// SET XX preserves the update-requires-existing contract atomically.
	ok, err := s.client.SetXX(ctx, keyPrefix+uid, data, 0).Result()
	if err != nil {
		return fmt.Errorf("update profile document: %w", err)
	}
	if !ok {
		return sentinel.ErrNotFound
	}
	return nil
}
