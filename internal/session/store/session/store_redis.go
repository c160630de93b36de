package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"cabinet/internal/session/models"
)

const (
	keyProfile  = "cabinet:session:user"
	keyLoggedIn = "cabinet:session:logged_in"
)

// RedisStore persists the session slot in Redis under two string keys,
// mirroring the client's two local-storage entries.
type RedisStore struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Load(ctx context.Context) (*models.UserProfile, bool, error) {
	flag, err := s.client.Get(ctx, keyLoggedIn).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load logged-in flag: %w", err)
	}
	if flag != "true" {
		return nil, false, nil
	}

	data, err := s.client.Get(ctx, keyProfile).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load profile: %w", err)
	}

	profile, err := models.DecodeProfile([]byte(data))
	if err != nil {
		return nil, false, err
	}
	return profile, true, nil
}

func (s *RedisStore) Save(ctx context.Context, profile *models.UserProfile) error {
	data, err := models.EncodeProfile(profile)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, keyProfile, data, 0)
	pipe.Set(ctx, keyLoggedIn, "true", 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, keyProfile, keyLoggedIn).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
