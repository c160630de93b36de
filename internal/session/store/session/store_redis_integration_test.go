//go:build integration

package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"cabinet/internal/session/models"
	"cabinet/internal/session/store/session"
	"cabinet/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *session.RedisStore
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.store = session.NewRedis(s.redis.Client)
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisStoreSuite) TestRoundTrip() {
	ctx := context.Background()
	profile := &models.UserProfile{
		ID:         "usr-redis-0001",
		Email:      "redis@example.com",
		Name:       "Redis User",
		JoinedDate: time.Date(2023, time.March, 12, 0, 0, 0, 0, time.UTC),
		Role:       models.RolePrivileged,
	}

	s.Run("empty slot loads logged out", func() {
		loaded, loggedIn, err := s.store.Load(ctx)
		s.Require().NoError(err)
		s.False(loggedIn)
		s.Nil(loaded)
	})

	s.Run("save then load restores the session", func() {
		s.Require().NoError(s.store.Save(ctx, profile))

		loaded, loggedIn, err := s.store.Load(ctx)
		s.Require().NoError(err)
		s.True(loggedIn)
		s.Equal(profile.Email, loaded.Email)
		s.True(loaded.JoinedDate.Equal(profile.JoinedDate))
	})

	s.Run("clear deletes both keys", func() {
		s.Require().NoError(s.store.Save(ctx, profile))
		s.Require().NoError(s.store.Clear(ctx))

		loaded, loggedIn, err := s.store.Load(ctx)
		s.Require().NoError(err)
		s.False(loggedIn)
		s.Nil(loaded)
	})
}
