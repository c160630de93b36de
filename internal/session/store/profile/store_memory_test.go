package profile

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"cabinet/internal/session/models"
	"cabinet/pkg/platform/sentinel"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemoryStore
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = NewMemory()
}

func (s *InMemoryStoreSuite) TestDocumentLifecycle() {
	ctx := context.Background()
	joined := time.Date(2022, time.November, 3, 10, 30, 0, 0, time.UTC)
	p := &models.UserProfile{
		ID:          "usr-doc-0001",
		Email:       "doc@example.com",
		Name:        "Doc User",
		JoinedDate:  joined,
		Role:        models.RoleStandard,
		ProviderUID: "provider-uid-1",
		RideHistory: []models.RideHistoryEntry{
			{ID: "ride-1", Date: joined.AddDate(0, 2, 1), Cost: 250},
		},
		Friends: []models.Friend{
			{ID: "frd-1", Email: "f@example.com", Status: models.FriendAccepted, AddedDate: joined.AddDate(0, 1, 0)},
		},
		FavoriteDrivers: []models.FavoriteDriver{
			{ID: "fav-1", Email: "d@example.com", AddedDate: joined.AddDate(0, 3, 0)},
		},
	}

	s.Run("get before set reports not found", func() {
		_, err := s.store.Get(ctx, "provider-uid-1")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("update before set reports not found", func() {
		err := s.store.Update(ctx, "provider-uid-1", p)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("set then get converts every timestamp back to a date", func() {
		s.Require().NoError(s.store.Set(ctx, "provider-uid-1", p))

		loaded, err := s.store.Get(ctx, "provider-uid-1")
		s.Require().NoError(err)
		s.True(loaded.JoinedDate.Equal(p.JoinedDate))
		s.True(loaded.RideHistory[0].Date.Equal(p.RideHistory[0].Date))
		s.True(loaded.Friends[0].AddedDate.Equal(p.Friends[0].AddedDate))
		s.True(loaded.FavoriteDrivers[0].AddedDate.Equal(p.FavoriteDrivers[0].AddedDate))
	})

	s.Run("update overwrites an existing document", func() {
		s.Require().NoError(s.store.Set(ctx, "provider-uid-1", p))

		changed := p.Clone()
		changed.Name = "Renamed User"
		s.Require().NoError(s.store.Update(ctx, "provider-uid-1", changed))

		loaded, err := s.store.Get(ctx, "provider-uid-1")
		s.Require().NoError(err)
		s.Equal("Renamed User", loaded.Name)
	})
}

func TestTimestampConversion(t *testing.T) {
	now := time.Date(2024, time.June, 2, 15, 4, 5, 123456789, time.UTC)
	ts := toTimestamp(now)
	if !ts.Time().Equal(now) {
		t.Fatalf("timestamp round trip lost precision: got %v want %v", ts.Time(), now)
	}
}
