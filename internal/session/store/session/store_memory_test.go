package session

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

func sampleProfile() *models.UserProfile {
	joined := time.Date(2023, time.March, 12, 0, 0, 0, 0, time.UTC)
	return &models.UserProfile{
		ID:         "usr-test-0001",
		Email:      "jane.doe@example.com",
		Name:       "Jane Doe",
		JoinedDate: joined,
		Role:       models.RoleStandard,
		RideHistory: []models.RideHistoryEntry{
			{
				ID:     "ride-1",
				Date:   joined.AddDate(0, 1, 0),
				Pickup: "A",
				Cost:   120,
			},
		},
		Friends: []models.Friend{
			{ID: "frd-1", Email: "x@example.com", Status: models.FriendPending, AddedDate: joined},
		},
		FavoriteDrivers: []models.FavoriteDriver{
			{ID: "fav-1", Email: "d@example.com", AddedDate: joined},
		},
	}
}

func (s *InMemoryStoreSuite) TestRoundTrip() {
	s.Run("empty store loads logged out", func() {
		profile, loggedIn, err := s.store.Load(context.Background())
		s.Require().NoError(err)
		s.False(loggedIn)
		s.Nil(profile)
	})

	s.Run("save then load reconstructs every date field as a date", func() {
		original := sampleProfile()
		s.Require().NoError(s.store.Save(context.Background(), original))

		loaded, loggedIn, err := s.store.Load(context.Background())
		s.Require().NoError(err)
		s.True(loggedIn)
		s.True(loaded.JoinedDate.Equal(original.JoinedDate))
		s.True(loaded.RideHistory[0].Date.Equal(original.RideHistory[0].Date))
		s.True(loaded.Friends[0].AddedDate.Equal(original.Friends[0].AddedDate))
		s.True(loaded.FavoriteDrivers[0].AddedDate.Equal(original.FavoriteDrivers[0].AddedDate))
	})

	s.Run("clear empties both slots", func() {
		s.Require().NoError(s.store.Save(context.Background(), sampleProfile()))
		s.Require().NoError(s.store.Clear(context.Background()))

		profile, loggedIn, err := s.store.Load(context.Background())
		s.Require().NoError(err)
		s.False(loggedIn)
		s.Nil(profile)
	})
}

func (s *InMemoryStoreSuite) TestMalformedPayload() {
	s.Run("unparseable payload surfaces invalid state", func() {
		s.store.Corrupt([]byte("{not json"))
		_, _, err := s.store.Load(context.Background())
		s.Require().ErrorIs(err, sentinel.ErrInvalidState)
	})

	s.Run("payload missing required fields surfaces invalid state", func() {
		s.store.Corrupt([]byte(`{"id":"usr-1","email":""}`))
		_, _, err := s.store.Load(context.Background())
		s.Require().ErrorIs(err, sentinel.ErrInvalidState)
	})
}
