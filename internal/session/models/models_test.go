package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cabinet/internal/session/models"
	"cabinet/pkg/platform/sentinel"
	"cabinet/pkg/testutil"
)

func TestApplyRide(t *testing.T) {
	profile := &models.UserProfile{
		ID: "usr-1", Email: "x@example.com", Name: "X",
		TotalRides:    5,
		LoyaltyPoints: 200,
		RideHistory: []models.RideHistoryEntry{
			{ID: "ride-old", Pickup: "Old"},
		},
	}

	testutil.When(t, "a paid ride completes", func(t *testing.T) {
		profile.ApplyRide(models.RideHistoryEntry{ID: "ride-new", Pickup: "New", Cost: 347})

		testutil.Then(t, "the entry is prepended", func(t *testing.T) {
			require.Len(t, profile.RideHistory, 2)
			assert.Equal(t, "ride-new", profile.RideHistory[0].ID)
		})
		testutil.Then(t, "counters and floored loyalty credit move", func(t *testing.T) {
			assert.Equal(t, 6, profile.TotalRides)
			assert.Equal(t, 234, profile.LoyaltyPoints)
		})
	})

	testutil.When(t, "a free ride completes", func(t *testing.T) {
		profile.ApplyRide(models.RideHistoryEntry{ID: "ride-free"})

		testutil.Then(t, "loyalty points do not move", func(t *testing.T) {
			assert.Equal(t, 234, profile.LoyaltyPoints)
			assert.Equal(t, 7, profile.TotalRides)
		})
	})
}

func TestProfileCodec(t *testing.T) {
	testutil.Given(t, "a profile with populated date fields", func(t *testing.T) {
		joined := time.Date(2023, time.March, 12, 0, 0, 0, 0, time.UTC)
		profile := &models.UserProfile{
			ID: "usr-1", Email: "x@example.com", Name: "X",
			JoinedDate: joined,
			Friends: []models.Friend{
				{ID: "frd-1", Email: "f@example.com", Status: models.FriendPending, AddedDate: joined},
			},
		}

		data, err := models.EncodeProfile(profile)
		require.NoError(t, err)

		decoded, err := models.DecodeProfile(data)
		require.NoError(t, err)
		assert.True(t, decoded.JoinedDate.Equal(joined))
		assert.True(t, decoded.Friends[0].AddedDate.Equal(joined))
		assert.Equal(t, models.FriendPending, decoded.Friends[0].Status)
	})

	testutil.Given(t, "a payload that is not json", func(t *testing.T) {
		_, err := models.DecodeProfile([]byte("{nope"))
		assert.ErrorIs(t, err, sentinel.ErrInvalidState)
	})

	testutil.Given(t, "a payload missing required identity fields", func(t *testing.T) {
		_, err := models.DecodeProfile([]byte(`{"id":"usr-1","email":"x@example.com"}`))
		assert.ErrorIs(t, err, sentinel.ErrInvalidState)
	})
}

func TestClone(t *testing.T) {
	original := &models.UserProfile{
		ID: "usr-1", Email: "x@example.com", Name: "X",
		Friends: []models.Friend{{ID: "frd-1", Status: models.FriendPending}},
	}

	clone := original.Clone()
	clone.Name = "Mutated"
	clone.Friends[0].Status = models.FriendAccepted

	assert.Equal(t, "X", original.Name)
	assert.Equal(t, models.FriendPending, original.Friends[0].Status)
}

func TestPatchApply(t *testing.T) {
	profile := &models.UserProfile{
		ID: "usr-1", Email: "x@example.com", Name: "X",
		MembershipTier: "Gold",
		LoyaltyPoints:  860,
	}

	name := "Renamed"
	phone := "+91 90000 00000"
	models.ProfilePatch{Name: &name, Phone: &phone}.Apply(profile)

	assert.Equal(t, "Renamed", profile.Name)
	assert.Equal(t, "+91 90000 00000", profile.Phone)
	assert.Equal(t, "Gold", profile.MembershipTier)
	assert.Equal(t, 860, profile.LoyaltyPoints)
}
