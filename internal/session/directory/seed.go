package directory

import (
	"time"

	"cabinet/internal/session/models"
)

// Fixed demo personas. Passwords stay plaintext here on purpose: these are
// published demo credentials, not accounts.
func (d *Directory) seed() {
	joined := func(year int, month time.Month, day int) time.Time {
		return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	}

	demo := &models.UserProfile{
		ID:             "usr-demo-0001",
		Email:          "demo@cabinet.com",
		Name:           "Demo User",
		MembershipTier: "Gold",
		Rating:         4.8,
		TotalRides:     42,
		JoinedDate:     joined(2023, time.March, 12),
		Phone:          "+91 98100 10001",
		PreferredPayment: "UPI",
		RideHistory: []models.RideHistoryEntry{
			{
				ID:          "ride-demo-0002",
				Date:        joined(2024, time.June, 2),
				Pickup:      "Connaught Place",
				Destination: "IGI Airport T3",
				Cost:        540,
				Driver:      "Suresh Yadav",
				Rating:      5,
				Distance:    "16.4 km",
				Duration:    "38 min",
				RideType:    "Sedan",
			},
			{
				ID:          "ride-demo-0001",
				Date:        joined(2024, time.May, 20),
				Pickup:      "Hauz Khas Village",
				Destination: "Cyber City, Gurugram",
				Cost:        320,
				Driver:      "Ramesh Kumar",
				Rating:      4,
				Distance:    "11.2 km",
				Duration:    "27 min",
				RideType:    "Mini",
			},
		},
		FavoriteRoutes: []string{"Home → Office", "Office → Gym"},
		LoyaltyPoints:  860,
		Role:           models.RoleStandard,
		Friends: []models.Friend{
			{
				ID:        "frd-demo-0001",
				Name:      "Priya Sharma",
				Email:     "priya@cabinet.com",
				Status:    models.FriendAccepted,
				AddedDate: joined(2023, time.August, 4),
			},
		},
		FavoriteDrivers: []models.FavoriteDriver{
			{
				ID:            "fav-demo-0001",
				Name:          "Suresh Yadav",
				Email:         "suresh.driver@cabinet.com",
				Rating:        4.9,
				VehicleNumber: "DL 3C AB 1234",
				VehicleType:   "Sedan",
				TotalRides:    12,
				AddedDate:     joined(2023, time.September, 15),
			},
		},
		UnreadNotifications: 2,
	}

	aryan := &models.UserProfile{
		ID:             "usr-aryan-0001",
		Email:          "aryan@cabinet.com",
		Name:           "Aryan Singh",
		MembershipTier: "Platinum",
		Rating:         4.9,
		TotalRides:     128,
		JoinedDate:     joined(2022, time.January, 5),
		Phone:          "+91 98100 10002",
		PreferredPayment: "Card",
		RideHistory: []models.RideHistoryEntry{
			{
				ID:          "ride-aryan-0001",
				Date:        joined(2024, time.June, 10),
				Pickup:      "Sector 62, Noida",
				Destination: "Khan Market",
				Cost:        410,
				Driver:      "Vikram Mehta",
				Rating:      5,
				Distance:    "19.8 km",
				Duration:    "44 min",
				RideType:    "Premium",
			},
		},
		FavoriteRoutes:      []string{"Home → HQ"},
		LoyaltyPoints:       2450,
		Role:                models.RolePrivileged,
		Friends:             []models.Friend{},
		FavoriteDrivers:     []models.FavoriteDriver{},
		UnreadNotifications: 0,
	}

	priya := &models.UserProfile{
		ID:                  "usr-priya-0001",
		Email:               "priya@cabinet.com",
		Name:                "Priya Sharma",
		MembershipTier:      "Silver",
		Rating:              4.6,
		TotalRides:          17,
		JoinedDate:          joined(2023, time.July, 22),
		Phone:               "+91 98100 10003",
		PreferredPayment:    "UPI",
		RideHistory:         []models.RideHistoryEntry{},
		FavoriteRoutes:      []string{},
		LoyaltyPoints:       210,
		Role:                models.RoleStandard,
		Friends:             []models.Friend{},
		FavoriteDrivers:     []models.FavoriteDriver{},
		UnreadNotifications: 1,
	}

	for _, p := range []*models.UserProfile{demo, aryan, priya} {
		d.profiles[p.Email] = p
	}

	d.credentials["demo@cabinet.com"] = credential{
		email:     "demo@cabinet.com",
		password:  "demo123",
		loginRole: LoginRoleUser,
	}
	d.credentials["aryan@cabinet.com"] = credential{
		email:     "aryan@cabinet.com",
		password:  "admin123",
		loginRole: LoginRoleDeveloper,
	}
	d.credentials["priya@cabinet.com"] = credential{
		email:     "priya@cabinet.com",
		password:  "priya123",
		loginRole: LoginRoleUser,
	}

	for _, drv := range []Driver{
		{
			Name:          "Suresh Yadav",
			Email:         "suresh.driver@cabinet.com",
			Rating:        4.9,
			VehicleNumber: "DL 3C AB 1234",
			VehicleType:   "Sedan",
		},
		{
			Name:          "Ramesh Kumar",
			Email:         "ramesh.driver@cabinet.com",
			Rating:        4.7,
			VehicleNumber: "DL 8S XY 5678",
			VehicleType:   "Mini",
		},
		{
			Name:          "Vikram Mehta",
			Email:         "vikram.driver@cabinet.com",
			Rating:        4.8,
			VehicleNumber: "UP 16 CD 9012",
			VehicleType:   "Premium",
		},
	} {
		d.drivers[drv.Email] = drv
	}
}
