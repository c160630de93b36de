package profile

import (
	"encoding/json"
	"fmt"
	"time"

	"cabinet/internal/session/models"
	"cabinet/pkg/platform/sentinel"
)

// Timestamp is the provider's wire representation of a point in time. Every
// date-bearing field in a stored document uses it, so documents survive a
// provider-side export/import unchanged.
type Timestamp struct {
	Seconds int64 `json:"seconds"`
	Nanos   int32 `json:"nanos"`
}

func toTimestamp(t time.Time) Timestamp {
	return Timestamp{Seconds: t.Unix(), Nanos: int32(t.Nanosecond())}
}

func (ts Timestamp) Time() time.Time {
	return time.Unix(ts.Seconds, int64(ts.Nanos)).UTC()
}

type friendDoc struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar,omitempty"`
	Status    string    `json:"status"`
	AddedDate Timestamp `json:"addedDate"`
}

type favoriteDriverDoc struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Avatar        string    `json:"avatar,omitempty"`
	Rating        float64   `json:"rating"`
	VehicleNumber string    `json:"vehicleNumber"`
	VehicleType   string    `json:"vehicleType"`
	TotalRides    int       `json:"totalRides"`
	AddedDate     Timestamp `json:"addedDate"`
}

type rideDoc struct {
	ID          string    `json:"id"`
	Date        Timestamp `json:"date"`
	Pickup      string    `json:"pickup"`
	Destination string    `json:"destination"`
	Cost        float64   `json:"cost"`
	Driver      string    `json:"driver"`
	Rating      int       `json:"rating"`
	Distance    string    `json:"distance"`
	Duration    string    `json:"duration"`
	RideType    string    `json:"rideType"`
}

type document struct {
	ID                  string              `json:"id"`
	Email               string              `json:"email"`
	Name                string              `json:"name"`
	Avatar              string              `json:"avatar,omitempty"`
	MembershipTier      string              `json:"membershipTier"`
	Rating              float64             `json:"rating"`
	TotalRides          int                 `json:"totalRides"`
	JoinedDate          Timestamp           `json:"joinedDate"`
	Phone               string              `json:"phone,omitempty"`
	EmergencyContact    string              `json:"emergencyContact,omitempty"`
	PreferredPayment    string              `json:"preferredPayment,omitempty"`
	RideHistory         []rideDoc           `json:"rideHistory"`
	FavoriteRoutes      []string            `json:"favoriteRoutes"`
	LoyaltyPoints       int                 `json:"loyaltyPoints"`
	Role                string              `json:"role"`
	Friends             []friendDoc         `json:"friends"`
	FavoriteDrivers     []favoriteDriverDoc `json:"favoriteDrivers"`
	UnreadNotifications int                 `json:"unreadNotifications"`
	ProviderUID         string              `json:"providerUid,omitempty"`
}

func toDocument(p *models.UserProfile) document {
	doc := document{
		ID:                  p.ID,
		Email:               p.Email,
		Name:                p.Name,
		Avatar:              p.Avatar,
		MembershipTier:      p.MembershipTier,
		Rating:              p.Rating,
		TotalRides:          p.TotalRides,
		JoinedDate:          toTimestamp(p.JoinedDate),
		Phone:               p.Phone,
		EmergencyContact:    p.EmergencyContact,
		PreferredPayment:    p.PreferredPayment,
		FavoriteRoutes:      append([]string{}, p.FavoriteRoutes...),
		LoyaltyPoints:       p.LoyaltyPoints,
		Role:                string(p.Role),
		UnreadNotifications: p.UnreadNotifications,
		ProviderUID:         p.ProviderUID,
	}
	for _, r := range p.RideHistory {
		doc.RideHistory = append(doc.RideHistory, rideDoc{
			ID:          r.ID,
			Date:        toTimestamp(r.Date),
			Pickup:      r.Pickup,
			Destination: r.Destination,
			Cost:        r.Cost,
			Driver:      r.Driver,
			Rating:      r.Rating,
			Distance:    r.Distance,
			Duration:    r.Duration,
			RideType:    r.RideType,
		})
	}
	for _, f := range p.Friends {
		doc.Friends = append(doc.Friends, friendDoc{
			ID:        f.ID,
			Name:      f.Name,
			Email:     f.Email,
			Avatar:    f.Avatar,
			Status:    string(f.Status),
			AddedDate: toTimestamp(f.AddedDate),
		})
	}
	for _, d := range p.FavoriteDrivers {
		doc.FavoriteDrivers = append(doc.FavoriteDrivers, favoriteDriverDoc{
			ID:            d.ID,
			Name:          d.Name,
			Email:         d.Email,
			Avatar:        d.Avatar,
			Rating:        d.Rating,
			VehicleNumber: d.VehicleNumber,
			VehicleType:   d.VehicleType,
			TotalRides:    d.TotalRides,
			AddedDate:     toTimestamp(d.AddedDate),
		})
	}
	return doc
}

func (doc document) toProfile() *models.UserProfile {
	p := &models.UserProfile{
		ID:                  doc.ID,
		Email:               doc.Email,
		Name:                doc.Name,
		Avatar:              doc.Avatar,
		MembershipTier:      doc.MembershipTier,
		Rating:              doc.Rating,
		TotalRides:          doc.TotalRides,
		JoinedDate:          doc.JoinedDate.Time(),
		Phone:               doc.Phone,
		EmergencyContact:    doc.EmergencyContact,
		PreferredPayment:    doc.PreferredPayment,
		RideHistory:         []models.RideHistoryEntry{},
		FavoriteRoutes:      append([]string{}, doc.FavoriteRoutes...),
		LoyaltyPoints:       doc.LoyaltyPoints,
		Role:                models.Role(doc.Role),
		Friends:             []models.Friend{},
		FavoriteDrivers:     []models.FavoriteDriver{},
		UnreadNotifications: doc.UnreadNotifications,
		ProviderUID:         doc.ProviderUID,
	}
	for _, r := range doc.RideHistory {
		p.RideHistory = append(p.RideHistory, models.RideHistoryEntry{
			ID:          r.ID,
			Date:        r.Date.Time(),
			Pickup:      r.Pickup,
			Destination: r.Destination,
			Cost:        r.Cost,
			Driver:      r.Driver,
			Rating:      r.Rating,
			Distance:    r.Distance,
			Duration:    r.Duration,
			RideType:    r.RideType,
		})
	}
	for _, f := range doc.Friends {
		p.Friends = append(p.Friends, models.Friend{
			ID:        f.ID,
			Name:      f.Name,
			Email:     f.Email,
			Avatar:    f.Avatar,
			Status:    models.FriendStatus(f.Status),
			AddedDate: f.AddedDate.Time(),
		})
	}
	for _, d := range doc.FavoriteDrivers {
		p.FavoriteDrivers = append(p.FavoriteDrivers, models.FavoriteDriver{
			ID:            d.ID,
			Name:          d.Name,
			Email:         d.Email,
			Avatar:        d.Avatar,
			Rating:        d.Rating,
			VehicleNumber: d.VehicleNumber,
			VehicleType:   d.VehicleType,
			TotalRides:    d.TotalRides,
			AddedDate:     d.AddedDate.Time(),
		})
	}
	return p
}

func marshalDocument(p *models.UserProfile) ([]byte, error) {
	data, err := json.Marshal(toDocument(p))
	if err != nil {
		return nil, fmt.Errorf("marshal profile document: %w", err)
	}
	return data, nil
}

func unmarshalDocument(data []byte) (*models.UserProfile, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal profile document: %w: %w", sentinel.ErrInvalidState, err)
	}
	return doc.toProfile(), nil
}
