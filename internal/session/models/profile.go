package models

import "time"

// Role labels what a profile is allowed to see. It is fixed per seeded
// credential in the directory and caller-supplied at registration otherwise.
type Role string

const (
	RoleStandard   Role = "standard"
	RolePrivileged Role = "privileged"
)

// FriendStatus tracks the lifecycle of a social edge. A friend record starts
// pending and may only move forward to accepted; it never regresses.
//
// The model deliberately does not distinguish inbound from outbound requests:
// the source behavior accepts any of the holder's own pending records. That
// ambiguity is preserved here as documented behavior.
type FriendStatus string

const (
	FriendPending  FriendStatus = "pending"
	FriendAccepted FriendStatus = "accepted"
	FriendBlocked  FriendStatus = "blocked"
)

// Friend is a social edge from a profile to another party. At most one record
// per distinct target email per profile.
type Friend struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Email     string       `json:"email"`
	Avatar    string       `json:"avatar,omitempty"`
	Status    FriendStatus `json:"status"`
	AddedDate time.Time    `json:"addedDate"`
}

// CanAccept reports whether the accept transition applies. Accepted and
// blocked records are left untouched.
func (f Friend) CanAccept() bool {
	return f.Status == FriendPending
}

// FavoriteDriver is created once per distinct driver email; duplicate adds
// are rejected by the service.
type FavoriteDriver struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Avatar        string    `json:"avatar,omitempty"`
	Rating        float64   `json:"rating"`
	VehicleNumber string    `json:"vehicleNumber"`
	VehicleType   string    `json:"vehicleType"`
	TotalRides    int       `json:"totalRides"`
	AddedDate     time.Time `json:"addedDate"`
}

// RideHistoryEntry is an immutable record of a completed ride. Entries are
// prepended to the owning profile's history (newest first) and never mutated
// afterwards except for a user-supplied star rating retrofit.
type RideHistoryEntry struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	Pickup      string    `json:"pickup"`
	Destination string    `json:"destination"`
	Cost        float64   `json:"cost"`
	Driver      string    `json:"driver"`
	Rating      int       `json:"rating"`
	Distance    string    `json:"distance"`
	Duration    string    `json:"duration"`
	RideType    string    `json:"rideType"`
}

// UserProfile is the unified session subject. Email uniquely identifies a
// profile across the directory; ProviderUID links it to an external identity
// when the provider backend created it.
type UserProfile struct {
	ID                  string             `json:"id"`
	Email               string             `json:"email"`
	Name                string             `json:"name"`
	Avatar              string             `json:"avatar,omitempty"`
	MembershipTier      string             `json:"membershipTier"`
	Rating              float64            `json:"rating"`
	TotalRides          int                `json:"totalRides"`
	JoinedDate          time.Time          `json:"joinedDate"`
	Phone               string             `json:"phone,omitempty"`
	EmergencyContact    string             `json:"emergencyContact,omitempty"`
	PreferredPayment    string             `json:"preferredPayment,omitempty"`
	RideHistory         []RideHistoryEntry `json:"rideHistory"`
	FavoriteRoutes      []string           `json:"favoriteRoutes"`
	LoyaltyPoints       int                `json:"loyaltyPoints"`
	Role                Role               `json:"role"`
	Friends             []Friend           `json:"friends"`
	FavoriteDrivers     []FavoriteDriver   `json:"favoriteDrivers"`
	UnreadNotifications int                `json:"unreadNotifications"`
	ProviderUID         string             `json:"providerUid,omitempty"`
}

// FindFriendByEmail returns the friend record for the target email, if any.
// Matches any status: a pending or blocked record still blocks a re-add.
func (p *UserProfile) FindFriendByEmail(email string) (Friend, bool) {
	for _, f := range p.Friends {
		if f.Email == email {
			return f, true
		}
	}
	return Friend{}, false
}

// HasFavoriteDriver reports whether the driver email is already favorited.
func (p *UserProfile) HasFavoriteDriver(email string) bool {
	for _, d := range p.FavoriteDrivers {
		if d.Email == email {
			return true
		}
	}
	return false
}

// ApplyRide prepends the entry to ride history, bumps the lifetime ride
// count, and credits loyalty points at 10% of the ride cost, floored.
// Loyalty points only increase.
func (p *UserProfile) ApplyRide(entry RideHistoryEntry) {
	p.RideHistory = append([]RideHistoryEntry{entry}, p.RideHistory...)
	p.TotalRides++
	if entry.Cost > 0 {
		p.LoyaltyPoints += int(entry.Cost / 10)
	}
}

// Clone returns a deep copy so callers can mutate the active session without
// reaching back into directory or store records.
func (p *UserProfile) Clone() *UserProfile {
	cp := *p
	cp.RideHistory = append([]RideHistoryEntry{}, p.RideHistory...)
	cp.FavoriteRoutes = append([]string{}, p.FavoriteRoutes...)
	cp.Friends = append([]Friend{}, p.Friends...)
	cp.FavoriteDrivers = append([]FavoriteDriver{}, p.FavoriteDrivers...)
	return &cp
}

// SessionState is the process-wide view of who is logged in. Loading starts
// true and resolves once the persisted store and/or provider have reported.
type SessionState struct {
	User       *UserProfile `json:"user"`
	IsLoggedIn bool         `json:"isLoggedIn"`
	Loading    bool         `json:"loading"`
}
