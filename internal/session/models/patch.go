package models

// ProfilePatch carries a shallow profile update. Nil fields are left
// untouched. Identity fields (id, email, role), loyalty points, and the
// social/history collections are not patchable; those move only through
// their dedicated operations.
type ProfilePatch struct {
	Name                *string  `json:"name,omitempty"`
	Avatar              *string  `json:"avatar,omitempty"`
	MembershipTier      *string  `json:"membershipTier,omitempty"`
	Phone               *string  `json:"phone,omitempty"`
	EmergencyContact    *string  `json:"emergencyContact,omitempty"`
	PreferredPayment    *string  `json:"preferredPayment,omitempty"`
	Rating              *float64 `json:"rating,omitempty"`
	FavoriteRoutes      []string `json:"favoriteRoutes,omitempty"`
	UnreadNotifications *int     `json:"unreadNotifications,omitempty"`
}

// Apply merges the patch into the profile.
func (patch ProfilePatch) Apply(p *UserProfile) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Avatar != nil {
		p.Avatar = *patch.Avatar
	}
	if patch.MembershipTier != nil {
		p.MembershipTier = *patch.MembershipTier
	}
	if patch.Phone != nil {
		p.Phone = *patch.Phone
	}
	if patch.EmergencyContact != nil {
		p.EmergencyContact = *patch.EmergencyContact
	}
	if patch.PreferredPayment != nil {
		p.PreferredPayment = *patch.PreferredPayment
	}
	if patch.Rating != nil {
		p.Rating = *patch.Rating
	}
	if patch.FavoriteRoutes != nil {
		p.FavoriteRoutes = append([]string{}, patch.FavoriteRoutes...)
	}
	if patch.UnreadNotifications != nil {
		p.UnreadNotifications = *patch.UnreadNotifications
	}
}
