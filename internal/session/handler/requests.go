package handler

import (
	"strings"

	"cabinet/internal/session/directory"
	"cabinet/internal/session/models"
	dErrors "cabinet/pkg/domain-errors"
)

// LoginRequest is the HTTP request body for POST /session/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Validate validates and normalizes the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *LoginRequest) Validate() error {
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	if r.Email == "" {
		return dErrors.New(dErrors.CodeBadRequest, "email is required")
	}
	if r.Password == "" {
		return dErrors.New(dErrors.CodeBadRequest, "password is required")
	}
	if r.Role == "" {
		r.Role = directory.LoginRoleUser
	}
	if r.Role != directory.LoginRoleUser && r.Role != directory.LoginRoleDeveloper {
		return dErrors.New(dErrors.CodeBadRequest, "role must be user or developer")
	}
	return nil
}

// GoogleLoginRequest is the HTTP request body for POST /session/login/google.
type GoogleLoginRequest struct {
	IDToken string `json:"idToken"`
}

func (r *GoogleLoginRequest) Validate() error {
	if strings.TrimSpace(r.IDToken) == "" {
		return dErrors.New(dErrors.CodeBadRequest, "idToken is required")
	}
	return nil
}

// RegisterRequest is the HTTP request body for POST /session/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

func (r *RegisterRequest) Validate() error {
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	r.Name = strings.TrimSpace(r.Name)
	if r.Email == "" {
		return dErrors.New(dErrors.CodeBadRequest, "email is required")
	}
	if len(r.Password) < 6 {
		return dErrors.New(dErrors.CodeBadRequest, "password must be at least 6 characters")
	}
	if r.Name == "" {
		return dErrors.New(dErrors.CodeBadRequest, "name is required")
	}
	if r.Role == "" {
		r.Role = directory.LoginRoleUser
	}
	if r.Role != directory.LoginRoleUser && r.Role != directory.LoginRoleDeveloper {
		return dErrors.New(dErrors.CodeBadRequest, "role must be user or developer")
	}
	return nil
}

// EmailRequest covers the single-email bodies: OTP send and password reset.
type EmailRequest struct {
	Email string `json:"email"`
}

func (r *EmailRequest) Validate() error {
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	if r.Email == "" {
		return dErrors.New(dErrors.CodeBadRequest, "email is required")
	}
	return nil
}

// VerifyOTPRequest is the HTTP request body for POST /session/otp/verify.
type VerifyOTPRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

func (r *VerifyOTPRequest) Validate() error {
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	r.Code = strings.TrimSpace(r.Code)
	if r.Email == "" {
		return dErrors.New(dErrors.CodeBadRequest, "email is required")
	}
	if len(r.Code) != 6 {
		return dErrors.New(dErrors.CodeBadRequest, "code must be 6 digits")
	}
	return nil
}

// UpdateProfileRequest is the HTTP request body for PATCH /session/me. It is
// the profile patch verbatim; validation only bounds the rating.
type UpdateProfileRequest struct {
	models.ProfilePatch
}

func (r *UpdateProfileRequest) Validate() error {
	if r.Rating != nil && (*r.Rating < 0 || *r.Rating > 5) {
		return dErrors.New(dErrors.CodeBadRequest, "rating must be between 0 and 5")
	}
	return nil
}

// AddFriendRequest is the HTTP request body for POST /session/friends.
type AddFriendRequest struct {
	Email string `json:"email"`
}

func (r *AddFriendRequest) Validate() error {
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	if r.Email == "" {
		return dErrors.New(dErrors.CodeBadRequest, "email is required")
	}
	return nil
}

// FavoriteDriverRequest is the HTTP request body for POST /session/drivers/favorite.
type FavoriteDriverRequest struct {
	Email string `json:"email"`
}

func (r *FavoriteDriverRequest) Validate() error {
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	if r.Email == "" {
		return dErrors.New(dErrors.CodeBadRequest, "email is required")
	}
	return nil
}

// AddRideRequest is the HTTP request body for POST /session/rides.
type AddRideRequest struct {
	Pickup      string  `json:"pickup"`
	Destination string  `json:"destination"`
	Cost        float64 `json:"cost"`
	Driver      string  `json:"driver"`
	Distance    string  `json:"distance"`
	Duration    string  `json:"duration"`
	RideType    string  `json:"rideType"`
}

func (r *AddRideRequest) Validate() error {
	r.Pickup = strings.TrimSpace(r.Pickup)
	r.Destination = strings.TrimSpace(r.Destination)
	if r.Pickup == "" || r.Destination == "" {
		return dErrors.New(dErrors.CodeBadRequest, "pickup and destination are required")
	}
	if r.Cost < 0 {
		return dErrors.New(dErrors.CodeBadRequest, "cost must not be negative")
	}
	return nil
}

// Entry converts the request into a domain ride history entry.
func (r *AddRideRequest) Entry() models.RideHistoryEntry {
	return models.RideHistoryEntry{
		Pickup:      r.Pickup,
		Destination: r.Destination,
		Cost:        r.Cost,
		Driver:      r.Driver,
		Distance:    r.Distance,
		Duration:    r.Duration,
		RideType:    r.RideType,
	}
}

// RateRideRequest is the HTTP request body for POST /session/rides/{id}/rate.
type RateRideRequest struct {
	Rating int `json:"rating"`
}

func (r *RateRideRequest) Validate() error {
	if r.Rating < 1 || r.Rating > 5 {
		return dErrors.New(dErrors.CodeBadRequest, "rating must be between 1 and 5")
	}
	return nil
}
