package handler

import (
	"cabinet/internal/session/models"
)

// SessionResponse is the HTTP response for login, register, and GET /session/me.
type SessionResponse struct {
	Token      string              `json:"token,omitempty"`
	User       *models.UserProfile `json:"user"`
	IsLoggedIn bool                `json:"isLoggedIn"`
}

// OTPResponse is the HTTP response for POST /session/otp/send. The code is
// returned because the demo has no mail transport.
type OTPResponse struct {
	Code string `json:"code"`
}

// FromState converts session state into the HTTP response shape.
func FromState(state models.SessionState, token string) *SessionResponse {
	return &SessionResponse{
		Token:      token,
		User:       state.User,
		IsLoggedIn: state.IsLoggedIn,
	}
}
