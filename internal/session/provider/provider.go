// Package provider wraps the third-party identity service behind the Backend
// capability. The session controller is written against Backend only; the
// mock variant of the controller is the controller wired to Unconfigured.
package provider

import (
	"context"
	"errors"
)

// Identity is the opaque identity object the provider reports for a
// signed-in account.
type Identity struct {
	UID         string
	Email       string
	DisplayName string
	PhotoURL    string
}

// StateChange is one auth-state-changed notification. A nil Identity means
// the provider reports signed-out.
type StateChange struct {
	Identity *Identity
}

// Backend is the identity capability the session controller depends on:
// authenticate, register, sign out, plus the provider's side channels
// (password reset, email verification, state notifications).
//
// Implementations report sentinel.ErrUnavailable from every call when the
// provider is not configured; Available lets callers branch before dialing.
type Backend interface {
	Available() bool

	SignIn(ctx context.Context, email, password string) (Identity, error)
	SignUp(ctx context.Context, email, password, displayName string) (Identity, error)
	// SignInWithGoogle exchanges a client-obtained Google credential. The
	// popup itself happens on the client; only the resulting token reaches
	// this service.
	SignInWithGoogle(ctx context.Context, idToken string) (Identity, error)
	SignOut(ctx context.Context) error

	SendPasswordReset(ctx context.Context, email string) error
	SendEmailVerification(ctx context.Context, uid string) error
	UpdateDisplayName(ctx context.Context, uid, displayName string) error

	// StateChanges yields auth-state-changed notifications. The controller
	// subscribes exactly once at startup.
	StateChanges() <-chan StateChange
}

// Error is a classified provider rejection carrying the provider's error
// code verbatim.
type Error struct {
	Code string
}

func (e *Error) Error() string { return "provider rejected: " + e.Code }

// Provider error codes observed from the identity service.
const (
	CodeEmailNotFound       = "EMAIL_NOT_FOUND"
	CodeInvalidPassword     = "INVALID_PASSWORD"
	CodeInvalidEmail        = "INVALID_EMAIL"
	CodeUserDisabled        = "USER_DISABLED"
	CodeOperationNotAllowed = "OPERATION_NOT_ALLOWED"
	CodeEmailExists         = "EMAIL_EXISTS"
	CodeUserCancelled       = "USER_CANCELLED"
	CodePopupClosed         = "POPUP_CLOSED_BY_USER"
	CodePopupBlocked        = "POPUP_BLOCKED"
)

// IsCredentialError reports whether the rejection is credential-related and
// should trigger the mock-directory fallback rather than a hard failure.
func IsCredentialError(err error) bool {
	var pe *Error
	if !errors.As(err, &pe) {
		return false
	}
	switch pe.Code {
	case CodeEmailNotFound, CodeInvalidPassword, CodeInvalidEmail, CodeOperationNotAllowed:
		return true
	}
	return false
}

// IsEmailExists reports the duplicate-account rejection on sign-up.
func IsEmailExists(err error) bool {
	var pe *Error
	return errors.As(err, &pe) && pe.Code == CodeEmailExists
}

// IsCancelled reports popup-closed, popup-blocked, and user-cancellation
// rejections, which fail silently with no fallback.
func IsCancelled(err error) bool {
	var pe *Error
	if !errors.As(err, &pe) {
		return false
	}
	switch pe.Code {
	case CodeUserCancelled, CodePopupClosed, CodePopupBlocked:
		return true
	}
	return false
}
