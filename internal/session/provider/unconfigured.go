package provider

import (
	"context"

	"cabinet/pkg/platform/sentinel"
)

// Unconfigured is the backend used when no provider credentials are present.
// Every operation reports ErrUnavailable and the state channel never fires,
// which the controller's startup safety timer resolves.
type Unconfigured struct {
	changes chan StateChange
}

func NewUnconfigured() *Unconfigured {
	return &Unconfigured{changes: make(chan StateChange)}
}

func (u *Unconfigured) Available() bool { return false }

func (u *Unconfigured) SignIn(context.Context, string, string) (Identity, error) {
	return Identity{}, sentinel.ErrUnavailable
}

func (u *Unconfigured) SignUp(context.Context, string, string, string) (Identity, error) {
	return Identity{}, sentinel.ErrUnavailable
}

func (u *Unconfigured) SignInWithGoogle(context.Context, string) (Identity, error) {
	return Identity{}, sentinel.ErrUnavailable
}

func (u *Unconfigured) SignOut(context.Context) error { return nil }

func (u *Unconfigured) SendPasswordReset(context.Context, string) error {
	return sentinel.ErrUnavailable
}

func (u *Unconfigured) SendEmailVerification(context.Context, string) error {
	return sentinel.ErrUnavailable
}

func (u *Unconfigured) UpdateDisplayName(context.Context, string, string) error {
	return sentinel.ErrUnavailable
}

func (u *Unconfigured) StateChanges() <-chan StateChange { return u.changes }
