// Package session holds the persisted session store: a two-key slot keeping
// the serialized active profile and a logged-in flag across restarts. It is
// the Go rendition of the client's local storage slot, so there is exactly
// one of it per deployment.
package session

import (
	"context"

	"cabinet/internal/session/models"
)

// Store persists the active session. Load reports (nil, false, nil) when no
// session is persisted; a malformed payload surfaces sentinel.ErrInvalidState
// so the controller can clear the slot and start logged out.
type Store interface {
	Load(ctx context.Context) (*models.UserProfile, bool, error)
	Save(ctx context.Context, profile *models.UserProfile) error
	Clear(ctx context.Context) error
}
