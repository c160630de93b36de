// Package profile is the companion document store: profile documents keyed
// by the identity provider's stable user id. Documents carry the provider's
// timestamp type on every date-bearing field; conversion to time.Time happens
// only in this package's codec, recursively over ride history, friends, and
// favorite drivers.
package profile

import (
	"context"

	"cabinet/internal/session/models"
)

// Store reads and writes profile documents by provider UID.
type Store interface {
	Get(ctx context.Context, uid string) (*models.UserProfile, error)
	Set(ctx context.Context, uid string, profile *models.UserProfile) error
	// Update overwrites an existing document and fails with
	// sentinel.ErrNotFound when none exists for the UID.
	Update(ctx context.Context, uid string, profile *models.UserProfile) error
}
