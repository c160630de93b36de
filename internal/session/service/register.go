package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"cabinet/internal/notify"
	"cabinet/internal/session/directory"
	"cabinet/internal/session/models"
	"cabinet/internal/session/provider"
	dErrors "cabinet/pkg/domain-errors"
	"cabinet/pkg/platform/sentinel"
	"cabinet/pkg/requestcontext"
)

// Register creates a new account. With a configured provider the account is
// created provider-side and the profile kept local (the companion document
// write is deliberately bypassed until the first Google sign-in); otherwise
// the account lands in the directory with a hashed credential.
func (s *Service) Register(ctx context.Context, emailAddr, password, name, loginRole string) error {
	ctx, span := s.tracer.Start(ctx, "session.Register")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.backend.Available() {
		return s.directoryRegisterLocked(ctx, emailAddr, password, name, loginRole)
	}

	identity, err := s.backend.SignUp(ctx, emailAddr, password, name)
	if err != nil {
		if provider.IsEmailExists(err) {
			// The caller presumably owns the account; redirect into login
			// with the same credentials.
			s.logger.InfoContext(ctx, "email already registered with provider, attempting login",
				"email", emailAddr,
			)
			return s.loginFlowLocked(ctx, emailAddr, password, loginRole)
		}
		if errors.Is(err, sentinel.ErrUnavailable) {
			return s.directoryRegisterLocked(ctx, emailAddr, password, name, loginRole)
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "provider sign-up failed")
	}

	if err := s.backend.UpdateDisplayName(ctx, identity.UID, name); err != nil {
		s.logger.WarnContext(ctx, "failed to set provider display name", "error", err)
	}

	identity.DisplayName = name
	profile := s.profileFromIdentity(ctx, identity, loginRole)

	// Fire-and-forget: verification delivery must not gate registration.
	go func() {
		if err := s.backend.SendEmailVerification(context.WithoutCancel(ctx), identity.UID); err != nil {
			s.logger.Warn("failed to send verification email", "error", err)
		}
	}()

	if err := s.activateLocked(ctx, profile); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist session")
	}
	if s.metrics != nil {
		s.metrics.Registrations.Inc()
	}
	s.emit(ctx, notify.Event{
		Type:   notify.EventUserRegistered,
		UserID: profile.ID,
		Email:  profile.Email,
		At:     requestcontext.Now(ctx),
	})
	return nil
}

// directoryRegisterLocked is the mock path: synthesize a fresh profile with
// zeroed statistics, a welcome loyalty bonus, and one unread notification,
// then append it to the directory.
func (s *Service) directoryRegisterLocked(ctx context.Context, emailAddr, password, name, loginRole string) error {
	s.simulateLatency(ctx)

	now := requestcontext.Now(ctx)
	profile := &models.UserProfile{
		ID:                  uuid.NewString(),
		Email:               emailAddr,
		Name:                name,
		MembershipTier:      "Bronze",
		Rating:              5.0,
		JoinedDate:          now,
		RideHistory:         []models.RideHistoryEntry{},
		FavoriteRoutes:      []string{},
		LoyaltyPoints:       welcomeBonus,
		Role:                directory.ProfileRoleFor(loginRole),
		Friends:             []models.Friend{},
		FavoriteDrivers:     []models.FavoriteDriver{},
		UnreadNotifications: 1,
	}

	if err := s.dir.Register(profile, password, loginRole); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return dErrors.New(dErrors.CodeConflict, "email already registered")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "registration failed")
	}

	if err := s.activateLocked(ctx, profile); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist session")
	}
	if s.metrics != nil {
		s.metrics.Registrations.Inc()
	}
	s.emit(ctx, notify.Event{
		Type:   notify.EventUserRegistered,
		UserID: profile.ID,
		Email:  profile.Email,
		At:     now,
	})
	return nil
}
