package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"cabinet/internal/session/directory"
	sessionmetrics "cabinet/internal/session/metrics"
	"cabinet/internal/session/models"
	"cabinet/internal/session/provider"
	dErrors "cabinet/pkg/domain-errors"
	"cabinet/pkg/email"
	"cabinet/pkg/platform/sentinel"
	"cabinet/pkg/requestcontext"
)

// Login resolves an email/password/role triple into an active session.
//
// With a configured provider the flow is: provider sign-in; on success reuse
// a cached local profile for continuity or synthesize one from the identity;
// on a credential-class rejection fall back to the directory (optionally
// permissive); on any other provider failure, fail. Without a provider the
// directory is authoritative and there is no permissive fallback.
func (s *Service) Login(ctx context.Context, emailAddr, password, loginRole string) error {
	ctx, span := s.tracer.Start(ctx, "session.Login")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loginFlowLocked(ctx, emailAddr, password, loginRole)
}

// loginFlowLocked runs the login state machine. Callers hold s.mu.
func (s *Service) loginFlowLocked(ctx context.Context, emailAddr, password, loginRole string) error {
	s.state.Loading = true

	if !s.backend.Available() {
		return s.directoryLoginLocked(ctx, emailAddr, password, loginRole, false)
	}

	identity, err := s.backend.SignIn(ctx, emailAddr, password)
	switch {
	case err == nil:
		return s.providerLoginLocked(ctx, identity, loginRole)

	case provider.IsCredentialError(err) || errors.Is(err, sentinel.ErrUnavailable):
		s.logger.InfoContext(ctx, "provider sign-in rejected, falling back to directory",
			"email", emailAddr,
			"error", err,
		)
		return s.directoryLoginLocked(ctx, emailAddr, password, loginRole, s.cfg.AllowDemoFallback)

	default:
		s.state.Loading = false
		s.setStateLocked(s.state)
		if s.metrics != nil {
			s.metrics.ObserveLogin(sessionmetrics.PathProvider, false)
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "provider sign-in failed")
	}
}

// providerLoginLocked finishes a successful provider sign-in: profile
// continuity from the persisted slot when the cached profile matches this
// identity, otherwise a fresh profile from the identity object.
func (s *Service) providerLoginLocked(ctx context.Context, identity provider.Identity, loginRole string) error {
	profile, cached, err := s.sessions.Load(ctx)
	if err != nil {
		// Malformed cache: clear it and continue with a fresh profile.
		s.logger.WarnContext(ctx, "clearing malformed persisted session", "error", err)
		if clearErr := s.sessions.Clear(ctx); clearErr != nil {
			s.logger.ErrorContext(ctx, "failed to clear session store", "error", clearErr)
		}
		cached = false
	}

	if !cached || profile == nil || !profileMatchesIdentity(profile, identity) {
		profile = s.profileFromIdentity(ctx, identity, loginRole)
	}
	profile.ProviderUID = identity.UID

	if err := s.activateLocked(ctx, profile); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist session")
	}
	if s.metrics != nil {
		s.metrics.ObserveLogin(sessionmetrics.PathProvider, true)
	}
	s.logger.InfoContext(ctx, "login succeeded",
		"path", sessionmetrics.PathProvider,
		"email", profile.Email,
		"device", requestcontext.DeviceLabel(ctx),
	)
	return nil
}

// directoryLoginLocked is the mock path: fixed-credential match against the
// directory, with the permissive demo profile as a last resort when enabled.
func (s *Service) directoryLoginLocked(ctx context.Context, emailAddr, password, loginRole string, permissive bool) error {
	s.simulateLatency(ctx)

	profile, err := s.dir.Authenticate(emailAddr, password, loginRole)
	if err != nil {
		if !permissive {
			s.state.Loading = false
			s.setStateLocked(s.state)
			if s.metrics != nil {
				s.metrics.ObserveLogin(sessionmetrics.PathDirectory, false)
			}
			return dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
		}

		profile = s.demoProfile(ctx, emailAddr, loginRole)
		s.logger.WarnContext(ctx, "demo fallback login",
			"email", emailAddr,
			"role", loginRole,
		)
		if err := s.activateLocked(ctx, profile); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist session")
		}
		if s.metrics != nil {
			s.metrics.ObserveLogin(sessionmetrics.PathDemoFallback, true)
		}
		return nil
	}

	if err := s.activateLocked(ctx, profile); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist session")
	}
	if s.metrics != nil {
		s.metrics.ObserveLogin(sessionmetrics.PathDirectory, true)
	}
	s.logger.InfoContext(ctx, "login succeeded",
		"path", sessionmetrics.PathDirectory,
		"email", profile.Email,
		"device", requestcontext.DeviceLabel(ctx),
	)
	return nil
}

// LoginWithGoogle exchanges a client-obtained Google credential for a
// session. Cancellation-class rejections fail without a fallback; an
// unconfigured provider fails immediately.
func (s *Service) LoginWithGoogle(ctx context.Context, idToken string) error {
	ctx, span := s.tracer.Start(ctx, "session.LoginWithGoogle")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.backend.Available() {
		return dErrors.New(dErrors.CodeUnavailable, "identity provider not configured")
	}

	identity, err := s.backend.SignInWithGoogle(ctx, idToken)
	if err != nil {
		if provider.IsCancelled(err) {
			s.logger.DebugContext(ctx, "google sign-in cancelled", "error", err)
			return dErrors.Wrap(err, dErrors.CodeUnauthorized, "sign-in cancelled")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "google sign-in failed")
	}

	// Existing document wins: normalization of provider timestamps happens
	// inside the profile store codec.
	profile, err := s.profiles.Get(ctx, identity.UID)
	switch {
	case err == nil:
		// Keep the document linked to the identity it came from.
		profile.ProviderUID = identity.UID

	case errors.Is(err, sentinel.ErrNotFound):
		profile = s.profileFromIdentity(ctx, identity, directory.LoginRoleUser)
		if setErr := s.profiles.Set(ctx, identity.UID, profile); setErr != nil {
			s.logger.WarnContext(ctx, "failed to create profile document", "error", setErr)
		}

	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load profile document")
	}

	if err := s.activateLocked(ctx, profile); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist session")
	}
	if s.metrics != nil {
		s.metrics.ObserveLogin(sessionmetrics.PathProvider, true)
	}
	return nil
}

func profileMatchesIdentity(profile *models.UserProfile, identity provider.Identity) bool {
	if profile.ProviderUID != "" && profile.ProviderUID == identity.UID {
		return true
	}
	return identity.Email != "" && profile.Email == identity.Email
}

// profileFromIdentity synthesizes a profile from the provider identity plus
// role defaults and welcome bonuses.
func (s *Service) profileFromIdentity(ctx context.Context, identity provider.Identity, loginRole string) *models.UserProfile {
	name := identity.DisplayName
	if name == "" {
		name = email.DisplayNameFromEmail(identity.Email)
	}
	now := requestcontext.Now(ctx)

	return &models.UserProfile{
		ID:                  uuid.NewString(),
		Email:               identity.Email,
		Name:                name,
		Avatar:              identity.PhotoURL,
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
		ProviderUID:         identity.UID,
	}
}

// demoProfile synthesizes the permissive fallback profile from a bare email.
func (s *Service) demoProfile(ctx context.Context, emailAddr, loginRole string) *models.UserProfile {
	now := requestcontext.Now(ctx)
	return &models.UserProfile{
		ID:                  uuid.NewString(),
		Email:               emailAddr,
		Name:                email.DisplayNameFromEmail(emailAddr),
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
}
