package service

import (
	"context"
	"time"

	"cabinet/internal/session/directory"
	"cabinet/internal/session/models"
	"cabinet/internal/session/provider"
	dErrors "cabinet/pkg/domain-errors"
)

// Restore resolves the startup session exactly once. Without a provider the
// persisted slot is authoritative: a valid stored profile resumes the
// session, anything else resolves logged out. With a provider the first
// auth-state notification wins, bounded by the safety timer so a provider
// that never reports cannot wedge the controller in the loading state.
func (s *Service) Restore(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "session.Restore")
	defer span.End()

	if !s.backend.Available() {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.restoreFromStoreLocked(ctx)
	}
	return s.restoreFromProvider(ctx)
}

// restoreFromStoreLocked resumes from the persisted slot. A malformed
// payload is cleared and treated as logged out rather than surfaced.
// Callers hold s.mu.
func (s *Service) restoreFromStoreLocked(ctx context.Context) error {
	profile, found, err := s.sessions.Load(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "persisted session unreadable, starting logged out", "error", err)
		if clearErr := s.sessions.Clear(ctx); clearErr != nil {
			s.logger.ErrorContext(ctx, "failed to clear session store", "error", clearErr)
		}
		s.setStateLocked(models.SessionState{})
		return nil
	}
	if !found {
		s.setStateLocked(models.SessionState{})
		return nil
	}

	s.logger.InfoContext(ctx, "session restored", "email", profile.Email)
	s.setStateLocked(models.SessionState{User: profile, IsLoggedIn: true})
	return nil
}

// restoreFromProvider blocks until the provider reports its initial auth
// state, the safety timer fires, or the context is cancelled. The channel
// subscription stays alive for later sign-out notifications; only the first
// report resolves the restore.
func (s *Service) restoreFromProvider(ctx context.Context) error {
	changes := s.backend.StateChanges()

	select {
	case change := <-changes:
		s.mu.Lock()
		defer s.mu.Unlock()
		if change.Identity == nil {
			if err := s.sessions.Clear(ctx); err != nil {
				s.logger.WarnContext(ctx, "failed to clear session store", "error", err)
			}
			s.setStateLocked(models.SessionState{})
			return nil
		}
		return s.resumeIdentityLocked(ctx, *change.Identity)

	case <-time.After(s.cfg.RestoreTimeout):
		s.logger.WarnContext(ctx, "provider did not report auth state in time, starting logged out",
			"timeout", s.cfg.RestoreTimeout,
		)
		s.mu.Lock()
		defer s.mu.Unlock()
		s.setStateLocked(models.SessionState{})
		return nil

	case <-ctx.Done():
		s.mu.Lock()
		defer s.mu.Unlock()
		s.state.Loading = false
		s.setStateLocked(s.state)
		return dErrors.Wrap(ctx.Err(), dErrors.CodeInternal, "restore interrupted")
	}
}

// resumeIdentityLocked rebuilds the session for a provider-reported identity:
// the cached profile when it matches, otherwise a minimal profile synthesized
// from the identity alone. Callers hold s.mu.
func (s *Service) resumeIdentityLocked(ctx context.Context, identity provider.Identity) error {
	profile, found, err := s.sessions.Load(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "clearing malformed persisted session", "error", err)
		if clearErr := s.sessions.Clear(ctx); clearErr != nil {
			s.logger.ErrorContext(ctx, "failed to clear session store", "error", clearErr)
		}
		found = false
	}

	if !found || profile == nil || !profileMatchesIdentity(profile, identity) {
		profile = s.profileFromIdentity(ctx, identity, directory.LoginRoleUser)
	}

	if err := s.activateLocked(ctx, profile); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist session")
	}
	s.logger.InfoContext(ctx, "session restored from provider", "email", profile.Email)
	return nil
}
