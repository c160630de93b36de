package service

import (
	"context"
	"errors"

	"cabinet/internal/session/models"
	dErrors "cabinet/pkg/domain-errors"
	"cabinet/pkg/platform/sentinel"
)

// Logout clears the session state, empties the persisted slot, and signs out
// of the provider. There is no way back except a fresh login.
func (s *Service) Logout(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "session.Logout")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Clear(ctx); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to clear session store")
	}
	if err := s.backend.SignOut(ctx); err != nil {
		// The local session is already gone; provider sign-out is advisory.
		s.logger.WarnContext(ctx, "provider sign-out failed", "error", err)
	}

	s.setStateLocked(models.SessionState{})
	return nil
}

// UpdateUser shallow-merges the patch into the active profile and
// re-persists it. A no-op when logged out. When the profile is linked to a
// provider identity, the merged profile is mirrored to the companion
// document store best-effort: mirror failures are logged, never surfaced,
// never retried.
func (s *Service) UpdateUser(ctx context.Context, patch models.ProfilePatch) error {
	ctx, span := s.tracer.Start(ctx, "session.UpdateUser")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.activeUserLocked()
	if user == nil {
		return nil
	}

	patch.Apply(user)
	if err := s.activateLocked(ctx, user); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist profile")
	}

	if user.ProviderUID != "" && s.profiles != nil {
		if err := s.profiles.Set(ctx, user.ProviderUID, user); err != nil {
			s.logger.WarnContext(ctx, "profile document mirror failed",
				"uid", user.ProviderUID,
				"error", err,
			)
		}
	}
	return nil
}

// SendVerificationEmail issues a 6-digit code for the email. The repo has no
// mail transport; the code is logged and returned so the demo surface can
// show it.
func (s *Service) SendVerificationEmail(ctx context.Context, emailAddr string) (string, error) {
	ctx, span := s.tracer.Start(ctx, "session.SendVerificationEmail")
	defer span.End()

	code, err := s.otp.Issue(emailAddr)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue verification code")
	}
	if s.metrics != nil {
		s.metrics.OTPIssued.Inc()
	}
	s.logger.InfoContext(ctx, "verification code issued",
		"email", emailAddr,
		"code", code,
	)
	return code, nil
}

// VerifyOTP validates a previously issued code.
func (s *Service) VerifyOTP(ctx context.Context, emailAddr, code string) error {
	ctx, span := s.tracer.Start(ctx, "session.VerifyOTP")
	defer span.End()

	err := s.otp.Verify(emailAddr, code)
	switch {
	case err == nil:
		if s.metrics != nil {
			s.metrics.ObserveOTP("success")
		}
		return nil
	case errors.Is(err, sentinel.ErrExpired):
		if s.metrics != nil {
			s.metrics.ObserveOTP("expired")
		}
		return dErrors.New(dErrors.CodeExpired, "verification code expired")
	case errors.Is(err, sentinel.ErrNotFound):
		if s.metrics != nil {
			s.metrics.ObserveOTP("missing")
		}
		return dErrors.New(dErrors.CodeNotFound, "no verification code pending")
	default:
		if s.metrics != nil {
			s.metrics.ObserveOTP("mismatch")
		}
		return dErrors.New(dErrors.CodeBadRequest, "verification code mismatch")
	}
}

// SendPasswordReset dispatches a reset email through the provider. The mock
// path only logs the request.
func (s *Service) SendPasswordReset(ctx context.Context, emailAddr string) error {
	ctx, span := s.tracer.Start(ctx, "session.SendPasswordReset")
	defer span.End()

	if !s.backend.Available() {
		s.logger.InfoContext(ctx, "password reset requested without provider", "email", emailAddr)
		return nil
	}
	if err := s.backend.SendPasswordReset(ctx, emailAddr); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to send password reset")
	}
	return nil
}
