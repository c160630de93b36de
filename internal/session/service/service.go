// Package service implements the session controller: the single source of
// truth for who is logged in. It reconciles the identity provider, the mock
// directory, and the persisted session store into one profile, and notifies
// subscribers on every state change.
package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"cabinet/internal/notify"
	"cabinet/internal/session/directory"
	sessionmetrics "cabinet/internal/session/metrics"
	"cabinet/internal/session/models"
	"cabinet/internal/session/otp"
	"cabinet/internal/session/provider"
	profilestore "cabinet/internal/session/store/profile"
	sessionstore "cabinet/internal/session/store/session"
)

// welcomeBonus is the loyalty credit granted to every new profile.
const welcomeBonus = 100

// defaultRestoreTimeout bounds how long startup waits for the provider's
// first auth-state notification before resolving logged-out.
const defaultRestoreTimeout = 2 * time.Second

// Deps bundles the controller's collaborators. The backend decides the
// variant: wire provider.Unconfigured to get the pure-mock controller.
type Deps struct {
	Backend   provider.Backend
	Directory *directory.Directory
	Sessions  sessionstore.Store
	Profiles  profilestore.Store
	OTP       *otp.Store
	Notifier  notify.Publisher
	Logger    *slog.Logger
	Metrics   *sessionmetrics.Metrics
}

// Config tunes controller behavior.
type Config struct {
	// AllowDemoFallback keeps the source's permissive fallback: a provider
	// credential rejection that also misses the directory still yields a
	// synthesized demo profile. Disable for anything resembling production.
	AllowDemoFallback bool
	// MockLatency delays directory-backed operations to emulate a remote
	// call. Zero in tests.
	MockLatency time.Duration
	// RestoreTimeout overrides the startup safety timer.
	RestoreTimeout time.Duration
}

// Subscriber receives a state snapshot after every session mutation.
type Subscriber func(models.SessionState)

// Service is the session controller. All session mutations are serialized
// behind one mutex so overlapping triggers cannot interleave partial writes.
type Service struct {
	backend  provider.Backend
	dir      *directory.Directory
	sessions sessionstore.Store
	profiles profilestore.Store
	otp      *otp.Store
	notifier notify.Publisher
	logger   *slog.Logger
	metrics  *sessionmetrics.Metrics
	tracer   trace.Tracer
	cfg      Config

	mu          sync.Mutex
	state       models.SessionState
	subscribers []Subscriber
}

func New(deps Deps, cfg Config) *Service {
	if cfg.RestoreTimeout <= 0 {
		cfg.RestoreTimeout = defaultRestoreTimeout
	}
	return &Service{
		backend:  deps.Backend,
		dir:      deps.Directory,
		sessions: deps.Sessions,
		profiles: deps.Profiles,
		otp:      deps.OTP,
		notifier: deps.Notifier,
		logger:   deps.Logger,
		metrics:  deps.Metrics,
		tracer:   otel.Tracer("cabinet/session"),
		cfg:      cfg,
		state:    models.SessionState{Loading: true},
	}
}

// State returns a snapshot of the current session state.
func (s *Service) State() models.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe registers a callback invoked after every state change. The
// callback must not call back into the controller synchronously.
func (s *Service) Subscribe(fn Subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

func (s *Service) snapshotLocked() models.SessionState {
	snapshot := s.state
	if snapshot.User != nil {
		snapshot.User = snapshot.User.Clone()
	}
	return snapshot
}

// setStateLocked mutates the state and schedules subscriber notification.
// Callers hold s.mu.
func (s *Service) setStateLocked(state models.SessionState) {
	s.state = state
	if s.metrics != nil {
		if state.IsLoggedIn {
			s.metrics.SessionActive.Set(1)
		} else {
			s.metrics.SessionActive.Set(0)
		}
	}

	snapshot := s.snapshotLocked()
	subscribers := append([]Subscriber{}, s.subscribers...)
	go func() {
		for _, fn := range subscribers {
			fn(snapshot)
		}
	}()
}

// activateLocked makes the profile the active session and persists it.
// Callers hold s.mu.
func (s *Service) activateLocked(ctx context.Context, profile *models.UserProfile) error {
	if err := s.sessions.Save(ctx, profile); err != nil {
		return err
	}
	s.setStateLocked(models.SessionState{User: profile, IsLoggedIn: true})
	return nil
}

// activeUserLocked returns a mutable clone of the active profile, or nil
// when logged out. Callers hold s.mu.
func (s *Service) activeUserLocked() *models.UserProfile {
	if !s.state.IsLoggedIn || s.state.User == nil {
		return nil
	}
	return s.state.User.Clone()
}

// simulateLatency emulates the remote round trip of the original mock client.
func (s *Service) simulateLatency(ctx context.Context) {
	if s.cfg.MockLatency <= 0 {
		return
	}
	timer := time.NewTimer(s.cfg.MockLatency)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}

func (s *Service) emit(ctx context.Context, event notify.Event) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "notification delivery failed",
			"type", string(event.Type),
			"error", err,
		)
	}
}
