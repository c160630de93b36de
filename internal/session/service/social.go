package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"cabinet/internal/notify"
	"cabinet/internal/session/models"
	dErrors "cabinet/pkg/domain-errors"
	"cabinet/pkg/platform/sentinel"
	"cabinet/pkg/requestcontext"
)

// AddFriend creates a pending friend edge toward a directory user. The
// target must exist in the directory and must not already be in the list in
// any status.
func (s *Service) AddFriend(ctx context.Context, friendEmail string) error {
	ctx, span := s.tracer.Start(ctx, "session.AddFriend")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.activeUserLocked()
	if user == nil {
		return dErrors.New(dErrors.CodeUnauthorized, "no active session")
	}

	target, err := s.dir.FindByEmail(friendEmail)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "directory lookup failed")
	}
	if _, exists := user.FindFriendByEmail(friendEmail); exists {
		return dErrors.New(dErrors.CodeConflict, "friend request already exists")
	}

	user.Friends = append(user.Friends, models.Friend{
		ID:        uuid.NewString(),
		Name:      target.Name,
		Email:     target.Email,
		Avatar:    target.Avatar,
		Status:    models.FriendPending,
		AddedDate: requestcontext.Now(ctx),
	})

	if err := s.activateLocked(ctx, user); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist profile")
	}
	s.emit(ctx, notify.Event{
		Type:   notify.EventFriendRequested,
		UserID: user.ID,
		Email:  target.Email,
		At:     requestcontext.Now(ctx),
	})
	return nil
}

// AcceptFriendRequest flips a pending edge to accepted. Accepting an already
// accepted edge is a no-op; a blocked edge cannot be accepted.
func (s *Service) AcceptFriendRequest(ctx context.Context, friendID string) error {
	ctx, span := s.tracer.Start(ctx, "session.AcceptFriendRequest")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.activeUserLocked()
	if user == nil {
		return dErrors.New(dErrors.CodeUnauthorized, "no active session")
	}

	idx := -1
	for i := range user.Friends {
		if user.Friends[i].ID == friendID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return dErrors.New(dErrors.CodeNotFound, "friend request not found")
	}

	friend := &user.Friends[idx]
	switch {
	case friend.Status == models.FriendAccepted:
		return nil
	case !friend.CanAccept():
		return dErrors.New(dErrors.CodeConflict, "friend request cannot be accepted")
	}

	friend.Status = models.FriendAccepted
	if err := s.activateLocked(ctx, user); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist profile")
	}
	s.emit(ctx, notify.Event{
		Type:   notify.EventFriendAccepted,
		UserID: user.ID,
		Email:  friend.Email,
		At:     requestcontext.Now(ctx),
	})
	return nil
}

// AddFavoriteDriver bookmarks a rostered driver by email. Duplicate
// bookmarks are rejected.
func (s *Service) AddFavoriteDriver(ctx context.Context, driverEmail string) error {
	ctx, span := s.tracer.Start(ctx, "session.AddFavoriteDriver")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.activeUserLocked()
	if user == nil {
		return dErrors.New(dErrors.CodeUnauthorized, "no active session")
	}

	driver, err := s.dir.FindDriver(driverEmail)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "driver not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "driver lookup failed")
	}
	if user.HasFavoriteDriver(driverEmail) {
		return dErrors.New(dErrors.CodeConflict, "driver already bookmarked")
	}

	user.FavoriteDrivers = append(user.FavoriteDrivers, models.FavoriteDriver{
		ID:            uuid.NewString(),
		Name:          driver.Name,
		Email:         driver.Email,
		Avatar:        driver.Avatar,
		Rating:        driver.Rating,
		VehicleNumber: driver.VehicleNumber,
		VehicleType:   driver.VehicleType,
		TotalRides:    0,
		AddedDate:     requestcontext.Now(ctx),
	})

	if err := s.activateLocked(ctx, user); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist profile")
	}
	return nil
}

// AddToHistory prepends a completed ride, bumps the ride counter, and awards
// loyalty points at a tenth of the fare, rounded down.
func (s *Service) AddToHistory(ctx context.Context, entry models.RideHistoryEntry) error {
	ctx, span := s.tracer.Start(ctx, "session.AddToHistory")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.activeUserLocked()
	if user == nil {
		return dErrors.New(dErrors.CodeUnauthorized, "no active session")
	}

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Date.IsZero() {
		entry.Date = requestcontext.Now(ctx)
	}
	user.ApplyRide(entry)

	if err := s.activateLocked(ctx, user); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist profile")
	}
	s.emit(ctx, notify.Event{
		Type:   notify.EventRideCompleted,
		UserID: user.ID,
		Email:  user.Email,
		At:     requestcontext.Now(ctx),
	})
	return nil
}

// RateRide attaches a star rating to a ride already in the history.
func (s *Service) RateRide(ctx context.Context, rideID string, stars int) error {
	ctx, span := s.tracer.Start(ctx, "session.RateRide")
	defer span.End()

	if stars < 1 || stars > 5 {
		return dErrors.New(dErrors.CodeBadRequest, "rating must be between 1 and 5")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.activeUserLocked()
	if user == nil {
		return dErrors.New(dErrors.CodeUnauthorized, "no active session")
	}

	idx := -1
	for i := range user.RideHistory {
		if user.RideHistory[i].ID == rideID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return dErrors.New(dErrors.CodeNotFound, "ride not found")
	}

	user.RideHistory[idx].Rating = stars
	if err := s.activateLocked(ctx, user); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist profile")
	}
	return nil
}
