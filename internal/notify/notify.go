// Package notify delivers best-effort notifications (friend requests,
// welcome events). Delivery never blocks or fails the operation that
// triggered it; a full buffer drops the event.
package notify

import (
	"context"
	"time"
)

type EventType string

const (
	EventUserRegistered  EventType = "user.registered"
	EventFriendRequested EventType = "friend.requested"
	EventFriendAccepted  EventType = "friend.accepted"
	EventRideCompleted   EventType = "ride.completed"
)

// Event is one notification payload.
type Event struct {
	Type        EventType `json:"type"`
	UserID      string    `json:"user_id"`
	Email       string    `json:"email"`
	TargetEmail string    `json:"target_email,omitempty"`
	At          time.Time `json:"at"`
}

// Publisher emits events. Implementations must tolerate Emit after Close.
type Publisher interface {
	Emit(ctx context.Context, event Event) error
	Close()
}
