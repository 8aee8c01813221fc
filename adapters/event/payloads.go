package event

import (
	"github.com/google/uuid"
)

type AuthEventType string

const (
	AuthEventTypeSignedUp       AuthEventType = "auth.signed_up"
	AuthEventTypeEmailConfirmed AuthEventType = "auth.email_confirmed"
)

type AuthEventPayload struct {
	EventType AuthEventType `json:"event_type"`
	UserID    uuid.UUID     `json:"user_id"`
	Email     string        `json:"email"`
	// ConfirmationToken is only set on signed_up events.
	ConfirmationToken string `json:"confirmation_token,omitempty"`
}

type ProfileEventType string

const (
	ProfileEventTypeCreated ProfileEventType = "profile.created"
	ProfileEventTypeUpdated ProfileEventType = "profile.updated"
	ProfileEventTypeDeleted ProfileEventType = "profile.deleted"
)

type ProfileEventPayload struct {
	EventType ProfileEventType `json:"event_type"`
	ProfileID uuid.UUID        `json:"profile_id"`
	OwnerID   uuid.UUID        `json:"owner_id"`
	ActorID   uuid.UUID        `json:"actor_id"`
}
