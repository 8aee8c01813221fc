package service

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SessionStore tracks revoked access tokens until they would have expired.
type SessionStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// ConfirmationStore holds single-use email confirmation tokens.
type ConfirmationStore interface {
	Save(ctx context.Context, token string, userID uuid.UUID, ttl time.Duration) error
	// Consume returns uuid.Nil, false when the token is unknown or expired.
	Consume(ctx context.Context, token string) (uuid.UUID, bool, error)
}
