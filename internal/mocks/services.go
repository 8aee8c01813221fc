package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/khoahotran/portfolio-hub/adapters/event"
	"github.com/khoahotran/portfolio-hub/internal/application/service"
)

type SessionStore struct {
	mock.Mock
}

var _ service.SessionStore = (*SessionStore)(nil)

func (m *SessionStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	return m.Called(ctx, tokenID, ttl).Error(0)
}

func (m *SessionStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

type ConfirmationStore struct {
	mock.Mock
}

var _ service.ConfirmationStore = (*ConfirmationStore)(nil)

func (m *ConfirmationStore) Save(ctx context.Context, token string, userID uuid.UUID, ttl time.Duration) error {
	return m.Called(ctx, token, userID, ttl).Error(0)
}

func (m *ConfirmationStore) Consume(ctx context.Context, token string) (uuid.UUID, bool, error) {
	args := m.Called(ctx, token)
	id, _ := args.Get(0).(uuid.UUID)
	return id, args.Bool(1), args.Error(2)
}

// EventPublisher forwards every published payload to Published when it is
// non-nil, so tests can wait on the background goroutine.
type EventPublisher struct {
	mock.Mock
	Published chan any
}

var _ service.EventPublisher = (*EventPublisher)(nil)

func (m *EventPublisher) PublishAuthEvent(ctx context.Context, payload event.AuthEventPayload) error {
	err := m.Called(ctx, payload).Error(0)
	m.notify(payload)
	return err
}

func (m *EventPublisher) PublishProfileEvent(ctx context.Context, payload event.ProfileEventPayload) error {
	err := m.Called(ctx, payload).Error(0)
	m.notify(payload)
	return err
}

func (m *EventPublisher) notify(payload any) {
	if m.Published != nil {
		m.Published <- payload
	}
}

type Mailer struct {
	mock.Mock
}

var _ service.Mailer = (*Mailer)(nil)

func (m *Mailer) SendConfirmation(ctx context.Context, email, link string) error {
	return m.Called(ctx, email, link).Error(0)
}
