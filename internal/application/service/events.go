package service

import (
	"context"

	"github.com/khoahotran/portfolio-hub/adapters/event"
)

type EventPublisher interface {
	PublishAuthEvent(ctx context.Context, payload event.AuthEventPayload) error
	PublishProfileEvent(ctx context.Context, payload event.ProfileEventPayload) error
}
