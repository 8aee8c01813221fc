package notify

import (
	"context"
	"fmt"
	"net/url"

	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-hub/adapters/event"
	"github.com/khoahotran/portfolio-hub/internal/application/service"
	"github.com/khoahotran/portfolio-hub/pkg/logger"
)

// EventProcessor handles what the worker reads off the event topics.
type EventProcessor struct {
	mailer     service.Mailer
	confirmURL string
	logger     logger.Logger
}

func NewEventProcessor(mailer service.Mailer, confirmURL string, log logger.Logger) *EventProcessor {
	return &EventProcessor{mailer: mailer, confirmURL: confirmURL, logger: log}
}

// ConfirmationLink appends the token as a query parameter to the configured
// confirmation page.
func (p *EventProcessor) ConfirmationLink(token string) (string, error) {
	u, err := url.Parse(p.confirmURL)
	if err != nil {
		return "", fmt.Errorf("parse confirm url: %w", err)
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (p *EventProcessor) HandleAuthEvent(ctx context.Context, payload event.AuthEventPayload) error {
	switch payload.EventType {
	case event.AuthEventTypeSignedUp:
		if payload.ConfirmationToken == "" {
			p.logger.Warn("Signed up event without confirmation token", zap.String("user_id", payload.UserID.String()))
			return nil
		}
		link, err := p.ConfirmationLink(payload.ConfirmationToken)
		if err != nil {
			return err
		}
		return p.mailer.SendConfirmation(ctx, payload.Email, link)
	case event.AuthEventTypeEmailConfirmed:
		p.logger.Info("Email confirmed", zap.String("user_id", payload.UserID.String()))
		return nil
	}
	p.logger.Warn("Unknown auth event type", zap.String("event_type", string(payload.EventType)))
	return nil
}

func (p *EventProcessor) HandleProfileEvent(_ context.Context, payload event.ProfileEventPayload) error {
	p.logger.Info("Profile changed",
		zap.String("event_type", string(payload.EventType)),
		zap.String("profile_id", payload.ProfileID.String()),
		zap.String("owner_id", payload.OwnerID.String()),
		zap.String("actor_id", payload.ActorID.String()),
	)
	return nil
}
