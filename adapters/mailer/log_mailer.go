package mailer

import (
	"context"

	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-hub/internal/application/service"
	"github.com/khoahotran/portfolio-hub/pkg/logger"
)

// LogMailer writes outgoing mail to the log. It stands in for an SMTP or
// provider integration.
type LogMailer struct {
	logger logger.Logger
}

var _ service.Mailer = (*LogMailer)(nil)

func NewLogMailer(log logger.Logger) *LogMailer {
	return &LogMailer{logger: log}
}

func (m *LogMailer) SendConfirmation(_ context.Context, email, link string) error {
	m.logger.Info("Sending confirmation email",
		zap.String("to", email),
		zap.String("link", link),
	)
	return nil
}
