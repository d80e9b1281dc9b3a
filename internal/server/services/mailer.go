package services

import (
	"context"

	"github.com/dmitrijs2005/moviedeck/internal/logging"
)

// Mailer delivers password reset tokens to their owner.
type Mailer interface {
	SendPasswordReset(ctx context.Context, email, token string) error
}

// LogMailer writes reset tokens to the structured log instead of sending mail.
type LogMailer struct {
	log logging.Logger
}

func NewLogMailer(log logging.Logger) *LogMailer {
	return &LogMailer{log: log.With("module", "mailer")}
}

func (m *LogMailer) SendPasswordReset(ctx context.Context, email, token string) error {
	m.log.Info(ctx, "password reset requested", "email", email, "token", token)
	return nil
}
