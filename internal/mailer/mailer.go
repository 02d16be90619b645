// Package mailer delivers account lifecycle mail. The default implementation
// only logs the message; an SMTP backed one can be swapped in via the
// interface.
package mailer

import (
	"context"

	"blogify/internal/observability"
)

// Mailer sends account lifecycle messages to users.
type Mailer interface {
	// SendPasswordReset delivers a password reset token to the given address.
	SendPasswordReset(ctx context.Context, email, token string) error
	// SendVerification delivers an email verification token to the given address.
	SendVerification(ctx context.Context, email, token string) error
}

// LogMailer writes outbound mail to the structured log instead of sending it.
// Used in development and as the default until SMTP credentials are wired.
type LogMailer struct{}

// NewLogMailer returns a Mailer that logs instead of sending.
func NewLogMailer() *LogMailer {
	return &LogMailer{}
}

func (m *LogMailer) SendPasswordReset(ctx context.Context, email, token string) error {
	observability.Logger.InfoContext(ctx, "password reset mail",
		"email", email,
		"token", token,
	)
	return nil
}

func (m *LogMailer) SendVerification(ctx context.Context, email, token string) error {
	observability.Logger.InfoContext(ctx, "verification mail",
		"email", email,
		"token", token,
	)
	return nil
}
