package mailer

import (
	"context"
	"log/slog"

	"github.com/dealclarity/clarity/pkg/protocol"
)

// NoopMailer logs emails instead of sending them.
type NoopMailer struct {
	logger *slog.Logger
}

func NewNoopMailer(logger *slog.Logger) *NoopMailer {
	return &NoopMailer{logger: logger.With("module", "mailer")}
}

func (m *NoopMailer) Send(ctx context.Context, email protocol.Email) error {
	m.logger.InfoContext(ctx, "Email (noop)", "recipient", email.To, "subject", email.Subject)

	return nil
}
