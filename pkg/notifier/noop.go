package notifier

import (
	"context"
	"log/slog"

	"github.com/dealclarity/clarity/pkg/protocol"
)

// NoopNotifier logs notifications instead of delivering them. Used when no
// Redis URL is configured, typically in local development.
type NoopNotifier struct {
	logger *slog.Logger
}

var _ protocol.Notifier = (*NoopNotifier)(nil)

func NewNoopNotifier(logger *slog.Logger) *NoopNotifier {
	return &NoopNotifier{logger: logger.With("module", "notifier")}
}

func (n *NoopNotifier) NotifyUser(ctx context.Context, userID string, notification protocol.Notification) error {
	n.logger.InfoContext(ctx, "Notification (noop)",
		"user_id", userID, "title", notification.Title, "message", notification.Message)

	return nil
}
