package cmd

import (
	"fmt"
	"log/slog"

	"github.com/dealclarity/clarity/pkg/mailer"
	"github.com/dealclarity/clarity/pkg/notifier"
	"github.com/dealclarity/clarity/pkg/protocol"
)

func NewMailer(endpoint, apiKey, from string, logger *slog.Logger) protocol.Mailer {
	if endpoint == "" {
		return mailer.NewNoopMailer(logger)
	}

	return mailer.NewHTTPMailer(endpoint, apiKey, from, logger)
}

func NewNotifier(redisURL string, logger *slog.Logger) protocol.Notifier {
	if redisURL == "" {
		return notifier.NewNoopNotifier(logger)
	}

	redisNotifier, err := notifier.NewRedisNotifier(redisURL, logger)
	if err != nil {
		panic(fmt.Errorf("failed to initialize redis notifier: %w", err))
	}

	return redisNotifier
}
