// Package slack_notification implements the slack_notification workflow
// action.
package slack_notification

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/dealclarity/clarity/pkg/protocol"
	"github.com/dealclarity/clarity/pkg/template"
)

const defaultTimeout = 30 * time.Second

// Action posts an interpolated message to a Slack incoming webhook.
// Best-effort delivery, same as the generic webhook action.
type Action struct {
	WebhookURL string
	Message    string
	Channel    string

	client *http.Client
}

func NewAction(config map[string]any) (*Action, error) {
	webhookURL, _ := config["webhookUrl"].(string)
	if webhookURL == "" {
		return nil, errors.New("slack_notification action requires a 'webhookUrl'")
	}

	message, _ := config["message"].(string)
	channel, _ := config["channel"].(string)

	return &Action{
		WebhookURL: webhookURL,
		Message:    message,
		Channel:    channel,
		client:     &http.Client{Timeout: defaultTimeout},
	}, nil
}

func (a *Action) Execute(ctx context.Context, execCtx protocol.ExecutionContext, logger *slog.Logger) (map[string]any, error) {
	vars := template.DealVariables(execCtx.Deal)
	text := template.Interpolate(a.Message, vars)

	payload := map[string]any{"text": text}
	if a.Channel != "" {
		payload["channel"] = a.Channel
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode slack payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.WebhookURL, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("failed to create slack request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("slack notification failed: %w", err)
	}

	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.WarnContext(ctx, "failed to close slack response body", "error", err)
		}
	}()

	logger.InfoContext(ctx, "Posted slack notification", "status", resp.StatusCode)

	return map[string]any{
		"message": "Slack notification sent",
		"text":    text,
	}, nil
}
