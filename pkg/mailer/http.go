// Package mailer sends workflow emails. The production implementation
// forwards mail to an HTTP delivery API; the noop variant only logs.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/dealclarity/clarity/pkg/protocol"
)

const requestTimeout = 15 * time.Second

type HTTPMailer struct {
	endpoint string
	apiKey   string
	from     string
	client   *http.Client
	logger   *slog.Logger
}

func NewHTTPMailer(endpoint, apiKey, from string, logger *slog.Logger) *HTTPMailer {
	return &HTTPMailer{
		endpoint: endpoint,
		apiKey:   apiKey,
		from:     from,
		client:   &http.Client{Timeout: requestTimeout},
		logger:   logger.With("module", "mailer"),
	}
}

type sendRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

func (m *HTTPMailer) Send(ctx context.Context, email protocol.Email) error {
	payload, err := json.Marshal(sendRequest{
		From:    m.from,
		To:      email.To,
		Subject: email.Subject,
		HTML:    email.HTML,
	})
	if err != nil {
		return fmt.Errorf("failed to encode mail request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create mail request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.apiKey)

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("mail delivery request failed: %w", err)
	}

	defer func() {
		if err := resp.Body.Close(); err != nil {
			m.logger.WarnContext(ctx, "failed to close mail response body", "error", err)
		}
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("mail delivery API returned status %d", resp.StatusCode)
	}

	m.logger.DebugContext(ctx, "Delivered email", "recipient", email.To)

	return nil
}
