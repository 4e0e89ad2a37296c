// Package webhook implements the outbound webhook workflow action.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dealclarity/clarity/pkg/protocol"
	"github.com/dealclarity/clarity/pkg/template"
)

const defaultTimeout = 30 * time.Second

// Action POSTs a JSON payload with interpolated deal variables to an
// external URL. Delivery is best-effort: a non-2xx response is the
// receiver's concern and only transport errors fail the action.
type Action struct {
	URL     string
	Method  string
	Payload map[string]any

	client *http.Client
}

func NewAction(config map[string]any) (*Action, error) {
	url, _ := config["url"].(string)
	if url == "" {
		return nil, errors.New("webhook action requires a 'url'")
	}

	method, _ := config["method"].(string)
	if method == "" {
		method = http.MethodPost
	}

	payload, _ := config["payload"].(map[string]any)

	return &Action{
		URL:     url,
		Method:  strings.ToUpper(method),
		Payload: payload,
		client:  &http.Client{Timeout: defaultTimeout},
	}, nil
}

func (a *Action) Execute(ctx context.Context, execCtx protocol.ExecutionContext, logger *slog.Logger) (map[string]any, error) {
	vars := template.DealVariables(execCtx.Deal)

	body := map[string]any{
		"dealId":     execCtx.Deal.ID,
		"workflowId": execCtx.Workflow.ID,
		"trigger":    string(execCtx.Workflow.Trigger.Type),
	}

	for key, value := range a.Payload {
		if text, ok := value.(string); ok {
			body[key] = template.Interpolate(text, vars)
			continue
		}

		body[key] = value
	}

	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, a.Method, a.URL, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("failed to create webhook request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("webhook request failed: %w", err)
	}

	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.WarnContext(ctx, "failed to close webhook response body", "error", err)
		}
	}()

	logger.InfoContext(ctx, "Delivered webhook", "url", a.URL, "status", resp.StatusCode)

	return map[string]any{
		"message":    "Webhook delivered",
		"url":        a.URL,
		"statusCode": resp.StatusCode,
	}, nil
}
