// Package notify_user implements the notify_user workflow action.
package notify_user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dealclarity/clarity/pkg/protocol"
	"github.com/dealclarity/clarity/pkg/template"
)

// Action delivers an in-app notification through the notifier collaborator.
// Persistence is the collaborator's concern.
type Action struct {
	UserID  string
	Title   string
	Message string

	notifier protocol.Notifier
}

func NewAction(config map[string]any, notifier protocol.Notifier) (*Action, error) {
	userID, _ := config["userId"].(string)
	if userID == "" {
		return nil, errors.New("notify_user action requires a 'userId'")
	}

	title, _ := config["title"].(string)
	message, _ := config["message"].(string)

	return &Action{
		UserID:   userID,
		Title:    title,
		Message:  message,
		notifier: notifier,
	}, nil
}

func (a *Action) Execute(ctx context.Context, execCtx protocol.ExecutionContext, logger *slog.Logger) (map[string]any, error) {
	vars := template.DealVariables(execCtx.Deal)

	notification := protocol.Notification{
		Title:   template.Interpolate(a.Title, vars),
		Message: template.Interpolate(a.Message, vars),
		Data: map[string]any{
			"dealId":     execCtx.Deal.ID,
			"workflowId": execCtx.Workflow.ID,
		},
	}

	if err := a.notifier.NotifyUser(ctx, a.UserID, notification); err != nil {
		return nil, fmt.Errorf("failed to notify user %s: %w", a.UserID, err)
	}

	logger.InfoContext(ctx, "Notified user", "user_id", a.UserID)

	return map[string]any{
		"message": "Notification sent",
		"userId":  a.UserID,
		"title":   notification.Title,
	}, nil
}
