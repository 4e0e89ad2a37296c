// Package send_email implements the send_email workflow action.
package send_email

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dealclarity/clarity/pkg/protocol"
	"github.com/dealclarity/clarity/pkg/template"
)

// Action sends a templated email to a fixed recipient through the mail
// collaborator.
type Action struct {
	To        string
	Subject   string
	Template  string
	Variables map[string]any

	mailer protocol.Mailer
}

func NewAction(config map[string]any, mailer protocol.Mailer) (*Action, error) {
	to, _ := config["to"].(string)
	if to == "" {
		return nil, errors.New("send_email action requires a 'to' recipient")
	}

	subject, _ := config["subject"].(string)
	body, _ := config["template"].(string)
	variables, _ := config["variables"].(map[string]any)

	return &Action{
		To:        to,
		Subject:   subject,
		Template:  body,
		Variables: variables,
		mailer:    mailer,
	}, nil
}

func (a *Action) Execute(ctx context.Context, execCtx protocol.ExecutionContext, logger *slog.Logger) (map[string]any, error) {
	vars := template.MergeVariables(template.DealVariables(execCtx.Deal), a.Variables)

	email := protocol.Email{
		To:      a.To,
		Subject: template.Interpolate(a.Subject, vars),
		HTML:    template.Interpolate(a.Template, vars),
	}

	if err := a.mailer.Send(ctx, email); err != nil {
		return nil, fmt.Errorf("failed to send email to %s: %w", a.To, err)
	}

	logger.InfoContext(ctx, "Sent workflow email", "recipient", a.To)

	return map[string]any{
		"message":   "Email sent",
		"recipient": a.To,
	}, nil
}
