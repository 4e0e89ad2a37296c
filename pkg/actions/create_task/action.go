// Package create_task implements the create_task workflow action.
package create_task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dealclarity/clarity/pkg/models"
	"github.com/dealclarity/clarity/pkg/persistence"
	"github.com/dealclarity/clarity/pkg/protocol"
	"github.com/dealclarity/clarity/pkg/template"
)

// Action creates a follow-up task linked to the triggering deal.
type Action struct {
	Title       string
	Description string
	AssigneeID  string
	DueInDays   int

	tasks persistence.TaskRepository
}

func NewAction(config map[string]any, tasks persistence.TaskRepository) (*Action, error) {
	title, _ := config["title"].(string)
	if title == "" {
		return nil, errors.New("create_task action requires a 'title'")
	}

	description, _ := config["description"].(string)
	assigneeID, _ := config["assigneeId"].(string)

	dueInDays := 0
	if days, ok := config["dueInDays"].(float64); ok {
		dueInDays = int(days)
	}

	return &Action{
		Title:       title,
		Description: description,
		AssigneeID:  assigneeID,
		DueInDays:   dueInDays,
		tasks:       tasks,
	}, nil
}

func (a *Action) Execute(ctx context.Context, execCtx protocol.ExecutionContext, logger *slog.Logger) (map[string]any, error) {
	vars := template.DealVariables(execCtx.Deal)

	task := &models.Task{
		TeamID:      execCtx.TeamID,
		DealID:      execCtx.Deal.ID,
		AssigneeID:  a.AssigneeID,
		Title:       template.Interpolate(a.Title, vars),
		Description: template.Interpolate(a.Description, vars),
	}

	if a.DueInDays > 0 {
		dueDate := time.Now().UTC().AddDate(0, 0, a.DueInDays)
		task.DueDate = &dueDate
	}

	if err := a.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	logger.InfoContext(ctx, "Created workflow task", "task_id", task.ID, "deal_id", execCtx.Deal.ID)

	return map[string]any{
		"message": "Task created",
		"taskId":  task.ID,
	}, nil
}
