// Package runner executes workflows against deals: it matches trigger
// events to eligible workflows, evaluates their conditions, runs their
// actions and records the outcome in the workflow's history and stats.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dealclarity/clarity/pkg/conditions"
	"github.com/dealclarity/clarity/pkg/models"
	"github.com/dealclarity/clarity/pkg/persistence"
	"github.com/dealclarity/clarity/pkg/protocol"
	"github.com/dealclarity/clarity/pkg/registry"
)

// ErrConditionsNotMet is returned by manual execution when the deal does
// not satisfy the workflow's conditions. Event-driven triggering treats the
// same situation as a silent skip instead.
var ErrConditionsNotMet = errors.New("workflow conditions not met")

// ErrTeamMismatch is returned when a workflow is manually executed against
// a deal owned by a different team.
var ErrTeamMismatch = errors.New("workflow and deal belong to different teams")

type Runner struct {
	logger   *slog.Logger
	store    persistence.Persistence
	registry *registry.Registry
}

func NewRunner(logger *slog.Logger, store persistence.Persistence, reg *registry.Registry) *Runner {
	return &Runner{
		logger:   logger.With("module", "runner"),
		store:    store,
		registry: reg,
	}
}

// Trigger runs every enabled workflow of the team whose trigger type
// matches the event. Workflows whose conditions fail are skipped without
// touching their history or stats, and one workflow's failure never
// prevents the remaining workflows from running.
func (r *Runner) Trigger(ctx context.Context, triggerType models.TriggerType, dealID, teamID string) error {
	deal, err := r.store.Deals().ByID(ctx, dealID)
	if err != nil {
		return fmt.Errorf("failed to fetch deal %s: %w", dealID, err)
	}

	enabled := true

	workflows, err := r.store.Workflows().List(ctx, persistence.ListWorkflowsOptions{
		TeamID:      teamID,
		Enabled:     &enabled,
		TriggerType: &triggerType,
	})
	if err != nil {
		return fmt.Errorf("failed to list workflows for trigger %s: %w", triggerType, err)
	}

	logger := r.logger.With("trigger", triggerType, "deal_id", dealID, "team_id", teamID)
	logger.DebugContext(ctx, "Matched workflows for trigger", "count", len(workflows))

	for _, workflow := range workflows {
		if !conditions.Evaluate(deal.Fields, workflow.Conditions) {
			logger.DebugContext(ctx, "Workflow conditions not met, skipping", "workflow_id", workflow.ID)

			continue
		}

		_, update := r.run(ctx, workflow, deal)

		if err := r.store.Workflows().RecordExecution(ctx, workflow.ID, update); err != nil {
			logger.ErrorContext(ctx, "Failed to record workflow execution",
				"workflow_id", workflow.ID, "error", err)
		}
	}

	return nil
}

// RunScheduled runs one workflow against one deal through the trigger
// path: disabled workflows and failing conditions skip silently. The
// scheduler uses it for time-based triggers where it already knows which
// workflow is due for which deal.
func (r *Runner) RunScheduled(ctx context.Context, workflowID, dealID string) error {
	workflow, err := r.store.Workflows().ByID(ctx, workflowID)
	if err != nil {
		return err
	}

	if !workflow.Enabled {
		return nil
	}

	deal, err := r.store.Deals().ByID(ctx, dealID)
	if err != nil {
		return err
	}

	if !conditions.Evaluate(deal.Fields, workflow.Conditions) {
		r.logger.DebugContext(ctx, "Workflow conditions not met, skipping",
			"workflow_id", workflow.ID, "deal_id", deal.ID)

		return nil
	}

	_, update := r.run(ctx, workflow, deal)

	if err := r.store.Workflows().RecordExecution(ctx, workflow.ID, update); err != nil {
		return fmt.Errorf("failed to record workflow execution: %w", err)
	}

	return nil
}

// ExecuteManually runs one workflow against one deal regardless of the
// workflow's enabled flag. Unlike event-driven triggering it reports a
// condition miss explicitly, and it returns the per-action outcomes so the
// caller can show what happened.
func (r *Runner) ExecuteManually(ctx context.Context, workflowID, dealID string) ([]models.ActionOutcome, error) {
	workflow, err := r.store.Workflows().ByID(ctx, workflowID)
	if err != nil {
		return nil, err
	}

	deal, err := r.store.Deals().ByID(ctx, dealID)
	if err != nil {
		return nil, err
	}

	if workflow.TeamID != deal.TeamID {
		return nil, ErrTeamMismatch
	}

	if !conditions.Evaluate(deal.Fields, workflow.Conditions) {
		return nil, ErrConditionsNotMet
	}

	outcomes, update := r.run(ctx, workflow, deal)

	if err := r.store.Workflows().RecordExecution(ctx, workflow.ID, update); err != nil {
		// The actions already ran; losing the stats update is not a
		// reason to report the execution itself as failed.
		r.logger.ErrorContext(ctx, "Failed to record workflow execution",
			"workflow_id", workflow.ID, "error", err)
	}

	return outcomes, nil
}

// GetHistory returns the workflow's execution history, most recent first,
// together with its cumulative stats. A limit of zero or less returns
// everything the store retained.
func (r *Runner) GetHistory(ctx context.Context, workflowID string, limit int) ([]models.ExecutionEntry, models.WorkflowStats, error) {
	workflow, err := r.store.Workflows().ByID(ctx, workflowID)
	if err != nil {
		return nil, models.WorkflowStats{}, err
	}

	history := workflow.History

	entries := make([]models.ExecutionEntry, 0, len(history))
	for i := len(history) - 1; i >= 0; i-- {
		entries = append(entries, history[i])
	}

	if limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}

	return entries, workflow.Stats, nil
}

// run executes every action of the workflow in order. A failing action is
// captured in its outcome and never stops the actions after it.
func (r *Runner) run(ctx context.Context, workflow *models.Workflow, deal *models.Deal) ([]models.ActionOutcome, models.ExecutionUpdate) {
	executionID := uuid.Must(uuid.NewV7()).String()

	logger := r.logger.With(
		"workflow_id", workflow.ID,
		"deal_id", deal.ID,
		"execution_id", executionID,
	)
	logger.InfoContext(ctx, "Starting workflow execution", "actions", len(workflow.Actions))

	execCtx := protocol.ExecutionContext{
		ExecutionID: executionID,
		TeamID:      workflow.TeamID,
		Deal:        deal,
		Workflow:    workflow,
	}

	outcomes := make([]models.ActionOutcome, 0, len(workflow.Actions))

	var (
		successful int64
		failed     int64
		firstError string
	)

	for _, item := range workflow.Actions {
		outcome := models.ActionOutcome{Type: item.Type}

		result, err := r.executeAction(ctx, item, execCtx, logger)
		if err != nil {
			outcome.Status = models.OutcomeFailed
			outcome.Error = err.Error()
			failed++

			if firstError == "" {
				firstError = fmt.Sprintf("%s: %s", item.Type, err.Error())
			}

			logger.WarnContext(ctx, "Action failed", "action", item.Type, "error", err)
		} else {
			outcome.Status = models.OutcomeSuccess
			outcome.Result = result
			successful++
		}

		outcomes = append(outcomes, outcome)
	}

	status := models.ExecutionSuccess
	if failed > 0 {
		status = models.ExecutionFailed
	}

	update := models.ExecutionUpdate{
		Entry: models.ExecutionEntry{
			DealID:          deal.ID,
			ExecutedAt:      time.Now().UTC(),
			Status:          status,
			ActionsExecuted: len(workflow.Actions),
			Error:           firstError,
		},
		SuccessfulActions: successful,
		FailedActions:     failed,
	}

	logger.InfoContext(ctx, "Completed workflow execution",
		"status", status, "successful", successful, "failed", failed)

	return outcomes, update
}

func (r *Runner) executeAction(ctx context.Context, item models.ActionItem, execCtx protocol.ExecutionContext, logger *slog.Logger) (map[string]any, error) {
	action, err := r.registry.CreateAction(item.Type, item.Config)
	if err != nil {
		return nil, err
	}

	return action.Execute(ctx, execCtx, logger)
}
