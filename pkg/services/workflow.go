package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/dealclarity/clarity/pkg/models"
	"github.com/dealclarity/clarity/pkg/persistence"
	"github.com/dealclarity/clarity/pkg/registry"
)

// ErrWorkflowNotFound is returned when a workflow is not found.
var ErrWorkflowNotFound = persistence.ErrWorkflowNotFound

type Workflow struct {
	persistence persistence.Persistence
	registry    *registry.Registry
	validate    *validator.Validate
}

// NewWorkflow creates a new workflow service.
func NewWorkflow(store persistence.Persistence, reg *registry.Registry) *Workflow {
	return &Workflow{
		persistence: store,
		registry:    reg,
		validate:    validator.New(),
	}
}

// HealthCheck checks the health of the persistence layer.
func (w *Workflow) HealthCheck(ctx context.Context) (string, bool) {
	if w.persistence == nil {
		return "Persistence layer not initialized", false
	}

	err := w.persistence.HealthCheck(ctx)
	if err != nil {
		return "Persistence layer is unhealthy: " + err.Error(), false
	}

	return "Persistence layer is healthy", true
}

// ListWorkflowsRequest contains filter options for listing workflows.
type ListWorkflowsRequest struct {
	TeamID      string
	Enabled     *bool
	TriggerType *models.TriggerType
}

// List retrieves the workflows matching the request filters.
func (w *Workflow) List(ctx context.Context, req ListWorkflowsRequest) ([]*models.Workflow, error) {
	if req.TriggerType != nil && !req.TriggerType.Valid() {
		return nil, NewValidationError(
			"List",
			"INVALID_TRIGGER_TYPE",
			fmt.Sprintf("unknown trigger type '%s'", *req.TriggerType),
			ErrInvalidTriggerType,
		)
	}

	workflows, err := w.persistence.Workflows().List(ctx, persistence.ListWorkflowsOptions{
		TeamID:      strings.TrimSpace(req.TeamID),
		Enabled:     req.Enabled,
		TriggerType: req.TriggerType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list workflows: %w", err)
	}

	return workflows, nil
}

// FetchByID retrieves a workflow by its ID.
func (w *Workflow) FetchByID(ctx context.Context, id string) (*models.Workflow, error) {
	return w.persistence.Workflows().ByID(ctx, id)
}

// Create validates and stores a new workflow. New workflows start with
// empty history and zeroed stats no matter what the caller sends.
func (w *Workflow) Create(ctx context.Context, workflow *models.Workflow) (*models.Workflow, error) {
	if err := w.validateWorkflow(workflow); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	workflow.ID = ""
	workflow.CreatedAt = now
	workflow.UpdatedAt = now
	workflow.History = nil
	workflow.Stats = models.WorkflowStats{}

	if err := w.persistence.Workflows().Save(ctx, workflow); err != nil {
		return nil, fmt.Errorf("failed to create workflow: %w", err)
	}

	return workflow, nil
}

// Update modifies an existing workflow. Execution history and stats are
// owned by the runner and carried over from the stored workflow.
func (w *Workflow) Update(ctx context.Context, workflowID string, workflow *models.Workflow) (*models.Workflow, error) {
	if err := w.validateWorkflow(workflow); err != nil {
		return nil, err
	}

	existing, err := w.persistence.Workflows().ByID(ctx, workflowID)
	if err != nil {
		return nil, err
	}

	workflow.ID = workflowID
	workflow.CreatedAt = existing.CreatedAt
	workflow.UpdatedAt = time.Now().UTC()
	workflow.History = existing.History
	workflow.Stats = existing.Stats

	if err := w.persistence.Workflows().Save(ctx, workflow); err != nil {
		return nil, fmt.Errorf("failed to update workflow: %w", err)
	}

	return workflow, nil
}

// SetEnabled flips the workflow's enabled flag.
func (w *Workflow) SetEnabled(ctx context.Context, workflowID string, enabled bool) (*models.Workflow, error) {
	existing, err := w.persistence.Workflows().ByID(ctx, workflowID)
	if err != nil {
		return nil, err
	}

	existing.Enabled = enabled
	existing.UpdatedAt = time.Now().UTC()

	if err := w.persistence.Workflows().Save(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update workflow: %w", err)
	}

	return existing, nil
}

// Delete removes a workflow by its ID.
func (w *Workflow) Delete(ctx context.Context, workflowID string) error {
	return w.persistence.Workflows().Delete(ctx, workflowID)
}

func (w *Workflow) validateWorkflow(workflow *models.Workflow) error {
	if workflow == nil {
		return ErrWorkflowNil
	}

	if strings.TrimSpace(workflow.Name) == "" {
		return ErrWorkflowNameRequired
	}

	if strings.TrimSpace(workflow.TeamID) == "" {
		return ErrEmptyTeamID
	}

	if err := w.validate.Struct(workflow); err != nil {
		return NewValidationError("validateWorkflow", "INVALID_WORKFLOW", err.Error(), ErrInvalidRequest)
	}

	if !workflow.Trigger.Type.Valid() {
		return NewValidationError(
			"validateWorkflow",
			"INVALID_TRIGGER_TYPE",
			fmt.Sprintf("unknown trigger type '%s'", workflow.Trigger.Type),
			ErrInvalidTriggerType,
		)
	}

	for _, condition := range workflow.Conditions {
		if !condition.Operator.Valid() {
			return NewValidationError(
				"validateWorkflow",
				"INVALID_CONDITION_OPERATOR",
				fmt.Sprintf("unknown operator '%s' on field '%s'", condition.Operator, condition.Field),
				ErrInvalidConditionOperator,
			)
		}
	}

	for _, action := range workflow.Actions {
		if !action.Type.Valid() {
			return NewValidationError(
				"validateWorkflow",
				"INVALID_ACTION_TYPE",
				fmt.Sprintf("unknown action type '%s'", action.Type),
				ErrInvalidActionType,
			)
		}

		if err := w.registry.ValidateActionConfig(action.Type, action.Config); err != nil {
			return NewValidationError(
				"validateWorkflow",
				"INVALID_ACTION_CONFIG",
				err.Error(),
				ErrInvalidActionConfig,
			)
		}
	}

	return nil
}
