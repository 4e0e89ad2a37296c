// Package persistence provides the data storage abstraction for workflows,
// deals, and tasks.
package persistence

import (
	"context"

	"github.com/dealclarity/clarity/pkg/models"
)

// ListWorkflowsOptions filters workflow listings. Nil/zero fields match
// everything.
type ListWorkflowsOptions struct {
	TeamID      string
	Enabled     *bool
	TriggerType *models.TriggerType
}

// WorkflowRepository stores workflow documents.
type WorkflowRepository interface {
	List(ctx context.Context, opts ListWorkflowsOptions) ([]*models.Workflow, error)
	ByID(ctx context.Context, id string) (*models.Workflow, error)
	Save(ctx context.Context, workflow *models.Workflow) error
	Delete(ctx context.Context, id string) error

	// RecordExecution folds one run's stats/history delta into the stored
	// workflow. Implementations apply it atomically where the store allows,
	// so concurrent triggers on the same workflow do not lose counter
	// updates.
	RecordExecution(ctx context.Context, workflowID string, update models.ExecutionUpdate) error
}

// DealRepository stores deal documents.
type DealRepository interface {
	// List returns the team's deals, or every deal when teamID is empty.
	List(ctx context.Context, teamID string) ([]*models.Deal, error)
	ByID(ctx context.Context, id string) (*models.Deal, error)
	Save(ctx context.Context, deal *models.Deal) error
}

// TaskRepository stores tasks created by workflow actions.
type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
}

// Persistence aggregates the repositories of one backing store.
type Persistence interface {
	Workflows() WorkflowRepository
	Deals() DealRepository
	Tasks() TaskRepository

	HealthCheck(ctx context.Context) error
	Close(ctx context.Context) error
}
