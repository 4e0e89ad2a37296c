package file

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/dealclarity/clarity/pkg/models"
	"github.com/dealclarity/clarity/pkg/persistence"
	"github.com/google/uuid"
)

// WorkflowRepository stores one JSON file per workflow under
// <root>/workflows.
type WorkflowRepository struct {
	store *Persistence
}

func (r *WorkflowRepository) dir() string {
	return filepath.Join(r.store.root, "workflows")
}

func (r *WorkflowRepository) path(id string) string {
	return filepath.Join(r.dir(), id+".json")
}

func (r *WorkflowRepository) List(ctx context.Context, opts persistence.ListWorkflowsOptions) ([]*models.Workflow, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return r.list(opts)
}

func (r *WorkflowRepository) list(opts persistence.ListWorkflowsOptions) ([]*models.Workflow, error) {
	entries, err := os.ReadDir(r.dir())
	if err != nil {
		if os.IsNotExist(err) {
			return []*models.Workflow{}, nil
		}

		return nil, fmt.Errorf("failed to list workflow files: %w", err)
	}

	workflows := make([]*models.Workflow, 0, len(entries))

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}

		workflow, err := r.read(entry.Name()[:len(entry.Name())-5])
		if err != nil {
			return nil, err
		}

		if opts.TeamID != "" && workflow.TeamID != opts.TeamID {
			continue
		}

		if opts.Enabled != nil && workflow.Enabled != *opts.Enabled {
			continue
		}

		if opts.TriggerType != nil && workflow.Trigger.Type != *opts.TriggerType {
			continue
		}

		workflows = append(workflows, workflow)
	}

	return workflows, nil
}

func (r *WorkflowRepository) ByID(ctx context.Context, id string) (*models.Workflow, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return r.read(id)
}

func (r *WorkflowRepository) read(id string) (*models.Workflow, error) {
	data, err := os.ReadFile(r.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, persistence.NewWorkflowError("ByID", id, persistence.ErrWorkflowNotFound)
		}

		return nil, persistence.NewWorkflowError("ByID", id, err)
	}

	var workflow models.Workflow
	if err := json.Unmarshal(data, &workflow); err != nil {
		return nil, persistence.NewWorkflowError("ByID", id, err)
	}

	return &workflow, nil
}

func (r *WorkflowRepository) Save(ctx context.Context, workflow *models.Workflow) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return r.write(workflow)
}

func (r *WorkflowRepository) write(workflow *models.Workflow) error {
	now := time.Now().UTC()
	if workflow.CreatedAt.IsZero() {
		workflow.CreatedAt = now
	}

	workflow.UpdatedAt = now

	if workflow.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate workflow ID: %w", err)
		}

		workflow.ID = id.String()
	}

	if err := os.MkdirAll(r.dir(), fs.FileMode(0o755)); err != nil {
		return persistence.NewWorkflowError("Save", workflow.ID, err)
	}

	data, err := json.MarshalIndent(workflow, "", "  ")
	if err != nil {
		return persistence.NewWorkflowError("Save", workflow.ID, err)
	}

	if err := os.WriteFile(r.path(workflow.ID), data, fs.FileMode(0o600)); err != nil {
		return persistence.NewWorkflowError("Save", workflow.ID, err)
	}

	return nil
}

func (r *WorkflowRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	err := os.Remove(r.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return persistence.NewWorkflowError("Delete", id, persistence.ErrWorkflowNotFound)
		}

		return persistence.NewWorkflowError("Delete", id, err)
	}

	return nil
}

// RecordExecution re-reads the workflow under the store mutex, folds in the
// update, and writes it back. The mutex keeps concurrent triggers from
// losing counter increments.
func (r *WorkflowRepository) RecordExecution(ctx context.Context, workflowID string, update models.ExecutionUpdate) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	workflow, err := r.read(workflowID)
	if err != nil {
		return err
	}

	workflow.ApplyExecution(update)

	if err := r.write(workflow); err != nil {
		return persistence.NewWorkflowError("RecordExecution", workflowID, err)
	}

	return nil
}
