package postgresql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dealclarity/clarity/pkg/models"
	"github.com/dealclarity/clarity/pkg/persistence"
	"github.com/google/uuid"
)

// WorkflowRepository handles workflow-related database operations.
type WorkflowRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewWorkflowRepository creates a new workflow repository.
func NewWorkflowRepository(db *sql.DB, logger *slog.Logger) *WorkflowRepository {
	return &WorkflowRepository{db: db, logger: logger}
}

const workflowColumns = `
	id
  , team_id
  , created_by
  , name
  , description
  , enabled
  , trigger_type
  , trigger_config
  , conditions
  , actions
  , execution_history
  , total_executions
  , successful_executions
  , failed_executions
  , last_executed
  , created_at
  , updated_at
`

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *WorkflowRepository) scanWorkflow(row rowScanner) (*models.Workflow, error) {
	var (
		workflow      models.Workflow
		description   sql.NullString
		createdBy     sql.NullString
		triggerConfig []byte
		conditions    []byte
		actions       []byte
		history       []byte
		lastExecuted  sql.NullTime
	)

	err := row.Scan(
		&workflow.ID,
		&workflow.TeamID,
		&createdBy,
		&workflow.Name,
		&description,
		&workflow.Enabled,
		&workflow.Trigger.Type,
		&triggerConfig,
		&conditions,
		&actions,
		&history,
		&workflow.Stats.TotalExecutions,
		&workflow.Stats.SuccessfulExecutions,
		&workflow.Stats.FailedExecutions,
		&lastExecuted,
		&workflow.CreatedAt,
		&workflow.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	workflow.CreatedBy = createdBy.String
	workflow.Description = description.String

	if lastExecuted.Valid {
		executedAt := lastExecuted.Time
		workflow.Stats.LastExecuted = &executedAt
	}

	if err := json.Unmarshal(triggerConfig, &workflow.Trigger.Config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal trigger config: %w", err)
	}

	if err := json.Unmarshal(conditions, &workflow.Conditions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal conditions: %w", err)
	}

	if err := json.Unmarshal(actions, &workflow.Actions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal actions: %w", err)
	}

	if err := json.Unmarshal(history, &workflow.History); err != nil {
		return nil, fmt.Errorf("failed to unmarshal execution history: %w", err)
	}

	return &workflow, nil
}

// List returns workflows matching the given filters, newest first.
func (r *WorkflowRepository) List(ctx context.Context, opts persistence.ListWorkflowsOptions) ([]*models.Workflow, error) {
	query := `SELECT ` + workflowColumns + ` FROM workflows WHERE 1=1`

	args := make([]any, 0, 3)

	if opts.TeamID != "" {
		args = append(args, opts.TeamID)
		query += fmt.Sprintf(" AND team_id = $%d", len(args))
	}

	if opts.Enabled != nil {
		args = append(args, *opts.Enabled)
		query += fmt.Sprintf(" AND enabled = $%d", len(args))
	}

	if opts.TriggerType != nil {
		args = append(args, string(*opts.TriggerType))
		query += fmt.Sprintf(" AND trigger_type = $%d", len(args))
	}

	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query workflows: %w", err)
	}

	defer func() {
		if err := rows.Close(); err != nil {
			r.logger.ErrorContext(ctx, "failed to close rows", "error", err)
		}
	}()

	workflows := make([]*models.Workflow, 0)

	for rows.Next() {
		workflow, err := r.scanWorkflow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan workflow: %w", err)
		}

		workflows = append(workflows, workflow)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating workflows: %w", err)
	}

	return workflows, nil
}

// ByID returns the workflow with the given id.
func (r *WorkflowRepository) ByID(ctx context.Context, id string) (*models.Workflow, error) {
	query := `SELECT ` + workflowColumns + ` FROM workflows WHERE id = $1`

	workflow, err := r.scanWorkflow(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, persistence.NewWorkflowError("ByID", id, persistence.ErrWorkflowNotFound)
		}

		return nil, persistence.NewWorkflowError("ByID", id, err)
	}

	return workflow, nil
}

// Save upserts the workflow.
func (r *WorkflowRepository) Save(ctx context.Context, workflow *models.Workflow) error {
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

	triggerConfig, err := json.Marshal(orEmptyMap(workflow.Trigger.Config))
	if err != nil {
		return fmt.Errorf("failed to marshal trigger config: %w", err)
	}

	conditions, err := json.Marshal(orEmptyConditions(workflow.Conditions))
	if err != nil {
		return fmt.Errorf("failed to marshal conditions: %w", err)
	}

	actions, err := json.Marshal(orEmptyActions(workflow.Actions))
	if err != nil {
		return fmt.Errorf("failed to marshal actions: %w", err)
	}

	history, err := json.Marshal(orEmptyHistory(workflow.History))
	if err != nil {
		return fmt.Errorf("failed to marshal execution history: %w", err)
	}

	query := `
		INSERT INTO workflows (
			id, team_id, created_by, name, description, enabled,
			trigger_type, trigger_config, conditions, actions,
			execution_history, total_executions, successful_executions,
			failed_executions, last_executed, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			enabled = EXCLUDED.enabled,
			trigger_type = EXCLUDED.trigger_type,
			trigger_config = EXCLUDED.trigger_config,
			conditions = EXCLUDED.conditions,
			actions = EXCLUDED.actions,
			updated_at = EXCLUDED.updated_at
	`

	_, err = r.db.ExecContext(ctx, query,
		workflow.ID,
		workflow.TeamID,
		nullString(workflow.CreatedBy),
		workflow.Name,
		nullString(workflow.Description),
		workflow.Enabled,
		string(workflow.Trigger.Type),
		triggerConfig,
		conditions,
		actions,
		history,
		workflow.Stats.TotalExecutions,
		workflow.Stats.SuccessfulExecutions,
		workflow.Stats.FailedExecutions,
		nullTime(workflow.Stats.LastExecuted),
		workflow.CreatedAt,
		workflow.UpdatedAt,
	)
	if err != nil {
		return persistence.NewWorkflowError("Save", workflow.ID, err)
	}

	return nil
}

// Delete removes the workflow. History lives inside the workflow row, so
// nothing cascades.
func (r *WorkflowRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM workflows WHERE id = $1", id)
	if err != nil {
		return persistence.NewWorkflowError("Delete", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return persistence.NewWorkflowError("Delete", id, err)
	}

	if affected == 0 {
		return persistence.NewWorkflowError("Delete", id, persistence.ErrWorkflowNotFound)
	}

	return nil
}

// RecordExecution folds one run's outcome into the stored workflow in a
// single UPDATE: counters are incremented and the history entry appended
// with the cap applied in SQL, so concurrent triggers never lose updates.
func (r *WorkflowRepository) RecordExecution(ctx context.Context, workflowID string, update models.ExecutionUpdate) error {
	entry, err := json.Marshal([]models.ExecutionEntry{update.Entry})
	if err != nil {
		return fmt.Errorf("failed to marshal execution entry: %w", err)
	}

	query := `
		UPDATE workflows SET
			total_executions = total_executions + 1,
			successful_executions = successful_executions + $2,
			failed_executions = failed_executions + $3,
			last_executed = $4,
			updated_at = NOW(),
			execution_history = (
				SELECT COALESCE(jsonb_agg(elem ORDER BY ord), '[]'::jsonb)
				FROM (
					SELECT elem, ord
					FROM jsonb_array_elements(execution_history || $5::jsonb)
						WITH ORDINALITY AS entries(elem, ord)
					ORDER BY ord DESC
					LIMIT $6
				) recent
			)
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		workflowID,
		update.SuccessfulActions,
		update.FailedActions,
		update.Entry.ExecutedAt,
		entry,
		models.MaxExecutionHistory,
	)
	if err != nil {
		return persistence.NewWorkflowError("RecordExecution", workflowID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return persistence.NewWorkflowError("RecordExecution", workflowID, err)
	}

	if affected == 0 {
		return persistence.NewWorkflowError("RecordExecution", workflowID, persistence.ErrWorkflowNotFound)
	}

	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}

	return sql.NullTime{Time: *t, Valid: true}
}

func orEmptyMap(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}

	return m
}

func orEmptyConditions(c []models.Condition) []models.Condition {
	if c == nil {
		return []models.Condition{}
	}

	return c
}

func orEmptyActions(a []models.ActionItem) []models.ActionItem {
	if a == nil {
		return []models.ActionItem{}
	}

	return a
}

func orEmptyHistory(h []models.ExecutionEntry) []models.ExecutionEntry {
	if h == nil {
		return []models.ExecutionEntry{}
	}

	return h
}
