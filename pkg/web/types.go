// Package web provides the HTTP handlers and request/response types of the
// workflow API.
package web

import "github.com/dealclarity/clarity/pkg/models"

// CreateWorkflowRequest represents the request body for creating a workflow.
type CreateWorkflowRequest struct {
	TeamID      string                 `json:"team_id"               validate:"required"`
	CreatedBy   string                 `json:"created_by"`
	Name        string                 `json:"name"                  validate:"required,min=1"`
	Description string                 `json:"description,omitempty"`
	Enabled     *bool                  `json:"enabled,omitempty"`
	Trigger     models.WorkflowTrigger `json:"trigger"               validate:"required"`
	Conditions  []models.Condition     `json:"conditions,omitempty"`
	Actions     []models.ActionItem    `json:"actions,omitempty"`
}

// UpdateWorkflowRequest represents the request body for updating a workflow.
// All fields are optional to support partial updates; history and stats are
// never writable through the API.
type UpdateWorkflowRequest struct {
	Name        *string                 `json:"name,omitempty"        validate:"omitempty,min=1"`
	Description *string                 `json:"description,omitempty"`
	Enabled     *bool                   `json:"enabled,omitempty"`
	Trigger     *models.WorkflowTrigger `json:"trigger,omitempty"`
	Conditions  *[]models.Condition     `json:"conditions,omitempty"`
	Actions     *[]models.ActionItem    `json:"actions,omitempty"`
}

// SetWorkflowEnabledRequest represents the request body for toggling a
// workflow on or off.
type SetWorkflowEnabledRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

// ExecuteWorkflowRequest represents the request body for manually running a
// workflow against a deal.
type ExecuteWorkflowRequest struct {
	DealID string `json:"deal_id" validate:"required"`
}

// ExecuteWorkflowResponse carries the per-action outcomes of a manual run.
type ExecuteWorkflowResponse struct {
	WorkflowID string                 `json:"workflow_id"`
	DealID     string                 `json:"deal_id"`
	Outcomes   []models.ActionOutcome `json:"outcomes"`
}

// IngestDealRequest represents the request body for creating or updating a
// deal.
type IngestDealRequest struct {
	ID     string         `json:"id,omitempty"`
	TeamID string         `json:"team_id" validate:"required"`
	Fields map[string]any `json:"fields"`
}
