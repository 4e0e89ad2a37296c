// Package protocol defines the contracts between the workflow runner, the
// pluggable actions, and the external collaborators actions delegate to.
package protocol

import (
	"context"
	"log/slog"

	"github.com/dealclarity/clarity/pkg/models"
)

// ExecutionContext carries the subject deal and owning workflow through one
// action execution.
type ExecutionContext struct {
	ExecutionID string
	TeamID      string
	Deal        *models.Deal
	Workflow    *models.Workflow
}

// Action is one executable side effect. Execute returns a result map on
// success; errors are captured by the runner into a failed outcome and never
// abort sibling actions.
type Action interface {
	Execute(ctx context.Context, execCtx ExecutionContext, logger *slog.Logger) (map[string]any, error)
}

// ActionFactory creates action instances from per-workflow configuration and
// describes the configuration it accepts.
type ActionFactory interface {
	// Create builds an action instance from the given configuration.
	Create(config map[string]any) (Action, error)

	// ID returns the action type this factory produces.
	ID() models.ActionType

	// Schema returns the JSON schema the configuration is validated against.
	Schema() map[string]any
}
