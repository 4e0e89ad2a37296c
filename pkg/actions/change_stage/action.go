// Package change_stage implements the change_stage workflow action.
package change_stage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dealclarity/clarity/pkg/persistence"
	"github.com/dealclarity/clarity/pkg/protocol"
)

// Action moves the deal to a new pipeline stage and persists it.
type Action struct {
	NewStage string

	deals persistence.DealRepository
}

func NewAction(config map[string]any, deals persistence.DealRepository) (*Action, error) {
	newStage, _ := config["newStage"].(string)
	if newStage == "" {
		return nil, errors.New("change_stage action requires a 'newStage'")
	}

	return &Action{
		NewStage: newStage,
		deals:    deals,
	}, nil
}

func (a *Action) Execute(ctx context.Context, execCtx protocol.ExecutionContext, logger *slog.Logger) (map[string]any, error) {
	deal := execCtx.Deal
	deal.SetStage(a.NewStage)

	if err := a.deals.Save(ctx, deal); err != nil {
		return nil, fmt.Errorf("failed to persist deal %s: %w", deal.ID, err)
	}

	logger.InfoContext(ctx, "Changed deal stage", "deal_id", deal.ID, "new_stage", a.NewStage)

	return map[string]any{
		"message":  "Stage changed",
		"newStage": a.NewStage,
	}, nil
}
